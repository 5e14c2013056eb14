// Package git provides a high-level Go wrapper for go-git operations.
// This file contains tag-related operations for repository management.
package git

import (
	"context"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// TagFilter is a predicate function for filtering tags.
// It returns true if the tag should be included in the results.
// Filters are applied progressively - if any filter returns false, the tag is excluded.
type TagFilter func(name string, ref *plumbing.Reference) bool

// CreateTag creates a new tag at the resolved target revision (default HEAD
// when target is empty). With annotated true, a tag object carrying the
// tagger and message is created; otherwise a lightweight ref. It fails with
// ErrAlreadyExists when the name is taken.
func (r *Repo) CreateTag(ctx context.Context, name, target, message string, annotated bool) error {
	if name == "" {
		return WrapError(ErrInvalidRef, "tag name cannot be empty")
	}

	if target == "" {
		target = "HEAD"
	}

	hash, err := r.resolveHash(ctx, target)
	if err != nil {
		return WrapErrorf(err, "failed to resolve target revision %q", target)
	}

	tagRefName := plumbing.NewTagReferenceName(name)
	if _, refErr := r.repo.Reference(tagRefName, true); refErr == nil {
		return WrapErrorf(ErrAlreadyExists, "tag %q", name)
	}

	if annotated {
		tagger, idErr := r.commitIdentity(Signature{})
		if idErr != nil {
			return WrapError(idErr, "annotated tag requires a tagger identity")
		}

		tagOpts := &gogit.CreateTagOptions{
			Tagger: &object.Signature{
				Name:  tagger.Name,
				Email: tagger.Email,
				When:  tagger.When,
			},
			Message: message,
		}
		if message == "" {
			tagOpts.Message = name
		}

		if _, tagErr := r.repo.CreateTag(name, hash, tagOpts); tagErr != nil {
			return WrapError(tagErr, "failed to create annotated tag")
		}
		return nil
	}

	tagRef := plumbing.NewHashReference(tagRefName, hash)
	if err := r.repo.Storer.SetReference(tagRef); err != nil {
		return WrapError(err, "failed to create lightweight tag")
	}

	return nil
}

// DeleteTag deletes the specified tag from the repository.
// Returns ErrNotFound if the tag does not exist.
func (r *Repo) DeleteTag(ctx context.Context, name string) error {
	if name == "" {
		return WrapError(ErrInvalidRef, "tag name cannot be empty")
	}

	tagRefName := plumbing.NewTagReferenceName(name)
	if _, err := r.repo.Reference(tagRefName, true); err != nil {
		return WrapErrorf(ErrNotFound, "tag %q", name)
	}

	if err := r.repo.Storer.RemoveReference(tagRefName); err != nil {
		return WrapError(err, "failed to delete tag")
	}

	return nil
}

// Tags returns a list of tags that pass all the provided filters.
// If no filters are provided, all tags are returned.
// Filters are applied progressively - a tag must pass ALL filters to be included.
// Results are sorted alphabetically.
func (r *Repo) Tags(ctx context.Context, filters ...TagFilter) ([]string, error) {
	refs, err := r.repo.References()
	if err != nil {
		return nil, WrapError(err, "failed to get references")
	}

	var tags []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsTag() {
			tagName := ref.Name().Short()
			if shouldIncludeTag(tagName, ref, filters) {
				tags = append(tags, tagName)
			}
		}
		return nil
	})
	if err != nil {
		return nil, WrapError(err, "failed to iterate references")
	}

	sort.Strings(tags)

	return tags, nil
}

// shouldIncludeTag checks if a tag passes all filters
func shouldIncludeTag(name string, ref *plumbing.Reference, filters []TagFilter) bool {
	for _, filter := range filters {
		if filter != nil && !filter(name, ref) {
			return false
		}
	}
	return true
}

// Common TagFilter implementations for convenience

// TagPatternFilter returns a filter that matches tags against a glob pattern.
// Supports * (matches any number of characters) and ? (matches single character).
// For example: "v1.*" matches "v1.0", "v1.1", etc.
func TagPatternFilter(pattern string) TagFilter {
	return func(name string, ref *plumbing.Reference) bool {
		return matchesRefPattern(name, pattern)
	}
}

// TagPrefixFilter returns a filter that matches tags with the given prefix.
// For example: "v" matches "v1.0", "v2.0", etc.
func TagPrefixFilter(prefix string) TagFilter {
	return func(name string, ref *plumbing.Reference) bool {
		return strings.HasPrefix(name, prefix)
	}
}

// TagSuffixFilter returns a filter that matches tags with the given suffix.
// For example: "-rc" matches "v1.0-rc", "v2.0-rc", etc.
func TagSuffixFilter(suffix string) TagFilter {
	return func(name string, ref *plumbing.Reference) bool {
		return strings.HasSuffix(name, suffix)
	}
}

// TagExcludeFilter returns a filter that excludes tags matching the given pattern.
// This is useful for filtering out certain tags while keeping all others.
// For example: TagExcludeFilter("*-rc") excludes all release candidates.
func TagExcludeFilter(pattern string) TagFilter {
	includeFilter := TagPatternFilter(pattern)
	return func(name string, ref *plumbing.Reference) bool {
		return !includeFilter(name, ref) // Invert the pattern filter
	}
}
