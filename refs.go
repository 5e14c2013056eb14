// Package git provides high-level Git operations through a clean facade.
// This file contains reference-related operations for listing refs.
package git

import (
	"context"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// RefKind represents the type of git reference.
// This is used to classify references when listing or resolving them.
type RefKind int

const (
	// RefBranch indicates a local branch reference (refs/heads/*).
	RefBranch RefKind = iota

	// RefTag indicates a tag reference (refs/tags/*).
	RefTag

	// RefCommit indicates a commit hash (not a symbolic reference).
	RefCommit

	// RefOther indicates any other type of reference.
	RefOther
)

// String returns a human-readable string representation of the RefKind.
func (k RefKind) String() string {
	switch k {
	case RefBranch:
		return "branch"
	case RefTag:
		return "tag"
	case RefCommit:
		return "commit"
	case RefOther:
		return "other"
	default:
		return "unknown"
	}
}

// Refs returns a list of references that match the specified kind and pattern.
// The kind parameter filters references by type (branch, tag, etc.).
// The pattern parameter supports glob-style matching with * and ? wildcards.
// Results are sorted alphabetically.
func (r *Repo) Refs(ctx context.Context, kind RefKind, pattern string) ([]string, error) {
	refs, err := r.repo.References()
	if err != nil {
		return nil, WrapError(err, "failed to get references")
	}

	var matchingRefs []string

	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if !matchesRefKind(ref, kind) {
			return nil
		}

		shortName := ref.Name().Short()
		if pattern != "" && !matchesRefPattern(shortName, pattern) {
			return nil
		}

		matchingRefs = append(matchingRefs, shortName)
		return nil
	})
	if err != nil {
		return nil, WrapError(err, "failed to iterate references")
	}

	sort.Strings(matchingRefs)

	return matchingRefs, nil
}

// matchesRefKind checks if a reference matches the specified RefKind
func matchesRefKind(ref *plumbing.Reference, kind RefKind) bool {
	switch kind {
	case RefBranch:
		return ref.Name().IsBranch()
	case RefTag:
		return ref.Name().IsTag()
	case RefCommit:
		// Commit hashes are not stored as symbolic references.
		return false
	case RefOther:
		return !ref.Name().IsBranch() && !ref.Name().IsTag()
	default:
		return false
	}
}

// matchesRefPattern checks if a reference name matches the given pattern
func matchesRefPattern(name, pattern string) bool {
	if pattern == "" {
		return true // Empty pattern matches all
	}

	if strings.Contains(pattern, "*") {
		return matchesStarPattern(name, pattern)
	}

	if strings.Contains(pattern, "?") {
		return matchesQuestionPattern(name, pattern)
	}

	// Exact match for patterns without wildcards
	return name == pattern
}

// matchesStarPattern matches names with * wildcards
func matchesStarPattern(name, pattern string) bool {
	switch {
	case strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*"):
		middle := strings.TrimPrefix(strings.TrimSuffix(pattern, "*"), "*")
		return strings.Contains(name, middle)
	case strings.HasPrefix(pattern, "*"):
		return strings.HasSuffix(name, strings.TrimPrefix(pattern, "*"))
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(name, strings.TrimSuffix(pattern, "*"))
	default:
		// Multiple * wildcards - split and check each part
		parts := strings.Split(pattern, "*")
		if len(parts) <= 1 {
			return false
		}

		pos := 0
		for i, part := range parts {
			if part == "" {
				continue // Empty parts from consecutive *
			}

			switch {
			case i == 0:
				if !strings.HasPrefix(name[pos:], part) {
					return false
				}
				pos += len(part)
			case i == len(parts)-1 && part != "":
				return strings.HasSuffix(name, part)
			default:
				idx := strings.Index(name[pos:], part)
				if idx == -1 {
					return false
				}
				pos += idx + len(part)
			}
		}
		return true
	}
}

// matchesQuestionPattern matches names with ? wildcards
func matchesQuestionPattern(name, pattern string) bool {
	if len(name) != len(pattern) {
		return false
	}

	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '?' {
			continue // ? matches any single character
		}
		if pattern[i] != name[i] {
			return false
		}
	}

	return true
}
