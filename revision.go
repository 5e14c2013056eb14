// Package git provides high-level Git operations through a clean facade.
// This file contains revision parsing and resolution.
package git

import (
	"context"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// minAbbrevLen is the shortest hex prefix treated as an abbreviated object id,
// matching git's own core.abbrev minimum.
const minAbbrevLen = 4

// fullHashLen is the length of a full SHA-1 object id in hex.
const fullHashLen = 40

// RevKind classifies a revision expression syntactically.
// The classification decides how Resolve looks the expression up; a hex-looking
// expression can still resolve as a branch or tag name, which shadow
// abbreviations the same way they do in git.
type RevKind int

const (
	// RevFullHash is a full 40-character hex object id.
	RevFullHash RevKind = iota

	// RevAbbrevHash is a 4-39 character hex prefix of an object id.
	RevAbbrevHash

	// RevHead is the symbolic name HEAD.
	RevHead

	// RevName is a branch or tag name.
	RevName
)

// String returns a human-readable string representation of the RevKind.
func (k RevKind) String() string {
	switch k {
	case RevFullHash:
		return "full-hash"
	case RevAbbrevHash:
		return "abbreviated-hash"
	case RevHead:
		return "HEAD"
	case RevName:
		return "name"
	default:
		return "unknown"
	}
}

// Revision is a parsed revision expression: the expression text plus its
// syntactic kind. It replaces ref-name-or-commit duck typing with an explicit
// value that Resolve pattern-matches on.
type Revision struct {
	// Kind is the syntactic classification of the expression.
	Kind RevKind

	// Expr is the original expression text.
	Expr string
}

// ParseRevision classifies a revision expression. It returns ErrInvalidRef
// for an empty expression; any other string parses, since unknown names are
// only detected at resolution time.
func ParseRevision(expr string) (Revision, error) {
	if expr == "" {
		return Revision{}, WrapError(ErrInvalidRef, "revision cannot be empty")
	}

	switch {
	case expr == "HEAD":
		return Revision{Kind: RevHead, Expr: expr}, nil
	case len(expr) == fullHashLen && isHex(expr):
		return Revision{Kind: RevFullHash, Expr: expr}, nil
	case len(expr) >= minAbbrevLen && len(expr) < fullHashLen && isHex(expr):
		return Revision{Kind: RevAbbrevHash, Expr: expr}, nil
	default:
		return Revision{Kind: RevName, Expr: expr}, nil
	}
}

func isHex(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

// ResolvedRef represents a resolved revision with its kind and hash.
type ResolvedRef struct {
	// Kind indicates the type of reference the expression resolved through
	// (branch, tag, commit, etc.).
	Kind RefKind

	// Hash is the resolved object hash in full SHA-1 format.
	Hash string

	// CanonicalName is the canonical reference name (e.g. "refs/heads/main").
	// For object hashes it is the same as Hash.
	CanonicalName string
}

// Resolve resolves a revision expression to a ResolvedRef.
//
// Full hashes are validated against the object store. HEAD is dereferenced
// through exactly one level of indirection. Names resolve as a branch first,
// then as a tag (git's order when both exist). Anything else is treated as an
// abbreviated hex prefix: exactly one object with that prefix resolves to it,
// zero objects fail with ErrNotFound, and more than one fails with
// ErrAmbiguousRef naming the candidates.
//
// Resolve is read-only and has no side effects.
func (r *Repo) Resolve(ctx context.Context, expr string) (*ResolvedRef, error) {
	rev, err := ParseRevision(expr)
	if err != nil {
		return nil, err
	}

	switch rev.Kind {
	case RevFullHash:
		return r.resolveFullHash(rev.Expr)
	case RevHead:
		return r.resolveHead()
	case RevName:
		return r.resolveName(rev.Expr)
	case RevAbbrevHash:
		// A hex-looking name can still be a branch or tag; names shadow
		// abbreviations as in git.
		if resolved, nameErr := r.resolveName(rev.Expr); nameErr == nil {
			return resolved, nil
		}
		return r.resolveAbbrev(rev.Expr)
	default:
		return nil, WrapErrorf(ErrInvalidRef, "unsupported revision kind %q", rev.Kind)
	}
}

// resolveFullHash validates that a full object id exists in the store.
func (r *Repo) resolveFullHash(expr string) (*ResolvedRef, error) {
	hash := plumbing.NewHash(expr)
	if err := r.repo.Storer.HasEncodedObject(hash); err != nil {
		return nil, WrapErrorf(ErrNotFound, "object %s", expr)
	}
	return &ResolvedRef{Kind: RefCommit, Hash: hash.String(), CanonicalName: hash.String()}, nil
}

// resolveHead dereferences HEAD through one level of indirection: the current
// branch pointer for a symbolic HEAD, or the hash itself when detached.
func (r *Repo) resolveHead() (*ResolvedRef, error) {
	head, err := r.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return nil, WrapError(ErrNotFound, "HEAD is not set")
	}

	if head.Type() == plumbing.HashReference {
		// Detached HEAD points straight at a commit.
		return &ResolvedRef{Kind: RefCommit, Hash: head.Hash().String(), CanonicalName: "HEAD"}, nil
	}

	branch, err := r.repo.Reference(head.Target(), false)
	if err != nil {
		// Unborn branch: the repository has no commits yet.
		return nil, WrapErrorf(ErrNotFound, "HEAD points at unborn branch %s", head.Target().Short())
	}

	return &ResolvedRef{
		Kind:          RefBranch,
		Hash:          branch.Hash().String(),
		CanonicalName: branch.Name().String(),
	}, nil
}

// resolveName resolves a branch or tag name, branch first.
func (r *Repo) resolveName(name string) (*ResolvedRef, error) {
	branchRef := plumbing.NewBranchReferenceName(name)
	if ref, err := r.repo.Reference(branchRef, true); err == nil {
		return &ResolvedRef{
			Kind:          RefBranch,
			Hash:          ref.Hash().String(),
			CanonicalName: branchRef.String(),
		}, nil
	}

	tagRef := plumbing.NewTagReferenceName(name)
	if ref, err := r.repo.Reference(tagRef, true); err == nil {
		hash := ref.Hash()
		// Annotated tags point at a tag object; dereference to the commit.
		if tagObj, tagErr := r.repo.TagObject(hash); tagErr == nil {
			hash = tagObj.Target
		}
		return &ResolvedRef{
			Kind:          RefTag,
			Hash:          hash.String(),
			CanonicalName: tagRef.String(),
		}, nil
	}

	return nil, WrapErrorf(ErrNotFound, "no branch or tag named %q", name)
}

// resolveAbbrev scans all object ids for those sharing the given hex prefix.
func (r *Repo) resolveAbbrev(prefix string) (*ResolvedRef, error) {
	lower := strings.ToLower(prefix)

	iter, err := r.repo.Storer.IterEncodedObjects(plumbing.AnyObject)
	if err != nil {
		return nil, WrapError(err, "failed to iterate objects")
	}
	defer iter.Close()

	var matches []string
	err = iter.ForEach(func(obj plumbing.EncodedObject) error {
		id := obj.Hash().String()
		if strings.HasPrefix(id, lower) {
			matches = append(matches, id)
		}
		return nil
	})
	if err != nil {
		return nil, WrapError(err, "failed to scan objects")
	}

	switch len(matches) {
	case 0:
		return nil, WrapErrorf(ErrNotFound, "no object with prefix %s", prefix)
	case 1:
		return &ResolvedRef{Kind: RefCommit, Hash: matches[0], CanonicalName: matches[0]}, nil
	default:
		sort.Strings(matches)
		return nil, WrapErrorf(ErrAmbiguousRef,
			"prefix %s matches %d objects: %s", prefix, len(matches), strings.Join(matches, ", "))
	}
}

// resolveHash is a convenience used by operations that only need the hash.
func (r *Repo) resolveHash(ctx context.Context, expr string) (plumbing.Hash, error) {
	resolved, err := r.Resolve(ctx, expr)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return plumbing.NewHash(resolved.Hash), nil
}
