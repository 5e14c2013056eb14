// Package git provides branch management operations for git repositories.
// This file contains all branch-related operations including creation,
// listing, and deletion.
package git

import (
	"context"

	"github.com/go-git/go-git/v5/plumbing"
)

// CurrentBranch returns the name of the currently checked out branch.
// It returns an error if HEAD is in a detached state.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", WrapError(ErrNotFound, "failed to get HEAD reference")
	}

	if !head.Name().IsBranch() {
		return "", WrapError(ErrNotFound, "HEAD is detached")
	}

	return head.Name().Short(), nil
}

// CreateBranch creates a new branch pointing at the resolved start revision
// (default HEAD when startRev is empty). It fails with ErrAlreadyExists when
// the name is taken, unless force is true.
func (r *Repo) CreateBranch(ctx context.Context, name, startRev string, force bool) error {
	if name == "" {
		return WrapError(ErrInvalidRef, "branch name cannot be empty")
	}

	if startRev == "" {
		startRev = "HEAD"
	}

	hash, err := r.resolveHash(ctx, startRev)
	if err != nil {
		return WrapErrorf(err, "failed to resolve start revision %q", startRev)
	}

	branchRefName := plumbing.NewBranchReferenceName(name)
	if _, refErr := r.repo.Reference(branchRefName, true); refErr == nil && !force {
		return WrapErrorf(ErrAlreadyExists, "branch %q", name)
	}

	newRef := plumbing.NewHashReference(branchRefName, hash)
	if err := r.repo.Storer.SetReference(newRef); err != nil {
		return WrapError(err, "failed to create branch reference")
	}

	return nil
}

// DeleteBranch deletes the specified local branch.
// It prevents deletion of the currently checked out branch.
func (r *Repo) DeleteBranch(ctx context.Context, name string) error {
	if name == "" {
		return WrapError(ErrInvalidRef, "branch name cannot be empty")
	}

	branchRefName := plumbing.NewBranchReferenceName(name)

	if _, err := r.repo.Reference(branchRefName, true); err != nil {
		return WrapErrorf(ErrNotFound, "branch %q", name)
	}

	// CurrentBranch can fail in an empty repository, which is fine here.
	if current, err := r.CurrentBranch(ctx); err == nil && current == name {
		return WrapError(ErrInvalidRef, "cannot delete the currently checked out branch")
	}

	if err := r.repo.Storer.RemoveReference(branchRefName); err != nil {
		return WrapError(err, "failed to delete branch")
	}

	return nil
}

// Branches returns the names of all local branches, sorted alphabetically.
func (r *Repo) Branches(ctx context.Context) ([]string, error) {
	return r.Refs(ctx, RefBranch, "")
}
