// Package git provides a high-level Go wrapper for go-git operations.
// This file contains checkout operations.
package git

import (
	"context"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Checkout switches the working tree and HEAD to the given revision.
//
// A branch revision attaches HEAD to that branch; any other revision (tag,
// full or abbreviated hash) leaves HEAD detached at the resolved commit.
// The working tree and index are rewritten to match the target commit.
//
// A dirty working tree is refused with ErrDirtyWorktree so that uncommitted
// changes are never silently overwritten. Pass force to discard them.
func (r *Repo) Checkout(ctx context.Context, rev string, force bool) error {
	if r.worktree == nil {
		return WrapError(ErrInvalidRef, "cannot checkout in bare repository")
	}

	resolved, err := r.Resolve(ctx, rev)
	if err != nil {
		return WrapErrorf(err, "failed to resolve revision %q", rev)
	}

	if !force {
		status, statusErr := r.Status(ctx)
		if statusErr != nil {
			return statusErr
		}
		if !status.Clean() {
			return WrapError(ErrDirtyWorktree, "uncommitted changes would be overwritten by checkout")
		}
	}

	checkoutOpts := &gogit.CheckoutOptions{Force: force}
	if resolved.Kind == RefBranch {
		checkoutOpts.Branch = plumbing.ReferenceName(resolved.CanonicalName)
	} else {
		checkoutOpts.Hash = plumbing.NewHash(resolved.Hash)
	}

	if err := r.worktree.Checkout(checkoutOpts); err != nil {
		return WrapErrorf(err, "failed to checkout %q", rev)
	}

	return nil
}
