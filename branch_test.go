package git

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateBranch tests branch creation
func TestCreateBranch(t *testing.T) {
	t.Run("create from HEAD", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)

		err := tr.repo.CreateBranch(tr.ctx, "feature", "", false)
		require.NoError(t, err)

		resolved, err := tr.repo.Resolve(tr.ctx, "feature")
		require.NoError(t, err)

		head, err := tr.repo.Head(tr.ctx)
		require.NoError(t, err)
		assert.Equal(t, head.Hash.String(), resolved.Hash)
	})

	t.Run("create from explicit revision", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)
		first, err := tr.repo.Head(tr.ctx)
		require.NoError(t, err)
		tr.commitFile(t, "second.txt", "content", "Second commit")

		err = tr.repo.CreateBranch(tr.ctx, "old", first.Hash.String(), false)
		require.NoError(t, err)

		resolved, err := tr.repo.Resolve(tr.ctx, "old")
		require.NoError(t, err)
		assert.Equal(t, first.Hash.String(), resolved.Hash)
	})

	t.Run("duplicate name fails", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)

		require.NoError(t, tr.repo.CreateBranch(tr.ctx, "feature", "", false))

		err := tr.repo.CreateBranch(tr.ctx, "feature", "", false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("force moves existing branch", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)
		first, err := tr.repo.Head(tr.ctx)
		require.NoError(t, err)

		require.NoError(t, tr.repo.CreateBranch(tr.ctx, "feature", first.Hash.String(), false))
		second := tr.commitFile(t, "second.txt", "content", "Second commit")

		err = tr.repo.CreateBranch(tr.ctx, "feature", second, true)
		require.NoError(t, err)

		resolved, err := tr.repo.Resolve(tr.ctx, "feature")
		require.NoError(t, err)
		assert.Equal(t, second, resolved.Hash)
	})

	t.Run("empty name fails", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)

		err := tr.repo.CreateBranch(tr.ctx, "", "", false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRef)
	})

	t.Run("unknown start revision fails", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)

		err := tr.repo.CreateBranch(tr.ctx, "feature", "nonexistent", false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

// TestDeleteBranch tests branch deletion
func TestDeleteBranch(t *testing.T) {
	t.Run("delete existing branch", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)
		require.NoError(t, tr.repo.CreateBranch(tr.ctx, "feature", "", false))

		err := tr.repo.DeleteBranch(tr.ctx, "feature")
		require.NoError(t, err)

		_, err = tr.repo.repo.Reference(plumbing.NewBranchReferenceName("feature"), true)
		require.Error(t, err, "branch reference should be gone")
	})

	t.Run("delete missing branch fails", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)

		err := tr.repo.DeleteBranch(tr.ctx, "nonexistent")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete current branch fails", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)

		current := tr.getCurrentBranch(t)
		err := tr.repo.DeleteBranch(tr.ctx, current)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRef)
	})
}

// TestBranches tests branch listing
func TestBranches(t *testing.T) {
	tr := setupTestRepoWithCommit(t)
	require.NoError(t, tr.repo.CreateBranch(tr.ctx, "zeta", "", false))
	require.NoError(t, tr.repo.CreateBranch(tr.ctx, "alpha", "", false))

	branches, err := tr.repo.Branches(tr.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "master", "zeta"}, branches, "branches should be sorted")
}

// TestCurrentBranch tests current branch reporting
func TestCurrentBranch(t *testing.T) {
	t.Run("on default branch", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)
		assert.Equal(t, "master", tr.getCurrentBranch(t))
	})

	t.Run("detached HEAD fails", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)
		head, err := tr.repo.Head(tr.ctx)
		require.NoError(t, err)

		require.NoError(t, tr.repo.Checkout(tr.ctx, head.Hash.String(), false))

		_, err = tr.repo.CurrentBranch(tr.ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
