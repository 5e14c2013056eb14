package git

import (
	"context"
	"testing"

	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInit tests repository initialization
func TestInit(t *testing.T) {
	t.Run("non-bare repository", func(t *testing.T) {
		tr := setupTestRepo(t, false)

		assert.NotNil(t, tr.repo.worktree, "non-bare repository should have a worktree")

		exists, err := tr.fs.Exists(".git")
		require.NoError(t, err)
		assert.True(t, exists, ".git directory should exist")
	})

	t.Run("bare repository", func(t *testing.T) {
		tr := setupTestRepo(t, true)

		assert.Nil(t, tr.repo.worktree, "bare repository should not have a worktree")
	})

	t.Run("init in subdirectory with mkdir", func(t *testing.T) {
		ctx := context.Background()
		memFS := fsb.NewInMemoryFS()

		repo, err := Init(ctx, &Options{
			FS:      memFS,
			Workdir: "projects/demo",
			Mkdir:   true,
		})
		require.NoError(t, err)
		require.NotNil(t, repo)

		exists, err := memFS.Exists("projects/demo/.git")
		require.NoError(t, err)
		assert.True(t, exists, ".git should exist under the workdir")
	})

	t.Run("already exists", func(t *testing.T) {
		tr := setupTestRepo(t, false)

		_, err := Init(tr.ctx, &Options{FS: tr.fs, Workdir: "."})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("missing filesystem", func(t *testing.T) {
		_, err := Init(context.Background(), &Options{})
		require.Error(t, err)
	})
}

// TestOpen tests opening existing repositories
func TestOpen(t *testing.T) {
	t.Run("open existing repository", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)

		reopened, err := Open(tr.ctx, &Options{FS: tr.fs, Workdir: "."})
		require.NoError(t, err)
		require.NotNil(t, reopened)

		branch, err := reopened.CurrentBranch(tr.ctx)
		require.NoError(t, err)
		assert.Equal(t, "master", branch)
	})

	t.Run("open nonexistent repository", func(t *testing.T) {
		memFS := fsb.NewInMemoryFS()

		_, err := Open(context.Background(), &Options{FS: memFS, Workdir: "."})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("open preserves history", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)
		sha := tr.commitFile(t, "second.txt", "more content", "Second commit")

		reopened, err := Open(tr.ctx, &Options{FS: tr.fs, Workdir: "."})
		require.NoError(t, err)

		head, err := reopened.Head(tr.ctx)
		require.NoError(t, err)
		assert.Equal(t, sha, head.Hash.String())
	})
}

// TestOptionsValidate tests option validation
func TestOptionsValidate(t *testing.T) {
	t.Run("missing FS", func(t *testing.T) {
		opts := Options{}
		err := opts.Validate()
		require.Error(t, err)
	})

	t.Run("negative cache size", func(t *testing.T) {
		opts := Options{FS: fsb.NewInMemoryFS(), StorerCacheSize: -1}
		err := opts.Validate()
		require.Error(t, err)
	})

	t.Run("defaults applied", func(t *testing.T) {
		opts := Options{FS: fsb.NewInMemoryFS()}
		opts.applyDefaults()
		assert.Equal(t, DefaultWorkdir, opts.Workdir)
		assert.Equal(t, DefaultStorerCacheSize, opts.StorerCacheSize)
	})
}
