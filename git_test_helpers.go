package git

import (
	"context"
	"testing"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/require"
)

// testRepo is a helper struct that contains a test repository and its filesystem
type testRepo struct {
	repo *Repo
	fs   fs.Filesystem
	ctx  context.Context
}

// testSignature returns a fixed signature for deterministic commits
func testSignature() Signature {
	return Signature{
		Name:  "Test Author",
		Email: "test@example.com",
		When:  time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

// setupTestRepo creates a new test repository with an in-memory filesystem
func setupTestRepo(t *testing.T, bare bool) *testRepo {
	t.Helper()

	ctx := context.Background()
	memFS := fsb.NewInMemoryFS()

	opts := Options{
		FS:      memFS,
		Bare:    bare,
		Workdir: ".",
	}

	repo, err := Init(ctx, &opts)
	require.NoError(t, err, "failed to initialize test repository")
	require.NotNil(t, repo, "repository should not be nil")

	return &testRepo{
		repo: repo,
		fs:   memFS,
		ctx:  ctx,
	}
}

// setupTestRepoWithCommit creates a test repository with an initial commit
func setupTestRepoWithCommit(t *testing.T) *testRepo {
	t.Helper()

	tr := setupTestRepo(t, false)
	tr.commitFile(t, "test.txt", "initial content", "Initial commit")

	return tr
}

// writeFile writes content to a path in the test filesystem
func (tr *testRepo) writeFile(t *testing.T, path, content string) {
	t.Helper()

	err := tr.fs.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err, "failed to write %s", path)
}

// commitFile writes, stages, and commits a single file, returning the commit SHA
func (tr *testRepo) commitFile(t *testing.T, path, content, msg string) string {
	t.Helper()

	tr.writeFile(t, path, content)

	_, err := tr.repo.Add(tr.ctx, path)
	require.NoError(t, err, "failed to add %s", path)

	sha, err := tr.repo.Commit(tr.ctx, msg, testSignature(), CommitOpts{})
	require.NoError(t, err, "failed to commit %s", path)

	return sha
}

// getCurrentBranch gets the current branch name
func (tr *testRepo) getCurrentBranch(t *testing.T) string {
	t.Helper()

	branch, err := tr.repo.CurrentBranch(tr.ctx)
	require.NoError(t, err, "failed to get current branch")

	return branch
}

// readFile reads a file from the test filesystem
func (tr *testRepo) readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := tr.fs.ReadFile(path)
	require.NoError(t, err, "failed to read %s", path)

	return string(data)
}
