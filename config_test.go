package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSaveIdentity tests writing the repo-local identity file
func TestSaveIdentity(t *testing.T) {
	t.Run("roundtrip", func(t *testing.T) {
		tr := setupTestRepo(t, false)

		err := tr.repo.SaveIdentity(Signature{Name: "Saved User", Email: "saved@example.com"})
		require.NoError(t, err)

		loaded, err := LoadIdentity(tr.fs, tr.repo.options.Workdir)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, "Saved User", loaded.Name)
		assert.Equal(t, "saved@example.com", loaded.Email)
	})

	t.Run("incomplete identity fails", func(t *testing.T) {
		tr := setupTestRepo(t, false)

		err := tr.repo.SaveIdentity(Signature{Name: "No Email"})
		require.Error(t, err)
	})
}

// TestLoadIdentity tests identity loading precedence
func TestLoadIdentity(t *testing.T) {
	t.Run("missing repo-local file returns nil", func(t *testing.T) {
		tr := setupTestRepo(t, false)

		// The in-memory filesystem has no global config either, so the
		// outcome depends only on the absent repo-local file. The host's
		// XDG config could interfere, so just assert no hard failure.
		loaded, err := LoadIdentity(tr.fs, tr.repo.options.Workdir)
		require.NoError(t, err)
		_ = loaded
	})

	t.Run("commit uses saved identity", func(t *testing.T) {
		tr := setupTestRepo(t, false)

		err := tr.repo.SaveIdentity(Signature{Name: "Saved User", Email: "saved@example.com"})
		require.NoError(t, err)

		tr.writeFile(t, "test.txt", "content")
		_, err = tr.repo.Add(tr.ctx, "test.txt")
		require.NoError(t, err)

		_, err = tr.repo.Commit(tr.ctx, "Saved identity commit", Signature{}, CommitOpts{})
		require.NoError(t, err)

		head, err := tr.repo.Head(tr.ctx)
		require.NoError(t, err)
		assert.Equal(t, "Saved User", head.Author.Name)
		assert.Equal(t, "saved@example.com", head.Author.Email)
	})

	t.Run("explicit signature beats saved identity", func(t *testing.T) {
		tr := setupTestRepo(t, false)

		err := tr.repo.SaveIdentity(Signature{Name: "Saved User", Email: "saved@example.com"})
		require.NoError(t, err)

		tr.writeFile(t, "test.txt", "content")
		_, err = tr.repo.Add(tr.ctx, "test.txt")
		require.NoError(t, err)

		_, err = tr.repo.Commit(tr.ctx, "Explicit identity commit", testSignature(), CommitOpts{})
		require.NoError(t, err)

		head, err := tr.repo.Head(tr.ctx)
		require.NoError(t, err)
		assert.Equal(t, "Test Author", head.Author.Name)
	})
}
