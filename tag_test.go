package git

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateTag tests tag creation
func TestCreateTag(t *testing.T) {
	t.Run("lightweight tag at HEAD", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)

		err := tr.repo.CreateTag(tr.ctx, "v1.0.0", "", "", false)
		require.NoError(t, err)

		resolved, err := tr.repo.Resolve(tr.ctx, "v1.0.0")
		require.NoError(t, err)

		head, err := tr.repo.Head(tr.ctx)
		require.NoError(t, err)
		assert.Equal(t, head.Hash.String(), resolved.Hash)

		// Lightweight tags point directly at the commit, no tag object.
		ref, err := tr.repo.repo.Reference(plumbing.NewTagReferenceName("v1.0.0"), true)
		require.NoError(t, err)
		_, err = tr.repo.repo.TagObject(ref.Hash())
		require.Error(t, err, "lightweight tag should have no tag object")
	})

	t.Run("annotated tag carries message and tagger", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)
		tr.repo.options.Identity = &Signature{Name: "Tagger", Email: "tagger@example.com"}

		err := tr.repo.CreateTag(tr.ctx, "v1.0.0", "HEAD", "Release v1.0.0", true)
		require.NoError(t, err)

		ref, err := tr.repo.repo.Reference(plumbing.NewTagReferenceName("v1.0.0"), true)
		require.NoError(t, err)

		tagObj, err := tr.repo.repo.TagObject(ref.Hash())
		require.NoError(t, err)
		assert.Contains(t, tagObj.Message, "Release v1.0.0")
		assert.Equal(t, "Tagger", tagObj.Tagger.Name)
	})

	t.Run("tag at explicit revision", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)
		first, err := tr.repo.Head(tr.ctx)
		require.NoError(t, err)
		tr.commitFile(t, "second.txt", "content", "Second commit")

		err = tr.repo.CreateTag(tr.ctx, "old", first.Hash.String(), "", false)
		require.NoError(t, err)

		resolved, err := tr.repo.Resolve(tr.ctx, "old")
		require.NoError(t, err)
		assert.Equal(t, first.Hash.String(), resolved.Hash)
	})

	t.Run("duplicate name fails", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)

		require.NoError(t, tr.repo.CreateTag(tr.ctx, "v1.0.0", "", "", false))

		err := tr.repo.CreateTag(tr.ctx, "v1.0.0", "", "", false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("empty name fails", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)

		err := tr.repo.CreateTag(tr.ctx, "", "", "", false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRef)
	})
}

// TestDeleteTag tests tag deletion
func TestDeleteTag(t *testing.T) {
	t.Run("delete existing tag", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)
		require.NoError(t, tr.repo.CreateTag(tr.ctx, "v1.0.0", "", "", false))

		err := tr.repo.DeleteTag(tr.ctx, "v1.0.0")
		require.NoError(t, err)

		_, err = tr.repo.Resolve(tr.ctx, "v1.0.0")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete missing tag fails", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)

		err := tr.repo.DeleteTag(tr.ctx, "nonexistent")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

// TestTags tests tag listing and filtering
func TestTags(t *testing.T) {
	tr := setupTestRepoWithCommit(t)
	for _, name := range []string{"v1.0.0", "v1.1.0", "v2.0.0", "v2.0.0-rc", "experimental"} {
		require.NoError(t, tr.repo.CreateTag(tr.ctx, name, "", "", false))
	}

	t.Run("all tags sorted", func(t *testing.T) {
		tags, err := tr.repo.Tags(tr.ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"experimental", "v1.0.0", "v1.1.0", "v2.0.0", "v2.0.0-rc"}, tags)
	})

	t.Run("pattern filter", func(t *testing.T) {
		tags, err := tr.repo.Tags(tr.ctx, TagPatternFilter("v1.*"))
		require.NoError(t, err)
		assert.Equal(t, []string{"v1.0.0", "v1.1.0"}, tags)
	})

	t.Run("prefix filter", func(t *testing.T) {
		tags, err := tr.repo.Tags(tr.ctx, TagPrefixFilter("v"))
		require.NoError(t, err)
		assert.Equal(t, []string{"v1.0.0", "v1.1.0", "v2.0.0", "v2.0.0-rc"}, tags)
	})

	t.Run("suffix filter", func(t *testing.T) {
		tags, err := tr.repo.Tags(tr.ctx, TagSuffixFilter("-rc"))
		require.NoError(t, err)
		assert.Equal(t, []string{"v2.0.0-rc"}, tags)
	})

	t.Run("exclude filter", func(t *testing.T) {
		tags, err := tr.repo.Tags(tr.ctx, TagPrefixFilter("v"), TagExcludeFilter("*-rc"))
		require.NoError(t, err)
		assert.Equal(t, []string{"v1.0.0", "v1.1.0", "v2.0.0"}, tags)
	})
}
