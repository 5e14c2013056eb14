package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRefs tests reference listing by kind and pattern
func TestRefs(t *testing.T) {
	tr := setupTestRepoWithCommit(t)
	require.NoError(t, tr.repo.CreateBranch(tr.ctx, "feature/auth", "", false))
	require.NoError(t, tr.repo.CreateBranch(tr.ctx, "feature/api", "", false))
	require.NoError(t, tr.repo.CreateTag(tr.ctx, "v1.0.0", "", "", false))
	require.NoError(t, tr.repo.CreateTag(tr.ctx, "v1.1.0", "", "", false))

	t.Run("all branches", func(t *testing.T) {
		refs, err := tr.repo.Refs(tr.ctx, RefBranch, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"feature/api", "feature/auth", "master"}, refs)
	})

	t.Run("all tags", func(t *testing.T) {
		refs, err := tr.repo.Refs(tr.ctx, RefTag, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"v1.0.0", "v1.1.0"}, refs)
	})

	t.Run("star pattern", func(t *testing.T) {
		refs, err := tr.repo.Refs(tr.ctx, RefBranch, "feature/*")
		require.NoError(t, err)
		assert.Equal(t, []string{"feature/api", "feature/auth"}, refs)
	})

	t.Run("question pattern", func(t *testing.T) {
		refs, err := tr.repo.Refs(tr.ctx, RefTag, "v1.?.0")
		require.NoError(t, err)
		assert.Equal(t, []string{"v1.0.0", "v1.1.0"}, refs)
	})

	t.Run("exact match", func(t *testing.T) {
		refs, err := tr.repo.Refs(tr.ctx, RefBranch, "master")
		require.NoError(t, err)
		assert.Equal(t, []string{"master"}, refs)
	})

	t.Run("no matches", func(t *testing.T) {
		refs, err := tr.repo.Refs(tr.ctx, RefBranch, "release/*")
		require.NoError(t, err)
		assert.Empty(t, refs)
	})
}

// TestRefKindString tests the RefKind string representation
func TestRefKindString(t *testing.T) {
	assert.Equal(t, "branch", RefBranch.String())
	assert.Equal(t, "tag", RefTag.String())
	assert.Equal(t, "commit", RefCommit.String())
	assert.Equal(t, "other", RefOther.String())
}

// TestMatchesRefPattern tests the glob matching helpers
func TestMatchesRefPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    bool
	}{
		{name: "feature/auth", pattern: "feature/*", want: true},
		{name: "feature/auth", pattern: "*/auth", want: true},
		{name: "feature/auth", pattern: "*auth*", want: true},
		{name: "feature/auth", pattern: "release/*", want: false},
		{name: "v1.0.0", pattern: "v?.0.0", want: true},
		{name: "v10.0.0", pattern: "v?.0.0", want: false},
		{name: "main", pattern: "main", want: true},
		{name: "main", pattern: "master", want: false},
		{name: "anything", pattern: "", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name+"_"+tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesRefPattern(tt.name, tt.pattern))
		})
	}
}
