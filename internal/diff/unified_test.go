package diff

import (
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
)

// TestUnified tests unified diff rendering
func TestUnified(t *testing.T) {
	t.Run("identical inputs yield empty string", func(t *testing.T) {
		assert.Empty(t, Unified("a.txt", "a.txt", "same\ncontent\n", "same\ncontent\n"))
	})

	t.Run("changed line", func(t *testing.T) {
		out := Unified("file.txt", "file.txt", "one\ntwo\nthree\n", "one\nTWO\nthree\n")

		assert.True(t, strings.HasPrefix(out, "--- a/file.txt\n+++ b/file.txt\n"))
		assert.Contains(t, out, "-two\n")
		assert.Contains(t, out, "+TWO\n")
		assert.Contains(t, out, " one\n")
		assert.Contains(t, out, " three\n")
	})

	t.Run("added file", func(t *testing.T) {
		out := Unified("new.txt", "new.txt", "", "hello\nworld\n")

		assert.Contains(t, out, "+hello\n")
		assert.Contains(t, out, "+world\n")
		assert.NotContains(t, strings.TrimPrefix(out, "--- a/new.txt\n"), "\n-")
	})

	t.Run("deleted file", func(t *testing.T) {
		out := Unified("old.txt", "old.txt", "goodbye\n", "")

		assert.Contains(t, out, "-goodbye\n")
	})

	t.Run("missing final newline is tolerated", func(t *testing.T) {
		out := Unified("f", "f", "a\nb", "a\nc")

		assert.Contains(t, out, "-b\n")
		assert.Contains(t, out, "+c\n")
	})
}

// TestLines tests line-granularity diffing
func TestLines(t *testing.T) {
	diffs := Lines("one\ntwo\n", "one\nthree\n")
	assert.NotEmpty(t, diffs)

	var deleted, inserted string
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			deleted += d.Text
		case diffmatchpatch.DiffInsert:
			inserted += d.Text
		}
	}
	assert.Contains(t, deleted, "two\n")
	assert.Contains(t, inserted, "three\n")
}
