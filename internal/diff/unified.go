// Package diff renders line-based diff text between two blobs of content.
// Line differencing is delegated to sergi/go-diff, the same LCS differ
// go-git uses for its own patches.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Unified computes a line-based diff between two texts and renders it in a
// unified-style format: a ---/+++ file header followed by lines prefixed
// with '-', '+', or ' '. Identical inputs yield the empty string.
func Unified(aName, bName, aText, bText string) string {
	if aText == bText {
		return ""
	}

	var b strings.Builder
	b.WriteString("--- a/")
	b.WriteString(aName)
	b.WriteString("\n+++ b/")
	b.WriteString(bName)
	b.WriteString("\n")

	for _, d := range Lines(aText, bText) {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			prefix = " "
		}
		for _, line := range splitLines(d.Text) {
			b.WriteString(prefix)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Lines computes a line-granularity diff between two texts.
func Lines(aText, bText string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(aText, bText)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lineArray)
}

// splitLines splits chunk text into lines, tolerating a missing final newline.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
