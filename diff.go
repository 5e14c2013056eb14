// Package git provides high-level Git operations through a clean facade.
// This file contains diff-related operations for comparing revisions.
package git

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/forgekit/git/internal/diff"
)

// PatchText represents unified diff text between two revisions.
// It contains the formatted diff output that can be displayed to users
// or processed by other tools.
type PatchText struct {
	// Text contains the unified diff in string format.
	Text string

	// IsBinary indicates whether the diff contains binary files.
	// When true, the diff text may be truncated or contain binary markers.
	IsBinary bool

	// FileCount indicates the number of files that have changes.
	FileCount int
}

// ChangeFilter is a predicate function for filtering changes in diffs.
// It returns true if the change should be included in the diff output.
// Filters are applied progressively - if any filter returns false, the change is excluded.
type ChangeFilter func(*object.Change) bool

// Diff computes the diff between two revisions and returns unified diff text.
// The revisions 'a' and 'b' can be any valid revision expression (hashes,
// abbreviated hashes, branch names, tags, HEAD). When 'b' is empty, the
// working tree takes its place, so Diff(ctx, "HEAD", "") shows uncommitted
// changes. The working tree side covers every file on disk: untracked files
// appear as additions, whether or not an ignore pattern matches them. Use a
// ChangeFilter to narrow the result when that is too broad.
//
// Filters are applied progressively - a change must pass ALL filters to be
// included. If no filters are provided, all changes are included.
//
// Binary files are detected by extension and marked on the result rather than
// rendered as text.
func (r *Repo) Diff(ctx context.Context, a, b string, filters ...ChangeFilter) (*PatchText, error) {
	if a == "" {
		return nil, WrapError(ErrInvalidRef, "revision 'a' cannot be empty")
	}

	treeA, err := r.TreeAt(ctx, a)
	if err != nil {
		return nil, WrapErrorf(err, "failed to get tree for revision %q", a)
	}

	if b == "" {
		return r.diffAgainstWorktree(ctx, treeA, filters)
	}

	treeB, err := r.TreeAt(ctx, b)
	if err != nil {
		return nil, WrapErrorf(err, "failed to get tree for revision %q", b)
	}

	changes, err := treeA.Diff(treeB)
	if err != nil {
		return nil, WrapError(err, "failed to compute changes")
	}

	filteredChanges := applyChangeFilters(changes, filters)

	patch, err := filteredChanges.Patch()
	if err != nil {
		return nil, WrapError(err, "failed to generate patch")
	}

	return &PatchText{
		Text:      patch.String(),
		IsBinary:  containsBinaryChanges(filteredChanges),
		FileCount: len(filteredChanges),
	}, nil
}

// diffAgainstWorktree compares a committed tree against the current working
// tree files. go-git's tree differ only works object-to-object, so the
// worktree side is read from the filesystem and diffed line-by-line.
func (r *Repo) diffAgainstWorktree(ctx context.Context, tree *object.Tree, filters []ChangeFilter) (*PatchText, error) {
	if r.worktree == nil {
		return nil, WrapError(ErrInvalidRef, "bare repository has no working tree")
	}

	treeFiles, err := treeContents(tree)
	if err != nil {
		return nil, err
	}

	workFiles, err := r.worktreeContents()
	if err != nil {
		return nil, err
	}

	paths := make(map[string]bool, len(treeFiles)+len(workFiles))
	for p := range treeFiles {
		paths[p] = true
	}
	for p := range workFiles {
		paths[p] = true
	}

	sorted := make([]string, 0, len(paths))
	for p := range paths {
		sorted = append(sorted, p)
	}
	sort.Strings(sorted)

	var text strings.Builder
	fileCount := 0
	isBinary := false
	for _, path := range sorted {
		aText, inTree := treeFiles[path]
		bText, inWork := workFiles[path]
		if inTree && inWork && aText == bText {
			continue
		}

		change := worktreeChange(path, inTree, inWork)
		if !shouldIncludeChange(change, filters) {
			continue
		}

		fileCount++
		if isBinaryPath(path) {
			isBinary = true
			text.WriteString("Binary files a/" + path + " and b/" + path + " differ\n")
			continue
		}
		text.WriteString(diff.Unified(path, path, aText, bText))
	}

	return &PatchText{
		Text:      text.String(),
		IsBinary:  isBinary,
		FileCount: fileCount,
	}, nil
}

// worktreeChange builds the change record used for filtering worktree diffs.
func worktreeChange(path string, inTree, inWork bool) *object.Change {
	change := &object.Change{}
	if inTree {
		change.From.Name = path
	}
	if inWork {
		change.To.Name = path
	}
	return change
}

// treeContents reads every blob in the tree into memory, keyed by path.
func treeContents(tree *object.Tree) (map[string]string, error) {
	contents := make(map[string]string)
	err := tree.Files().ForEach(func(f *object.File) error {
		text, contentErr := f.Contents()
		if contentErr != nil {
			return contentErr
		}
		contents[f.Name] = text
		return nil
	})
	if err != nil {
		return nil, WrapError(err, "failed to read tree contents")
	}
	return contents, nil
}

// worktreeContents reads every file under the worktree root, excluding the
// .git directory, keyed by slash-separated path.
func (r *Repo) worktreeContents() (map[string]string, error) {
	workdirFS, err := r.workdirFS()
	if err != nil {
		return nil, err
	}

	contents := make(map[string]string)
	err = util.Walk(workdirFS, ".", func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := normalizeWalkPath(path)
		if info.IsDir() {
			if name == gogit.GitDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if name == "" || strings.HasPrefix(name, gogit.GitDirName+"/") {
			return nil
		}

		data, readErr := util.ReadFile(workdirFS, path)
		if readErr != nil {
			return readErr
		}
		contents[name] = string(data)
		return nil
	})
	if err != nil {
		return nil, WrapError(err, "failed to read worktree contents")
	}
	return contents, nil
}

// normalizeWalkPath converts a walk path to a clean slash-separated path
// relative to the worktree root.
func normalizeWalkPath(path string) string {
	name := filepath.ToSlash(path)
	name = strings.TrimPrefix(name, "./")
	if name == "." {
		return ""
	}
	return name
}

// applyChangeFilters applies all filters to changes and returns filtered results
func applyChangeFilters(changes object.Changes, filters []ChangeFilter) object.Changes {
	var filteredChanges object.Changes
	for _, change := range changes {
		if shouldIncludeChange(change, filters) {
			filteredChanges = append(filteredChanges, change)
		}
	}
	return filteredChanges
}

// shouldIncludeChange checks if a change passes all filters
func shouldIncludeChange(change *object.Change, filters []ChangeFilter) bool {
	for _, filter := range filters {
		if filter != nil && !filter(change) {
			return false
		}
	}
	return true
}

// containsBinaryChanges checks if any of the changes are for binary files
func containsBinaryChanges(changes object.Changes) bool {
	for _, change := range changes {
		if isBinaryPath(change.From.Name) || isBinaryPath(change.To.Name) {
			return true
		}
	}
	return false
}

// isBinaryPath checks if a file path likely represents a binary file based on extension
func isBinaryPath(path string) bool {
	if path == "" {
		return false
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	binaryExts := map[string]bool{
		"png": true, "jpg": true, "jpeg": true, "gif": true, "ico": true,
		"pdf": true, "zip": true, "tar": true, "gz": true, "bz2": true,
		"exe": true, "dll": true, "so": true, "dylib": true, "bin": true,
		"mp3": true, "mp4": true, "avi": true, "mov": true, "wav": true,
		"ttf": true, "otf": true, "woff": true, "woff2": true, "eot": true,
	}

	return binaryExts[ext]
}
