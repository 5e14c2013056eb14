// Package git provides a high-level Go wrapper for go-git operations.
// This file contains worktree operations (add, remove, unstage, status, commit).
package git

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/leodido/go-conventionalcommits"
	"github.com/leodido/go-conventionalcommits/parser"

	"github.com/forgekit/git/internal/ignore"
)

// IgnoreFileName is the pattern file consulted when staging untracked files.
const IgnoreFileName = ".gitignore"

// Add stages the given worktree paths for the next commit. Paths may contain
// glob patterns, which are expanded against the worktree. An explicitly named
// path that does not exist fails with ErrPathNotFound. Paths that are
// unchanged relative to HEAD and the index are skipped rather than restaged.
//
// It returns the paths that were actually staged.
func (r *Repo) Add(ctx context.Context, paths ...string) ([]string, error) {
	if r.worktree == nil {
		return nil, WrapError(ErrInvalidRef, "cannot add files in bare repository")
	}

	if len(paths) == 0 {
		return nil, nil // No paths to add, not an error
	}

	workdirFS, err := r.workdirFS()
	if err != nil {
		return nil, err
	}

	status, err := r.worktree.Status()
	if err != nil {
		return nil, WrapError(err, "failed to get worktree status")
	}
	changed := changedPaths(status)

	// Expand globs and verify explicit paths exist.
	var candidates []string
	for _, path := range paths {
		if path == "" {
			continue // Skip empty paths
		}

		if strings.ContainsAny(path, "*?[") {
			matches, globErr := util.Glob(workdirFS, path)
			if globErr != nil {
				return nil, WrapErrorf(globErr, "invalid glob pattern %q", path)
			}
			candidates = append(candidates, matches...)
			continue
		}

		if _, statErr := workdirFS.Lstat(path); statErr != nil {
			return nil, WrapErrorf(ErrPathNotFound, "path %q", path)
		}
		candidates = append(candidates, path)
	}

	var staged []string
	for _, path := range candidates {
		under := pathsUnder(changed, path)
		if len(under) == 0 {
			continue // Nothing new or modified here.
		}

		if _, addErr := r.worktree.Add(path); addErr != nil {
			return nil, WrapErrorf(addErr, "failed to add path %q", path)
		}
		staged = append(staged, under...)
	}

	sort.Strings(staged)
	return dedupe(staged), nil
}

// AddAll stages every modified or deleted tracked file in the worktree. When
// newFiles is true it additionally stages untracked files, except those
// matched by the repository's ignore patterns. The ignore file is re-read on
// every call.
//
// It returns the paths that were staged.
func (r *Repo) AddAll(ctx context.Context, newFiles bool) ([]string, error) {
	if r.worktree == nil {
		return nil, WrapError(ErrInvalidRef, "cannot add files in bare repository")
	}

	workdirFS, err := r.workdirFS()
	if err != nil {
		return nil, err
	}

	matcher, err := ignore.Load(workdirFS, IgnoreFileName)
	if err != nil {
		return nil, WrapError(err, "failed to load ignore patterns")
	}

	status, err := r.worktree.Status()
	if err != nil {
		return nil, WrapError(err, "failed to get worktree status")
	}

	var staged []string
	for path, fileStatus := range status {
		switch {
		case fileStatus.Worktree == gogit.Modified || fileStatus.Worktree == gogit.Deleted:
			// Tracked change.
		case fileStatus.Worktree == gogit.Untracked:
			// Status reports files, never directories.
			if !newFiles || matcher.Match(path, false) {
				continue
			}
		default:
			continue // Already staged or clean.
		}

		if _, addErr := r.worktree.Add(path); addErr != nil {
			return nil, WrapErrorf(addErr, "failed to add path %q", path)
		}
		staged = append(staged, path)
	}

	sort.Strings(staged)
	return staged, nil
}

// changedPaths collects the worktree paths that differ from HEAD or the index.
func changedPaths(status gogit.Status) map[string]bool {
	changed := make(map[string]bool, len(status))
	for path, fileStatus := range status {
		if fileStatus.Worktree == gogit.Unmodified && fileStatus.Staging == gogit.Unmodified {
			continue
		}
		changed[path] = true
	}
	return changed
}

// pathsUnder returns the changed paths equal to or contained within path.
func pathsUnder(changed map[string]bool, path string) []string {
	path = strings.TrimSuffix(path, "/")

	var under []string
	for p := range changed {
		if p == path || strings.HasPrefix(p, path+"/") {
			under = append(under, p)
		}
	}
	return under
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || sorted[i-1] != s {
			out = append(out, s)
		}
	}
	return out
}

// Remove removes files from the index and worktree.
// It handles already-deleted files appropriately and supports glob patterns.
// Files that don't exist in the index are silently ignored.
func (r *Repo) Remove(ctx context.Context, paths ...string) error {
	if r.worktree == nil {
		return WrapError(ErrInvalidRef, "cannot remove files in bare repository")
	}

	if len(paths) == 0 {
		return nil // No paths to remove, not an error
	}

	workdirFS, err := r.workdirFS()
	if err != nil {
		return err
	}

	var pathsToRemove []string
	for _, path := range paths {
		if path == "" {
			continue
		}

		if strings.ContainsAny(path, "*?[") {
			matches, globErr := util.Glob(workdirFS, path)
			if globErr != nil {
				return WrapErrorf(globErr, "invalid glob pattern %q", path)
			}
			pathsToRemove = append(pathsToRemove, matches...)
		} else {
			pathsToRemove = append(pathsToRemove, path)
		}
	}

	for _, path := range pathsToRemove {
		// go-git's Remove checks whether the file is tracked; untracked
		// files surface as "entry not found", which git rm also ignores.
		if _, rmErr := r.worktree.Remove(path); rmErr != nil {
			msg := rmErr.Error()
			if !strings.Contains(msg, "entry not found") && !strings.Contains(msg, "does not exist") {
				return WrapErrorf(rmErr, "failed to remove path %q", path)
			}
		}
	}

	return nil
}

// Unstage unstages files from the index without modifying the worktree.
// It uses a mixed reset to restore the index entries to HEAD for the given
// paths. Files that aren't staged are silently ignored.
func (r *Repo) Unstage(ctx context.Context, paths ...string) error {
	if r.worktree == nil {
		return WrapError(ErrInvalidRef, "cannot unstage files in bare repository")
	}

	if len(paths) == 0 {
		return nil // No paths to unstage, not an error
	}

	status, err := r.worktree.Status()
	if err != nil {
		return WrapError(err, "failed to get worktree status")
	}

	var stagedPaths []string
	for _, path := range paths {
		if path == "" {
			continue
		}
		fileStatus := status.File(path)
		if fileStatus.Staging != gogit.Untracked && fileStatus.Staging != gogit.Unmodified {
			stagedPaths = append(stagedPaths, path)
		}
	}

	if len(stagedPaths) == 0 {
		return nil
	}

	head, err := r.repo.Head()
	if err != nil {
		return WrapError(err, "failed to get HEAD reference")
	}

	resetOpts := &gogit.ResetOptions{
		Commit: head.Hash(),
		Mode:   gogit.MixedReset,
		Files:  stagedPaths,
	}
	if err := r.worktree.Reset(resetOpts); err != nil {
		return WrapError(err, "failed to unstage files")
	}

	return nil
}

// WorktreeStatus classifies working-tree paths relative to HEAD and the index.
type WorktreeStatus struct {
	// New lists untracked or newly staged paths.
	New []string

	// Modified lists tracked paths whose content differs.
	Modified []string

	// Deleted lists tracked paths missing from the working tree or index.
	Deleted []string
}

// Clean reports whether no changes were detected.
func (s *WorktreeStatus) Clean() bool {
	return len(s.New) == 0 && len(s.Modified) == 0 && len(s.Deleted) == 0
}

// Status compares the working tree and index against HEAD and returns the
// new, modified, and deleted paths, each sorted.
func (r *Repo) Status(ctx context.Context) (*WorktreeStatus, error) {
	if r.worktree == nil {
		return nil, WrapError(ErrInvalidRef, "bare repository has no working tree")
	}

	status, err := r.worktree.Status()
	if err != nil {
		return nil, WrapError(err, "failed to get worktree status")
	}

	ws := &WorktreeStatus{}
	for path, fileStatus := range status {
		switch {
		case fileStatus.Worktree == gogit.Untracked || fileStatus.Staging == gogit.Added:
			ws.New = append(ws.New, path)
		case fileStatus.Worktree == gogit.Deleted || fileStatus.Staging == gogit.Deleted:
			ws.Deleted = append(ws.Deleted, path)
		case fileStatus.Worktree == gogit.Modified || fileStatus.Staging == gogit.Modified:
			ws.Modified = append(ws.Modified, path)
		}
	}

	sort.Strings(ws.New)
	sort.Strings(ws.Modified)
	sort.Strings(ws.Deleted)
	return ws, nil
}

// Commit creates a new commit from the staged content with the current HEAD
// as parent and returns the SHA of the new commit. When who carries no
// identity, the repository's configured default identity is used instead.
// Fails with ErrNothingToCommit when nothing is staged and AllowEmpty is
// false.
func (r *Repo) Commit(ctx context.Context, msg string, who Signature, opts CommitOpts) (string, error) {
	if r.worktree == nil {
		return "", WrapError(ErrInvalidRef, "cannot commit in bare repository")
	}

	if msg == "" {
		return "", WrapError(ErrInvalidRef, "commit message cannot be empty")
	}

	if opts.Conventional {
		if err := validateConventionalMessage(msg); err != nil {
			return "", err
		}
	}

	who, err := r.commitIdentity(who)
	if err != nil {
		return "", err
	}

	if opts.All {
		if _, addErr := r.AddAll(ctx, false); addErr != nil {
			return "", addErr
		}
	}

	status, err := r.worktree.Status()
	if err != nil {
		return "", WrapError(err, "failed to get worktree status")
	}

	stagedCount := 0
	for _, fileStatus := range status {
		if fileStatus.Staging != gogit.Untracked && fileStatus.Staging != gogit.Unmodified {
			stagedCount++
		}
	}

	if stagedCount == 0 && !opts.AllowEmpty {
		return "", WrapError(ErrNothingToCommit, "no changes staged for commit")
	}

	commitOpts := &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  who.Name,
			Email: who.Email,
			When:  who.When,
		},
		Committer: &object.Signature{
			Name:  who.Name,
			Email: who.Email,
			When:  who.When,
		},
		AllowEmptyCommits: opts.AllowEmpty,
	}

	hash, err := r.worktree.Commit(msg, commitOpts)
	if err != nil {
		if errors.Is(err, gogit.ErrEmptyCommit) {
			return "", WrapError(ErrNothingToCommit, "staged tree is unchanged from HEAD")
		}
		return "", WrapError(err, "failed to create commit")
	}

	return hash.String(), nil
}

// commitIdentity fills in a missing signature from Options.Identity or the
// identity config file, and defaults the timestamp.
func (r *Repo) commitIdentity(who Signature) (Signature, error) {
	if who.zero() {
		switch {
		case r.options.Identity != nil:
			who = *r.options.Identity
		default:
			loaded, err := LoadIdentity(r.fs, r.options.Workdir)
			if err != nil {
				return Signature{}, err
			}
			if loaded == nil {
				return Signature{}, WrapError(ErrInvalidRef, "committer name and email are required")
			}
			who = *loaded
		}
	}

	if who.Name == "" || who.Email == "" {
		return Signature{}, WrapError(ErrInvalidRef, "committer name and email are required")
	}

	if who.When.IsZero() {
		who.When = time.Now()
	}
	return who, nil
}

// validateConventionalMessage rejects messages that do not parse as
// Conventional Commits.
func validateConventionalMessage(msg string) error {
	machine := parser.NewMachine(conventionalcommits.WithTypes(conventionalcommits.TypesConventional))
	if _, err := machine.Parse([]byte(msg)); err != nil {
		return WrapError(ErrInvalidRef, "commit message is not a conventional commit")
	}
	return nil
}
