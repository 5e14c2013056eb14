// Package git provides high-level Git operations through a clean facade.
// This file contains history-related operations including commit logging and iteration.
package git

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Head returns the commit HEAD currently points at.
// Fails with ErrNotFound before the first commit.
func (r *Repo) Head(ctx context.Context) (*object.Commit, error) {
	resolved, err := r.resolveHead()
	if err != nil {
		return nil, err
	}

	commit, err := r.repo.CommitObject(plumbing.NewHash(resolved.Hash))
	if err != nil {
		return nil, WrapError(err, "failed to get HEAD commit")
	}
	return commit, nil
}

// CommitAt returns the commit a revision resolves to. Any revision form
// accepted by Resolve works: branch, tag, HEAD, full or abbreviated hash.
// A revision naming a non-commit object fails with ErrNotFound.
func (r *Repo) CommitAt(ctx context.Context, rev string) (*object.Commit, error) {
	hash, err := r.resolveHash(ctx, rev)
	if err != nil {
		return nil, err
	}

	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, WrapErrorf(ErrNotFound, "revision %q does not name a commit", rev)
	}
	return commit, nil
}

// TreeAt returns the tree of the commit a revision resolves to.
func (r *Repo) TreeAt(ctx context.Context, rev string) (*object.Tree, error) {
	commit, err := r.CommitAt(ctx, rev)
	if err != nil {
		return nil, err
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, WrapError(err, "failed to get tree")
	}
	return tree, nil
}

// CommitWalk is a restartable walk over commit history from a fixed start
// point. Each call to Iter yields a fresh lazy iterator, so callers can stop
// early and walk again without recomputing the start revision.
type CommitWalk struct {
	repo  *Repo
	start plumbing.Hash
}

// Commits prepares a walk of commit history starting at the resolved start
// revision (default HEAD when start is empty) and following parent links in
// reverse-chronological order down to the root commit.
func (r *Repo) Commits(ctx context.Context, start string) (*CommitWalk, error) {
	if start == "" {
		start = "HEAD"
	}

	hash, err := r.resolveHash(ctx, start)
	if err != nil {
		return nil, WrapErrorf(err, "failed to resolve start revision %q", start)
	}

	return &CommitWalk{repo: r, start: hash}, nil
}

// Iter returns a new lazy iterator over the walk, positioned at the start
// commit. The iterator should be closed when no longer needed.
func (w *CommitWalk) Iter(ctx context.Context) (*CommitIter, error) {
	iter, err := w.repo.repo.Log(&gogit.LogOptions{From: w.start})
	if err != nil {
		return nil, WrapError(err, "failed to create commit iterator")
	}
	return &CommitIter{iter: iter}, nil
}

// List walks the history and collects up to n commits, or all of them when
// n <= 0. The walk itself remains reusable afterwards.
func (w *CommitWalk) List(ctx context.Context, n int) ([]*object.Commit, error) {
	iter, err := w.Iter(ctx)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var commits []*object.Commit
	for n <= 0 || len(commits) < n {
		commit, err := iter.Next()
		if err != nil {
			return nil, err
		}
		if commit == nil {
			break
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

// LogFilter configures which commits to include in log operations.
// Use this to filter commits by time range, author, paths, or limit the result count.
type LogFilter struct {
	// Start is the revision the log starts from. Defaults to HEAD.
	Start string

	// Since limits the log to commits after the specified time.
	Since *time.Time

	// Until limits the log to commits before the specified time.
	Until *time.Time

	// Author filters commits by author name/email substring.
	Author string

	// Path filters commits that modified the specified path(s).
	Path []string

	// MaxCount limits the number of commits returned.
	// If 0, all matching commits are returned.
	MaxCount int
}

// CommitIter represents an iterator over commits returned by Log operations.
// It provides methods to iterate through commits without loading
// all commits into memory at once.
type CommitIter struct {
	iter object.CommitIter
}

// Next returns the next commit in the iteration.
// Returns nil when iteration is complete.
func (ci *CommitIter) Next() (*object.Commit, error) {
	commit, err := ci.iter.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, WrapError(err, "failed to get next commit")
	}
	return commit, nil
}

// ForEach executes the provided function for each commit in the iterator.
// Iteration stops if the function returns an error.
func (ci *CommitIter) ForEach(fn func(*object.Commit) error) error {
	err := ci.iter.ForEach(fn)
	if err != nil && !errors.Is(err, io.EOF) {
		return WrapError(err, "failed to iterate commits")
	}
	return nil
}

// Close closes the iterator and releases any associated resources.
func (ci *CommitIter) Close() {
	ci.iter.Close()
}

// Log returns a commit iterator with the specified filters applied.
// The returned CommitIter should be closed when no longer needed.
func (r *Repo) Log(ctx context.Context, f LogFilter) (*CommitIter, error) {
	logOpts := &gogit.LogOptions{}

	if f.Start != "" {
		hash, err := r.resolveHash(ctx, f.Start)
		if err != nil {
			return nil, WrapErrorf(err, "failed to resolve start revision %q", f.Start)
		}
		logOpts.From = hash
	}

	if f.Since != nil {
		logOpts.Since = f.Since
	}
	if f.Until != nil {
		logOpts.Until = f.Until
	}

	if len(f.Path) > 0 {
		paths := f.Path
		logOpts.PathFilter = func(path string) bool {
			for _, filterPath := range paths {
				if strings.Contains(path, filterPath) {
					return true
				}
			}
			return false
		}
	}

	iter, err := r.repo.Log(logOpts)
	if err != nil {
		return nil, WrapError(err, "failed to create commit iterator")
	}

	commitIter := &CommitIter{iter: iter}

	// go-git has no author filtering in LogOptions; post-filter instead.
	if f.Author != "" {
		commitIter = &CommitIter{iter: &authorFilteredCommitIter{
			iter:   commitIter,
			author: f.Author,
		}}
	}

	if f.MaxCount > 0 {
		commitIter = &CommitIter{iter: &limitedCommitIter{
			iter:     commitIter,
			maxCount: f.MaxCount,
		}}
	}

	return commitIter, nil
}

// limitedCommitIter wraps a CommitIter to limit the number of commits returned
type limitedCommitIter struct {
	iter     *CommitIter
	maxCount int
	count    int
}

// Next returns the next commit or nil if max count is reached
func (l *limitedCommitIter) Next() (*object.Commit, error) {
	if l.count >= l.maxCount {
		return nil, io.EOF
	}
	commit, err := l.iter.Next()
	if err != nil {
		return nil, err
	}
	if commit == nil {
		return nil, io.EOF
	}
	l.count++
	return commit, nil
}

// ForEach executes the function for each commit up to the max count
func (l *limitedCommitIter) ForEach(fn func(*object.Commit) error) error {
	for l.count < l.maxCount {
		commit, err := l.iter.Next()
		if err != nil {
			return err
		}
		if commit == nil {
			break
		}
		if err := fn(commit); err != nil {
			return err
		}
		l.count++
	}
	return nil
}

// Close closes the underlying iterator
func (l *limitedCommitIter) Close() {
	l.iter.Close()
}

// authorFilteredCommitIter wraps a CommitIter to filter commits by author
type authorFilteredCommitIter struct {
	iter   *CommitIter
	author string
}

func (a *authorFilteredCommitIter) matches(commit *object.Commit) bool {
	return strings.Contains(commit.Author.Name, a.author) ||
		strings.Contains(commit.Author.Email, a.author) ||
		strings.Contains(commit.Committer.Name, a.author) ||
		strings.Contains(commit.Committer.Email, a.author)
}

// Next returns the next commit that matches the author filter
func (a *authorFilteredCommitIter) Next() (*object.Commit, error) {
	for {
		commit, err := a.iter.Next()
		if err != nil {
			return nil, err
		}
		if commit == nil {
			return nil, io.EOF
		}
		if a.matches(commit) {
			return commit, nil
		}
	}
}

// ForEach executes the function for each commit that matches the author filter
func (a *authorFilteredCommitIter) ForEach(fn func(*object.Commit) error) error {
	for {
		commit, err := a.iter.Next()
		if err != nil {
			return err
		}
		if commit == nil {
			return nil
		}
		if a.matches(commit) {
			if err := fn(commit); err != nil {
				return err
			}
		}
	}
}

// Close closes the underlying iterator
func (a *authorFilteredCommitIter) Close() {
	a.iter.Close()
}
