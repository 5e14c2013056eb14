// Package git provides sentinel errors for common git operations.
// All errors can be checked using errors.Is() for programmatic handling.
package git

import (
	"errors"
	"fmt"
)

// Common sentinel errors that can be checked with errors.Is().
// These wrap underlying go-git errors while providing a stable API for consumers.

// ErrNotFound is returned when a revision, reference, or object cannot be
// found in the repository (absent full hash, unknown branch/tag name,
// abbreviated hash with no matching object, or HEAD before the first commit).
var ErrNotFound = errors.New("not found")

// ErrAmbiguousRef is returned when an abbreviated object id matches more
// than one object in the store. The wrapped message names the candidates.
var ErrAmbiguousRef = errors.New("ambiguous reference")

// ErrAlreadyExists is returned when creating a repository, branch, or tag
// whose name is already taken.
var ErrAlreadyExists = errors.New("already exists")

// ErrPathNotFound is returned when an explicitly named path does not exist
// in the working tree.
var ErrPathNotFound = errors.New("path not found")

// ErrNothingToCommit is returned when a commit is requested but no changes
// are staged and empty commits were not allowed.
var ErrNothingToCommit = errors.New("nothing to commit")

// ErrDirtyWorktree is returned when a checkout would overwrite uncommitted
// working tree changes and force was not requested.
var ErrDirtyWorktree = errors.New("working tree has uncommitted changes")

// ErrShellCommand is returned when a delegated native git subcommand exits
// non-zero. The wrapped message carries the exit code and stderr verbatim.
var ErrShellCommand = errors.New("git command failed")

// ErrInvalidRef is returned when a reference name or revision specification
// is malformed or invalid according to git's reference naming rules.
var ErrInvalidRef = errors.New("invalid reference")

// WrapError wraps an error with additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// WrapErrorf wraps an error with formatted additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
