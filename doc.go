// Package git provides a high-level, idiomatic Go wrapper for git operations.
//
// This package offers a clean facade over go-git, exposing task-oriented operations
// for common local git workflows while enforcing the use of the project's native
// filesystem abstraction. All operations work with both on-disk and in-memory
// repositories.
//
// # Design Principles
//
// The package follows these core principles:
//   - Minimal surface area - easy to learn and extend
//   - Testability by construction - in-memory FS, controlled side effects
//   - Explicit revision handling - abbreviation and ambiguity are modeled, not guessed
//   - Go idioms - accepts interfaces, returns concrete types
//
// # Basic Usage
//
// Initialize or open a repository:
//
//	import (
//	    "context"
//	    billyfs "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
//	    "github.com/forgekit/git"
//	)
//
//	// Create filesystem (can be OS-backed or in-memory)
//	fs := billyfs.NewOSFS("/path/to/repo")
//
//	// Open existing repository
//	repo, err := git.Open(context.Background(), &git.Options{
//	    FS: fs,
//	    Workdir: ".",
//	})
//
//	// Or initialize new repository
//	repo, err := git.Init(context.Background(), &git.Options{
//	    FS: fs,
//	    Workdir: ".",
//	})
//
// # Making Commits
//
// Stage files and create commits:
//
//	// Stage explicit files; the staged paths come back
//	staged, err := repo.Add(ctx, "file1.go", "file2.go")
//
//	// Or stage every change, honoring .gitignore for untracked files
//	staged, err = repo.AddAll(ctx, true)
//
//	// Create commit
//	sha, err := repo.Commit(ctx, "feat: add new feature", git.Signature{
//	    Name:  "John Doe",
//	    Email: "john@example.com",
//	}, git.CommitOpts{})
//
// A default identity can be stored with SaveIdentity or configured via
// Options.Identity, in which case the Signature argument may be left zero.
//
// # Resolving Revisions
//
// Every operation that takes a revision accepts branch names, tag names, HEAD,
// full hashes, and abbreviated hashes (minimum 4 hex characters):
//
//	resolved, err := repo.Resolve(ctx, "1f7a")
//	if errors.Is(err, git.ErrAmbiguousRef) {
//	    // More than one object shares the prefix; the error names them.
//	}
//
// Names shadow abbreviations: a branch called "beef" wins over objects whose
// ids start with beef, matching git's own behavior.
//
// # Branches, Tags, and Checkout
//
//	// Create new branch from current HEAD
//	err = repo.CreateBranch(ctx, "feature/new", "HEAD", false)
//
//	// Switch to it (refuses to clobber a dirty worktree unless forced)
//	err = repo.Checkout(ctx, "feature/new", false)
//
//	// Create annotated tag
//	err = repo.CreateTag(ctx, "v1.0.0", "HEAD", "Release v1.0.0", true)
//
//	// List tags matching pattern
//	tags, err := repo.Tags(ctx, git.TagPatternFilter("v*"))
//
// # History and Diffs
//
// Query commit history and compute diffs:
//
//	// Restartable walk from a revision
//	walk, err := repo.Commits(ctx, "HEAD")
//	commits, err := walk.List(ctx, 10)
//
//	// Or a filtered log
//	iter, err := repo.Log(ctx, git.LogFilter{
//	    Author:   "John",
//	    MaxCount: 10,
//	})
//	defer iter.Close()
//
//	err = iter.ForEach(func(c *object.Commit) error {
//	    fmt.Printf("%s: %s\n", c.Hash, c.Message)
//	    return nil
//	})
//
//	// Diff two revisions, or a revision against the working tree
//	patch, err := repo.Diff(ctx, "main", "feature/new", git.ExtensionFilter(".go"))
//	patch, err = repo.Diff(ctx, "HEAD", "")
//	fmt.Println(patch.Text)
//
// # Shelling Out
//
// Operations the facade does not model can be run through the native binary:
//
//	out, err := repo.Cmd(ctx, "gc", "--aggressive")
//	if errors.Is(err, git.ErrShellCommand) {
//	    // Non-zero exit; the error carries the exit code and stderr.
//	}
//
// Cmd requires an OS-backed filesystem; in-memory repositories have no path
// the binary can see.
//
// # In-Memory Operations
//
// All library operations can run entirely in memory for testing:
//
//	memFS := billyfs.NewInMemoryFS()
//
//	repo, err := git.Init(ctx, &git.Options{
//	    FS:      memFS,
//	    Workdir: "/",
//	})
//
//	err = memFS.WriteFile("test.txt", []byte("content"), 0644)
//	staged, err := repo.Add(ctx, "test.txt")
//	sha, err := repo.Commit(ctx, "test commit", sig, git.CommitOpts{})
//
// # Error Handling
//
// The package provides sentinel errors for common conditions:
//
//	err := repo.Checkout(ctx, "feature/new", false)
//	if errors.Is(err, git.ErrDirtyWorktree) {
//	    // Uncommitted changes would be overwritten
//	}
//	if errors.Is(err, git.ErrNotFound) {
//	    // No such branch, tag, or object
//	}
//
// # Thread Safety
//
// A Repo instance is NOT safe for concurrent writes. Read operations
// (Log, Diff, Refs, Resolve, CurrentBranch, etc.) can be called concurrently.
// Write operations (Add, Commit, Checkout, etc.) must be serialized.
//
// # Limitations
//
// This package intentionally does not model:
//   - Remote synchronization (clone, fetch, pull, push)
//   - Interactive operations (rebase -i, add -i)
//   - Complex merge conflict resolution
//   - Submodule management
//
// Anything outside the facade can still be reached through Cmd, which invokes
// the native git binary against the repository.
package git
