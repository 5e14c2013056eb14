// Package git provides a high-level Go wrapper for go-git operations.
// It exposes task-oriented operations for repository management while operating
// exclusively through the project's native filesystem abstraction.
package git

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobilly "github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/forgekit/git/internal/fsbridge"
)

const (
	// DefaultStorerCacheSize is the default size for the LRU object cache.
	DefaultStorerCacheSize = 1000

	// DefaultWorkdir is the default worktree directory name.
	DefaultWorkdir = "."
)

// Options configures repository discovery and creation.
type Options struct {
	// FS is the REQUIRED native filesystem root (OS or in-memory).
	// All repository state lives within this filesystem.
	FS fs.Filesystem

	// Workdir is the path within FS for the worktree root.
	// Defaults to "." (current directory in FS).
	Workdir string

	// Mkdir creates the workdir before initializing. Without it, Init fails
	// with ErrAlreadyExists when a repository is already present at Workdir.
	Mkdir bool

	// Bare indicates if this should be a bare repository (.git only, no worktree).
	// Defaults to false (non-bare repository with worktree).
	Bare bool

	// StorerCacheSize sets the LRU objects cache entries.
	// Higher values improve performance but use more memory.
	// Defaults to DefaultStorerCacheSize.
	StorerCacheSize int

	// Identity is an optional default author/committer used when a commit or
	// annotated tag is created without an explicit Signature. If unset, the
	// identity is loaded from the identity config file (see LoadIdentity).
	Identity *Signature
}

// Validate checks that the Options are properly configured.
// It returns an error if required fields are missing or invalid.
func (o *Options) Validate() error {
	if o.FS == nil {
		return WrapError(ErrInvalidRef, "FS is required")
	}

	if o.StorerCacheSize < 0 {
		return WrapError(ErrInvalidRef, "StorerCacheSize cannot be negative")
	}

	return nil
}

// applyDefaults sets default values for any unset fields in Options.
func (o *Options) applyDefaults() {
	if o.Workdir == "" {
		o.Workdir = DefaultWorkdir
	}

	if o.StorerCacheSize == 0 {
		o.StorerCacheSize = DefaultStorerCacheSize
	}
}

// openStorage prepares the scoped filesystem, storage, and worktree FS for a
// repository at opts.Workdir. Both Init and Open share this layout logic.
func openStorage(opts *Options) (*filesystem.Storage, gobilly.Filesystem, error) {
	billyFS, err := fsbridge.ToBillyFilesystem(opts.FS)
	if err != nil {
		return nil, nil, fmt.Errorf("filesystem conversion failed: %w", err)
	}

	if opts.Mkdir {
		if mkErr := billyFS.MkdirAll(opts.Workdir, 0o755); mkErr != nil {
			return nil, nil, fmt.Errorf("failed to create workdir %q: %w", opts.Workdir, mkErr)
		}
	}

	// Chroot to the workdir to scope the repository location
	scopedFS, err := billyFS.Chroot(opts.Workdir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to chroot to workdir %q: %w", opts.Workdir, err)
	}

	if opts.Bare {
		// For bare repos, storage is at the root
		return fsbridge.NewStorage(scopedFS, opts.StorerCacheSize), nil, nil
	}

	// For non-bare repos, storage goes in .git subdirectory
	dotGitFS, err := scopedFS.Chroot(gogit.GitDirName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to access .git directory: %w", err)
	}
	return fsbridge.NewStorage(dotGitFS, opts.StorerCacheSize), scopedFS, nil
}

// Init creates a new git repository at the specified location.
// It initializes both bare and non-bare repositories with proper storage and
// worktree setup. If a repository already exists at Workdir and Mkdir was not
// requested, Init fails with ErrAlreadyExists.
func Init(ctx context.Context, opts *Options) (*Repo, error) {
	if err := opts.Validate(); err != nil {
		return nil, WrapError(err, "invalid options")
	}

	opts.applyDefaults()

	storage, worktreeFS, err := openStorage(opts)
	if err != nil {
		return nil, err
	}

	repo, err := gogit.Init(storage, worktreeFS)
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryAlreadyExists) {
			return nil, WrapError(ErrAlreadyExists, "repository already exists")
		}
		return nil, WrapError(err, "failed to initialize repository")
	}

	return newRepo(repo, opts)
}

// Open discovers and opens an existing git repository.
// The repository must already exist at the specified workdir within the
// filesystem; Open fails with ErrNotFound when it does not.
func Open(ctx context.Context, opts *Options) (*Repo, error) {
	if err := opts.Validate(); err != nil {
		return nil, WrapError(err, "invalid options")
	}

	opts.applyDefaults()

	storage, worktreeFS, err := openStorage(opts)
	if err != nil {
		return nil, err
	}

	repo, err := gogit.Open(storage, worktreeFS)
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, WrapError(ErrNotFound, "repository does not exist")
		}
		return nil, WrapError(err, "failed to open repository")
	}

	return newRepo(repo, opts)
}

// newRepo assembles the Repo handle and its worktree for non-bare repositories.
func newRepo(repo *gogit.Repository, opts *Options) (*Repo, error) {
	r := &Repo{
		repo:    repo,
		fs:      opts.FS,
		options: *opts,
	}

	if !opts.Bare {
		worktree, err := repo.Worktree()
		if err != nil {
			return nil, WrapError(err, "failed to get worktree")
		}
		r.worktree = worktree
	}

	return r, nil
}

// Signature represents an author/committer signature for commits and tags.
// This is used when creating commits and annotated tags to identify the author.
type Signature struct {
	// Name is the author's or committer's name.
	Name string

	// Email is the author's or committer's email address.
	Email string

	// When is the timestamp for the signature.
	When time.Time
}

// zero reports whether the signature carries no identity.
func (s Signature) zero() bool {
	return s.Name == "" && s.Email == ""
}

// CommitOpts configures commit creation behavior.
// These options control how commits are created and what files are included.
type CommitOpts struct {
	// AllowEmpty allows creating commits with no changes.
	// By default, empty commits fail with ErrNothingToCommit.
	AllowEmpty bool

	// All stages all modified tracked files before committing,
	// equivalent to 'git commit -a'. Untracked files are not added.
	All bool

	// Conventional validates the commit message against the Conventional
	// Commits specification and rejects messages that do not parse.
	Conventional bool
}

// Repo represents a git repository and provides high-level operations.
// It wraps a go-git Repository and Worktree, operating exclusively through
// the project's native filesystem abstraction.
type Repo struct {
	repo     *gogit.Repository
	worktree *gogit.Worktree
	fs       fs.Filesystem
	options  Options
}

// workdirFS returns the billy filesystem scoped to the worktree root.
func (r *Repo) workdirFS() (gobilly.Filesystem, error) {
	billyFS, err := fsbridge.ToBillyFilesystem(r.fs)
	if err != nil {
		return nil, WrapError(err, "failed to convert filesystem")
	}

	scoped, err := billyFS.Chroot(r.options.Workdir)
	if err != nil {
		return nil, WrapErrorf(err, "failed to chroot to workdir %q", r.options.Workdir)
	}
	return scoped, nil
}
