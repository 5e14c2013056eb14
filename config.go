// Package git provides a high-level Go wrapper for go-git operations.
// This file contains the default commit identity configuration.
package git

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	gogit "github.com/go-git/go-git/v5"
	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/forgekit/git/internal/fsbridge"
)

const (
	// identityFileName is the repo-local identity file inside .git.
	identityFileName = "identity.toml"

	// identityConfigRel is the XDG-relative path of the global identity file.
	identityConfigRel = "forgekit/identity.toml"
)

// identityConfig is the on-disk shape of an identity file.
type identityConfig struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// LoadIdentity loads the default commit identity for a repository. The
// repo-local file .git/identity.toml takes precedence; otherwise the global
// XDG config file is consulted. When neither exists, (nil, nil) is returned
// and callers must supply an explicit Signature.
func LoadIdentity(fsys fs.Filesystem, workdir string) (*Signature, error) {
	if sig, err := loadRepoIdentity(fsys, workdir); err != nil || sig != nil {
		return sig, err
	}
	return loadGlobalIdentity()
}

func loadRepoIdentity(fsys fs.Filesystem, workdir string) (*Signature, error) {
	billyFS, err := fsbridge.ToBillyFilesystem(fsys)
	if err != nil {
		return nil, WrapError(err, "failed to convert filesystem")
	}

	path := filepath.Join(workdir, gogit.GitDirName, identityFileName)
	f, err := billyFS.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, WrapError(err, "failed to open identity config")
	}
	defer f.Close()

	var cfg identityConfig
	if _, err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, WrapError(err, "failed to parse identity config")
	}
	return cfg.signature(), nil
}

func loadGlobalIdentity() (*Signature, error) {
	path, err := xdg.SearchConfigFile(identityConfigRel)
	if err != nil {
		// Not configured globally.
		return nil, nil
	}

	var cfg identityConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, WrapError(err, "failed to parse global identity config")
	}
	return cfg.signature(), nil
}

func (c identityConfig) signature() *Signature {
	if c.Name == "" && c.Email == "" {
		return nil
	}
	return &Signature{Name: c.Name, Email: c.Email}
}

// SaveIdentity writes the repo-local identity file. Subsequent commits made
// without an explicit Signature use this identity.
func (r *Repo) SaveIdentity(who Signature) error {
	if who.Name == "" || who.Email == "" {
		return WrapError(ErrInvalidRef, "identity requires both name and email")
	}

	billyFS, err := fsbridge.ToBillyFilesystem(r.fs)
	if err != nil {
		return WrapError(err, "failed to convert filesystem")
	}

	path := filepath.Join(r.options.Workdir, gogit.GitDirName, identityFileName)
	f, err := billyFS.Create(path)
	if err != nil {
		return WrapError(err, "failed to create identity config")
	}
	defer f.Close()

	cfg := identityConfig{Name: who.Name, Email: who.Email}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return WrapError(err, "failed to write identity config")
	}
	return nil
}
