// Package git provides a high-level Go wrapper for go-git operations.
// This file contains the escape hatch to the native git binary.
package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// GitInstalled reports whether a git binary is available on the system PATH.
func GitInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Cmd runs the native git binary against this repository and returns its
// stdout. The arguments are passed verbatim after the repository location
// flags, so Cmd(ctx, "gc", "--aggressive") runs
// `git --git-dir ... --work-tree ... gc --aggressive`.
//
// This is the escape hatch for operations the library does not model. It only
// works when the repository lives on an OS-backed filesystem; in-memory
// repositories have no path the binary can see. A non-zero exit fails with
// ErrShellCommand carrying the exit code and stderr output.
func (r *Repo) Cmd(ctx context.Context, args ...string) (string, error) {
	if len(args) == 0 {
		return "", WrapError(ErrShellCommand, "no git subcommand given")
	}

	root, err := r.osRoot()
	if err != nil {
		return "", err
	}

	gitArgs := make([]string, 0, len(args)+4)
	if r.options.Bare {
		gitArgs = append(gitArgs, "--git-dir", root)
	} else {
		gitArgs = append(gitArgs, "--git-dir", filepath.Join(root, gogit.GitDirName))
		gitArgs = append(gitArgs, "--work-tree", root)
	}
	gitArgs = append(gitArgs, args...)

	cmd := exec.CommandContext(ctx, "git", gitArgs...)
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", WrapErrorf(ErrShellCommand, "git %s exited with code %d: %s",
				strings.Join(args, " "), exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return "", WrapErrorf(ErrShellCommand, "git %s: %v", strings.Join(args, " "), err)
	}

	return stdout.String(), nil
}

// osRoot returns the worktree root as an OS path for the native binary.
// Billy filesystems report their root path, but only OS-backed ones name a
// path that actually exists on disk.
func (r *Repo) osRoot() (string, error) {
	workdirFS, err := r.workdirFS()
	if err != nil {
		return "", err
	}

	root := workdirFS.Root()
	if info, statErr := os.Stat(root); statErr != nil || !info.IsDir() {
		return "", WrapError(ErrShellCommand, "shelling out requires an OS-backed filesystem")
	}
	return root, nil
}
