// Package project resolves the workspace's GitHub repository slug
// (owner/repo) from git remote configuration.
package project

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoRemote indicates the repository has no origin remote configured.
var ErrNoRemote = errors.New("no origin remote configured")

// ErrNotGitHubRemote indicates the origin remote URL is not a
// recognized GitHub URL, so no slug can be derived from it.
var ErrNotGitHubRemote = errors.New("origin remote is not a github.com URL")

// GitError represents a failed git command with stderr output.
type GitError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *GitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s failed: %v\nstderr: %s", strings.Join(e.Args, " "), e.Err, e.Stderr)
	}
	return fmt.Sprintf("git %s failed: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// runGit executes a git command in dir and returns trimmed stdout.
// If dir is empty, uses the current working directory.
func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &GitError{Args: args, Stderr: stderr.String(), Err: err}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Slug returns the owner/repo slug for the repository at dir.
// It reads the origin remote URL and parses the common GitHub forms.
func Slug(dir string) (string, error) {
	url, err := runGit(dir, "remote", "get-url", "origin")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoRemote, err)
	}

	slug, ok := SlugFromRemote(url)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotGitHubRemote, url)
	}
	return slug, nil
}

// SlugFromRemote extracts owner/repo from a GitHub remote URL.
// Recognized forms:
//   - git@github.com:owner/repo.git
//   - https://github.com/owner/repo[.git]
//   - http://github.com/owner/repo[.git]
//   - ssh://git@github.com/owner/repo[.git]
func SlugFromRemote(url string) (string, bool) {
	for _, prefix := range []string{
		"git@github.com:",
		"https://github.com/",
		"http://github.com/",
		"ssh://git@github.com/",
	} {
		if rest, ok := strings.CutPrefix(url, prefix); ok {
			slug := strings.TrimSuffix(strings.TrimSuffix(rest, "/"), ".git")
			if slug == "" || !strings.Contains(slug, "/") {
				return "", false
			}
			return slug, true
		}
	}
	return "", false
}

// Config returns a git configuration value, or an empty string when the
// key is unset or git is unavailable. Used to forward user identity
// into the container.
func Config(key string) string {
	out, err := runGit("", "config", key)
	if err != nil {
		return ""
	}
	return out
}
