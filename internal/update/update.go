// Package update keeps the hermit binary and the agent skills current.
// Release artifacts are compared by Last-Modified date against a cached
// copy, so the common no-update path costs two HEAD requests.
package update

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/xdg/hermit/internal/config"
	"github.com/xdg/hermit/internal/pathutil"
	"github.com/xdg/hermit/internal/prompt"
	"github.com/xdg/hermit/internal/term"
)

const (
	binaryCacheName = "binary-lastmod"
	skillsCacheName = "skills-lastmod"
)

// Updater checks for and applies updates.
type Updater struct {
	Client    *http.Client
	BinaryURL string
	SkillsURL string
	CacheDir  string
	SkillsDir string

	// confirm asks the user whether to apply available updates.
	// Replaceable for tests.
	confirm func(question string) bool
}

// New creates an Updater from the update configuration.
func New(cfg config.UpdateConfig) *Updater {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Updater{
		Client:    &http.Client{Timeout: 30 * time.Second},
		BinaryURL: cfg.BinaryURL,
		SkillsURL: cfg.SkillsURL,
		CacheDir:  pathutil.CacheDir(),
		SkillsDir: filepath.Join(home, ".claude", "skills"),
		confirm:   confirmInteractive,
	}
}

func confirmInteractive(question string) bool {
	if !prompt.StdinIsTerminal() {
		return false
	}
	c := prompt.NewStdinConfirmer(os.Stdin, os.Stderr)
	ok, err := c.Confirm(question, false)
	if err != nil {
		return false
	}
	return ok
}

// Status reports which artifacts have a newer release. An empty string
// means up to date (or not tracked yet).
type Status struct {
	Binary string
	Skills string
}

// Any reports whether any update is available.
func (s Status) Any() bool {
	return s.Binary != "" || s.Skills != ""
}

// CheckAvailable compares remote Last-Modified dates with the cache.
// On the very first run the binary cache is seeded silently: the
// just-installed binary is current by definition. Skills are only
// tracked once they have been installed at least once.
func (u *Updater) CheckAvailable() Status {
	var status Status

	if remote, err := u.lastModified(u.BinaryURL); err == nil {
		local, ok := u.readCache(binaryCacheName)
		switch {
		case !ok:
			u.writeCache(binaryCacheName, remote)
		case local != remote:
			status.Binary = remote
		}
	}

	if local, ok := u.readCache(skillsCacheName); ok {
		if remote, err := u.lastModified(u.SkillsURL); err == nil && local != remote {
			status.Skills = remote
		}
	}

	return status
}

// Perform applies available updates after asking the user. It returns
// true when the container image should also be pulled: either nothing
// was pending, or updates were applied. A declined prompt (or one that
// cannot be asked) returns false, leaving everything as is.
//
// A binary update does not return: the new binary is re-executed in
// place with the original arguments.
func (u *Updater) Perform(status Status, auto bool) bool {
	if !status.Any() {
		return true
	}

	if !auto {
		if term.IsQuiet() {
			return false
		}
		if !u.confirm(updatePrompt(status)) {
			return false
		}
	}

	if status.Skills != "" {
		if err := u.InstallSkills(); err != nil {
			term.Error("failed to install skills: %v", err)
		}
	}

	if status.Binary != "" {
		if err := u.updateBinary(status.Binary); err != nil {
			term.Error("failed to update binary: %v", err)
		}
	}

	return true
}

func updatePrompt(status Status) string {
	switch {
	case status.Binary != "" && status.Skills != "":
		return "Updates available: binary, skills, container image. Update now?"
	case status.Binary != "":
		return "Updates available: binary, container image. Update now?"
	default:
		return "Updates available: skills, container image. Update now?"
	}
}

// lastModified fetches the Last-Modified header of url via HEAD.
func (u *Updater) lastModified(url string) (string, error) {
	resp, err := u.Client.Head(url)
	if err != nil {
		return "", fmt.Errorf("head %s: %w", url, err)
	}
	defer resp.Body.Close()

	lm := resp.Header.Get("Last-Modified")
	if lm == "" {
		return "", fmt.Errorf("no Last-Modified header from %s", url)
	}
	return lm, nil
}

func (u *Updater) readCache(name string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(u.CacheDir, name))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (u *Updater) writeCache(name, content string) {
	if err := os.MkdirAll(u.CacheDir, 0o700); err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(u.CacheDir, name), []byte(content), 0o600)
}
