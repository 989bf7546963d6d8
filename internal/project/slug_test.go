package project

import (
	"errors"
	"os/exec"
	"testing"
)

func TestSlugFromRemote(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
		ok   bool
	}{
		{"ssh shorthand", "git@github.com:xdg/hermit.git", "xdg/hermit", true},
		{"ssh shorthand no suffix", "git@github.com:xdg/hermit", "xdg/hermit", true},
		{"https", "https://github.com/xdg/hermit.git", "xdg/hermit", true},
		{"https no suffix", "https://github.com/xdg/hermit", "xdg/hermit", true},
		{"http", "http://github.com/xdg/hermit.git", "xdg/hermit", true},
		{"ssh url", "ssh://git@github.com/xdg/hermit.git", "xdg/hermit", true},
		{"trailing slash", "https://github.com/xdg/hermit/", "xdg/hermit", true},
		{"other host", "git@gitlab.com:xdg/hermit.git", "", false},
		{"missing repo", "https://github.com/xdg", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SlugFromRemote(tt.url)
			if got != tt.want || ok != tt.ok {
				t.Errorf("SlugFromRemote(%q) = (%q, %v), want (%q, %v)",
					tt.url, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSlugNoRemote(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	if out, err := exec.Command("git", "-C", dir, "init", "-q").CombinedOutput(); err != nil {
		t.Fatalf("git init: %v\n%s", err, out)
	}

	_, err := Slug(dir)
	if !errors.Is(err, ErrNoRemote) {
		t.Errorf("Slug in remote-less repo returned %v, want ErrNoRemote", err)
	}
}

func TestSlugNonGitHubRemote(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	if out, err := exec.Command("git", "-C", dir, "init", "-q").CombinedOutput(); err != nil {
		t.Fatalf("git init: %v\n%s", err, out)
	}
	if out, err := exec.Command("git", "-C", dir, "remote", "add", "origin",
		"git@gitlab.com:xdg/hermit.git").CombinedOutput(); err != nil {
		t.Fatalf("git remote add: %v\n%s", err, out)
	}

	_, err := Slug(dir)
	if !errors.Is(err, ErrNotGitHubRemote) {
		t.Errorf("Slug with gitlab remote returned %v, want ErrNotGitHubRemote", err)
	}
}
