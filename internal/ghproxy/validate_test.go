package ghproxy

import (
	"strings"
	"testing"
)

func allowed(t *testing.T, args ...string) {
	t.Helper()
	if err := Validate(args); err != nil {
		t.Errorf("Validate(%q) = %v, want allowed", args, err)
	}
}

func denied(t *testing.T, args ...string) string {
	t.Helper()
	err := Validate(args)
	if err == nil {
		t.Errorf("Validate(%q) allowed, want denied", args)
		return ""
	}
	return err.Error()
}

func TestReadCommandsAllowed(t *testing.T) {
	allowed(t, "pr", "list")
	allowed(t, "pr", "list", "--state", "open")
	allowed(t, "pr", "view", "123", "--json", "title")
	allowed(t, "pr", "diff", "123")
	allowed(t, "pr", "checks", "123")
	allowed(t, "issue", "list", "--limit", "10")
	allowed(t, "issue", "view", "42", "--comments")
	allowed(t, "repo", "view", "--json", "description")
	allowed(t, "release", "list")
	allowed(t, "release", "view", "v1.0")
	allowed(t, "run", "list")
	allowed(t, "run", "view", "12345", "--log")
}

func TestReadCommandsAllowRepoFlag(t *testing.T) {
	allowed(t, "pr", "list", "-R", "owner/repo")
	allowed(t, "pr", "list", "--repo", "owner/repo")
	allowed(t, "issue", "view", "1", "--repo=owner/repo")
}

func TestWriteCommandsAllowed(t *testing.T) {
	allowed(t, "pr", "create", "--title", "foo", "--body", "bar")
	allowed(t, "pr", "comment", "123", "--body", "hi")
	allowed(t, "issue", "create", "--title", "bug")
	allowed(t, "issue", "comment", "42", "--body", "x")
}

func TestWriteCommandsBlockRepoFlag(t *testing.T) {
	reason := denied(t, "pr", "create", "-R", "other/repo", "--title", "foo")
	if !strings.Contains(reason, "flag not allowed") {
		t.Errorf("reason = %q, want flag rejection", reason)
	}

	denied(t, "pr", "create", "--repo", "other/repo")
	denied(t, "pr", "create", "--repo=other/repo")
	denied(t, "issue", "create", "--repo", "other/repo")
	denied(t, "issue", "comment", "1", "-R", "other/repo")
}

func TestWriteCommandsBlockBodyFile(t *testing.T) {
	reason := denied(t, "pr", "create", "--title", "t", "--body-file", "/etc/passwd")
	if !strings.Contains(reason, "--body-file") {
		t.Errorf("reason = %q, want --body-file named", reason)
	}

	denied(t, "pr", "comment", "1", "-F", "file.txt")
	denied(t, "issue", "create", "--body-file", "f")
}

func TestUnknownFlagsRejected(t *testing.T) {
	reason := denied(t, "pr", "list", "--some-future-flag")
	if !strings.Contains(reason, "flag not allowed") {
		t.Errorf("reason = %q, want flag rejection", reason)
	}
}

func TestLongFlagWithEquals(t *testing.T) {
	allowed(t, "pr", "list", "--state=open")
	denied(t, "pr", "list", "--bogus=value")
}

func TestDoubleDashSeparator(t *testing.T) {
	// After --, everything is positional.
	allowed(t, "pr", "list", "--", "--not-a-flag")
}

func TestPositionalArgsAllowed(t *testing.T) {
	allowed(t, "pr", "view", "123")
	allowed(t, "issue", "view", "42")
	allowed(t, "release", "view", "v1.0.0")
}

func TestDisallowedCommands(t *testing.T) {
	denied(t, "api", "repos")
	denied(t, "auth", "login")
	denied(t, "secret", "set")
	denied(t, "ssh-key", "list")
	denied(t, "gpg-key", "list")
	denied(t, "pr", "merge", "123")
	denied(t, "pr", "close", "123")
	denied(t, "pr", "edit", "123")
	denied(t, "issue", "close", "42")
	denied(t, "issue", "edit", "42")
	denied(t, "repo", "create")
	denied(t, "repo", "delete")
	denied(t, "release", "create")
	denied(t, "release", "delete")
	denied(t, "run", "rerun")
	denied(t, "run", "cancel")
}

func TestShortArgVectors(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Error("Validate(nil) allowed, want denied")
	}
	reason := denied(t, "pr")
	if !strings.Contains(reason, "command not allowed: gh pr") {
		t.Errorf("reason = %q", reason)
	}
}

func TestDenialMessages(t *testing.T) {
	if got := denied(t, "pr", "merge"); got != "command not allowed: gh pr merge" {
		t.Errorf("reason = %q", got)
	}
	if got := denied(t, "pr", "create", "--repo", "x/y"); got != "flag not allowed for gh pr create: --repo" {
		t.Errorf("reason = %q", got)
	}
}
