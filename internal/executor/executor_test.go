package executor

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRunSuccess(t *testing.T) {
	r := NewExecRunner()

	res, err := r.Run(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if got := strings.TrimSpace(res.Stdout); got != "hello" {
		t.Errorf("Stdout = %q, want %q", got, "hello")
	}
}

func TestRunProxiesNonzeroExit(t *testing.T) {
	r := NewExecRunner()

	res, err := r.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	if err != nil {
		t.Fatalf("Run: %v (nonzero exit must not be an error)", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if got := strings.TrimSpace(res.Stderr); got != "oops" {
		t.Errorf("Stderr = %q, want %q", got, "oops")
	}
}

func TestRunMissingBinaryIsSpawnError(t *testing.T) {
	r := NewExecRunner()

	_, err := r.Run(context.Background(), "hermit-no-such-binary-xyz")
	if err == nil {
		t.Fatal("Run succeeded, want SpawnError")
	}

	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("error %v is not a SpawnError", err)
	}
	if spawnErr.Command != "hermit-no-such-binary-xyz" {
		t.Errorf("SpawnError.Command = %q", spawnErr.Command)
	}
}
