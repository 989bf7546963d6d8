package clipboard

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeAged(t *testing.T, path string, data []byte, age time.Duration) {
	t.Helper()
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if age > 0 {
		mtime := time.Now().Add(-age)
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatalf("chtimes %s: %v", path, err)
		}
	}
}

func TestFindNewestEmptyDir(t *testing.T) {
	_, err := FindNewest(t.TempDir(), DefaultMaxAge, []string{"*"})

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if !strings.Contains(notFound.Error(), "no screenshot younger than 120s") {
		t.Errorf("message = %q", notFound.Error())
	}
}

func TestFindNewestOnlyOldFiles(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, filepath.Join(dir, "old.png"), []byte("PNG old"), 5*time.Minute)

	_, err := FindNewest(dir, DefaultMaxAge, []string{"*"})

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if notFound.Dir != dir {
		t.Errorf("Dir = %q, want %q", notFound.Dir, dir)
	}
}

func TestFindNewestPicksNewest(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, filepath.Join(dir, "older.png"), []byte("PNG older"), 30*time.Second)
	writeAged(t, filepath.Join(dir, "newest.png"), []byte("PNG newest"), 0)

	got, err := FindNewest(dir, DefaultMaxAge, []string{"*"})
	if err != nil {
		t.Fatalf("FindNewest: %v", err)
	}
	if string(got) != "PNG newest" {
		t.Errorf("got %q, want newest file", got)
	}
}

func TestFindNewestSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "subdir"), 0755); err != nil {
		t.Fatal(err)
	}
	writeAged(t, filepath.Join(dir, "screenshot.png"), []byte("PNG data"), 0)

	got, err := FindNewest(dir, DefaultMaxAge, []string{"*"})
	if err != nil {
		t.Fatalf("FindNewest: %v", err)
	}
	if string(got) != "PNG data" {
		t.Errorf("got %q", got)
	}
}

func TestFindNewestFreshSubdirNeverReturned(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "fresh-subdir"), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := FindNewest(dir, DefaultMaxAge, []string{"*"})

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestFindNewestFollowsSymlinks(t *testing.T) {
	targetDir := t.TempDir()
	target := filepath.Join(targetDir, "capture.png")
	writeAged(t, target, []byte("PNG linked"), 0)

	dir := t.TempDir()
	if err := os.Symlink(target, filepath.Join(dir, "latest.png")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := FindNewest(dir, DefaultMaxAge, []string{"*"})
	if err != nil {
		t.Fatalf("FindNewest: %v", err)
	}
	if string(got) != "PNG linked" {
		t.Errorf("got %q, want symlink target contents", got)
	}
}

func TestFindNewestSkipsDanglingSymlinks(t *testing.T) {
	dir := t.TempDir()
	if err := os.Symlink(filepath.Join(dir, "gone.png"), filepath.Join(dir, "latest.png")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	writeAged(t, filepath.Join(dir, "real.png"), []byte("PNG real"), 0)

	got, err := FindNewest(dir, DefaultMaxAge, []string{"*"})
	if err != nil {
		t.Fatalf("FindNewest: %v", err)
	}
	if string(got) != "PNG real" {
		t.Errorf("got %q", got)
	}
}

func TestFindNewestPatternFilter(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, filepath.Join(dir, "notes.txt"), []byte("text"), 0)
	writeAged(t, filepath.Join(dir, "shot.png"), []byte("PNG"), 30*time.Second)

	got, err := FindNewest(dir, DefaultMaxAge, []string{"*.png"})
	if err != nil {
		t.Fatalf("FindNewest: %v", err)
	}
	if string(got) != "PNG" {
		t.Errorf("got %q, want the matching file despite being older", got)
	}
}

func TestFindNewestMissingDir(t *testing.T) {
	_, err := FindNewest(filepath.Join(t.TempDir(), "nope"), DefaultMaxAge, []string{"*"})
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		t.Errorf("missing dir reported as NotFound, want plain read error: %v", err)
	}
}
