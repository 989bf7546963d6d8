// Package clipboard implements the screenshot proxy service: it hands
// the sandboxed workload the newest screenshot from a host directory,
// and nothing else, over the shared socket protocol.
package clipboard

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultMaxAge is the freshness window: files older than this are
// never returned, so a stale screenshot cannot masquerade as the one
// the user just captured.
const DefaultMaxAge = 120 * time.Second

// NotFoundError reports that no file in the directory satisfies the
// freshness window. It carries both for diagnostics.
type NotFoundError struct {
	Dir    string
	MaxAge time.Duration
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no screenshot younger than %ds in %s", int(e.MaxAge.Seconds()), e.Dir)
}

// FindNewest returns the contents of the newest regular file in dir
// whose age is within maxAge and whose base name matches one of the
// patterns. The scan is non-recursive: subdirectories are skipped, not
// descended into. Symlinks are followed, so a link to a fresh file
// elsewhere qualifies. Entries whose metadata cannot be read are
// treated as absent. Among qualifying files the greatest modification
// time wins, ties going to the file encountered last in the scan.
func FindNewest(dir string, maxAge time.Duration, patterns []string) ([]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", dir, err)
	}

	now := time.Now()

	var newestTime time.Time
	var newestPath string

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		// Stat the path itself, not the dirent, so symlinks resolve to
		// their targets.
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if now.Sub(info.ModTime()) > maxAge {
			continue
		}
		if !matchesAny(patterns, entry.Name()) {
			continue
		}
		if newestPath == "" || !info.ModTime().Before(newestTime) {
			newestTime = info.ModTime()
			newestPath = path
		}
	}

	if newestPath == "" {
		return nil, &NotFoundError{Dir: dir, MaxAge: maxAge}
	}

	data, err := os.ReadFile(newestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", newestPath, err)
	}
	return data, nil
}

func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
