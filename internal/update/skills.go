package update

import (
	"archive/tar"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/xdg/hermit/internal/term"
)

// InstallSkills downloads the skills tarball and unpacks it into the
// skills directory, then records the release date so future runs can
// detect staleness.
func (u *Updater) InstallSkills() error {
	term.Printf("Installing skills to %s...\n", u.SkillsDir)

	if err := os.MkdirAll(u.SkillsDir, 0o755); err != nil {
		return fmt.Errorf("create skills directory: %w", err)
	}

	resp, err := u.Client.Get(u.SkillsURL)
	if err != nil {
		return fmt.Errorf("download skills: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download skills: %s", resp.Status)
	}

	if err := untarGz(u.SkillsDir, resp.Body); err != nil {
		return fmt.Errorf("extract skills: %w", err)
	}

	if remote, err := u.lastModified(u.SkillsURL); err == nil {
		u.writeCache(skillsCacheName, remote)
	}

	term.Println("Skills installed successfully.")
	return nil
}

// untarGz unpacks a gzip-compressed tarball into dst. Entry names are
// confined to dst; an entry that escapes via ".." or an absolute path
// is an error.
func untarGz(dst string, r io.Reader) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("open gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar entry: %w", err)
		}

		target, err := securePath(dst, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create %s: %w", filepath.Dir(target), err)
			}
			if err := writeEntry(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		default:
			// Symlinks and special files are not expected in the
			// skills archive and are skipped.
		}
	}
}

func writeEntry(target string, r io.Reader, perm os.FileMode) error {
	f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	return f.Close()
}

// securePath joins name onto dst, rejecting escapes.
func securePath(dst, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("tar entry has absolute path: %s", name)
	}
	target := filepath.Join(dst, name)
	if target != dst && !strings.HasPrefix(target, dst+string(os.PathSeparator)) {
		return "", fmt.Errorf("tar entry escapes destination: %s", name)
	}
	return target, nil
}
