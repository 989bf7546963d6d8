package update

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"syscall"

	"github.com/google/renameio"
)

// updateBinary replaces the running executable with the latest release
// and re-executes it with the original arguments. On success this does
// not return.
func (u *Updater) updateBinary(remoteLastMod string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	resp, err := u.Client.Get(u.BinaryURL)
	if err != nil {
		return fmt.Errorf("download update: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download update: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read update: %w", err)
	}

	// Atomic replace: the old binary keeps running until the rename
	// lands, and a crash mid-write never leaves a truncated executable.
	if err := renameio.WriteFile(exe, data, 0o755); err != nil {
		return fmt.Errorf("install update: %w", err)
	}

	u.writeCache(binaryCacheName, remoteLastMod)

	if err := syscall.Exec(exe, os.Args, os.Environ()); err != nil {
		return fmt.Errorf("re-exec %s: %w", exe, err)
	}
	return nil
}
