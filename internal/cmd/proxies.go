package cmd

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/xdg/hermit/internal/term"
)

// Proxy sockets live under the workspace so each project gets its own
// pair, and the container can reach them through the workspace mount.
const (
	socketSubdir        = ".hermit"
	ghProxySocketName   = "gh-proxy.sock"
	clipProxySocketName = "clipboard-proxy.sock"
)

func ghProxySocketPath() (string, error) {
	return socketPath(ghProxySocketName)
}

func clipboardProxySocketPath() (string, error) {
	return socketPath(clipProxySocketName)
}

func socketPath(name string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(cwd, socketSubdir, name), nil
}

// ensureProxies makes sure both proxy services are accepting
// connections before the container starts. Failures are warnings, not
// errors: the sandbox is still usable without the proxies.
func ensureProxies() {
	if path, err := ghProxySocketPath(); err == nil {
		ensureProxy("gh-proxy", path)
	}
	if path, err := clipboardProxySocketPath(); err == nil {
		ensureProxy("clipboard-proxy", path)
	}
}

// ensureProxy connects to the socket to see whether a live service is
// behind it; a stale socket file fails the dial and is replaced by the
// fresh service on startup. Otherwise it spawns this same binary with
// the internal subcommand and waits for the socket to appear.
func ensureProxy(subcommand, socketPath string) {
	if conn, err := net.Dial("unix", socketPath); err == nil {
		conn.Close()
		return
	}

	exe, err := os.Executable()
	if err != nil {
		term.Warn("failed to start %s: %v", subcommand, err)
		return
	}

	proc := exec.Command(exe, subcommand, "--socket", socketPath)
	// Detached: no stdio, and we never wait on it. The service's own
	// watchdog ties its lifetime to the container runtime.
	if err := proc.Start(); err != nil {
		term.Warn("failed to start %s: %v", subcommand, err)
		return
	}
	_ = proc.Process.Release()

	for i := 0; i < 30; i++ {
		time.Sleep(100 * time.Millisecond)
		if _, err := os.Stat(socketPath); err == nil {
			return
		}
	}

	term.Warn("%s did not start in time", subcommand)
}
