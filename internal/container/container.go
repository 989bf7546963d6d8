// Package container launches the sandbox container via podman with the
// workspace and agent state mounted.
package container

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/xdg/hermit/internal/project"
)

// ttyNoise is podman chatter emitted when stderr is piped; it is
// filtered out rather than shown to the user.
const ttyNoise = "input device is not a TTY"

// Options describe one container invocation.
type Options struct {
	// Image is the container image to run.
	Image string
	// Command is the argument vector executed inside the container.
	Command []string
	// Ports are published 1:1 (host:container).
	Ports []int
	// HostEnv adjusts the podman process's own environment. Entries are
	// KEY=VALUE to set, or a bare KEY to unset.
	HostEnv []string
	// ExtraEnv lists additional KEY=VALUE pairs passed into the
	// container.
	ExtraEnv []string
	// Quiet passes --quiet to podman.
	Quiet bool
	// PullNewer passes --pull=newer so a fresher image is fetched.
	PullNewer bool
}

// BuildArgs constructs the podman argument vector. The workspace is
// mounted at /workspace and the agent's state directory at
// /root/.claude; git identity is forwarded as environment variables so
// commits made inside the sandbox attribute correctly.
func BuildArgs(opts Options, cwd, home, gitUserName, gitUserEmail string) []string {
	args := []string{"run", "--rm", "-it"}
	if opts.Quiet {
		args = append(args, "--quiet")
	}
	if opts.PullNewer {
		args = append(args, "--pull=newer")
	}

	claudeDir := filepath.Join(home, ".claude")
	args = append(args,
		"-v", cwd+":/workspace",
		"-v", claudeDir+":/root/.claude",
		"-e", "CLAUDE_CONFIG_DIR=/root/.claude",
		"-e", "TERM=xterm-256color",
		"-e", "COLORTERM=truecolor",
		"-e", "GIT_USER_NAME="+gitUserName,
		"-e", "GIT_USER_EMAIL="+gitUserEmail,
		"-e", "IS_SANDBOX=1",
		"-v", "/etc/localtime:/etc/localtime:ro",
		"-v", "/etc/timezone:/etc/timezone:ro",
	)

	for _, env := range opts.ExtraEnv {
		args = append(args, "-e", env)
	}

	for _, port := range opts.Ports {
		args = append(args, "-p", fmt.Sprintf("%d:%d", port, port))
	}

	args = append(args, "-w", "/workspace", opts.Image)
	args = append(args, opts.Command...)
	return args
}

// Run spawns podman and blocks until it exits, returning podman's exit
// code. Stdin and stdout are inherited; stderr is filtered for TTY
// noise.
func Run(opts Options) (int, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return 1, fmt.Errorf("get working directory: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return 1, fmt.Errorf("get home directory: %w", err)
	}

	args := BuildArgs(opts, cwd, home, project.Config("user.name"), project.Config("user.email"))

	cmd := exec.Command("podman", args...)
	cmd.Env = hostEnviron(os.Environ(), opts.HostEnv)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return 1, fmt.Errorf("pipe podman stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return 1, fmt.Errorf("spawn podman: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		filterStderr(stderr, os.Stderr)
	}()

	err = cmd.Wait()
	<-done
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 1, fmt.Errorf("wait for podman: %w", err)
	}
	return 0, nil
}

// hostEnviron applies HostEnv adjustments to a base environment.
func hostEnviron(base, adjustments []string) []string {
	env := base
	for _, entry := range adjustments {
		if key, _, ok := strings.Cut(entry, "="); ok {
			env = removeEnv(env, key)
			env = append(env, entry)
		} else {
			env = removeEnv(env, entry)
		}
	}
	return env
}

func removeEnv(env []string, key string) []string {
	out := env[:0]
	for _, e := range env {
		if !strings.HasPrefix(e, key+"=") {
			out = append(out, e)
		}
	}
	return out
}

// filterStderr copies r to w line by line, dropping TTY noise.
func filterStderr(r io.Reader, w io.Writer) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, ttyNoise) {
			continue
		}
		fmt.Fprintln(w, line)
	}
}
