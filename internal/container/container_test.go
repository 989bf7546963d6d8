package container

import (
	"bytes"
	"slices"
	"strings"
	"testing"
)

func TestBuildArgsMountsAndEnv(t *testing.T) {
	opts := Options{
		Image:   "ghcr.io/example/img:latest",
		Command: []string{"bash", "-lc", "claude"},
	}
	args := BuildArgs(opts, "/work/proj", "/home/user", "Ada", "ada@example.com")

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"run --rm -it",
		"-v /work/proj:/workspace",
		"-v /home/user/.claude:/root/.claude",
		"-e CLAUDE_CONFIG_DIR=/root/.claude",
		"-e GIT_USER_NAME=Ada",
		"-e GIT_USER_EMAIL=ada@example.com",
		"-e IS_SANDBOX=1",
		"-v /etc/localtime:/etc/localtime:ro",
		"-w /workspace ghcr.io/example/img:latest bash -lc claude",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q:\n%s", want, joined)
		}
	}
}

func TestBuildArgsCommandFollowsImage(t *testing.T) {
	args := BuildArgs(Options{Image: "img", Command: []string{"bash", "-l"}}, "/w", "/h", "", "")

	i := slices.Index(args, "img")
	if i < 0 {
		t.Fatalf("image missing from args: %v", args)
	}
	if got := args[i+1:]; !slices.Equal(got, []string{"bash", "-l"}) {
		t.Errorf("trailing args = %v, want command after image", got)
	}
}

func TestBuildArgsPorts(t *testing.T) {
	args := BuildArgs(Options{Image: "img", Ports: []int{8080, 3000}}, "/w", "/h", "", "")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-p 8080:8080") || !strings.Contains(joined, "-p 3000:3000") {
		t.Errorf("ports not published:\n%s", joined)
	}
}

func TestBuildArgsPullAndQuiet(t *testing.T) {
	args := BuildArgs(Options{Image: "img", Quiet: true, PullNewer: true}, "/w", "/h", "", "")

	if !slices.Contains(args, "--quiet") || !slices.Contains(args, "--pull=newer") {
		t.Errorf("missing --quiet/--pull=newer: %v", args)
	}

	args = BuildArgs(Options{Image: "img"}, "/w", "/h", "", "")
	if slices.Contains(args, "--quiet") || slices.Contains(args, "--pull=newer") {
		t.Errorf("unexpected --quiet/--pull=newer: %v", args)
	}
}

func TestBuildArgsExtraEnv(t *testing.T) {
	args := BuildArgs(Options{Image: "img", ExtraEnv: []string{"FOO=bar"}}, "/w", "/h", "", "")
	if !strings.Contains(strings.Join(args, " "), "-e FOO=bar") {
		t.Errorf("extra env not passed: %v", args)
	}
}

func TestHostEnviron(t *testing.T) {
	base := []string{"PATH=/bin", "XDG_DATA_HOME=/old", "KEEP=1"}

	env := hostEnviron(base, []string{"XDG_DATA_HOME=/new", "KEEP"})

	joined := strings.Join(env, " ")
	if strings.Contains(joined, "/old") {
		t.Errorf("overridden value survived: %v", env)
	}
	if !strings.Contains(joined, "XDG_DATA_HOME=/new") {
		t.Errorf("override missing: %v", env)
	}
	if strings.Contains(joined, "KEEP=1") {
		t.Errorf("bare key not unset: %v", env)
	}
	if !strings.Contains(joined, "PATH=/bin") {
		t.Errorf("unrelated entry lost: %v", env)
	}
}

func TestFilterStderr(t *testing.T) {
	in := strings.NewReader("real error\nThe input device is not a TTY\nanother line\n")
	var out bytes.Buffer

	filterStderr(in, &out)

	got := out.String()
	if strings.Contains(got, "TTY") {
		t.Errorf("TTY noise not filtered:\n%s", got)
	}
	if !strings.Contains(got, "real error") || !strings.Contains(got, "another line") {
		t.Errorf("real lines dropped:\n%s", got)
	}
}
