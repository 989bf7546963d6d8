package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xdg/hermit/internal/config"
	"github.com/xdg/hermit/internal/container"
	"github.com/xdg/hermit/internal/term"
	"github.com/xdg/hermit/internal/update"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open an interactive bash shell in the sandbox container",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	agentCmd := ""
	if len(args) > 0 {
		agentCmd = strings.Join(args, " ")
	}
	return launchAgent(agentCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	return launch([]string{"bash", "-l"})
}

// launchAgent runs the configured agent command inside the container,
// with extraArgs appended when present.
func launchAgent(extraArgs string) error {
	term.SetQuiet(flagQuiet)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	agent := cfg.Container.Agent
	if extraArgs != "" {
		agent += " " + extraArgs
	}
	return launchWith(cfg, []string{"bash", "-lc", agent})
}

// launch runs an explicit command inside the container.
func launch(command []string) error {
	term.SetQuiet(flagQuiet)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return launchWith(cfg, command)
}

func launchWith(cfg *config.Config, command []string) error {
	u := update.New(cfg.Update)
	shouldPull := u.Perform(u.CheckAvailable(), flagAutoUpdate)

	ensureProxies()

	code, err := container.Run(container.Options{
		Image:     cfg.Container.Image,
		Command:   command,
		Ports:     flagPorts,
		HostEnv:   flagHostEnv,
		ExtraEnv:  cfg.Container.Env,
		Quiet:     flagQuiet,
		PullNewer: shouldPull,
	})
	if err != nil {
		return err
	}
	if code != 0 {
		return NewExitCodeError(code)
	}
	return nil
}
