package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xdg/hermit/internal/config"
	"github.com/xdg/hermit/internal/term"
	"github.com/xdg/hermit/internal/update"
)

var installCmd = &cobra.Command{
	Use:   "install <target>",
	Short: "Install components",
	Long:  "Install optional components into the agent's state directory.\n\nTargets:\n  skills    agent skills from the latest release",
	Args:  cobra.ExactArgs(1),
	RunE:  runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	term.SetQuiet(flagQuiet)

	if args[0] != "skills" {
		return fmt.Errorf("unknown install target: %s", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return update.New(cfg.Update).InstallSkills()
}
