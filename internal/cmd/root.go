// Package cmd implements the CLI commands for hermit.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xdg/hermit/internal/version"
)

var (
	flagPorts      []int
	flagAutoUpdate bool
	flagQuiet      bool
	flagHostEnv    []string
)

// rootCmd represents the base command. Invoked without a subcommand it
// launches the agent in the sandbox container; trailing arguments after
// -- are passed to the agent.
var rootCmd = &cobra.Command{
	Use:   "hermit [-- args]",
	Short: "Run a coding agent in a sandboxed container",
	Long: `Hermit runs a coding agent inside an isolated container while keeping
credentials on the host. Privileged actions (the gh CLI, screenshot
reads) are mediated by small proxy services reachable only over
host-private Unix sockets, each enforcing a declarative policy.

Use -- to pass arguments to the agent, e.g.: hermit -p 8080 -- -p`,
	Version: version.Version,
	Args:    cobra.ArbitraryArgs,
	RunE:    runRoot,
}

func init() {
	rootCmd.PersistentFlags().IntSliceVarP(&flagPorts, "port", "p", nil,
		"expose port(s) from the container (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&flagAutoUpdate, "auto-update", false,
		"apply available updates without prompting")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false,
		"suppress informational output, only show errors")
	rootCmd.PersistentFlags().StringArrayVar(&flagHostEnv, "host-env", nil,
		"set (KEY=VALUE) or unset (KEY) a host environment variable for the container runtime (repeatable)")
}

// Execute runs the root command and returns any error.
func Execute() error {
	return rootCmd.Execute()
}
