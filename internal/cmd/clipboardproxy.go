package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/xdg/hermit/internal/clipboard"
	"github.com/xdg/hermit/internal/config"
)

var clipboardProxySocket string

var clipboardProxyCmd = &cobra.Command{
	Use:    "clipboard-proxy",
	Short:  "Run the clipboard image proxy service (internal, spawned automatically)",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Directory precedence: environment override, then config,
		// then the built-in default.
		dir := clipboard.ScreenshotsDir()
		var patterns []string
		if cfg, err := config.Load(); err == nil {
			if cfg.Screenshots.Dir != "" && os.Getenv(clipboard.ScreenshotsDirEnv) == "" {
				dir = cfg.Screenshots.Dir
			}
			patterns = cfg.Screenshots.Patterns
		}
		return clipboard.Run(clipboardProxySocket, dir, patterns)
	},
}

func init() {
	clipboardProxyCmd.Flags().StringVar(&clipboardProxySocket, "socket", "", "socket path (absolute)")
	_ = clipboardProxyCmd.MarkFlagRequired("socket")
	rootCmd.AddCommand(clipboardProxyCmd)
}
