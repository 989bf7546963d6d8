package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xdg/hermit/internal/ghproxy"
)

var ghProxySocket string

var ghProxyCmd = &cobra.Command{
	Use:    "gh-proxy",
	Short:  "Run the gh CLI proxy service (internal, spawned automatically)",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return ghproxy.Run(ghProxySocket)
	},
}

func init() {
	ghProxyCmd.Flags().StringVar(&ghProxySocket, "socket", "", "socket path (absolute)")
	_ = ghProxyCmd.MarkFlagRequired("socket")
	rootCmd.AddCommand(ghProxyCmd)
}
