package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/1broseidon/tilefit/internal/mcp"
	"github.com/1broseidon/tilefit/internal/platform"
)

func newMCPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Start the MCP server on stdio. Designed to be invoked by MCP clients.

Example:
  claude mcp add tilefit -- tilefit mcp serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			// compute_layout still works without a display.
			var backend platform.Backend
			if b, err := a.openBackend(); err != nil {
				a.logger.Warn("window backend unavailable, only compute_layout will work", "err", err)
			} else {
				backend = b
			}

			a.logger.Info("mcp server starting", "transport", "stdio")
			err = mcp.NewServer(cfg, backend, a.logger).Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	})

	return cmd
}
