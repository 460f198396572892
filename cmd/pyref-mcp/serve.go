package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pyrefs/pyref-mcp/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the reference tools over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			pyrefServer := server.NewPyrefServer(config)
			defer func() {
				if err := pyrefServer.Shutdown(context.Background()); err != nil {
					slog.Error("Failed to shut down server", "error", err)
				}
			}()

			return pyrefServer.Serve(cmd.Context())
		},
	}
}
