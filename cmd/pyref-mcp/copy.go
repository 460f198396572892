package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.lsp.dev/protocol"

	"github.com/pyrefs/pyref-mcp/internal/client"
	"github.com/pyrefs/pyref-mcp/internal/clipboard"
	"github.com/pyrefs/pyref-mcp/internal/notify"
	"github.com/pyrefs/pyref-mcp/internal/reference"
	"github.com/pyrefs/pyref-mcp/internal/tools"
)

func newCopyCmd() *cobra.Command {
	var (
		line        int
		col         int
		noClipboard bool
	)

	cmd := &cobra.Command{
		Use:   "copy FILE",
		Short: "Copy the pytest-style reference path for the symbol at a cursor position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if line < 1 || col < 1 {
				return fmt.Errorf("line and col are 1-indexed and must be positive")
			}

			config, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pylspClient := client.NewPylspClient(config.PylspPath, config.PylspArgs...)
			if err := pylspClient.Start(ctx, config.WorkspaceRoot); err != nil {
				return fmt.Errorf("failed to start pylsp client: %w", err)
			}
			defer func() {
				if err := pylspClient.Stop(context.Background()); err != nil {
					slog.Debug("Failed to stop pylsp client", "error", err)
				}
			}()

			var clip clipboard.Writer = clipboard.System{}
			if noClipboard {
				clip = &clipboard.Memory{}
			}

			builder := reference.NewBuilder(pylspClient, clip, notify.Stderr{}, config)
			position := protocol.Position{
				Line:      uint32(line - 1),
				Character: uint32(col - 1),
			}

			result, err := builder.Copy(ctx, tools.ResolvePath(args[0], config.WorkspaceRoot), position)
			if err != nil {
				return err
			}
			if result == nil {
				// The builder already explained itself on stderr.
				return fmt.Errorf("no reference produced")
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Reference)
			return nil
		},
	}

	cmd.Flags().IntVarP(&line, "line", "l", 0, "Cursor line (1-indexed)")
	cmd.Flags().IntVarP(&col, "col", "c", 0, "Cursor column (1-indexed)")
	cmd.Flags().BoolVar(&noClipboard, "no-clipboard", false, "Print the reference without touching the clipboard")
	_ = cmd.MarkFlagRequired("line")
	_ = cmd.MarkFlagRequired("col")

	return cmd
}
