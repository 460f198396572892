package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pyrefs/pyref-mcp/pkg/project"
	"github.com/pyrefs/pyref-mcp/pkg/types"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           project.Name,
		Short:         "Copy pytest-style reference paths for Python symbols",
		Version:       project.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(viper.GetString("log-level"))
		},
	}

	root.PersistentFlags().String("pylsp-path", "pylsp", "Path to the pylsp binary")
	root.PersistentFlags().StringSlice("pylsp-args", nil, "Extra arguments for the pylsp binary")
	root.PersistentFlags().String("workspace-root", ".", "Root directory of the Python workspace")
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	viper.SetEnvPrefix("PYREF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(root.PersistentFlags()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root.AddCommand(
		newServeCmd(),
		newCopyCmd(),
	)
	return root
}

// loadConfig assembles the config from flags and PYREF_* environment
// variables, validating the workspace root.
func loadConfig() (types.Config, error) {
	config := types.Config{
		PylspPath:     viper.GetString("pylsp-path"),
		PylspArgs:     viper.GetStringSlice("pylsp-args"),
		WorkspaceRoot: viper.GetString("workspace-root"),
		LogLevel:      viper.GetString("log-level"),
	}

	if stat, err := os.Stat(config.WorkspaceRoot); err != nil || !stat.IsDir() {
		return types.Config{}, fmt.Errorf("invalid workspace root: %s", config.WorkspaceRoot)
	}
	absPath, err := filepath.Abs(config.WorkspaceRoot)
	if err != nil {
		return types.Config{}, fmt.Errorf("failed to resolve workspace root: %w", err)
	}
	config.WorkspaceRoot = absPath

	return config, nil
}

func setupLogging(level string) error {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
	return nil
}
