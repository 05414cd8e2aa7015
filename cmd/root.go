package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/evgfitil/cmdcopy/internal/config"
	"github.com/evgfitil/cmdcopy/internal/logging"
)

const ExitCodeCancelled = 130

var (
	Version    = "dev"
	showConfig bool
)

// ErrCancelled indicates user cancelled the operation.
var ErrCancelled = errors.New("operation cancelled")

var rootCmd = &cobra.Command{
	Use:   "cmdcopy",
	Short: "Copy only the commands from documentation code blocks",
	Long: `cmdcopy strips shell prompts and command output from the text that
documentation "copy" buttons place on the clipboard.

Run "cmdcopy patch site" after building the site to precompute the clipboard
text of every copy button, or "cmdcopy extract" to pull the commands out of a
single page or markdown file.`,
	Version:       Version,
	Args:          cobra.NoArgs,
	RunE:          runRoot,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.Flags().BoolVar(&showConfig, "config", false, "show config file path")
	rootCmd.AddCommand(patchCmd, extractCmd)
}

// Execute runs the root command. SIGINT cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func runRoot(cmd *cobra.Command, args []string) error {
	if showConfig {
		fmt.Fprintln(cmd.OutOrStdout(), config.Path())
		return nil
	}
	return cmd.Help()
}

// setup loads the configuration and installs the logger.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.Init(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		logger.Warn("log file unavailable, logging to stderr", "file", cfg.Log.File, "error", err)
	}
	return cfg, logger, nil
}
