package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evgfitil/cmdcopy/internal/report"
	"github.com/evgfitil/cmdcopy/internal/site"
)

const defaultSiteDir = "site"

var dryRun bool

var patchCmd = &cobra.Command{
	Use:   "patch [path...]",
	Short: "Precompute clipboard text for every copy button in built pages",
	Long: `patch rewrites HTML pages in place so that each copy button carries a
data-clipboard-text attribute holding the code block text without prompts
and output. Directories are walked recursively; the default path is "site".`,
	RunE: runPatch,
}

func init() {
	patchCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing files")
}

func runPatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{defaultSiteDir}
	}

	patcher := site.NewPatcher(site.Options{
		Page:    cfg.Page.PageOptions(),
		Include: cfg.Site.Include,
		DryRun:  dryRun,
	}, cfg.Filter.NewFilter(), logger)

	sum, err := patcher.Run(cmd.Context(), paths...)
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	if err != nil {
		return err
	}

	report.New(cmd.OutOrStdout()).Summary(sum, dryRun)

	if sum.FailedFiles > 0 {
		return fmt.Errorf("%d of %d pages failed", sum.FailedFiles, sum.Files)
	}
	return nil
}
