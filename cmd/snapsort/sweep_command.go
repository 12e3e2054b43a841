package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"snapsort/internal/daemon"
	"snapsort/internal/logging"
)

const summaryRounding = time.Millisecond

func newSweepCommand(ctx *commandContext) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Reclassify everything under the watch root once, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger := logging.NewNop()
			if verbose {
				logger, err = logging.NewFromConfig(cfg)
				if err != nil {
					return fmt.Errorf("init logger: %w", err)
				}
			}

			d, err := daemon.New(cfg, logger)
			if err != nil {
				return fmt.Errorf("create daemon: %w", err)
			}
			summary, err := d.Sweep(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanned %d file(s): moved %d, skipped %d, failed %d in %s\n",
				summary.Scanned, summary.Moved, summary.Skipped, summary.Failed,
				summary.Duration.Round(summaryRounding))
			if summary.Failed > 0 {
				return fmt.Errorf("%d file(s) failed to classify", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every classification decision")
	return cmd
}
