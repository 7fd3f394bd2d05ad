package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd runs one full reconciliation pass from the CLI.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a full reconciliation pass",
	Long: `Traverses every non-empty sheet row, re-evaluates its mismatch
highlighting, and reconciles it against the remote ad platform: creating
replacement ads where the row signals readiness and aligning status and
labels where they diverge. Prints the change report when done.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg := bootstrap()
		defer logg.Sync()

		feat, err := buildFeature(cfg, logg)
		if err != nil {
			return err
		}

		report, err := feat.Service().RunPass(context.Background())
		if err != nil {
			return err
		}

		fmt.Print(report.Render())
		if report.Errors > 0 {
			logg.Warn("Pass finished with errors", zap.Int("errors", report.Errors))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
