package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// rebuildCmd rebuilds the linked-column bucket index from a full scan.
var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the linked-column bucket index",
	Long: `Discards the persisted bucket index snapshot and rebuilds it from
a full scan of the sheet's linked columns. Use after bulk edits made
outside the edit endpoint, which leave the snapshot stale.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg := bootstrap()
		defer logg.Sync()

		feat, err := buildFeature(cfg, logg)
		if err != nil {
			return err
		}
		return feat.Service().RebuildIndex(context.Background())
	},
}

func init() {
	RootCmd.AddCommand(rebuildCmd)
}
