package cmd

import (
	"github.com/huangsam/pulseboard/core"
	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/spf13/cobra"
)

// rawCmd prints the raw filtered source tables.
var rawCmd = &cobra.Command{
	Use:   "raw [data-dir]",
	Short: "Show the raw daily metric rows and release rows for a range.",
	Long: `Print the filtered source tables for the current selection, before any
bucketing or aggregation.

Useful for spot-checking what the aggregation sees: derived metric columns
appear with their daily values, and undefined days show as a dash.

Examples:
  # Inspect the current window
  pulseboard raw --limit 50

  # Dump daily metric rows for a range
  pulseboard raw --start 2025-06-01 --end 2025-06-30 --output csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRaw(cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot print raw tables", err)
		}
	},
}
