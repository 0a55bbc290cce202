package cmd

import (
	"github.com/huangsam/pulseboard/core"
	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/spf13/cobra"
)

// chartCmd builds the full dashboard view for one selection.
var chartCmd = &cobra.Command{
	Use:   "chart [data-dir]",
	Short: "Show the metric series and aligned releases on one axis.",
	Long: `Build the combined dashboard view for one metric over one date range.

The view holds both chart layers:
- The aggregated metric series (mean per calendar bucket)
- Release events grouped into the same calendar buckets

Both layers share one chronological axis, so a release bucket always lines
up with the metric bucket covering the same period. Buckets without metric
data stay visible when a release occupies them.

Examples:
  # Weekly ticket rate with releases, from the current directory
  pulseboard chart --granularity week

  # Monthly MSAT over an explicit range
  pulseboard chart --metric msat --granularity month --start 2025-01-01 --end 2025-06-30

  # Full chart payload for a frontend
  pulseboard chart --granularity week --output json --output-file chart.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteChart(cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot build dashboard view", err)
		}
	},
}
