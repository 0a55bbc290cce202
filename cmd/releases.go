package cmd

import (
	"github.com/huangsam/pulseboard/core"
	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/spf13/cobra"
)

// releasesCmd groups release events into calendar buckets.
var releasesCmd = &cobra.Command{
	Use:   "releases [data-dir]",
	Short: "Show release events grouped into calendar buckets.",
	Long: `Group release events into the same calendar buckets the metric series uses.

Releases are bucketed by their update date, so a release updated on a
Sunday lands in the week starting that Sunday. Each bucket lists the count
and the issue keys in their original row order.

Examples:
  # Weekly release buckets
  pulseboard releases --granularity week

  # One row per release in CSV form
  pulseboard releases --granularity month --output csv --output-file releases.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReleases(cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot align releases", err)
		}
	},
}
