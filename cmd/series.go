package cmd

import (
	"github.com/huangsam/pulseboard/core"
	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/spf13/cobra"
)

// seriesCmd aggregates one metric into calendar buckets.
var seriesCmd = &cobra.Command{
	Use:   "series [data-dir]",
	Short: "Show the aggregated metric series per calendar bucket.",
	Long: `Aggregate a derived daily metric into calendar buckets and print the series.

Each bucket value is the mean of the metric over the days in that bucket
that have a defined value. Days where the metric is undefined (for example a
ratio with a zero denominator) are excluded from the mean rather than
counted as zero, and buckets with no defined days are omitted entirely.

Buckets are calendar-aligned: weeks run Sunday through Saturday, months and
years follow the calendar. The series is ordered chronologically.

Examples:
  # Daily ticket rate for the default trailing window
  pulseboard series

  # Weekly MSAT
  pulseboard series --metric msat --granularity week

  # Export to CSV or Parquet
  pulseboard series --granularity month --output csv --output-file series.csv
  pulseboard series --granularity month --output parquet --output-file series.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSeries(cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot compute metric series", err)
		}
	},
}
