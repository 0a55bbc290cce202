package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/huangsam/pulseboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintDashboardResults outputs the full dashboard view, dispatching based on the output format configured.
func PrintDashboardResults(view schema.DashboardView, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		// The JSON payload is the full view so chart frontends can render
		// both series plus the shared axis from one document.
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, view)
		}, "Wrote JSON dashboard view"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVResultsForDashboard(csvWriter, view, fmtFloat)
		}, "Wrote CSV dashboard view"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printDashboardTable(w, view, cfg, fmtFloat, duration)
		}, "Wrote dashboard table"); err != nil {
			return fmt.Errorf("error writing dashboard table output: %w", err)
		}
	}
	return nil
}

// writeCSVResultsForDashboard writes one row per axis bucket with the metric
// value and release count side by side. Buckets only one series occupies get
// empty cells for the other.
func writeCSVResultsForDashboard(w *csv.Writer, view schema.DashboardView, fmtFloat func(float64) string) error {
	header := []string{
		"bucket",
		"start",
		"metric",
		"value",
		"samples",
		"release_count",
		"release_keys",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range mergeChartRows(view) {
		value := ""
		samples := ""
		if row.point != nil {
			value = fmtFloat(row.point.Value)
			samples = strconv.Itoa(row.point.Samples)
		}
		count := "0"
		keys := ""
		if row.bucket != nil {
			count = strconv.Itoa(row.bucket.Count)
			keys = row.bucket.Keys
		}
		rec := []string{
			row.label,
			row.start.Format(contract.DateFormat),
			string(view.Metric),
			value,
			samples,
			count,
			keys,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// printDashboardTable prints the combined chart as one table over the shared axis.
func printDashboardTable(w io.Writer, view schema.DashboardView, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	fmt.Fprintf(w, "%s by %s: %s to %s\n",
		view.MetricTitle, view.Granularity,
		view.RangeStart.Format(contract.DateFormat), view.RangeEnd.Format(contract.DateFormat))

	if view.NoData {
		fmt.Fprintln(w, "No metric data available for the selected range.")
		return nil
	}

	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Bucket", "Value", "Label", "Samples", "Releases"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	maxKeysWidth := GetMaxTableTextWidth(cfg)
	var data [][]string
	for _, row := range mergeChartRows(view) {
		value := "-"
		label := "-"
		samples := "-"
		if row.point != nil {
			value = fmtFloat(row.point.Value)
			samples = strconv.Itoa(row.point.Samples)
			label = contract.GetPlainLabel(view.Metric, row.point.Value)
			if cfg.UseColors {
				label = contract.GetColorLabel(view.Metric, row.point.Value)
			}
		}
		keys := ""
		if row.bucket != nil {
			keys = contract.TruncateText(row.bucket.Keys, maxKeysWidth)
		}
		data = append(data, []string{row.label, value, label, samples, keys})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Dashboard computed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return nil
}

// chartRow pairs the metric point and the release bucket occupying the same
// axis position. Either side may be nil.
type chartRow struct {
	label  string
	start  time.Time
	point  *schema.AggregatedPoint
	bucket *schema.AggregatedEvents
}

// mergeChartRows walks the two sorted series in lockstep and yields one row
// per occupied axis bucket, in chronological order.
func mergeChartRows(view schema.DashboardView) []chartRow {
	var rows []chartRow
	points := view.Points
	buckets := view.Releases

	i, j := 0, 0
	for i < len(points) || j < len(buckets) {
		switch {
		case j >= len(buckets) || (i < len(points) && points[i].Period.Before(buckets[j].Period)):
			rows = append(rows, chartRow{label: points[i].Label, start: points[i].Period.Start, point: &points[i]})
			i++
		case i >= len(points) || buckets[j].Period.Before(points[i].Period):
			rows = append(rows, chartRow{label: buckets[j].Label, start: buckets[j].Period.Start, bucket: &buckets[j]})
			j++
		default: // Same bucket
			rows = append(rows, chartRow{label: points[i].Label, start: points[i].Period.Start, point: &points[i], bucket: &buckets[j]})
			i++
			j++
		}
	}
	return rows
}
