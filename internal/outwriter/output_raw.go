package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/huangsam/pulseboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRawResults outputs the raw filtered tables, dispatching based on the output format configured.
// CSV mode emits the daily metric rows only; release rows are available in CSV
// form through the releases command.
func PrintRawResults(view schema.DashboardView, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rawTables{Metrics: view.RawMetrics, Releases: view.RawReleases})
		}, "Wrote JSON raw tables"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVResultsForRawMetrics(csvWriter, view.RawMetrics, fmtFloat)
		}, "Wrote CSV raw metrics"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable tables
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printRawTables(w, view, cfg, fmtFloat, duration)
		}, "Wrote raw tables"); err != nil {
			return fmt.Errorf("error writing raw table output: %w", err)
		}
	}
	return nil
}

// rawTables is the JSON payload for the raw command.
type rawTables struct {
	Metrics  []schema.MetricRecord `json:"metrics"`
	Releases []schema.ReleaseEvent `json:"releases"`
}

// writeCSVResultsForRawMetrics writes the daily metric rows in CSV format.
func writeCSVResultsForRawMetrics(w *csv.Writer, metrics []schema.MetricRecord, fmtFloat func(float64) string) error {
	header := []string{
		"date",
		"active_sessions",
		"fd_tickets",
		"feedback_given",
		"happy",
		"ticket_rate",
		"msat",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, m := range metrics {
		row := []string{
			m.Date.Format(contract.DateFormat),
			strconv.Itoa(m.ActiveSessions),
			strconv.Itoa(m.FDTickets),
			strconv.Itoa(m.FeedbackGiven),
			strconv.Itoa(m.Happy),
			formatNullableFloat(m.TicketRate, fmtFloat),
			formatNullableFloat(m.MSAT, fmtFloat),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// printRawTables prints both filtered tables back to back.
func printRawTables(w io.Writer, view schema.DashboardView, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	limit := cfg.ResultLimit

	fmt.Fprintf(w, "Raw metrics: %s to %s\n",
		view.RangeStart.Format(contract.DateFormat), view.RangeEnd.Format(contract.DateFormat))

	metricsTable := tablewriter.NewWriter(w)
	metricsTable.Header([]string{"Date", "Sessions", "Tickets", "Feedback", "Happy", "Ticket Rate", "MSAT"})
	metricsTable.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var metricRows [][]string
	for i, m := range view.RawMetrics {
		if i >= limit {
			break
		}
		metricRows = append(metricRows, []string{
			m.Date.Format(contract.DateFormat),
			strconv.Itoa(m.ActiveSessions),
			strconv.Itoa(m.FDTickets),
			strconv.Itoa(m.FeedbackGiven),
			strconv.Itoa(m.Happy),
			formatNullableFloat(m.TicketRate, fmtFloat),
			formatNullableFloat(m.MSAT, fmtFloat),
		})
	}
	if err := metricsTable.Bulk(metricRows); err != nil {
		return err
	}
	if err := metricsTable.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Showing %d of %d metric rows\n\n", len(metricRows), len(view.RawMetrics))

	fmt.Fprintln(w, "Raw releases:")

	releasesTable := tablewriter.NewWriter(w)
	releasesTable.Header([]string{"Key", "Summary", "Type", "Status", "Updated"})
	releasesTable.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxTextWidth := GetMaxTableTextWidth(cfg)
	var releaseRows [][]string
	for i, r := range view.RawReleases {
		if i >= limit {
			break
		}
		releaseRows = append(releaseRows, []string{
			r.IssueKey,
			contract.TruncateText(r.Summary, maxTextWidth),
			r.IssueType,
			r.Status,
			r.Updated.Format(contract.DateFormat),
		})
	}
	if err := releasesTable.Bulk(releaseRows); err != nil {
		return err
	}
	if err := releasesTable.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Showing %d of %d release rows\n", len(releaseRows), len(view.RawReleases))

	fmt.Fprintf(w, "Raw tables computed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return nil
}

// formatNullableFloat renders NaN as a dash since the value is undefined for the day.
func formatNullableFloat(v float64, fmtFloat func(float64) string) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmtFloat(v)
}
