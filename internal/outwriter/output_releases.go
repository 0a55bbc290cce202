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

// PrintReleasesResults outputs the aligned release buckets, dispatching based on the output format configured.
func PrintReleasesResults(result schema.ReleasesResult, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForReleases(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForReleases(result, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printReleasesTable(w, result, cfg, duration)
		}, "Wrote releases table"); err != nil {
			return fmt.Errorf("error writing releases table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForReleases handles opening the file and calling the JSON writer.
func printJSONResultsForReleases(result schema.ReleasesResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForReleases(w, result)
	}, "Wrote JSON release results")
}

// printCSVResultsForReleases handles opening the file and calling the CSV writer.
func printCSVResultsForReleases(result schema.ReleasesResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForReleases(csvWriter, result)
	}, "Wrote CSV release results")
}

// printReleasesTable prints the release buckets in a four-column table.
func printReleasesTable(w io.Writer, result schema.ReleasesResult, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Bucket", "Start", "Count", "Releases"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	maxKeysWidth := GetMaxTableTextWidth(cfg)
	var data [][]string
	totalReleases := 0
	for _, b := range result.Buckets {
		totalReleases += b.Count
		row := []string{
			b.Label,
			b.Period.Start.Format(contract.DateFormat),
			strconv.Itoa(b.Count),
			contract.TruncateText(b.Keys, maxKeysWidth),
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%d releases across %d %s buckets. Computed in %v. Cache backend: %s\n",
		totalReleases, len(result.Buckets), result.Granularity, duration, cfg.CacheBackend)
	return nil
}
