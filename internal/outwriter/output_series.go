package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/huangsam/pulseboard/internal/parquet"
	"github.com/huangsam/pulseboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSeriesResults outputs the metric series, dispatching based on the output format configured.
func PrintSeriesResults(result schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForSeries(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForSeries(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForSeries(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printSeriesTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote series table"); err != nil {
			return fmt.Errorf("error writing series table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForSeries handles opening the file and calling the JSON writer.
func printJSONResultsForSeries(result schema.SeriesResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForSeries(w, result)
	}, "Wrote JSON series results")
}

// printCSVResultsForSeries handles opening the file and calling the CSV writer.
func printCSVResultsForSeries(result schema.SeriesResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForSeries(csvWriter, result, fmtFloat)
	}, "Wrote CSV series results")
}

// printParquetResultsForSeries writes the series points to a Parquet file.
// Parquet is a binary format, so an explicit output file is required.
func printParquetResultsForSeries(result schema.SeriesResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	points := make([]parquet.SeriesPoint, len(result.Points))
	for i, p := range result.Points {
		points[i] = parquet.SeriesPoint{
			Label:       p.Label,
			PeriodStart: p.Period.Start,
			PeriodEnd:   p.Period.End,
			Value:       p.Value,
			Samples:     int32(p.Samples),
		}
	}

	if err := parquet.WriteSnapshotPointsParquet(points, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Printf("Wrote %d series points to: %s\n", len(points), cfg.OutputFile)
	return nil
}

// printSeriesTable prints the metric series in a five-column table.
func printSeriesTable(w io.Writer, result schema.SeriesResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Bucket", "Start", "Value", "Label", "Samples"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	var data [][]string
	for _, p := range result.Points {
		label := contract.GetPlainLabel(result.Metric, p.Value)
		if cfg.UseColors {
			label = contract.GetColorLabel(result.Metric, p.Value)
		}
		row := []string{
			p.Label,
			p.Period.Start.Format(contract.DateFormat),
			fmtFloat(p.Value),
			label,
			fmt.Sprintf("%d", p.Samples),
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

	fmt.Fprintf(w, "%s series with %d %s buckets. Computed in %v. Cache backend: %s\n",
		result.Metric.DisplayName(), len(result.Points), result.Granularity, duration, cfg.CacheBackend)
	return nil
}
