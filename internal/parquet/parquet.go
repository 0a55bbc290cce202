// Package parquet provides data structures and functions for exporting dashboard
// snapshot data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/pulseboard/schema"
	"github.com/parquet-go/parquet-go"
)

// SnapshotRun represents a single dashboard recomputation with metadata.
// This struct maps to the pulseboard_snapshot_runs database table.
type SnapshotRun struct {
	// SnapshotID is the unique identifier for this snapshot run
	SnapshotID int64 `parquet:"snapshot_id,snappy"`

	// RunTime is when the recomputation happened (stored as TIMESTAMP with nanosecond precision)
	RunTime time.Time `parquet:"run_time,snappy"`

	// Granularity is the bucketing level used for the run (day, week, month, year)
	Granularity string `parquet:"granularity,snappy"`

	// Metric is the derived metric that was aggregated (ticket_rate, msat)
	Metric string `parquet:"metric,snappy"`

	// RangeStart is the inclusive start of the selected date range
	RangeStart time.Time `parquet:"range_start,snappy"`

	// RangeEnd is the inclusive end of the selected date range
	RangeEnd time.Time `parquet:"range_end,snappy"`

	// PointCount is the number of aggregated series points produced
	PointCount int32 `parquet:"point_count,snappy"`

	// ReleaseCount is the number of releases aligned to the range
	ReleaseCount int32 `parquet:"release_count,snappy"`

	// NoData indicates the selection matched no metric rows
	NoData bool `parquet:"no_data,snappy"`

	// DurationMs is the duration of the recomputation in milliseconds (nullable)
	DurationMs *int32 `parquet:"duration_ms,optional,snappy"`
}

// SeriesPoint represents one aggregated series point of a snapshot run.
// This struct maps to the pulseboard_snapshot_points database table.
type SeriesPoint struct {
	// SnapshotID references the parent snapshot run
	SnapshotID int64 `parquet:"snapshot_id,snappy"`

	// Label is the human-readable bucket label
	Label string `parquet:"label,snappy"`

	// PeriodStart is the inclusive start of the bucket
	PeriodStart time.Time `parquet:"period_start,snappy"`

	// PeriodEnd is the inclusive end of the bucket
	PeriodEnd time.Time `parquet:"period_end,snappy"`

	// Value is the aggregated metric value for the bucket
	Value float64 `parquet:"metric_value,snappy"`

	// Samples is the number of daily rows that contributed to the bucket
	Samples int32 `parquet:"sample_count,snappy"`
}

// WriteSnapshotRunsParquet writes a slice of SnapshotRun structs to a Parquet file.
func WriteSnapshotRunsParquet(data []SnapshotRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the SnapshotRun struct tags
	writer := parquet.NewGenericWriter[SnapshotRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteSnapshotPointsParquet writes a slice of SeriesPoint structs to a Parquet file.
func WriteSnapshotPointsParquet(data []SeriesPoint, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the SeriesPoint struct tags
	writer := parquet.NewGenericWriter[SeriesPoint](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertSnapshotRunRecords converts schema.SnapshotRunRecord to SnapshotRun for Parquet export.
func ConvertSnapshotRunRecords(records []schema.SnapshotRunRecord) []SnapshotRun {
	result := make([]SnapshotRun, len(records))
	for i, record := range records {
		result[i] = SnapshotRun{
			SnapshotID:   record.SnapshotID,
			RunTime:      record.RunTime,
			Granularity:  record.Granularity,
			Metric:       record.Metric,
			RangeStart:   record.RangeStart,
			RangeEnd:     record.RangeEnd,
			PointCount:   record.PointCount,
			ReleaseCount: record.ReleaseCount,
			NoData:       record.NoData,
			DurationMs:   record.DurationMs,
		}
	}
	return result
}

// ConvertSnapshotPointRecords converts schema.SnapshotPointRecord to SeriesPoint for Parquet export.
func ConvertSnapshotPointRecords(records []schema.SnapshotPointRecord) []SeriesPoint {
	result := make([]SeriesPoint, len(records))
	for i, record := range records {
		result[i] = SeriesPoint{
			SnapshotID:  record.SnapshotID,
			Label:       record.Label,
			PeriodStart: record.PeriodStart,
			PeriodEnd:   record.PeriodEnd,
			Value:       record.Value,
			Samples:     record.Samples,
		}
	}
	return result
}
