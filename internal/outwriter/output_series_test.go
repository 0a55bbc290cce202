package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/huangsam/pulseboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekPeriod(start time.Time) schema.Period {
	return schema.Period{
		Start:       start,
		End:         start.AddDate(0, 0, 6),
		Granularity: schema.WeekGranularity,
	}
}

func sampleSeriesResult() schema.SeriesResult {
	return schema.SeriesResult{
		Metric:      schema.TicketRateMetric,
		Granularity: schema.WeekGranularity,
		Points: []schema.AggregatedPoint{
			{
				Period:  weekPeriod(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)),
				Label:   "Jun 15 - Jun 21",
				Value:   7.5,
				Display: "7.50%",
				Samples: 2,
			},
			{
				Period:  weekPeriod(time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC)),
				Label:   "Jun 22 - Jun 28",
				Value:   12.25,
				Display: "12.25%",
				Samples: 5,
			},
		},
	}
}

func seriesConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{
		Output:       output,
		Precision:    2,
		ResultLimit:  25,
		UseColors:    false,
		Width:        120,
		CacheBackend: schema.SQLiteBackend,
	}
}

func TestWriteSeriesResultsTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := seriesConfig(schema.TextOut)

	fmtFloat, _ := createFormatters(cfg.Precision)
	err := printSeriesTable(&buf, sampleSeriesResult(), cfg, fmtFloat, 100*time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Jun 15 - Jun 21")
	assert.Contains(t, out, "Jun 22 - Jun 28")
	assert.Contains(t, out, "Moderate")
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "Ticket Rate series with 2 week buckets")
}

func TestWriteSeriesResultsCSV(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(2)

	csvWriter := csv.NewWriter(&buf)
	err := writeCSVResultsForSeries(csvWriter, sampleSeriesResult(), fmtFloat)
	csvWriter.Flush()
	require.NoError(t, err)

	reader := csv.NewReader(bytes.NewReader(buf.Bytes()))
	records, err := reader.ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []string{"bucket", "start", "end", "metric", "value", "label", "samples"}, records[0])
	assert.Equal(t, []string{"Jun 15 - Jun 21", "2025-06-15", "2025-06-21", "ticket_rate", "7.50", "Moderate", "2"}, records[1])
	assert.Equal(t, []string{"Jun 22 - Jun 28", "2025-06-22", "2025-06-28", "ticket_rate", "12.25", "High", "5"}, records[2])
}

func TestWriteSeriesResultsJSON(t *testing.T) {
	var buf bytes.Buffer

	err := writeJSONResultsForSeries(&buf, sampleSeriesResult())
	require.NoError(t, err)

	var decoded schema.SeriesResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, schema.TicketRateMetric, decoded.Metric)
	require.Len(t, decoded.Points, 2)
	assert.InDelta(t, 7.5, decoded.Points[0].Value, 1e-9)
	assert.Equal(t, "Jun 15 - Jun 21", decoded.Points[0].Label)
}

func TestPrintSeriesResultsToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "series.csv")
	cfg := seriesConfig(schema.CSVOut)
	cfg.OutputFile = outputFile

	err := PrintSeriesResults(sampleSeriesResult(), cfg, time.Millisecond)
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Jun 15 - Jun 21")
}

func TestPrintSeriesResultsParquetRequiresFile(t *testing.T) {
	cfg := seriesConfig(schema.ParquetOut)

	err := PrintSeriesResults(sampleSeriesResult(), cfg, time.Millisecond)
	assert.ErrorContains(t, err, "--output-file is required")
}

func TestPrintSeriesResultsParquetToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "series.parquet")
	cfg := seriesConfig(schema.ParquetOut)
	cfg.OutputFile = outputFile

	err := PrintSeriesResults(sampleSeriesResult(), cfg, time.Millisecond)
	require.NoError(t, err)

	info, err := os.Stat(outputFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestFormatNullableFloat(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	assert.Equal(t, "7.50", formatNullableFloat(7.5, fmtFloat))
	assert.Equal(t, "-", formatNullableFloat(math.NaN(), fmtFloat))
}

func TestGetMaxTableTextWidth(t *testing.T) {
	// An explicit width override is clamped into the supported band.
	assert.Equal(t, 70, GetMaxTableTextWidth(&contract.Config{Width: 500}))
	assert.Equal(t, 15, GetMaxTableTextWidth(&contract.Config{Width: 20}))
	assert.Equal(t, 40, GetMaxTableTextWidth(&contract.Config{Width: 80}))
}
