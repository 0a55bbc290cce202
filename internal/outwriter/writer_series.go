package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/huangsam/pulseboard/schema"
)

// writeJSONResultsForSeries marshals the schema.SeriesResult to JSON and writes it.
func writeJSONResultsForSeries(w io.Writer, result schema.SeriesResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForSeries writes the schema.SeriesResult data to a CSV writer.
func writeCSVResultsForSeries(w *csv.Writer, result schema.SeriesResult, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{
		"bucket",
		"start",
		"end",
		"metric",
		"value",
		"label",
		"samples",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, p := range result.Points {
		row := []string{
			p.Label,
			p.Period.Start.Format(contract.DateFormat),
			p.Period.End.Format(contract.DateFormat),
			string(result.Metric),
			fmtFloat(p.Value),
			contract.GetPlainLabel(result.Metric, p.Value),
			strconv.Itoa(p.Samples),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
