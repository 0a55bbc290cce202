package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/huangsam/pulseboard/schema"
)

// writeJSONResultsForReleases marshals the schema.ReleasesResult to JSON and writes it.
func writeJSONResultsForReleases(w io.Writer, result schema.ReleasesResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForReleases writes the schema.ReleasesResult data to a CSV writer.
// Each row is one release with the bucket it was aligned to, so release-level
// detail survives the aggregation.
func writeCSVResultsForReleases(w *csv.Writer, result schema.ReleasesResult) error {
	// 1. Write Header Row
	header := []string{
		"bucket",
		"start",
		"end",
		"count",
		"issue_key",
		"summary",
		"issue_type",
		"status",
		"updated",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, b := range result.Buckets {
		for _, r := range b.Releases {
			row := []string{
				b.Label,
				b.Period.Start.Format(contract.DateFormat),
				b.Period.End.Format(contract.DateFormat),
				strconv.Itoa(b.Count),
				r.IssueKey,
				r.Summary,
				r.IssueType,
				r.Status,
				r.Updated.Format(contract.DateFormat),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}
