package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/pulseboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReleasesResult() schema.ReleasesResult {
	return schema.ReleasesResult{
		Granularity: schema.WeekGranularity,
		Buckets: []schema.AggregatedEvents{
			{
				Period: weekPeriod(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)),
				Label:  "Jun 15 - Jun 21",
				Count:  2,
				Keys:   "REL-10, REL-11",
				Releases: []schema.ReleaseEvent{
					{
						IssueKey:  "REL-10",
						Summary:   "June rollout",
						IssueType: "Release",
						Status:    "Done",
						Updated:   time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
					},
					{
						IssueKey:  "REL-11",
						Summary:   "Hotfix",
						IssueType: "Release",
						Status:    "Done",
						Updated:   time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC),
					},
				},
			},
			{
				Period: weekPeriod(time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC)),
				Label:  "Jun 22 - Jun 28",
				Count:  1,
				Keys:   "REL-12",
				Releases: []schema.ReleaseEvent{
					{
						IssueKey:  "REL-12",
						Summary:   "Cleanup",
						IssueType: "Release",
						Status:    "Done",
						Updated:   time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC),
					},
				},
			},
		},
	}
}

func TestWriteReleasesResultsTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := seriesConfig(schema.TextOut)

	err := printReleasesTable(&buf, sampleReleasesResult(), cfg, 50*time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Jun 15 - Jun 21")
	assert.Contains(t, out, "REL-10, REL-11")
	assert.Contains(t, out, "3 releases across 2 week buckets")
}

func TestWriteReleasesResultsCSV(t *testing.T) {
	var buf bytes.Buffer

	csvWriter := csv.NewWriter(&buf)
	err := writeCSVResultsForReleases(csvWriter, sampleReleasesResult())
	csvWriter.Flush()
	require.NoError(t, err)

	reader := csv.NewReader(bytes.NewReader(buf.Bytes()))
	records, err := reader.ReadAll()
	require.NoError(t, err)

	// One row per release, not per bucket
	require.Len(t, records, 4)
	assert.Equal(t, []string{"bucket", "start", "end", "count", "issue_key", "summary", "issue_type", "status", "updated"}, records[0])
	assert.Equal(t, []string{"Jun 15 - Jun 21", "2025-06-15", "2025-06-21", "2", "REL-10", "June rollout", "Release", "Done", "2025-06-16"}, records[1])
	assert.Equal(t, "REL-11", records[2][4])
	assert.Equal(t, "REL-12", records[3][4])
}

func TestWriteReleasesResultsJSON(t *testing.T) {
	var buf bytes.Buffer

	err := writeJSONResultsForReleases(&buf, sampleReleasesResult())
	require.NoError(t, err)

	var decoded schema.ReleasesResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Buckets, 2)
	assert.Equal(t, "REL-10, REL-11", decoded.Buckets[0].Keys)
	require.Len(t, decoded.Buckets[0].Releases, 2)
	assert.Equal(t, "June rollout", decoded.Buckets[0].Releases[0].Summary)
}

func TestWriteReleasesResultsEmpty(t *testing.T) {
	var buf bytes.Buffer
	cfg := seriesConfig(schema.TextOut)

	empty := schema.ReleasesResult{Granularity: schema.MonthGranularity}
	err := printReleasesTable(&buf, empty, cfg, time.Millisecond)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "0 releases across 0 month buckets")
}
