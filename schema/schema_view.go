package schema

import "time"

// DashboardView is the full chart payload for one selection, the data an
// interactive rendering layer consumes. The axis order is chronological by
// bucket start; labels are not sortable on their own.
type DashboardView struct {
	Metric      Metric      `json:"metric"`
	MetricTitle string      `json:"metric_title"`
	Granularity Granularity `json:"granularity"`
	AxisKind    AxisKind    `json:"axis_kind"`
	RangeStart  time.Time   `json:"range_start"`
	RangeEnd    time.Time   `json:"range_end"`

	// Axis is the shared categorical domain: the union of metric and release
	// buckets, ordered by bucket start.
	Axis []string `json:"axis"`

	Points   []AggregatedPoint  `json:"points"`
	Releases []AggregatedEvents `json:"releases"`

	// NoData is set when the filtered metric rows are empty; the rendering
	// layer shows an explicit empty state instead of a blank chart.
	NoData bool `json:"no_data"`

	// Raw filtered tables for tabular display alongside the chart.
	RawMetrics  []MetricRecord `json:"raw_metrics"`
	RawReleases []ReleaseEvent `json:"raw_releases"`
}
