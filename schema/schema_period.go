package schema

import "time"

// Period represents one calendar-aligned bucket of a chosen granularity.
// Two timestamps belong to the same bucket iff their canonical Start and End
// match exactly; the display label is derived and never used for identity.
type Period struct {
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
	Granularity Granularity `json:"granularity"`
}

// Before reports whether p starts strictly before other.
func (p Period) Before(other Period) bool {
	return p.Start.Before(other.Start)
}

// AggregatedPoint is one occupied period of the metric series.
type AggregatedPoint struct {
	Period  Period  `json:"period"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`   // Mean of the selected metric over days in the bucket
	Display string  `json:"display"` // Rounded percentage string for tooltips/tables
	Samples int     `json:"samples"` // Days with a defined value in the bucket
}

// AggregatedEvents is one occupied period of the release series.
type AggregatedEvents struct {
	Period   Period         `json:"period"`
	Label    string         `json:"label"`
	Count    int            `json:"count"`
	Keys     string         `json:"keys"` // Issue keys joined in original row order
	Releases []ReleaseEvent `json:"releases"`
}

// SeriesResult holds the aggregated metric series for one selection.
type SeriesResult struct {
	Metric      Metric            `json:"metric"`
	Granularity Granularity       `json:"granularity"`
	Points      []AggregatedPoint `json:"points"`
}

// ReleasesResult holds the aligned release buckets for one selection.
type ReleasesResult struct {
	Granularity Granularity        `json:"granularity"`
	Buckets     []AggregatedEvents `json:"buckets"`
}
