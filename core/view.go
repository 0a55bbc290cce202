package core

import (
	"time"

	"github.com/huangsam/pulseboard/schema"
)

// BuildDashboardView assembles the full chart payload for one selection:
// the aggregated metric series, the aligned release buckets, the shared
// chronological axis domain, and the raw filtered tables.
//
// The axis is the union of metric and release buckets ordered by bucket
// start; label strings are never sorted. NoData is set when the filtered
// metric rows are empty so the rendering layer shows an explicit empty state.
func BuildDashboardView(metrics []schema.MetricRecord, releases []schema.ReleaseEvent, metric schema.Metric, g schema.Granularity, start, end time.Time) schema.DashboardView {
	filteredMetrics := FilterMetrics(metrics, start, end)
	filteredReleases := FilterReleases(releases, start, end)

	points := AggregateMetrics(filteredMetrics, metric, g)
	buckets := AlignReleases(filteredReleases, g)

	return schema.DashboardView{
		Metric:      metric,
		MetricTitle: metric.DisplayName(),
		Granularity: g,
		AxisKind:    g.Axis(),
		RangeStart:  dayOf(start),
		RangeEnd:    dayOf(end),
		Axis:        axisDomain(points, buckets),
		Points:      points,
		Releases:    buckets,
		NoData:      len(filteredMetrics) == 0,
		RawMetrics:  filteredMetrics,
		RawReleases: filteredReleases,
	}
}

// axisDomain merges the two sorted bucket sequences into one ordered label
// domain, deduplicating buckets both series occupy. Merging on the canonical
// period key keeps coincident labels from ever colliding.
func axisDomain(points []schema.AggregatedPoint, buckets []schema.AggregatedEvents) []string {
	var axis []string
	seen := make(map[schema.Period]struct{})

	i, j := 0, 0
	for i < len(points) || j < len(buckets) {
		var p schema.Period
		var label string
		switch {
		case j >= len(buckets):
			p, label = points[i].Period, points[i].Label
			i++
		case i >= len(points):
			p, label = buckets[j].Period, buckets[j].Label
			j++
		case points[i].Period.Before(buckets[j].Period):
			p, label = points[i].Period, points[i].Label
			i++
		default:
			p, label = buckets[j].Period, buckets[j].Label
			j++
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		axis = append(axis, label)
	}
	return axis
}
