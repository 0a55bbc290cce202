package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/huangsam/pulseboard/schema"
)

// FilterMetrics returns the rows whose date falls in the inclusive
// [start, end] window. Bounds are compared at day resolution.
func FilterMetrics(rows []schema.MetricRecord, start, end time.Time) []schema.MetricRecord {
	lo, hi := dayOf(start), dayOf(end)
	var out []schema.MetricRecord
	for _, r := range rows {
		d := dayOf(r.Date)
		if d.Before(lo) || d.After(hi) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// AggregateMetrics groups already-filtered rows into calendar buckets and
// reduces the selected metric with an arithmetic mean per bucket.
//
// Rows with an undefined value (zero denominator) are skipped; a bucket whose
// rows are all undefined is omitted rather than emitted as zero. The result
// is sorted by bucket start ascending, which is also the categorical axis
// order for rendering. An empty row set yields an empty result, not an error.
func AggregateMetrics(rows []schema.MetricRecord, metric schema.Metric, g schema.Granularity) []schema.AggregatedPoint {
	b := ForGranularity(g)

	sums := make(map[schema.Period]float64)
	counts := make(map[schema.Period]int)
	for _, r := range rows {
		v := r.MetricValue(metric)
		if v != v { // NaN: no data for this day
			continue
		}
		p := b.BucketOf(r.Date)
		sums[p] += v
		counts[p]++
	}

	points := make([]schema.AggregatedPoint, 0, len(sums))
	for p, sum := range sums {
		n := counts[p]
		mean := sum / float64(n)
		points = append(points, schema.AggregatedPoint{
			Period:  p,
			Label:   b.LabelOf(p),
			Value:   mean,
			Display: FormatPercent(mean),
			Samples: n,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Period.Before(points[j].Period)
	})
	return points
}

// FormatPercent renders a metric value as a percentage rounded to two
// decimal places, independent of the numeric value used for plotting.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
