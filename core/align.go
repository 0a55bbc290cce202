package core

import (
	"sort"
	"strings"
	"time"

	"github.com/huangsam/pulseboard/schema"
)

// keySeparator joins issue keys within a bucket for display.
const keySeparator = ", "

// FilterReleases returns the events whose Updated timestamp falls in the
// inclusive [start, end] window. Updated, not Created, places a release on
// the timeline.
func FilterReleases(events []schema.ReleaseEvent, start, end time.Time) []schema.ReleaseEvent {
	lo, hi := dayOf(start), dayOf(end)
	var out []schema.ReleaseEvent
	for _, e := range events {
		d := dayOf(e.Updated)
		if d.Before(lo) || d.After(hi) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// AlignReleases maps already-filtered release events onto the same bucket and
// label space as the metric aggregate, using the identical Bucketer, so both
// series share one categorical axis without any label matching.
//
// Events group by canonical bucket, keys join in original row order, and
// buckets with zero events are absent. The result is sorted by bucket start.
func AlignReleases(events []schema.ReleaseEvent, g schema.Granularity) []schema.AggregatedEvents {
	b := ForGranularity(g)

	grouped := make(map[schema.Period][]schema.ReleaseEvent)
	for _, e := range events {
		p := b.BucketOf(e.Updated)
		grouped[p] = append(grouped[p], e)
	}

	buckets := make([]schema.AggregatedEvents, 0, len(grouped))
	for p, evs := range grouped {
		keys := make([]string, len(evs))
		for i, e := range evs {
			keys[i] = e.IssueKey
		}
		buckets = append(buckets, schema.AggregatedEvents{
			Period:   p,
			Label:    b.LabelOf(p),
			Count:    len(evs),
			Keys:     strings.Join(keys, keySeparator),
			Releases: evs,
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Period.Before(buckets[j].Period)
	})
	return buckets
}
