package core

import (
	"math"

	"github.com/huangsam/pulseboard/schema"
)

// DeriveMetrics computes the ticket_rate and msat percentage columns in place.
// A zero denominator yields NaN, never zero and never an error; downstream
// aggregation and labeling skip NaN entries entirely.
func DeriveMetrics(rows []schema.MetricRecord) {
	for i := range rows {
		rows[i].TicketRate = percentRatio(rows[i].FDTickets, rows[i].ActiveSessions)
		rows[i].MSAT = percentRatio(rows[i].Happy, rows[i].FeedbackGiven)
	}
}

// percentRatio returns num/den scaled to a percentage, or NaN when den is zero.
func percentRatio(num, den int) float64 {
	if den == 0 {
		return math.NaN()
	}
	return float64(num) / float64(den) * 100
}
