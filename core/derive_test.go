package core

import (
	"math"
	"testing"
	"time"

	"github.com/huangsam/pulseboard/schema"
	"github.com/stretchr/testify/assert"
)

func TestDeriveMetrics(t *testing.T) {
	rows := []schema.MetricRecord{
		{
			Date:           time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			ActiveSessions: 200,
			FDTickets:      10,
			FeedbackGiven:  20,
			Happy:          17,
		},
	}

	DeriveMetrics(rows)

	assert.InDelta(t, 5.0, rows[0].TicketRate, 1e-9)
	assert.InDelta(t, 85.0, rows[0].MSAT, 1e-9)
	assert.True(t, rows[0].HasTicketRate())
	assert.True(t, rows[0].HasMSAT())
}

func TestDeriveMetricsZeroDenominator(t *testing.T) {
	rows := []schema.MetricRecord{
		{
			Date:           time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			ActiveSessions: 0,
			FDTickets:      3,
			FeedbackGiven:  0,
			Happy:          0,
		},
	}

	DeriveMetrics(rows)

	// No sessions and no feedback means undefined, never zero.
	assert.True(t, math.IsNaN(rows[0].TicketRate))
	assert.True(t, math.IsNaN(rows[0].MSAT))
	assert.False(t, rows[0].HasTicketRate())
	assert.False(t, rows[0].HasMSAT())
}

func TestDeriveMetricsMixedRows(t *testing.T) {
	rows := []schema.MetricRecord{
		{ActiveSessions: 100, FDTickets: 5, FeedbackGiven: 10, Happy: 9},
		{ActiveSessions: 0, FDTickets: 0, FeedbackGiven: 4, Happy: 2},
	}

	DeriveMetrics(rows)

	assert.InDelta(t, 5.0, rows[0].TicketRate, 1e-9)
	assert.InDelta(t, 90.0, rows[0].MSAT, 1e-9)
	assert.True(t, math.IsNaN(rows[1].TicketRate))
	assert.InDelta(t, 50.0, rows[1].MSAT, 1e-9)
}
