package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.June, 30, 10, 0, 0, 0, time.UTC)

// TestParseRelativeTimeUnit covers various valid and invalid cases.
func TestParseRelativeTimeUnit(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "valid plural months (mixed case)",
			input:    "3 MoNtHs AgO",
			expected: fixedNow.AddDate(0, -3, 0),
		},
		{
			name:     "valid singular week (capitalized)",
			input:    "1 Week Ago",
			expected: fixedNow.AddDate(0, 0, -7),
		},
		{
			name:     "valid 14 days (upper case)",
			input:    "14 DAYS AGO",
			expected: fixedNow.AddDate(0, 0, -14),
		},
		{
			name:     "valid year",
			input:    "1 year ago",
			expected: fixedNow.AddDate(-1, 0, 0),
		},
		{
			name:        "invalid missing ago",
			input:       "2 years",
			expectError: true,
		},
		{
			name:        "invalid bad unit (decades)",
			input:       "4 decades ago",
			expectError: true,
		},
		{
			name:        "invalid non-numeric value",
			input:       "one year ago",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseRelativeTime(tt.input, fixedNow)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseDateInput(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "plain calendar date",
			input:    "2025-06-01",
			expected: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "calendar date with surrounding spaces",
			input:    "  2025-06-01  ",
			expected: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "full RFC3339 timestamp",
			input:    "2025-06-01T12:30:00Z",
			expected: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			name:     "relative form",
			input:    "2 weeks ago",
			expected: fixedNow.AddDate(0, 0, -14),
		},
		{
			name:        "unparseable",
			input:       "June the first",
			expectError: true,
		},
		{
			name:        "empty",
			input:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDateInput(tt.input, fixedNow)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}
