package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSeasonality_WeeklyPatternIsDetected(t *testing.T) {
	f := NewForecaster()
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) // a Monday
	for i := 0; i < 28; i++ {
		ts := start.AddDate(0, 0, i)
		value := 100.0
		if ts.Weekday() == time.Saturday || ts.Weekday() == time.Sunday {
			value = 40.0
		}
		f.AddDataPoint("acme", "OPS_DEMAND_LEVEL", ts, value)
	}

	pattern, err := f.DetectSeasonality("acme", "OPS_DEMAND_LEVEL", PeriodWeekly)
	require.NoError(t, err)

	assert.Greater(t, pattern.Strength, 0.1)
	assert.Less(t, pattern.Factors[int(time.Saturday)], 1.0)
	assert.Greater(t, pattern.Factors[int(time.Monday)], 1.0)
}

func TestDetectSeasonality_InsufficientDataReturnsError(t *testing.T) {
	f := NewForecaster()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		f.AddDataPoint("acme", "OPS_DEMAND_LEVEL", start.AddDate(0, 0, i), 50)
	}

	_, err := f.DetectSeasonality("acme", "OPS_DEMAND_LEVEL", PeriodWeekly)
	assert.ErrorIs(t, err, ErrInsufficientData)
}
