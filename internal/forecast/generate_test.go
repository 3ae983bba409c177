package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateForecast_RisingSeriesProjectsUpwardWithWideningBand(t *testing.T) {
	f := NewForecaster()
	seedRising(f, "acme", "OPS_DEMAND_LEVEL", 20, 50, 2)

	out, err := f.GenerateForecast("acme", "OPS_DEMAND_LEVEL", 10, false, 0.95)
	require.NoError(t, err)
	require.Len(t, out.Points, 10)

	assert.Greater(t, out.Points[9].Value, out.Points[0].Value)
	assert.GreaterOrEqual(t, out.Points[9].High-out.Points[9].Low, out.Points[0].High-out.Points[0].Low)
}

func TestGenerateForecast_InsufficientDataReturnsError(t *testing.T) {
	f := NewForecaster()
	seedRising(f, "acme", "OPS_DEMAND_LEVEL", 5, 50, 1)

	_, err := f.GenerateForecast("acme", "OPS_DEMAND_LEVEL", 5, false, 0.95)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestGenerateForecast_ShortHistoryIsDegraded(t *testing.T) {
	f := NewForecaster()
	seedRising(f, "acme", "OPS_DEMAND_LEVEL", 15, 50, 1)

	out, err := f.GenerateForecast("acme", "OPS_DEMAND_LEVEL", 5, false, 0.95)
	require.NoError(t, err)
	assert.True(t, out.Degraded)
	assert.NotEmpty(t, out.DegradedReason)
}

func TestBacktest_PerfectLinearFitHasZeroError(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	data := make([]point, 30)
	for i := range data {
		data[i] = point{Timestamp: start.AddDate(0, 0, i), Value: 10 + float64(i)*2}
	}
	trend := Trend{Slope: 2, Intercept: 10}

	mape, rmse := backtest(data, trend)
	assert.InDelta(t, 0.0, mape, 1e-9)
	assert.InDelta(t, 0.0, rmse, 1e-9)
}
