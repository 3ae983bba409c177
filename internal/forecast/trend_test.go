package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRising(f *Forecaster, company, indicator string, n int, base float64, step float64) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		f.AddDataPoint(company, indicator, start.AddDate(0, 0, i), base+step*float64(i))
	}
}

func TestDetectTrend_RisingSeriesYieldsUpDirection(t *testing.T) {
	f := NewForecaster()
	seedRising(f, "acme", "OPS_DEMAND_LEVEL", 20, 50, 2)

	trend, err := f.DetectTrend("acme", "OPS_DEMAND_LEVEL", 0)
	require.NoError(t, err)

	assert.Equal(t, StrongUp, trend.Direction)
	assert.Greater(t, trend.Slope, 0.0)
	assert.InDelta(t, 1.0, trend.RSquared, 1e-6)
}

func TestDetectTrend_FlatSeriesYieldsStable(t *testing.T) {
	f := NewForecaster()
	seedRising(f, "acme", "OPS_COST_PRESSURE", 20, 50, 0)

	trend, err := f.DetectTrend("acme", "OPS_COST_PRESSURE", 0)
	require.NoError(t, err)
	assert.Equal(t, Stable, trend.Direction)
}

func TestDetectTrend_InsufficientDataReturnsError(t *testing.T) {
	f := NewForecaster()
	seedRising(f, "acme", "OPS_DEMAND_LEVEL", 3, 50, 1)

	_, err := f.DetectTrend("acme", "OPS_DEMAND_LEVEL", 0)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestAccelerationOf_SpeedingUpSeriesIsPositive(t *testing.T) {
	x := make([]float64, 20)
	y := make([]float64, 20)
	for i := range x {
		x[i] = float64(i)
		if i < 10 {
			y[i] = float64(i)
		} else {
			y[i] = 10 + float64(i-10)*3
		}
	}
	assert.Greater(t, accelerationOf(x, y), 0.0)
}
