package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDetectAnomalies_SpikeIsFlaggedAsOutlier(t *testing.T) {
	f := NewForecaster()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		value := 50.0
		if i == 12 {
			value = 500.0
		}
		f.AddDataPoint("acme", "OPS_COST_PRESSURE", start.AddDate(0, 0, i), value)
	}

	anomalies := f.DetectAnomalies("acme", "OPS_COST_PRESSURE", 2.0)
	if assert.NotEmpty(t, anomalies) {
		assert.Equal(t, "outlier", anomalies[0].Type)
		assert.Equal(t, "high", anomalies[0].Severity)
	}
}

func TestDetectAnomalies_ShortHistoryYieldsNone(t *testing.T) {
	f := NewForecaster()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		f.AddDataPoint("acme", "OPS_COST_PRESSURE", start.AddDate(0, 0, i), 50)
	}

	assert.Empty(t, f.DetectAnomalies("acme", "OPS_COST_PRESSURE", 2.0))
}

func TestDetectTrendChanges_ReversalIsFlagged(t *testing.T) {
	f := NewForecaster()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 60
	for i := 0; i < n; i++ {
		var value float64
		if i < n/2 {
			value = float64(i)
		} else {
			value = float64(n/2) - float64(i-n/2)
		}
		f.AddDataPoint("acme", "OPS_SUPPLY_CHAIN", start.AddDate(0, 0, i), value)
	}

	anomalies := f.DetectTrendChanges("acme", "OPS_SUPPLY_CHAIN", 14)
	var found bool
	for _, a := range anomalies {
		if a.Type == "reversal" {
			found = true
		}
	}
	assert.True(t, found)
}
