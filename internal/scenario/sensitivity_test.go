package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

func TestRunSensitivityAnalysis_RanksLargerShockMoreSensitive(t *testing.T) {
	def := supplyShockScenario()
	def.Shocks = []models.Shock{
		{IndicatorID: "OPS_SUPPLY_CHAIN", Kind: models.ShockStep, Magnitude: -0.5, DurationDays: 30},
		{IndicatorID: "OPS_DEMAND", Kind: models.ShockStep, Magnitude: -0.05, DurationDays: 30},
	}
	baseline := map[string]float64{"OPS_SUPPLY_CHAIN": 0.8, "OPS_DEMAND": 0.8, "OPS_PRODUCTION": 0.8, "OPS_REVENUE": 0.8}

	result, err := RunSensitivityAnalysis(def, baseline, nil, 0.1)
	require.NoError(t, err)

	require.NotEmpty(t, result.TopSensitiveParams)
	assert.Equal(t, "OPS_SUPPLY_CHAIN", result.TopSensitiveParams[0])
	assert.Contains(t, result.CriticalThresholds, "OPS_SUPPLY_CHAIN")
}

func TestRunSensitivityAnalysis_ZeroHorizonReturnsError(t *testing.T) {
	def := supplyShockScenario()
	def.HorizonDays = 0
	_, err := RunSensitivityAnalysis(def, map[string]float64{"OPS_SUPPLY_CHAIN": 0.5}, nil, 0.1)
	assert.ErrorIs(t, err, ErrNoHorizon)
}
