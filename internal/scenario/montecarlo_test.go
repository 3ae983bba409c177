package scenario

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMonteCarlo_ProducesOrderedPercentileBands(t *testing.T) {
	def := supplyShockScenario()
	baseline := map[string]float64{"OPS_SUPPLY_CHAIN": 0.9, "OPS_PRODUCTION": 0.9}

	result, stats, err := RunMonteCarlo(def, baseline, nil, 50, 0.1, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, 50, stats.Simulations)
	assert.GreaterOrEqual(t, stats.MaxImpact, stats.MeanImpact)
	assert.LessOrEqual(t, stats.MinImpact, stats.MeanImpact)

	for _, outcome := range result.Outcomes {
		for day := range outcome.P50 {
			assert.LessOrEqual(t, outcome.P10[day].Value, outcome.P50[day].Value+1e-9)
			assert.LessOrEqual(t, outcome.P50[day].Value, outcome.P90[day].Value+1e-9)
		}
	}
}

func TestRunMonteCarlo_ZeroHorizonReturnsError(t *testing.T) {
	def := supplyShockScenario()
	def.HorizonDays = 0
	_, _, err := RunMonteCarlo(def, map[string]float64{"OPS_SUPPLY_CHAIN": 0.5}, nil, 10, 0.1, nil)
	assert.ErrorIs(t, err, ErrNoHorizon)
}

func TestRunMonteCarlo_DefaultsApplyWhenUnset(t *testing.T) {
	def := supplyShockScenario()
	def.HorizonDays = 10
	result, stats, err := RunMonteCarlo(def, map[string]float64{"OPS_SUPPLY_CHAIN": 0.5}, nil, 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, stats.Simulations)
	assert.NotEmpty(t, result.Outcomes)
}
