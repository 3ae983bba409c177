package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

func supplyShockScenario() models.ScenarioDefinition {
	return models.ScenarioDefinition{
		ID:          "scn-1",
		Name:        "Supply Chain Disruption",
		CompanyID:   "acme",
		HorizonDays: 30,
		Shocks: []models.Shock{
			{IndicatorID: "OPS_SUPPLY_CHAIN", Kind: models.ShockStep, Magnitude: -0.3, DurationDays: 30},
		},
	}
}

func TestRunSimulation_DirectShockLowersAffectedIndicator(t *testing.T) {
	def := supplyShockScenario()
	baseline := map[string]float64{"OPS_SUPPLY_CHAIN": 0.7, "OPS_PRODUCTION": 0.8}

	result, summary, err := RunSimulation(def, baseline, nil)
	require.NoError(t, err)

	var supplyOutcome *models.ScenarioOutcome
	for i := range result.Outcomes {
		if result.Outcomes[i].IndicatorID == "OPS_SUPPLY_CHAIN" {
			supplyOutcome = &result.Outcomes[i]
		}
	}
	require.NotNil(t, supplyOutcome)
	last := supplyOutcome.P50[len(supplyOutcome.P50)-1]
	assert.Less(t, last.Value, 0.7)
	assert.Equal(t, "negative", summary.Direction)
}

func TestRunSimulation_PropagatesToDownstreamIndicator(t *testing.T) {
	def := supplyShockScenario()
	baseline := map[string]float64{"OPS_SUPPLY_CHAIN": 0.7, "OPS_PRODUCTION": 0.8}

	result, summary, err := RunSimulation(def, baseline, nil)
	require.NoError(t, err)

	var productionOutcome *models.ScenarioOutcome
	for i := range result.Outcomes {
		if result.Outcomes[i].IndicatorID == "OPS_PRODUCTION" {
			productionOutcome = &result.Outcomes[i]
		}
	}
	require.NotNil(t, productionOutcome)
	assert.Less(t, productionOutcome.P50[len(productionOutcome.P50)-1].Value, 0.8)
	assert.Contains(t, summary.Propagated["OPS_SUPPLY_CHAIN"], "OPS_PRODUCTION")
	assert.Contains(t, result.ImpactedInsights, "OPS_SUPPLY_CHAIN->OPS_PRODUCTION")
}

func TestRunSimulation_ZeroHorizonReturnsError(t *testing.T) {
	def := supplyShockScenario()
	def.HorizonDays = 0
	_, _, err := RunSimulation(def, map[string]float64{"OPS_SUPPLY_CHAIN": 0.5}, nil)
	assert.ErrorIs(t, err, ErrNoHorizon)
}

func TestClassifySeverity_Bands(t *testing.T) {
	assert.Equal(t, "critical", classifySeverity(0.3))
	assert.Equal(t, "high", classifySeverity(0.2))
	assert.Equal(t, "medium", classifySeverity(0.1))
	assert.Equal(t, "low", classifySeverity(0.05))
}
