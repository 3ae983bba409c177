package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

func TestDetect_SupplyChainBelowThresholdAndFallingTriggersRisk(t *testing.T) {
	ops := models.OperationalIndicators{
		CompanyID: "acme",
		Named: map[string]models.NamedOperationalIndicator{
			"OPS_SUPPLY_CHAIN": {Code: "OPS_SUPPLY_CHAIN", Value: 30, Trend: models.TrendFalling},
		},
	}

	insights := Detect(ops, time.Now())

	var found *models.Insight
	for i := range insights {
		if insights[i].Code == "RISK_SUPPLY_CHAIN" {
			found = &insights[i]
		}
	}
	if assert.NotNil(t, found) {
		assert.Equal(t, models.InsightRisk, found.Kind)
		assert.Greater(t, found.Scores.FinalScore, 0.0)
		assert.LessOrEqual(t, found.Scores.FinalScore, 100.0)
		assert.Equal(t, models.ClassifySeverity(found.Scores.FinalScore), found.Scores.Severity)
	}
}

func TestDetect_SupplyChainBelowThresholdButRisingDoesNotTrigger(t *testing.T) {
	ops := models.OperationalIndicators{
		Named: map[string]models.NamedOperationalIndicator{
			"OPS_SUPPLY_CHAIN": {Code: "OPS_SUPPLY_CHAIN", Value: 30, Trend: models.TrendRising},
		},
	}

	insights := Detect(ops, time.Now())
	for _, in := range insights {
		assert.NotEqual(t, "RISK_SUPPLY_CHAIN", in.Code)
	}
}

func TestDetect_DemandSurgeTriggersOpportunity(t *testing.T) {
	ops := models.OperationalIndicators{
		Named: map[string]models.NamedOperationalIndicator{
			"OPS_DEMAND_LEVEL": {Code: "OPS_DEMAND_LEVEL", Value: 90},
		},
	}

	insights := Detect(ops, time.Now())
	var found bool
	for _, in := range insights {
		if in.Code == "OPP_DEMAND_SURGE" {
			found = true
			assert.Equal(t, models.InsightOpportunity, in.Kind)
		}
	}
	assert.True(t, found)
}

func TestDetect_MissingIndicatorNeverTriggers(t *testing.T) {
	insights := Detect(models.OperationalIndicators{Named: map[string]models.NamedOperationalIndicator{}}, time.Now())
	assert.Empty(t, insights)
}
