// Package insight detects operational risks and opportunities from a
// company's projected indicators and turns each into prioritized,
// actionable recommendations (spec.md §4.7).
package insight

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

// rule is one threshold-based detector: it fires when Trigger reports
// true against a company's named OPS_* indicators, producing an Insight
// scored from the rule's fixed base parameters.
type rule struct {
	Code           string
	Kind           models.InsightKind
	Category       models.OperationalCategory
	Title          string
	Describe       func(snapshot map[string]float64) string
	ProbabilityBase float64
	ImpactBase      float64
	Urgency         int
	ConfidenceBase  float64
	Trigger         func(named map[string]models.NamedOperationalIndicator) (bool, map[string]float64)
}

func risingOrFalling(named map[string]models.NamedOperationalIndicator, code string, below float64, trend models.TrendDirection) (bool, map[string]float64) {
	ind, ok := named[code]
	if !ok {
		return false, nil
	}
	if ind.Value >= below {
		return false, nil
	}
	if trend != "" && ind.Trend != trend {
		return false, nil
	}
	return true, map[string]float64{code: ind.Value}
}

func above(named map[string]models.NamedOperationalIndicator, code string, threshold float64) (bool, map[string]float64) {
	ind, ok := named[code]
	if !ok {
		return false, nil
	}
	if ind.Value <= threshold {
		return false, nil
	}
	return true, map[string]float64{code: ind.Value}
}

// rules is the fixed detector set (spec.md §4.7: "full list enumerated in
// source"). Each rule's code matches a template in the recommendation
// registry so GenerateRecommendations can find it directly.
var rules = []rule{
	{
		Code: "RISK_SUPPLY_CHAIN", Kind: models.InsightRisk, Category: models.CategorySupplyChain,
		Title:           "Supply chain disruption risk",
		Describe:        func(s map[string]float64) string { return fmt.Sprintf("Supply chain health has fallen to %.0f and is trending down.", s["OPS_SUPPLY_CHAIN"]) },
		ProbabilityBase: 0.7, ImpactBase: 70, Urgency: 4, ConfidenceBase: 0.75,
		Trigger: func(n map[string]models.NamedOperationalIndicator) (bool, map[string]float64) {
			return risingOrFalling(n, "OPS_SUPPLY_CHAIN", 45, models.TrendFalling)
		},
	},
	{
		Code: "RISK_COST_ESCALATION", Kind: models.InsightRisk, Category: models.CategoryCostPressure,
		Title:           "Cost escalation risk",
		Describe:        func(s map[string]float64) string { return fmt.Sprintf("Cost pressure has reached %.0f, squeezing margins.", s["OPS_COST_PRESSURE"]) },
		ProbabilityBase: 0.65, ImpactBase: 60, Urgency: 3, ConfidenceBase: 0.7,
		Trigger: func(n map[string]models.NamedOperationalIndicator) (bool, map[string]float64) {
			return above(n, "OPS_COST_PRESSURE", 75)
		},
	},
	{
		Code: "RISK_REVENUE_DECLINE", Kind: models.InsightRisk, Category: models.CategoryMarketConditions,
		Title:           "Demand decline risk",
		Describe:        func(s map[string]float64) string { return fmt.Sprintf("Demand level has dropped to %.0f and is trending down.", s["OPS_DEMAND_LEVEL"]) },
		ProbabilityBase: 0.6, ImpactBase: 65, Urgency: 3, ConfidenceBase: 0.65,
		Trigger: func(n map[string]models.NamedOperationalIndicator) (bool, map[string]float64) {
			return risingOrFalling(n, "OPS_DEMAND_LEVEL", 35, models.TrendFalling)
		},
	},
	{
		Code: "RISK_WORKFORCE", Kind: models.InsightRisk, Category: models.CategoryWorkforce,
		Title:           "Workforce availability risk",
		Describe:        func(s map[string]float64) string { return fmt.Sprintf("Workforce availability has fallen to %.0f.", s["OPS_WORKFORCE_AVAIL"]) },
		ProbabilityBase: 0.55, ImpactBase: 55, Urgency: 3, ConfidenceBase: 0.65,
		Trigger: func(n map[string]models.NamedOperationalIndicator) (bool, map[string]float64) {
			return risingOrFalling(n, "OPS_WORKFORCE_AVAIL", 40, "")
		},
	},
	{
		Code: "RISK_POWER", Kind: models.InsightRisk, Category: models.CategoryInfrastructure,
		Title:           "Infrastructure continuity risk",
		Describe:        func(s map[string]float64) string { return fmt.Sprintf("Power reliability has dropped to %.0f.", s["OPS_POWER_RELIABILITY"]) },
		ProbabilityBase: 0.6, ImpactBase: 60, Urgency: 4, ConfidenceBase: 0.7,
		Trigger: func(n map[string]models.NamedOperationalIndicator) (bool, map[string]float64) {
			return risingOrFalling(n, "OPS_POWER_RELIABILITY", 40, "")
		},
	},
	{
		Code: "OPP_DEMAND_SURGE", Kind: models.InsightOpportunity, Category: models.CategoryMarketConditions,
		Title:           "Demand surge opportunity",
		Describe:        func(s map[string]float64) string { return fmt.Sprintf("Demand level has risen to %.0f.", s["OPS_DEMAND_LEVEL"]) },
		ProbabilityBase: 0.6, ImpactBase: 60, Urgency: 3, ConfidenceBase: 0.65,
		Trigger: func(n map[string]models.NamedOperationalIndicator) (bool, map[string]float64) {
			return above(n, "OPS_DEMAND_LEVEL", 80)
		},
	},
	{
		Code: "OPP_PRICING_POWER", Kind: models.InsightOpportunity, Category: models.CategoryMarketConditions,
		Title:           "Pricing power opportunity",
		Describe:        func(s map[string]float64) string { return fmt.Sprintf("Pricing power has risen to %.0f.", s["OPS_PRICING_POWER"]) },
		ProbabilityBase: 0.55, ImpactBase: 50, Urgency: 2, ConfidenceBase: 0.6,
		Trigger: func(n map[string]models.NamedOperationalIndicator) (bool, map[string]float64) {
			return above(n, "OPS_PRICING_POWER", 75)
		},
	},
	{
		Code: "OPP_MARKET_CAPTURE", Kind: models.InsightOpportunity, Category: models.CategoryMarketConditions,
		Title:           "Market share capture opportunity",
		Describe:        func(s map[string]float64) string { return fmt.Sprintf("Competition intensity has eased to %.0f.", s["OPS_COMPETITION_INTENSITY"]) },
		ProbabilityBase: 0.5, ImpactBase: 55, Urgency: 2, ConfidenceBase: 0.55,
		Trigger: func(n map[string]models.NamedOperationalIndicator) (bool, map[string]float64) {
			ind, ok := n["OPS_COMPETITION_INTENSITY"]
			if !ok || ind.Value >= 30 {
				return false, nil
			}
			return true, map[string]float64{"OPS_COMPETITION_INTENSITY": ind.Value}
		},
	},
	{
		Code: "OPP_DIGITAL_TRANSFORM", Kind: models.InsightOpportunity, Category: models.CategoryInfrastructure,
		Title:           "Digital transformation opportunity",
		Describe:        func(s map[string]float64) string { return fmt.Sprintf("Connectivity has risen to %.0f and is trending up.", s["OPS_INTERNET_CONNECTIVITY"]) },
		ProbabilityBase: 0.5, ImpactBase: 45, Urgency: 2, ConfidenceBase: 0.55,
		Trigger: func(n map[string]models.NamedOperationalIndicator) (bool, map[string]float64) {
			ind, ok := n["OPS_INTERNET_CONNECTIVITY"]
			if !ok || ind.Value <= 80 || ind.Trend != models.TrendRising {
				return false, nil
			}
			return true, map[string]float64{"OPS_INTERNET_CONNECTIVITY": ind.Value}
		},
	},
	{
		Code: "OPP_TALENT_ACQUISITION", Kind: models.InsightOpportunity, Category: models.CategoryWorkforce,
		Title:           "Talent acquisition opportunity",
		Describe:        func(s map[string]float64) string { return fmt.Sprintf("Workforce availability has risen to %.0f.", s["OPS_WORKFORCE_AVAIL"]) },
		ProbabilityBase: 0.5, ImpactBase: 40, Urgency: 2, ConfidenceBase: 0.55,
		Trigger: func(n map[string]models.NamedOperationalIndicator) (bool, map[string]float64) {
			return above(n, "OPS_WORKFORCE_AVAIL", 80)
		},
	},
}

// scoreWeights compose a rule's fixed parameters into the final [0,100]
// score (spec.md §4.7: "Final score = f(prob, impact, urgency, confidence)").
const (
	weightImpact      = 0.40
	weightProbability = 0.30
	weightUrgency     = 0.15
	weightConfidence  = 0.15
	urgencyScale      = 20.0 // urgency 1-5 -> 20-100
)

func finalScore(probability, impact float64, urgency int, confidence float64) float64 {
	score := weightImpact*impact +
		weightProbability*(probability*100) +
		weightUrgency*(float64(urgency)*urgencyScale) +
		weightConfidence*(confidence*100)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Detect evaluates every rule against a company's projected operational
// indicators and returns one Insight per firing rule (spec.md §4.7).
func Detect(ops models.OperationalIndicators, now time.Time) []models.Insight {
	var out []models.Insight
	for _, r := range rules {
		fired, snapshot := r.Trigger(ops.Named)
		if !fired {
			continue
		}

		impact := r.ImpactBase
		score := finalScore(r.ProbabilityBase, impact, r.Urgency, r.ConfidenceBase)

		out = append(out, models.Insight{
			ID:        uuid.New().String(),
			Code:      r.Code,
			CompanyID: ops.CompanyID,
			Kind:      r.Kind,
			Category:  r.Category,
			Title:     r.Title,
			Description: r.Describe(snapshot),
			Scores: models.InsightScores{
				Probability: r.ProbabilityBase,
				Impact:      impact,
				Urgency:     r.Urgency,
				Confidence:  r.ConfidenceBase,
				FinalScore:  score,
				Severity:    models.ClassifySeverity(score),
			},
			Status:               models.StatusActive,
			TriggeringIndicators: snapshot,
			CreatedAt:            now,
			UpdatedAt:            now,
		})
	}
	return out
}
