package scenario

import (
	"sort"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

// SensitivityResult reports how much each shock's magnitude drives the
// scenario's overall impact, grounded on
// ScenarioSimulator.run_sensitivity_analysis.
type SensitivityResult struct {
	ScenarioID           string
	CompanyID            string
	ParameterSensitivities map[string]float64
	TopSensitiveParams   []string
	Elasticities         map[string]float64
	CriticalThresholds   map[string]float64
}

// RunSensitivityAnalysis perturbs each shock's magnitude by ±perturbation
// and measures how much the overall impact moves, reporting both a raw
// sensitivity and an elasticity (%Δoutput / %Δinput), plus the magnitude at
// which the scenario's impact would cross into "critical" severity
// (spec.md §4.10).
func RunSensitivityAnalysis(def models.ScenarioDefinition, baseline map[string]float64, rules []models.PropagationRule, perturbation float64) (SensitivityResult, error) {
	if def.HorizonDays <= 0 {
		return SensitivityResult{}, ErrNoHorizon
	}
	if perturbation <= 0 {
		perturbation = 0.1
	}
	if rules == nil {
		rules = DefaultPropagationRules()
	}

	baselinePath := runPath(def.Shocks, baseline, rules, def.HorizonDays)
	baselineImpact := overallImpactOf(baselinePath.final, baseline)

	sensitivities := make(map[string]float64, len(def.Shocks))
	elasticities := make(map[string]float64, len(def.Shocks))

	for i, shock := range def.Shocks {
		perturbedShocks := make([]models.Shock, len(def.Shocks))
		copy(perturbedShocks, def.Shocks)
		perturbedShocks[i].Magnitude = shock.Magnitude * (1 + perturbation)

		perturbedPath := runPath(perturbedShocks, baseline, rules, def.HorizonDays)
		perturbedImpact := overallImpactOf(perturbedPath.final, baseline)

		impactChange := perturbedImpact - baselineImpact
		sensitivities[shock.IndicatorID] = absFloat(impactChange / perturbation)

		if baselineImpact > 0 {
			elasticities[shock.IndicatorID] = (impactChange / baselineImpact) / perturbation
		} else {
			elasticities[shock.IndicatorID] = 0
		}
	}

	names := make([]string, 0, len(sensitivities))
	for name := range sensitivities {
		names = append(names, name)
	}
	sort.Slice(names, func(a, b int) bool { return sensitivities[names[a]] > sensitivities[names[b]] })
	topN := names
	if len(topN) > 5 {
		topN = topN[:5]
	}

	criticalThresholds := make(map[string]float64, len(sensitivities))
	for indicator, sensitivity := range sensitivities {
		if sensitivity > 0 {
			criticalThresholds[indicator] = 0.3 / sensitivity * perturbation
		}
	}

	return SensitivityResult{
		ScenarioID:             def.ID,
		CompanyID:              def.CompanyID,
		ParameterSensitivities: sensitivities,
		TopSensitiveParams:     topN,
		Elasticities:           elasticities,
		CriticalThresholds:     criticalThresholds,
	}, nil
}

func overallImpactOf(final, baseline map[string]float64) float64 {
	if len(baseline) == 0 {
		return 0
	}
	var sum float64
	for k, base := range baseline {
		sum += absFloat(final[k] - base)
	}
	return sum / float64(len(baseline))
}
