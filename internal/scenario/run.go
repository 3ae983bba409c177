package scenario

import (
	"errors"
	"sort"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

// ErrNoHorizon is returned when a scenario definition has no positive
// horizon to simulate over.
var ErrNoHorizon = errors.New("scenario: horizon_days must be positive")

// Summary is the day-by-day outcome of one deterministic simulation path:
// the parts of ScenarioSimulator.run_simulation's result that don't fit
// models.SimulationResult's percentile-band shape.
type Summary struct {
	OverallImpact    float64
	AvgChange        float64
	Direction        string // positive, negative, neutral
	Severity         string // low, medium, high, critical
	PeakImpact       float64
	PeakDay          int
	RecoveryTimeDays int
	Propagated       map[string][]string // source indicator -> targets it moved
}

// pathResult is one simulated day-by-day trace for every tracked indicator.
type pathResult struct {
	daily      map[string][]float64 // indicator -> value per day
	final      map[string]float64
	peakImpact float64
	peakDay    int
	propagated map[string]map[string]bool
}

// runPath applies direct shock effects and cross-indicator propagation
// day-by-day over horizonDays, starting from baseline (spec.md §4.10 step 1).
func runPath(shocks []models.Shock, baseline map[string]float64, rules []models.PropagationRule, horizonDays int) pathResult {
	shockByIndicator := make(map[string]models.Shock, len(shocks))
	for _, s := range shocks {
		shockByIndicator[s.IndicatorID] = s
	}

	tracked := make(map[string]bool)
	for k := range baseline {
		tracked[k] = true
	}
	for _, s := range shocks {
		tracked[s.IndicatorID] = true
	}
	for _, r := range rules {
		tracked[r.FromIndicatorID] = true
		tracked[r.ToIndicatorID] = true
	}

	current := make(map[string]float64, len(tracked))
	for k := range tracked {
		current[k] = baseline[k]
	}

	daily := make(map[string][]float64, len(tracked))
	for k := range tracked {
		daily[k] = make([]float64, 0, horizonDays)
	}
	propagated := make(map[string]map[string]bool)

	peakImpact := 0.0
	peakDay := 0

	for day := 0; day < horizonDays; day++ {
		dayValues := make(map[string]float64, len(current))
		for k, v := range current {
			dayValues[k] = v
		}

		for indicator, shock := range shockByIndicator {
			if _, ok := dayValues[indicator]; !ok {
				continue
			}
			if day >= shock.DurationDays {
				continue
			}
			onset, recovery := shockRamp(shock.Kind, shock.DurationDays)
			factor := effectFactor(day, shock.DurationDays, onset, recovery)
			dayValues[indicator] = clamp01(dayValues[indicator] + shock.Magnitude*factor)
		}

		for _, rule := range rules {
			source, ok := shockByIndicator[rule.FromIndicatorID]
			if !ok {
				continue
			}
			if day < rule.LagDays {
				continue
			}
			sourceChange := source.Magnitude
			if absFloat(sourceChange) < minTrigger {
				continue
			}

			remainingDuration := horizonDays - rule.LagDays
			factor := effectFactor(day-rule.LagDays, remainingDuration, 0, 0)
			decay := rule.DecayPerDay * float64(day-rule.LagDays) / float64(horizonDays)
			propagatedChange := sourceChange * rule.Coefficient * factor * (1 - decay)
			propagatedChange = clampAbs(propagatedChange, maxImpact)

			if _, ok := dayValues[rule.ToIndicatorID]; !ok {
				continue
			}
			dayValues[rule.ToIndicatorID] = clamp01(dayValues[rule.ToIndicatorID] + propagatedChange)

			if propagated[rule.FromIndicatorID] == nil {
				propagated[rule.FromIndicatorID] = make(map[string]bool)
			}
			propagated[rule.FromIndicatorID][rule.ToIndicatorID] = true
		}

		for k, v := range dayValues {
			daily[k] = append(daily[k], v)
		}

		var impactSum float64
		for k := range baseline {
			impactSum += absFloat(dayValues[k] - baseline[k])
		}
		dayImpact := 0.0
		if len(baseline) > 0 {
			dayImpact = impactSum / float64(len(baseline))
		}
		if dayImpact > peakImpact {
			peakImpact = dayImpact
			peakDay = day
		}

		current = dayValues
	}

	return pathResult{daily: daily, final: current, peakImpact: peakImpact, peakDay: peakDay, propagated: propagated}
}

// RunSimulation runs one deterministic simulation path for a scenario and
// reports both the compact percentile-band result (P10=P50=P90, since no
// Monte Carlo perturbation is applied here) and the richer day-by-day
// summary (spec.md §4.10 step 1-2).
func RunSimulation(def models.ScenarioDefinition, baseline map[string]float64, rules []models.PropagationRule) (models.SimulationResult, Summary, error) {
	if def.HorizonDays <= 0 {
		return models.SimulationResult{}, Summary{}, ErrNoHorizon
	}
	if rules == nil {
		rules = DefaultPropagationRules()
	}

	path := runPath(def.Shocks, baseline, rules, def.HorizonDays)

	var changeSum, absChangeSum float64
	for k, base := range baseline {
		delta := path.final[k] - base
		changeSum += delta
		absChangeSum += absFloat(delta)
	}
	n := float64(len(baseline))
	overallImpact, avgChange := 0.0, 0.0
	if n > 0 {
		overallImpact = absChangeSum / n
		avgChange = changeSum / n
	}

	direction := "neutral"
	switch {
	case avgChange > 0.05:
		direction = "positive"
	case avgChange < -0.05:
		direction = "negative"
	}

	severity := classifySeverity(overallImpact)
	recoveryDays := recoveryTime(baseline, path.final)

	outcomes := make([]models.ScenarioOutcome, 0, len(path.daily))
	names := make([]string, 0, len(path.daily))
	for name := range path.daily {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		points := toPoints(path.daily[name])
		outcomes = append(outcomes, models.ScenarioOutcome{IndicatorID: name, P10: points, P50: points, P90: points})
	}

	impacted := impactedList(path.propagated)

	result := models.SimulationResult{
		ScenarioID:       def.ID,
		CompanyID:        def.CompanyID,
		Outcomes:         outcomes,
		ImpactedInsights: impacted,
		OverallRiskDelta: avgChange,
		Confidence:       1.0,
	}

	summary := Summary{
		OverallImpact:    overallImpact,
		AvgChange:        avgChange,
		Direction:        direction,
		Severity:         severity,
		PeakImpact:       path.peakImpact,
		PeakDay:          path.peakDay,
		RecoveryTimeDays: recoveryDays,
		Propagated:       propagatedNames(path.propagated),
	}

	return result, summary, nil
}

func classifySeverity(overallImpact float64) string {
	switch {
	case overallImpact >= 0.3:
		return "critical"
	case overallImpact >= 0.2:
		return "high"
	case overallImpact >= 0.1:
		return "medium"
	default:
		return "low"
	}
}

// recoveryTime estimates how many days it takes to undo the net change at
// an assumed recovery rate of 10% per week, capped at one year
// (spec.md §4.10 step 2).
func recoveryTime(baseline, final map[string]float64) int {
	var totalChange float64
	for k, base := range baseline {
		totalChange += absFloat(final[k] - base)
	}
	const recoveryRatePerDay = 0.1 / 7
	if totalChange <= 0 {
		return 0
	}
	days := int(totalChange / recoveryRatePerDay)
	if days > 365 {
		return 365
	}
	return days
}

func toPoints(values []float64) []models.ScenarioPathPoint {
	points := make([]models.ScenarioPathPoint, len(values))
	for i, v := range values {
		points[i] = models.ScenarioPathPoint{DayOffset: i, Value: v}
	}
	return points
}

func impactedList(propagated map[string]map[string]bool) []string {
	var out []string
	sources := make([]string, 0, len(propagated))
	for s := range propagated {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	for _, s := range sources {
		targets := make([]string, 0, len(propagated[s]))
		for t := range propagated[s] {
			targets = append(targets, t)
		}
		sort.Strings(targets)
		for _, t := range targets {
			out = append(out, s+"->"+t)
		}
	}
	return out
}

func propagatedNames(propagated map[string]map[string]bool) map[string][]string {
	out := make(map[string][]string, len(propagated))
	for source, targets := range propagated {
		list := make([]string, 0, len(targets))
		for t := range targets {
			list = append(list, t)
		}
		sort.Strings(list)
		out[source] = list
	}
	return out
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
