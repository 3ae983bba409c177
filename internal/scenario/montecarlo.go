package scenario

import (
	"math"
	"math/rand"
	"sort"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

// defaultVarianceFactor scales the Gaussian noise applied to each shock's
// magnitude during a Monte Carlo run: sigma = varianceFactor * |magnitude|
// (spec.md §4.10).
const defaultVarianceFactor = 0.1

// MonteCarloStats summarizes the distribution of outcomes across a Monte
// Carlo run, grounded on ScenarioSimulator.run_monte_carlo.
type MonteCarloStats struct {
	Simulations        int
	MeanImpact         float64
	StdDevImpact       float64
	MinImpact          float64
	MaxImpact          float64
	Percentile5        float64
	Percentile95       float64
	SeverityCounts     map[string]int
	PositiveOutcomes   int
	NegativeOutcomes   int
}

// RunMonteCarlo perturbs each shock's magnitude by Gaussian noise and reruns
// the simulation `iterations` times, returning percentile bands (P10/P50/P90)
// per indicator per day alongside aggregate impact statistics
// (spec.md §4.10 "Monte Carlo").
func RunMonteCarlo(def models.ScenarioDefinition, baseline map[string]float64, rules []models.PropagationRule, iterations int, varianceFactor float64, rng *rand.Rand) (models.SimulationResult, MonteCarloStats, error) {
	if def.HorizonDays <= 0 {
		return models.SimulationResult{}, MonteCarloStats{}, ErrNoHorizon
	}
	if iterations <= 0 {
		iterations = 100
	}
	if varianceFactor <= 0 {
		varianceFactor = defaultVarianceFactor
	}
	if rules == nil {
		rules = DefaultPropagationRules()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	perIndicatorDays := make(map[string][][]float64) // indicator -> iteration -> daily values
	overallImpacts := make([]float64, iterations)
	avgChanges := make([]float64, iterations)
	severityCounts := map[string]int{"low": 0, "medium": 0, "high": 0, "critical": 0}
	propagated := make(map[string]map[string]bool)

	for i := 0; i < iterations; i++ {
		perturbed := make([]models.Shock, len(def.Shocks))
		for j, s := range def.Shocks {
			noise := rng.NormFloat64() * varianceFactor * absFloat(s.Magnitude)
			perturbed[j] = s
			perturbed[j].Magnitude = s.Magnitude + noise
		}

		path := runPath(perturbed, baseline, rules, def.HorizonDays)

		var changeSum, absChangeSum float64
		for k, base := range baseline {
			delta := path.final[k] - base
			changeSum += delta
			absChangeSum += absFloat(delta)
		}
		n := float64(len(baseline))
		impact, avgChange := 0.0, 0.0
		if n > 0 {
			impact = absChangeSum / n
			avgChange = changeSum / n
		}
		overallImpacts[i] = impact
		avgChanges[i] = avgChange
		severityCounts[classifySeverity(impact)]++

		for indicator, series := range path.daily {
			perIndicatorDays[indicator] = append(perIndicatorDays[indicator], series)
		}
		for source, targets := range path.propagated {
			if propagated[source] == nil {
				propagated[source] = make(map[string]bool)
			}
			for t := range targets {
				propagated[source][t] = true
			}
		}
	}

	meanImpact := mean(overallImpacts)
	stdDev := stdDevOf(overallImpacts, meanImpact)
	sortedImpacts := append([]float64(nil), overallImpacts...)
	sort.Float64s(sortedImpacts)

	positive, negative := 0, 0
	for _, c := range avgChanges {
		switch {
		case c > 0.05:
			positive++
		case c < -0.05:
			negative++
		}
	}

	stats := MonteCarloStats{
		Simulations:      iterations,
		MeanImpact:       meanImpact,
		StdDevImpact:     stdDev,
		MinImpact:        sortedImpacts[0],
		MaxImpact:        sortedImpacts[len(sortedImpacts)-1],
		Percentile5:      percentile(sortedImpacts, 0.05),
		Percentile95:     percentile(sortedImpacts, 0.95),
		SeverityCounts:   severityCounts,
		PositiveOutcomes: positive,
		NegativeOutcomes: negative,
	}

	outcomes := make([]models.ScenarioOutcome, 0, len(perIndicatorDays))
	names := make([]string, 0, len(perIndicatorDays))
	for name := range perIndicatorDays {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		outcomes = append(outcomes, percentileOutcome(name, perIndicatorDays[name], def.HorizonDays))
	}

	confidence := 1.0
	if meanImpact > 0 {
		confidence = math.Max(0, math.Min(1, 1-stdDev/meanImpact))
	}

	result := models.SimulationResult{
		ScenarioID:       def.ID,
		CompanyID:        def.CompanyID,
		Outcomes:         outcomes,
		ImpactedInsights: impactedList(propagated),
		OverallRiskDelta: mean(avgChanges),
		Confidence:       confidence,
	}

	return result, stats, nil
}

// percentile returns the value at the given fraction (0-1) of a
// pre-sorted slice, matching the index-truncation convention used by the
// original nearest-rank implementation.
func percentile(sorted []float64, fraction float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)) * fraction)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// percentileOutcome builds P10/P50/P90 day-by-day bands for one indicator
// from its per-iteration daily traces.
func percentileOutcome(indicator string, iterationSeries [][]float64, horizonDays int) models.ScenarioOutcome {
	p10 := make([]models.ScenarioPathPoint, 0, horizonDays)
	p50 := make([]models.ScenarioPathPoint, 0, horizonDays)
	p90 := make([]models.ScenarioPathPoint, 0, horizonDays)

	for day := 0; day < horizonDays; day++ {
		values := make([]float64, 0, len(iterationSeries))
		for _, series := range iterationSeries {
			if day < len(series) {
				values = append(values, series[day])
			}
		}
		sort.Float64s(values)
		p10 = append(p10, models.ScenarioPathPoint{DayOffset: day, Value: percentile(values, 0.10)})
		p50 = append(p50, models.ScenarioPathPoint{DayOffset: day, Value: percentile(values, 0.50)})
		p90 = append(p90, models.ScenarioPathPoint{DayOffset: day, Value: percentile(values, 0.90)})
	}

	return models.ScenarioOutcome{IndicatorID: indicator, P10: p10, P50: p50, P90: p90}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdDevOf(values []float64, meanValue float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var variance float64
	for _, v := range values {
		variance += (v - meanValue) * (v - meanValue)
	}
	return math.Sqrt(variance / float64(len(values)))
}
