// Package scenario runs what-if simulations over a company's operational
// indicators: direct shocks, cross-indicator propagation, Monte Carlo
// uncertainty bands, and parameter sensitivity analysis (spec.md §4.10).
package scenario

import "github.com/platformbuilds/newsvalidator-core/internal/models"

// minTrigger and maxImpact bound every propagation rule the same way the
// shipped defaults do (spec.md §4.10): a source change smaller than
// minTrigger never propagates, and a propagated change is clamped to
// ±maxImpact regardless of how large the rule's coefficient makes it.
const (
	minTrigger = 0.1
	maxImpact  = 1.0
)

// DefaultPropagationRules returns the five cross-indicator propagation
// rules shipped with the engine (spec.md §4.10), grounded on
// ScenarioSimulator._initialize_propagation_rules.
func DefaultPropagationRules() []models.PropagationRule {
	return []models.PropagationRule{
		{FromIndicatorID: "OPS_SUPPLY_CHAIN", ToIndicatorID: "OPS_PRODUCTION", Coefficient: 0.7, LagDays: 3, DecayPerDay: 0.1},
		{FromIndicatorID: "OPS_PRODUCTION", ToIndicatorID: "OPS_INVENTORY", Coefficient: 0.6, LagDays: 1, DecayPerDay: 0.1},
		{FromIndicatorID: "OPS_DEMAND", ToIndicatorID: "OPS_REVENUE", Coefficient: 0.8, LagDays: 0, DecayPerDay: 0.1},
		{FromIndicatorID: "OPS_COST", ToIndicatorID: "OPS_PROFIT_MARGIN", Coefficient: -0.5, LagDays: 0, DecayPerDay: 0.1},
		{FromIndicatorID: "OPS_REVENUE", ToIndicatorID: "OPS_CASH_FLOW", Coefficient: 0.6, LagDays: 7, DecayPerDay: 0.1},
	}
}

// effectFactor ramps a direct effect up over onsetDays, holds it at full
// strength through the plateau, and ramps it back down over the final
// recoveryDays of duration (spec.md §4.10 step 1).
func effectFactor(day, duration, onsetDays, recoveryDays int) float64 {
	switch {
	case day < onsetDays:
		if onsetDays <= 0 {
			return 0
		}
		return float64(day) / float64(onsetDays)
	case day > duration-recoveryDays:
		if recoveryDays <= 0 {
			return 0
		}
		remaining := duration - day
		if remaining < 0 {
			remaining = 0
		}
		return float64(remaining) / float64(recoveryDays)
	default:
		return 1.0
	}
}

// shockRamp derives an onset/recovery window from a shock's kind and
// duration: a step shock takes full effect immediately, a ramp eases in
// and out around a plateau, and a transient shock is a single triangular
// pulse with no plateau at all.
func shockRamp(kind models.ScenarioShockKind, durationDays int) (onset, recovery int) {
	switch kind {
	case models.ShockRamp:
		onset = durationDays / 5
		if onset < 1 {
			onset = 1
		}
		recovery = onset
	case models.ShockTransient:
		onset = durationDays / 2
		recovery = durationDays - onset
	default: // ShockStep
		onset, recovery = 0, 0
	}
	return onset, recovery
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampAbs(v, bound float64) float64 {
	if v > bound {
		return bound
	}
	if v < -bound {
		return -bound
	}
	return v
}
