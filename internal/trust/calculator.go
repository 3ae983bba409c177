// Package trust combines source reputation, corroboration, diversity and
// recency into the single weighted TrustScore the rest of the pipeline
// consumes (spec.md §4.4).
package trust

import (
	"time"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
	"github.com/platformbuilds/newsvalidator-core/internal/reputation"
)

// Factor weights (spec.md §4.4, must sum to 1.0).
const (
	weightSourceReputation = 0.30
	weightCorroboration    = 0.35
	weightSourceDiversity  = 0.20
	weightRecency          = 0.15
)

// Source-diversity scoring constants.
const (
	maxDiversitySources = 5.0
	tierDiversityBonus  = 10.0
	maxTierBonus        = 30.0
	officialTierBonus   = 10.0
)

// Recency scoring constants.
const (
	recencyWindow     = 24 * time.Hour
	recencyDecayLimit = 72 * time.Hour
	recentCorroboratorBonus = 10.0
)

// Conflict penalty constants.
const (
	conflictPenaltyBase     = 15.0
	officialConflictPenalty = 25.0
	maxConflictPenalty      = 50.0
)

// noCorroborationBaseScore is the score assigned to the corroboration
// factor when no CorroborationResult is available at all (distinct from
// a result that found zero corroborators, which scores via the engine's
// own base score).
const noCorroborationBaseScore = 30.0

// Calculator produces TrustScores from a source's reputation and a
// CorroborationResult. It holds no per-article state, so one instance is
// shared across the whole pipeline.
type Calculator struct {
	tracker *reputation.Tracker
}

// NewCalculator constructs a trust calculator backed by tracker.
func NewCalculator(tracker *reputation.Tracker) *Calculator {
	return &Calculator{tracker: tracker}
}

// Calculate computes the trust score for one article (spec.md §4.4).
// corroboration may be nil, meaning no corroboration check was possible.
func (c *Calculator) Calculate(sourceName string, corroboration *models.CorroborationResult, publishedAt time.Time) models.TrustScore {
	reputationFactor := c.reputationFactor(sourceName)
	corroborationFactor := corroborationFactor(corroboration)
	diversityFactor := diversityFactor(corroboration)
	recencyFactor := recencyFactor(corroboration, publishedAt)

	total := reputationFactor.Weighted + corroborationFactor.Weighted + diversityFactor.Weighted + recencyFactor.Weighted

	hasConflicts := false
	conflictSeverity := 0.0
	if corroboration != nil {
		hasConflicts = len(corroboration.Conflicts) > 0
		if hasConflicts {
			conflictSeverity = conflictSeverityFor(corroboration)
			total -= conflictSeverity
		}
	}
	total = clamp(total, 0, 100)

	hasOfficial := false
	if corroboration != nil {
		for _, t := range corroboration.TiersRepresented {
			if t == models.TierOfficial {
				hasOfficial = true
				break
			}
		}
	}

	return models.TrustScore{
		Total:                   total,
		Level:                   models.ClassifyTrustLevel(total),
		Factors:                 []models.TrustFactor{reputationFactor, corroborationFactor, diversityFactor, recencyFactor},
		ConflictSeverity:        conflictSeverity,
		Confidence:              confidenceFor(corroboration),
		HasOfficialConfirmation: hasOfficial,
	}
}

func (c *Calculator) reputationFactor(sourceName string) models.TrustFactor {
	score := 50.0 // neutral default if no tracker wired
	if c.tracker != nil {
		score = c.tracker.Score(sourceName)
	}
	return weighted(models.FactorSourceReputation, score, weightSourceReputation)
}

func corroborationFactor(cr *models.CorroborationResult) models.TrustFactor {
	if cr == nil {
		return weighted(models.FactorCorroboration, noCorroborationBaseScore, weightCorroboration)
	}
	return weighted(models.FactorCorroboration, cr.Score, weightCorroboration)
}

func diversityFactor(cr *models.CorroborationResult) models.TrustFactor {
	if cr == nil {
		return weighted(models.FactorSourceDiversity, 0, weightSourceDiversity)
	}

	sourceScore := (float64(cr.UniqueSourceCount) / maxDiversitySources) * 100
	if sourceScore > 100 {
		sourceScore = 100
	}

	tierBonus := float64(len(cr.TiersRepresented)) * tierDiversityBonus
	if tierBonus > maxTierBonus {
		tierBonus = maxTierBonus
	}
	for _, t := range cr.TiersRepresented {
		if t == models.TierOfficial {
			tierBonus += officialTierBonus
			break
		}
	}

	score := clamp(sourceScore+tierBonus, 0, 100)
	return weighted(models.FactorSourceDiversity, score, weightSourceDiversity)
}

func recencyFactor(cr *models.CorroborationResult, publishedAt time.Time) models.TrustFactor {
	age := time.Since(publishedAt)

	var score float64
	switch {
	case age <= recencyWindow:
		score = 100
	case age <= recencyDecayLimit:
		decay := float64(age-recencyWindow) / float64(recencyDecayLimit-recencyWindow)
		score = 100 - decay*50
	default:
		extraDays := float64(age-recencyDecayLimit) / float64(24*time.Hour)
		score = 50 - extraDays*5
		if score < 20 {
			score = 20
		}
	}

	if cr != nil && len(cr.Corroborators) > 0 && !cr.EarliestReportAt.IsZero() {
		if time.Since(cr.EarliestReportAt) <= recencyWindow {
			score += recentCorroboratorBonus
		}
	}

	score = clamp(score, 0, 100)
	return weighted(models.FactorRecency, score, weightRecency)
}

func conflictSeverityFor(cr *models.CorroborationResult) float64 {
	severity := 0.0
	for _, conflict := range cr.Conflicts {
		if conflict.Tier == models.TierOfficial {
			severity += officialConflictPenalty
		} else {
			severity += conflictPenaltyBase
		}
	}
	if severity > maxConflictPenalty {
		severity = maxConflictPenalty
	}
	return severity
}

func confidenceFor(cr *models.CorroborationResult) float64 {
	if cr == nil {
		return 0.5
	}
	confidence := 0.6 + float64(cr.UniqueSourceCount)*0.1
	if confidence > 1.0 {
		confidence = 1.0
	}
	if len(cr.Conflicts) > 0 {
		conflictFactor := 1.0 - float64(len(cr.Conflicts))*0.1
		if conflictFactor < 0.5 {
			conflictFactor = 0.5
		}
		confidence *= conflictFactor
	}
	return round2(confidence)
}

func weighted(name models.TrustFactorName, raw, weight float64) models.TrustFactor {
	return models.TrustFactor{Name: name, Raw: raw, Weight: weight, Weighted: raw * weight}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
