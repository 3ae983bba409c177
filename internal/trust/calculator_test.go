package trust

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
	"github.com/platformbuilds/newsvalidator-core/internal/reputation"
	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

func TestCalculate_NoCorroborationFallsBackToBaseScore(t *testing.T) {
	tracker := reputation.NewTracker(logger.New("error"))
	calc := NewCalculator(tracker)

	score := calc.Calculate("daily_mirror", nil, time.Now())
	assert.Equal(t, models.TrustUnverified, score.Level)
	for _, f := range score.Factors {
		if f.Name == models.FactorCorroboration {
			assert.Equal(t, noCorroborationBaseScore, f.Raw)
		}
	}
}

func TestCalculate_StrongCorroborationFromOfficialYieldsVerified(t *testing.T) {
	tracker := reputation.NewTracker(logger.New("error"))
	calc := NewCalculator(tracker)

	cr := &models.CorroborationResult{
		Level:             models.LevelStrong,
		Score:             95,
		UniqueSourceCount: 4,
		TiersRepresented:  []models.SourceTier{models.TierOfficial, models.Tier1, models.Tier2},
		Corroborators: []models.SimilarArticle{
			{ArticleID: "x", PublishedAt: time.Now()},
		},
		EarliestReportAt: time.Now(),
	}

	score := calc.Calculate("government", cr, time.Now())
	assert.True(t, score.HasOfficialConfirmation)
	assert.GreaterOrEqual(t, score.Total, 85.0)
	assert.Equal(t, models.TrustVerified, score.Level)
}

func TestCalculate_ConflictsReduceScoreAndFlagHasConflicts(t *testing.T) {
	tracker := reputation.NewTracker(logger.New("error"))
	calc := NewCalculator(tracker)

	clean := calc.Calculate("daily_mirror", &models.CorroborationResult{Score: 80, UniqueSourceCount: 2}, time.Now())

	conflicted := calc.Calculate("daily_mirror", &models.CorroborationResult{
		Score:             80,
		UniqueSourceCount: 2,
		Conflicts: []models.Conflict{
			{Tier: models.TierOfficial},
		},
	}, time.Now())

	assert.Less(t, conflicted.Total, clean.Total)
	assert.Equal(t, 25.0, conflicted.ConflictSeverity)
}

func TestCalculate_RecencyDecaysWithAge(t *testing.T) {
	tracker := reputation.NewTracker(logger.New("error"))
	calc := NewCalculator(tracker)

	fresh := calc.Calculate("daily_mirror", nil, time.Now())
	old := calc.Calculate("daily_mirror", nil, time.Now().Add(-96*time.Hour))

	var freshRecency, oldRecency float64
	for _, f := range fresh.Factors {
		if f.Name == models.FactorRecency {
			freshRecency = f.Raw
		}
	}
	for _, f := range old.Factors {
		if f.Name == models.FactorRecency {
			oldRecency = f.Raw
		}
	}
	assert.Greater(t, freshRecency, oldRecency)
}

func TestCalculate_ConfidenceIncreasesWithMoreSources(t *testing.T) {
	tracker := reputation.NewTracker(logger.New("error"))
	calc := NewCalculator(tracker)

	low := calc.Calculate("daily_mirror", &models.CorroborationResult{UniqueSourceCount: 0}, time.Now())
	high := calc.Calculate("daily_mirror", &models.CorroborationResult{UniqueSourceCount: 3}, time.Now())

	assert.Less(t, low.Confidence, high.Confidence)
}
