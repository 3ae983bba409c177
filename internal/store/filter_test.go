package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

func TestParseActiveFilter_SingleTerm(t *testing.T) {
	filter, err := ParseActiveFilter(`severity:high`)
	require.NoError(t, err)
	require.Contains(t, filter.Terms, "severity")
	assert.Equal(t, "high", filter.Terms["severity"])
}

func TestParseActiveFilter_MultipleTerms(t *testing.T) {
	filter, err := ParseActiveFilter(`kind:risk AND severity:critical`)
	require.NoError(t, err)
	assert.Equal(t, "risk", filter.Terms["kind"])
	assert.Equal(t, "critical", filter.Terms["severity"])
}

func TestParseActiveFilter_EmptyExpressionYieldsNoTerms(t *testing.T) {
	filter, err := ParseActiveFilter("")
	require.NoError(t, err)
	assert.Empty(t, filter.Terms)
}

func TestParseActiveFilter_RejectsUnsupportedField(t *testing.T) {
	_, err := ParseActiveFilter(`password:hunter2`)
	assert.Error(t, err)
}

func TestParseActiveFilter_RejectsMalformedSyntax(t *testing.T) {
	_, err := ParseActiveFilter(`severity:(((`)
	assert.Error(t, err)
}

func TestActiveFilter_MatchesOnlyWhenAllTermsAgree(t *testing.T) {
	filter := ActiveFilter{Terms: map[string]string{"severity": "high", "kind": "risk"}}

	match := models.Insight{Kind: models.InsightRisk, Scores: models.InsightScores{Severity: models.SeverityHigh}}
	mismatch := models.Insight{Kind: models.InsightOpportunity, Scores: models.InsightScores{Severity: models.SeverityHigh}}

	assert.True(t, filter.matches(match))
	assert.False(t, filter.matches(mismatch))
}

func TestActiveFilter_EmptyFilterMatchesEverything(t *testing.T) {
	var filter ActiveFilter
	assert.True(t, filter.matches(models.Insight{}))
}
