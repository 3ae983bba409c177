package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

func articleWith(body string) models.Article {
	return models.Article{
		ID:     "art-1",
		Source: "daily_mirror",
		Title:  "",
		Body:   body,
	}
}

func TestExtract_NumericClaimWithIncreaseContext(t *testing.T) {
	e := NewExtractor()
	claims := e.Extract(articleWith("Inflation increased by 12.5 percent last month."))

	require.NotEmpty(t, claims)
	found := false
	for _, c := range claims {
		if c.Kind == models.ClaimNumeric && c.Unit == "percentage" {
			require.NotNil(t, c.NumericValue)
			assert.InDelta(t, 12.5, *c.NumericValue, 0.001)
			assert.Equal(t, models.ContextIncreased, c.Context)
			found = true
		}
	}
	assert.True(t, found, "expected a percentage claim with increased context")
}

func TestExtract_NumericClaimAppliesMillionMultiplier(t *testing.T) {
	e := NewExtractor()
	claims := e.Extract(articleWith("The government allocated Rs. 500 million for flood relief."))

	found := false
	for _, c := range claims {
		if c.Kind == models.ClaimNumeric && c.Unit == "money" {
			require.NotNil(t, c.NumericValue)
			assert.Equal(t, 500_000_000.0, *c.NumericValue)
			found = true
		}
	}
	assert.True(t, found)
}

func TestExtract_AttributionClaim(t *testing.T) {
	e := NewExtractor()
	claims := e.Extract(articleWith("John Smith said the economy would recover by next year."))

	found := false
	for _, c := range claims {
		if c.Kind == models.ClaimAttribution {
			assert.Equal(t, "John Smith", c.Subject)
			assert.Equal(t, "said", c.Predicate)
			found = true
		}
	}
	assert.True(t, found)
}

func TestExtract_EventClaim(t *testing.T) {
	e := NewExtractor()
	claims := e.Extract(articleWith("Floods hit Colombo overnight, displacing hundreds."))

	found := false
	for _, c := range claims {
		if c.Kind == models.ClaimEvent {
			assert.Equal(t, "Colombo", c.Object)
			found = true
		}
	}
	assert.True(t, found)
}

func TestFingerprint_OrderIndependent(t *testing.T) {
	a := fingerprint(normalizeClaimText("inflation rose sharply last month"))
	b := fingerprint(normalizeClaimText("last month inflation rose sharply"))
	assert.Equal(t, a, b, "stopword-filtered, sorted tokens should fingerprint identically regardless of order")
}

func TestFingerprint_DifferentContentDiffers(t *testing.T) {
	a := fingerprint(normalizeClaimText("inflation rose sharply"))
	b := fingerprint(normalizeClaimText("unemployment fell sharply"))
	assert.NotEqual(t, a, b)
}

func TestFindMatching_ExactFingerprintScoresOne(t *testing.T) {
	claimA := models.ExtractedClaim{SourceArticleID: "a1", Fingerprint: "same", Kind: models.ClaimFactual}
	claimB := models.ExtractedClaim{SourceArticleID: "a2", Fingerprint: "same", Kind: models.ClaimFactual}

	matches := FindMatching(claimA, []models.ExtractedClaim{claimB}, 0.8)
	require.Len(t, matches, 1)
	assert.Equal(t, 1.0, matches[0].Similarity)
}

func TestFindMatching_SkipsSameArticle(t *testing.T) {
	claimA := models.ExtractedClaim{SourceArticleID: "a1", Fingerprint: "x", Kind: models.ClaimFactual}
	sameArticle := models.ExtractedClaim{SourceArticleID: "a1", Fingerprint: "x", Kind: models.ClaimFactual}

	matches := FindMatching(claimA, []models.ExtractedClaim{sameArticle}, 0.8)
	assert.Empty(t, matches)
}

func TestFindMatching_NumericCompareByRelativeDifference(t *testing.T) {
	v1, v2 := 100.0, 95.0
	claimA := models.ExtractedClaim{SourceArticleID: "a1", Fingerprint: "fp1", Kind: models.ClaimNumeric, NumericValue: &v1}
	claimB := models.ExtractedClaim{SourceArticleID: "a2", Fingerprint: "fp2", Kind: models.ClaimNumeric, NumericValue: &v2}

	matches := FindMatching(claimA, []models.ExtractedClaim{claimB}, 0.9)
	require.Len(t, matches, 1)
	assert.InDelta(t, 0.95, matches[0].Similarity, 0.01)
}

func TestJaccardSimilarity_IdenticalSets(t *testing.T) {
	assert.Equal(t, 1.0, jaccardSimilarity("flood hit colombo", "flood hit colombo"))
}

func TestJaccardSimilarity_NoOverlap(t *testing.T) {
	assert.Equal(t, 0.0, jaccardSimilarity("flood hit colombo", "drought affected jaffna"))
}
