package claims

import (
	"sort"
	"strings"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

// Match pairs a candidate claim with how similar it is to the claim being
// matched against.
type Match struct {
	Claim      models.ExtractedClaim
	Similarity float64
}

// FindMatching searches candidates for claims that plausibly refer to the
// same underlying fact as claim: an exact fingerprint match scores 1.0;
// same-kind numeric claims compare by relative value difference; anything
// else falls back to Jaccard similarity of normalized text. Candidates
// from the same source article are never matched against each other.
func FindMatching(claim models.ExtractedClaim, candidates []models.ExtractedClaim, threshold float64) []Match {
	var matches []Match

	for _, other := range candidates {
		if other.SourceArticleID == claim.SourceArticleID {
			continue
		}

		if claim.Fingerprint == other.Fingerprint {
			matches = append(matches, Match{Claim: other, Similarity: 1.0})
			continue
		}

		if claim.Kind != other.Kind {
			continue
		}

		switch claim.Kind {
		case models.ClaimNumeric:
			if claim.NumericValue == nil || other.NumericValue == nil {
				continue
			}
			maxVal := absFloat(*claim.NumericValue)
			if o := absFloat(*other.NumericValue); o > maxVal {
				maxVal = o
			}
			if maxVal == 0 {
				continue
			}
			diff := absFloat(*claim.NumericValue-*other.NumericValue) / maxVal
			similarity := 1 - minFloat(diff, 1)
			if similarity >= threshold {
				matches = append(matches, Match{Claim: other, Similarity: similarity})
			}
		default:
			similarity := jaccardSimilarity(claim.NormalizedText, other.NormalizedText)
			if similarity >= threshold {
				matches = append(matches, Match{Claim: other, Similarity: similarity})
			}
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Similarity > matches[j].Similarity })
	return matches
}

// jaccardSimilarity is the bag-of-words overlap ratio between two already
// normalized strings (spec.md Non-goals: no NLP beyond regex and
// bag-of-words similarity).
func jaccardSimilarity(a, b string) float64 {
	setA := toWordSet(a)
	setB := toWordSet(b)

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func toWordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
