package claims

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

// Extractor turns raw article text into a set of typed, fingerprinted
// claims the corroboration engine can match across sources (spec.md
// §4.2). It holds no mutable state; all patterns are package-level
// compiled regexps, so a single Extractor is safe for concurrent use.
type Extractor struct{}

// NewExtractor constructs a claim extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs every claim-type pass over an article's title+body and
// returns the union of claims found.
func (e *Extractor) Extract(article models.Article) []models.ExtractedClaim {
	fullText := article.Body
	if article.Title != "" {
		fullText = article.Title + ". " + article.Body
	}

	var claims []models.ExtractedClaim
	claims = append(claims, e.extractNumeric(fullText, article.ID, article.Source)...)
	claims = append(claims, e.extractAttribution(fullText, article.ID, article.Source)...)
	claims = append(claims, e.extractEvent(fullText, article.ID, article.Source)...)
	return claims
}

func splitSentences(text string) []string {
	parts := sentenceSplitPattern.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		// "Rs." abbreviates rupees and does not end a sentence.
		if n := len(out); n > 0 && strings.HasSuffix(strings.ToLower(" "+out[n-1]), " rs") {
			out[n-1] += ". " + p
			continue
		}
		out = append(out, p)
	}
	return out
}

func (e *Extractor) extractNumeric(text, articleID, sourceName string) []models.ExtractedClaim {
	var claims []models.ExtractedClaim

	for _, sentence := range splitSentences(text) {
		for _, np := range numericPatterns {
			for _, m := range np.re.FindAllStringSubmatch(sentence, -1) {
				valueStr := strings.ReplaceAll(m[1], ",", "")
				value, err := strconv.ParseFloat(valueStr, 64)
				if err != nil {
					continue
				}

				multiplier := 1.0
				if len(m) > 2 && m[2] != "" {
					switch strings.ToLower(m[2]) {
					case "million":
						multiplier = 1_000_000
					case "billion":
						multiplier = 1_000_000_000
					case "trillion":
						multiplier = 1_000_000_000_000
					}
				}
				value *= multiplier

				context := models.ContextStated
				switch {
				case increasePattern.MatchString(sentence):
					context = models.ContextIncreased
				case decreasePattern.MatchString(sentence):
					context = models.ContextDecreased
				}

				normalized := normalizeClaimText(sentence)
				fp := fingerprint(normalized)

				claims = append(claims, models.ExtractedClaim{
					ID:              fmt.Sprintf("%s_%s", articleID, fp[:8]),
					Kind:            models.ClaimNumeric,
					RawText:         strings.TrimSpace(sentence),
					NormalizedText:  normalized,
					Fingerprint:     fp,
					SourceArticleID: articleID,
					SourceName:      sourceName,
					NumericValue:    &value,
					Unit:            np.unit,
					Context:         context,
					Confidence:      0.85,
					Entities:        extractEntities(sentence),
				})
			}
		}
	}

	return claims
}

func namedGroup(re interface {
	SubexpNames() []string
}, match []string, name string) string {
	for i, n := range re.SubexpNames() {
		if n == name && i < len(match) {
			return match[i]
		}
	}
	return ""
}

func (e *Extractor) extractAttribution(text, articleID, sourceName string) []models.ExtractedClaim {
	var claims []models.ExtractedClaim

	for _, re := range attributionPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			speaker := namedGroup(re, m, "speaker")
			statement := namedGroup(re, m, "statement")
			if speaker == "" || statement == "" {
				continue
			}

			claimText := strings.TrimSpace(m[0])
			normalized := normalizeClaimText(statement)
			fp := fingerprint(normalized)

			object := statement
			if len(object) > 100 {
				object = object[:100]
			}

			claims = append(claims, models.ExtractedClaim{
				ID:              fmt.Sprintf("%s_%s", articleID, fp[:8]),
				Kind:            models.ClaimAttribution,
				RawText:         claimText,
				NormalizedText:  normalized,
				Fingerprint:     fp,
				SourceArticleID: articleID,
				SourceName:      sourceName,
				Subject:         speaker,
				Predicate:       "said",
				Object:          object,
				Confidence:      0.9,
				Entities: []models.Entity{{
					Text:       speaker,
					Kind:       models.EntityPerson,
					Normalized: strings.ToLower(speaker),
					Confidence: 0.9,
				}},
			})
		}
	}

	return claims
}

func (e *Extractor) extractEvent(text, articleID, sourceName string) []models.ExtractedClaim {
	var claims []models.ExtractedClaim

	for _, re := range eventPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			event := namedGroup(re, m, "event")
			location := namedGroup(re, m, "location")
			if event == "" || location == "" {
				continue
			}

			claimText := strings.TrimSpace(m[0])
			normalized := normalizeClaimText(claimText)
			fp := fingerprint(normalized)

			claims = append(claims, models.ExtractedClaim{
				ID:              fmt.Sprintf("%s_%s", articleID, fp[:8]),
				Kind:            models.ClaimEvent,
				RawText:         claimText,
				NormalizedText:  normalized,
				Fingerprint:     fp,
				SourceArticleID: articleID,
				SourceName:      sourceName,
				Subject:         event,
				Predicate:       "occurred at",
				Object:          location,
				Confidence:      0.85,
				Entities: []models.Entity{{
					Text:       location,
					Kind:       models.EntityLocation,
					Normalized: strings.ToLower(location),
					Confidence: 0.85,
				}},
			})
		}
	}

	return claims
}
