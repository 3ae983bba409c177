package claims

import (
	"strings"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

// extractEntities runs the fixed lexicon of organization/money/percentage/
// location patterns over a sentence. It is deliberately cheap heuristic
// pattern matching, not a trained NER model (spec.md Non-goals: no NLP
// beyond regex and bag-of-words similarity).
func extractEntities(sentence string) []models.Entity {
	var entities []models.Entity

	for _, m := range orgEntityPattern.FindAllStringSubmatchIndex(sentence, -1) {
		text := sentence[m[2]:m[3]]
		entities = append(entities, models.Entity{
			Text:       text,
			Kind:       models.EntityOrganization,
			Normalized: strings.ToLower(text),
			SpanStart:  m[2],
			SpanEnd:    m[3],
			Confidence: 0.8,
		})
	}

	for _, m := range moneyEntityPattern.FindAllStringIndex(sentence, -1) {
		text := sentence[m[0]:m[1]]
		entities = append(entities, models.Entity{
			Text:       text,
			Kind:       models.EntityMoney,
			Normalized: strings.ToLower(text),
			SpanStart:  m[0],
			SpanEnd:    m[1],
			Confidence: 0.9,
		})
	}

	for _, m := range pctEntityPattern.FindAllStringSubmatch(sentence, -1) {
		entities = append(entities, models.Entity{
			Text:       m[0],
			Kind:       models.EntityPercentage,
			Normalized: m[1] + "%",
			Confidence: 0.95,
		})
	}

	for _, m := range locationEntityPattern.FindAllStringSubmatchIndex(sentence, -1) {
		text := sentence[m[2]:m[3]]
		entities = append(entities, models.Entity{
			Text:       text,
			Kind:       models.EntityLocation,
			Normalized: strings.ToLower(text),
			SpanStart:  m[2],
			SpanEnd:    m[3],
			Confidence: 0.7,
		})
	}

	return entities
}
