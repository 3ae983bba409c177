package insight

import "github.com/platformbuilds/newsvalidator-core/internal/models"

// riskEmoji / opportunityEmoji map severity and priority to the
// narrative's leading emoji (spec.md §4.7, supplemented from
// original_source/).
var riskEmoji = map[models.Severity]string{
	models.SeverityCritical: "🔴",
	models.SeverityHigh:     "🟠",
	models.SeverityMedium:   "🟡",
	models.SeverityLow:      "🟢",
}

var urgencyBySeverity = map[models.Severity]string{
	models.SeverityCritical: "NOW",
	models.SeverityHigh:     "TODAY",
	models.SeverityMedium:   "THIS WEEK",
	models.SeverityLow:      "THIS MONTH",
}

// GenerateRecommendations produces an ordered list of recommendations for
// an insight: the matching template's actions in immediate, short-term,
// medium-term order with strictly increasing priority (spec.md §4.7).
func GenerateRecommendations(in models.Insight) []models.Recommendation {
	tmpl, ok := findTemplate(in.Code)
	if !ok {
		tmpl = genericTemplate(in.Kind, in.Code)
	}

	var recs []models.Recommendation
	priority := 1

	appendActions := func(actions []actionTemplate, category models.RecommendationCategory, defaultTimeframe string) {
		for _, a := range actions {
			timeframe := a.Timeframe
			if timeframe == "" {
				timeframe = defaultTimeframe
			}
			recs = append(recs, models.Recommendation{
				InsightID:       in.ID,
				Category:        category,
				Priority:        priority,
				Action:          a.Action,
				ResponsibleRole: a.Role,
				Effort:          a.Effort,
				Timeframe:       timeframe,
				SuccessMetrics:  tmpl.SuccessMetrics,
			})
			priority++
		}
	}

	appendActions(tmpl.Immediate, models.RecommendationImmediate, "Today")
	appendActions(tmpl.ShortTerm, models.RecommendationShortTerm, "This week")
	appendActions(tmpl.MediumTerm, models.RecommendationMediumTerm, "This month")

	return recs
}

// CreateActionPlan numbers a recommendation list into dependency-chained
// steps: every non-immediate step after the first depends on the step
// before it (spec.md §4.7).
func CreateActionPlan(recs []models.Recommendation) []models.ActionStep {
	steps := make([]models.ActionStep, 0, len(recs))
	for i, rec := range recs {
		step := models.ActionStep{
			StepNumber:     i + 1,
			Recommendation: rec,
		}
		if i > 0 && rec.Category != models.RecommendationImmediate {
			step.DependsOnStep = i
		}
		steps = append(steps, step)
	}
	return steps
}

// GenerateNarrative renders an insight as an emoji/urgency-tagged summary
// for executive display: the emoji and urgency tag come from severity, the
// headline prefix from the insight's kind (spec.md §4.7).
func GenerateNarrative(in models.Insight, recs []models.Recommendation) models.Narrative {
	emoji := riskEmoji[in.Scores.Severity]
	if emoji == "" {
		emoji = "⚠️"
	}
	urgency := urgencyBySeverity[in.Scores.Severity]
	if urgency == "" {
		urgency = "THIS WEEK"
	}

	headline := "Alert: " + in.Title
	if in.Kind == models.InsightOpportunity {
		headline = "Opportunity: " + in.Title
	}

	var whatToDo string
	count := 0
	for _, r := range recs {
		if r.Category != models.RecommendationImmediate {
			continue
		}
		if whatToDo != "" {
			whatToDo += ". "
		}
		whatToDo += r.Action
		count++
		if count == 2 {
			break
		}
	}
	if whatToDo == "" {
		whatToDo = "Review and assess the situation."
	}

	return models.Narrative{
		Emoji:      emoji,
		Headline:   headline,
		Summary:    in.Description,
		UrgencyTag: urgency,
	}
}
