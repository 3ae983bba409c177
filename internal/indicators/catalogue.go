package indicators

import "github.com/platformbuilds/newsvalidator-core/internal/models"

// DefaultCatalogue returns the reference indicator definitions the
// projector can fall back on when an indicator id has no entry in the
// legacy mapping. It covers the same indicator codes legacyIndicatorCategories
// names, so every legacy-mapped id also carries PESTEL metadata for
// display purposes even though its categories come from the legacy table.
func DefaultCatalogue() map[string]models.IndicatorDefinition {
	defs := []models.IndicatorDefinition{
		{ID: "ECON_GDP_SENTIMENT", Name: "GDP Growth Sentiment", PestelCategory: models.PestelEconomic, Subcategory: "growth", Calculation: models.CalculationIndex, BaseWeight: 0.8, Active: true},
		{ID: "ECON_INFLATION", Name: "Inflation Rate", PestelCategory: models.PestelEconomic, Subcategory: "prices", Calculation: models.CalculationRatio, BaseWeight: 0.9, Active: true},
		{ID: "ECON_EMPLOYMENT", Name: "Employment Rate", PestelCategory: models.PestelEconomic, Subcategory: "labor", Calculation: models.CalculationRatio, BaseWeight: 0.8, Active: true},
		{ID: "ECON_TRADE_BALANCE", Name: "Trade Balance", PestelCategory: models.PestelEconomic, Subcategory: "trade", Calculation: models.CalculationAggregate, BaseWeight: 0.6, Active: true},
		{ID: "ECON_INTEREST_RATE", Name: "Central Bank Interest Rate", PestelCategory: models.PestelEconomic, Subcategory: "monetary", Calculation: models.CalculationIndex, BaseWeight: 0.7, Active: true},
		{ID: "ECON_CONSUMER_CONFIDENCE", Name: "Consumer Confidence Index", PestelCategory: models.PestelEconomic, Subcategory: "sentiment", Calculation: models.CalculationIndex, BaseWeight: 0.6, Active: true},
		{ID: "ECON_BUSINESS_CONFIDENCE", Name: "Business Confidence Index", PestelCategory: models.PestelEconomic, Subcategory: "sentiment", Calculation: models.CalculationIndex, BaseWeight: 0.6, Active: true},

		{ID: "POL_STABILITY", Name: "Political Stability Index", PestelCategory: models.PestelPolitical, Subcategory: "governance", Calculation: models.CalculationIndex, BaseWeight: 0.8, Active: true},
		{ID: "POL_POLICY_CHANGES", Name: "Policy Change Frequency", PestelCategory: models.PestelPolitical, Subcategory: "governance", Calculation: models.CalculationCount, BaseWeight: 0.5, Active: true},
		{ID: "POL_CORRUPTION", Name: "Corruption Perception", PestelCategory: models.PestelPolitical, Subcategory: "governance", Calculation: models.CalculationIndex, BaseWeight: 0.5, Active: true},
		{ID: "POL_GOVERNMENT_SPENDING", Name: "Government Spending Sentiment", PestelCategory: models.PestelPolitical, Subcategory: "fiscal", Calculation: models.CalculationAggregate, BaseWeight: 0.5, Active: true},

		{ID: "SOC_EMPLOYMENT_TRENDS", Name: "Social Employment Trends", PestelCategory: models.PestelSocial, Subcategory: "labor", Calculation: models.CalculationIndex, BaseWeight: 0.6, Active: true},
		{ID: "SOC_CONSUMER_BEHAVIOR", Name: "Consumer Behavior Shift", PestelCategory: models.PestelSocial, Subcategory: "demand", Calculation: models.CalculationIndex, BaseWeight: 0.6, Active: true},
		{ID: "SOC_EDUCATION", Name: "Education Attainment Index", PestelCategory: models.PestelSocial, Subcategory: "workforce", Calculation: models.CalculationIndex, BaseWeight: 0.4, Active: true},
		{ID: "SOC_HEALTH_INDEX", Name: "Public Health Index", PestelCategory: models.PestelSocial, Subcategory: "workforce", Calculation: models.CalculationIndex, BaseWeight: 0.5, Active: true},
		{ID: "SOC_MIGRATION", Name: "Migration Flow Index", PestelCategory: models.PestelSocial, Subcategory: "labor", Calculation: models.CalculationAggregate, BaseWeight: 0.4, Active: true},

		{ID: "TECH_DIGITAL_ADOPTION", Name: "Digital Adoption Rate", PestelCategory: models.PestelTechnological, Subcategory: "infrastructure", Calculation: models.CalculationRatio, BaseWeight: 0.6, Active: true},
		{ID: "TECH_INNOVATION", Name: "Innovation Index", PestelCategory: models.PestelTechnological, Subcategory: "rd", Calculation: models.CalculationIndex, BaseWeight: 0.5, Active: true},
		{ID: "TECH_CONNECTIVITY", Name: "Network Connectivity Index", PestelCategory: models.PestelTechnological, Subcategory: "infrastructure", Calculation: models.CalculationIndex, BaseWeight: 0.6, Active: true},
		{ID: "TECH_AUTOMATION", Name: "Automation Adoption", PestelCategory: models.PestelTechnological, Subcategory: "labor", Calculation: models.CalculationRatio, BaseWeight: 0.5, Active: true},

		{ID: "ENV_CLIMATE_EVENTS", Name: "Climate Event Frequency", PestelCategory: models.PestelEnvironmental, Subcategory: "hazards", Calculation: models.CalculationCount, BaseWeight: 0.7, Active: true},
		{ID: "ENV_RESOURCE_AVAILABILITY", Name: "Resource Availability Index", PestelCategory: models.PestelEnvironmental, Subcategory: "resources", Calculation: models.CalculationIndex, BaseWeight: 0.6, Active: true},
		{ID: "ENV_POLLUTION", Name: "Pollution Index", PestelCategory: models.PestelEnvironmental, Subcategory: "hazards", Calculation: models.CalculationIndex, BaseWeight: 0.5, Active: true},
		{ID: "ENV_SUSTAINABILITY", Name: "Sustainability Index", PestelCategory: models.PestelEnvironmental, Subcategory: "policy", Calculation: models.CalculationIndex, BaseWeight: 0.4, Active: true},

		{ID: "LEG_COMPLIANCE", Name: "Regulatory Compliance Burden", PestelCategory: models.PestelLegal, Subcategory: "regulation", Calculation: models.CalculationIndex, BaseWeight: 0.6, Active: true},
		{ID: "LEG_LABOR_LAWS", Name: "Labor Law Activity", PestelCategory: models.PestelLegal, Subcategory: "labor", Calculation: models.CalculationCount, BaseWeight: 0.5, Active: true},
		{ID: "LEG_TAX_POLICY", Name: "Tax Policy Sentiment", PestelCategory: models.PestelLegal, Subcategory: "fiscal", Calculation: models.CalculationIndex, BaseWeight: 0.6, Active: true},
		{ID: "LEG_TRADE_REGULATIONS", Name: "Trade Regulation Activity", PestelCategory: models.PestelLegal, Subcategory: "trade", Calculation: models.CalculationCount, BaseWeight: 0.5, Active: true},
	}

	out := make(map[string]models.IndicatorDefinition, len(defs))
	for _, d := range defs {
		out[d.ID] = d
	}
	return out
}
