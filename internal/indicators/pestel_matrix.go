// Package indicators projects Layer-2 national indicators onto a
// company's seven operational-health categories (spec.md §4.6).
package indicators

import "github.com/platformbuilds/newsvalidator-core/internal/models"

// pestelToOperational is the fixed 6x7 impact-weight matrix: how much a
// PESTEL category's movement is expected to matter to each operational
// category, in [0,1].
var pestelToOperational = map[models.PestelCategory]map[models.OperationalCategory]float64{
	models.PestelPolitical: {
		models.CategorySupplyChain:      0.3,
		models.CategoryWorkforce:        0.2,
		models.CategoryInfrastructure:   0.1,
		models.CategoryCostPressure:     0.1,
		models.CategoryMarketConditions: 0.2,
		models.CategoryFinancial:        0.1,
		models.CategoryRegulatory:       0.5,
	},
	models.PestelEconomic: {
		models.CategorySupplyChain:      0.4,
		models.CategoryWorkforce:        0.2,
		models.CategoryInfrastructure:   0.1,
		models.CategoryCostPressure:     0.5,
		models.CategoryMarketConditions: 0.5,
		models.CategoryFinancial:        0.5,
		models.CategoryRegulatory:       0.1,
	},
	models.PestelSocial: {
		models.CategorySupplyChain:      0.1,
		models.CategoryWorkforce:        0.5,
		models.CategoryInfrastructure:   0.1,
		models.CategoryCostPressure:     0.2,
		models.CategoryMarketConditions: 0.4,
		models.CategoryFinancial:        0.1,
		models.CategoryRegulatory:       0.1,
	},
	models.PestelTechnological: {
		models.CategorySupplyChain:      0.2,
		models.CategoryWorkforce:        0.3,
		models.CategoryInfrastructure:   0.5,
		models.CategoryCostPressure:     0.2,
		models.CategoryMarketConditions: 0.3,
		models.CategoryFinancial:        0.2,
		models.CategoryRegulatory:       0.2,
	},
	models.PestelEnvironmental: {
		models.CategorySupplyChain:      0.4,
		models.CategoryWorkforce:        0.2,
		models.CategoryInfrastructure:   0.4,
		models.CategoryCostPressure:     0.3,
		models.CategoryMarketConditions: 0.2,
		models.CategoryFinancial:        0.1,
		models.CategoryRegulatory:       0.3,
	},
	models.PestelLegal: {
		models.CategorySupplyChain:      0.2,
		models.CategoryWorkforce:        0.3,
		models.CategoryInfrastructure:   0.1,
		models.CategoryCostPressure:     0.4,
		models.CategoryMarketConditions: 0.2,
		models.CategoryFinancial:        0.3,
		models.CategoryRegulatory:       0.6,
	},
}

// minPestelWeight is the lowest PESTEL-to-operational weight that still
// buckets an indicator into that category (spec.md §4.6 step 1).
const minPestelWeight = 0.2

// minIndustrySensitivity is the relevance gate: a category only receives
// indicators for an industry whose sensitivity to it is at least this
// (spec.md §4.6).
const minIndustrySensitivity = 0.5

// legacyIndicatorCategories overrides the PESTEL matrix for a fixed set of
// indicator codes carried over from an earlier, hand-curated mapping. When
// present for an indicator id, it entirely replaces the PESTEL lookup for
// that indicator (spec.md §4.6).
var legacyIndicatorCategories = map[string][]models.OperationalCategory{
	"ECON_GDP_SENTIMENT":       {models.CategorySupplyChain, models.CategoryMarketConditions},
	"ECON_INFLATION":           {models.CategoryCostPressure, models.CategoryFinancial},
	"ECON_EMPLOYMENT":          {models.CategoryWorkforce, models.CategoryMarketConditions},
	"ECON_TRADE_BALANCE":       {models.CategorySupplyChain, models.CategoryCostPressure},
	"ECON_INTEREST_RATE":       {models.CategoryFinancial, models.CategoryCostPressure},
	"ECON_CONSUMER_CONFIDENCE": {models.CategoryMarketConditions},
	"ECON_BUSINESS_CONFIDENCE": {models.CategoryMarketConditions, models.CategoryFinancial},

	"POL_STABILITY":           {models.CategorySupplyChain, models.CategoryRegulatory},
	"POL_POLICY_CHANGES":      {models.CategoryRegulatory, models.CategoryCostPressure},
	"POL_CORRUPTION":          {models.CategoryRegulatory, models.CategoryCostPressure},
	"POL_GOVERNMENT_SPENDING": {models.CategoryMarketConditions, models.CategoryInfrastructure},

	"SOC_EMPLOYMENT_TRENDS": {models.CategoryWorkforce},
	"SOC_CONSUMER_BEHAVIOR": {models.CategoryMarketConditions},
	"SOC_EDUCATION":         {models.CategoryWorkforce},
	"SOC_HEALTH_INDEX":      {models.CategoryWorkforce, models.CategoryCostPressure},
	"SOC_MIGRATION":         {models.CategoryWorkforce, models.CategoryMarketConditions},

	"TECH_DIGITAL_ADOPTION": {models.CategoryInfrastructure},
	"TECH_INNOVATION":       {models.CategoryMarketConditions, models.CategoryInfrastructure},
	"TECH_CONNECTIVITY":     {models.CategoryInfrastructure},
	"TECH_AUTOMATION":       {models.CategoryWorkforce, models.CategoryCostPressure},

	"ENV_CLIMATE_EVENTS":        {models.CategorySupplyChain, models.CategoryInfrastructure},
	"ENV_RESOURCE_AVAILABILITY": {models.CategorySupplyChain, models.CategoryCostPressure},
	"ENV_POLLUTION":             {models.CategoryRegulatory, models.CategoryCostPressure},
	"ENV_SUSTAINABILITY":        {models.CategoryRegulatory, models.CategoryMarketConditions},

	"LEG_COMPLIANCE":        {models.CategoryRegulatory, models.CategoryCostPressure},
	"LEG_LABOR_LAWS":        {models.CategoryWorkforce, models.CategoryRegulatory},
	"LEG_TAX_POLICY":        {models.CategoryFinancial, models.CategoryCostPressure},
	"LEG_TRADE_REGULATIONS": {models.CategorySupplyChain, models.CategoryRegulatory},
}

// defaultIndustrySensitivity is applied when a CompanyProfile supplies no
// per-category override (spec.md §4.6: "default all 1.0").
var defaultIndustrySensitivity = map[models.OperationalCategory]float64{
	models.CategorySupplyChain:      1.0,
	models.CategoryWorkforce:        1.0,
	models.CategoryInfrastructure:   1.0,
	models.CategoryCostPressure:     1.0,
	models.CategoryMarketConditions: 1.0,
	models.CategoryFinancial:        1.0,
	models.CategoryRegulatory:       1.0,
}

// industrySensitivity is the 7-vector per industry used when a company's
// own profile doesn't override a category.
var industrySensitivity = map[models.Industry]map[models.OperationalCategory]float64{
	models.IndustryRetail: {
		models.CategorySupplyChain: 1.2, models.CategoryWorkforce: 0.9, models.CategoryInfrastructure: 0.8,
		models.CategoryCostPressure: 1.1, models.CategoryMarketConditions: 1.3, models.CategoryFinancial: 1.0, models.CategoryRegulatory: 0.9,
	},
	models.IndustryManufacturing: {
		models.CategorySupplyChain: 1.4, models.CategoryWorkforce: 1.1, models.CategoryInfrastructure: 1.3,
		models.CategoryCostPressure: 1.2, models.CategoryMarketConditions: 1.0, models.CategoryFinancial: 1.0, models.CategoryRegulatory: 1.1,
	},
	models.IndustryLogistics: {
		models.CategorySupplyChain: 1.5, models.CategoryWorkforce: 1.0, models.CategoryInfrastructure: 1.4,
		models.CategoryCostPressure: 1.3, models.CategoryMarketConditions: 0.9, models.CategoryFinancial: 0.9, models.CategoryRegulatory: 1.0,
	},
	models.IndustryHospitality: {
		models.CategorySupplyChain: 0.8, models.CategoryWorkforce: 1.4, models.CategoryInfrastructure: 1.0,
		models.CategoryCostPressure: 1.1, models.CategoryMarketConditions: 1.4, models.CategoryFinancial: 1.1, models.CategoryRegulatory: 1.0,
	},
	models.IndustryTechnology: {
		models.CategorySupplyChain: 0.7, models.CategoryWorkforce: 1.3, models.CategoryInfrastructure: 1.5,
		models.CategoryCostPressure: 0.9, models.CategoryMarketConditions: 1.2, models.CategoryFinancial: 1.1, models.CategoryRegulatory: 1.0,
	},
	models.IndustryHealthcare: {
		models.CategorySupplyChain: 1.1, models.CategoryWorkforce: 1.4, models.CategoryInfrastructure: 1.2,
		models.CategoryCostPressure: 1.0, models.CategoryMarketConditions: 0.8, models.CategoryFinancial: 1.0, models.CategoryRegulatory: 1.5,
	},
	models.IndustryFinance: {
		models.CategorySupplyChain: 0.5, models.CategoryWorkforce: 1.1, models.CategoryInfrastructure: 1.3,
		models.CategoryCostPressure: 0.8, models.CategoryMarketConditions: 1.2, models.CategoryFinancial: 1.5, models.CategoryRegulatory: 1.4,
	},
}

// sensitivityFor resolves the effective per-category sensitivity for a
// company: its own override if set, else its industry's vector, else the
// global default.
func sensitivityFor(profile models.CompanyProfile, category models.OperationalCategory) float64 {
	if profile.Sensitivity != nil {
		if v, ok := profile.Sensitivity[category]; ok {
			return v
		}
	}
	if vec, ok := industrySensitivity[profile.Industry]; ok {
		if v, ok := vec[category]; ok {
			return v
		}
	}
	return defaultIndustrySensitivity[category]
}

// opsIndicatorCodes lists the named OPS_* indicators derived from each
// operational category's health score (spec.md §4.6 step 6).
var opsIndicatorCodes = map[models.OperationalCategory][]string{
	models.CategorySupplyChain:      {"OPS_SUPPLY_CHAIN", "OPS_TRANSPORT_AVAIL", "OPS_LOGISTICS_COST", "OPS_IMPORT_FLOW"},
	models.CategoryWorkforce:        {"OPS_WORKFORCE_AVAIL", "OPS_LABOR_COST", "OPS_PRODUCTIVITY"},
	models.CategoryInfrastructure:   {"OPS_POWER_RELIABILITY", "OPS_FUEL_AVAIL", "OPS_WATER_SUPPLY", "OPS_INTERNET_CONNECTIVITY"},
	models.CategoryCostPressure:     {"OPS_COST_PRESSURE", "OPS_RAW_MATERIAL_COST", "OPS_ENERGY_COST"},
	models.CategoryMarketConditions: {"OPS_DEMAND_LEVEL", "OPS_COMPETITION_INTENSITY", "OPS_PRICING_POWER"},
	models.CategoryFinancial:        {"OPS_CASH_FLOW", "OPS_CREDIT_AVAIL", "OPS_PAYMENT_DELAYS"},
	models.CategoryRegulatory:       {"OPS_REGULATORY_BURDEN", "OPS_COMPLIANCE_COST"},
}

// criticalHealthCutoff / criticalBurdenCutoff are the fixed thresholds of
// spec.md §4.6 step 5: a plain health category is critical below the
// former; an inverted burden category is critical when its raw
// (pre-inversion) impact exceeds the latter.
const (
	criticalHealthCutoff = 30.0
	criticalBurdenCutoff = 80.0
)
