package insight

import "github.com/platformbuilds/newsvalidator-core/internal/models"

// actionTemplate is one recommended action inside a recommendationTemplate,
// grounded on the immediate/short-term/medium-term action lists of the
// upstream recommendation engine.
type actionTemplate struct {
	Action    string
	Role      string
	Timeframe string
	Effort    models.Effort
}

// recommendationTemplate groups a code's actions by timeframe bucket plus
// its success metrics (spec.md §4.7).
type recommendationTemplate struct {
	Code            string
	ApplicableTo    []string
	Immediate       []actionTemplate
	ShortTerm       []actionTemplate
	MediumTerm      []actionTemplate
	SuccessMetrics  []string
}

var templates = map[string]recommendationTemplate{
	"RISK_SUPPLY_CHAIN": {
		Code:         "RISK_SUPPLY_CHAIN",
		ApplicableTo: []string{"RISK_SUPPLY_CHAIN", "RISK_IMPORT"},
		Immediate: []actionTemplate{
			{"Contact primary suppliers to assess delivery status", "Procurement Manager", "Today", models.EffortLow},
			{"Review current inventory levels and identify critical items", "Inventory Manager", "Today", models.EffortLow},
			{"Activate backup supplier list for critical materials", "Procurement Manager", "24 hours", models.EffortMedium},
		},
		ShortTerm: []actionTemplate{
			{"Negotiate expedited shipping for critical items", "Procurement Manager", "This week", models.EffortMedium},
			{"Review and adjust production schedule based on available materials", "Operations Manager", "This week", models.EffortMedium},
			{"Communicate potential delays to key customers", "Sales Manager", "48 hours", models.EffortLow},
		},
		MediumTerm: []actionTemplate{
			{"Diversify supplier base to reduce single-point dependencies", "Procurement Director", "This month", models.EffortHigh},
			{"Increase safety stock levels for critical items", "Inventory Manager", "This month", models.EffortMedium},
		},
		SuccessMetrics: []string{"Delivery delays < 5%", "No production stoppages", "Customer satisfaction maintained"},
	},
	"RISK_REVENUE_DECLINE": {
		Code:         "RISK_REVENUE_DECLINE",
		ApplicableTo: []string{"RISK_REVENUE_DECLINE", "RISK_DEMAND"},
		Immediate: []actionTemplate{
			{"Analyze sales data to identify declining segments", "Sales Manager", "Today", models.EffortLow},
			{"Review pricing competitiveness versus market", "Marketing Manager", "24 hours", models.EffortMedium},
		},
		ShortTerm: []actionTemplate{
			{"Launch targeted promotional campaign for underperforming products", "Marketing Manager", "This week", models.EffortMedium},
			{"Re-engage dormant customers with special offers", "Sales Team", "This week", models.EffortMedium},
			{"Review and optimize sales team territories", "Sales Director", "2 weeks", models.EffortMedium},
		},
		MediumTerm: []actionTemplate{
			{"Conduct customer satisfaction survey", "Marketing Manager", "This month", models.EffortMedium},
			{"Explore new market segments or distribution channels", "Business Development", "This quarter", models.EffortHigh},
		},
		SuccessMetrics: []string{"Revenue decline halted", "Customer retention > 90%", "Market share maintained"},
	},
	"RISK_COST_ESCALATION": {
		Code:         "RISK_COST_ESCALATION",
		ApplicableTo: []string{"RISK_COST_ESCALATION", "RISK_COST"},
		Immediate: []actionTemplate{
			{"Review all discretionary spending and defer non-essential purchases", "Finance Manager", "Today", models.EffortLow},
			{"Identify top cost drivers and assess reduction options", "Operations Manager", "Today", models.EffortMedium},
		},
		ShortTerm: []actionTemplate{
			{"Renegotiate contracts with major suppliers", "Procurement Manager", "This week", models.EffortMedium},
			{"Implement energy-saving measures", "Facilities Manager", "This week", models.EffortLow},
			{"Review and optimize overtime usage", "HR Manager", "This week", models.EffortLow},
		},
		MediumTerm: []actionTemplate{
			{"Conduct comprehensive cost audit", "Finance Director", "This month", models.EffortHigh},
			{"Evaluate process automation opportunities", "Operations Director", "This quarter", models.EffortHigh},
		},
		SuccessMetrics: []string{"Cost reduction of 10%", "Margin improvement", "No quality impact"},
	},
	"RISK_WORKFORCE": {
		Code:         "RISK_WORKFORCE",
		ApplicableTo: []string{"RISK_WORKFORCE", "RISK_LABOR"},
		Immediate: []actionTemplate{
			{"Identify critical roles and single points of failure", "HR Manager", "Today", models.EffortMedium},
			{"Review and accelerate pending hiring processes", "HR Manager", "Today", models.EffortLow},
		},
		ShortTerm: []actionTemplate{
			{"Develop cross-training program for critical functions", "Operations Manager", "This week", models.EffortMedium},
			{"Review compensation competitiveness for key roles", "HR Manager", "This week", models.EffortMedium},
			{"Engage temporary staffing agency for backup", "HR Manager", "48 hours", models.EffortLow},
		},
		MediumTerm: []actionTemplate{
			{"Implement employee retention program", "HR Director", "This month", models.EffortHigh},
			{"Build talent pipeline through internship programs", "HR Director", "This quarter", models.EffortMedium},
		},
		SuccessMetrics: []string{"Staff turnover < 10%", "Critical roles covered", "Productivity maintained"},
	},
	"RISK_POWER": {
		Code:         "RISK_POWER",
		ApplicableTo: []string{"RISK_POWER", "RISK_INFRASTRUCTURE"},
		Immediate: []actionTemplate{
			{"Verify backup power systems are operational", "Facilities Manager", "Today", models.EffortLow},
			{"Identify critical systems and priority order for power allocation", "IT Manager", "Today", models.EffortLow},
		},
		ShortTerm: []actionTemplate{
			{"Procure additional fuel for backup generators", "Facilities Manager", "24 hours", models.EffortLow},
			{"Establish load-shedding schedule if needed", "Operations Manager", "Today", models.EffortMedium},
			{"Enable remote work capabilities for non-essential staff", "IT Manager", "48 hours", models.EffortMedium},
		},
		MediumTerm: []actionTemplate{
			{"Evaluate solar/alternative power options", "Facilities Director", "This month", models.EffortHigh},
			{"Upgrade UPS systems for critical equipment", "IT Director", "This quarter", models.EffortHigh},
		},
		SuccessMetrics: []string{"Zero data loss", "Critical ops maintained", "< 2 hours unplanned downtime"},
	},
	"OPP_MARKET_CAPTURE": {
		Code:         "OPP_MARKET_CAPTURE",
		ApplicableTo: []string{"OPP_MARKET_CAPTURE", "OPP_COMPETITIVE"},
		Immediate: []actionTemplate{
			{"Identify competitor vulnerabilities and affected customers", "Sales Manager", "Today", models.EffortMedium},
			{"Prepare competitive differentiation messaging", "Marketing Manager", "24 hours", models.EffortMedium},
		},
		ShortTerm: []actionTemplate{
			{"Launch targeted outreach to competitor's customers", "Sales Team", "This week", models.EffortMedium},
			{"Offer special switching incentives", "Sales Director", "This week", models.EffortLow},
			{"Increase advertising in competitor's stronghold markets", "Marketing Manager", "2 weeks", models.EffortHigh},
		},
		MediumTerm: []actionTemplate{
			{"Develop case studies from new customer wins", "Marketing Manager", "This month", models.EffortMedium},
		},
		SuccessMetrics: []string{"Market share +2%", "10+ new customer wins", "Revenue increase 15%"},
	},
	"OPP_PRICING_POWER": {
		Code:         "OPP_PRICING_POWER",
		ApplicableTo: []string{"OPP_PRICING_POWER", "OPP_PRICING"},
		Immediate: []actionTemplate{
			{"Analyze price elasticity for key products", "Finance Manager", "Today", models.EffortMedium},
			{"Identify products with highest pricing potential", "Product Manager", "Today", models.EffortLow},
		},
		ShortTerm: []actionTemplate{
			{"Implement selective price increases on high-demand items", "Sales Director", "This week", models.EffortLow},
			{"Enhance value proposition messaging to justify premium", "Marketing Manager", "This week", models.EffortMedium},
			{"Train sales team on value-based selling", "Sales Director", "2 weeks", models.EffortMedium},
		},
		MediumTerm: []actionTemplate{
			{"Launch premium product tier", "Product Manager", "This quarter", models.EffortHigh},
		},
		SuccessMetrics: []string{"Margin improvement 5%", "Price increase without volume loss", "Premium segment growth"},
	},
	"OPP_DEMAND_SURGE": {
		Code:         "OPP_DEMAND_SURGE",
		ApplicableTo: []string{"OPP_DEMAND_SURGE", "OPP_DEMAND"},
		Immediate: []actionTemplate{
			{"Assess current capacity and inventory levels", "Operations Manager", "Today", models.EffortLow},
			{"Identify potential capacity expansion options", "Operations Manager", "Today", models.EffortMedium},
		},
		ShortTerm: []actionTemplate{
			{"Authorize overtime and additional shifts", "Operations Director", "24 hours", models.EffortLow},
			{"Accelerate raw material procurement", "Procurement Manager", "48 hours", models.EffortMedium},
			{"Engage contract manufacturing if needed", "Operations Director", "This week", models.EffortHigh},
		},
		MediumTerm: []actionTemplate{
			{"Evaluate permanent capacity expansion", "Operations Director", "This month", models.EffortHigh},
		},
		SuccessMetrics: []string{"Demand fulfilled 95%+", "No stockouts", "Revenue capture maximized"},
	},
	"OPP_DIGITAL_TRANSFORM": {
		Code:         "OPP_DIGITAL_TRANSFORM",
		ApplicableTo: []string{"OPP_DIGITAL_TRANSFORM", "OPP_TECHNOLOGY"},
		Immediate: []actionTemplate{
			{"Identify quick-win automation opportunities", "IT Manager", "This week", models.EffortMedium},
			{"Assess current technology gaps", "IT Manager", "This week", models.EffortMedium},
		},
		ShortTerm: []actionTemplate{
			{"Implement cloud-based productivity tools", "IT Manager", "2 weeks", models.EffortMedium},
			{"Launch pilot automation project", "Operations Manager", "This month", models.EffortHigh},
			{"Train staff on new digital tools", "HR Manager", "This month", models.EffortMedium},
		},
		MediumTerm: []actionTemplate{
			{"Develop comprehensive digital roadmap", "IT Director", "This quarter", models.EffortHigh},
			{"Implement ERP/CRM upgrade", "IT Director", "This year", models.EffortHigh},
		},
		SuccessMetrics: []string{"Productivity +20%", "Process automation 50%", "Digital skills improvement"},
	},
	"OPP_TALENT_ACQUISITION": {
		Code:         "OPP_TALENT_ACQUISITION",
		ApplicableTo: []string{"OPP_TALENT_ACQUISITION", "OPP_TALENT"},
		Immediate: []actionTemplate{
			{"Identify critical skill gaps and priorities", "HR Manager", "Today", models.EffortLow},
			{"Review pending recruitment and fast-track key positions", "HR Manager", "Today", models.EffortLow},
		},
		ShortTerm: []actionTemplate{
			{"Launch targeted recruitment campaign", "HR Manager", "This week", models.EffortMedium},
			{"Attend industry job fairs and networking events", "HR Team", "This month", models.EffortMedium},
			{"Offer competitive signing bonuses for key hires", "HR Director", "This week", models.EffortLow},
		},
		MediumTerm: []actionTemplate{
			{"Build employer brand and employee value proposition", "HR Director", "This quarter", models.EffortHigh},
		},
		SuccessMetrics: []string{"Key positions filled", "Time to hire < 30 days", "Quality of hire high"},
	},
}

// findTemplate resolves an insight code to its registry entry, falling
// back to a direct scan of each template's ApplicableTo list, then to a
// generic template (spec.md §4.7).
func findTemplate(code string) (recommendationTemplate, bool) {
	if t, ok := templates[code]; ok {
		return t, true
	}
	for _, t := range templates {
		for _, applicable := range t.ApplicableTo {
			if applicable == code {
				return t, true
			}
		}
	}
	return recommendationTemplate{}, false
}

func genericTemplate(kind models.InsightKind, code string) recommendationTemplate {
	if kind == models.InsightRisk {
		return recommendationTemplate{
			Code: "GENERIC_" + code,
			Immediate: []actionTemplate{
				{"Assess the situation and gather more information", "Manager", "Today", models.EffortLow},
				{"Identify potential impacts on operations", "Operations", "Today", models.EffortMedium},
			},
			ShortTerm: []actionTemplate{
				{"Develop mitigation plan", "Management", "This week", models.EffortMedium},
				{"Communicate with stakeholders", "Management", "This week", models.EffortLow},
			},
			SuccessMetrics: []string{"Risk mitigated", "Operations stable"},
		}
	}
	return recommendationTemplate{
		Code: "GENERIC_" + code,
		Immediate: []actionTemplate{
			{"Assess the opportunity and gather data", "Manager", "Today", models.EffortLow},
			{"Identify resources needed to capture opportunity", "Management", "Today", models.EffortMedium},
		},
		ShortTerm: []actionTemplate{
			{"Develop action plan to capture opportunity", "Management", "This week", models.EffortMedium},
			{"Allocate resources and begin execution", "Operations", "This week", models.EffortMedium},
		},
		SuccessMetrics: []string{"Opportunity captured", "Value realized"},
	}
}
