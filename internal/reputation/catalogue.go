package reputation

import (
	"strings"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

// tierBaseReputation is the starting score assigned to a source the first
// time it is seen, before any events have accrued (spec.md §4.1).
var tierBaseReputation = map[models.SourceTier]float64{
	models.TierOfficial: 95.0,
	models.Tier1:        80.0,
	models.Tier2:        65.0,
	models.Tier3:        40.0,
	models.TierUnknown:  30.0,
}

type sourceInfo struct {
	category models.SourceCategory
	tier     models.SourceTier
}

// knownSources seeds tier/category for the outlets the pipeline expects to
// see regularly. Anything absent falls back to TierUnknown /
// CategoryUnknown, which a new source keeps until an operator classifies
// it explicitly — there is no automatic promotion out of TierUnknown.
var knownSources = map[string]sourceInfo{
	"government":           {models.CategoryGovernment, models.TierOfficial},
	"central_bank":         {models.CategoryRegulator, models.TierOfficial},
	"president":            {models.CategoryGovernment, models.TierOfficial},
	"prime_minister":       {models.CategoryGovernment, models.TierOfficial},
	"ministry":             {models.CategoryGovernment, models.TierOfficial},
	"parliament":           {models.CategoryGovernment, models.TierOfficial},
	"met_department":       {models.CategoryGovernment, models.TierOfficial},
	"elections_commission": {models.CategoryGovernment, models.TierOfficial},

	"reuters": {models.CategoryWireService, models.Tier1},
	"afp":     {models.CategoryWireService, models.Tier1},
	"ap":      {models.CategoryWireService, models.Tier1},

	"daily_mirror": {models.CategoryMainstream, models.Tier1},
	"daily_news":   {models.CategoryMainstream, models.Tier1},
	"sunday_times": {models.CategoryMainstream, models.Tier1},

	"economynext":     {models.CategoryRegionalNews, models.Tier2},
	"colombo_gazette": {models.CategoryRegionalNews, models.Tier2},
	"news_lk":         {models.CategoryRegionalNews, models.Tier2},

	"twitter":  {models.CategorySocialMedia, models.Tier3},
	"facebook": {models.CategorySocialMedia, models.Tier3},
}

// lookupSource resolves the tier/category for a normalized source id,
// falling back to a substring match (either id contains the other) before
// giving up and calling it unknown.
func lookupSource(sourceID string) sourceInfo {
	if info, ok := knownSources[sourceID]; ok {
		return info
	}
	for knownID, info := range knownSources {
		if strings.Contains(sourceID, knownID) || strings.Contains(knownID, sourceID) {
			return info
		}
	}
	return sourceInfo{category: models.CategoryUnknown, tier: models.TierUnknown}
}
