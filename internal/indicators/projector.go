package indicators

import (
	"sort"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

// namedIndicatorConfidence is fixed for every derived OPS_* indicator
// (spec.md §4.6 step 6): it reflects confidence in the projection itself,
// not in the underlying national readings.
const namedIndicatorConfidence = 0.85

// namedIndicatorSpread is the small per-index variation applied across a
// category's OPS_* codes so they don't all read identically.
const namedIndicatorSpread = 2.0

// Snapshot is one Layer-2 national indicator reading, keyed by indicator
// id in the map passed to Project.
type Snapshot struct {
	Value      float64
	Sentiment  float64
	Confidence float64
	Trend      models.TrendDirection
}

// Projector derives a company's operational-health indicators from the
// shared national-indicator catalogue and a snapshot of current readings
// (spec.md §4.6).
type Projector struct {
	catalogue map[string]models.IndicatorDefinition
}

// NewProjector builds a Projector over a national indicator catalogue.
// catalogue may be nil; indicator ids found in neither the built-in legacy
// mapping nor the catalogue are simply skipped during bucketing (spec.md §4.6 step 1 requires a PESTEL category to
// place an indicator, and an unknown indicator has none).
func NewProjector(catalogue map[string]models.IndicatorDefinition) *Projector {
	if catalogue == nil {
		catalogue = map[string]models.IndicatorDefinition{}
	}
	return &Projector{catalogue: catalogue}
}

// categoryBucket holds the indicators assigned to one operational category
// prior to weighted averaging.
type categoryBucket struct {
	values     []float64
	weights    []float64
	sources    []string
	bestTrend  models.TrendDirection
	haveTrend  bool
}

// Project computes a full OperationalIndicators for one company from a
// snapshot of national indicator readings (spec.md §4.6, steps 1-6).
func (p *Projector) Project(profile models.CompanyProfile, snapshot map[string]Snapshot) models.OperationalIndicators {
	buckets := p.bucketByCategory(profile, snapshot)

	categoryHealth := make(map[models.OperationalCategory]float64, len(buckets))
	rawImpact := make(map[models.OperationalCategory]float64, len(buckets))
	inverted := models.InvertedCategories()

	for _, category := range models.AllOperationalCategories() {
		bucket, ok := buckets[category]
		impact := neutralImpact
		if ok && len(bucket.values) > 0 {
			impact = weightedImpact(bucket.values, bucket.weights)
		}
		rawImpact[category] = impact
		if inverted[category] {
			categoryHealth[category] = 100 - impact
		} else {
			categoryHealth[category] = impact
		}
	}

	overall := overallHealth(categoryHealth, inverted)
	critical := criticalIssues(rawImpact, inverted)
	named := deriveNamedIndicators(categoryHealth, buckets)

	return models.OperationalIndicators{
		CompanyID:      profile.ID,
		CategoryHealth: categoryHealth,
		OverallHealth:  overall,
		CriticalIssues: critical,
		Named:          named,
	}
}

const neutralImpact = 50.0

// bucketByCategory places every snapshot indicator into the operational
// categories it affects, gated by the company's industry sensitivity
// (spec.md §4.6 step 1-2): the legacy explicit mapping is consulted first,
// falling back to the PESTEL weight matrix.
func (p *Projector) bucketByCategory(profile models.CompanyProfile, snapshot map[string]Snapshot) map[models.OperationalCategory]*categoryBucket {
	buckets := make(map[models.OperationalCategory]*categoryBucket)

	ids := make([]string, 0, len(snapshot))
	for id := range snapshot {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		reading := snapshot[id]
		for _, category := range p.categoriesFor(id) {
			sensitivity := sensitivityFor(profile, category)
			if sensitivity < minIndustrySensitivity {
				continue
			}
			b, ok := buckets[category]
			if !ok {
				b = &categoryBucket{}
				buckets[category] = b
			}
			b.values = append(b.values, reading.Value*sensitivity)
			b.weights = append(b.weights, reading.Confidence)
			b.sources = append(b.sources, id)
			if !b.haveTrend {
				b.bestTrend = reading.Trend
				b.haveTrend = true
			}
		}
	}
	return buckets
}

// categoriesFor resolves which operational categories an indicator id
// contributes to: the legacy explicit mapping is consulted first, falling
// back to every PESTEL-matrix weight at or above minPestelWeight.
func (p *Projector) categoriesFor(indicatorID string) []models.OperationalCategory {
	if legacy, ok := legacyIndicatorCategories[indicatorID]; ok {
		return legacy
	}

	def, ok := p.catalogue[indicatorID]
	if !ok {
		return nil
	}
	weights, ok := pestelToOperational[def.PestelCategory]
	if !ok {
		return nil
	}
	var out []models.OperationalCategory
	for category, weight := range weights {
		if weight >= minPestelWeight {
			out = append(out, category)
		}
	}
	return out
}

// weightedImpact is spec.md §4.6's impact formula:
// clamp(sum(v_i*conf_i) / sum(conf_i), 0, 100), falling back to a neutral
// midpoint when every weight is zero.
func weightedImpact(values, weights []float64) float64 {
	var weightedSum, totalWeight float64
	for i, v := range values {
		w := weights[i]
		weightedSum += v * w
		totalWeight += w
	}
	if totalWeight <= 0 {
		return neutralImpact
	}
	impact := weightedSum / totalWeight
	if impact < 0 {
		return 0
	}
	if impact > 100 {
		return 100
	}
	return impact
}

// overallHealth averages the five non-burden categories (spec.md §4.6 step
// 4); cost_pressure and regulatory are excluded since they measure burden,
// not health.
func overallHealth(categoryHealth map[models.OperationalCategory]float64, inverted map[models.OperationalCategory]bool) float64 {
	var sum float64
	var n int
	for category, health := range categoryHealth {
		if inverted[category] {
			continue
		}
		sum += health
		n++
	}
	if n == 0 {
		return neutralImpact
	}
	return sum / float64(n)
}

// criticalIssues flags categories crossing the fixed thresholds of spec.md
// §4.6 step 5, evaluated against the raw (pre-inversion) impact so a
// single pair of cutoffs (health low, burden high) applies consistently.
func criticalIssues(rawImpact map[models.OperationalCategory]float64, inverted map[models.OperationalCategory]bool) []string {
	var issues []string
	for _, category := range models.AllOperationalCategories() {
		impact, ok := rawImpact[category]
		if !ok {
			continue
		}
		if inverted[category] {
			if impact > criticalBurdenCutoff {
				issues = append(issues, string(category))
			}
		} else if impact < criticalHealthCutoff {
			issues = append(issues, string(category))
		}
	}
	return issues
}

// deriveNamedIndicators distributes each category's health score across
// its fixed OPS_* codes with a small spread so sibling indicators don't
// read identically, inheriting the category's first-seen trend (spec.md
// §4.6 step 6).
func deriveNamedIndicators(categoryHealth map[models.OperationalCategory]float64, buckets map[models.OperationalCategory]*categoryBucket) map[string]models.NamedOperationalIndicator {
	named := make(map[string]models.NamedOperationalIndicator)
	for category, codes := range opsIndicatorCodes {
		health := categoryHealth[category]
		bucket := buckets[category]

		var trend models.TrendDirection = models.TrendStable
		var contributing []string
		if bucket != nil {
			if bucket.haveTrend {
				trend = bucket.bestTrend
			}
			contributing = append(contributing, bucket.sources...)
		}

		n := len(codes)
		for i, code := range codes {
			offset := (float64(i) - float64(n)/2) * namedIndicatorSpread
			value := clamp(health+offset, 0, 100)
			named[code] = models.NamedOperationalIndicator{
				Code:                   code,
				Value:                  value,
				Trend:                  trend,
				ContributingIndicators: contributing,
				Confidence:             namedIndicatorConfidence,
			}
		}
	}
	return named
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
