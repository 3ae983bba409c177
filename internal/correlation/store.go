// Package correlation analyzes relationships between a company's
// operational indicators over time: correlation matrices, lead/lag
// detection, causal inference, and clustering (spec.md §4.8).
package correlation

import (
	"sort"
	"time"
)

// historyLimit bounds how much per-company time series the store retains
// (spec.md §4.8: "capped at 365 days").
const historyLimit = 365 * 24 * time.Hour

// dataPoint is one timestamped reading of every tracked indicator for a
// company.
type dataPoint struct {
	Timestamp time.Time
	Values    map[string]float64
}

// store holds per-company indicator history. It has no lock of its own:
// the owning Analyzer guards every company's series with one analyzer-wide
// RWMutex, so there is no per-company or per-(company, indicator) locking.
type store struct {
	points map[string][]dataPoint
}

func newStore() *store {
	return &store{points: make(map[string][]dataPoint)}
}

// add appends a reading and prunes anything older than historyLimit,
// keeping the series sorted by timestamp.
func (s *store) add(companyID string, timestamp time.Time, values map[string]float64) {
	cloned := make(map[string]float64, len(values))
	for k, v := range values {
		cloned[k] = v
	}

	series := append(s.points[companyID], dataPoint{Timestamp: timestamp, Values: cloned})
	sort.Slice(series, func(i, j int) bool { return series[i].Timestamp.Before(series[j].Timestamp) })

	cutoff := timestamp.Add(-historyLimit)
	pruned := series[:0]
	for _, p := range series {
		if p.Timestamp.After(cutoff) {
			pruned = append(pruned, p)
		}
	}
	s.points[companyID] = pruned
}

func (s *store) get(companyID string) []dataPoint {
	return s.points[companyID]
}

// indicatorSet lists every indicator name observed for a company, in a
// stable sorted order.
func (s *store) indicatorSet(companyID string, only []string) []string {
	seen := make(map[string]bool)
	for _, p := range s.points[companyID] {
		for k := range p.Values {
			seen[k] = true
		}
	}
	if len(only) > 0 {
		filter := make(map[string]bool, len(only))
		for _, ind := range only {
			filter[ind] = true
		}
		for k := range seen {
			if !filter[k] {
				delete(seen, k)
			}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s *store) series(companyID, indicator string) []float64 {
	points := s.points[companyID]
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Values[indicator]
	}
	return out
}
