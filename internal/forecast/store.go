// Package forecast projects a company's operational indicators forward in
// time: trend detection, seasonality, horizon forecasts with confidence
// bands, and anomaly/reversal detection (spec.md §4.9).
package forecast

import (
	"sort"
	"time"
)

// seriesKey identifies one company's one indicator's time series.
type seriesKey struct {
	CompanyID string
	Indicator string
}

type point struct {
	Timestamp time.Time
	Value     float64
}

// store holds per-(company,indicator) time series. It has no lock of its
// own: the owning Forecaster's single RWMutex guards every series. add
// re-sorts the whole series on every append, so appends are not O(1).
type store struct {
	series map[seriesKey][]point
}

func newStore() *store {
	return &store{series: make(map[seriesKey][]point)}
}

func (s *store) add(companyID, indicator string, timestamp time.Time, value float64) {
	key := seriesKey{companyID, indicator}
	series := append(s.series[key], point{Timestamp: timestamp, Value: value})
	sort.Slice(series, func(i, j int) bool { return series[i].Timestamp.Before(series[j].Timestamp) })
	s.series[key] = series
}

func (s *store) addBatch(companyID, indicator string, points []point) {
	for _, p := range points {
		s.add(companyID, indicator, p.Timestamp, p.Value)
	}
}

func (s *store) get(companyID, indicator string) []point {
	return s.series[seriesKey{companyID, indicator}]
}

type indicatorSummary struct {
	DataPoints int
	StartDate  time.Time
	EndDate    time.Time
	MinValue   float64
	MaxValue   float64
}

// dataSummary reports, per indicator tracked for a company, how much
// history is available.
func (s *store) dataSummary(companyID string) map[string]indicatorSummary {
	out := make(map[string]indicatorSummary)
	for key, series := range s.series {
		if key.CompanyID != companyID || len(series) == 0 {
			continue
		}
		min, max := series[0].Value, series[0].Value
		for _, p := range series {
			if p.Value < min {
				min = p.Value
			}
			if p.Value > max {
				max = p.Value
			}
		}
		out[key.Indicator] = indicatorSummary{
			DataPoints: len(series),
			StartDate:  series[0].Timestamp,
			EndDate:    series[len(series)-1].Timestamp,
			MinValue:   min,
			MaxValue:   max,
		}
	}
	return out
}
