package forecast

import (
	"fmt"
	"math"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

// Anomaly is a single point or reversal flagged as unusual by
// DetectAnomalies or DetectTrendChanges.
type Anomaly struct {
	Indicator      string
	CompanyID      string
	DetectedAt     point
	Type           string // outlier, level_shift, reversal
	Severity       string // low, medium, high
	ExpectedValue  float64
	ActualValue    float64
	Deviation      float64 // standard deviations from the mean; for a reversal, |local slope|*100
	PreviousTrend  Direction
	NewTrend       Direction
	Explanation    string
}

// DetectAnomalies flags points that deviate from the series mean by more
// than sensitivity standard deviations, classifying each as an isolated
// outlier or a sustained level shift by examining its neighbors
// (spec.md §4.9).
func (f *Forecaster) DetectAnomalies(companyID, indicator string, sensitivity float64) []Anomaly {
	f.mu.RLock()
	data := f.store.get(companyID, indicator)
	f.mu.RUnlock()

	if len(data) < 20 {
		return nil
	}

	values := make([]float64, len(data))
	for i, p := range data {
		values[i] = p.Value
	}
	meanValue := mean(values)
	var variance float64
	for _, v := range values {
		variance += (v - meanValue) * (v - meanValue)
	}
	stdDev := math.Sqrt(variance / float64(len(values)))
	if stdDev == 0 {
		return nil
	}
	threshold := sensitivity * stdDev

	var anomalies []Anomaly
	for i, p := range data {
		deviation := math.Abs(p.Value - meanValue)
		if deviation <= threshold {
			continue
		}

		anomalyType := "outlier"
		if i > 0 && i < len(data)-1 {
			prev := data[i-1].Value
			next := data[i+1].Value
			if math.Abs(p.Value-prev) > threshold && math.Abs(next-prev) < stdDev {
				anomalyType = "outlier"
			} else {
				anomalyType = "level_shift"
			}
		}

		severity := "low"
		switch {
		case deviation > 3*stdDev:
			severity = "high"
		case deviation > 2*stdDev:
			severity = "medium"
		}

		devInStdDevs := deviation / stdDev
		anomalies = append(anomalies, Anomaly{
			Indicator:     indicator,
			CompanyID:     companyID,
			DetectedAt:    p,
			Type:          anomalyType,
			Severity:      severity,
			ExpectedValue: meanValue,
			ActualValue:   p.Value,
			Deviation:     devInStdDevs,
			Explanation:   fmt.Sprintf("%s detected: value is %.1f standard deviations from mean", anomalyType, devInStdDevs),
		})
	}
	return anomalies
}

// DetectTrendChanges recomputes a local trend direction over a sliding
// window and flags reversals where the sign flips between an up-group and
// a down-group direction (spec.md §4.9).
func (f *Forecaster) DetectTrendChanges(companyID, indicator string, windowSize int) []Anomaly {
	f.mu.RLock()
	data := f.store.get(companyID, indicator)
	f.mu.RUnlock()
	return trendChangeAnomalies(data, windowSize, companyID, indicator)
}

func trendChangeAnomalies(data []point, windowSize int, companyID, indicator string) []Anomaly {
	if len(data) < windowSize*3 {
		return nil
	}

	values := make([]float64, len(data))
	for i, p := range data {
		values[i] = p.Value
	}

	var anomalies []Anomaly
	var prevDirection Direction
	havePrev := false

	for i := windowSize; i < len(data)-windowSize; i++ {
		lo := i - windowSize/2
		hi := i + windowSize/2
		if lo < 0 || hi > len(values) || hi-lo < windowSize {
			continue
		}
		localY := values[lo:hi]
		localX := make([]float64, len(localY))
		for j := range localX {
			localX[j] = float64(j)
		}

		slope, _, _ := linearRegression(localX, localY)
		direction := classifyDirection(slope, localY)

		if havePrev && direction != prevDirection && isSignificantChange(prevDirection, direction) {
			anomalies = append(anomalies, Anomaly{
				Indicator:     indicator,
				CompanyID:     companyID,
				DetectedAt:    data[i],
				Type:          "reversal",
				Severity:      "medium",
				ExpectedValue: values[i-1],
				ActualValue:   values[i],
				Deviation:     math.Abs(slope) * 100,
				PreviousTrend: prevDirection,
				NewTrend:      direction,
				Explanation:   fmt.Sprintf("trend reversal from %s to %s", prevDirection, direction),
			})
		}
		prevDirection = direction
		havePrev = true
	}
	return anomalies
}

func isSignificantChange(prev, current Direction) bool {
	return (isUp(prev) && isDown(current)) || (isDown(prev) && isUp(current))
}

// detectTrendChangeInflections adapts trendChangeAnomalies' reversals into
// the lightweight InflectionPoint shape embedded in a generated forecast.
func detectTrendChangeInflections(data []point, windowSize int) []models.InflectionPoint {
	reversals := trendChangeAnomalies(data, windowSize, "", "")
	if len(reversals) == 0 {
		return nil
	}
	out := make([]models.InflectionPoint, 0, len(reversals))
	for _, r := range reversals {
		out = append(out, models.InflectionPoint{
			Timestamp:      r.DetectedAt.Timestamp.Unix(),
			PriorSlope:     0,
			FollowingSlope: r.Deviation / 100,
		})
	}
	return out
}
