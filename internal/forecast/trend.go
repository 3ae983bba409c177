package forecast

import (
	"errors"
	"math"
	"time"
)

// ErrInsufficientData is returned by any operation that needs more history
// than a series currently has.
var ErrInsufficientData = errors.New("forecast: insufficient data")

// Direction classifies the sign and strength of a detected trend.
type Direction string

const (
	StrongUp   Direction = "strong_up"
	Up         Direction = "up"
	Stable     Direction = "stable"
	Down       Direction = "down"
	StrongDown Direction = "strong_down"
)

// Shape classifies the overall pattern of a time series, independent of
// its direction.
type Shape string

const (
	ShapeLinear        Shape = "linear"
	ShapeExponential   Shape = "exponential"
	ShapeCyclical      Shape = "cyclical"
	ShapeMeanReverting Shape = "mean_reverting"
)

// Trend is the result of DetectTrend for one indicator's history.
type Trend struct {
	Indicator     string
	CompanyID     string
	Direction     Direction
	Shape         Shape
	Slope         float64
	Intercept     float64
	RSquared      float64
	IsSignificant bool
	Confidence    float64
	PeriodStart   time.Time
	PeriodEnd     time.Time
	DataPoints    int
	Acceleration  float64
	Volatility    float64
}

const (
	strongSlopeThreshold = 0.02
	mildSlopeThreshold   = 0.005
)

// DetectTrend fits a linear regression to the indicator's history (optionally
// limited to the last lookbackDays), classifies its direction and shape, and
// reports acceleration and volatility alongside the fit (spec.md §4.9).
func (f *Forecaster) DetectTrend(companyID, indicator string, lookbackDays int) (Trend, error) {
	f.mu.RLock()
	data := f.store.get(companyID, indicator)
	f.mu.RUnlock()
	if lookbackDays > 0 && len(data) > 0 {
		cutoff := data[len(data)-1].Timestamp.AddDate(0, 0, -lookbackDays)
		filtered := make([]point, 0, len(data))
		for _, p := range data {
			if p.Timestamp.After(cutoff) {
				filtered = append(filtered, p)
			}
		}
		data = filtered
	}
	if len(data) < 5 {
		return Trend{}, ErrInsufficientData
	}

	origin := data[0].Timestamp
	xs := make([]float64, len(data))
	ys := make([]float64, len(data))
	for i, p := range data {
		xs[i] = p.Timestamp.Sub(origin).Hours() / 24
		ys[i] = p.Value
	}

	slope, intercept, rSquared := linearRegression(xs, ys)
	direction := classifyDirection(slope, ys)
	shape := classifyShape(xs, ys, slope)
	volatility := volatilityOf(ys)
	acceleration := accelerationOf(xs, ys)
	confidence := math.Min(0.95, rSquared*0.7+float64(len(data))/100*0.3)

	return Trend{
		Indicator:     indicator,
		CompanyID:     companyID,
		Direction:     direction,
		Shape:         shape,
		Slope:         slope,
		Intercept:     intercept,
		RSquared:      rSquared,
		IsSignificant: math.Abs(slope) > 0.001 && rSquared > 0.1,
		Confidence:    confidence,
		PeriodStart:   data[0].Timestamp,
		PeriodEnd:     data[len(data)-1].Timestamp,
		DataPoints:    len(data),
		Acceleration:  acceleration,
		Volatility:    volatility,
	}, nil
}

// linearRegression fits y = slope*x + intercept by ordinary least squares
// and reports the coefficient of determination.
func linearRegression(x, y []float64) (slope, intercept, rSquared float64) {
	n := float64(len(x))
	if n < 2 {
		return 0, 0, 0
	}

	meanX, meanY := mean(x), mean(y)

	var numerator, denominator float64
	for i := range x {
		dx := x[i] - meanX
		numerator += dx * (y[i] - meanY)
		denominator += dx * dx
	}
	if denominator == 0 {
		return 0, meanY, 0
	}

	slope = numerator / denominator
	intercept = meanY - slope*meanX

	var ssRes, ssTot float64
	for i := range x {
		prediction := slope*x[i] + intercept
		ssRes += (y[i] - prediction) * (y[i] - prediction)
		ssTot += (y[i] - meanY) * (y[i] - meanY)
	}
	if ssTot > 0 {
		rSquared = math.Max(0, 1-ssRes/ssTot)
	}
	return slope, intercept, rSquared
}

func classifyDirection(slope float64, values []float64) Direction {
	meanValue := mean(values)
	if meanValue == 0 {
		meanValue = 1.0
	}
	normalized := slope / math.Abs(meanValue)

	switch {
	case normalized > strongSlopeThreshold:
		return StrongUp
	case normalized > mildSlopeThreshold:
		return Up
	case normalized < -strongSlopeThreshold:
		return StrongDown
	case normalized < -mildSlopeThreshold:
		return Down
	default:
		return Stable
	}
}

// classifyShape distinguishes mean-reverting, exponential, cyclical, and
// plain linear series by comparing fits and counting mean crossings.
func classifyShape(x, y []float64, linearSlope float64) Shape {
	if len(y) < 10 {
		return ShapeLinear
	}

	meanY := mean(y)
	crossings := 0
	for i := 1; i < len(y); i++ {
		if (y[i-1]-meanY)*(y[i]-meanY) < 0 {
			crossings++
		}
	}
	if float64(crossings) > float64(len(y))*0.3 {
		return ShapeMeanReverting
	}

	allPositive := true
	for _, v := range y {
		if v <= 0 {
			allPositive = false
			break
		}
	}
	if allPositive {
		logY := make([]float64, len(y))
		for i, v := range y {
			logY[i] = math.Log(v)
		}
		_, _, rSquaredLog := linearRegression(x, logY)
		_, _, rSquaredLinear := linearRegression(x, y)
		if rSquaredLog > rSquaredLinear+0.1 {
			return ShapeExponential
		}
	}

	volatility := volatilityOf(y)
	if volatility > 0.1 && math.Abs(linearSlope) < 0.001 {
		return ShapeCyclical
	}
	return ShapeLinear
}

// volatilityOf returns the standard deviation of values normalized by their
// mean.
func volatilityOf(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	meanValue := mean(values)
	var variance float64
	for _, v := range values {
		variance += (v - meanValue) * (v - meanValue)
	}
	variance /= float64(len(values))
	stdDev := math.Sqrt(variance)
	if meanValue != 0 {
		return stdDev / math.Abs(meanValue)
	}
	return stdDev
}

// accelerationOf compares the regression slope of the first and second
// halves of the series.
func accelerationOf(x, y []float64) float64 {
	if len(y) < 10 {
		return 0
	}
	mid := len(y) / 2
	slope1, _, _ := linearRegression(x[:mid], y[:mid])
	slope2, _, _ := linearRegression(x[mid:], y[mid:])
	return slope2 - slope1
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func isUp(d Direction) bool   { return d == Up || d == StrongUp }
func isDown(d Direction) bool { return d == Down || d == StrongDown }
