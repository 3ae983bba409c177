package forecast

import (
	"math"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

const backtestSize = 10

// GenerateForecast extrapolates an indicator's trend (and, when available
// and strong enough, its seasonal pattern) out to horizonDays, widening the
// confidence interval with the square root of the day offset, and reports
// backtested accuracy over the last 10 historical points (spec.md §4.9).
func (f *Forecaster) GenerateForecast(companyID, indicator string, horizonDays int, includeSeasonality bool, confidenceLevel float64) (models.IndicatorForecast, error) {
	f.mu.RLock()
	data := f.store.get(companyID, indicator)
	f.mu.RUnlock()

	if len(data) < 10 {
		return models.IndicatorForecast{}, ErrInsufficientData
	}

	trend, err := f.DetectTrend(companyID, indicator, 0)
	if err != nil {
		return models.IndicatorForecast{}, err
	}

	var seasonal *SeasonalPattern
	if includeSeasonality && len(data) >= 14 {
		if pattern, err := f.DetectSeasonality(companyID, indicator, PeriodWeekly); err == nil {
			seasonal = &pattern
		}
	}

	origin := data[0].Timestamp
	values := make([]float64, len(data))
	for i, p := range data {
		values[i] = p.Value
	}

	recent := values
	if len(recent) > 30 {
		recent = recent[len(recent)-30:]
	}
	historicalError := volatilityOf(recent)

	zScore := 1.96
	if confidenceLevel >= 0.99 {
		zScore = 2.58
	}

	lastDate := data[len(data)-1].Timestamp
	points := make([]models.ForecastPoint, 0, horizonDays)
	for day := 1; day <= horizonDays; day++ {
		forecastDate := lastDate.AddDate(0, 0, day)
		daysSinceOrigin := forecastDate.Sub(origin).Hours() / 24
		trendValue := trend.Intercept + trend.Slope*daysSinceOrigin

		seasonalFactor := 1.0
		if seasonal != nil && seasonal.Strength > 0.1 {
			idx := periodIndex(seasonal.Period, forecastDate)
			if factor, ok := seasonal.Factors[idx]; ok {
				seasonalFactor = factor
			}
		}

		predicted := trendValue * seasonalFactor
		intervalWidth := historicalError * zScore * math.Sqrt(float64(day))

		points = append(points, models.ForecastPoint{
			DaysAhead: day,
			Value:     predicted,
			Low:       predicted - intervalWidth*predicted,
			High:      predicted + intervalWidth*predicted,
		})
	}

	mape, rmse := backtest(data, trend)

	method := models.ForecastLinearRegression
	var modelSeasonal *models.SeasonalPattern
	if seasonal != nil {
		method = models.ForecastMovingAverage
		modelSeasonal = &models.SeasonalPattern{
			PeriodDays: seasonal.PeriodDays,
			Amplitude:  seasonal.PeakFactor - 1.0,
		}
	}

	inflections := detectTrendChangeInflections(data, 14)

	confidence := trend.Confidence
	degraded := len(data) < 30
	var degradedReason string
	if degraded {
		degradedReason = "fewer than 30 historical points; forecast confidence reduced"
	}

	return models.IndicatorForecast{
		IndicatorID:     indicator,
		Method:          method,
		HistoryPoints:   len(data),
		Points:          points,
		Seasonal:        modelSeasonal,
		Inflections:     inflections,
		ModelConfidence: confidence,
		BacktestMAPE:    mape,
		BacktestRMSE:    rmse,
		Degraded:        degraded,
		DegradedReason:  degradedReason,
	}, nil
}

// backtest replays the last 10 historical points against the fitted trend
// to estimate MAPE/RMSE.
func backtest(data []point, trend Trend) (mape, rmse float64) {
	if len(data) < backtestSize+10 {
		return 0.1, 0.1
	}

	origin := data[0].Timestamp
	testData := data[len(data)-backtestSize:]

	var errSum, squaredErrSum float64
	for _, p := range testData {
		daysAhead := p.Timestamp.Sub(origin).Hours() / 24
		predicted := trend.Intercept + trend.Slope*daysAhead
		if p.Value != 0 {
			errSum += math.Abs(p.Value-predicted) / math.Abs(p.Value)
		}
		squaredErrSum += (p.Value - predicted) * (p.Value - predicted)
	}

	mape = errSum / float64(len(testData))
	rmse = math.Sqrt(squaredErrSum / float64(len(testData)))
	return mape, rmse
}
