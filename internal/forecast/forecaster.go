package forecast

import (
	"sync"
	"time"
)

// Forecaster is the trend forecasting engine for one deployment: it keeps
// per-(company,indicator) history and derives trends, seasonality,
// forecasts, and anomalies from it.
type Forecaster struct {
	mu    sync.RWMutex
	store *store
}

// NewForecaster returns an empty Forecaster ready to accept data points.
func NewForecaster() *Forecaster {
	return &Forecaster{store: newStore()}
}

// AddDataPoint records a single observed value for a company's indicator.
func (f *Forecaster) AddDataPoint(companyID, indicator string, timestamp time.Time, value float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store.add(companyID, indicator, timestamp, value)
}

// AddHistory records a batch of historical observations.
func (f *Forecaster) AddHistory(companyID, indicator string, observations map[time.Time]float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ts, v := range observations {
		f.store.add(companyID, indicator, ts, v)
	}
}

// DataSummary reports, per tracked indicator, how much history a company
// has accumulated.
type DataSummary struct {
	CompanyID  string
	Indicators map[string]indicatorSummary
}

func (f *Forecaster) GetDataSummary(companyID string) DataSummary {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return DataSummary{CompanyID: companyID, Indicators: f.store.dataSummary(companyID)}
}
