package correlation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLinear(a *Analyzer, company string, n int) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		a.AddDataPoint(company, base.AddDate(0, 0, i), map[string]float64{
			"OPS_A": float64(i),
			"OPS_B": float64(i) * 2,
			"OPS_C": float64(n - i),
		})
	}
}

func TestCalculateMatrix_PerfectlyCorrelatedSeriesYieldStrongPositive(t *testing.T) {
	a := NewAnalyzer()
	seedLinear(a, "acme", 20)

	matrix, err := a.CalculateMatrix("acme", nil)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, matrix.Matrix["OPS_A"]["OPS_B"], 1e-9)
	assert.InDelta(t, 1.0, matrix.Matrix["OPS_A"]["OPS_A"], 1e-9)
	assert.InDelta(t, matrix.Matrix["OPS_A"]["OPS_B"], matrix.Matrix["OPS_B"]["OPS_A"], 1e-9)
}

func TestCalculateMatrix_InverseSeriesYieldStrongNegative(t *testing.T) {
	a := NewAnalyzer()
	seedLinear(a, "acme", 20)

	matrix, err := a.CalculateMatrix("acme", nil)
	require.NoError(t, err)

	assert.Less(t, matrix.Matrix["OPS_A"]["OPS_C"], -0.9)
}

func TestCalculateMatrix_InsufficientDataReturnsError(t *testing.T) {
	a := NewAnalyzer()
	_, err := a.CalculateMatrix("unknown", nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestDetectLeadLag_ShiftedSeriesFindsCorrectLag(t *testing.T) {
	a := NewAnalyzer()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 60
	shift := 5
	for i := 0; i < n; i++ {
		valA := float64(i % 10)
		var valB float64
		if i >= shift {
			valB = float64((i - shift) % 10)
		}
		a.AddDataPoint("acme", base.AddDate(0, 0, i), map[string]float64{"OPS_A": valA, "OPS_B": valB})
	}

	rel, err := a.DetectLeadLag("acme", "OPS_A", "OPS_B", 10)
	require.NoError(t, err)
	assert.Equal(t, "OPS_A", rel.IndicatorA)
	assert.Equal(t, shift, rel.LagDays)
}

func TestInferCausality_UnrelatedSeriesYieldsNoCausation(t *testing.T) {
	a := NewAnalyzer()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		a.AddDataPoint("acme", base.AddDate(0, 0, i), map[string]float64{"OPS_A": 50, "OPS_B": 50})
	}

	link, err := a.InferCausality("acme", "OPS_A", "OPS_B", 5)
	require.NoError(t, err)
	assert.Equal(t, "low", string(link.Confidence))
}

func TestClusterIndicators_MergesMostCorrelatedFirst(t *testing.T) {
	a := NewAnalyzer()
	seedLinear(a, "acme", 20)

	clusters, err := a.ClusterIndicators("acme", 2)
	require.NoError(t, err)
	assert.Len(t, clusters, 2)
}

func TestGetTopCorrelations_SortedByAbsoluteStrength(t *testing.T) {
	a := NewAnalyzer()
	seedLinear(a, "acme", 20)

	pairs, err := a.GetTopCorrelations("acme", 2, false)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	for i := 1; i < len(pairs); i++ {
		assert.GreaterOrEqual(t, absFloat(pairs[i-1].Coefficient), absFloat(pairs[i].Coefficient))
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
