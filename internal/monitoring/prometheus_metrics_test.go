package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func Test_RecordDegradedRun_IncrementsCounter(t *testing.T) {
	RecordDegradedRun("similarity_provider_timeout")

	v := testutil.ToFloat64(degradedRunsTotal.WithLabelValues("similarity_provider_timeout"))
	if v < 1.0 {
		t.Fatalf("expected degraded runs counter >= 1; got %f", v)
	}
}

func Test_RecordInsightEmitted_IncrementsCounter(t *testing.T) {
	RecordInsightEmitted("high", "risk")

	v := testutil.ToFloat64(insightsEmittedTotal.WithLabelValues("high", "risk"))
	if v < 1.0 {
		t.Fatalf("expected insights emitted counter >= 1; got %f", v)
	}
}

func Test_RecordSimilarityProviderCall_ObservesDuration(t *testing.T) {
	RecordSimilarityProviderCall("graphql_nearest", 10*time.Millisecond, true)

	count := testutil.CollectAndCount(similarityProviderDuration)
	if count == 0 {
		t.Fatalf("expected similarity provider duration histogram to have observations")
	}
}
