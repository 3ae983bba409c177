package reputation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairStats_CorroborationsRaiseAffinity(t *testing.T) {
	p := NewPairStats()
	p.RecordCorroboration("reuters", "afp")
	p.RecordCorroboration("reuters", "afp")
	p.RecordConflict("reuters", "afp")

	affinity := p.SourceAffinity("reuters")
	require.Len(t, affinity, 1)
	assert.InDelta(t, 2.0/3.0, affinity[0].Affinity(), 1e-9)
}

func TestPairStats_OrderIndependentKey(t *testing.T) {
	p := NewPairStats()
	p.RecordCorroboration("afp", "reuters")
	p.RecordCorroboration("reuters", "afp")

	affinity := p.SourceAffinity("afp")
	require.Len(t, affinity, 1)
	assert.Equal(t, 2, affinity[0].Corroborations)
}

func TestPairStats_SelfPairIsIgnored(t *testing.T) {
	p := NewPairStats()
	p.RecordCorroboration("reuters", "reuters")
	assert.Empty(t, p.SourceAffinity("reuters"))
}

func TestPairStats_UnseenSourceHasNeutralAffinity(t *testing.T) {
	counts := PairCounts{}
	assert.Equal(t, 0.5, counts.Affinity())
}

func TestPairStats_RanksMostAgreeingPairFirst(t *testing.T) {
	p := NewPairStats()
	p.RecordCorroboration("reuters", "afp")
	p.RecordConflict("reuters", "bbc")

	affinity := p.SourceAffinity("reuters")
	require.Len(t, affinity, 2)
	assert.Greater(t, affinity[0].Affinity(), affinity[1].Affinity())
}
