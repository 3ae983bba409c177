package reputation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

func newTestTracker() *Tracker {
	return NewTracker(logger.New("error"))
}

func TestGet_SeedsFromTierBaseReputation(t *testing.T) {
	tr := newTestTracker()

	rep := tr.Get("Reuters")
	assert.Equal(t, models.Tier1, rep.Tier)
	assert.Equal(t, 80.0, rep.Base)
	assert.Equal(t, 80.0, rep.CurrentReputation)

	unknown := tr.Get("some_random_blog_nobody_tracks")
	assert.Equal(t, models.TierUnknown, unknown.Tier)
	assert.Equal(t, 30.0, unknown.Base)
}

func TestGet_NormalizesAndReusesSameEntry(t *testing.T) {
	tr := newTestTracker()

	a := tr.Get("Daily Mirror")
	b := tr.Get("daily-mirror")
	assert.Same(t, a, b, "differently-cased/punctuated names should normalize to one entry")
}

func TestRecordConfirmation_BoostsReputationWithOfficialBonus(t *testing.T) {
	tr := newTestTracker()
	before := tr.Score("economynext")

	tr.RecordConfirmation("economynext", []string{"government", "reuters"}, false)

	after := tr.Score("economynext")
	assert.InDelta(t, before+confirmationBoost+officialConfirmBonus, after, 0.001)
}

func TestRecordConfirmation_FirstToReportAddsBonus(t *testing.T) {
	tr := newTestTracker()
	before := tr.Score("daily_mirror")

	tr.RecordConfirmation("daily_mirror", nil, true)

	after := tr.Score("daily_mirror")
	assert.InDelta(t, before+confirmationBoost+firstToReportBoost, after, 0.001)
}

func TestRecordContradiction_PenalizesMoreWhenOfficialSourceDisagrees(t *testing.T) {
	tr := newTestTracker()
	before := tr.Score("twitter")

	tr.RecordContradiction("twitter", []string{"government"})

	after := tr.Score("twitter")
	assert.InDelta(t, before-(contradictionPenalty+officialContradictBonus), after, 0.001)
}

func TestRecordCorrection_AppliesSmallPenalty(t *testing.T) {
	tr := newTestTracker()
	before := tr.Score("daily_news")

	tr.RecordCorrection("daily_news")

	after := tr.Score("daily_news")
	assert.InDelta(t, before-correctionPenalty, after, 0.001)
}

func TestApplyChange_ClampsToZeroAndHundred(t *testing.T) {
	tr := newTestTracker()
	for i := 0; i < 50; i++ {
		tr.RecordContradiction("twitter", nil)
	}
	assert.Equal(t, 0.0, tr.Score("twitter"))

	for i := 0; i < 50; i++ {
		tr.RecordConfirmation("government", nil, false)
	}
	assert.Equal(t, 100.0, tr.Score("government"))
}

func TestEvents_TruncatedAtMax(t *testing.T) {
	tr := newTestTracker()
	for i := 0; i < maxEventsPerSource+20; i++ {
		tr.RecordConfirmation("reuters", nil, false)
	}
	rep := tr.Get("reuters")
	assert.Len(t, rep.Events, maxEventsPerSource)
}

func TestTracker_ConcurrentUpdatesAreSerializedPerSource(t *testing.T) {
	tr := newTestTracker()
	const n = 200

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			tr.RecordArticle("reuters")
		}()
	}
	wg.Wait()

	rep := tr.Get("reuters")
	assert.Equal(t, n, rep.ArticleCount)
}

func TestTopSources_OrdersDescending(t *testing.T) {
	tr := newTestTracker()
	tr.Get("government")
	tr.Get("twitter")
	tr.RecordContradiction("twitter", nil)

	top := tr.TopSources(2)
	require.Len(t, top, 2)
	assert.GreaterOrEqual(t, top[0].CurrentReputation, top[1].CurrentReputation)
}
