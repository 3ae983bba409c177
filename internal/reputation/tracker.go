package reputation

import (
	"hash/fnv"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

// Reputation update weights (spec.md §4.1, grounded on the original
// cross-validation engine's constants).
const (
	confirmationBoost   = 2.0
	contradictionPenalty = 5.0
	correctionPenalty   = 1.0
	firstToReportBoost  = 1.5
	officialConfirmBonus = 0.5
	officialContradictBonus = 2.0

	decayHalfLifeDays = 90.0
	maxEventsPerSource = 100
)

const stripeCount = 64

// Tracker maintains dynamic reputation scores for news sources. Updates for
// a given source are serialized by a lock striped on the source id's hash
// (spec.md §5); different sources update concurrently without contention.
type Tracker struct {
	stripes [stripeCount]sync.Mutex

	mu   sync.RWMutex // guards creation of new map entries only
	data map[string]*models.Reputation

	logger logger.Logger
}

// NewTracker constructs an empty reputation tracker.
func NewTracker(log logger.Logger) *Tracker {
	return &Tracker{
		data:   make(map[string]*models.Reputation),
		logger: log,
	}
}

func (t *Tracker) stripeFor(sourceID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sourceID))
	return &t.stripes[h.Sum32()%stripeCount]
}

// Get returns the reputation for a source, creating a fresh entry seeded
// from its tier's base reputation if this is the first time it's seen.
func (t *Tracker) Get(sourceName string) *models.Reputation {
	sourceID := models.NormalizeSourceID(sourceName)

	t.mu.RLock()
	rep, ok := t.data[sourceID]
	t.mu.RUnlock()
	if ok {
		return rep
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if rep, ok := t.data[sourceID]; ok {
		return rep
	}

	info := lookupSource(sourceID)
	base := tierBaseReputation[info.tier]
	rep = &models.Reputation{
		SourceID:          sourceID,
		Tier:              info.tier,
		Category:          info.category,
		Base:              base,
		CurrentReputation: base,
	}
	t.data[sourceID] = rep
	return rep
}

// Score returns just the numeric current reputation, 0-100.
func (t *Tracker) Score(sourceName string) float64 {
	return t.Get(sourceName).CurrentReputation
}

// Tier resolves a source's reputation tier without mutating tracker state.
func (t *Tracker) Tier(sourceName string) models.SourceTier {
	return lookupSource(models.NormalizeSourceID(sourceName)).tier
}

// RecordArticle marks that an article was ingested from this source.
func (t *Tracker) RecordArticle(sourceName string) {
	rep := t.Get(sourceName)
	lock := t.stripeFor(rep.SourceID)
	lock.Lock()
	defer lock.Unlock()
	rep.ArticleCount++
}

// RecordConfirmation records that a source's report was corroborated by
// others, boosting its reputation. Confirmations from official-tier
// sources and a first-to-report bonus both add on top of the base boost.
func (t *Tracker) RecordConfirmation(sourceName string, confirmingSources []string, wasFirstToReport bool) {
	rep := t.Get(sourceName)

	officialConfirmations := 0
	for _, s := range confirmingSources {
		if t.Tier(s) == models.TierOfficial {
			officialConfirmations++
		}
	}

	boost := confirmationBoost + float64(officialConfirmations)*officialConfirmBonus
	if wasFirstToReport {
		boost += firstToReportBoost
	}

	lock := t.stripeFor(rep.SourceID)
	lock.Lock()
	defer lock.Unlock()

	rep.ConfirmedCount++
	if wasFirstToReport {
		rep.FirstToReportCount++
	}
	t.applyChangeLocked(rep, boost)
	t.recordEventLocked(rep, models.EventConfirmation, boost)
}

// RecordContradiction records that a source's report was contradicted,
// penalizing its reputation; contradictions from official-tier sources
// carry an additional penalty.
func (t *Tracker) RecordContradiction(sourceName string, contradictingSources []string) {
	rep := t.Get(sourceName)

	officialContradictions := 0
	for _, s := range contradictingSources {
		if t.Tier(s) == models.TierOfficial {
			officialContradictions++
		}
	}

	penalty := contradictionPenalty + float64(officialContradictions)*officialContradictBonus

	lock := t.stripeFor(rep.SourceID)
	lock.Lock()
	defer lock.Unlock()

	rep.ContradictedCount++
	t.applyChangeLocked(rep, -penalty)
	t.recordEventLocked(rep, models.EventContradiction, -penalty)
}

// RecordCorrection records a source's self-issued correction: a small
// penalty, since it indicates an error was published, however briefly.
func (t *Tracker) RecordCorrection(sourceName string) {
	rep := t.Get(sourceName)

	lock := t.stripeFor(rep.SourceID)
	lock.Lock()
	defer lock.Unlock()

	rep.CorrectionCount++
	t.applyChangeLocked(rep, -correctionPenalty)
	t.recordEventLocked(rep, models.EventCorrection, -correctionPenalty)
}

// applyChangeLocked must be called with the source's stripe lock held.
func (t *Tracker) applyChangeLocked(rep *models.Reputation, change float64) {
	next := rep.CurrentReputation + change
	if next < 0 {
		next = 0
	}
	if next > 100 {
		next = 100
	}
	rep.CurrentReputation = next
}

func (t *Tracker) recordEventLocked(rep *models.Reputation, kind models.ReputationEventKind, delta float64) {
	rep.Events = append(rep.Events, models.ReputationEvent{
		Kind:      kind,
		Delta:     delta,
		Timestamp: time.Now(),
	})
	if len(rep.Events) > maxEventsPerSource {
		rep.Events = rep.Events[len(rep.Events)-maxEventsPerSource:]
	}
}

// Recalculate recomputes CurrentReputation from the full event history with
// exponential time decay (half-life decayHalfLifeDays), rather than relying
// on the running total accumulated by the Record* methods. This gives a
// periodic sweep a way to gently pull a source's score back toward "recent
// performance only" even if it hasn't had a new event in a while.
func (t *Tracker) Recalculate(sourceName string) float64 {
	rep := t.Get(sourceName)
	lock := t.stripeFor(rep.SourceID)
	lock.Lock()
	defer lock.Unlock()

	if len(rep.Events) == 0 {
		return rep.CurrentReputation
	}

	now := time.Now()
	var decayedTotal, weightTotal float64
	for _, ev := range rep.Events {
		ageDays := now.Sub(ev.Timestamp).Hours() / 24
		decayWeight := math.Exp(-math.Ln2 * ageDays / decayHalfLifeDays)
		decayedTotal += ev.Delta * decayWeight
		weightTotal += decayWeight
	}
	if weightTotal == 0 {
		return rep.CurrentReputation
	}

	avgChange := decayedTotal / weightTotal
	next := rep.Base + avgChange*5 // scale factor, matches original engine
	if next < 0 {
		next = 0
	}
	if next > 100 {
		next = 100
	}
	rep.CurrentReputation = next
	return next
}

// TopSources returns up to limit reputations ordered by current score,
// highest first. Intended for operator-facing summaries, not the hot path.
func (t *Tracker) TopSources(limit int) []models.Reputation {
	t.mu.RLock()
	out := make([]models.Reputation, 0, len(t.data))
	for _, rep := range t.data {
		out = append(out, *rep)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CurrentReputation > out[j].CurrentReputation
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
