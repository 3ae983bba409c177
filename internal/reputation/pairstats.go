package reputation

import (
	"sort"
	"sync"
)

// maxTrackedPairs bounds the pair table so an unbounded stream of novel
// source pairs can't grow it without limit; least-recently-updated pairs
// are evicted first (spec.md §5's supplemented validation-network stats,
// grounded on cross_validation/validation_network.py's per-source
// corroboration/conflict bookkeeping).
const maxTrackedPairs = 10_000

// PairCounts is how often two sources agreed or disagreed on a claim.
type PairCounts struct {
	SourceA        string
	SourceB        string
	Corroborations int
	Conflicts      int
	LastUpdated    int64 // monotonic update counter value, used only for LRU eviction ordering
}

// Affinity is a source pair's agreement rate, in [0,1]; 1 means the pair
// has only ever corroborated each other, 0 means only ever conflicted.
func (p PairCounts) Affinity() float64 {
	total := p.Corroborations + p.Conflicts
	if total == 0 {
		return 0.5
	}
	return float64(p.Corroborations) / float64(total)
}

// pairKey orders the two source ids so (a,b) and (b,a) hit the same entry.
func pairKey(a, b string) (string, string) {
	if a > b {
		a, b = b, a
	}
	return a, b
}

// PairStats is an informational, bounded source-pair corroboration/conflict
// counter. It is consulted only by SourceAffinity; it never feeds trust
// scoring and carries no invariant §4.4 depends on.
type PairStats struct {
	mu    sync.Mutex
	seq   int64
	pairs map[[2]string]*PairCounts
}

// NewPairStats constructs an empty pair-statistics tracker.
func NewPairStats() *PairStats {
	return &PairStats{pairs: make(map[[2]string]*PairCounts)}
}

func (p *PairStats) get(a, b string) *PairCounts {
	ka, kb := pairKey(a, b)
	key := [2]string{ka, kb}
	counts, ok := p.pairs[key]
	if !ok {
		if len(p.pairs) >= maxTrackedPairs {
			p.evictOldestLocked()
		}
		counts = &PairCounts{SourceA: ka, SourceB: kb}
		p.pairs[key] = counts
	}
	return counts
}

func (p *PairStats) evictOldestLocked() {
	var oldestKey [2]string
	var oldestTime int64 = 1<<63 - 1
	for k, v := range p.pairs {
		if v.LastUpdated < oldestTime {
			oldestTime = v.LastUpdated
			oldestKey = k
		}
	}
	delete(p.pairs, oldestKey)
}

// RecordCorroboration bumps the corroboration count between two sources
// that independently reported the same claim.
func (p *PairStats) RecordCorroboration(sourceA, sourceB string) {
	if sourceA == sourceB {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	counts := p.get(sourceA, sourceB)
	counts.Corroborations++
	counts.LastUpdated = p.seq
}

// RecordConflict bumps the conflict count between two sources that
// reported contradictory versions of the same claim.
func (p *PairStats) RecordConflict(sourceA, sourceB string) {
	if sourceA == sourceB {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	counts := p.get(sourceA, sourceB)
	counts.Conflicts++
	counts.LastUpdated = p.seq
}

// SourceAffinity returns every tracked pair involving sourceID, most
// corroborating-first, for an informational "who does this source tend to
// agree with" query.
func (p *PairStats) SourceAffinity(sourceID string) []PairCounts {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []PairCounts
	for _, counts := range p.pairs {
		if counts.SourceA == sourceID || counts.SourceB == sourceID {
			out = append(out, *counts)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Affinity() > out[j].Affinity() })
	return out
}
