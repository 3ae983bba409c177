// Package similarity defines the optional external near-duplicate search
// boundary the corroboration engine consults before falling back to its
// own in-process cache scan (spec.md §4.3 step 3, §6).
package similarity

import "context"

// Duplicate is one candidate article a Provider believes is similar to the
// query article, with the score it assigned.
type Duplicate struct {
	DuplicateID     string
	SimilarityScore float64
}

// Provider searches for near-duplicate articles already indexed elsewhere.
// A Provider is optional: the corroboration engine treats any error,
// including one surfaced because no Provider was configured, the same way
// — it falls back to its local cache scan (spec.md §4.3 step 3).
type Provider interface {
	FindDuplicates(ctx context.Context, articleID, title, content string, threshold float64) ([]Duplicate, error)
	// Index makes an article available for future FindDuplicates calls.
	// Implementations that cannot index (e.g. disabled) should no-op.
	Index(ctx context.Context, articleID, title, content, sourceID string) error
}
