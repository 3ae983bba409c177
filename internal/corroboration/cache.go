package corroboration

import (
	"strings"
	"time"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

// corroborationWindow is the time span an article is considered "recent
// enough" to be a meaningful corroborator (spec.md §4.3). Cache entries
// are pruned once they're twice this old.
const corroborationWindow = 72 * time.Hour

const resultFreshness = time.Hour

// cachedArticle is everything the engine keeps about an article it has
// seen, independent of whether corroboration has been computed for it yet.
type cachedArticle struct {
	ArticleID   string
	SourceID    string
	Title       string
	Content     string
	PublishedAt time.Time
	Claims      []models.ExtractedClaim
	CachedAt    time.Time
}

func firstNWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}

// jaccard is the bag-of-words overlap ratio between two already-lowercased
// word sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
