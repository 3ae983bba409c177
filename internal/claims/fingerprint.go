package claims

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
)

// stopwords are excluded from a claim's fingerprint so that word-order and
// filler differences between outlets don't prevent matching (spec.md §4.2).
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "was": true, "were": true,
	"are": true, "been": true, "be": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true, "could": true,
	"should": true, "may": true, "might": true, "must": true, "shall": true, "can": true,
	"that": true, "this": true, "these": true, "those": true, "it": true, "its": true,
	"to": true, "of": true, "in": true, "for": true, "on": true, "with": true, "at": true,
	"by": true, "from": true, "as": true, "into": true, "through": true, "during": true,
	"before": true, "after": true, "above": true, "below": true, "between": true,
	"and": true, "but": true, "or": true, "nor": true, "so": true, "yet": true,
}

// normalizeClaimText lowercases, collapses whitespace, strips punctuation
// (keeping word characters, spaces, percent signs and periods), and
// removes thousands-separating commas from numbers.
func normalizeClaimText(text string) string {
	normalized := strings.ToLower(text)
	normalized = strings.Join(strings.Fields(normalized), " ")
	normalized = punctuationStripPattern.ReplaceAllString(normalized, "")
	normalized = commaInNumberPattern.ReplaceAllString(normalized, "$1$2")
	return normalized
}

// fingerprint hashes the lexicographically sorted, stopword-filtered token
// set of already-normalized text, so two claims that say the same thing in
// a different word order or with filler words produce the same fingerprint.
func fingerprint(normalized string) string {
	tokens := strings.Fields(normalized)
	keyTokens := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !stopwords[t] {
			keyTokens = append(keyTokens, t)
		}
	}
	sort.Strings(keyTokens)

	sum := md5.Sum([]byte(strings.Join(keyTokens, " ")))
	return hex.EncodeToString(sum[:])
}
