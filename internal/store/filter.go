package store

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/grindlemire/go-lucene"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

// supportedFilterFields are the insight fields ListActive's filter
// expressions may reference. Anything else is rejected at parse time.
var supportedFilterFields = map[string]bool{
	"company_id": true,
	"kind":       true,
	"category":   true,
	"severity":   true,
	"status":     true,
}

var termPattern = regexp.MustCompile(`(?i)(\w+):"?([a-zA-Z0-9_\-\.]+)"?`)

// ActiveFilter is a parsed, field:value representation of a ListActive
// filter expression written in Lucene-style syntax (e.g.
// "kind:risk AND severity:high"). Terms are ANDed together; OR/NOT are
// accepted by the syntax validator but not yet supported by the matcher,
// matching the subset of Lucene the insight store's filter surface
// actually needs today.
type ActiveFilter struct {
	Terms map[string]string
}

// ParseActiveFilter validates expr against full Lucene grammar (rejecting
// malformed or dangerous queries the same way the teacher's query validator
// does) and then extracts the field:value terms it recognizes.
func ParseActiveFilter(expr string) (ActiveFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return ActiveFilter{}, nil
	}

	if _, err := lucene.Parse(expr); err != nil {
		return ActiveFilter{}, fmt.Errorf("invalid filter syntax: %w", err)
	}

	matches := termPattern.FindAllStringSubmatch(expr, -1)
	if len(matches) == 0 {
		return ActiveFilter{}, fmt.Errorf("filter %q contains no recognized field:value terms", expr)
	}

	terms := make(map[string]string, len(matches))
	for _, m := range matches {
		field := strings.ToLower(m[1])
		if !supportedFilterFields[field] {
			return ActiveFilter{}, fmt.Errorf("unsupported filter field %q", field)
		}
		terms[field] = m[2]
	}
	return ActiveFilter{Terms: terms}, nil
}

// matches reports whether insight satisfies every term in the filter.
func (f ActiveFilter) matches(insight models.Insight) bool {
	for field, value := range f.Terms {
		var actual string
		switch field {
		case "company_id":
			actual = insight.CompanyID
		case "kind":
			actual = string(insight.Kind)
		case "category":
			actual = string(insight.Category)
		case "severity":
			actual = string(insight.Scores.Severity)
		case "status":
			actual = string(insight.Status)
		}
		if !strings.EqualFold(actual, value) {
			return false
		}
	}
	return true
}
