package search

import (
	"regexp"
	"strings"

	"github.com/poiesic/metadex/core"
)

// FilterKey names a metadata field a query can be narrowed by.
type FilterKey string

const (
	FilterService FilterKey = "service"
	FilterVersion FilterKey = "version"
	FilterDocType FilterKey = "doc_type"
)

// filterKeys is the order used when rendering a filter set.
var filterKeys = []FilterKey{FilterService, FilterVersion, FilterDocType}

// Filters is a set of metadata constraints derived from a query.
// An empty set means unfiltered search.
type Filters map[FilterKey]string

// Empty reports whether no filter is present.
func (f Filters) Empty() bool {
	return len(f) == 0
}

// String renders the set as "{service: X, version: Y}" in a fixed key order.
func (f Filters) String() string {
	parts := make([]string, 0, len(f))
	for _, key := range filterKeys {
		if v, ok := f[key]; ok {
			parts = append(parts, string(key)+": "+v)
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ServiceKeyword maps query keywords to a canonical service name.
type ServiceKeyword struct {
	Keywords []string
	Service  string
}

// ServiceKeywords is scanned in order; the first entry with a keyword found in
// the query sets the service filter.
var ServiceKeywords = []ServiceKeyword{
	{Keywords: []string{"authentication", "auth"}, Service: "Authentication API"},
	{Keywords: []string{"storage"}, Service: "Storage Service"},
}

var (
	queryVersionPattern = regexp.MustCompile(`v(?:ersion)?\s*([\d.]+)`)

	troubleshootingKeywords = []string{"troubleshoot", "error", "fix"}
	guideKeywords           = []string{"guide", "how to"}
)

// BuildFilters derives a filter set from a free-text query. Matching is
// case-insensitive and the function has no side effects.
func BuildFilters(query string) Filters {
	q := strings.ToLower(query)
	filters := Filters{}

	if m := queryVersionPattern.FindStringSubmatch(q); m != nil {
		filters[FilterVersion] = m[1]
	}

	for _, entry := range ServiceKeywords {
		if containsAny(q, entry.Keywords) {
			filters[FilterService] = entry.Service
			break
		}
	}

	switch {
	case containsAny(q, troubleshootingKeywords):
		filters[FilterDocType] = string(core.DocTypeTroubleshooting)
	case containsAny(q, guideKeywords):
		filters[FilterDocType] = string(core.DocTypeGuide)
	}

	return filters
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
