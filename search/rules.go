package search

import "strings"

// ServiceRule decides whether a document's service satisfies a service filter.
type ServiceRule struct {
	Name  string
	Match func(filter, service string) bool
}

// ServiceRules are tried in order; the first rule that matches accepts the
// document.
var ServiceRules = []ServiceRule{
	{Name: "exact", Match: ExactServiceMatch},
	{Name: "containment", Match: ContainmentServiceMatch},
	{Name: "token-overlap", Match: TokenOverlapServiceMatch},
}

// MatchService reports whether service satisfies filter and the name of the
// rule that accepted it.
func MatchService(filter, service string) (bool, string) {
	for _, rule := range ServiceRules {
		if rule.Match(filter, service) {
			return true, rule.Name
		}
	}
	return false, ""
}

// ExactServiceMatch is case-insensitive equality.
func ExactServiceMatch(filter, service string) bool {
	return strings.EqualFold(filter, service)
}

// ContainmentServiceMatch accepts when either value contains the other,
// ignoring case.
func ContainmentServiceMatch(filter, service string) bool {
	f, s := strings.ToLower(filter), strings.ToLower(service)
	return strings.Contains(s, f) || strings.Contains(f, s)
}

// TokenOverlapServiceMatch strips the generic words "api" and "service" from
// both values and accepts when the remaining word sets intersect.
func TokenOverlapServiceMatch(filter, service string) bool {
	words := make(map[string]struct{})
	for _, w := range serviceWords(filter) {
		words[w] = struct{}{}
	}
	for _, w := range serviceWords(service) {
		if _, ok := words[w]; ok {
			return true
		}
	}
	return false
}

func serviceWords(s string) []string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "api", "")
	s = strings.ReplaceAll(s, "service", "")
	return strings.Fields(s)
}
