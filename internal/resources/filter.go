package resources

import (
	"net/url"
	"slices"
	"strings"
)

// All is the facet value that disables a categorical filter.
const All = "All"

// Filter is the explorer predicate. Query always applies; Category, Stage
// and Type apply only when Categorical is set.
type Filter struct {
	Query       string
	Category    string
	Stage       string
	Type        string
	Categorical bool
}

// FilterFromQuery reads q, category, stage, type and filters. Categorical
// filtering is on unless filters=false.
func FilterFromQuery(values url.Values) Filter {
	return Filter{
		Query:       values.Get("q"),
		Category:    values.Get("category"),
		Stage:       values.Get("stage"),
		Type:        values.Get("type"),
		Categorical: values.Get("filters") != "false",
	}
}

// Matches reports whether r passes the filter.
func (f Filter) Matches(r Resource) bool {
	if !matchesQuery(r, strings.ToLower(strings.TrimSpace(f.Query))) {
		return false
	}
	if !f.Categorical {
		return true
	}
	return matchesFacet(f.Category, r.Category) &&
		matchesFacet(f.Stage, r.Stage) &&
		matchesFacet(f.Type, (*string)(&r.Type))
}

// Apply returns the matching items in their original order.
func (f Filter) Apply(items []Resource) []Resource {
	out := make([]Resource, 0, len(items))
	for _, r := range items {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func matchesQuery(r Resource, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Description), q) {
		return true
	}
	return slices.ContainsFunc(r.Tags, func(t string) bool {
		return strings.Contains(strings.ToLower(t), q)
	})
}

func matchesFacet(want string, have *string) bool {
	if want == "" || want == All {
		return true
	}
	return have != nil && *have == want
}

// FacetsOf collects the sorted distinct category, stage and type values.
func FacetsOf(items []Resource) Facets {
	var categories, stages, types []string
	for _, r := range items {
		if r.Category != nil && *r.Category != "" {
			categories = append(categories, *r.Category)
		}
		if r.Stage != nil && *r.Stage != "" {
			stages = append(stages, *r.Stage)
		}
		if r.Type != "" {
			types = append(types, string(r.Type))
		}
	}
	return Facets{
		Categories: facet(categories),
		Stages:     facet(stages),
		Types:      facet(types),
	}
}

func facet(values []string) []string {
	slices.Sort(values)
	return append([]string{All}, slices.Compact(values)...)
}
