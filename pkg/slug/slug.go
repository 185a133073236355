// Package slug derives URL-safe identifiers from titles.
package slug

import (
	"regexp"
	"strings"
)

var (
	quotes    = strings.NewReplacer(`"`, "", "'", "")
	separator = regexp.MustCompile(`[^a-z0-9]+`)
)

// Make lowercases s, drops quotes, collapses every other run of non
// alphanumerics into one hyphen, and trims hyphens from both ends.
func Make(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = quotes.Replace(s)
	s = separator.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Valid reports whether s is already in normalized form.
func Valid(s string) bool {
	return s != "" && Make(s) == s
}
