// Package lexicon holds the keyword tables the triage scorers read.
// Every table is package-level, built at init and never written afterwards,
// so concurrent readers need no locking.
package lexicon

import "strings"

// Group is a named list of phrases.
type Group struct {
	Name    string
	Phrases []string
}

// Match returns the distinct phrases of list found in lower, in list order.
// lower must already be lower-cased.
func Match(lower string, list []string) []string {
	if lower == "" {
		return nil
	}
	var out []string
	for _, p := range list {
		if strings.Contains(lower, p) {
			out = append(out, p)
		}
	}
	return out
}

// ContainsAny reports whether lower contains at least one phrase of list.
func ContainsAny(lower string, list []string) bool {
	for _, p := range list {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// MatchGroups returns, for each group with at least one hit, the phrases matched.
// The returned names preserve group order.
func MatchGroups(lower string, groups []Group) (names []string, hits map[string][]string) {
	hits = make(map[string][]string)
	for _, g := range groups {
		if m := Match(lower, g.Phrases); len(m) > 0 {
			names = append(names, g.Name)
			hits[g.Name] = m
		}
	}
	return names, hits
}

// Normalize lower-cases text and folds typographic apostrophes so
// "can’t" and "can't" hit the same phrases.
func Normalize(text string) string {
	return strings.ReplaceAll(strings.ToLower(text), "’", "'")
}
