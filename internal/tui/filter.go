package tui

import (
	"strings"
	"unicode"

	"github.com/rnwolfe/triage/internal/view"
)

// matches reports whether every rune of query appears in target in order,
// ignoring case.
func matches(query, target string) bool {
	if query == "" {
		return true
	}
	q := []rune(strings.ToLower(query))
	qi := 0
	for _, r := range target {
		if unicode.ToLower(r) == q[qi] {
			qi++
			if qi == len(q) {
				return true
			}
		}
	}
	return false
}

// filterItems keeps the rows whose description matches query. Ranked order
// is preserved.
func filterItems(items []view.Item, query string) []view.Item {
	if query == "" {
		return items
	}
	out := make([]view.Item, 0, len(items))
	for _, it := range items {
		if matches(query, it.Description) {
			out = append(out, it)
		}
	}
	return out
}
