package fuzzy

import (
	"strings"

	"campus-guide-be/pkg/guide/catalog"
	"campus-guide-be/pkg/guide/query"
)

// MatchBy returns the first item whose field contains the query or is
// contained in it. The scan keeps list order and does not rank: when two
// items both match, the earlier one wins.
func MatchBy[T any](q string, items []T, field func(T) string) (T, bool) {
	var zero T
	needle := query.Normalize(q)
	if needle == "" {
		return zero, false
	}
	for _, item := range items {
		value := query.Normalize(field(item))
		if value == "" {
			continue
		}
		if strings.Contains(value, needle) || strings.Contains(needle, value) {
			return item, true
		}
	}
	return zero, false
}

// Match searches each item's SearchField.
func Match[T catalog.Item](q string, items []T) (T, bool) {
	return MatchBy(q, items, func(item T) string { return item.SearchField() })
}
