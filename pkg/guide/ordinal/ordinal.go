package ordinal

import (
	"errors"
	"fmt"
	"strings"
)

// Ordinal is a list position. Non-negative values count from the front
// (0 is first), negative values count from the back (-1 is last).
type Ordinal int

// Rule maps a set of phrases to one ordinal.
type Rule struct {
	Phrases []string `yaml:"phrases"`
	Value   Ordinal  `yaml:"value"`
}

// Table is checked top to bottom and the first rule with a phrase found in
// the text wins. Relative phrases ("second last") must sit above the bare
// "last" rule or they never fire.
type Table []Rule

var ErrEmptyRule = errors.New("ordinal rule has no phrases")

// DefaultTable understands positions up to fifth and down to third-last.
func DefaultTable() Table {
	return Table{
		{Phrases: []string{"last before", "second last", "2nd last"}, Value: -2},
		{Phrases: []string{"third last", "3rd last"}, Value: -3},
		{Phrases: []string{"last"}, Value: -1},
		{Phrases: []string{"first", "1st"}, Value: 0},
		{Phrases: []string{"second", "2nd"}, Value: 1},
		{Phrases: []string{"third", "3rd"}, Value: 2},
		{Phrases: []string{"fourth", "4th"}, Value: 3},
		{Phrases: []string{"fifth", "5th"}, Value: 4},
	}
}

func (t Table) Validate() error {
	for i, r := range t {
		if len(r.Phrases) == 0 {
			return fmt.Errorf("rule %d: %w", i, ErrEmptyRule)
		}
		for _, p := range r.Phrases {
			if strings.TrimSpace(p) == "" {
				return fmt.Errorf("rule %d: %w", i, ErrEmptyRule)
			}
		}
	}
	return nil
}

// Parse finds the ordinal named in text, if any.
func (t Table) Parse(text string) (Ordinal, bool) {
	lower := strings.ToLower(text)
	for _, r := range t {
		for _, p := range r.Phrases {
			if strings.Contains(lower, strings.ToLower(p)) {
				return r.Value, true
			}
		}
	}
	return 0, false
}

var defaultTable = DefaultTable()

// Parse uses the default table.
func Parse(text string) (Ordinal, bool) {
	return defaultTable.Parse(text)
}

// Resolve picks the element at the ordinal position. It never panics:
// positions outside the list report false.
func Resolve[T any](list []T, o Ordinal) (T, bool) {
	var zero T
	idx := int(o)
	if idx < 0 {
		idx = len(list) + idx
	}
	if idx < 0 || idx >= len(list) {
		return zero, false
	}
	return list[idx], true
}
