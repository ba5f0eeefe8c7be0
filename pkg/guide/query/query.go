package query

import (
	"strings"
	"unicode"
)

// Normalize lower-cases and trims a raw query. Every cache key and keyword
// test in the guide works on this form.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ContainsAny reports whether text contains any of the keywords as a
// substring. Text is expected to be normalized already.
func ContainsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Words splits text into lower-case tokens of letters and digits.
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// HasWord reports whether any token of text equals one of the words.
// "nope" matches "nope" but "not" never matches "no".
func HasWord(text string, words []string) bool {
	if len(words) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	for _, tok := range Words(text) {
		if _, ok := set[tok]; ok {
			return true
		}
	}
	return false
}

// Strip removes bucket keywords from text before fuzzy matching.
// Multi-word keywords are removed as phrases; single-word keywords remove
// every token that starts with them, so "marks" goes with "mark".
func Strip(text string, keywords []string) string {
	out := text
	var single []string
	for _, k := range keywords {
		if strings.Contains(k, " ") {
			out = strings.ReplaceAll(out, k, " ")
			continue
		}
		if k != "" {
			single = append(single, k)
		}
	}

	fields := strings.Fields(out)
	kept := fields[:0]
	for _, f := range fields {
		drop := false
		for _, k := range single {
			if strings.HasPrefix(f, k) {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}
