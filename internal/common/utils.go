package common

import "strings"

// HasAny reports whether s contains any of the given substrings. Callers
// handle case folding; region keyword matching lowercases both sides first.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
