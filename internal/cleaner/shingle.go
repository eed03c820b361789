package cleaner

import "strings"

// Shingles splits text into whitespace-separated words and returns the set
// of space-joined k-word windows. Texts with fewer than k words yield the
// single-element set of the whole joined text; empty text yields the empty
// set.
func Shingles(text string, k int) map[string]struct{} {
	words := strings.Fields(text)
	if len(words) == 0 {
		return map[string]struct{}{}
	}
	if len(words) < k {
		return map[string]struct{}{strings.Join(words, " "): {}}
	}

	set := make(map[string]struct{}, len(words)-k+1)
	for i := 0; i+k <= len(words); i++ {
		set[strings.Join(words[i:i+k], " ")] = struct{}{}
	}
	return set
}
