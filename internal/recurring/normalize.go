// Package recurring detects recurring financial commitments in a window of
// transactions by grouping charges under normalized merchant keys and
// analyzing their amount and interval regularity.
package recurring

import (
	"strings"
	"unicode"
)

// NormalizeKey canonicalizes a free-text transaction label into a stable
// grouping key: case-folded, digits and punctuation stripped, whitespace
// runs collapsed. The same label always yields the same key. An empty or
// letter-free label yields the empty key, which callers must skip.
func NormalizeKey(label string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, label)

	return strings.Join(strings.Fields(mapped), " ")
}
