// Package syllable provides syllable counting for candidate words.
//
// The engine treats words as opaque tokens; everything lexical lives here.
// A Counter answers "how many syllables does this word have", and may
// decline: words a counter does not know are simply not usable, they are
// not an error.
package syllable

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Counter reports the syllable count of a word. The second return is false
// for words the counter does not know.
type Counter interface {
	Count(word string) (int, bool)
}

// Static is a fixed word-to-count table. The zero value knows no words.
type Static map[string]int

func (s Static) Count(word string) (int, bool) {
	count, ok := s[word]
	return count, ok
}

// Chain consults each counter in order and returns the first answer. A word
// is unknown only if every counter declines it.
type Chain []Counter

func (c Chain) Count(word string) (int, bool) {
	for _, counter := range c {
		if count, ok := counter.Count(word); ok {
			return count, ok
		}
	}
	return 0, false
}

// Normalize maps a word to the canonical spelling used as a lookup key:
// Unicode NFC, lowercased. Counters expect normalized input; callers that
// accept words from outside normalize them once at the boundary.
func Normalize(word string) string {
	return strings.ToLower(norm.NFC.String(word))
}
