package syllable

import "unicode"

// Heuristic approximates syllable counts by counting vowel groups: each
// maximal run of vowels (a, e, i, o, u, y) is one syllable, a silent final
// "e" is dropped, and every word with letters has at least one syllable.
//
// It is intentionally approximate. English spelling guarantees misses
// ("poetry" comes out one short), but for words absent from a pronouncing
// dictionary an approximate count beats dropping the word, and the caller
// opts in knowingly.
type Heuristic struct{}

func (Heuristic) Count(word string) (int, bool) {
	runes := []rune(Normalize(word))

	groups := 0
	letters := 0
	prevVowel := false
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			// Apostrophes and hyphens break a vowel group but are not
			// letters themselves.
			prevVowel = false
			continue
		}
		letters++
		if isVowel(r) {
			if !prevVowel {
				groups++
			}
			prevVowel = true
		} else {
			prevVowel = false
		}
	}

	if letters == 0 {
		return 0, false
	}
	if groups > 1 && endsInSilentE(runes) {
		groups--
	}
	if groups == 0 {
		groups = 1
	}
	return groups, true
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// endsInSilentE reports whether the final "e" of a word is the silent kind
// that closes the previous syllable ("time", "whale") rather than opening
// one of its own. A consonant-"le" ending keeps its syllable ("table").
func endsInSilentE(runes []rune) bool {
	n := len(runes)
	if n < 2 || runes[n-1] != 'e' || isVowel(runes[n-2]) {
		return false
	}
	if runes[n-2] == 'l' && n >= 3 && !isVowel(runes[n-3]) {
		return false
	}
	return true
}
