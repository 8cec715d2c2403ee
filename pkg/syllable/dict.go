package syllable

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseDict reads a pronouncing dictionary in the CMUdict format: one entry
// per line, the word followed by its phonemes, with alternate pronunciations
// written as WORD(1), WORD(2) and so on. A phoneme carrying a stress digit
// (0, 1 or 2) is a vowel sound, so the syllable count of a pronunciation is
// the number of stressed phonemes.
//
// When a word has several pronunciations the smallest count wins; for
// fitting words into a line the tighter reading is the usable one. Comment
// lines (";;;") and lines that do not look like entries are skipped.
func ParseDict(r io.Reader) (Static, error) {
	counts := make(Static)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, ";;;") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		head := fields[0]
		if i := strings.IndexByte(head, '('); i > 0 && strings.HasSuffix(head, ")") {
			head = head[:i]
		}
		word := Normalize(head)

		syllables := 0
		for _, phone := range fields[1:] {
			if isStressed(phone) {
				syllables++
			}
		}

		if prev, ok := counts[word]; !ok || syllables < prev {
			counts[word] = syllables
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}

	return counts, nil
}

func isStressed(phone string) bool {
	if phone == "" {
		return false
	}
	last := phone[len(phone)-1]
	return last >= '0' && last <= '2'
}
