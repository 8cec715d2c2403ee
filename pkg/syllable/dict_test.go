package syllable

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const dictSnippet = `;;; A few entries in the CMU pronouncing dictionary format.
FLOWERING  F L AW1 ER0 IH0 NG
JACARANDA  JH AE2 K ER0 AE1 N D AH0
PHOTOSYNTHESIS  F OW2 T OW0 S IH1 N TH AH0 S AH0 S
FIRE  F AY1 ER0
FIRE(1)  F AY1 R

not-an-entry
`

func TestParseDict(t *testing.T) {
	counts, err := ParseDict(strings.NewReader(dictSnippet))
	if err != nil {
		t.Fatalf("ParseDict returned error: %v", err)
	}

	expected := Static{
		"flowering":      3,
		"jacaranda":      4,
		"photosynthesis": 5,
		"fire":           1,
	}
	if diff := cmp.Diff(expected, counts); diff != "" {
		t.Errorf("Parsed counts mismatch (-want +got): %s", diff)
	}
}

func TestParseDict_MinimumAcrossPronunciations(t *testing.T) {
	// The shorter pronunciation wins regardless of which line comes first.
	counts, err := ParseDict(strings.NewReader(
		"FIRE(1)  F AY1 R\nFIRE  F AY1 ER0\n"))
	if err != nil {
		t.Fatalf("ParseDict returned error: %v", err)
	}

	if count, ok := counts.Count("fire"); !ok || count != 1 {
		t.Errorf("Count(fire) = %d, %t, expected 1", count, ok)
	}
}

func TestParseDict_Empty(t *testing.T) {
	counts, err := ParseDict(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseDict returned error: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("Expected no entries, got %v", counts)
	}
}
