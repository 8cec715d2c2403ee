package syllable

import "testing"

func TestStatic(t *testing.T) {
	counter := Static{"flowering": 3, "jacaranda": 4}

	if count, ok := counter.Count("flowering"); !ok || count != 3 {
		t.Errorf("Count(flowering) = %d, %t", count, ok)
	}
	if _, ok := counter.Count("unknown"); ok {
		t.Error("Expected unknown word to miss")
	}

	var zero Static
	if _, ok := zero.Count("flowering"); ok {
		t.Error("Expected zero-value Static to know nothing")
	}
}

func TestChain(t *testing.T) {
	t.Run("FirstAnswerWins", func(t *testing.T) {
		chain := Chain{
			Static{"time": 1},
			Static{"time": 9, "cabinet": 3},
		}

		if count, ok := chain.Count("time"); !ok || count != 1 {
			t.Errorf("Count(time) = %d, %t, expected the first counter's answer", count, ok)
		}
		if count, ok := chain.Count("cabinet"); !ok || count != 3 {
			t.Errorf("Count(cabinet) = %d, %t", count, ok)
		}
	})

	t.Run("FallsThroughToHeuristic", func(t *testing.T) {
		chain := Chain{Static{"time": 1}, Heuristic{}}

		if count, ok := chain.Count("jacaranda"); !ok || count != 4 {
			t.Errorf("Count(jacaranda) = %d, %t", count, ok)
		}
	})

	t.Run("AllDecline", func(t *testing.T) {
		if _, ok := (Chain{Static{}}).Count("word"); ok {
			t.Error("Expected a miss when every counter declines")
		}
		if _, ok := (Chain{}).Count("word"); ok {
			t.Error("Expected the empty chain to decline everything")
		}
	})
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name     string
		word     string
		expected string
	}{
		{name: "Lowercases", word: "Flowering", expected: "flowering"},
		{name: "AlreadyCanonical", word: "haiku", expected: "haiku"},
		{name: "ComposesAccents", word: "café", expected: "café"},
		{name: "KeepsApostrophes", word: "Don't", expected: "don't"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.word); got != tc.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tc.word, got, tc.expected)
			}
		})
	}
}
