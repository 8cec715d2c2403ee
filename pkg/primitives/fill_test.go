package primitives

import (
	"context"
	"iter"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func collectLines(t *testing.T, pool Pool, required []int) []Line {
	t.Helper()

	seq, err := Fill(context.Background(), pool, required)
	if err != nil {
		t.Fatalf("Fill returned error: %v", err)
	}

	var got []Line
	for line := range seq {
		got = append(got, line)
	}
	return got
}

func lineStrings(lines []Line) []string {
	strs := make([]string, len(lines))
	for i, line := range lines {
		strs[i] = line.String()
	}
	return strs
}

func TestFill(t *testing.T) {
	t.Run("SingleCompletion", func(t *testing.T) {
		pool := NewPool([]Entry{
			{Word: "flowering", Count: 3},
			{Word: "jacaranda", Count: 4},
			{Word: "photosynthesis", Count: 5},
		})

		got := collectLines(t, pool, []int{3, 4, 5})

		expected := []string{"flowering jacaranda photosynthesis"}
		if diff := cmp.Diff(expected, lineStrings(got)); diff != "" {
			t.Errorf("Lines mismatch (-want +got): %s", diff)
		}
	})

	t.Run("AlternativePerSlot", func(t *testing.T) {
		pool := NewPool([]Entry{
			{Word: "flowering", Count: 3},
			{Word: "jacaranda", Count: 4},
			{Word: "photosynthesis", Count: 5},
			{Word: "cabinet", Count: 3},
		})

		got := collectLines(t, pool, []int{3, 4, 5})

		expected := []string{
			"flowering jacaranda photosynthesis",
			"cabinet jacaranda photosynthesis",
		}
		if diff := cmp.Diff(expected, lineStrings(got)); diff != "" {
			t.Errorf("Lines mismatch (-want +got): %s", diff)
		}
	})

	t.Run("WordsAreNotReused", func(t *testing.T) {
		pool := NewPool([]Entry{
			{Word: "sun", Count: 1},
			{Word: "moon", Count: 1},
		})

		got := collectLines(t, pool, []int{1, 1})

		expected := []string{"sun moon", "moon sun"}
		if diff := cmp.Diff(expected, lineStrings(got)); diff != "" {
			t.Errorf("Lines mismatch (-want +got): %s", diff)
		}
	})

	t.Run("DuplicateEntriesCountSeparately", func(t *testing.T) {
		pool := NewPool([]Entry{
			{Word: "golden", Count: 2},
			{Word: "golden", Count: 2},
		})

		got := collectLines(t, pool, []int{2, 2})

		// Two distinct entries happen to spell the same word, so both
		// orders exist even though they read identically.
		expected := []string{"golden golden", "golden golden"}
		if diff := cmp.Diff(expected, lineStrings(got)); diff != "" {
			t.Errorf("Lines mismatch (-want +got): %s", diff)
		}
	})

	t.Run("NoRequirementsYieldsTheEmptyLine", func(t *testing.T) {
		pool := NewPool([]Entry{{Word: "sun", Count: 1}})

		got := collectLines(t, pool, nil)

		if len(got) != 1 {
			t.Fatalf("Expected exactly one line, got %d", len(got))
		}
		if len(got[0].Words) != 0 || len(got[0].Used) != 0 {
			t.Errorf("Expected the empty line, got %v", got[0])
		}
		if got[0].String() != "" {
			t.Errorf("Expected empty String(), got %q", got[0].String())
		}
	})

	t.Run("Unsatisfiable", func(t *testing.T) {
		pool := NewPool([]Entry{
			{Word: "sun", Count: 1},
			{Word: "moon", Count: 1},
		})

		for name, required := range map[string][]int{
			"NoSuchCount":      {9},
			"NotEnoughOfCount": {1, 1, 1},
		} {
			t.Run(name, func(t *testing.T) {
				if got := collectLines(t, pool, required); len(got) != 0 {
					t.Errorf("Expected no lines, got %v", lineStrings(got))
				}
			})
		}
	})

	t.Run("EmptyPool", func(t *testing.T) {
		if got := collectLines(t, NewPool(nil), []int{1}); len(got) != 0 {
			t.Errorf("Expected no lines, got %v", lineStrings(got))
		}
	})
}

func TestFill_UsedResolvesToWords(t *testing.T) {
	pool := NewPool(testEntries())

	for line := range mustFill(t, pool, []int{3, 4, 5}) {
		if len(line.Used) != len(line.Words) {
			t.Fatalf("Used/Words length mismatch: %v", line)
		}
		for i, id := range line.Used {
			if word := pool.Entry(id).Word; word != line.Words[i] {
				t.Errorf("Used[%d]=%d resolves to %q, line says %q", i, id, word, line.Words[i])
			}
		}
	}
}

func TestFill_NegativeRequired(t *testing.T) {
	pool := NewPool(testEntries())

	seq, err := Fill(context.Background(), pool, []int{3, -1})
	if err == nil {
		t.Fatal("Expected an error for a negative required count")
	}
	if seq != nil {
		t.Error("Expected no sequence alongside the error")
	}
	if !strings.Contains(err.Error(), "slot 1") {
		t.Errorf("Expected the error to name the bad slot, got %q", err)
	}
}

func TestFill_Reiterable(t *testing.T) {
	pool := NewPool(testEntries())
	seq := mustFill(t, pool, []int{3, 4, 5})

	firstPass := make([]string, 0, 2)
	for line := range seq {
		firstPass = append(firstPass, line.String())
	}
	secondPass := make([]string, 0, 2)
	for line := range seq {
		secondPass = append(secondPass, line.String())
	}

	if diff := cmp.Diff(firstPass, secondPass); diff != "" {
		t.Errorf("Passes differ (-first +second): %s", diff)
	}
}

func TestFill_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seq, err := Fill(ctx, NewPool(testEntries()), []int{3})
	if err != nil {
		t.Fatalf("Fill returned error: %v", err)
	}
	for range seq {
		t.Fatal("Expected no lines after cancellation")
	}
}

func mustFill(t *testing.T, pool Pool, required []int) iter.Seq[Line] {
	t.Helper()
	seq, err := Fill(context.Background(), pool, required)
	if err != nil {
		t.Fatalf("Fill returned error: %v", err)
	}
	return seq
}
