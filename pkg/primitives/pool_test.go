package primitives

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testEntries() []Entry {
	return []Entry{
		{Word: "flowering", Count: 3},
		{Word: "jacaranda", Count: 4},
		{Word: "photosynthesis", Count: 5},
		{Word: "cabinet", Count: 3},
	}
}

func TestNewPool(t *testing.T) {
	pool := NewPool(testEntries())

	t.Run("Len", func(t *testing.T) {
		if pool.Len() != 4 {
			t.Errorf("Expected Len to be 4, got %d", pool.Len())
		}
	})

	t.Run("Counts", func(t *testing.T) {
		expected := []int{3, 4, 5, 3}
		if diff := cmp.Diff(expected, pool.Counts()); diff != "" {
			t.Errorf("Counts mismatch (-want +got): %s", diff)
		}
	})

	t.Run("Words", func(t *testing.T) {
		expected := []string{"flowering", "jacaranda", "photosynthesis", "cabinet"}
		if diff := cmp.Diff(expected, pool.Words()); diff != "" {
			t.Errorf("Words mismatch (-want +got): %s", diff)
		}
	})

	t.Run("Bucket", func(t *testing.T) {
		expected := []string{"flowering", "cabinet"}
		if diff := cmp.Diff(expected, pool.Bucket(3)); diff != "" {
			t.Errorf("Bucket(3) mismatch (-want +got): %s", diff)
		}
		if got := pool.Bucket(9); got != nil {
			t.Errorf("Expected Bucket(9) to be empty, got %v", got)
		}
	})

	t.Run("Entry", func(t *testing.T) {
		if pool.Entry(1).Word != "jacaranda" || pool.Entry(1).Count != 4 {
			t.Errorf("Entry(1) = %v, expected jacaranda/4", pool.Entry(1))
		}
	})

	t.Run("Has", func(t *testing.T) {
		if !pool.Has(0) {
			t.Error("Expected Has(0) to be true")
		}
		if pool.Has(-1) || pool.Has(4) {
			t.Error("Expected out-of-range ids to report false")
		}
	})
}

func TestPool_WithoutEntries(t *testing.T) {
	pool := NewPool(testEntries())

	t.Run("RemovesOnlyGivenIds", func(t *testing.T) {
		smaller := pool.WithoutEntries([]int{0})

		if smaller.Len() != 3 {
			t.Errorf("Expected Len to be 3, got %d", smaller.Len())
		}
		if smaller.Has(0) {
			t.Error("Expected entry 0 to be removed")
		}
		expected := []string{"cabinet"}
		if diff := cmp.Diff(expected, smaller.Bucket(3)); diff != "" {
			t.Errorf("Bucket(3) mismatch (-want +got): %s", diff)
		}
	})

	t.Run("ReceiverUnchanged", func(t *testing.T) {
		_ = pool.WithoutEntries([]int{0, 1, 2, 3})

		if pool.Len() != 4 {
			t.Errorf("Expected original pool Len to stay 4, got %d", pool.Len())
		}
		if !pool.Has(0) {
			t.Error("Expected original pool to keep entry 0")
		}
	})

	t.Run("NoChangeFastPath", func(t *testing.T) {
		same := pool.WithoutEntries([]int{-5, 99})
		// Nothing was removable, so the backing bitset must be shared.
		if &same.set[0] != &pool.set[0] {
			t.Error("Expected unchanged pool to share the receiver's bitset")
		}
	})

	t.Run("AlreadyRemovedIgnored", func(t *testing.T) {
		smaller := pool.WithoutEntries([]int{2})
		again := smaller.WithoutEntries([]int{2})
		if again.Len() != smaller.Len() {
			t.Errorf("Expected removing a removed id to be a no-op, got Len %d", again.Len())
		}
	})

	t.Run("IdsStayStableAcrossDerivations", func(t *testing.T) {
		smaller := pool.WithoutEntries([]int{1})
		if smaller.Entry(3).Word != "cabinet" {
			t.Errorf("Expected id 3 to still resolve to cabinet, got %q", smaller.Entry(3).Word)
		}
	})
}

func TestPool_DuplicateWordsAreDistinctEntries(t *testing.T) {
	pool := NewPool([]Entry{
		{Word: "golden", Count: 2},
		{Word: "golden", Count: 2},
	})

	if pool.Len() != 2 {
		t.Fatalf("Expected Len to be 2, got %d", pool.Len())
	}

	one := pool.WithoutEntries([]int{0})
	if one.Len() != 1 {
		t.Errorf("Expected one instance to survive, got %d", one.Len())
	}
	if diff := cmp.Diff([]string{"golden"}, one.Bucket(2)); diff != "" {
		t.Errorf("Bucket(2) mismatch (-want +got): %s", diff)
	}
}

func TestPool_Empty(t *testing.T) {
	for name, pool := range map[string]Pool{
		"NewPoolNil": NewPool(nil),
		"ZeroValue":  {},
	} {
		t.Run(name, func(t *testing.T) {
			if pool.Len() != 0 {
				t.Errorf("Expected Len to be 0, got %d", pool.Len())
			}
			if got := pool.Words(); len(got) != 0 {
				t.Errorf("Expected no words, got %v", got)
			}
			if got := pool.Bucket(1); got != nil {
				t.Errorf("Expected empty bucket, got %v", got)
			}
			same := pool.WithoutEntries([]int{0})
			if same.Len() != 0 {
				t.Errorf("Expected removal on empty pool to be a no-op, got Len %d", same.Len())
			}
		})
	}
}

func TestPool_String(t *testing.T) {
	small := NewPool(testEntries()[:2])
	if got := small.String(); got != "Pool[flowering, jacaranda]" {
		t.Errorf("String() = %q", got)
	}

	big := NewPool([]Entry{
		{Word: "a", Count: 1}, {Word: "b", Count: 1}, {Word: "c", Count: 1},
		{Word: "d", Count: 1}, {Word: "e", Count: 1},
	})
	if got := big.String(); got != "Pool[a, b, c, ...2]" {
		t.Errorf("String() = %q", got)
	}
}
