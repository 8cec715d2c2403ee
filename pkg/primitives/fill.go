package primitives

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Line is a concrete line of a poem: an ordered pick of distinct pool
// entries whose syllable counts match the counts that were asked for.
//
// Used holds the pool entry ids behind Words, parallel to it, so callers can
// shrink the pool by exactly the instances this line consumed.
type Line struct {
	Words []string
	Used  []int
}

func (l Line) String() string {
	return strings.Join(l.Words, " ")
}

// Fill enumerates every ordered assignment of distinct available entries to
// the required counts: the i-th word of a yielded line has exactly
// required[i] syllables, and no entry is used twice within a line.
//
// The search state is value-passed: each branch clones its chosen prefix, so
// partially consuming the sequence never disturbs the pool or other
// branches. An empty required sequence yields a single empty line. Negative
// required counts are rejected.
func Fill(ctx context.Context, pool Pool, required []int) (iter.Seq[Line], error) {
	for i, c := range required {
		if c < 0 {
			return nil, fmt.Errorf("required count at slot %d must not be negative, got %d", i, c)
		}
	}

	return func(yield func(Line) bool) {
		fillInto(ctx, pool, required, nil, yield)
	}, nil
}

// fillInto extends chosen by one entry for the next slot and recurses.
// Returns false once yield asks to stop.
func fillInto(ctx context.Context, pool Pool, required []int, chosen []int, yield func(Line) bool) bool {
	if ctx.Err() != nil {
		return false
	}
	if len(chosen) == len(required) {
		words := make([]string, len(chosen))
		for i, id := range chosen {
			words[i] = pool.Entry(id).Word
		}
		return yield(Line{Words: words, Used: slices.Clone(chosen)})
	}

	for _, id := range pool.bucketIDs(required[len(chosen)]) {
		if slices.Contains(chosen, id) {
			continue
		}
		// Clone per branch so sibling branches never observe this choice.
		attempt := append(slices.Clone(chosen), id)
		if !fillInto(ctx, pool, required, attempt, yield) {
			return false
		}
	}
	return true
}
