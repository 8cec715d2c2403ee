package primitives

import (
	"context"
	"fmt"
	"iter"
)

// Lines enumerates every line the pool can produce at the target syllable
// count: for each partition of target over the pool's counts, every fill of
// that partition with distinct entries. A word sequence determines its count
// sequence, so no line is reachable through two different partitions and the
// union needs no dedupe.
//
// The sequence is lazy end to end; a consumer that stops after one line
// never pays for the next partition. A negative target is rejected. An
// unsatisfiable target yields nothing.
func Lines(ctx context.Context, pool Pool, target int) (iter.Seq[Line], error) {
	if target < 0 {
		return nil, fmt.Errorf("line target must not be negative, got %d", target)
	}

	partitions, err := Partitions(ctx, pool.Counts(), target)
	if err != nil {
		return nil, err
	}

	return func(yield func(Line) bool) {
		for partition := range partitions {
			fills, err := Fill(ctx, pool, partition)
			if err != nil {
				// Partitions only contain positive counts, so Fill cannot
				// reject them.
				return
			}
			for line := range fills {
				if !yield(line) {
					return
				}
			}
		}
	}, nil
}
