package primitives

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Partitions enumerates every distinct ordered sequence of positive syllable
// counts, drawn from counts, that sums to target. "Drawn from" is positional:
// a partition may use a value at most as many times as it occurs in counts.
//
// Two selections with the same value-multiset produce the same orderings, so
// each multiset is expanded into its distinct orderings exactly once no
// matter how many positions could supply it. The sequence is lazy; consumers
// that stop early pay only for what they took.
//
// A target of zero yields the single empty partition. Negative targets or
// counts are rejected.
func Partitions(ctx context.Context, counts []int, target int) (iter.Seq[[]int], error) {
	if target < 0 {
		return nil, fmt.Errorf("partition target must not be negative, got %d", target)
	}
	for i, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("count at position %d must not be negative, got %d", i, c)
		}
	}

	// Zero-count values can never contribute to a partition of positive
	// integers, so they are dropped before the search.
	vals := make([]int, 0, len(counts))
	for _, c := range counts {
		if c > 0 {
			vals = append(vals, c)
		}
	}

	// suffix[i] is the sum of vals[i:], used to prune unreachable branches.
	suffix := make([]int, len(vals)+1)
	for i := len(vals) - 1; i >= 0; i-- {
		suffix[i] = suffix[i+1] + vals[i]
	}

	return func(yield func([]int) bool) {
		seenMultisets := make(map[string]bool)
		subsetsInto(ctx, vals, suffix, 0, target, nil, func(subset []int) bool {
			key := multisetKey(subset)
			if seenMultisets[key] {
				return true
			}
			seenMultisets[key] = true

			ordered := slices.Clone(subset)
			slices.Sort(ordered)
			used := make([]bool, len(ordered))
			return orderingsInto(ctx, ordered, used, nil, yield)
		})
	}, nil
}

// subsetsInto runs the include/exclude recursion over vals[at:], calling emit
// for every positional subset whose values sum to remaining. Returns false
// once emit asks to stop.
func subsetsInto(ctx context.Context, vals, suffix []int, at, remaining int, chosen []int, emit func([]int) bool) bool {
	if ctx.Err() != nil {
		return false
	}
	if remaining == 0 {
		// All values are positive, so no extension of chosen can still sum
		// to the target.
		return emit(chosen)
	}
	if at >= len(vals) || suffix[at] < remaining {
		return true
	}

	if vals[at] <= remaining {
		if !subsetsInto(ctx, vals, suffix, at+1, remaining-vals[at], append(chosen, vals[at]), emit) {
			return false
		}
	}
	return subsetsInto(ctx, vals, suffix, at+1, remaining, chosen, emit)
}

// orderingsInto yields every distinct ordering of the sorted multiset vals.
// Returns false once yield asks to stop.
func orderingsInto(ctx context.Context, vals []int, used []bool, acc []int, yield func([]int) bool) bool {
	if ctx.Err() != nil {
		return false
	}
	if len(acc) == len(vals) {
		return yield(slices.Clone(acc))
	}
	for i := range vals {
		if used[i] {
			continue
		}
		// Equal values are interchangeable; always take the leftmost unused
		// one so each ordering appears once.
		if i > 0 && vals[i] == vals[i-1] && !used[i-1] {
			continue
		}
		used[i] = true
		if !orderingsInto(ctx, vals, used, append(acc, vals[i]), yield) {
			return false
		}
		used[i] = false
	}
	return true
}

func multisetKey(vals []int) string {
	sorted := slices.Clone(vals)
	slices.Sort(sorted)
	parts := make([]string, len(sorted))
	for i, v := range sorted {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
