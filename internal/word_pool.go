package internal

import (
	"context"
	"fmt"

	"crosswarped.com/haiku/pkg/primitives"
	"crosswarped.com/haiku/pkg/syllable"
)

type BuildPoolParams struct {
	Vocabulary      []string
	ExcludedWords   []string
	Counter         syllable.Counter
	AllowDuplicates bool
}

type memoizedCount struct {
	count int
	known bool
}

// BuildPool turns a vocabulary into the pool of usable entries: each word
// the counter knows, bucketed by its syllable count. Words the counter does
// not know, and words it counts at zero or less, are dropped silently; a
// thin vocabulary is not an error, it just produces fewer poems.
//
// Words arrive as-is. Callers that accept words from outside normalize them
// before building the pool.
//
// The counter is consulted at most once per distinct spelling. Repeated
// spellings collapse to one entry unless AllowDuplicates is set, in which
// case each occurrence becomes its own entry and may appear alongside the
// others in one poem.
func BuildPool(ctx context.Context, p BuildPoolParams) (primitives.Pool, error) {
	if p.Counter == nil {
		return primitives.Pool{}, fmt.Errorf("a syllable counter is required")
	}

	excluded := make(map[string]bool)
	for _, word := range p.ExcludedWords {
		excluded[word] = true
	}

	memo := make(map[string]memoizedCount)
	taken := make(map[string]bool)

	entries := make([]primitives.Entry, 0, len(p.Vocabulary))
	for _, word := range p.Vocabulary {
		if ctx.Err() != nil {
			return primitives.Pool{}, ctx.Err()
		}
		if excluded[word] {
			continue
		}
		if !p.AllowDuplicates && taken[word] {
			continue
		}

		m, ok := memo[word]
		if !ok {
			count, known := p.Counter.Count(word)
			m = memoizedCount{count: count, known: known}
			memo[word] = m
		}
		if !m.known || m.count <= 0 {
			continue
		}

		taken[word] = true
		entries = append(entries, primitives.Entry{Word: word, Count: m.count})
	}

	return primitives.NewPool(entries), nil
}
