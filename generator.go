package haiku

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"crosswarped.com/haiku/internal"
	"crosswarped.com/haiku/pkg/primitives"
	"crosswarped.com/haiku/pkg/syllable"
)

type Generator struct {
	Pattern         Pattern
	Vocabulary      []string
	ExcludedWords   []string
	Counter         syllable.Counter
	AllowDuplicates bool
	Workers         int

	// Do not access this field directly, use the wordPool method instead.
	lazyWordPool *primitives.Pool
}

type GeneratorParams struct {
	ExcludedWords   []string
	AllowDuplicates bool
	Workers         int
}

// CreateGenerator configures a Generator for the given pattern and
// vocabulary. The pattern is validated here so every later enumeration can
// assume positive line targets.
func CreateGenerator(pattern Pattern, vocabulary []string, counter syllable.Counter, params GeneratorParams) (*Generator, error) {
	if err := pattern.Validate(); err != nil {
		return nil, err
	}
	if counter == nil {
		return nil, fmt.Errorf("a syllable counter is required")
	}
	return &Generator{
		Pattern:         slices.Clone(pattern),
		Vocabulary:      vocabulary,
		ExcludedWords:   params.ExcludedWords,
		Counter:         counter,
		AllowDuplicates: params.AllowDuplicates,
		Workers:         params.Workers,
	}, nil
}

func (g *Generator) wordPool(ctx context.Context) (primitives.Pool, error) {
	if g.lazyWordPool == nil {
		pool, err := internal.BuildPool(ctx, internal.BuildPoolParams{
			Vocabulary:      g.Vocabulary,
			ExcludedWords:   g.ExcludedWords,
			Counter:         g.Counter,
			AllowDuplicates: g.AllowDuplicates,
		})
		if err != nil {
			return primitives.Pool{}, err
		}
		g.lazyWordPool = &pool
	}
	return *g.lazyWordPool, nil
}

// Poems enumerates every poem the vocabulary can produce for the pattern:
// line by line, each line drawn from the entries the earlier lines left
// behind, so no word appears twice in a poem. A vocabulary that cannot
// satisfy the pattern produces an empty sequence, not an error.
//
// Duplicate vocabulary entries can spell out identical poems; those are
// reported once. The enumeration order is deterministic for a given
// Generator, including when Workers enables parallel evaluation.
func (g *Generator) Poems(ctx context.Context) iter.Seq[Poem] {
	return func(yield func(Poem) bool) {
		pool, err := g.wordPool(ctx)
		if err != nil {
			return
		}

		source := poemsAtRoot(ctx, pool, g.Pattern, nil)
		if g.Workers > 1 && len(g.Pattern) > 1 {
			source = g.parallelPoems(ctx, pool)
		}

		seenReprs := make(map[string]bool)
		for poem := range source {
			repr := poem.Repr()
			if seenReprs[repr] {
				continue
			}
			seenReprs[repr] = true
			if !yield(poem) {
				return
			}
		}
	}
}

// Lines enumerates single lines at the given syllable target, without the
// poem-level fold. The target must be positive.
func (g *Generator) Lines(ctx context.Context, target int) (iter.Seq[[]string], error) {
	if target <= 0 {
		return nil, fmt.Errorf("line target must be positive, got %d", target)
	}

	pool, err := g.wordPool(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := primitives.Lines(ctx, pool, target)
	if err != nil {
		return nil, err
	}

	return func(yield func([]string) bool) {
		for line := range lines {
			if !yield(line.Words) {
				return
			}
		}
	}, nil
}

// poemsAtRoot extends prefix by every line the pool still affords for the
// next target, then recurses on the pool minus that line's entries.
func poemsAtRoot(ctx context.Context, pool primitives.Pool, remaining Pattern, prefix [][]string) iter.Seq[Poem] {
	return func(yield func(Poem) bool) {
		if ctx.Err() != nil {
			return
		}

		if len(remaining) == 0 {
			yield(NewPoem(prefix))
			return
		}

		lines, err := primitives.Lines(ctx, pool, remaining[0])
		if err != nil {
			// Pattern targets were validated positive up front.
			return
		}

		for line := range lines {
			// Clone per branch so sibling branches never observe this line.
			attempt := append(slices.Clone(prefix), line.Words)
			smaller := pool.WithoutEntries(line.Used)
			for poem := range poemsAtRoot(ctx, smaller, remaining[1:], attempt) {
				if !yield(poem) {
					return
				}
			}
		}
	}
}
