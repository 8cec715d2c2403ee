package haiku

import (
	"context"
	"iter"

	"crosswarped.com/haiku/pkg/primitives"
)

// branchBuffer bounds how far ahead of the consumer a branch may run.
const branchBuffer = 16

// parallelPoems evaluates the subtree under each first line on its own
// goroutine, at most Workers at a time, and merges the results in dispatch
// order. The merged stream is identical to the sequential enumeration; only
// the work is concurrent.
func (g *Generator) parallelPoems(ctx context.Context, pool primitives.Pool) iter.Seq[Poem] {
	return func(yield func(Poem) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		firstLines, err := primitives.Lines(ctx, pool, g.Pattern[0])
		if err != nil {
			return
		}

		// Each first line becomes a branch with its own result channel.
		// The consumer drains branches in the order they were dispatched,
		// which is the order the sequential enumeration would visit them.
		branches := make(chan chan Poem, g.Workers)
		sem := make(chan struct{}, g.Workers)

		go func() {
			defer close(branches)
			for line := range firstLines {
				select {
				case sem <- struct{}{}:
				case <-ctx.Done():
					return
				}

				results := make(chan Poem, branchBuffer)
				select {
				case branches <- results:
				case <-ctx.Done():
					<-sem
					return
				}

				go func(line primitives.Line) {
					defer close(results)
					defer func() { <-sem }()

					prefix := [][]string{line.Words}
					smaller := pool.WithoutEntries(line.Used)
					for poem := range poemsAtRoot(ctx, smaller, g.Pattern[1:], prefix) {
						select {
						case results <- poem:
						case <-ctx.Done():
							return
						}
					}
				}(line)
			}
		}()

		for results := range branches {
			for poem := range results {
				if !yield(poem) {
					// cancel() stops the dispatcher and the workers.
					return
				}
			}
		}
	}
}
