package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"crosswarped.com/haiku/internal/config"
	"crosswarped.com/haiku/internal/lexicon"
	"crosswarped.com/haiku/pkg/syllable"
)

// counterSources are the resolved inputs that decide where syllable counts
// come from.
type counterSources struct {
	DictPath    string
	LexiconPath string
	Heuristic   bool
}

// buildCounter assembles the counter chain: an explicit dictionary file
// first, then the prebuilt lexicon database, then the heuristic fallback
// when enabled. Returns the chain and a description of it for logging.
func buildCounter(ctx context.Context, src counterSources) (syllable.Counter, string, error) {
	var chain syllable.Chain
	var parts []string

	if src.DictPath != "" {
		f, err := os.Open(src.DictPath)
		if err != nil {
			return nil, "", WrapExitError(ExitCommandError, "failed to open dictionary", err)
		}
		counts, err := syllable.ParseDict(f)
		f.Close()
		if err != nil {
			return nil, "", WrapExitError(ExitCommandError, "failed to parse dictionary", err)
		}
		chain = append(chain, counts)
		parts = append(parts, fmt.Sprintf("dict(%d words)", len(counts)))
	}

	if src.LexiconPath != "" {
		store, err := lexicon.Open(src.LexiconPath)
		if err != nil {
			return nil, "", WrapExitError(ExitCommandError, "failed to open lexicon database", err)
		}
		snapshot, err := store.All(ctx)
		store.Close()
		if err != nil {
			return nil, "", WrapExitError(ExitCommandError, "failed to read lexicon database", err)
		}
		chain = append(chain, snapshot)
		parts = append(parts, fmt.Sprintf("lexicon(%d words)", len(snapshot)))
	}

	if src.Heuristic {
		chain = append(chain, syllable.Heuristic{})
		parts = append(parts, "heuristic")
	}

	if len(chain) == 0 {
		return nil, "", NewExitError(ExitCommandError,
			"no syllable source: pass --dict, build a lexicon with 'haiku index', or enable --heuristic")
	}

	return chain, strings.Join(parts, "+"), nil
}

// resolveLexiconPath decides which lexicon database to use. An explicit
// flag must point at an existing database; the configured default is used
// only when it is already present on disk.
func resolveLexiconPath(flagPath string, flagChanged bool, cfg *config.Config) (string, error) {
	if flagChanged {
		if flagPath == "" {
			return "", nil
		}
		if _, err := os.Stat(flagPath); err != nil {
			return "", WrapExitError(ExitCommandError, "lexicon database not found", err)
		}
		return flagPath, nil
	}

	if cfg.Lexicon.DBPath != "" {
		if _, err := os.Stat(cfg.Lexicon.DBPath); err == nil {
			return cfg.Lexicon.DBPath, nil
		}
	}
	return "", nil
}
