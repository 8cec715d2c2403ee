package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"crosswarped.com/haiku/internal/config"
	"crosswarped.com/haiku/pkg/syllable"
)

// CountOptions holds flags for the count command.
type CountOptions struct {
	*RootOptions
	Dict      string
	Lexicon   string
	Heuristic bool
}

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CountOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "count <word>...",
		Short: "Look up syllable counts for words",
		Long: `Report the syllable count for each word, using the same sources as
'haiku generate': dictionary, lexicon database, then the heuristic.

Example:
  haiku count --dict cmudict.dict flowering jacaranda
  haiku count --heuristic photosynthesis`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(opts, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.Dict, "dict", "", "pronouncing dictionary file")
	cmd.Flags().StringVar(&opts.Lexicon, "lexicon", "", "lexicon database path")
	cmd.Flags().BoolVar(&opts.Heuristic, "heuristic", false, "fall back to vowel-group counting for unknown words")

	return cmd
}

type wordCount struct {
	Word      string `json:"word"`
	Syllables int    `json:"syllables,omitempty"`
	Known     bool   `json:"known"`
}

type countResult struct {
	Words   []wordCount `json:"words"`
	Unknown int         `json:"unknown"`
}

func runCount(opts *CountOptions, cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath(opts.RootOptions))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	setupLogging(opts.RootOptions, cfg.LogLevel)

	flags := cmd.Flags()
	if !flags.Changed("dict") && cfg.Lexicon.DictPath != "" {
		opts.Dict = cfg.Lexicon.DictPath
	}
	if !flags.Changed("heuristic") && cfg.Generate.Heuristic {
		opts.Heuristic = true
	}

	lexiconPath, err := resolveLexiconPath(opts.Lexicon, flags.Changed("lexicon"), cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	counter, sources, err := buildCounter(ctx, counterSources{
		DictPath:    opts.Dict,
		LexiconPath: lexiconPath,
		Heuristic:   opts.Heuristic,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result := countResult{}
	for _, arg := range args {
		word := syllable.Normalize(arg)
		count, known := counter.Count(word)
		result.Words = append(result.Words, wordCount{Word: word, Syllables: count, Known: known})
		if !known {
			result.Unknown++
		}

		if opts.Format != "json" {
			if known {
				fmt.Fprintf(out, "%s: %d\n", word, count)
			} else {
				fmt.Fprintf(out, "%s: unknown\n", word)
			}
		}
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{
			Format:    opts.Format,
			Writer:    out,
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		}
		if err := formatter.Success(result); err != nil {
			return err
		}
	}

	if result.Unknown > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d words not found in %s", result.Unknown, len(args), sources))
	}
	return nil
}
