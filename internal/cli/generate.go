package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"crosswarped.com/haiku"
	"crosswarped.com/haiku/internal/config"
	"crosswarped.com/haiku/pkg/syllable"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Words           []string
	Exclude         []string
	Dict            string
	Lexicon         string
	Heuristic       bool
	PatternStr      string
	Max             int
	First           bool
	All             bool
	Workers         int
	Timeout         time.Duration
	AllowDuplicates bool
	Watch           bool

	Profile           bool
	ProfileFile       string
	MemoryProfileFile string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate --words <glob> [flags]",
		Short: "Generate poems from word lists",
		Long: `Generate every poem the word lists can produce for the syllable pattern,
in a deterministic order.

Word lists are plain text, one word per line, '#' starts a comment.
Syllable counts come from a pronouncing dictionary (--dict), a prebuilt
lexicon database (see 'haiku index'), or the vowel-group heuristic
(--heuristic); sources are tried in that order per word.

Example:
  haiku generate --words words.txt --heuristic --max 5
  haiku generate --words 'lists/**/*.txt' --dict cmudict.dict --pattern 3-5-3
  haiku generate --words words.txt --heuristic --watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Words, "words", nil, "word-list file or glob (repeatable)")
	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude", nil, "word-list file or glob of words to leave out")
	cmd.Flags().StringVar(&opts.Dict, "dict", "", "pronouncing dictionary file")
	cmd.Flags().StringVar(&opts.Lexicon, "lexicon", "", "lexicon database path")
	cmd.Flags().BoolVar(&opts.Heuristic, "heuristic", false, "fall back to vowel-group counting for unknown words")
	cmd.Flags().StringVar(&opts.PatternStr, "pattern", "5-7-5", "syllable pattern, e.g. 5-7-5")
	cmd.Flags().IntVar(&opts.Max, "max", 10, "maximum number of poems to print")
	cmd.Flags().BoolVar(&opts.First, "first", false, "only generate the first poem")
	cmd.Flags().BoolVar(&opts.All, "all", false, "generate all poems")
	cmd.Flags().IntVar(&opts.Workers, "workers", 1, "parallel workers (1 = sequential)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "generation timeout")
	cmd.Flags().BoolVar(&opts.AllowDuplicates, "allow-duplicates", false, "treat repeated vocabulary entries as separately usable")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "watch word lists and regenerate on change")
	cmd.Flags().BoolVar(&opts.Profile, "profile", false, "profile the generator")
	cmd.Flags().StringVar(&opts.ProfileFile, "profile-file", "cpu.pprof", "file to write the CPU profile to")
	cmd.Flags().StringVar(&opts.MemoryProfileFile, "memory-profile-file", "mem.pprof", "file to write the memory profile to")
	_ = cmd.MarkFlagRequired("words")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	if opts.First && opts.All {
		return NewExitError(ExitCommandError, "cannot use both --first and --all")
	}

	cfg, err := config.Load(configPath(opts.RootOptions))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	setupLogging(opts.RootOptions, cfg.LogLevel)
	applyGenerateConfig(opts, cmd, cfg)

	pattern, err := haiku.ParsePattern(opts.PatternStr)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid pattern", err)
	}

	lexiconPath, err := resolveLexiconPath(opts.Lexicon, cmd.Flags().Changed("lexicon"), cfg)
	if err != nil {
		return err
	}

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, stopping", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if opts.Profile {
		cpuProfile, err := os.Create(opts.ProfileFile)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create profile file", err)
		}
		defer cpuProfile.Close()

		memProfile, err := os.Create(opts.MemoryProfileFile)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create memory profile file", err)
		}
		defer memProfile.Close()
		defer func() { _ = pprof.WriteHeapProfile(memProfile) }()

		if err := pprof.StartCPUProfile(cpuProfile); err != nil {
			return WrapExitError(ExitCommandError, "failed to start CPU profile", err)
		}
		defer pprof.StopCPUProfile()
	}

	counter, sources, err := buildCounter(ctx, counterSources{
		DictPath:    opts.Dict,
		LexiconPath: lexiconPath,
		Heuristic:   opts.Heuristic,
	})
	if err != nil {
		return err
	}
	slog.Info("syllable sources ready", "chain", sources)

	if !opts.Watch {
		_, err := generateOnce(ctx, opts, cmd, pattern, counter)
		return err
	}

	return watchAndRegenerate(ctx, opts, cmd, pattern, counter)
}

// applyGenerateConfig fills in flags the user did not set from the config
// file. Explicit flags always win.
func applyGenerateConfig(opts *GenerateOptions, cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if !flags.Changed("pattern") && len(cfg.Generate.Pattern) > 0 {
		opts.PatternStr = haiku.Pattern(cfg.Generate.Pattern).String()
	}
	if !flags.Changed("max") && cfg.Generate.MaxPoems > 0 {
		opts.Max = cfg.Generate.MaxPoems
	}
	if !flags.Changed("workers") && cfg.Generate.Workers > 0 {
		opts.Workers = cfg.Generate.Workers
	}
	if !flags.Changed("timeout") {
		if timeout, err := cfg.GenerateTimeout(); err == nil && timeout > 0 {
			opts.Timeout = timeout
		}
	}
	if !flags.Changed("dict") && cfg.Lexicon.DictPath != "" {
		opts.Dict = cfg.Lexicon.DictPath
	}
	if !flags.Changed("heuristic") && cfg.Generate.Heuristic {
		opts.Heuristic = true
	}
	if !flags.Changed("allow-duplicates") && cfg.Generate.AllowDuplicates {
		opts.AllowDuplicates = true
	}
	if len(cfg.Generate.ExcludedWords) > 0 {
		opts.Exclude = append(opts.Exclude, cfg.Generate.ExcludedWords...)
	}
}

type generatedPoem struct {
	Lines []string `json:"lines"`
	Text  string   `json:"text"`
}

type generateResult struct {
	Pattern string          `json:"pattern"`
	Words   int             `json:"words"`
	Count   int             `json:"count"`
	Poems   []generatedPoem `json:"poems"`
}

func generateOnce(ctx context.Context, opts *GenerateOptions, cmd *cobra.Command, pattern haiku.Pattern, counter syllable.Counter) (int, error) {
	words, err := LoadWordLists(ctx, opts.Words)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, "failed to load word lists", err)
	}

	var excluded []string
	if len(opts.Exclude) > 0 {
		excluded, err = loadExclusions(ctx, opts.Exclude)
		if err != nil {
			return 0, WrapExitError(ExitCommandError, "failed to load excluded words", err)
		}
	}
	slog.Info("vocabulary loaded", "words", len(words), "excluded", len(excluded))

	gen, err := haiku.CreateGenerator(pattern, words, counter, haiku.GeneratorParams{
		ExcludedWords:   excluded,
		AllowDuplicates: opts.AllowDuplicates,
		Workers:         opts.Workers,
	})
	if err != nil {
		return 0, WrapExitError(ExitCommandError, "failed to configure generator", err)
	}

	limit := opts.Max
	if opts.First {
		limit = 1
	}
	if opts.All {
		limit = 0
	}

	genCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	slog.Info("generating", "pattern", pattern.String(), "limit", limit, "workers", opts.Workers)

	out := cmd.OutOrStdout()
	count := 0
	var collected []generatedPoem

	for poem := range gen.Poems(genCtx) {
		count++
		if opts.Format == "json" {
			lines := make([]string, poem.NumLines())
			for i := range lines {
				lines[i] = strings.Join(poem.Line(i), " ")
			}
			collected = append(collected, generatedPoem{Lines: lines, Text: poem.Repr()})
		} else {
			fmt.Fprintln(out, "--------------------------------")
			fmt.Fprintln(out, poem.Repr())
		}

		if limit > 0 && count >= limit {
			break
		}
	}

	if err := genCtx.Err(); err != nil {
		slog.Warn("generation stopped early", "reason", err)
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{
			Format:    opts.Format,
			Writer:    out,
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		}
		return count, formatter.Success(generateResult{
			Pattern: pattern.String(),
			Words:   len(words),
			Count:   count,
			Poems:   collected,
		})
	}

	fmt.Fprintln(out, "--------------------------------")
	fmt.Fprintf(out, "Generated %d poems\n", count)
	return count, nil
}

// loadExclusions reads exclusion patterns, treating entries that are not
// readable files as literal words. Config files list bare words; flags
// usually point at files.
func loadExclusions(ctx context.Context, patterns []string) ([]string, error) {
	var files, literals []string
	for _, pattern := range patterns {
		if _, err := os.Stat(pattern); err == nil || strings.ContainsAny(pattern, "*?[") {
			files = append(files, pattern)
			continue
		}
		literals = append(literals, syllable.Normalize(pattern))
	}

	words := literals
	if len(files) > 0 {
		loaded, err := LoadWordLists(ctx, files)
		if err != nil {
			return nil, err
		}
		words = append(words, loaded...)
	}
	return words, nil
}
