package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"crosswarped.com/haiku/internal/config"
	"crosswarped.com/haiku/internal/lexicon"
	"crosswarped.com/haiku/pkg/syllable"
)

// IndexOptions holds flags for the index command.
type IndexOptions struct {
	*RootOptions
	Dict   string
	Output string
}

// NewIndexCommand creates the index command.
func NewIndexCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IndexOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "index --dict <file>",
		Short: "Build the lexicon database from a pronouncing dictionary",
		Long: `Parse a CMU-style pronouncing dictionary and store per-word syllable
counts in a local database, so 'haiku generate' and 'haiku count' can look
words up without re-parsing the dictionary every run.

Rebuilding from a newer dictionary replaces existing counts in place.

Example:
  haiku index --dict cmudict-0.7b.dict
  haiku index --dict cmudict.dict --output /tmp/lexicon.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dict, "dict", "", "pronouncing dictionary file")
	cmd.Flags().StringVar(&opts.Output, "output", "", "lexicon database path (default from config)")

	return cmd
}

type indexResult struct {
	Source   string `json:"source"`
	Database string `json:"database"`
	Words    int    `json:"words"`
}

func runIndex(opts *IndexOptions, cmd *cobra.Command) error {
	cfg, err := config.Load(configPath(opts.RootOptions))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	setupLogging(opts.RootOptions, cfg.LogLevel)

	if err := cfg.EnsureDirectories(); err != nil {
		return WrapExitError(ExitCommandError, "failed to create config directory", err)
	}

	dictPath := opts.Dict
	if dictPath == "" {
		dictPath = cfg.Lexicon.DictPath
	}
	if dictPath == "" {
		return NewExitError(ExitCommandError, "no dictionary: pass --dict or set lexicon.dict_path in the config")
	}

	dbPath := opts.Output
	if dbPath == "" {
		dbPath = cfg.Lexicon.DBPath
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	f, err := os.Open(dictPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open dictionary", err)
	}
	counts, err := syllable.ParseDict(f)
	f.Close()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to parse dictionary", err)
	}
	if len(counts) == 0 {
		return NewExitError(ExitFailure, "dictionary contains no usable entries")
	}

	store, err := lexicon.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open lexicon database", err)
	}
	defer store.Close()

	if err := store.BulkUpsert(ctx, counts); err != nil {
		return WrapExitError(ExitFailure, "failed to index dictionary", err)
	}
	if err := store.SetSource(ctx, filepath.Base(dictPath)); err != nil {
		return WrapExitError(ExitFailure, "failed to record dictionary source", err)
	}

	meta, err := store.Meta(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read lexicon metadata", err)
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		}
		return formatter.Success(indexResult{
			Source:   meta.Source,
			Database: dbPath,
			Words:    meta.Words,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d words from %s into %s\n", meta.Words, filepath.Base(dictPath), dbPath)
	return nil
}
