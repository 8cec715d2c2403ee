package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/haiku/internal/config"
	"crosswarped.com/haiku/internal/lexicon"
)

const dictSnippet = `;;; # CMUdict
FLOWERING  F L AW1 ER0 IH0 NG
JACARANDA  JH AE2 K ER0 AE1 N D AH0
`

func writeDict(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.dict")
	require.NoError(t, os.WriteFile(path, []byte(dictSnippet), 0o644))
	return path
}

func TestBuildCounter_DictOnly(t *testing.T) {
	counter, sources, err := buildCounter(t.Context(), counterSources{DictPath: writeDict(t)})
	require.NoError(t, err)
	assert.Equal(t, "dict(2 words)", sources)

	count, known := counter.Count("flowering")
	assert.True(t, known)
	assert.Equal(t, 3, count)

	_, known = counter.Count("unlisted")
	assert.False(t, known)
}

func TestBuildCounter_HeuristicOnly(t *testing.T) {
	counter, sources, err := buildCounter(t.Context(), counterSources{Heuristic: true})
	require.NoError(t, err)
	assert.Equal(t, "heuristic", sources)

	count, known := counter.Count("unlisted")
	assert.True(t, known)
	assert.Equal(t, 3, count)
}

func TestBuildCounter_DictThenHeuristic(t *testing.T) {
	counter, sources, err := buildCounter(t.Context(), counterSources{
		DictPath:  writeDict(t),
		Heuristic: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "dict(2 words)+heuristic", sources)

	// Dictionary answers take precedence; the heuristic covers the rest.
	count, known := counter.Count("jacaranda")
	assert.True(t, known)
	assert.Equal(t, 4, count)

	count, known = counter.Count("moonlight")
	assert.True(t, known)
	assert.Equal(t, 2, count)
}

func TestBuildCounter_Lexicon(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lexicon.db")
	store, err := lexicon.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.BulkUpsert(t.Context(), map[string]int{"willow": 2}))
	require.NoError(t, store.Close())

	counter, sources, err := buildCounter(t.Context(), counterSources{LexiconPath: dbPath})
	require.NoError(t, err)
	assert.Equal(t, "lexicon(1 words)", sources)

	count, known := counter.Count("willow")
	assert.True(t, known)
	assert.Equal(t, 2, count)
}

func TestBuildCounter_NoSources(t *testing.T) {
	_, _, err := buildCounter(t.Context(), counterSources{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no syllable source")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestBuildCounter_MissingDict(t *testing.T) {
	_, _, err := buildCounter(t.Context(), counterSources{
		DictPath: filepath.Join(t.TempDir(), "nope.dict"),
	})
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestResolveLexiconPath(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "lexicon.db")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))
	missing := filepath.Join(dir, "missing.db")

	cfg := config.Default()
	cfgWithDB := config.Default()
	cfgWithDB.Lexicon.DBPath = existing
	cfgWithMissingDB := config.Default()
	cfgWithMissingDB.Lexicon.DBPath = missing

	tests := []struct {
		name        string
		flagPath    string
		flagChanged bool
		cfg         *config.Config
		want        string
		wantErr     bool
	}{
		{"explicit_empty_disables", "", true, cfgWithDB, "", false},
		{"explicit_existing", existing, true, cfg, existing, false},
		{"explicit_missing_errors", missing, true, cfg, "", true},
		{"config_default_when_present", "", false, cfgWithDB, existing, false},
		{"config_default_skipped_when_absent", "", false, cfgWithMissingDB, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveLexiconPath(tt.flagPath, tt.flagChanged, tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
