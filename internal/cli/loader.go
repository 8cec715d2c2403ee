package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"

	"crosswarped.com/haiku/pkg/syllable"
)

// LoadWordLists reads every file matching the given glob patterns and
// returns the words in file order, files in sorted order per pattern. Blank
// lines and '#' comments are skipped; words are normalized (NFC,
// lowercase). A pattern that matches nothing is an error, a word with
// characters other than letters, apostrophes and hyphens is too.
func LoadWordLists(ctx context.Context, patterns []string) ([]string, error) {
	files, err := matchWordLists(patterns)
	if err != nil {
		return nil, err
	}

	var words []string
	for _, path := range files {
		loaded, err := loadWordFile(ctx, path)
		if err != nil {
			return nil, err
		}
		words = append(words, loaded...)
	}
	return words, nil
}

// matchWordLists expands the glob patterns into concrete file paths,
// sorted per pattern.
func matchWordLists(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad word-list pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		slices.Sort(matches)
		files = append(files, matches...)
	}
	return files, nil
}

func loadWordFile(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		word := syllable.Normalize(line)
		for _, r := range word {
			if !unicode.IsLetter(r) && r != '\'' && r != '-' {
				return nil, fmt.Errorf("%s: word %q contains unsupported character %q", path, word, r)
			}
		}
		words = append(words, word)
	}
	return words, scanner.Err()
}
