package haiku

import (
	"fmt"
	"strconv"
	"strings"
)

// Pattern is the ordered syllable target of each line in a poem. The
// classic haiku is 5-7-5, but any sequence of positive targets works.
type Pattern []int

// DefaultPattern is the 5-7-5 haiku.
var DefaultPattern = Pattern{5, 7, 5}

// Validate rejects patterns with no lines or with non-positive targets.
func (p Pattern) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("a pattern needs at least one line")
	}
	for i, target := range p {
		if target <= 0 {
			return fmt.Errorf("line %d of the pattern must be positive, got %d", i+1, target)
		}
	}
	return nil
}

// Total returns the syllable count of a whole poem in this pattern.
func (p Pattern) Total() int {
	total := 0
	for _, target := range p {
		total += target
	}
	return total
}

func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, target := range p {
		parts[i] = strconv.Itoa(target)
	}
	return strings.Join(parts, "-")
}

// ParsePattern reads a pattern written as "5-7-5" or "5,7,5".
func ParsePattern(s string) (Pattern, error) {
	sep := "-"
	if strings.Contains(s, ",") {
		sep = ","
	}

	parts := strings.Split(s, sep)
	pattern := make(Pattern, 0, len(parts))
	for _, part := range parts {
		target, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", s, err)
		}
		pattern = append(pattern, target)
	}

	if err := pattern.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", s, err)
	}
	return pattern, nil
}
