package haiku

import (
	"fmt"
	"strings"
)

// Poem is a finished poem: one word sequence per line.
//
// It represents a 'definite' generated poem; every word in it is distinct.
type Poem struct {
	lines [][]string
}

func NewPoem(lines [][]string) Poem {
	return Poem{
		lines: lines,
	}
}

func (p Poem) NumLines() int {
	return len(p.lines)
}

func (p Poem) Line(i int) []string {
	return p.lines[i]
}

// Words returns every word of the poem in reading order.
func (p Poem) Words() []string {
	var words []string
	for _, line := range p.lines {
		words = append(words, line...)
	}
	return words
}

func (p Poem) Repr() string {
	lines := make([]string, p.NumLines())
	for i, line := range p.lines {
		lines[i] = strings.Join(line, " ")
	}
	return strings.Join(lines, "\n")
}

func (p Poem) DebugString() string {
	return fmt.Sprintf("Poem{numLines: %d, lines: %v}", p.NumLines(), p.lines)
}
