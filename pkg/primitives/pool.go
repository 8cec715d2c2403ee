package primitives

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

// Entry is a single usable word instance in a Pool, tagged with the
// syllable count its oracle reported for it.
type Entry struct {
	Word  string
	Count int
}

// Pool represents the set of word instances currently available to a search.
// Entries are identified by stable ids (their position in the pool the
// universe was built from), so an id obtained from one Pool remains valid in
// every Pool derived from it.
//
// A Pool is immutable: WithoutEntries returns a new Pool and never modifies
// the receiver, so sibling search branches can hold different Pools over the
// same underlying universe.
type Pool struct {
	u   *poolUniverse
	set []uint64 // bitset over u.entries; 1 => entry is available
	n   int      // cached count of bits set in set
}

// poolUniverse is the shared immutable entry table behind every Pool derived
// from the same NewPool call.
type poolUniverse struct {
	entries []Entry
	byCount map[int][]int // syllable count -> entry ids, in entry order
	blocks  int
}

func newPoolUniverse(entries []Entry) *poolUniverse {
	byCount := make(map[int][]int)
	for id, e := range entries {
		byCount[e.Count] = append(byCount[e.Count], id)
	}
	return &poolUniverse{
		entries: entries,
		byCount: byCount,
		blocks:  (len(entries) + 63) / 64,
	}
}

func (u *poolUniverse) fullSet() []uint64 {
	set := make([]uint64, u.blocks)
	for i := range set {
		set[i] = ^uint64(0)
	}
	// clear unused bits in last word
	if rem := len(u.entries) % 64; rem != 0 {
		set[len(set)-1] = (uint64(1) << uint(rem)) - 1
	}
	return set
}

// NewPool builds a Pool over the given entries. Entries with equal words are
// distinct instances; whether duplicates are meaningful is decided by whoever
// assembles the entry list.
func NewPool(entries []Entry) Pool {
	u := newPoolUniverse(entries)
	return Pool{
		u:   u,
		set: u.fullSet(),
		n:   len(entries),
	}
}

// Len returns the number of available entries.
func (p Pool) Len() int {
	return p.n
}

// Entry returns the entry for an id. The id stays resolvable even after the
// entry is removed from a derived Pool.
func (p Pool) Entry(id int) Entry {
	return p.u.entries[id]
}

// Has reports whether the entry id is still available in this Pool.
func (p Pool) Has(id int) bool {
	if p.u == nil || id < 0 || id >= len(p.u.entries) {
		return false
	}
	return hasBit(p.set, id)
}

// ids yields the available entry ids in entry order.
func (p Pool) ids() iter.Seq[int] {
	return iterateSetBits(p.set)
}

// Words returns the available words in entry order.
func (p Pool) Words() []string {
	words := make([]string, 0, p.n)
	for id := range p.ids() {
		words = append(words, p.u.entries[id].Word)
	}
	return words
}

// Counts returns the syllable counts of the available entries in entry order.
func (p Pool) Counts() []int {
	counts := make([]int, 0, p.n)
	for id := range p.ids() {
		counts = append(counts, p.u.entries[id].Count)
	}
	return counts
}

// Bucket returns the available words whose syllable count equals count, in
// entry order.
func (p Pool) Bucket(count int) []string {
	var words []string
	for _, id := range p.bucketIDs(count) {
		words = append(words, p.u.entries[id].Word)
	}
	return words
}

// bucketIDs returns the available entry ids whose count equals count, in
// entry order. The returned slice is freshly allocated.
func (p Pool) bucketIDs(count int) []int {
	if p.u == nil {
		return nil
	}
	var ids []int
	for _, id := range p.u.byCount[count] {
		if hasBit(p.set, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// WithoutEntries returns a Pool with the given entry ids removed. Ids that
// are out of range or already removed are ignored; if nothing would change,
// the receiver is returned as-is.
func (p Pool) WithoutEntries(used []int) Pool {
	if len(used) == 0 || p.u == nil {
		return p
	}

	// First, see if anything to remove is currently present.
	needsFiltering := false
	for _, id := range used {
		if id < 0 || id >= len(p.u.entries) {
			continue
		}
		if hasBit(p.set, id) {
			needsFiltering = true
			break
		}
	}
	if !needsFiltering {
		return p
	}

	newSet := make([]uint64, len(p.set))
	copy(newSet, p.set)
	newN := p.n
	for _, id := range used {
		if id < 0 || id >= len(p.u.entries) {
			continue
		}
		if clearBit(newSet, id) {
			newN--
		}
	}

	return Pool{u: p.u, set: newSet, n: newN}
}

func arrayStr(arr []string) string {
	const maxPrint = 3

	if len(arr) == 0 {
		return "[]"
	}
	if len(arr) <= maxPrint {
		return fmt.Sprintf("[%s]", strings.Join(arr, ", "))
	}

	print, rest := arr[:maxPrint], arr[maxPrint:]
	return fmt.Sprintf("[%s, ...%d]", strings.Join(print, ", "), len(rest))
}

func (p Pool) String() string {
	preview := make([]string, 0, 4)
	for id := range p.ids() {
		preview = append(preview, p.u.entries[id].Word)
		if len(preview) > 3 {
			break
		}
	}
	if len(preview) > 3 {
		preview = append(preview[:3], fmt.Sprintf("...%d", p.n-3))
		return fmt.Sprintf("Pool[%s]", strings.Join(preview, ", "))
	}
	return fmt.Sprintf("Pool%s", arrayStr(preview))
}

func iterateSetBits(set []uint64) iter.Seq[int] {
	return func(yield func(int) bool) {
		for bi, block := range set {
			b := block
			for b != 0 {
				tz := bits.TrailingZeros64(b)
				idx := bi*64 + tz
				if !yield(idx) {
					return
				}
				b &= b - 1
			}
		}
	}
}

func hasBit(set []uint64, idx int) bool {
	bi := idx / 64
	bit := uint(idx % 64)
	return (set[bi] & (uint64(1) << bit)) != 0
}

// clearBit clears idx in set and returns true if it was previously set.
func clearBit(set []uint64, idx int) bool {
	bi := idx / 64
	bit := uint(idx % 64)
	mask := uint64(1) << bit
	had := (set[bi] & mask) != 0
	set[bi] &^= mask
	return had
}
