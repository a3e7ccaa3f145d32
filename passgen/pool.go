package passgen

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Pool is an ordered set of unique characters.
//
// The zero value is an empty pool ready to use.
type Pool struct {
	chars []rune
	index map[rune]int
}

// New returns an empty pool.
func New() *Pool {
	return &Pool{}
}

// Parse builds a pool from the distinct characters of s in first-seen order.
func Parse(s string) *Pool {
	p := New()
	p.ExtendFromString(s)
	return p
}

// Collect builds a pool from a sequence of characters. Duplicates are dropped.
func Collect(seq iter.Seq[rune]) *Pool {
	p := New()
	p.Extend(seq)
	return p
}

// Len returns the number of characters in the pool.
func (p *Pool) Len() int {
	return len(p.chars)
}

// IsEmpty reports whether the pool has no characters.
func (p *Pool) IsEmpty() bool {
	return len(p.chars) == 0
}

// Contains reports whether ch is in the pool.
func (p *Pool) Contains(ch rune) bool {
	_, ok := p.index[ch]
	return ok
}

// ContainsAll reports whether every character of s is in the pool.
func (p *Pool) ContainsAll(s string) bool {
	for _, ch := range s {
		if !p.Contains(ch) {
			return false
		}
	}
	return true
}

// Get returns the character at position i.
func (p *Pool) Get(i int) (rune, bool) {
	if i < 0 || i >= len(p.chars) {
		return 0, false
	}
	return p.chars[i], true
}

// Insert appends ch if it is not already present and reports whether the
// pool changed.
func (p *Pool) Insert(ch rune) bool {
	if p.Contains(ch) {
		return false
	}
	if p.index == nil {
		p.index = make(map[rune]int)
	}
	p.index[ch] = len(p.chars)
	p.chars = append(p.chars, ch)
	return true
}

// Extend inserts every character of seq in order.
func (p *Pool) Extend(seq iter.Seq[rune]) {
	for ch := range seq {
		p.Insert(ch)
	}
}

// ExtendFromString inserts every character of s in order and returns p.
func (p *Pool) ExtendFromString(s string) *Pool {
	for _, ch := range s {
		p.Insert(ch)
	}
	return p
}

// SwapRemove removes ch by moving the last character into its slot.
// It is O(1) but does not preserve order.
func (p *Pool) SwapRemove(ch rune) bool {
	i, ok := p.index[ch]
	if !ok {
		return false
	}
	last := len(p.chars) - 1
	if i != last {
		moved := p.chars[last]
		p.chars[i] = moved
		p.index[moved] = i
	}
	p.chars = p.chars[:last]
	delete(p.index, ch)
	return true
}

// ShiftRemove removes ch and shifts every later character one slot left.
// It is O(n) and preserves order.
func (p *Pool) ShiftRemove(ch rune) bool {
	i, ok := p.index[ch]
	if !ok {
		return false
	}
	p.chars = slices.Delete(p.chars, i, i+1)
	delete(p.index, ch)
	for j := i; j < len(p.chars); j++ {
		p.index[p.chars[j]] = j
	}
	return true
}

// RemoveAll swap-removes every character of s. Characters not in the pool
// are ignored.
func (p *Pool) RemoveAll(s string) {
	for _, ch := range s {
		p.SwapRemove(ch)
	}
}

// Sort orders the pool by ascending code point. Positions observed before
// the call are no longer valid.
func (p *Pool) Sort() {
	slices.Sort(p.chars)
	for i, ch := range p.chars {
		p.index[ch] = i
	}
}

// All returns an iterator over the pool in its current order.
func (p *Pool) All() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, ch := range p.chars {
			if !yield(ch) {
				return
			}
		}
	}
}

// Runes returns a copy of the pool's characters in their current order.
func (p *Pool) Runes() []rune {
	return slices.Clone(p.chars)
}

// Clone returns an independent copy of p.
func (p *Pool) Clone() *Pool {
	return &Pool{chars: slices.Clone(p.chars), index: maps.Clone(p.index)}
}

// Equal reports whether p and other hold the same characters in the same
// order.
func (p *Pool) Equal(other *Pool) bool {
	if p == nil || other == nil {
		return p == other
	}
	return slices.Equal(p.chars, other.chars)
}

func (p *Pool) String() string {
	var b strings.Builder
	for _, ch := range p.chars {
		b.WriteRune(ch)
	}
	return b.String()
}

// MarshalText encodes the pool as its characters in order.
func (p *Pool) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText replaces the pool's contents with the distinct characters
// of text.
func (p *Pool) UnmarshalText(text []byte) error {
	*p = Pool{}
	p.ExtendFromString(string(text))
	return nil
}
