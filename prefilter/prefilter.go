// Package prefilter finds candidate positions for multi-pattern literal
// search before the automaton runs.
//
// A prefilter never reports a position past the start of an occurrence: if
// Find(haystack, start) returns p, no literal occurs in haystack starting in
// [start, p). The caller may therefore begin simulation at p without losing
// matches. Find returns -1 when no literal occurs at or after start, in which
// case the caller can stop.
//
// The strategy is chosen from the literal set:
//   - one single-byte literal: memchr (bytes.IndexByte)
//   - one literal: memmem (bytes.Index)
//   - several literals: Aho-Corasick (github.com/coregx/ahocorasick)
package prefilter

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/coregx/ahocorasick"
)

var (
	// ErrNoLiterals is returned by New when the literal set is empty.
	ErrNoLiterals = errors.New("prefilter: no literals")

	// ErrEmptyLiteral is returned by New when a literal is empty. An empty
	// literal occurs everywhere, so no position can be skipped.
	ErrEmptyLiteral = errors.New("prefilter: empty literal")
)

// Prefilter finds candidate positions in a haystack.
type Prefilter interface {
	// Find returns a position p >= start such that no literal occurrence
	// starts in [start, p), or -1 if no literal occurs at or after start.
	Find(haystack []byte, start int) int

	// IsMatch reports whether any literal occurs in haystack.
	IsMatch(haystack []byte) bool

	// LiteralCount returns the number of distinct literals.
	LiteralCount() int
}

// New builds the prefilter for literals. Duplicate literals are merged.
func New(literals [][]byte) (Prefilter, error) {
	if len(literals) == 0 {
		return nil, ErrNoLiterals
	}

	seen := make(map[string]struct{}, len(literals))
	distinct := make([][]byte, 0, len(literals))
	for i, lit := range literals {
		if len(lit) == 0 {
			return nil, fmt.Errorf("literal %d: %w", i, ErrEmptyLiteral)
		}
		if _, dup := seen[string(lit)]; dup {
			continue
		}
		seen[string(lit)] = struct{}{}
		distinct = append(distinct, bytes.Clone(lit))
	}

	if len(distinct) == 1 {
		if len(distinct[0]) == 1 {
			return newMemchr(distinct[0][0]), nil
		}
		return newMemmem(distinct[0]), nil
	}
	return newAhoCorasick(distinct)
}

// memchr finds a single byte.
type memchr struct {
	needle byte
}

func newMemchr(needle byte) *memchr {
	return &memchr{needle: needle}
}

// Find implements Prefilter.
func (p *memchr) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.IndexByte(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsMatch implements Prefilter.
func (p *memchr) IsMatch(haystack []byte) bool {
	return bytes.IndexByte(haystack, p.needle) >= 0
}

// LiteralCount implements Prefilter.
func (p *memchr) LiteralCount() int { return 1 }

// memmem finds a single substring.
type memmem struct {
	needle []byte
}

func newMemmem(needle []byte) *memmem {
	return &memmem{needle: needle}
}

// Find implements Prefilter.
func (p *memmem) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsMatch implements Prefilter.
func (p *memmem) IsMatch(haystack []byte) bool {
	return bytes.Contains(haystack, p.needle)
}

// LiteralCount implements Prefilter.
func (p *memmem) LiteralCount() int { return 1 }

// ahoCorasick finds any of several literals in one pass.
//
// The automaton reports one occurrence per call. Whether that is the
// occurrence that starts first or ends first depends on the match
// semantics, so Find backs off to the earliest start any occurrence ending
// at or after the reported end could have. Both semantics satisfy the
// Prefilter contract that way.
type ahoCorasick struct {
	auto   *ahocorasick.Automaton
	count  int
	maxLen int
}

func newAhoCorasick(literals [][]byte) (*ahoCorasick, error) {
	builder := ahocorasick.NewBuilder()
	maxLen := 0
	for _, lit := range literals {
		builder.AddPattern(lit)
		maxLen = max(maxLen, len(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("prefilter: build aho-corasick: %w", err)
	}
	return &ahoCorasick{auto: auto, count: len(literals), maxLen: maxLen}, nil
}

// Find implements Prefilter.
func (p *ahoCorasick) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return max(start, m.End-p.maxLen)
}

// IsMatch implements Prefilter.
func (p *ahoCorasick) IsMatch(haystack []byte) bool {
	return p.auto.IsMatch(haystack)
}

// LiteralCount implements Prefilter.
func (p *ahoCorasick) LiteralCount() int { return p.count }
