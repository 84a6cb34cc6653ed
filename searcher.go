// Package epsnfa finds occurrences of many literal patterns in a text with a
// non-deterministic finite automaton.
//
// Every pattern p becomes a search automaton accepting Σ*p: a start state
// with a wildcard self-loop feeding the bytes of p. The pattern automata are
// combined with the union of package nfa, eagerly into one automaton or
// lazily through a view, and the result is simulated over the text. At every
// position where some pattern ends, Search reports one Match.
//
// Basic usage:
//
//	s, err := epsnfa.Compile("he", "she", "his", "hers")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range s.SearchString("ushers") {
//	    fmt.Println(s.Patterns()[m.Pattern], m.End)
//	}
//
// When several patterns end at the same position the longest one wins, and
// among patterns of equal length the one given first.
//
// Search jumps over text in which no pattern occurs, using the literal
// prefilter of package prefilter. Set Config.EnablePrefilter to false to
// simulate every byte.
package epsnfa

import (
	"fmt"
	"strconv"

	"github.com/coregx/epsnfa/nfa"
	"github.com/coregx/epsnfa/prefilter"
)

// Match is one reported occurrence: pattern index and end offset (exclusive)
// in the text.
type Match struct {
	Pattern int
	End     int
}

// Start returns the start offset of m given the patterns it was found with.
func (m Match) Start(patterns []string) int {
	return m.End - len(patterns[m.Pattern])
}

// Searcher is a compiled multi-pattern search.
//
// A Searcher is immutable after compilation and safe for concurrent use.
type Searcher struct {
	patterns []string
	config   Config
	aut      nfa.Composite
	// branches maps every final state of aut to its pattern index.
	branches map[nfa.State]int
	pf       prefilter.Prefilter
	states   *searchStatePool
}

// Compile builds a Searcher for patterns with DefaultConfig.
func Compile(patterns ...string) (*Searcher, error) {
	return CompileWithConfig(DefaultConfig(), patterns...)
}

// MustCompile is like Compile but panics on error.
func MustCompile(patterns ...string) *Searcher {
	s, err := Compile(patterns...)
	if err != nil {
		panic(fmt.Sprintf("epsnfa: Compile(%q): %v", patterns, err))
	}
	return s
}

// CompileWithConfig builds a Searcher for patterns.
//
// Duplicate patterns are allowed; a match is reported under the lowest
// index. The empty pattern matches at every position.
func CompileWithConfig(config Config, patterns ...string) (*Searcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}
	if len(patterns) > config.MaxPatterns {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyPatterns, len(patterns), config.MaxPatterns)
	}

	operands := make([]nfa.Automaton, len(patterns))
	for i, p := range patterns {
		operands[i] = nfa.NewSearchNFA(p, "p"+strconv.Itoa(i)+".")
	}
	factory := nfa.Eager
	if config.Strategy == StrategyLazy {
		factory = nfa.Lazy
	}
	aut, err := factory.Union("search", operands...)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		patterns: append([]string(nil), patterns...),
		config:   config,
		aut:      aut,
		branches: make(map[nfa.State]int, len(patterns)),
	}
	aut.EachFinal(func(st nfa.State) {
		if o, ok := aut.Origin(st); ok && o.Final {
			s.branches[st] = o.Branch
		}
	})

	if config.EnablePrefilter && !hasEmpty(patterns) {
		literals := make([][]byte, len(patterns))
		for i, p := range patterns {
			literals[i] = []byte(p)
		}
		if s.pf, err = prefilter.New(literals); err != nil {
			return nil, err
		}
	}
	s.states = newSearchStatePool(aut, s.pf)
	return s, nil
}

func hasEmpty(patterns []string) bool {
	for _, p := range patterns {
		if p == "" {
			return true
		}
	}
	return false
}

// Patterns returns a copy of the patterns in index order.
func (s *Searcher) Patterns() []string {
	return append([]string(nil), s.patterns...)
}

// Config returns the configuration the Searcher was built with.
func (s *Searcher) Config() Config {
	return s.config
}

// Automaton returns the union automaton the Searcher simulates.
// It must not be mutated.
func (s *Searcher) Automaton() nfa.Composite {
	return s.aut
}

// Dump renders the union automaton.
func (s *Searcher) Dump() string {
	return s.aut.Dump()
}

// Search returns one Match for every position of text at which at least one
// pattern ends, in text order.
func (s *Searcher) Search(text []byte) []Match {
	state := s.states.get()
	defer s.states.put(state)

	tracker := state.tracker
	at := 0
	if tracker != nil {
		if at = tracker.Find(text, 0); at < 0 {
			return nil
		}
	}

	// Once every pattern has consumed a byte, each pattern's wildcard state
	// stays active forever. An active set of exactly those states carries no
	// partial occurrence, so the run may jump to the next candidate.
	idle := len(s.patterns)

	sim := state.sim
	sim.Reset(text[at:])
	var matches []Match
	confirmed := false
	for sim.HasNext() {
		sim.Next()
		end := at + sim.Position()
		if sim.IsFinal() {
			if m, ok := s.pick(sim.FinalStates(), end); ok {
				matches = append(matches, m)
				if tracker != nil && !confirmed {
					tracker.ConfirmMatch()
					confirmed = true
				}
			}
		}

		if tracker == nil || !tracker.IsActive() || sim.ActiveLen() != idle {
			continue
		}
		next := tracker.Find(text, end)
		if next < 0 {
			break
		}
		confirmed = false
		if next > end {
			at = next
			sim.Reset(text[at:])
		}
	}
	return matches
}

// SearchString is like Search but takes a string.
func (s *Searcher) SearchString(text string) []Match {
	return s.Search([]byte(text))
}

// IsMatch reports whether any pattern occurs in text.
func (s *Searcher) IsMatch(text []byte) bool {
	if s.pf != nil {
		return s.pf.IsMatch(text)
	}
	state := s.states.get()
	defer s.states.put(state)

	sim := state.sim
	sim.Reset(text)
	for sim.HasNext() {
		sim.Next()
		if sim.IsFinal() {
			return true
		}
	}
	return false
}

// pick applies the tie-break to the final states active at end: the longest
// pattern wins, then the lowest index.
func (s *Searcher) pick(finals []nfa.State, end int) (Match, bool) {
	best := -1
	for _, st := range finals {
		b, ok := s.branches[st]
		if !ok {
			continue
		}
		if best < 0 || len(s.patterns[b]) > len(s.patterns[best]) ||
			(len(s.patterns[b]) == len(s.patterns[best]) && b < best) {
			best = b
		}
	}
	if best < 0 {
		return Match{}, false
	}
	return Match{Pattern: best, End: end}, true
}
