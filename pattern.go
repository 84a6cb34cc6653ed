package epsnfa

import "github.com/coregx/epsnfa/nfa"

// Pattern searches for a single literal.
type Pattern struct {
	pattern string
	aut     *nfa.NFA
}

// NewPattern builds the search automaton for p.
func NewPattern(p string) *Pattern {
	return &Pattern{pattern: p, aut: nfa.NewSearchNFA(p, "")}
}

// String returns the literal.
func (p *Pattern) String() string {
	return p.pattern
}

// Automaton returns the search automaton. It must not be mutated.
func (p *Pattern) Automaton() nfa.Automaton {
	return p.aut
}

// Search returns the end offset of every occurrence of the literal in text,
// ascending. Occurrences may overlap.
func (p *Pattern) Search(text []byte) []int {
	var ends []int
	sim := nfa.NewSimulator(p.aut)
	sim.Reset(text)
	for sim.HasNext() {
		sim.Next()
		if sim.IsFinal() {
			ends = append(ends, sim.Position())
		}
	}
	return ends
}
