package nfa

import "strconv"

// NewSearchNFA builds the automaton that recognizes every input ending with
// pattern: a Wildcard self-loop on the start state followed by the literal
// backbone of pattern.
//
// States are named prefix+"0" ... prefix+strconv.Itoa(len(pattern)); prefix
// keeps names distinct when several such automata are combined. For the
// empty pattern the start state is final.
func NewSearchNFA(pattern, prefix string) *NFA {
	name := func(i int) string { return prefix + strconv.Itoa(i) }

	b := NewBuilder(New(prefix))
	b.InsertTransition(name(0), Wildcard, name(0))
	for i := 0; i < len(pattern); i++ {
		b.InsertTransition(name(i), Of(pattern[i]), name(i+1))
	}
	b.SetStart(name(0))
	b.MarkFinal(name(len(pattern)))
	return b.NFA()
}
