package nfa

import "strconv"

// Suffix is an immutable automaton accepting exactly the suffixes of a
// pattern, the empty suffix included.
//
// States are named by position: i -pattern[i]-> i+1 forms the backbone,
// 0 -EP-> i+1 lets a run start anywhere, 0 is the start state and
// len(pattern) is the only final state.
type Suffix struct {
	aut     *NFA
	pattern string
}

// NewSuffix builds the suffix automaton for pattern. With removeEpsilon the
// epsilon transitions are eliminated before the automaton is frozen.
func NewSuffix(name, pattern string, removeEpsilon bool) *Suffix {
	b := NewBuilder(New(name))
	b.InsertState("0")
	for i := 0; i < len(pattern); i++ {
		b.InsertTransition(strconv.Itoa(i), Of(pattern[i]), strconv.Itoa(i+1))
		b.InsertTransition("0", Epsilon, strconv.Itoa(i+1))
	}
	b.SetStart("0")
	b.MarkFinal(strconv.Itoa(len(pattern)))
	if removeEpsilon {
		b.NFA().RemoveEpsilonTransitions()
	}
	return &Suffix{aut: b.NFA(), pattern: pattern}
}

// Pattern returns the pattern the automaton was built for.
func (s *Suffix) Pattern() string { return s.pattern }

// ID implements Automaton.
func (s *Suffix) ID() AutomatonID { return s.aut.ID() }

// Name implements Automaton.
func (s *Suffix) Name() string { return s.aut.Name() }

// Start implements Automaton.
func (s *Suffix) Start() State { return s.aut.Start() }

// IsStart implements Automaton.
func (s *Suffix) IsStart(st State) bool { return s.aut.IsStart(st) }

// IsFinal implements Automaton.
func (s *Suffix) IsFinal(st State) bool { return s.aut.IsFinal(st) }

// Owns implements Automaton.
func (s *Suffix) Owns(st State) bool { return s.aut.Owns(st) }

// StateName implements Automaton.
func (s *Suffix) StateName(st State) string { return s.aut.StateName(st) }

// EpsilonClosure implements Automaton.
func (s *Suffix) EpsilonClosure(states ...State) *StateSet {
	return s.aut.EpsilonClosure(states...)
}

// Transition implements Automaton.
func (s *Suffix) Transition(sym Symbol, states ...State) *StateSet {
	return s.aut.Transition(sym, states...)
}

// EachState implements Automaton.
func (s *Suffix) EachState(fn func(State)) { s.aut.EachState(fn) }

// EachFinal implements Automaton.
func (s *Suffix) EachFinal(fn func(State)) { s.aut.EachFinal(fn) }

// EachTransition implements Automaton.
func (s *Suffix) EachTransition(fn func(State, Symbol, State)) { s.aut.EachTransition(fn) }

// Dump implements Automaton.
func (s *Suffix) Dump() string { return s.aut.Dump() }
