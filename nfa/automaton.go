package nfa

// Automaton is the capability set shared by every automaton representation:
// the mutable *NFA, the Empty constant, the immutable *Suffix wrapper, the
// eager *Composition and the lazy *UnionView.
//
// Queries never fail. A state the automaton does not own, an invalid state or
// an invalid symbol simply contributes nothing to a result. Returned sets are
// fresh and owned by the caller.
type Automaton interface {
	// ID returns the identity that owns the states this automaton creates.
	ID() AutomatonID

	// Name returns the automaton's name. It may be empty.
	Name() string

	// Start returns the start state, or the zero State if none is set.
	Start() State

	// IsStart reports whether s is the start state.
	IsStart(s State) bool

	// IsFinal reports whether s is a final (accepting) state.
	IsFinal(s State) bool

	// Owns reports whether s is a state of this automaton.
	Owns(s State) bool

	// StateName returns the name of s, or "" if s is not owned.
	StateName(s State) string

	// EpsilonClosure returns every state reachable from the given states
	// through zero or more Epsilon transitions, the given states included.
	EpsilonClosure(states ...State) *StateSet

	// Transition returns the states reachable from the given states by
	// exactly one transition labeled sym.
	Transition(sym Symbol, states ...State) *StateSet

	// EachState calls fn for every state.
	EachState(fn func(State))

	// EachFinal calls fn for every final state.
	EachFinal(fn func(State))

	// EachTransition calls fn for every (source, symbol, target) triple.
	EachTransition(fn func(src State, sym Symbol, dst State))

	// Dump renders a deterministic, human-readable transition table.
	Dump() string
}
