package nfa

// Empty is the automaton with a single non-final start state and no
// transitions. It accepts nothing. Empty is immutable and shared.
var Empty Automaton = newEmptyAutomaton()

type emptyAutomaton struct {
	id    AutomatonID
	start State
}

func newEmptyAutomaton() *emptyAutomaton {
	id := nextAutomatonID()
	return &emptyAutomaton{id: id, start: State{owner: id, id: 0}}
}

// ID implements Automaton.
func (e *emptyAutomaton) ID() AutomatonID { return e.id }

// Name implements Automaton.
func (e *emptyAutomaton) Name() string { return "Empty" }

// Start implements Automaton.
func (e *emptyAutomaton) Start() State { return e.start }

// IsStart implements Automaton.
func (e *emptyAutomaton) IsStart(s State) bool { return s == e.start }

// IsFinal implements Automaton.
func (e *emptyAutomaton) IsFinal(State) bool { return false }

// Owns implements Automaton.
func (e *emptyAutomaton) Owns(s State) bool { return s == e.start }

// StateName implements Automaton.
func (e *emptyAutomaton) StateName(s State) string {
	if s == e.start {
		return "Init"
	}
	return ""
}

// EpsilonClosure implements Automaton.
func (e *emptyAutomaton) EpsilonClosure(states ...State) *StateSet {
	result := NewStateSet()
	for _, s := range states {
		if s == e.start {
			result.Add(s)
		}
	}
	return result
}

// Transition implements Automaton.
func (e *emptyAutomaton) Transition(Symbol, ...State) *StateSet { return NewStateSet() }

// EachState implements Automaton.
func (e *emptyAutomaton) EachState(fn func(State)) { fn(e.start) }

// EachFinal implements Automaton.
func (e *emptyAutomaton) EachFinal(func(State)) {}

// EachTransition implements Automaton.
func (e *emptyAutomaton) EachTransition(func(State, Symbol, State)) {}

// Dump implements Automaton.
func (e *emptyAutomaton) Dump() string { return "->Init::\n" }
