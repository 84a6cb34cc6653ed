package nfa

import (
	"fmt"
	"sync/atomic"
)

// StateID is the index of a state inside the arena of the automaton that
// interned it.
type StateID uint32

// InvalidState is the StateID of no state.
const InvalidState StateID = 0xFFFFFFFF

// AutomatonID identifies an automaton instance for the lifetime of the
// process. The zero value identifies nothing.
type AutomatonID uint32

var lastAutomatonID atomic.Uint32

func nextAutomatonID() AutomatonID {
	return AutomatonID(lastAutomatonID.Add(1))
}

// State is a handle to a state: the owning automaton plus the state's index
// in that automaton's arena.
//
// Two handles are equal iff they have the same owner and index. An automaton
// interns each state name once, so equality is also (owner, name) equality.
// The zero State is the absent state.
type State struct {
	owner AutomatonID
	id    StateID
}

// IsValid reports whether s refers to a state of some automaton.
func (s State) IsValid() bool {
	return s.owner != 0
}

// Owner returns the identity of the automaton that created s.
func (s State) Owner() AutomatonID {
	return s.owner
}

// ID returns the arena index of s inside its owner.
func (s State) ID() StateID {
	return s.id
}

// String returns a human-readable representation of the handle
func (s State) String() string {
	if !s.IsValid() {
		return "State(invalid)"
	}
	return fmt.Sprintf("State(%d:%d)", s.owner, s.id)
}
