package nfa

import (
	"github.com/coregx/epsnfa/internal/conv"
	"github.com/coregx/epsnfa/internal/sparse"
)

// Simulator runs an automaton over an input by tracking the set of active
// states, the way a Pike VM tracks threads.
//
// The active set starts as the epsilon closure of the start state. Each step
// consumes one input byte: the successor set is the union of the transitions
// on that byte and on Wildcard from every active state, closed under Epsilon.
// Complement transitions are not followed.
//
// Iteration follows the iterator idiom. The first Next after Reset consumes
// nothing, so the initial configuration is observable:
//
//	sim.Reset(input)
//	for sim.HasNext() {
//	    sim.Next()
//	    if sim.IsFinal() {
//	        // a word ending at sim.Position() is accepted
//	    }
//	}
//
// Automata backed by a single arena (*NFA, *Composition, *Suffix) are stepped
// over two sparse sets allocated by Reset and cleared on every step, so a step
// costs time proportional to the active states and allocates nothing. Other
// automata are stepped through the Automaton interface.
//
// A Simulator is not safe for concurrent use; create one per goroutine. The
// automaton it drives may be shared if nothing mutates it during a run.
type Simulator struct {
	aut   Automaton
	input []byte
	pos   int
	fresh bool

	// arena is non-nil when aut is backed by one *NFA. curr holds the active
	// states, next is the scratch set of the step in progress.
	arena *NFA
	curr  *sparse.Set
	next  *sparse.Set
	stack []StateID

	// active is used when arena is nil.
	active *StateSet
}

// NewSimulator returns a simulator for a. Call Reset before stepping.
func NewSimulator(a Automaton) *Simulator {
	s := &Simulator{
		aut:   a,
		arena: arenaOf(a),
	}
	if s.arena == nil {
		s.active = NewStateSet()
	}
	return s
}

// arenaOf returns the NFA whose arena holds every state of a, or nil.
func arenaOf(a Automaton) *NFA {
	switch v := a.(type) {
	case *NFA:
		return v
	case *Composition:
		return v.NFA
	case *Suffix:
		return v.aut
	}
	return nil
}

// Automaton returns the simulated automaton.
func (s *Simulator) Automaton() Automaton {
	return s.aut
}

// Reset starts a new run over input.
func (s *Simulator) Reset(input []byte) {
	s.input = input
	s.pos = 0
	s.fresh = true
	if s.arena == nil {
		s.active = s.aut.EpsilonClosure(s.aut.Start())
		return
	}

	capacity := conv.IntToUint32(len(s.arena.names))
	s.curr = fit(s.curr, capacity)
	s.next = fit(s.next, capacity)
	s.curr.Clear()
	if s.arena.start != InvalidState {
		s.stack = s.arena.closure(append(s.stack[:0], s.arena.start), s.curr, nil)
	}
}

// fit returns set emptied and able to hold values below capacity, allocating
// only when the arena has outgrown it.
func fit(set *sparse.Set, capacity uint32) *sparse.Set {
	if set == nil {
		return sparse.New(capacity)
	}
	if set.Capacity() < int(capacity) {
		set.Resize(capacity)
	}
	set.Clear()
	return set
}

// HasNext reports whether Next has a step to take.
func (s *Simulator) HasNext() bool {
	return s.fresh || s.pos < len(s.input)
}

// Next advances the run by one step. Right after Reset it only clears the
// reset flag; afterwards it consumes the byte at Position. Calling Next when
// HasNext is false does nothing.
func (s *Simulator) Next() {
	if s.fresh {
		s.fresh = false
		return
	}
	if s.pos >= len(s.input) {
		return
	}

	sym := Of(s.input[s.pos])
	s.pos++
	if s.arena == nil {
		current := s.active.states
		next := s.aut.Transition(sym, current...)
		next.AddAll(s.aut.Transition(Wildcard, current...))
		s.active = s.aut.EpsilonClosure(next.states...)
		return
	}

	stack := s.stack[:0]
	for _, id := range s.curr.Values() {
		out := s.arena.edges[id]
		stack = append(stack, out[sym]...)
		stack = append(stack, out[Wildcard]...)
	}
	s.next.Clear()
	s.stack = s.arena.closure(stack, s.next, nil)
	s.curr, s.next = s.next, s.curr
}

// Position returns the number of input bytes consumed so far.
func (s *Simulator) Position() int {
	return s.pos
}

// Active returns a copy of the active state set.
func (s *Simulator) Active() *StateSet {
	if s.arena == nil {
		return s.active.Clone()
	}
	out := NewStateSet()
	for _, id := range s.curr.Values() {
		out.Add(s.arena.handle(StateID(id)))
	}
	return out
}

// ActiveLen returns the number of active states.
func (s *Simulator) ActiveLen() int {
	if s.arena == nil {
		return s.active.Len()
	}
	return s.curr.Len()
}

func (s *Simulator) stopped() bool {
	if s.arena == nil {
		return s.active.IsEmpty()
	}
	return s.curr.IsEmpty()
}

// IsFinal reports whether any active state is final.
func (s *Simulator) IsFinal() bool {
	if s.arena != nil {
		for _, id := range s.curr.Values() {
			if s.arena.final[id] {
				return true
			}
		}
		return false
	}
	for _, st := range s.active.states {
		if s.aut.IsFinal(st) {
			return true
		}
	}
	return false
}

// FinalStates returns the active final states in active-set order.
// It is non-empty iff IsFinal is true.
func (s *Simulator) FinalStates() []State {
	var out []State
	if s.arena != nil {
		for _, id := range s.curr.Values() {
			if s.arena.final[id] {
				out = append(out, s.arena.handle(StateID(id)))
			}
		}
		return out
	}
	for _, st := range s.active.states {
		if s.aut.IsFinal(st) {
			out = append(out, st)
		}
	}
	return out
}

// Accepts reports whether the automaton accepts input. The run stops early
// once the active set is empty: no transition leads out of the empty set.
func (s *Simulator) Accepts(input []byte) bool {
	s.Reset(input)
	for s.HasNext() {
		if s.stopped() {
			return false
		}
		s.Next()
	}
	return s.IsFinal()
}
