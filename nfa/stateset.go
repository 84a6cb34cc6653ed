package nfa

// StateSet is a set of states that remembers insertion order.
//
// States of different automata may be mixed, which the lazy union view relies
// on. Invalid states are never added. Read methods accept a nil receiver and
// treat it as the empty set.
type StateSet struct {
	states []State
	index  map[State]struct{}
}

// NewStateSet returns a set holding the given states.
func NewStateSet(states ...State) *StateSet {
	s := &StateSet{}
	for _, st := range states {
		s.Add(st)
	}
	return s
}

// Add inserts st and reports whether it was not yet present.
func (s *StateSet) Add(st State) bool {
	if !st.IsValid() {
		return false
	}
	if s.index == nil {
		s.index = make(map[State]struct{}, 4)
	}
	if _, ok := s.index[st]; ok {
		return false
	}
	s.index[st] = struct{}{}
	s.states = append(s.states, st)
	return true
}

// AddAll inserts every member of other.
func (s *StateSet) AddAll(other *StateSet) {
	if other == nil {
		return
	}
	for _, st := range other.states {
		s.Add(st)
	}
}

// Contains reports whether st is a member.
func (s *StateSet) Contains(st State) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[st]
	return ok
}

// Len returns the number of members.
func (s *StateSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.states)
}

// IsEmpty reports whether the set has no members.
func (s *StateSet) IsEmpty() bool {
	return s.Len() == 0
}

// States returns a copy of the members in insertion order.
func (s *StateSet) States() []State {
	if s == nil {
		return nil
	}
	out := make([]State, len(s.states))
	copy(out, s.states)
	return out
}

// Each calls fn for every member in insertion order.
func (s *StateSet) Each(fn func(State)) {
	if s == nil {
		return
	}
	for _, st := range s.states {
		fn(st)
	}
}

// Clear removes every member, keeping allocated storage.
func (s *StateSet) Clear() {
	s.states = s.states[:0]
	clear(s.index)
}

// Clone returns an independent copy of s.
func (s *StateSet) Clone() *StateSet {
	out := &StateSet{}
	out.AddAll(s)
	return out
}

// IsSubset reports whether every member of s is a member of other.
func (s *StateSet) IsSubset(other *StateSet) bool {
	if s == nil {
		return true
	}
	if s.Len() > other.Len() {
		return false
	}
	for _, st := range s.states {
		if !other.Contains(st) {
			return false
		}
	}
	return true
}

// Equal reports whether s and other have the same members, in any order.
func (s *StateSet) Equal(other *StateSet) bool {
	return s.Len() == other.Len() && s.IsSubset(other)
}
