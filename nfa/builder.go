package nfa

// Builder constructs an NFA by state name instead of by handle.
//
// Names resolve through the NFA's own interning, so mixing Builder calls with
// direct mutation of the underlying NFA is allowed.
type Builder struct {
	nfa *NFA
}

// NewBuilder returns a builder over n, or over a fresh unnamed NFA if n is nil.
func NewBuilder(n *NFA) *Builder {
	if n == nil {
		n = New("")
	}
	return &Builder{nfa: n}
}

// NFA returns the automaton under construction.
func (b *Builder) NFA() *NFA {
	return b.nfa
}

// State returns the handle for name. Empty names resolve to the zero State.
func (b *Builder) State(name string) State {
	if name == "" {
		return State{}
	}
	return b.nfa.Touch(name)
}

// InsertState makes the named state a member without adding transitions.
func (b *Builder) InsertState(name string) State {
	s, _ := b.nfa.InsertState(b.State(name), false)
	return s
}

// InsertTransition adds src -sym-> dst, creating both states as needed.
func (b *Builder) InsertTransition(src string, sym Symbol, dst string) {
	b.nfa.InsertTransition(b.State(src), sym, b.State(dst))
}

// SetStart makes the named member state the start state.
func (b *Builder) SetStart(name string) {
	b.nfa.SetStart(b.State(name))
}

// MarkFinal marks the named member state final.
func (b *Builder) MarkFinal(name string) {
	b.nfa.MarkFinal(b.State(name))
}

// UnmarkFinal marks the named member state non-final.
func (b *Builder) UnmarkFinal(name string) {
	b.nfa.UnmarkFinal(b.State(name))
}

// Transition returns the targets of name on sym.
func (b *Builder) Transition(name string, sym Symbol) *StateSet {
	return b.nfa.Transition(sym, b.State(name))
}

// TransitionAll returns the union of the targets of every named state on sym.
func (b *Builder) TransitionAll(names []string, sym Symbol) *StateSet {
	states := make([]State, 0, len(names))
	for _, name := range names {
		if s := b.State(name); s.IsValid() {
			states = append(states, s)
		}
	}
	return b.nfa.Transition(sym, states...)
}
