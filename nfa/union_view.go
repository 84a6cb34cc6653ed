package nfa

import (
	"strconv"
	"strings"
)

// UnionView is an immutable automaton for the union of its operands that
// copies none of their states.
//
// The view owns a single synthetic start state, "Init", with Epsilon
// transitions to every operand's start state. Every other query is forwarded
// to the operand that owns the queried state. Ownership is resolved through
// an index from operand identity to branch built once at construction, with
// a linear Owns scan as fallback for operands (such as nested views) whose
// states are owned by several identities. Queries about states no operand
// owns yield empty results.
//
// The view borrows its operands: mutating one afterwards changes or
// invalidates the view.
type UnionView struct {
	id       AutomatonID
	name     string
	start    State
	operands []Automaton
	index    map[AutomatonID]int
	// starts[i] is the start state of operands[startBranch[i]].
	starts      []State
	startBranch []int
}

// NewUnionView returns the lazy union of operands.
func NewUnionView(name string, operands ...Automaton) (*UnionView, error) {
	if err := checkOperands("union", "lazy", operands); err != nil {
		return nil, err
	}
	id := nextAutomatonID()
	v := &UnionView{
		id:       id,
		name:     name,
		start:    State{owner: id, id: 0},
		operands: append([]Automaton(nil), operands...),
		index:    make(map[AutomatonID]int, len(operands)),
		starts:   make([]State, 0, len(operands)),
	}
	for i, op := range v.operands {
		if _, dup := v.index[op.ID()]; !dup {
			v.index[op.ID()] = i
		}
		if st := op.Start(); st.IsValid() {
			v.starts = append(v.starts, st)
			v.startBranch = append(v.startBranch, i)
		}
	}
	return v, nil
}

// Branch returns the index of the operand owning s, or -1.
func (v *UnionView) Branch(s State) int {
	if !s.IsValid() || s.owner == v.id {
		return -1
	}
	if i, ok := v.index[s.owner]; ok {
		return i
	}
	for i, op := range v.operands {
		if op.Owns(s) {
			return i
		}
	}
	return -1
}

// Origin returns the branch owning s. The view copies nothing, so the
// origin state is s itself.
func (v *UnionView) Origin(s State) (Origin, bool) {
	b := v.Branch(s)
	if b < 0 {
		return Origin{}, false
	}
	return Origin{Branch: b, State: s, Final: v.operands[b].IsFinal(s)}, true
}

// Operands returns the borrowed operands.
func (v *UnionView) Operands() []Automaton {
	return append([]Automaton(nil), v.operands...)
}

// ID implements Automaton.
func (v *UnionView) ID() AutomatonID { return v.id }

// Name implements Automaton.
func (v *UnionView) Name() string { return v.name }

// Start returns the synthetic start state Init.
func (v *UnionView) Start() State { return v.start }

// IsStart implements Automaton.
func (v *UnionView) IsStart(s State) bool { return s == v.start }

// IsFinal reports whether any operand reports s final.
func (v *UnionView) IsFinal(s State) bool {
	if s == v.start {
		return false
	}
	for _, op := range v.operands {
		if op.IsFinal(s) {
			return true
		}
	}
	return false
}

// Owns reports whether s is Init or a member of some operand.
func (v *UnionView) Owns(s State) bool {
	return s == v.start || v.Branch(s) >= 0
}

// StateName returns "Init" for the start state and the owning operand's
// name for any other state.
func (v *UnionView) StateName(s State) string {
	if s == v.start {
		return "Init"
	}
	if b := v.Branch(s); b >= 0 {
		return v.operands[b].StateName(s)
	}
	return ""
}

// EpsilonClosure closes each state within the operand that owns it. Init
// reaches the closure of every operand start.
func (v *UnionView) EpsilonClosure(states ...State) *StateSet {
	result := NewStateSet()
	for _, s := range states {
		if s == v.start {
			result.Add(s)
			for i, st := range v.starts {
				result.AddAll(v.operands[v.startBranch[i]].EpsilonClosure(st))
			}
			continue
		}
		if b := v.Branch(s); b >= 0 {
			result.AddAll(v.operands[b].EpsilonClosure(s))
		}
	}
	return result
}

// Transition follows sym within the owning operand. Init only has Epsilon
// transitions, to the operand starts.
func (v *UnionView) Transition(sym Symbol, states ...State) *StateSet {
	result := NewStateSet()
	for _, s := range states {
		if s == v.start {
			if sym == Epsilon {
				for _, st := range v.starts {
					result.Add(st)
				}
			}
			continue
		}
		if b := v.Branch(s); b >= 0 {
			result.AddAll(v.operands[b].Transition(sym, s))
		}
	}
	return result
}

// EachState visits Init, then the states of every operand in order.
func (v *UnionView) EachState(fn func(State)) {
	fn(v.start)
	for _, op := range v.operands {
		op.EachState(fn)
	}
}

// EachFinal visits the final states of every operand in order.
func (v *UnionView) EachFinal(fn func(State)) {
	for _, op := range v.operands {
		op.EachFinal(fn)
	}
}

// EachTransition visits the edges leaving Init, then the transitions of
// every operand in order.
func (v *UnionView) EachTransition(fn func(src State, sym Symbol, dst State)) {
	for _, st := range v.starts {
		fn(v.start, Epsilon, st)
	}
	for _, op := range v.operands {
		op.EachTransition(fn)
	}
}

// Dump renders the synthetic start state followed by the dump of every
// operand, each introduced by a "[i]" header line.
func (v *UnionView) Dump() string {
	var sb strings.Builder
	sb.WriteString("->Init::")
	if len(v.starts) > 0 {
		sb.WriteString(" (EP:")
		for _, st := range v.starts {
			sb.WriteByte(' ')
			sb.WriteString(v.StateName(st))
		}
		sb.WriteByte(')')
	}
	sb.WriteByte('\n')
	for i, op := range v.operands {
		sb.WriteString("[")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString("]\n")
		sb.WriteString(op.Dump())
	}
	return sb.String()
}
