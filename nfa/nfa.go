package nfa

import (
	"slices"
	"strings"

	"github.com/coregx/epsnfa/internal/conv"
	"github.com/coregx/epsnfa/internal/sparse"
)

// NFA is a mutable non-deterministic finite automaton with epsilon
// transitions.
//
// States live in a per-automaton arena: Touch interns a name and hands out a
// State whose index is local to this NFA. A touched state becomes a member
// once it is inserted, either explicitly or as the endpoint of a transition.
// Handles of other automata are never members and are ignored by every
// operation.
//
// Mutating operations treat absent arguments (invalid or foreign states,
// invalid symbols) as silent no-ops.
type NFA struct {
	id   AutomatonID
	name string

	// names and ids form the arena: StateID <-> name, 1:1.
	names []string
	ids   map[string]StateID

	// member, final and edges are indexed by StateID.
	member []bool
	final  []bool
	// edges[src][sym] is sorted ascending and never empty.
	edges []map[Symbol][]StateID

	// order lists members in insertion order.
	order []StateID
	start StateID
}

// New creates an empty automaton.
func New(name string) *NFA {
	return &NFA{
		id:    nextAutomatonID(),
		name:  name,
		ids:   make(map[string]StateID),
		start: InvalidState,
	}
}

// ID returns the identity of this automaton.
func (n *NFA) ID() AutomatonID {
	return n.id
}

// Name returns the automaton's name.
func (n *NFA) Name() string {
	return n.name
}

// Len returns the number of member states.
func (n *NFA) Len() int {
	return len(n.order)
}

// Touch returns the handle for the state called name, interning the name if
// it is new. The state does not become a member.
func (n *NFA) Touch(name string) State {
	if id, ok := n.ids[name]; ok {
		return n.handle(id)
	}
	id := StateID(conv.IntToIndex(len(n.names)))
	n.names = append(n.names, name)
	n.member = append(n.member, false)
	n.final = append(n.final, false)
	n.edges = append(n.edges, nil)
	n.ids[name] = id
	return n.handle(id)
}

func (n *NFA) handle(id StateID) State {
	return State{owner: n.id, id: id}
}

// local resolves a handle to an index of this arena.
func (n *NFA) local(s State) (StateID, bool) {
	if s.owner != n.id || int(s.id) >= len(n.names) {
		return InvalidState, false
	}
	return s.id, true
}

// Contains reports whether s is a member state.
func (n *NFA) Contains(s State) bool {
	id, ok := n.local(s)
	return ok && n.member[id]
}

// Owns is Contains.
func (n *NFA) Owns(s State) bool {
	return n.Contains(s)
}

// StateName returns the name s was touched with.
func (n *NFA) StateName(s State) string {
	id, ok := n.local(s)
	if !ok {
		return ""
	}
	return n.names[id]
}

func (n *NFA) insertIfNew(id StateID) bool {
	if n.member[id] {
		return false
	}
	n.member[id] = true
	n.order = append(n.order, id)
	return true
}

// AvailableState returns the handle for name, or for name followed by as
// few ' characters as needed, that is not a member yet. The returned state
// is touched but not inserted.
func (n *NFA) AvailableState(name string) State {
	candidate := name
	for {
		id, ok := n.ids[candidate]
		if !ok || !n.member[id] {
			return n.Touch(candidate)
		}
		candidate += "'"
	}
}

// InsertState makes s a member.
//
// If s is new it is inserted and returned with true. If s is already a member
// and force is false, s is returned with false and nothing changes. With
// force, a fresh state named by appending ' characters to the name of s is
// inserted and returned with true, so forced insertion never collides.
//
// An absent s yields (State{}, false).
func (n *NFA) InsertState(s State, force bool) (State, bool) {
	id, ok := n.local(s)
	if !ok {
		return State{}, false
	}
	if n.insertIfNew(id) {
		return s, true
	}
	if !force {
		return s, false
	}
	fresh := n.AvailableState(n.names[id])
	invariant(n.insertIfNew(fresh.id), "available state already a member", fresh)
	return fresh, true
}

// InsertTransition adds the transition src -sym-> dst, inserting src and dst
// if they are not members yet. Inserting an existing transition changes
// nothing.
func (n *NFA) InsertTransition(src State, sym Symbol, dst State) {
	sid, ok := n.local(src)
	if !ok || !sym.IsValid() {
		return
	}
	did, ok := n.local(dst)
	if !ok {
		return
	}
	n.insertIfNew(sid)
	n.insertIfNew(did)
	n.addTarget(sid, sym, did)
}

// RemoveTransition deletes the transition src -sym-> dst if present.
// Member states are kept even if they lose all their transitions.
func (n *NFA) RemoveTransition(src State, sym Symbol, dst State) {
	sid, ok := n.local(src)
	if !ok || !n.member[sid] {
		return
	}
	did, ok := n.local(dst)
	if !ok {
		return
	}
	n.removeTarget(sid, sym, did)
}

func (n *NFA) addTarget(src StateID, sym Symbol, dst StateID) {
	invariant(n.member[src] && n.member[dst], "transition endpoint is not a member", n.handle(src))
	image := n.edges[src]
	if image == nil {
		image = make(map[Symbol][]StateID, 2)
		n.edges[src] = image
	}
	targets := image[sym]
	i, found := slices.BinarySearch(targets, dst)
	if found {
		return
	}
	image[sym] = slices.Insert(targets, i, dst)
}

func (n *NFA) removeTarget(src StateID, sym Symbol, dst StateID) {
	image := n.edges[src]
	targets := image[sym]
	i, found := slices.BinarySearch(targets, dst)
	if !found {
		return
	}
	targets = slices.Delete(targets, i, i+1)
	if len(targets) == 0 {
		delete(image, sym)
		return
	}
	image[sym] = targets
}

// MarkFinal marks the member state s as final.
func (n *NFA) MarkFinal(s State) {
	if n.Contains(s) {
		n.final[s.id] = true
	}
}

// UnmarkFinal marks the member state s as non-final.
func (n *NFA) UnmarkFinal(s State) {
	if n.Contains(s) {
		n.final[s.id] = false
	}
}

// SetStart makes the member state s the start state.
func (n *NFA) SetStart(s State) {
	if n.Contains(s) {
		n.start = s.id
	}
}

// Start returns the start state, or the zero State if none was set.
func (n *NFA) Start() State {
	if n.start == InvalidState {
		return State{}
	}
	return n.handle(n.start)
}

// IsStart reports whether s is the start state.
func (n *NFA) IsStart(s State) bool {
	return s.IsValid() && s == n.Start()
}

// IsFinal reports whether s is a final state.
func (n *NFA) IsFinal(s State) bool {
	id, ok := n.local(s)
	return ok && n.final[id]
}

// EachState calls fn for every member in insertion order.
// fn must not mutate n.
func (n *NFA) EachState(fn func(State)) {
	for _, id := range n.order {
		fn(n.handle(id))
	}
}

// EachFinal calls fn for every final state in insertion order.
// fn must not mutate n.
func (n *NFA) EachFinal(fn func(State)) {
	for _, id := range n.order {
		if n.final[id] {
			fn(n.handle(id))
		}
	}
}

// EachTransition calls fn for every transition. Sources follow insertion
// order, symbols follow Compare and targets follow arena order.
// fn must not mutate n.
func (n *NFA) EachTransition(fn func(src State, sym Symbol, dst State)) {
	for _, src := range n.order {
		image := n.edges[src]
		for _, sym := range sortedSymbols(image) {
			for _, dst := range image[sym] {
				fn(n.handle(src), sym, n.handle(dst))
			}
		}
	}
}

func sortedSymbols(image map[Symbol][]StateID) []Symbol {
	if len(image) == 0 {
		return nil
	}
	syms := make([]Symbol, 0, len(image))
	for sym := range image {
		syms = append(syms, sym)
	}
	slices.SortFunc(syms, Compare)
	return syms
}

// closure runs an iterative depth-first search along Epsilon transitions,
// adding every reached state to visited. Every state is visited at most once,
// so epsilon cycles terminate. visit may be nil. The emptied stack is
// returned for reuse.
func (n *NFA) closure(stack []StateID, visited *sparse.Set, visit func(StateID)) []StateID {
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visited.Insert(uint32(top)) {
			continue
		}
		if visit != nil {
			visit(top)
		}
		for _, next := range n.edges[top][Epsilon] {
			if !visited.Contains(uint32(next)) {
				stack = append(stack, next)
			}
		}
	}
	return stack
}

func (n *NFA) newVisited() *sparse.Set {
	return sparse.New(conv.IntToUint32(len(n.names)))
}

// EpsilonClosure returns the member states reachable from the given states
// through zero or more Epsilon transitions, the given members included.
// The result doubles as the visited set, so the cost is proportional to the
// closure and not to the arena.
func (n *NFA) EpsilonClosure(states ...State) *StateSet {
	result := NewStateSet()
	var stack []StateID
	for _, s := range states {
		if n.Contains(s) && result.Add(s) {
			stack = append(stack, s.id)
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range n.edges[top][Epsilon] {
			if result.Add(n.handle(next)) {
				stack = append(stack, next)
			}
		}
	}
	return result
}

// Transition returns the states reachable from the given states by exactly
// one transition labeled sym. Unknown states and absent symbols contribute
// nothing.
func (n *NFA) Transition(sym Symbol, states ...State) *StateSet {
	result := NewStateSet()
	if !sym.IsValid() {
		return result
	}
	for _, s := range states {
		if !n.Contains(s) {
			continue
		}
		for _, dst := range n.edges[s.id][sym] {
			result.Add(n.handle(dst))
		}
	}
	return result
}

// RemoveEpsilonTransitions rewrites n in place so that it has no Epsilon
// transitions and accepts the same language.
//
// For every state s and every other state c in the epsilon closure of s, the
// non-epsilon transitions of c are copied onto s, and s becomes final if c is
// final. Then the Epsilon transitions of s are deleted. Closures are computed
// on the original graph before any rewriting.
func (n *NFA) RemoveEpsilonTransitions() {
	members := slices.Clone(n.order)
	closures := make([][]StateID, len(members))
	visited := n.newVisited()
	stack := make([]StateID, 0, 8)
	for i, src := range members {
		visited.Clear()
		var reach []StateID
		stack = n.closure(append(stack[:0], src), visited, func(id StateID) {
			if id != src {
				reach = append(reach, id)
			}
		})
		closures[i] = reach
	}

	for i, src := range members {
		for _, c := range closures[i] {
			if n.final[c] {
				n.final[src] = true
			}
			for sym, targets := range n.edges[c] {
				if sym == Epsilon {
					continue
				}
				for _, dst := range targets {
					n.addTarget(src, sym, dst)
				}
			}
		}
		for _, dst := range slices.Clone(n.edges[src][Epsilon]) {
			n.removeTarget(src, Epsilon, dst)
		}
		_, left := n.edges[src][Epsilon]
		invariant(!left, "epsilon transitions survived elimination", n.handle(src))
	}
}

func (n *NFA) marker(id StateID) string {
	start := id == n.start
	switch {
	case start && n.final[id]:
		return "<>"
	case n.final[id]:
		return "<-"
	case start:
		return "->"
	default:
		return "  "
	}
}

// Dump renders the transition table, one line per member state sorted by
// name:
//
//	->0:: (*: 0) (a: 1)
//	<-1::
//
// The marker is "->" for the start state, "<-" for final states, "<>" for
// both and two spaces otherwise. Symbols follow Compare, targets are sorted
// by name.
func (n *NFA) Dump() string {
	ids := slices.Clone(n.order)
	byName := func(a, b StateID) int { return strings.Compare(n.names[a], n.names[b]) }
	slices.SortFunc(ids, byName)

	var sb strings.Builder
	for _, id := range ids {
		sb.WriteString(n.marker(id))
		sb.WriteString(n.names[id])
		sb.WriteString("::")
		image := n.edges[id]
		for _, sym := range sortedSymbols(image) {
			targets := slices.Clone(image[sym])
			slices.SortFunc(targets, byName)
			sb.WriteString(" (")
			sb.WriteString(sym.String())
			sb.WriteByte(':')
			for _, dst := range targets {
				sb.WriteByte(' ')
				sb.WriteString(n.names[dst])
			}
			sb.WriteByte(')')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
