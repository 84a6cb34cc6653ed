package nfa

import (
	"cmp"
	"slices"
)

// Factory combines automata under the regular operations.
//
// Operands are never mutated. Eager materializes a new self-contained
// automaton; Lazy returns a view that delegates to its operands and only
// supports Union.
type Factory interface {
	Union(name string, operands ...Automaton) (Composite, error)
	Concat(name string, operands ...Automaton) (Composite, error)
	Star(name string, operand Automaton) (Composite, error)
}

// Composite is the result of a Factory operation. Origin maps a state of the
// result back to the operand it came from.
type Composite interface {
	Automaton
	Origin(s State) (Origin, bool)
}

// Origin records where a state of a composite came from.
type Origin struct {
	Branch int   // index of the operand
	State  State // the state inside that operand
	Final  bool  // whether State is final in its operand
}

// Factories
var (
	Eager Factory = eagerFactory{}
	Lazy  Factory = lazyFactory{}
)

// Composition is an automaton materialized by Union, Concat or Star.
//
// It embeds the resulting *NFA and keeps, for every state copied from an
// operand, the Origin it was copied from. States the operation synthesizes
// (the new start states) have no origin. Callers derive their own tags from
// the origins instead of hooking into construction.
type Composition struct {
	*NFA
	origins map[State]Origin
}

// Origin returns the origin of s.
func (c *Composition) Origin(s State) (Origin, bool) {
	o, ok := c.origins[s]
	return o, ok
}

// Origins returns a copy of the origin map. With finalOnly, only states whose
// source state was final in its operand are included.
func (c *Composition) Origins(finalOnly bool) map[State]Origin {
	out := make(map[State]Origin, len(c.origins))
	for s, o := range c.origins {
		if finalOnly && !o.Final {
			continue
		}
		out[s] = o
	}
	return out
}

// OriginStates returns the states that have an origin, in arena order.
func (c *Composition) OriginStates(finalOnly bool) []State {
	out := make([]State, 0, len(c.origins))
	for s, o := range c.origins {
		if finalOnly && !o.Final {
			continue
		}
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b State) int { return cmp.Compare(a.id, b.id) })
	return out
}

type copier struct {
	result  *NFA
	origins map[State]Origin
}

func newCopier(name string) *copier {
	return &copier{
		result:  New(name),
		origins: make(map[State]Origin),
	}
}

// copyOperand replays every state and transition of op into the result,
// renaming on collision, and returns the operand-to-result state map.
func (c *copier) copyOperand(branch int, op Automaton) map[State]State {
	oldToNew := make(map[State]State)
	op.EachState(func(s State) {
		local, _ := c.result.InsertState(c.result.AvailableState(op.StateName(s)), false)
		c.origins[local] = Origin{Branch: branch, State: s, Final: op.IsFinal(s)}
		oldToNew[s] = local
	})
	op.EachTransition(func(src State, sym Symbol, dst State) {
		from, ok := oldToNew[src]
		invariant(ok, "transition source not enumerated by its automaton", src)
		to, ok := oldToNew[dst]
		invariant(ok, "transition target not enumerated by its automaton", dst)
		c.result.InsertTransition(from, sym, to)
	})
	return oldToNew
}

func (c *copier) insertFresh(name string) State {
	s, _ := c.result.InsertState(c.result.Touch(name), true)
	return s
}

func (c *copier) composition() *Composition {
	return &Composition{NFA: c.result, origins: c.origins}
}

func checkOperands(op, strategy string, operands []Automaton) error {
	for _, a := range operands {
		if a == nil {
			return &OpError{Op: op, Strategy: strategy, Err: ErrNilOperand}
		}
	}
	return nil
}

// Union materializes the union of the operands: a fresh start state "Init"
// (renamed on collision) with Epsilon transitions to the copy of every
// operand's start state. Copies of final states stay final.
func Union(name string, operands ...Automaton) (*Composition, error) {
	if err := checkOperands("union", "eager", operands); err != nil {
		return nil, err
	}
	c := newCopier(name)
	starts := make([]State, 0, len(operands))
	for i, op := range operands {
		m := c.copyOperand(i, op)
		op.EachFinal(func(s State) {
			c.result.MarkFinal(m[s])
		})
		if st, ok := m[op.Start()]; ok {
			starts = append(starts, st)
		}
	}

	init := c.insertFresh("Init")
	c.result.SetStart(init)
	for _, st := range starts {
		c.result.InsertTransition(init, Epsilon, st)
	}
	return c.composition(), nil
}

// Concat materializes the concatenation of the operands in order. Every final
// state of operand i gets an Epsilon transition to the start state of operand
// i+1; only the final states of the last operand stay final. The start state
// is the copy of the first operand's start state.
//
// Operands are copied right to left, so on a name collision the later operand
// keeps the plain name. With no operands the result accepts only the empty
// word.
func Concat(name string, operands ...Automaton) (*Composition, error) {
	if err := checkOperands("concat", "eager", operands); err != nil {
		return nil, err
	}
	c := newCopier(name)
	if len(operands) == 0 {
		init := c.insertFresh("Init")
		c.result.SetStart(init)
		c.result.MarkFinal(init)
		return c.composition(), nil
	}

	last := len(operands) - 1
	var next State
	for i := last; i >= 0; i-- {
		op := operands[i]
		m := c.copyOperand(i, op)
		if i == last {
			op.EachFinal(func(s State) {
				c.result.MarkFinal(m[s])
			})
		} else {
			op.EachFinal(func(s State) {
				c.result.InsertTransition(m[s], Epsilon, next)
			})
		}
		next = m[op.Start()]
	}
	c.result.SetStart(next)
	return c.composition(), nil
}

// Star materializes the Kleene iteration of operand. A new start state, named
// after the operand's start state with a "#" suffix, is final (zero
// repetitions) and has an Epsilon transition to the copied start state; every
// other final state gets an Epsilon transition back to it (repetition).
func Star(name string, operand Automaton) (*Composition, error) {
	if operand == nil {
		return nil, &OpError{Op: "star", Strategy: "eager", Err: ErrNilOperand}
	}
	c := newCopier(name)
	m := c.copyOperand(0, operand)
	operand.EachFinal(func(s State) {
		c.result.MarkFinal(m[s])
	})

	startName := "Init"
	if st := operand.Start(); st.IsValid() {
		startName = operand.StateName(st)
	}
	start, _ := c.result.InsertState(c.result.AvailableState(startName+"#"), false)
	c.result.SetStart(start)
	c.result.MarkFinal(start)
	if orig, ok := m[operand.Start()]; ok {
		c.result.InsertTransition(start, Epsilon, orig)
	}

	var finals []State
	c.result.EachFinal(func(s State) {
		if s != start {
			finals = append(finals, s)
		}
	})
	for _, s := range finals {
		c.result.InsertTransition(s, Epsilon, start)
	}
	return c.composition(), nil
}

type eagerFactory struct{}

// Union implements Factory.
func (eagerFactory) Union(name string, operands ...Automaton) (Composite, error) {
	c, err := Union(name, operands...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Concat implements Factory.
func (eagerFactory) Concat(name string, operands ...Automaton) (Composite, error) {
	c, err := Concat(name, operands...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Star implements Factory.
func (eagerFactory) Star(name string, operand Automaton) (Composite, error) {
	c, err := Star(name, operand)
	if err != nil {
		return nil, err
	}
	return c, nil
}

type lazyFactory struct{}

// Union implements Factory.
func (lazyFactory) Union(name string, operands ...Automaton) (Composite, error) {
	v, err := NewUnionView(name, operands...)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Concat implements Factory.
func (lazyFactory) Concat(string, ...Automaton) (Composite, error) {
	return nil, &OpError{Op: "concat", Strategy: "lazy", Err: ErrNotImplemented}
}

// Star implements Factory.
func (lazyFactory) Star(string, Automaton) (Composite, error) {
	return nil, &OpError{Op: "star", Strategy: "lazy", Err: ErrNotImplemented}
}
