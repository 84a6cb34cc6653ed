package epsnfa

import (
	"sync"

	"github.com/coregx/epsnfa/nfa"
	"github.com/coregx/epsnfa/prefilter"
)

// searchState is the mutable part of one Search: a simulator over the union
// and, when the Searcher has a prefilter, the tracker deciding whether to keep
// jumping. A state belongs to one goroutine between get and put.
type searchState struct {
	sim     *nfa.Simulator
	tracker *prefilter.Tracker
}

// reset prepares the state for the next search. The simulator keeps its
// scratch sets, so only the first search through a state sizes them.
func (s *searchState) reset() {
	if s.tracker != nil {
		s.tracker.Reset()
	}
}

// searchStatePool hands out searchStates so concurrent searches never share
// a simulator.
type searchStatePool struct {
	pool sync.Pool

	aut nfa.Automaton
	pf  prefilter.Prefilter
}

func newSearchStatePool(aut nfa.Automaton, pf prefilter.Prefilter) *searchStatePool {
	p := &searchStatePool{aut: aut, pf: pf}
	p.pool = sync.Pool{
		New: func() any {
			state := &searchState{sim: nfa.NewSimulator(p.aut)}
			if p.pf != nil {
				state.tracker = prefilter.NewTracker(p.pf)
			}
			return state
		},
	}
	return p
}

func (p *searchStatePool) get() *searchState {
	return p.pool.Get().(*searchState)
}

func (p *searchStatePool) put(state *searchState) {
	if state == nil {
		return
	}
	state.reset()
	p.pool.Put(state)
}
