package main

import (
	"fmt"
	"io"

	"github.com/coregx/epsnfa/nfa"
)

// demo prints the concatenation and iteration of two small automata, a
// suffix automaton and a search over a sentence.
func demo(w io.Writer) error {
	ba := nfa.NewBuilder(nfa.New("ba"))
	ba.InsertTransition("0", nfa.Of('a'), "1")
	ba.InsertTransition("0", nfa.Of('a'), "2")
	ba.InsertTransition("1", nfa.Of('b'), "3")
	ba.InsertTransition("2", nfa.Of('c'), "4")
	ba.SetStart("0")
	ba.MarkFinal("3")
	ba.MarkFinal("4")

	bb := nfa.NewBuilder(nfa.New("bb"))
	bb.InsertTransition("0", nfa.Of('c'), "0")
	bb.InsertTransition("0", nfa.Of('d'), "1")
	bb.SetStart("0")
	bb.MarkFinal("1")

	conc, err := nfa.Eager.Concat("concat", ba.NFA(), bb.NFA())
	if err != nil {
		return err
	}
	star, err := nfa.Eager.Star("iteration", ba.NFA())
	if err != nil {
		return err
	}
	sfx := nfa.NewSuffix("brko", "brko", true)

	sections := []struct {
		title string
		aut   nfa.Automaton
	}{
		{"ba", ba.NFA()},
		{"bb", bb.NFA()},
		{"concatenation ba.bb", conc},
		{"iteration ba*", star},
		{`suffixes of "brko"`, sfx},
	}
	for _, sec := range sections {
		if _, err := fmt.Fprintf(w, "# %s\n%s\n", sec.title, sec.aut.Dump()); err != nil {
			return err
		}
	}

	sim := nfa.NewSimulator(sfx)
	for _, in := range []string{"rko", "brk"} {
		if _, err := fmt.Fprintf(w, "suffix accepts %q: %v\n", in, sim.Accepts([]byte(in))); err != nil {
			return err
		}
	}

	const sentence = "Creates a huge pillar of fire at target foe's location"
	fire := nfa.NewSearchNFA("fire", "")
	search := nfa.NewSimulator(fire)
	search.Reset([]byte(sentence))
	for search.HasNext() {
		search.Next()
		if search.IsFinal() {
			if _, err := fmt.Fprintf(w, "%q ends at %d\n", "fire", search.Position()); err != nil {
				return err
			}
		}
	}
	return nil
}
