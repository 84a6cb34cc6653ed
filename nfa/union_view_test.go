package nfa

import (
	"strings"
	"testing"
)

func TestUnionViewMatchesEagerUnion(t *testing.T) {
	ops := []Automaton{literal("ab", "ab"), literal("cd", "cd"), NewSearchNFA("xy", "s")}
	eager, err := Union("eager", ops...)
	if err != nil {
		t.Fatal(err)
	}
	lazy, err := NewUnionView("lazy", ops...)
	if err != nil {
		t.Fatal(err)
	}

	for _, in := range []string{"", "ab", "cd", "xy", "zzxy", "abcd", "xyz", "a", "cdxy"} {
		if got, want := accepts(lazy, in), accepts(eager, in); got != want {
			t.Errorf("accepts(%q): view %v, eager %v", in, got, want)
		}
	}
}

func TestUnionViewStart(t *testing.T) {
	ab, cd := literal("ab", "ab"), literal("cd", "cd")
	v, err := NewUnionView("v", ab, cd)
	if err != nil {
		t.Fatal(err)
	}

	start := v.Start()
	if !v.IsStart(start) || v.IsFinal(start) || !v.Owns(start) {
		t.Error("start state misreported")
	}
	if got := v.StateName(start); got != "Init" {
		t.Errorf("StateName(start) = %q, want Init", got)
	}
	want := NewStateSet(ab.Start(), cd.Start())
	if got := v.Transition(Epsilon, start); !got.Equal(want) {
		t.Errorf("Transition(EP, start) = %v, want %v", got.States(), want.States())
	}
	want.Add(start)
	if got := v.EpsilonClosure(start); !got.Equal(want) {
		t.Errorf("EpsilonClosure(start) = %v, want %v", got.States(), want.States())
	}
	if got := v.Transition(Of('a'), start); !got.IsEmpty() {
		t.Errorf("start has a byte transition: %v", got.States())
	}
}

func TestUnionViewDelegates(t *testing.T) {
	ab, cd := literal("ab", "ab"), literal("cd", "cd")
	v, err := NewUnionView("v", ab, cd)
	if err != nil {
		t.Fatal(err)
	}

	s1 := ab.Transition(Of('a'), ab.Start()).States()[0]
	if got := v.Transition(Of('b'), s1); !got.Equal(ab.Transition(Of('b'), s1)) {
		t.Errorf("Transition not forwarded: %v", got.States())
	}
	if v.Branch(s1) != 0 || v.Branch(cd.Start()) != 1 {
		t.Errorf("Branch = %d, %d; want 0, 1", v.Branch(s1), v.Branch(cd.Start()))
	}
	o, ok := v.Origin(s1)
	if !ok || o.Branch != 0 || o.State != s1 || o.Final {
		t.Errorf("Origin(%v) = %+v, %v", s1, o, ok)
	}
	if got := len(v.Operands()); got != 2 {
		t.Errorf("len(Operands()) = %d, want 2", got)
	}

	var finals int
	v.EachFinal(func(s State) {
		finals++
		if !v.IsFinal(s) {
			t.Errorf("EachFinal yielded non-final %v", s)
		}
	})
	if finals != 2 {
		t.Errorf("EachFinal count = %d, want 2", finals)
	}

	var states int
	v.EachState(func(State) { states++ })
	if states != 7 {
		t.Errorf("EachState count = %d, want 7", states)
	}
}

func TestUnionViewUnknownStates(t *testing.T) {
	v, err := NewUnionView("v", literal("ab", "ab"))
	if err != nil {
		t.Fatal(err)
	}
	stranger := literal("x", "x").Start()

	if v.Owns(stranger) || v.IsFinal(stranger) || v.IsStart(stranger) {
		t.Error("stranger state treated as member")
	}
	if v.StateName(stranger) != "" || v.Branch(stranger) != -1 {
		t.Error("stranger state has a name or branch")
	}
	if _, ok := v.Origin(stranger); ok {
		t.Error("stranger state has an origin")
	}
	if !v.EpsilonClosure(stranger).IsEmpty() || !v.Transition(Of('x'), stranger).IsEmpty() {
		t.Error("stranger state contributed to a query")
	}
	if !v.EpsilonClosure(State{}).IsEmpty() {
		t.Error("zero state contributed to a query")
	}
}

func TestUnionViewNested(t *testing.T) {
	inner, err := NewUnionView("inner", literal("ab", "ab"), literal("cd", "cd"))
	if err != nil {
		t.Fatal(err)
	}
	outer, err := NewUnionView("outer", inner, literal("ef", "ef"))
	if err != nil {
		t.Fatal(err)
	}
	checkLanguage(t, outer,
		[]string{"ab", "cd", "ef"},
		[]string{"", "abcd", "e"})

	if got := outer.Branch(inner.Start()); got != 0 {
		t.Errorf("Branch(inner start) = %d, want 0", got)
	}
}

func TestUnionViewDump(t *testing.T) {
	ab, cd := literal("ab", "ab"), literal("cd", "cd")
	v, err := NewUnionView("v", ab, cd)
	if err != nil {
		t.Fatal(err)
	}
	want := "->Init:: (EP: 0 0)\n" +
		"[0]\n" + ab.Dump() +
		"[1]\n" + cd.Dump()
	if got := v.Dump(); got != want {
		t.Errorf("Dump() =\n%s\nwant:\n%s", got, want)
	}

	empty, err := NewUnionView("none")
	if err != nil {
		t.Fatal(err)
	}
	if got := empty.Dump(); !strings.HasPrefix(got, "->Init::\n") {
		t.Errorf("empty view Dump() = %q", got)
	}
	checkLanguage(t, empty, nil, []string{"", "a"})
}
