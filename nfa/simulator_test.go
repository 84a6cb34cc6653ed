package nfa

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"testing"
)

// finalPositions returns every Position at which the simulator is final.
func finalPositions(a Automaton, input string) []int {
	sim := NewSimulator(a)
	sim.Reset([]byte(input))
	var out []int
	for sim.HasNext() {
		sim.Next()
		if sim.IsFinal() {
			out = append(out, sim.Position())
		}
	}
	return out
}

func TestSimulatorSearch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    []int
	}{
		{"single occurrence", "ab", "xxaby", []int{4}},
		{"at start", "ab", "abxx", []int{2}},
		{"at end", "ab", "xxab", []int{4}},
		{"overlapping", "aa", "aaa", []int{2, 3}},
		{"repeated", "ab", "abab", []int{2, 4}},
		{"no occurrence", "ab", "ba", nil},
		{"empty input", "ab", "", nil},
		{"empty pattern", "", "xy", []int{0, 1, 2}},
		{"empty pattern empty input", "", "", []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := finalPositions(NewSearchNFA(tt.pattern, "s"), tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("final positions = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimulatorIteration(t *testing.T) {
	sim := NewSimulator(NewSearchNFA("ab", "s"))
	sim.Reset([]byte("ab"))

	if !sim.HasNext() {
		t.Fatal("HasNext() false right after Reset")
	}
	sim.Next()
	if sim.Position() != 0 {
		t.Errorf("first Next consumed input: Position() = %d", sim.Position())
	}
	steps := 0
	for sim.HasNext() {
		sim.Next()
		steps++
	}
	if steps != 2 || sim.Position() != 2 {
		t.Errorf("steps = %d, Position() = %d; want 2, 2", steps, sim.Position())
	}
	sim.Next()
	if sim.Position() != 2 {
		t.Error("Next past the end consumed input")
	}
	if !sim.IsFinal() {
		t.Error("IsFinal() = false at end of match")
	}
	finals := sim.FinalStates()
	if len(finals) != 1 || sim.Automaton().StateName(finals[0]) != "s2" {
		t.Errorf("FinalStates() = %v, want [s2]", finals)
	}

	sim.Reset([]byte("b"))
	if sim.Position() != 0 || !sim.HasNext() {
		t.Error("Reset did not restart the run")
	}
}

func TestSimulatorActiveIsCopy(t *testing.T) {
	sim := NewSimulator(NewSearchNFA("a", "s"))
	sim.Reset([]byte("a"))
	active := sim.Active()
	if active.Len() != sim.ActiveLen() {
		t.Errorf("Active().Len() = %d, ActiveLen() = %d", active.Len(), sim.ActiveLen())
	}
	active.Clear()
	if sim.Active().IsEmpty() {
		t.Error("clearing Active() result changed the simulator")
	}
}

func TestSimulatorEpsilonAndWildcard(t *testing.T) {
	// 0 -*-> 1 -EP-> 2 -x-> 3, start 0, final 3.
	b := NewBuilder(New("mix"))
	b.InsertTransition("0", Wildcard, "1")
	b.InsertTransition("1", Epsilon, "2")
	b.InsertTransition("2", Of('x'), "3")
	b.SetStart("0")
	b.MarkFinal("3")

	checkLanguage(t, b.NFA(),
		[]string{"ax", "xx", " x"},
		[]string{"", "x", "a", "axx"})
}

func TestSimulatorIgnoresComplement(t *testing.T) {
	b := NewBuilder(New("compl"))
	b.InsertTransition("0", Complement, "1")
	b.SetStart("0")
	b.MarkFinal("1")
	checkLanguage(t, b.NFA(), nil, []string{"a", " ", ""})
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		name  string
		aut   Automaton
		input string
		want  bool
	}{
		{"search full", NewSearchNFA("ab", "s"), "xxab", true},
		{"search trailing", NewSearchNFA("ab", "s"), "xxaby", false},
		{"literal", literal("lit", "ab"), "ab", true},
		{"literal dead early", literal("lit", "ab"), "zzzzzzab", false},
		{"empty word", literal("lit", ""), "", true},
		{"empty automaton", Empty, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := accepts(tt.aut, tt.input); got != tt.want {
				t.Errorf("Accepts(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// opaque hides the concrete type of an automaton so the simulator takes the
// interface path.
type opaque struct {
	Automaton
}

func TestSimulatorInterfacePathAgrees(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
	}{
		{"ab", "xxaby"},
		{"aa", "aaaa"},
		{"", "xy"},
		{"abc", "ababcabc"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			aut := NewSearchNFA(tt.pattern, "s")
			want := finalPositions(aut, tt.input)
			if got := finalPositions(opaque{aut}, tt.input); !slices.Equal(got, want) {
				t.Errorf("interface path = %v, arena path = %v", got, want)
			}
		})
	}
}

func TestSimulatorArenaGrowth(t *testing.T) {
	n := NewSearchNFA("ab", "s")
	sim := NewSimulator(n)
	if !sim.Accepts([]byte("ab")) {
		t.Fatal("Accepts(ab) = false before growth")
	}

	// Grow the arena past the capacity of the simulator's sets.
	b := NewBuilder(n)
	prev := "s2"
	for i := 0; i < 200; i++ {
		next := "t" + strconv.Itoa(i)
		b.InsertTransition(prev, Of('x'), next)
		prev = next
	}
	b.MarkFinal(prev)

	input := append([]byte("zab"), bytes.Repeat([]byte("x"), 200)...)
	if !sim.Accepts(input) {
		t.Errorf("Accepts after growth = false, want true")
	}
	got := sim.FinalStates()
	if len(got) != 1 || n.StateName(got[0]) != prev {
		t.Errorf("FinalStates = %v, want only %s", got, prev)
	}
}

func TestSimulatorStepAllocs(t *testing.T) {
	for _, size := range []int{1_000, 100_000} {
		t.Run(strconv.Itoa(size), func(t *testing.T) {
			aut := NewSearchNFA(strings.Repeat("a", size), "s")
			sim := NewSimulator(aut)
			sim.Reset(bytes.Repeat([]byte("b"), 1024))
			sim.Next()
			sim.Next()

			allocs := testing.AllocsPerRun(100, sim.Next)
			if allocs != 0 {
				t.Errorf("Next over a %d-state arena allocates %v times, want 0", aut.Len(), allocs)
			}
			if got := sim.ActiveLen(); got != 1 {
				t.Errorf("ActiveLen = %d, want 1", got)
			}
		})
	}
}

func BenchmarkSimulatorArenaSize(b *testing.B) {
	input := bytes.Repeat([]byte("b"), 1000)
	for _, size := range []int{1_000, 100_000} {
		aut := NewSearchNFA(strings.Repeat("a", size), "s")
		sim := NewSimulator(aut)
		b.Run(fmt.Sprintf("states=%d", aut.Len()), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				sim.Reset(input)
				for sim.HasNext() {
					sim.Next()
				}
			}
		})
	}
}

func BenchmarkSimulator(b *testing.B) {
	aut := NewSearchNFA("needle", "s")
	input := make([]byte, 4096)
	for i := range input {
		input[i] = 'a' + byte(i%26)
	}
	sim := NewSimulator(aut)
	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sim.Reset(input)
		for sim.HasNext() {
			sim.Next()
		}
	}
}
