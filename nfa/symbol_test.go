package nfa

import "testing"

func TestSymbolString(t *testing.T) {
	tests := []struct {
		sym  Symbol
		want string
	}{
		{Epsilon, "EP"},
		{Wildcard, "*"},
		{Complement, "*_C"},
		{Of('a'), "a"},
		{Of(' '), " "},
		{Symbol{}, "Symbol(invalid 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.sym.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSymbolKinds(t *testing.T) {
	tests := []struct {
		name        string
		sym         Symbol
		wantValid   bool
		wantSpecial bool
	}{
		{"byte", Of('x'), true, false},
		{"space byte", Of(' '), true, false},
		{"epsilon", Epsilon, true, true},
		{"wildcard", Wildcard, true, true},
		{"complement", Complement, true, true},
		{"zero value", Symbol{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sym.IsValid(); got != tt.wantValid {
				t.Errorf("IsValid() = %v, want %v", got, tt.wantValid)
			}
			if got := tt.sym.IsSpecial(); got != tt.wantSpecial {
				t.Errorf("IsSpecial() = %v, want %v", got, tt.wantSpecial)
			}
		})
	}
}

func TestSymbolEquality(t *testing.T) {
	// Specials share the value ' ' but must stay distinct from each other and
	// from the ordinary space byte.
	distinct := []Symbol{Of(' '), Epsilon, Wildcard, Complement}
	for i, a := range distinct {
		for j, b := range distinct {
			if (a == b) != (i == j) {
				t.Errorf("%v == %v is %v", a, b, a == b)
			}
		}
	}
	if Of('a') != Of('a') {
		t.Error("Of('a') != Of('a')")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Symbol
		want int
	}{
		{"bytes ascending", Of('a'), Of('b'), -1},
		{"bytes descending", Of('z'), Of('a'), 1},
		{"same byte", Of('q'), Of('q'), 0},
		{"space before epsilon", Of(' '), Epsilon, -1},
		{"wildcard before epsilon", Wildcard, Epsilon, -1},
		{"complement before wildcard", Complement, Wildcard, -1},
		{"epsilon before letters", Epsilon, Of('a'), -1},
		{"epsilon equal", Epsilon, Epsilon, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}
