package nfa

import (
	"cmp"
	"fmt"
)

type symbolKind uint8

// Kind order doubles as the tie-break priority in Compare.
const (
	kindInvalid symbolKind = iota
	kindByte
	kindComplement
	kindWildcard
	kindEpsilon
)

// Symbol is a transition label: an ordinary byte or one of the reserved
// markers Epsilon, Wildcard and Complement.
//
// Symbol is a comparable value, so two symbols for the same byte are equal
// and symbols can be used as map keys. The zero Symbol is invalid and is
// treated as an absent argument by every operation.
type Symbol struct {
	value byte
	kind  symbolKind
}

// Reserved markers. They share the code of ' ' but never compare equal to
// Of(' ') or to each other.
var (
	// Epsilon labels transitions taken without consuming input.
	Epsilon = Symbol{value: ' ', kind: kindEpsilon}

	// Wildcard labels transitions taken on any input byte.
	Wildcard = Symbol{value: ' ', kind: kindWildcard}

	// Complement is reserved. Simulation does not follow it.
	Complement = Symbol{value: ' ', kind: kindComplement}
)

// Of returns the symbol for the byte b.
func Of(b byte) Symbol {
	return Symbol{value: b, kind: kindByte}
}

// IsValid reports whether s is not the zero Symbol.
func (s Symbol) IsValid() bool {
	return s.kind != kindInvalid
}

// IsSpecial reports whether s is one of the reserved markers.
func (s Symbol) IsSpecial() bool {
	return s.kind > kindByte
}

// Byte returns the underlying byte. For reserved markers it is ' '.
func (s Symbol) Byte() byte {
	return s.value
}

// String returns "EP", "*", "*_C" for the markers and the character otherwise.
func (s Symbol) String() string {
	switch s.kind {
	case kindEpsilon:
		return "EP"
	case kindWildcard:
		return "*"
	case kindComplement:
		return "*_C"
	case kindByte:
		return string(rune(s.value))
	default:
		return fmt.Sprintf("Symbol(invalid %d)", s.value)
	}
}

// Compare orders symbols by byte code and, among equal codes, by kind:
// ordinary < Complement < Wildcard < Epsilon.
func Compare(a, b Symbol) int {
	if c := cmp.Compare(a.value, b.value); c != 0 {
		return c
	}
	return cmp.Compare(a.kind, b.kind)
}
