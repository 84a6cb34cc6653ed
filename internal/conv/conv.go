// Package conv provides checked integer narrowing for automaton arenas.
//
// State indices are uint32. Allocating an index from a slice length must
// never wrap silently, so these helpers panic on overflow: an automaton that
// large is a programming error, not an input error.
package conv

import "math"

// maxIndex is reserved: the all-ones index marks an invalid state.
const maxIndex = math.MaxUint32 - 1

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// uint comparison avoids overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToIndex converts a slice length to the next free arena index.
// Panics when the length would collide with the reserved invalid index.
func IntToIndex(n int) uint32 {
	if n < 0 || uint(n) > maxIndex {
		panic("integer overflow: arena index out of range")
	}
	return uint32(n)
}
