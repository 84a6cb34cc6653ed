// Package sparse provides a sparse set of automaton-local state indices.
//
// A sparse set supports O(1) insertion, membership testing and clearing while
// keeping a dense list of its members in insertion order. The automata use it
// as the visited set of epsilon-closure traversals and the simulator as its
// active set, where the universe of values is the number of states interned
// by one automaton.
package sparse

const defaultCapacity = 64

// Set is a set of uint32 values below a fixed capacity.
//
// The sparse array maps a value to its index in the dense array; a value is a
// member only if that index is in range and points back at the value, so
// stale entries left behind by Clear never produce false positives.
type Set struct {
	sparse []uint32
	dense  []uint32
}

// New creates a set able to hold values in [0, capacity).
// A zero capacity selects a small default.
func New(capacity uint32) *Set {
	if capacity == 0 {
		capacity = defaultCapacity
	}
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set and reports whether it was newly added.
// Panics if value >= Capacity().
func (s *Set) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	//nolint:gosec // G115: len(dense) < len(sparse) which fits in uint32
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *Set) Contains(value uint32) bool {
	if uint64(value) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Clear empties the set in O(1).
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no members.
func (s *Set) IsEmpty() bool {
	return len(s.dense) == 0
}

// Capacity returns the exclusive upper bound on storable values.
func (s *Set) Capacity() int {
	return len(s.sparse)
}

// Resize grows the set so it can hold values below capacity, keeping its
// members. A capacity not above the current one leaves the set unchanged.
func (s *Set) Resize(capacity uint32) {
	if capacity == 0 {
		capacity = defaultCapacity
	}
	if int(capacity) <= len(s.sparse) {
		return
	}
	sparse := make([]uint32, capacity)
	copy(sparse, s.sparse)
	s.sparse = sparse
}

// Values returns the members in insertion order.
// The returned slice is valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}
