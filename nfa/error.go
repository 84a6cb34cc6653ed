// Package nfa provides non-deterministic finite automata with epsilon
// transitions over a byte alphabet extended with a wildcard symbol.
//
// The package contains a mutable automaton with epsilon-closure and
// epsilon-elimination, two strategies for combining automata under the
// regular operations (an eager one that materializes a merged automaton and a
// lazy one that answers queries by delegating to its operands), and a
// simulator that drives any automaton over an input sequence.
//
// Automata are not safe for concurrent mutation. Read-only queries allocate
// their own scratch space, so an automaton that is no longer mutated may be
// queried and simulated from several goroutines.
package nfa

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrNotImplemented indicates a regular operation the chosen factory does
	// not provide.
	ErrNotImplemented = errors.New("operation not implemented")

	// ErrNilOperand indicates a nil automaton was passed to a factory.
	ErrNilOperand = errors.New("nil operand automaton")
)

// OpError reports a failed regular operation.
type OpError struct {
	Op       string // "union", "concat" or "star"
	Strategy string // "eager" or "lazy"
	Err      error
}

// Error implements the error interface
func (e *OpError) Error() string {
	return fmt.Sprintf("nfa: %s %s: %v", e.Strategy, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *OpError) Unwrap() error {
	return e.Err
}

// InvariantError describes a violated internal consistency check.
// It is only ever used as a panic value.
type InvariantError struct {
	Message string
	State   State
}

// Error implements the error interface
func (e *InvariantError) Error() string {
	if e.State.IsValid() {
		return fmt.Sprintf("nfa invariant violated at %v: %s", e.State, e.Message)
	}
	return "nfa invariant violated: " + e.Message
}

func invariant(ok bool, msg string, s State) {
	if !ok {
		panic(&InvariantError{Message: msg, State: s})
	}
}
