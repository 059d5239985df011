package graph

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrInvalidBackwardTarget is returned when Backward is invoked on a
	// tensor whose value is not a scalar. Reverse-mode seeding is undefined
	// for non-scalar outputs; the graph is left unmodified.
	ErrInvalidBackwardTarget = errors.New("backward target must be a scalar")

	// ErrNoGrad is returned when Backward is invoked on a tensor that does
	// not require gradients.
	ErrNoGrad = errors.New("tensor does not require gradients")
)

// StructuralError reports a violated graph invariant: a cycle, a computed
// node without a backward rule, or a rule producing the wrong number of
// gradients. It indicates a defect in graph construction, not a usage error.
type StructuralError struct {
	Op     string // Operation on the offending node, if any
	Detail string
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("graph invariant violated in %s: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("graph invariant violated: %s", e.Detail)
}
