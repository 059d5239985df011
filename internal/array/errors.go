package array

import (
	"fmt"
	"strings"
)

// ShapeError reports an operation invoked with incompatible shapes.
// It is always surfaced to the caller; shapes are never silently coerced.
type ShapeError struct {
	Op     string  // Operation that failed (e.g., "add", "matmul")
	Shapes []Shape // Operand shapes involved
	Detail string  // Additional details
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	shapes := make([]string, len(e.Shapes))
	for i, s := range e.Shapes {
		shapes[i] = fmt.Sprintf("%v", []int(s))
	}
	msg := fmt.Sprintf("%s: incompatible shapes %s", e.Op, strings.Join(shapes, " and "))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}
