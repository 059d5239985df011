// Package ops defines the backward rules of the differentiation engine.
//
// Each operation captures, at node-construction time, whatever its local
// derivative needs (operand values, shapes, constants) and implements the
// Operation interface: given the gradient flowing into the operation's
// output, it produces one gradient per input. Forward values are computed
// by the array package before the rule is built; rules never recompute
// forward results.
//
// Every rule is responsible for the shape-correctness of its outputs: a
// gradient it returns must exactly match the corresponding input's shape,
// with any broadcast axes summed away (array.ReduceTo).
package ops

import "github.com/gradflow-ml/gradflow/internal/array"

// Operation is a node's backward rule.
type Operation interface {
	// Name identifies the operation in error messages.
	Name() string

	// Backward maps the output gradient to one gradient per input,
	// positionally aligned with the node's parents.
	Backward(outputGrad *array.Array) ([]*array.Array, error)
}
