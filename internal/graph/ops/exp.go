package ops

import "github.com/gradflow-ml/gradflow/internal/array"

// ExpOp is the backward rule for the exponential: output = exp(a).
//
//	d(exp(a))/da = grad * exp(a)
//
// The forward output is captured so the derivative needs no recomputation.
type ExpOp struct {
	output *array.Array
}

// NewExpOp creates the backward rule for exp(a), capturing the forward output.
func NewExpOp(output *array.Array) *ExpOp {
	return &ExpOp{output: output}
}

// Name returns the operation name.
func (op *ExpOp) Name() string { return "exp" }

// Backward computes the input gradient for exp.
func (op *ExpOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	grad, err := array.Mul(outputGrad, op.output)
	if err != nil {
		return nil, err
	}
	return []*array.Array{grad}, nil
}
