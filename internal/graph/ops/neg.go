package ops

import "github.com/gradflow-ml/gradflow/internal/array"

// NegOp is the backward rule for negation: output = -a.
//
//	d(-a)/da = -grad
type NegOp struct{}

// NewNegOp creates the backward rule for -a.
func NewNegOp() *NegOp { return &NegOp{} }

// Name returns the operation name.
func (op *NegOp) Name() string { return "neg" }

// Backward computes the input gradient for negation.
func (op *NegOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	return []*array.Array{array.Neg(outputGrad)}, nil
}
