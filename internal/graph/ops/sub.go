package ops

import "github.com/gradflow-ml/gradflow/internal/array"

// SubOp is the backward rule for elementwise subtraction: output = a - b.
//
//	d(a-b)/da = grad, d(a-b)/db = -grad
type SubOp struct {
	aShape array.Shape
	bShape array.Shape
}

// NewSubOp creates the backward rule for a - b.
func NewSubOp(a, b *array.Array) *SubOp {
	return &SubOp{aShape: a.Shape().Clone(), bShape: b.Shape().Clone()}
}

// Name returns the operation name.
func (op *SubOp) Name() string { return "sub" }

// Backward computes input gradients for subtraction.
func (op *SubOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	gradA, err := array.ReduceTo(outputGrad, op.aShape)
	if err != nil {
		return nil, err
	}
	gradB, err := array.ReduceTo(array.Neg(outputGrad), op.bShape)
	if err != nil {
		return nil, err
	}
	return []*array.Array{gradA, gradB}, nil
}
