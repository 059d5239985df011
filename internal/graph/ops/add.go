package ops

import "github.com/gradflow-ml/gradflow/internal/array"

// AddOp is the backward rule for elementwise addition: output = a + b.
//
//	d(a+b)/da = grad, d(a+b)/db = grad
//
// If broadcasting was used in the forward pass, gradients are summed along
// the broadcast axes to restore each operand's shape.
type AddOp struct {
	aShape array.Shape
	bShape array.Shape
}

// NewAddOp creates the backward rule for a + b.
func NewAddOp(a, b *array.Array) *AddOp {
	return &AddOp{aShape: a.Shape().Clone(), bShape: b.Shape().Clone()}
}

// Name returns the operation name.
func (op *AddOp) Name() string { return "add" }

// Backward computes input gradients for addition.
func (op *AddOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	gradA, err := array.ReduceTo(outputGrad, op.aShape)
	if err != nil {
		return nil, err
	}
	gradB, err := array.ReduceTo(outputGrad, op.bShape)
	if err != nil {
		return nil, err
	}
	return []*array.Array{gradA, gradB}, nil
}
