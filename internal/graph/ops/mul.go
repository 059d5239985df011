package ops

import "github.com/gradflow-ml/gradflow/internal/array"

// MulOp is the backward rule for elementwise multiplication: output = a * b.
//
//	d(a*b)/da = grad * b, d(a*b)/db = grad * a
type MulOp struct {
	a *array.Array
	b *array.Array
}

// NewMulOp creates the backward rule for a * b.
func NewMulOp(a, b *array.Array) *MulOp {
	return &MulOp{a: a, b: b}
}

// Name returns the operation name.
func (op *MulOp) Name() string { return "mul" }

// Backward computes input gradients for multiplication.
func (op *MulOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	gradA, err := array.Mul(outputGrad, op.b)
	if err != nil {
		return nil, err
	}
	gradA, err = array.ReduceTo(gradA, op.a.Shape())
	if err != nil {
		return nil, err
	}

	gradB, err := array.Mul(outputGrad, op.a)
	if err != nil {
		return nil, err
	}
	gradB, err = array.ReduceTo(gradB, op.b.Shape())
	if err != nil {
		return nil, err
	}

	return []*array.Array{gradA, gradB}, nil
}
