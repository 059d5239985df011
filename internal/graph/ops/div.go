package ops

import "github.com/gradflow-ml/gradflow/internal/array"

// DivOp is the backward rule for elementwise division: output = a / b.
//
//	d(a/b)/da = grad / b
//	d(a/b)/db = -grad * a / b²
type DivOp struct {
	a *array.Array
	b *array.Array
}

// NewDivOp creates the backward rule for a / b.
func NewDivOp(a, b *array.Array) *DivOp {
	return &DivOp{a: a, b: b}
}

// Name returns the operation name.
func (op *DivOp) Name() string { return "div" }

// Backward computes input gradients for division.
func (op *DivOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	gradA, err := array.Div(outputGrad, op.b)
	if err != nil {
		return nil, err
	}
	gradA, err = array.ReduceTo(gradA, op.a.Shape())
	if err != nil {
		return nil, err
	}

	// grad_b = -(grad * a) / (b * b)
	bSquared, err := array.Mul(op.b, op.b)
	if err != nil {
		return nil, err
	}
	numerator, err := array.Mul(outputGrad, op.a)
	if err != nil {
		return nil, err
	}
	gradB, err := array.Div(numerator, bSquared)
	if err != nil {
		return nil, err
	}
	gradB, err = array.ReduceTo(array.Neg(gradB), op.b.Shape())
	if err != nil {
		return nil, err
	}

	return []*array.Array{gradA, gradB}, nil
}
