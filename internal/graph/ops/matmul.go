package ops

import "github.com/gradflow-ml/gradflow/internal/array"

// MatMulOp is the backward rule for matrix multiplication: output = a @ b.
//
//	d(a@b)/da = grad @ bᵀ
//	d(a@b)/db = aᵀ @ grad
type MatMulOp struct {
	a *array.Array
	b *array.Array
}

// NewMatMulOp creates the backward rule for a @ b.
func NewMatMulOp(a, b *array.Array) *MatMulOp {
	return &MatMulOp{a: a, b: b}
}

// Name returns the operation name.
func (op *MatMulOp) Name() string { return "matmul" }

// Backward computes input gradients for matrix multiplication.
func (op *MatMulOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	bT, err := array.Transpose(op.b)
	if err != nil {
		return nil, err
	}
	gradA, err := array.MatMul(outputGrad, bT)
	if err != nil {
		return nil, err
	}

	aT, err := array.Transpose(op.a)
	if err != nil {
		return nil, err
	}
	gradB, err := array.MatMul(aT, outputGrad)
	if err != nil {
		return nil, err
	}

	return []*array.Array{gradA, gradB}, nil
}
