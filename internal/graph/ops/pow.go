package ops

import "github.com/gradflow-ml/gradflow/internal/array"

// PowOp is the backward rule for raising to a constant power: output = a^p.
//
//	d(a^p)/da = grad * p * a^(p-1)
type PowOp struct {
	a        *array.Array
	exponent float64
}

// NewPowOp creates the backward rule for a^p.
func NewPowOp(a *array.Array, exponent float64) *PowOp {
	return &PowOp{a: a, exponent: exponent}
}

// Name returns the operation name.
func (op *PowOp) Name() string { return "pow" }

// Backward computes the input gradient for the power operation.
func (op *PowOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	local := array.Scale(array.Pow(op.a, op.exponent-1), op.exponent)
	grad, err := array.Mul(outputGrad, local)
	if err != nil {
		return nil, err
	}
	return []*array.Array{grad}, nil
}
