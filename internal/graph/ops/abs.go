package ops

import "github.com/gradflow-ml/gradflow/internal/array"

// AbsOp is the backward rule for the absolute value: output = |a|.
//
//	d(|a|)/da = grad * sign(a), with sign(0) defined as 0
type AbsOp struct {
	input *array.Array
}

// NewAbsOp creates the backward rule for |a|.
func NewAbsOp(input *array.Array) *AbsOp {
	return &AbsOp{input: input}
}

// Name returns the operation name.
func (op *AbsOp) Name() string { return "abs" }

// Backward computes the input gradient for abs.
func (op *AbsOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	grad, err := array.Mul(outputGrad, array.Sign(op.input))
	if err != nil {
		return nil, err
	}
	return []*array.Array{grad}, nil
}
