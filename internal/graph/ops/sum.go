package ops

import "github.com/gradflow-ml/gradflow/internal/array"

// SumOp is the backward rule for the full reduction output = sum(a).
//
// Every input element contributes with weight 1, so the scalar gradient is
// broadcast back across the whole input shape.
type SumOp struct {
	origShape array.Shape
}

// NewSumOp creates the backward rule for sum(a).
func NewSumOp(input *array.Array) *SumOp {
	return &SumOp{origShape: input.Shape().Clone()}
}

// Name returns the operation name.
func (op *SumOp) Name() string { return "sum" }

// Backward distributes the scalar gradient across the input shape.
func (op *SumOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	grad, err := array.BroadcastTo(outputGrad, op.origShape)
	if err != nil {
		return nil, err
	}
	return []*array.Array{grad}, nil
}

// SumAxisOp is the backward rule for output = sum(a, axis).
type SumAxisOp struct {
	origShape array.Shape
	axis      int
	keepDim   bool
}

// NewSumAxisOp creates the backward rule for sum(a, axis).
func NewSumAxisOp(input *array.Array, axis int, keepDim bool) *SumAxisOp {
	return &SumAxisOp{origShape: input.Shape().Clone(), axis: axis, keepDim: keepDim}
}

// Name returns the operation name.
func (op *SumAxisOp) Name() string { return "sum axis" }

// Backward distributes the gradient back across the reduced axis.
func (op *SumAxisOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	grad := outputGrad
	if !op.keepDim {
		// Reinstate the reduced axis with size 1 so broadcasting lines up.
		kept := op.origShape.Clone()
		kept[op.axis] = 1
		reshaped, err := array.Reshape(grad, kept)
		if err != nil {
			return nil, err
		}
		grad = reshaped
	}
	grad, err := array.BroadcastTo(grad, op.origShape)
	if err != nil {
		return nil, err
	}
	return []*array.Array{grad}, nil
}
