package ops

import "github.com/gradflow-ml/gradflow/internal/array"

// ReshapeOp is the backward rule for reshape.
//
//	d(reshape(a, shape))/da = reshape(grad, a.original_shape)
type ReshapeOp struct {
	origShape array.Shape
}

// NewReshapeOp creates the backward rule for reshape, remembering the
// input's original shape.
func NewReshapeOp(input *array.Array) *ReshapeOp {
	return &ReshapeOp{origShape: input.Shape().Clone()}
}

// Name returns the operation name.
func (op *ReshapeOp) Name() string { return "reshape" }

// Backward reshapes the output gradient back to the original input shape.
func (op *ReshapeOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	grad, err := array.Reshape(outputGrad, op.origShape)
	if err != nil {
		return nil, err
	}
	return []*array.Array{grad}, nil
}
