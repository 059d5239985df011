package ops

import "github.com/gradflow-ml/gradflow/internal/array"

// TransposeOp is the backward rule for dimension permutation.
//
//	d(transpose(a, axes))/da = transpose(grad, inverse(axes))
type TransposeOp struct {
	axes []int
}

// NewTransposeOp creates the backward rule for transpose with the forward axes.
func NewTransposeOp(axes []int) *TransposeOp {
	return &TransposeOp{axes: axes}
}

// Name returns the operation name.
func (op *TransposeOp) Name() string { return "transpose" }

// Axes returns the forward permutation.
func (op *TransposeOp) Axes() []int { return op.axes }

// Backward transposes the output gradient with the inverse permutation.
func (op *TransposeOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	inverse := make([]int, len(op.axes))
	for i, ax := range op.axes {
		inverse[ax] = i
	}
	grad, err := array.Transpose(outputGrad, inverse...)
	if err != nil {
		return nil, err
	}
	return []*array.Array{grad}, nil
}
