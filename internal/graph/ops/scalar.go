package ops

import "github.com/gradflow-ml/gradflow/internal/array"

// AddScalarOp is the backward rule for adding a constant: output = a + s.
// The constant contributes no gradient; d(a+s)/da = grad.
type AddScalarOp struct{}

// NewAddScalarOp creates the backward rule for a + s.
func NewAddScalarOp() *AddScalarOp { return &AddScalarOp{} }

// Name returns the operation name.
func (op *AddScalarOp) Name() string { return "add scalar" }

// Backward passes the output gradient through unchanged.
func (op *AddScalarOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	return []*array.Array{outputGrad.Clone()}, nil
}

// SubScalarOp is the backward rule for subtracting a constant: output = a - s.
type SubScalarOp struct{}

// NewSubScalarOp creates the backward rule for a - s.
func NewSubScalarOp() *SubScalarOp { return &SubScalarOp{} }

// Name returns the operation name.
func (op *SubScalarOp) Name() string { return "sub scalar" }

// Backward passes the output gradient through unchanged.
func (op *SubScalarOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	return []*array.Array{outputGrad.Clone()}, nil
}

// MulScalarOp is the backward rule for scaling by a constant: output = a * s.
//
//	d(a*s)/da = grad * s
type MulScalarOp struct {
	scalar float64
}

// NewMulScalarOp creates the backward rule for a * s.
func NewMulScalarOp(scalar float64) *MulScalarOp {
	return &MulScalarOp{scalar: scalar}
}

// Name returns the operation name.
func (op *MulScalarOp) Name() string { return "mul scalar" }

// Backward scales the output gradient by the constant.
func (op *MulScalarOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	return []*array.Array{array.Scale(outputGrad, op.scalar)}, nil
}
