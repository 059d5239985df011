package ops

import "github.com/gradflow-ml/gradflow/internal/array"

// MeanOp is the backward rule for the full reduction output = mean(a).
//
// Like sum, but each element's contribution is weighted by 1/n.
type MeanOp struct {
	origShape array.Shape
	n         int
}

// NewMeanOp creates the backward rule for mean(a).
func NewMeanOp(input *array.Array) *MeanOp {
	return &MeanOp{origShape: input.Shape().Clone(), n: input.NumElements()}
}

// Name returns the operation name.
func (op *MeanOp) Name() string { return "mean" }

// Backward distributes grad/n across the input shape.
func (op *MeanOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	grad, err := array.BroadcastTo(outputGrad, op.origShape)
	if err != nil {
		return nil, err
	}
	array.ScaleInPlace(grad, 1/float64(op.n))
	return []*array.Array{grad}, nil
}

// MeanAxisOp is the backward rule for output = mean(a, axis).
type MeanAxisOp struct {
	origShape array.Shape
	axis      int
	keepDim   bool
	dimSize   int
}

// NewMeanAxisOp creates the backward rule for mean(a, axis).
func NewMeanAxisOp(input *array.Array, axis int, keepDim bool) *MeanAxisOp {
	return &MeanAxisOp{
		origShape: input.Shape().Clone(),
		axis:      axis,
		keepDim:   keepDim,
		dimSize:   input.Shape()[axis],
	}
}

// Name returns the operation name.
func (op *MeanAxisOp) Name() string { return "mean axis" }

// Backward distributes grad/axisLen back across the reduced axis.
func (op *MeanAxisOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	grad := outputGrad
	if !op.keepDim {
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
	array.ScaleInPlace(grad, 1/float64(op.dimSize))
	return []*array.Array{grad}, nil
}
