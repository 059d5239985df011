package ops

import "github.com/gradflow-ml/gradflow/internal/array"

// LogOp is the backward rule for the natural logarithm: output = log(a).
//
//	d(log(a))/da = grad / a
//
// The caller is responsible for positivity; NaN/Inf from invalid domains
// propagate through the gradient with IEEE-754 semantics.
type LogOp struct {
	input *array.Array
}

// NewLogOp creates the backward rule for log(a).
func NewLogOp(input *array.Array) *LogOp {
	return &LogOp{input: input}
}

// Name returns the operation name.
func (op *LogOp) Name() string { return "log" }

// Backward computes the input gradient for log.
func (op *LogOp) Backward(outputGrad *array.Array) ([]*array.Array, error) {
	grad, err := array.Div(outputGrad, op.input)
	if err != nil {
		return nil, err
	}
	return []*array.Array{grad}, nil
}
