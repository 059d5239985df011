// Package nn provides differentiable activation and loss functions built
// from engine operations, so gradients flow through them without any
// dedicated backward rules.
package nn

import "github.com/gradflow-ml/gradflow/internal/graph"

// Sigmoid computes σ(x) = 1 / (1 + exp(-x)) elementwise.
func Sigmoid(x *graph.Tensor) *graph.Tensor {
	return x.Neg().Exp().AddScalar(1).Pow(-1)
}

// Tanh computes the hyperbolic tangent elementwise, as 2σ(2x) - 1.
func Tanh(x *graph.Tensor) *graph.Tensor {
	return Sigmoid(x.MulScalar(2)).MulScalar(2).SubScalar(1)
}

// ReLU computes max(0, x) elementwise, as (x + |x|) / 2.
// At exactly 0 the gradient is 0.5 (sign(0) is defined as 0).
func ReLU(x *graph.Tensor) (*graph.Tensor, error) {
	sum, err := x.Add(x.Abs())
	if err != nil {
		return nil, err
	}
	return sum.MulScalar(0.5), nil
}

// Softmax normalizes x along the given axis: exp(x) / sum(exp(x), axis).
//
// Note: this is the textbook formulation without max-shifting; very large
// logits can overflow exp.
func Softmax(x *graph.Tensor, axis int) (*graph.Tensor, error) {
	e := x.Exp()
	total, err := e.SumAxis(axis, true)
	if err != nil {
		return nil, err
	}
	return e.Div(total)
}
