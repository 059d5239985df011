package nn

import (
	"github.com/gradflow-ml/gradflow/internal/array"
	"github.com/gradflow-ml/gradflow/internal/graph"
)

// MSE computes the mean squared error between predictions and targets:
//
//	loss = mean((predictions - targets)²)
//
// The result is a scalar tensor suitable as a backward root.
func MSE(predictions, targets *graph.Tensor) (*graph.Tensor, error) {
	if !predictions.Shape().Equal(targets.Shape()) {
		return nil, &array.ShapeError{
			Op:     "mse",
			Shapes: []array.Shape{predictions.Shape().Clone(), targets.Shape().Clone()},
			Detail: "predictions and targets must have the same shape",
		}
	}

	diff, err := predictions.Sub(targets)
	if err != nil {
		return nil, err
	}
	return diff.Pow(2).Mean(), nil
}

// MAE computes the mean absolute error between predictions and targets:
//
//	loss = mean(|predictions - targets|)
func MAE(predictions, targets *graph.Tensor) (*graph.Tensor, error) {
	if !predictions.Shape().Equal(targets.Shape()) {
		return nil, &array.ShapeError{
			Op:     "mae",
			Shapes: []array.Shape{predictions.Shape().Clone(), targets.Shape().Clone()},
			Detail: "predictions and targets must have the same shape",
		}
	}

	diff, err := predictions.Sub(targets)
	if err != nil {
		return nil, err
	}
	return diff.Abs().Mean(), nil
}
