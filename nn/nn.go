// Copyright 2025 The GradFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides differentiable activation and loss functions built on
// the GradFlow engine. They are ordinary compositions of tensor operations,
// so gradients flow through them with no dedicated backward rules.
package nn

import (
	internalnn "github.com/gradflow-ml/gradflow/internal/nn"
	"github.com/gradflow-ml/gradflow/tensor"
)

// Sigmoid computes σ(x) = 1 / (1 + exp(-x)) elementwise.
func Sigmoid(x *tensor.Tensor) *tensor.Tensor {
	return internalnn.Sigmoid(x)
}

// Tanh computes the hyperbolic tangent elementwise.
func Tanh(x *tensor.Tensor) *tensor.Tensor {
	return internalnn.Tanh(x)
}

// ReLU computes max(0, x) elementwise.
func ReLU(x *tensor.Tensor) (*tensor.Tensor, error) {
	return internalnn.ReLU(x)
}

// Softmax normalizes x along the given axis.
func Softmax(x *tensor.Tensor, axis int) (*tensor.Tensor, error) {
	return internalnn.Softmax(x, axis)
}

// MSE computes the mean squared error between predictions and targets.
func MSE(predictions, targets *tensor.Tensor) (*tensor.Tensor, error) {
	return internalnn.MSE(predictions, targets)
}

// MAE computes the mean absolute error between predictions and targets.
func MAE(predictions, targets *tensor.Tensor) (*tensor.Tensor, error) {
	return internalnn.MAE(predictions, targets)
}
