// Copyright 2025 The GradFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-based optimizers for GradFlow parameter
// tensors.
package optim

import (
	internaloptim "github.com/gradflow-ml/gradflow/internal/optim"
	"github.com/gradflow-ml/gradflow/tensor"
)

// Optimizer updates parameter tensors from their accumulated gradients.
type Optimizer = internaloptim.Optimizer

// SGD implements stochastic gradient descent with optional momentum.
type SGD = internaloptim.SGD

// SGDConfig configures an SGD optimizer. Zero values select defaults.
type SGDConfig = internaloptim.SGDConfig

// Adam implements the Adam optimizer.
type Adam = internaloptim.Adam

// AdamConfig configures an Adam optimizer. Zero values select defaults.
type AdamConfig = internaloptim.AdamConfig

// NewSGD creates an SGD optimizer over the given parameters.
func NewSGD(params []*tensor.Tensor, config SGDConfig) (*SGD, error) {
	return internaloptim.NewSGD(params, config)
}

// NewAdam creates an Adam optimizer over the given parameters.
func NewAdam(params []*tensor.Tensor, config AdamConfig) (*Adam, error) {
	return internaloptim.NewAdam(params, config)
}
