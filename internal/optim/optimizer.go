// Package optim implements optimization algorithms over Parameter tensors.
//
// Optimizers read each parameter's accumulated gradient, update its value
// in place, and own clearing gradients between steps; the engine never
// auto-clears, so skipping ZeroGrad makes gradients accumulate across
// iterations.
//
// Example:
//
//	params := graph.Parameters(loss)
//	opt, _ := optim.NewSGD(params, optim.SGDConfig{LR: 0.01})
//	for range epochs {
//	    loss := forward()
//	    if err := loss.Backward(); err != nil { ... }
//	    if err := opt.Step(); err != nil { ... }
//	    opt.ZeroGrad()
//	}
package optim

import (
	"fmt"

	"github.com/gradflow-ml/gradflow/internal/graph"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies the update rule to every parameter that has a gradient.
	// Parameters untouched by the last backward pass are skipped.
	Step() error

	// ZeroGrad clears all parameter gradients. Call between steps.
	ZeroGrad()

	// LR returns the current learning rate.
	LR() float64
}

// checkParameters verifies every tensor handed to an optimizer is a
// trainable Parameter leaf.
func checkParameters(params []*graph.Tensor) error {
	for i, p := range params {
		if p.Role() != graph.Parameter {
			return fmt.Errorf("optimizer: tensor %d has role %s, want %s", i, p.Role(), graph.Parameter)
		}
		if !p.RequiresGrad() {
			return fmt.Errorf("optimizer: parameter %d does not require gradients", i)
		}
	}
	return nil
}
