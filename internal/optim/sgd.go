package optim

import (
	"github.com/gradflow-ml/gradflow/internal/array"
	"github.com/gradflow-ml/gradflow/internal/graph"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD struct {
	params     []*graph.Tensor
	lr         float64
	momentum   float64
	velocities []*array.Array // lazily allocated, aligned with params
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0, range: [0, 1))
}

// NewSGD creates an SGD optimizer over the given parameters.
func NewSGD(params []*graph.Tensor, config SGDConfig) (*SGD, error) {
	if err := checkParameters(params); err != nil {
		return nil, err
	}
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make([]*array.Array, len(params)),
	}, nil
}

// Step performs a single optimization step.
func (s *SGD) Step() error {
	for i, p := range s.params {
		grad := p.Gradient()
		if grad == nil {
			continue
		}

		update := grad
		if s.momentum > 0 {
			if s.velocities[i] == nil {
				s.velocities[i] = array.ZerosLike(grad)
			}
			v := s.velocities[i]
			array.ScaleInPlace(v, s.momentum)
			if err := array.AddInPlace(v, grad, 1); err != nil {
				return err
			}
			update = v
		}

		if err := array.AddInPlace(p.Value(), update, -s.lr); err != nil {
			return err
		}
	}
	return nil
}

// ZeroGrad clears all parameter gradients.
func (s *SGD) ZeroGrad() {
	for _, p := range s.params {
		p.ZeroGrad()
	}
}

// LR returns the current learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}
