package optim

import (
	"math"

	"github.com/gradflow-ml/gradflow/internal/array"
	"github.com/gradflow-ml/gradflow/internal/graph"
)

// Adam implements the Adam optimizer (Kingma & Ba, 2015).
//
// Per step t, for each parameter with gradient g:
//
//	m = β₁m + (1-β₁)g
//	v = β₂v + (1-β₂)g²
//	m̂ = m / (1-β₁ᵗ), v̂ = v / (1-β₂ᵗ)
//	param = param - lr * m̂ / (sqrt(v̂) + ε)
type Adam struct {
	params []*graph.Tensor
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	step   int
	m      []*array.Array // first moments, aligned with params
	v      []*array.Array // second moments, aligned with params
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float64 // Learning rate (default: 0.001)
	Beta1 float64 // First-moment decay (default: 0.9)
	Beta2 float64 // Second-moment decay (default: 0.999)
	Eps   float64 // Numerical stability term (default: 1e-8)
}

// NewAdam creates an Adam optimizer over the given parameters.
func NewAdam(params []*graph.Tensor, config AdamConfig) (*Adam, error) {
	if err := checkParameters(params); err != nil {
		return nil, err
	}
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Beta1 == 0 {
		config.Beta1 = 0.9
	}
	if config.Beta2 == 0 {
		config.Beta2 = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Beta1,
		beta2:  config.Beta2,
		eps:    config.Eps,
		m:      make([]*array.Array, len(params)),
		v:      make([]*array.Array, len(params)),
	}, nil
}

// Step performs a single optimization step.
func (a *Adam) Step() error {
	a.step++

	c1 := 1 - math.Pow(a.beta1, float64(a.step))
	c2 := 1 - math.Pow(a.beta2, float64(a.step))

	for i, p := range a.params {
		grad := p.Gradient()
		if grad == nil {
			continue
		}

		if a.m[i] == nil {
			a.m[i] = array.ZerosLike(grad)
			a.v[i] = array.ZerosLike(grad)
		}

		// m = β₁m + (1-β₁)g
		array.ScaleInPlace(a.m[i], a.beta1)
		if err := array.AddInPlace(a.m[i], grad, 1-a.beta1); err != nil {
			return err
		}

		// v = β₂v + (1-β₂)g²
		gradSq, err := array.Mul(grad, grad)
		if err != nil {
			return err
		}
		array.ScaleInPlace(a.v[i], a.beta2)
		if err := array.AddInPlace(a.v[i], gradSq, 1-a.beta2); err != nil {
			return err
		}

		// param -= lr * m̂ / (sqrt(v̂) + ε)
		mHat := array.Scale(a.m[i], 1/c1)
		vHat := array.Scale(a.v[i], 1/c2)
		denom := array.AddScalar(array.Pow(vHat, 0.5), a.eps)
		update, err := array.Div(mHat, denom)
		if err != nil {
			return err
		}
		if err := array.AddInPlace(p.Value(), update, -a.lr); err != nil {
			return err
		}
	}
	return nil
}

// ZeroGrad clears all parameter gradients.
func (a *Adam) ZeroGrad() {
	for _, p := range a.params {
		p.ZeroGrad()
	}
}

// LR returns the current learning rate.
func (a *Adam) LR() float64 {
	return a.lr
}
