package optim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradflow-ml/gradflow/internal/array"
	"github.com/gradflow-ml/gradflow/internal/graph"
	"github.com/gradflow-ml/gradflow/internal/optim"
)

func param(t *testing.T, data []float64) *graph.Tensor {
	t.Helper()
	a, err := array.FromFloat64(data, array.Shape{len(data)})
	require.NoError(t, err)
	return graph.New(a, graph.Parameter)
}

// backwardSquaredSum drives grad = 2p onto the parameter.
func backwardSquaredSum(t *testing.T, p *graph.Tensor) {
	t.Helper()
	loss := p.Pow(2).Sum()
	require.NoError(t, loss.Backward())
}

func TestNewSGD_RejectsNonParameters(t *testing.T) {
	src := graph.New(array.Scalar(1, array.Float64), graph.Source)
	_, err := optim.NewSGD([]*graph.Tensor{src}, optim.SGDConfig{})
	assert.Error(t, err)

	frozen := graph.New(array.Scalar(1, array.Float64), graph.Parameter, graph.WithRequiresGrad(false))
	_, err = optim.NewSGD([]*graph.Tensor{frozen}, optim.SGDConfig{})
	assert.Error(t, err)
}

func TestSGD_Defaults(t *testing.T) {
	p := param(t, []float64{1})
	opt, err := optim.NewSGD([]*graph.Tensor{p}, optim.SGDConfig{})
	require.NoError(t, err)
	assert.Equal(t, 0.01, opt.LR())
}

func TestSGD_Step(t *testing.T) {
	p := param(t, []float64{1, -2})
	opt, err := optim.NewSGD([]*graph.Tensor{p}, optim.SGDConfig{LR: 0.1})
	require.NoError(t, err)

	backwardSquaredSum(t, p) // grad = [2, -4]
	require.NoError(t, opt.Step())

	got := p.Value().AsFloat64()
	assert.InDelta(t, 1-0.1*2, got[0], 1e-12)
	assert.InDelta(t, -2-0.1*(-4), got[1], 1e-12)
}

func TestSGD_SkipsNilGradients(t *testing.T) {
	p := param(t, []float64{5})
	opt, err := optim.NewSGD([]*graph.Tensor{p}, optim.SGDConfig{LR: 0.1})
	require.NoError(t, err)

	require.NoError(t, opt.Step())
	assert.Equal(t, []float64{5}, p.Value().AsFloat64())
}

func TestSGD_Momentum(t *testing.T) {
	p := param(t, []float64{1})
	opt, err := optim.NewSGD([]*graph.Tensor{p}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	require.NoError(t, err)

	// First step: velocity = grad = 2, p = 1 - 0.1*2 = 0.8.
	backwardSquaredSum(t, p)
	require.NoError(t, opt.Step())
	assert.InDelta(t, 0.8, p.Value().AsFloat64()[0], 1e-12)

	// Second step: grad = 1.6, velocity = 0.9*2 + 1.6 = 3.4,
	// p = 0.8 - 0.34 = 0.46.
	opt.ZeroGrad()
	backwardSquaredSum(t, p)
	require.NoError(t, opt.Step())
	assert.InDelta(t, 0.46, p.Value().AsFloat64()[0], 1e-12)
}

func TestZeroGrad(t *testing.T) {
	p := param(t, []float64{1})
	opt, err := optim.NewSGD([]*graph.Tensor{p}, optim.SGDConfig{})
	require.NoError(t, err)

	backwardSquaredSum(t, p)
	require.NotNil(t, p.Gradient())

	opt.ZeroGrad()
	assert.Nil(t, p.Gradient())
}

func TestAdam_Defaults(t *testing.T) {
	p := param(t, []float64{1})
	opt, err := optim.NewAdam([]*graph.Tensor{p}, optim.AdamConfig{})
	require.NoError(t, err)
	assert.Equal(t, 0.001, opt.LR())
}

// With bias correction, the first Adam step moves each coordinate by
// almost exactly lr in the direction opposing its gradient.
func TestAdam_FirstStepMagnitude(t *testing.T) {
	p := param(t, []float64{1, -1})
	opt, err := optim.NewAdam([]*graph.Tensor{p}, optim.AdamConfig{LR: 0.1})
	require.NoError(t, err)

	backwardSquaredSum(t, p) // grad = [2, -2]
	require.NoError(t, opt.Step())

	got := p.Value().AsFloat64()
	assert.InDelta(t, 0.9, got[0], 1e-6)
	assert.InDelta(t, -0.9, got[1], 1e-6)
}

func TestAdam_ConvergesOnQuadratic(t *testing.T) {
	p := param(t, []float64{3})
	opt, err := optim.NewAdam([]*graph.Tensor{p}, optim.AdamConfig{LR: 0.1})
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		opt.ZeroGrad()
		backwardSquaredSum(t, p)
		require.NoError(t, opt.Step())
	}

	// Adam steps are bounded by lr, so the iterate lands near the minimum
	// but may oscillate within a step of it.
	assert.Less(t, math.Abs(p.Value().AsFloat64()[0]), 0.5)
}
