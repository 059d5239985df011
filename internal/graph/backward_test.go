package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradflow-ml/gradflow/internal/array"
	"github.com/gradflow-ml/gradflow/internal/graph"
)

func gradOf(t *testing.T, x *graph.Tensor) float64 {
	t.Helper()
	require.NotNil(t, x.Gradient(), "expected a gradient on %v", x)
	v, err := x.Gradient().Item()
	require.NoError(t, err)
	return v
}

// d/dx (x² + 3x + 1) = 2x + 3 = 7 at x = 2.
func TestBackward_Polynomial(t *testing.T) {
	x := scalar(t, 2, graph.Parameter)

	y, err := x.Pow(2).Add(x.MulScalar(3))
	require.NoError(t, err)
	y = y.AddScalar(1)

	require.NoError(t, y.Backward())

	assert.Equal(t, 7.0, gradOf(t, x))
}

// d/dx (x²+1)³ = 3(x²+1)² · 2x = 300 at x = 2.
func TestBackward_ChainRule(t *testing.T) {
	x := scalar(t, 2, graph.Parameter)
	y := x.Pow(2).AddScalar(1).Pow(3)

	v, err := y.Item()
	require.NoError(t, err)
	assert.Equal(t, 125.0, v)

	require.NoError(t, y.Backward())
	assert.Equal(t, 300.0, gradOf(t, x))
}

// Diamond fan-in: c = (x+1)·(2x) at x = 3, so dc/dx = 1·(2x) + 2·(x+1) = 14.
// The contribution through each branch must be summed, and each node must be
// processed exactly once.
func TestBackward_DiamondFanIn(t *testing.T) {
	x := scalar(t, 3, graph.Parameter)
	a := x.AddScalar(1)
	b := x.MulScalar(2)

	c, err := a.Mul(b)
	require.NoError(t, err)

	v, err := c.Item()
	require.NoError(t, err)
	assert.Equal(t, 24.0, v)

	require.NoError(t, c.Backward())
	assert.Equal(t, 14.0, gradOf(t, x))
}

// y = x·x uses the same node as both operands: dy/dx = 2x = 6 at x = 3.
func TestBackward_SameOperandTwice(t *testing.T) {
	x := scalar(t, 3, graph.Parameter)
	y, err := x.Mul(x)
	require.NoError(t, err)

	require.NoError(t, y.Backward())
	assert.Equal(t, 6.0, gradOf(t, x))
}

func TestBackward_NonScalarRoot(t *testing.T) {
	x := fromF64(t, []float64{1, 2, 3}, array.Shape{3}, graph.Parameter)
	y := x.Pow(2)

	err := y.Backward()
	require.ErrorIs(t, err, graph.ErrInvalidBackwardTarget)

	// The failed pass must not have touched any gradient.
	assert.Nil(t, x.Gradient())
	assert.Nil(t, y.Gradient())
}

func TestBackward_RootWithoutGrad(t *testing.T) {
	x := scalar(t, 2, graph.Source)
	y := x.Pow(2)

	err := y.Backward()
	assert.ErrorIs(t, err, graph.ErrNoGrad)
}

// Gradients accumulate across passes unless explicitly cleared.
func TestBackward_AccumulatesAcrossPasses(t *testing.T) {
	x := scalar(t, 2, graph.Parameter)
	y := x.Pow(2) // dy/dx = 4 at x = 2

	require.NoError(t, y.Backward())
	assert.Equal(t, 4.0, gradOf(t, x))

	require.NoError(t, y.Backward())
	assert.Equal(t, 8.0, gradOf(t, x), "second pass adds a full contribution")

	x.ZeroGrad()
	require.NoError(t, y.Backward())
	assert.Equal(t, 4.0, gradOf(t, x), "clearing restores single-pass gradients")
}

// Intermediate computed nodes retain their gradients by default.
func TestBackward_IntermediateGradsRetained(t *testing.T) {
	a := scalar(t, 2, graph.Parameter)
	b := scalar(t, 3, graph.Parameter)

	c, err := a.Mul(b)
	require.NoError(t, err)
	y := c.MulScalar(2)

	require.NoError(t, y.Backward())

	assert.Equal(t, 2.0, gradOf(t, c), "dy/dc")
	assert.Equal(t, 6.0, gradOf(t, a), "dy/da = 2b")
	assert.Equal(t, 4.0, gradOf(t, b), "dy/db = 2a")
	assert.Equal(t, 1.0, gradOf(t, y), "seed on the root")
}

func TestBackwardWith_ReleaseIntermediates(t *testing.T) {
	a := scalar(t, 2, graph.Parameter)
	c := a.Pow(2)
	y := c.MulScalar(3)

	require.NoError(t, y.BackwardWith(graph.BackwardOptions{ReleaseIntermediates: true}))

	assert.Nil(t, c.Gradient(), "intermediate gradient released")
	assert.Equal(t, 12.0, gradOf(t, a), "leaf gradient still accumulated")
	assert.NotNil(t, y.Gradient(), "root keeps its seed")
}

// Nodes with requiresGrad=false are never given gradients, and subgraphs
// reaching only such nodes are skipped entirely.
func TestBackward_SkipsUntracked(t *testing.T) {
	w := scalar(t, 2, graph.Parameter)
	x := scalar(t, 5, graph.Source)

	y, err := w.Mul(x)
	require.NoError(t, err)

	require.NoError(t, y.Backward())
	assert.Equal(t, 5.0, gradOf(t, w))
	assert.Nil(t, x.Gradient())
}

// Broadcast in the forward direction is reduced in the backward direction:
// the gradient for a (1,3) operand of a (2,3) result sums over the
// broadcast rows.
func TestBackward_BroadcastReduction(t *testing.T) {
	a := fromF64(t, []float64{1, 2, 3, 4, 5, 6}, array.Shape{2, 3}, graph.Parameter)
	b := fromF64(t, []float64{10, 20, 30}, array.Shape{1, 3}, graph.Parameter)

	sum, err := a.Add(b)
	require.NoError(t, err)
	loss := sum.Sum()

	require.NoError(t, loss.Backward())

	require.NotNil(t, a.Gradient())
	assert.Equal(t, array.Shape{2, 3}, a.Gradient().Shape())
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1}, a.Gradient().AsFloat64())

	require.NotNil(t, b.Gradient())
	assert.Equal(t, array.Shape{1, 3}, b.Gradient().Shape())
	assert.Equal(t, []float64{2, 2, 2}, b.Gradient().AsFloat64())
}

// For L = sum(A·B): dL/dA = 1·Bᵀ and dL/dB = Aᵀ·1.
func TestBackward_MatMul(t *testing.T) {
	a := fromF64(t, []float64{1, 2, 3, 4, 5, 6}, array.Shape{2, 3}, graph.Parameter)
	b := fromF64(t, []float64{7, 8, 9, 10, 11, 12}, array.Shape{3, 2}, graph.Parameter)

	prod, err := a.MatMul(b)
	require.NoError(t, err)
	loss := prod.Sum()

	require.NoError(t, loss.Backward())

	assert.Equal(t, []float64{15, 19, 23, 15, 19, 23}, a.Gradient().AsFloat64())
	assert.Equal(t, []float64{5, 5, 7, 7, 9, 9}, b.Gradient().AsFloat64())
}

func TestBackward_Div(t *testing.T) {
	x := scalar(t, 6, graph.Parameter)
	y := scalar(t, 2, graph.Parameter)

	z, err := x.Div(y)
	require.NoError(t, err)

	require.NoError(t, z.Backward())
	assert.InDelta(t, 0.5, gradOf(t, x), 1e-12)   // 1/y
	assert.InDelta(t, -1.5, gradOf(t, y), 1e-12)  // -x/y²
}

func TestBackward_Sub(t *testing.T) {
	x := scalar(t, 5, graph.Parameter)
	y := scalar(t, 3, graph.Parameter)

	z, err := x.Sub(y)
	require.NoError(t, err)

	require.NoError(t, z.Backward())
	assert.Equal(t, 1.0, gradOf(t, x))
	assert.Equal(t, -1.0, gradOf(t, y))
}

func TestBackward_NegExpLogAbs(t *testing.T) {
	t.Run("neg", func(t *testing.T) {
		x := scalar(t, 2, graph.Parameter)
		require.NoError(t, x.Neg().Backward())
		assert.Equal(t, -1.0, gradOf(t, x))
	})

	t.Run("exp", func(t *testing.T) {
		x := scalar(t, 1, graph.Parameter)
		y := x.Exp()
		require.NoError(t, y.Backward())
		v, err := y.Item()
		require.NoError(t, err)
		assert.InDelta(t, v, gradOf(t, x), 1e-12, "d(eˣ)/dx = eˣ")
	})

	t.Run("log", func(t *testing.T) {
		x := scalar(t, 4, graph.Parameter)
		require.NoError(t, x.Log().Backward())
		assert.InDelta(t, 0.25, gradOf(t, x), 1e-12)
	})

	t.Run("abs", func(t *testing.T) {
		x := scalar(t, -3, graph.Parameter)
		require.NoError(t, x.Abs().Backward())
		assert.Equal(t, -1.0, gradOf(t, x))
	})
}

func TestBackward_Mean(t *testing.T) {
	x := fromF64(t, []float64{1, 2, 3, 4}, array.Shape{4}, graph.Parameter)
	m := x.Mean()

	require.NoError(t, m.Backward())
	assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, x.Gradient().AsFloat64())
}

func TestBackward_SumAxis(t *testing.T) {
	x := fromF64(t, []float64{1, 2, 3, 4, 5, 6}, array.Shape{2, 3}, graph.Parameter)

	cols, err := x.SumAxis(0, false) // shape (3)
	require.NoError(t, err)
	loss := cols.Sum()

	require.NoError(t, loss.Backward())
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1}, x.Gradient().AsFloat64())
}

func TestBackward_TransposeReshape(t *testing.T) {
	x := fromF64(t, []float64{1, 2, 3, 4, 5, 6}, array.Shape{2, 3}, graph.Parameter)

	tr, err := x.T()
	require.NoError(t, err)
	r, err := tr.Reshape(6)
	require.NoError(t, err)
	loss := r.MulScalar(2).Sum()

	require.NoError(t, loss.Backward())
	assert.Equal(t, array.Shape{2, 3}, x.Gradient().Shape())
	assert.Equal(t, []float64{2, 2, 2, 2, 2, 2}, x.Gradient().AsFloat64())
}

// A scalar chain mixing most operations, checked against the hand-derived
// derivative: y = (2x + 1)² / x at x = 2 gives y = 12.5 and
// dy/dx = (2(2x+1)·2·x - (2x+1)²) / x² = (40 - 25) / 4 = 3.75.
func TestBackward_MixedExpression(t *testing.T) {
	x := scalar(t, 2, graph.Parameter)

	num := x.MulScalar(2).AddScalar(1).Pow(2)
	y, err := num.Div(x)
	require.NoError(t, err)

	v, err := y.Item()
	require.NoError(t, err)
	assert.InDelta(t, 12.5, v, 1e-12)

	require.NoError(t, y.Backward())
	assert.InDelta(t, 3.75, gradOf(t, x), 1e-12)
}
