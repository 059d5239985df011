package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradflow-ml/gradflow/internal/array"
	"github.com/gradflow-ml/gradflow/internal/graph"
)

func scalar(t *testing.T, v float64, role graph.Role, opts ...graph.Option) *graph.Tensor {
	t.Helper()
	return graph.New(array.Scalar(v, array.Float64), role, opts...)
}

func fromF64(t *testing.T, data []float64, shape array.Shape, role graph.Role) *graph.Tensor {
	t.Helper()
	a, err := array.FromFloat64(data, shape)
	require.NoError(t, err)
	return graph.New(a, role)
}

func TestNew_RoleDefaults(t *testing.T) {
	src := scalar(t, 1, graph.Source)
	assert.Equal(t, graph.Source, src.Role())
	assert.False(t, src.RequiresGrad())

	param := scalar(t, 1, graph.Parameter)
	assert.Equal(t, graph.Parameter, param.Role())
	assert.True(t, param.RequiresGrad())
}

func TestNew_RequiresGradOverride(t *testing.T) {
	src := scalar(t, 1, graph.Source, graph.WithRequiresGrad(true))
	assert.True(t, src.RequiresGrad())

	param := scalar(t, 1, graph.Parameter, graph.WithRequiresGrad(false))
	assert.False(t, param.RequiresGrad())
}

func TestNew_ComputedPanics(t *testing.T) {
	assert.Panics(t, func() {
		graph.New(array.Scalar(1, array.Float64), graph.Computed)
	})
}

func TestOperations_ProduceComputedNodes(t *testing.T) {
	a := scalar(t, 2, graph.Parameter)
	b := scalar(t, 3, graph.Source)

	c, err := a.Mul(b)
	require.NoError(t, err)
	assert.Equal(t, graph.Computed, c.Role())
	assert.True(t, c.RequiresGrad(), "one tracked operand is enough")

	d, err := b.Add(b)
	require.NoError(t, err)
	assert.Equal(t, graph.Computed, d.Role())
	assert.False(t, d.RequiresGrad(), "no tracked operands")
}

func TestOperations_FailFastOnShapes(t *testing.T) {
	a := fromF64(t, []float64{1, 2, 3}, array.Shape{3}, graph.Parameter)
	b := fromF64(t, []float64{1, 2}, array.Shape{2}, graph.Parameter)

	_, err := a.Add(b)
	var shapeErr *array.ShapeError
	require.ErrorAs(t, err, &shapeErr)

	_, err = a.MatMul(b)
	assert.ErrorAs(t, err, &shapeErr)
}

func TestForward_Values(t *testing.T) {
	x := scalar(t, 2, graph.Parameter)

	// x² + 3x + 1 at x = 2.
	y, err := x.Pow(2).Add(x.MulScalar(3))
	require.NoError(t, err)
	y = y.AddScalar(1)

	v, err := y.Item()
	require.NoError(t, err)
	assert.Equal(t, 11.0, v)
}

func TestDetach(t *testing.T) {
	x := scalar(t, 2, graph.Parameter)
	y := x.Pow(2)

	d := y.Detach()
	assert.Equal(t, graph.Source, d.Role())
	assert.False(t, d.RequiresGrad())
	assert.Same(t, y.Value(), d.Value(), "detach shares the value")

	// A graph built on the detached handle must not reach x.
	z := d.MulScalar(3)
	counts := graph.CountRoles(z)
	assert.Zero(t, counts[graph.Parameter])
}

func TestGradient_NilBeforeBackward(t *testing.T) {
	x := scalar(t, 2, graph.Parameter)
	assert.Nil(t, x.Gradient())
}

func TestZeroGrad(t *testing.T) {
	x := scalar(t, 2, graph.Parameter)
	y := x.Pow(2)
	require.NoError(t, y.Backward())
	require.NotNil(t, x.Gradient())

	x.ZeroGrad()
	assert.Nil(t, x.Gradient())
}

func TestParameters(t *testing.T) {
	w := scalar(t, 1, graph.Parameter)
	b := scalar(t, 0, graph.Parameter)
	x := scalar(t, 5, graph.Source)

	wx, err := w.Mul(x)
	require.NoError(t, err)
	y, err := wx.Add(b)
	require.NoError(t, err)

	params := graph.Parameters(y)
	assert.Len(t, params, 2)
}

func TestCountRoles(t *testing.T) {
	w := scalar(t, 1, graph.Parameter)
	x := scalar(t, 5, graph.Source)

	wx, err := w.Mul(x)
	require.NoError(t, err)
	y := wx.AddScalar(1)

	counts := graph.CountRoles(y)
	assert.Equal(t, 1, counts[graph.Parameter])
	assert.Equal(t, 1, counts[graph.Source])
	assert.Equal(t, 2, counts[graph.Computed])
}

// A transpose of a transpose with the inverse permutation gives back the
// original node rather than two extra graph nodes.
func TestTranspose_InverseCollapses(t *testing.T) {
	x := fromF64(t, []float64{1, 2, 3, 4, 5, 6}, array.Shape{2, 3}, graph.Parameter)

	tr, err := x.T()
	require.NoError(t, err)
	back, err := tr.T()
	require.NoError(t, err)

	assert.Same(t, x.Value(), back.Value(), "double transpose restores the original node")
	counts := graph.CountRoles(back)
	assert.Zero(t, counts[graph.Computed])

	// Explicit inverse permutations collapse too.
	y := fromF64(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, array.Shape{2, 2, 2}, graph.Source)
	p, err := y.Transpose(2, 0, 1)
	require.NoError(t, err)
	q, err := p.Transpose(1, 2, 0)
	require.NoError(t, err)
	assert.Same(t, y.Value(), q.Value())

	// A non-inverse second permutation still builds a node.
	r, err := p.Transpose(2, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, graph.Computed, r.Role())
}

// Backward through a collapsed transpose pair sees the original node.
func TestTranspose_InverseCollapseBackward(t *testing.T) {
	x := fromF64(t, []float64{1, 2, 3, 4, 5, 6}, array.Shape{2, 3}, graph.Parameter)

	tr, err := x.T()
	require.NoError(t, err)
	back, err := tr.T()
	require.NoError(t, err)

	loss := back.MulScalar(3).Sum()
	require.NoError(t, loss.Backward())

	require.NotNil(t, x.Gradient())
	assert.Equal(t, []float64{3, 3, 3, 3, 3, 3}, x.Gradient().AsFloat64())
}

func TestCountRoles_SharedNodeCountedOnce(t *testing.T) {
	x := scalar(t, 3, graph.Parameter)
	y, err := x.Mul(x) // same node used twice
	require.NoError(t, err)

	counts := graph.CountRoles(y)
	assert.Equal(t, 1, counts[graph.Parameter])
	assert.Equal(t, 1, counts[graph.Computed])
}
