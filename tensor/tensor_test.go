// Copyright 2025 The GradFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradflow-ml/gradflow/tensor"
)

func TestConstructors(t *testing.T) {
	x, err := tensor.FromFloat64([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.Parameter)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, x.Shape())
	assert.Equal(t, tensor.Float64, x.DType())
	assert.True(t, x.RequiresGrad())

	z, err := tensor.Zeros(tensor.Shape{3}, tensor.Float32, tensor.Source)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0}, z.Value().AsFloat32())
	assert.False(t, z.RequiresGrad())

	s := tensor.MustScalar(2.5, tensor.Float64, tensor.Source)
	v, err := s.Item()
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)
}

// End-to-end: build an expression through the public API, differentiate it,
// and read the gradient back.
func TestBackward_EndToEnd(t *testing.T) {
	x := tensor.MustScalar(2, tensor.Float64, tensor.Parameter)
	y := x.Pow(2).AddScalar(1).Pow(3) // (x²+1)³

	v, err := y.Item()
	require.NoError(t, err)
	assert.Equal(t, 125.0, v)

	require.NoError(t, y.Backward())
	g, err := x.Gradient().Item()
	require.NoError(t, err)
	assert.Equal(t, 300.0, g)
}

func TestErrorsSurfaceThroughFacade(t *testing.T) {
	a, err := tensor.Ones(tensor.Shape{2, 3}, tensor.Float64, tensor.Source)
	require.NoError(t, err)
	b, err := tensor.Ones(tensor.Shape{4, 5}, tensor.Float64, tensor.Source)
	require.NoError(t, err)

	_, err = a.Add(b)
	var shapeErr *tensor.ShapeError
	require.ErrorAs(t, err, &shapeErr)

	vec, err := tensor.Ones(tensor.Shape{3}, tensor.Float64, tensor.Parameter)
	require.NoError(t, err)
	assert.ErrorIs(t, vec.Pow(2).Backward(), tensor.ErrInvalidBackwardTarget)
}

func TestParametersWalk(t *testing.T) {
	w, err := tensor.Randn(tensor.Shape{2, 1}, tensor.Float64, tensor.Parameter)
	require.NoError(t, err)
	x, err := tensor.Ones(tensor.Shape{3, 2}, tensor.Float64, tensor.Source)
	require.NoError(t, err)

	pred, err := x.MatMul(w)
	require.NoError(t, err)

	assert.Len(t, tensor.Parameters(pred), 1)

	counts := tensor.CountRoles(pred)
	assert.Equal(t, 1, counts[tensor.Parameter])
	assert.Equal(t, 1, counts[tensor.Source])
	assert.Equal(t, 1, counts[tensor.Computed])
}
