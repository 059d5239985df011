// Copyright 2025 The GradFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API of the GradFlow differentiation
// engine: graph-building tensors, leaf constructors, and the backward pass.
//
// Every operation on a Tensor records a node in a computational graph;
// calling Backward on a scalar result walks that graph once in reverse
// topological order and accumulates gradients into every tensor that
// requires them.
//
// Gradients accumulate across backward passes. Reset them with ZeroGrad
// (or an optimizer's ZeroGrad) before computing fresh gradients.
//
// Example:
//
//	x := tensor.MustScalar(2, tensor.Float64, tensor.Parameter)
//	y := x.Pow(2).AddScalar(1).Pow(3) // (x²+1)³
//	if err := y.Backward(); err != nil {
//	    log.Fatal(err)
//	}
//	grad, _ := x.Gradient().Item() // 300
package tensor

import (
	"github.com/gradflow-ml/gradflow/internal/array"
	"github.com/gradflow-ml/gradflow/internal/graph"
)

// Type aliases for the public API.

// Shape represents the dimensions of a tensor.
// An empty Shape describes a scalar.
type Shape = array.Shape

// DataType represents the underlying data type of a tensor.
type DataType = array.DataType

// Data type constants.
const (
	Float32 DataType = array.Float32
	Float64 DataType = array.Float64
)

// Array is the dense n-dimensional value held by a tensor.
type Array = array.Array

// Tensor is a handle on one node of the computational graph.
type Tensor = graph.Tensor

// Role classifies a node in the computational graph.
type Role = graph.Role

// Role constants.
const (
	Source    Role = graph.Source
	Parameter Role = graph.Parameter
	Computed  Role = graph.Computed
)

// Option configures leaf construction.
type Option = graph.Option

// BackwardOptions configures a backward pass.
type BackwardOptions = graph.BackwardOptions

// ShapeError reports an operation invoked with incompatible shapes.
type ShapeError = array.ShapeError

// StructuralError reports a violated graph invariant.
type StructuralError = graph.StructuralError

// Errors surfaced by the backward pass.
var (
	ErrInvalidBackwardTarget = graph.ErrInvalidBackwardTarget
	ErrNoGrad                = graph.ErrNoGrad
)

// WithRequiresGrad overrides a role's default gradient tracking at
// construction.
func WithRequiresGrad(v bool) Option {
	return graph.WithRequiresGrad(v)
}

// New creates a leaf tensor wrapping an existing array.
func New(value *Array, role Role, opts ...Option) *Tensor {
	return graph.New(value, role, opts...)
}

// FromFloat64 creates a Float64 leaf tensor from a Go slice.
func FromFloat64(data []float64, shape Shape, role Role, opts ...Option) (*Tensor, error) {
	a, err := array.FromFloat64(data, shape)
	if err != nil {
		return nil, err
	}
	return graph.New(a, role, opts...), nil
}

// FromFloat32 creates a Float32 leaf tensor from a Go slice.
func FromFloat32(data []float32, shape Shape, role Role, opts ...Option) (*Tensor, error) {
	a, err := array.FromFloat32(data, shape)
	if err != nil {
		return nil, err
	}
	return graph.New(a, role, opts...), nil
}

// MustScalar creates a rank-zero leaf tensor holding one value.
func MustScalar(value float64, dtype DataType, role Role, opts ...Option) *Tensor {
	return graph.New(array.Scalar(value, dtype), role, opts...)
}

// Zeros creates a zero-filled leaf tensor.
func Zeros(shape Shape, dtype DataType, role Role, opts ...Option) (*Tensor, error) {
	a, err := array.Zeros(shape, dtype)
	if err != nil {
		return nil, err
	}
	return graph.New(a, role, opts...), nil
}

// Ones creates a one-filled leaf tensor.
func Ones(shape Shape, dtype DataType, role Role, opts ...Option) (*Tensor, error) {
	a, err := array.Ones(shape, dtype)
	if err != nil {
		return nil, err
	}
	return graph.New(a, role, opts...), nil
}

// Full creates a leaf tensor filled with a specific value.
func Full(shape Shape, dtype DataType, value float64, role Role, opts ...Option) (*Tensor, error) {
	a, err := array.Full(shape, dtype, value)
	if err != nil {
		return nil, err
	}
	return graph.New(a, role, opts...), nil
}

// Randn creates a leaf tensor with standard-normal values.
func Randn(shape Shape, dtype DataType, role Role, opts ...Option) (*Tensor, error) {
	a, err := array.Randn(shape, dtype)
	if err != nil {
		return nil, err
	}
	return graph.New(a, role, opts...), nil
}

// Uniform creates a leaf tensor with values drawn uniformly from [lo, hi).
func Uniform(shape Shape, dtype DataType, lo, hi float64, role Role, opts ...Option) (*Tensor, error) {
	a, err := array.Uniform(shape, dtype, lo, hi)
	if err != nil {
		return nil, err
	}
	return graph.New(a, role, opts...), nil
}

// Parameters collects every Parameter tensor reachable from t.
func Parameters(t *Tensor) []*Tensor {
	return graph.Parameters(t)
}

// CountRoles counts the nodes of each role reachable from t.
func CountRoles(t *Tensor) map[Role]int {
	return graph.CountRoles(t)
}
