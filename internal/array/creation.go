package array

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// Zeros creates an array filled with zeros.
func Zeros(shape Shape, dtype DataType) (*Array, error) {
	return New(shape, dtype)
}

// Ones creates an array filled with ones.
func Ones(shape Shape, dtype DataType) (*Array, error) {
	return Full(shape, dtype, 1)
}

// Full creates an array filled with a specific value.
func Full(shape Shape, dtype DataType, value float64) (*Array, error) {
	a, err := New(shape, dtype)
	if err != nil {
		return nil, err
	}
	for i := 0; i < a.NumElements(); i++ {
		a.setAt(i, value)
	}
	return a, nil
}

// Scalar creates a rank-zero array holding a single value.
func Scalar(value float64, dtype DataType) *Array {
	a, err := Full(Shape{}, dtype, value)
	if err != nil {
		panic(err) // empty shape is always valid
	}
	return a
}

// FromFloat32 creates a Float32 array from a Go slice.
// The slice is copied into the array's memory.
func FromFloat32(data []float32, shape Shape) (*Array, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", []int(shape), shape.NumElements(), len(data))
	}
	a, err := New(shape, Float32)
	if err != nil {
		return nil, err
	}
	copy(a.AsFloat32(), data)
	return a, nil
}

// FromFloat64 creates a Float64 array from a Go slice.
// The slice is copied into the array's memory.
func FromFloat64(data []float64, shape Shape) (*Array, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", []int(shape), shape.NumElements(), len(data))
	}
	a, err := New(shape, Float64)
	if err != nil {
		return nil, err
	}
	copy(a.AsFloat64(), data)
	return a, nil
}

// ZerosLike creates a zero-filled array with the same shape and dtype as a.
func ZerosLike(a *Array) *Array {
	out, err := New(a.shape, a.dtype)
	if err != nil {
		panic(err) // a's shape was already validated
	}
	return out
}

// OnesLike creates a one-filled array with the same shape and dtype as a.
func OnesLike(a *Array) *Array {
	out := ZerosLike(a)
	for i := 0; i < out.NumElements(); i++ {
		out.setAt(i, 1)
	}
	return out
}

// Randn creates an array with values drawn from the standard normal
// distribution (mean 0, stddev 1).
func Randn(shape Shape, dtype DataType) (*Array, error) {
	a, err := New(shape, dtype)
	if err != nil {
		return nil, err
	}
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	for i := 0; i < a.NumElements(); i++ {
		a.setAt(i, dist.Rand())
	}
	return a, nil
}

// Uniform creates an array with values drawn uniformly from [lo, hi).
func Uniform(shape Shape, dtype DataType, lo, hi float64) (*Array, error) {
	if hi <= lo {
		return nil, fmt.Errorf("uniform: invalid interval [%v, %v)", lo, hi)
	}
	a, err := New(shape, dtype)
	if err != nil {
		return nil, err
	}
	dist := distuv.Uniform{Min: lo, Max: hi}
	for i := 0; i < a.NumElements(); i++ {
		a.setAt(i, dist.Rand())
	}
	return a, nil
}
