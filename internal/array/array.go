package array

import (
	"fmt"
	"unsafe"
)

// Array is a dense n-dimensional numeric array in row-major layout.
type Array struct {
	data   []byte
	shape  Shape
	stride []int
	dtype  DataType
}

// New creates a new Array with the given shape and type.
// Memory is allocated and zero-initialized.
func New(shape Shape, dtype DataType) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	byteSize := shape.NumElements() * dtype.Size()

	return &Array{
		data:   make([]byte, byteSize),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// Shape returns the array's shape.
func (a *Array) Shape() Shape {
	return a.shape
}

// Strides returns the array's memory strides.
func (a *Array) Strides() []int {
	return a.stride
}

// DType returns the array's data type.
func (a *Array) DType() DataType {
	return a.dtype
}

// NumElements returns the total number of elements.
func (a *Array) NumElements() int {
	return a.shape.NumElements()
}

// AsFloat32 interprets the data as []float32.
// Panics if the array's dtype is not Float32.
func (a *Array) AsFloat32() []float32 {
	if a.dtype != Float32 {
		panic(fmt.Sprintf("array dtype is %s, not float32", a.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&a.data[0])), a.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the array's dtype is not Float64.
func (a *Array) AsFloat64() []float64 {
	if a.dtype != Float64 {
		panic(fmt.Sprintf("array dtype is %s, not float64", a.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&a.data[0])), a.NumElements())
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() *Array {
	data := make([]byte, len(a.data))
	copy(data, a.data)
	return &Array{
		data:   data,
		shape:  a.shape.Clone(),
		stride: a.shape.ComputeStrides(),
		dtype:  a.dtype,
	}
}

// Item returns the value of a single-element array as float64.
// Returns an error if the array holds more than one element.
func (a *Array) Item() (float64, error) {
	if a.NumElements() != 1 {
		return 0, &ShapeError{Op: "item", Shapes: []Shape{a.shape.Clone()}, Detail: "expected a single element"}
	}
	return a.at(0), nil
}

// at reads the element at a flat index as float64, regardless of dtype.
func (a *Array) at(i int) float64 {
	switch a.dtype {
	case Float32:
		return float64(a.AsFloat32()[i])
	case Float64:
		return a.AsFloat64()[i]
	default:
		panic("unknown data type")
	}
}

// setAt writes the element at a flat index from a float64, regardless of dtype.
func (a *Array) setAt(i int, v float64) {
	switch a.dtype {
	case Float32:
		a.AsFloat32()[i] = float32(v)
	case Float64:
		a.AsFloat64()[i] = v
	default:
		panic("unknown data type")
	}
}

// String returns a short description of the array for debugging.
func (a *Array) String() string {
	return fmt.Sprintf("Array(shape=%v, dtype=%s)", []int(a.shape), a.dtype)
}
