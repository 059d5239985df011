package array

import "fmt"

// Transpose permutes the dimensions of a.
//
// If axes is empty, all dimensions are reversed (for rank 2, the standard
// matrix transpose). Otherwise axes must be a permutation of [0, rank).
// The result is materialized in row-major order.
func Transpose(a *Array, axes ...int) (*Array, error) {
	ndim := len(a.shape)
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		return nil, &ShapeError{
			Op:     "transpose",
			Shapes: []Shape{a.shape.Clone()},
			Detail: fmt.Sprintf("got %d axes for rank %d", len(axes), ndim),
		}
	}

	seen := make([]bool, ndim)
	outShape := make(Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			return nil, &ShapeError{
				Op:     "transpose",
				Shapes: []Shape{a.shape.Clone()},
				Detail: fmt.Sprintf("axes %v is not a permutation of [0, %d)", axes, ndim),
			}
		}
		seen[ax] = true
		outShape[i] = a.shape[ax]
	}

	out, err := New(outShape, a.dtype)
	if err != nil {
		return nil, err
	}

	srcStrides := a.shape.ComputeStrides()
	outStrides := outShape.ComputeStrides()

	for i := 0; i < out.NumElements(); i++ {
		srcIdx := 0
		rem := i
		for d := 0; d < ndim; d++ {
			coord := rem / outStrides[d]
			rem %= outStrides[d]
			srcIdx += coord * srcStrides[axes[d]]
		}
		out.setAt(i, a.at(srcIdx))
	}

	return out, nil
}

// Reshape returns an array with the same data but a different shape.
// The new shape must describe the same number of elements.
func Reshape(a *Array, shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("reshape: %w", err)
	}
	if shape.NumElements() != a.NumElements() {
		return nil, &ShapeError{
			Op:     "reshape",
			Shapes: []Shape{a.shape.Clone(), shape.Clone()},
			Detail: fmt.Sprintf("%d elements cannot be viewed as %d", a.NumElements(), shape.NumElements()),
		}
	}

	out := a.Clone()
	out.shape = shape.Clone()
	out.stride = shape.ComputeStrides()
	return out, nil
}

// BroadcastTo expands a to the target shape following broadcasting rules.
func BroadcastTo(a *Array, target Shape) (*Array, error) {
	if a.shape.Equal(target) {
		return a.Clone(), nil
	}

	combined, _, err := BroadcastShapes(a.shape, target)
	if err != nil || !combined.Equal(target) {
		return nil, &ShapeError{
			Op:     "broadcast",
			Shapes: []Shape{a.shape.Clone(), target.Clone()},
			Detail: "source shape cannot be broadcast to target",
		}
	}

	out, err := New(target, a.dtype)
	if err != nil {
		return nil, err
	}

	srcIdx := broadcastIndexer(a.shape, target)
	switch a.dtype {
	case Float32:
		ad, od := a.AsFloat32(), out.AsFloat32()
		for i := range od {
			od[i] = ad[srcIdx(i)]
		}
	case Float64:
		ad, od := a.AsFloat64(), out.AsFloat64()
		for i := range od {
			od[i] = ad[srcIdx(i)]
		}
	}

	return out, nil
}
