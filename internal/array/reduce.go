package array

import "fmt"

// Sum reduces all elements to a rank-zero array.
func Sum(a *Array) *Array {
	var sum float64
	for i := 0; i < a.NumElements(); i++ {
		sum += a.at(i)
	}
	return Scalar(sum, a.dtype)
}

// Mean reduces all elements to their average as a rank-zero array.
func Mean(a *Array) *Array {
	out := Sum(a)
	out.setAt(0, out.at(0)/float64(a.NumElements()))
	return out
}

// SumAxis sums a along the given axis. With keepDim the reduced axis is
// retained with size 1, otherwise it is removed from the result shape.
func SumAxis(a *Array, axis int, keepDim bool) (*Array, error) {
	ndim := len(a.shape)
	if axis < 0 || axis >= ndim {
		return nil, &ShapeError{
			Op:     "sum",
			Shapes: []Shape{a.shape.Clone()},
			Detail: fmt.Sprintf("axis %d out of range for rank %d", axis, ndim),
		}
	}

	reduced := a.shape.Clone()
	reduced[axis] = 1

	out, err := New(reduced, a.dtype)
	if err != nil {
		return nil, err
	}

	srcStrides := a.shape.ComputeStrides()
	outStrides := reduced.ComputeStrides()

	for i := 0; i < a.NumElements(); i++ {
		outIdx := 0
		rem := i
		for d := 0; d < ndim; d++ {
			coord := rem / srcStrides[d]
			rem %= srcStrides[d]
			if d == axis {
				continue
			}
			outIdx += coord * outStrides[d]
		}
		out.setAt(outIdx, out.at(outIdx)+a.at(i))
	}

	if !keepDim {
		squeezed := append(a.shape[:axis:axis].Clone(), a.shape[axis+1:]...)
		return Reshape(out, squeezed)
	}
	return out, nil
}

// MeanAxis averages a along the given axis.
func MeanAxis(a *Array, axis int, keepDim bool) (*Array, error) {
	out, err := SumAxis(a, axis, keepDim)
	if err != nil {
		return nil, err
	}
	ScaleInPlace(out, 1/float64(a.shape[axis]))
	return out, nil
}

// ReduceTo sums grad along broadcast axes so its shape matches target.
// This restores an operand's original shape after a broadcast forward pass:
// leading dimensions absent from target are summed away, then every
// dimension where target is 1 but grad is larger is summed down to 1.
func ReduceTo(grad *Array, target Shape) (*Array, error) {
	if grad.shape.Equal(target) {
		return grad.Clone(), nil
	}

	if len(target) == 0 {
		return Sum(grad), nil
	}

	result := grad
	for len(result.Shape()) > len(target) {
		summed, err := SumAxis(result, 0, false)
		if err != nil {
			return nil, err
		}
		result = summed
	}

	for d := 0; d < len(target); d++ {
		if target[d] == 1 && result.Shape()[d] > 1 {
			summed, err := SumAxis(result, d, true)
			if err != nil {
				return nil, err
			}
			result = summed
		}
	}

	if !result.Shape().Equal(target) {
		return nil, &ShapeError{
			Op:     "reduce",
			Shapes: []Shape{grad.shape.Clone(), target.Clone()},
			Detail: "gradient cannot be reduced to operand shape",
		}
	}

	if result == grad {
		return grad.Clone(), nil
	}
	return result, nil
}
