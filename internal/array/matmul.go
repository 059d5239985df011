package array

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// MatMul performs 2-D matrix multiplication: (M, K) @ (K, N) → (M, N).
// Both operands must be rank 2 with aligned inner dimensions.
//
// The Float64 path delegates to gonum's BLAS-backed mat.Dense; the Float32
// path uses a cache-friendly i-k-j loop.
func MatMul(a, b *Array) (*Array, error) {
	if a.dtype != b.dtype {
		return nil, fmt.Errorf("matmul: mismatched dtypes %s and %s", a.dtype, b.dtype)
	}
	if len(a.shape) != 2 || len(b.shape) != 2 {
		return nil, &ShapeError{
			Op:     "matmul",
			Shapes: []Shape{a.shape.Clone(), b.shape.Clone()},
			Detail: "both operands must be rank 2",
		}
	}
	if a.shape[1] != b.shape[0] {
		return nil, &ShapeError{
			Op:     "matmul",
			Shapes: []Shape{a.shape.Clone(), b.shape.Clone()},
			Detail: fmt.Sprintf("inner dimensions %d and %d differ", a.shape[1], b.shape[0]),
		}
	}

	m, k, n := a.shape[0], a.shape[1], b.shape[1]
	out, err := New(Shape{m, n}, a.dtype)
	if err != nil {
		return nil, err
	}

	switch a.dtype {
	case Float64:
		am := mat.NewDense(m, k, a.AsFloat64())
		bm := mat.NewDense(k, n, b.AsFloat64())
		om := mat.NewDense(m, n, out.AsFloat64())
		om.Mul(am, bm)
	case Float32:
		matmulFloat32(a.AsFloat32(), b.AsFloat32(), out.AsFloat32(), m, k, n)
	}

	return out, nil
}

// matmulFloat32 computes out = a @ b with an i-k-j loop so that the inner
// loop walks both b and out contiguously.
func matmulFloat32(a, b, out []float32, m, k, n int) {
	for i := 0; i < m; i++ {
		aRow := a[i*k : (i+1)*k]
		outRow := out[i*n : (i+1)*n]
		for kk := 0; kk < k; kk++ {
			av := aRow[kk]
			if av == 0 {
				continue
			}
			bRow := b[kk*n : (kk+1)*n]
			for j := 0; j < n; j++ {
				outRow[j] += av * bRow[j]
			}
		}
	}
}
