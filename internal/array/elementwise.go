package array

import (
	"fmt"
	"math"
)

// broadcastIndexer returns a mapping from flat indices in the broadcast
// output shape to flat indices in the source shape. Shapes are aligned
// from the right; source dimensions of size 1 repeat.
func broadcastIndexer(src, out Shape) func(int) int {
	if src.Equal(out) {
		return func(i int) int { return i }
	}

	srcStrides := src.ComputeStrides()
	outStrides := out.ComputeStrides()
	offset := len(out) - len(src)

	return func(i int) int {
		srcIdx := 0
		rem := i
		for d := 0; d < len(out); d++ {
			coord := rem / outStrides[d]
			rem %= outStrides[d]

			sd := d - offset
			if sd < 0 {
				continue
			}
			if src[sd] == 1 {
				continue
			}
			srcIdx += coord * srcStrides[sd]
		}
		return srcIdx
	}
}

// binaryOp applies f elementwise over broadcast operands a and b.
func binaryOp(op string, a, b *Array, f func(x, y float64) float64) (*Array, error) {
	if a.dtype != b.dtype {
		return nil, fmt.Errorf("%s: mismatched dtypes %s and %s", op, a.dtype, b.dtype)
	}

	outShape, _, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := New(outShape, a.dtype)
	if err != nil {
		return nil, err
	}

	aIdx := broadcastIndexer(a.shape, outShape)
	bIdx := broadcastIndexer(b.shape, outShape)

	switch a.dtype {
	case Float32:
		ad, bd, od := a.AsFloat32(), b.AsFloat32(), out.AsFloat32()
		for i := range od {
			od[i] = float32(f(float64(ad[aIdx(i)]), float64(bd[bIdx(i)])))
		}
	case Float64:
		ad, bd, od := a.AsFloat64(), b.AsFloat64(), out.AsFloat64()
		for i := range od {
			od[i] = f(ad[aIdx(i)], bd[bIdx(i)])
		}
	}

	return out, nil
}

// unaryOp applies f to every element of a.
func unaryOp(a *Array, f func(x float64) float64) *Array {
	out := ZerosLike(a)

	switch a.dtype {
	case Float32:
		ad, od := a.AsFloat32(), out.AsFloat32()
		for i := range od {
			od[i] = float32(f(float64(ad[i])))
		}
	case Float64:
		ad, od := a.AsFloat64(), out.AsFloat64()
		for i := range od {
			od[i] = f(ad[i])
		}
	}

	return out
}

// Add performs elementwise addition with broadcasting.
func Add(a, b *Array) (*Array, error) {
	return binaryOp("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs elementwise subtraction with broadcasting.
func Sub(a, b *Array) (*Array, error) {
	return binaryOp("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs elementwise multiplication with broadcasting.
func Mul(a, b *Array) (*Array, error) {
	return binaryOp("mul", a, b, func(x, y float64) float64 { return x * y })
}

// Div performs elementwise division with broadcasting.
// Division by zero follows IEEE-754 semantics (Inf/NaN propagate).
func Div(a, b *Array) (*Array, error) {
	return binaryOp("div", a, b, func(x, y float64) float64 { return x / y })
}

// AddScalar returns a + s.
func AddScalar(a *Array, s float64) *Array {
	return unaryOp(a, func(x float64) float64 { return x + s })
}

// SubScalar returns a - s.
func SubScalar(a *Array, s float64) *Array {
	return unaryOp(a, func(x float64) float64 { return x - s })
}

// Scale returns a * s.
func Scale(a *Array, s float64) *Array {
	return unaryOp(a, func(x float64) float64 { return x * s })
}

// Neg returns -a.
func Neg(a *Array) *Array {
	return unaryOp(a, func(x float64) float64 { return -x })
}

// Pow raises every element of a to the constant power p.
// Invalid domains (e.g. negative base with fractional exponent) produce NaN.
func Pow(a *Array, p float64) *Array {
	return unaryOp(a, func(x float64) float64 { return math.Pow(x, p) })
}

// Exp computes the elementwise exponential.
func Exp(a *Array) *Array {
	return unaryOp(a, math.Exp)
}

// Log computes the elementwise natural logarithm.
// Non-positive inputs produce NaN/-Inf per IEEE-754; they are not intercepted.
func Log(a *Array) *Array {
	return unaryOp(a, math.Log)
}

// Abs computes the elementwise absolute value.
func Abs(a *Array) *Array {
	return unaryOp(a, math.Abs)
}

// Sign computes the elementwise sign, with sign(0) defined as 0.
func Sign(a *Array) *Array {
	return unaryOp(a, func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		default:
			return 0
		}
	})
}

// AddInPlace computes dst += alpha * src. Shapes and dtypes must match.
func AddInPlace(dst, src *Array, alpha float64) error {
	if dst.dtype != src.dtype {
		return fmt.Errorf("add in place: mismatched dtypes %s and %s", dst.dtype, src.dtype)
	}
	if !dst.shape.Equal(src.shape) {
		return &ShapeError{Op: "add in place", Shapes: []Shape{dst.shape.Clone(), src.shape.Clone()}}
	}

	switch dst.dtype {
	case Float32:
		dd, sd := dst.AsFloat32(), src.AsFloat32()
		a := float32(alpha)
		for i := range dd {
			dd[i] += a * sd[i]
		}
	case Float64:
		dd, sd := dst.AsFloat64(), src.AsFloat64()
		for i := range dd {
			dd[i] += alpha * sd[i]
		}
	}

	return nil
}

// ScaleInPlace computes dst *= s.
func ScaleInPlace(dst *Array, s float64) {
	switch dst.dtype {
	case Float32:
		dd := dst.AsFloat32()
		sf := float32(s)
		for i := range dd {
			dd[i] *= sf
		}
	case Float64:
		dd := dst.AsFloat64()
		for i := range dd {
			dd[i] *= s
		}
	}
}
