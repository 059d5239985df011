// Package array implements dense n-dimensional numeric arrays: elementwise
// and linear-algebra kernels, NumPy-style broadcasting, reductions, and
// shape manipulation. The graph engine computes all forward values and
// gradients through this package and is agnostic to its representation.
package array

// DataType represents runtime type information for arrays.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}
