package graph

import (
	"fmt"

	"github.com/gradflow-ml/gradflow/internal/array"
	"github.com/gradflow-ml/gradflow/internal/graph/ops"
)

// Tensor is the public handle around a graph Node. It exposes the operators
// that grow the graph and the backward-pass entry point.
//
// Handles are lightweight: copying a Tensor never duplicates array data, and
// several handles may wrap the same Node (for example when a value is used
// as an operand twice). Dropping every handle to a computed result releases
// that node and any ancestors nothing else reaches.
type Tensor struct {
	node *Node
}

// Option configures leaf construction.
type Option func(*leafConfig)

type leafConfig struct {
	requiresGrad *bool
}

// WithRequiresGrad overrides the role's default gradient tracking.
func WithRequiresGrad(v bool) Option {
	return func(c *leafConfig) { c.requiresGrad = &v }
}

// New creates a leaf tensor with the given role.
//
// Source tensors do not require gradients by default; Parameter tensors do.
// The default may be overridden with WithRequiresGrad. Computed is not a
// valid leaf role: computed nodes only come from operations.
func New(value *array.Array, role Role, opts ...Option) *Tensor {
	if role == Computed {
		panic("graph: computed nodes are produced by operations, not constructed directly")
	}

	var cfg leafConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	requiresGrad := role == Parameter
	if cfg.requiresGrad != nil {
		requiresGrad = *cfg.requiresGrad
	}

	return &Tensor{node: newLeaf(value, role, requiresGrad)}
}

// newComputedTensor wraps an operation result in a fresh Computed node.
func newComputedTensor(value *array.Array, op ops.Operation, parents ...*Node) *Tensor {
	return &Tensor{node: newComputed(value, op, parents...)}
}

// Value returns the tensor's array. Mutating it in place (as optimizers do)
// is visible to every handle sharing the node.
func (t *Tensor) Value() *array.Array {
	return t.node.value
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() array.Shape {
	return t.node.value.Shape()
}

// DType returns the tensor's data type.
func (t *Tensor) DType() array.DataType {
	return t.node.value.DType()
}

// Role returns the node's role in the graph.
func (t *Tensor) Role() Role {
	return t.node.role
}

// RequiresGrad reports whether backward passes accumulate into this node.
func (t *Tensor) RequiresGrad() bool {
	return t.node.requiresGrad
}

// Gradient returns the accumulated gradient, or nil if no backward pass has
// reached this node since it was created or last cleared.
func (t *Tensor) Gradient() *array.Array {
	return t.node.grad
}

// ZeroGrad removes the accumulated gradient. Gradients accumulate across
// backward passes by default; callers wanting fresh gradients per step must
// clear them explicitly (optimizers own this between steps).
func (t *Tensor) ZeroGrad() {
	t.node.clearGrad()
}

// Item returns the value of a scalar tensor.
func (t *Tensor) Item() (float64, error) {
	return t.node.value.Item()
}

// Detach returns a Source tensor sharing this tensor's value but severed
// from the graph: no parents, no gradient tracking.
func (t *Tensor) Detach() *Tensor {
	return &Tensor{node: newLeaf(t.node.value, Source, false)}
}

// String returns a short description for debugging.
func (t *Tensor) String() string {
	opName := ""
	if t.node.op != nil {
		opName = ", op=" + t.node.op.Name()
	}
	return fmt.Sprintf("Tensor(shape=%v, role=%s, requiresGrad=%t%s)",
		[]int(t.Shape()), t.Role(), t.RequiresGrad(), opName)
}

// Add performs elementwise addition with broadcasting.
func (t *Tensor) Add(other *Tensor) (*Tensor, error) {
	out, err := array.Add(t.node.value, other.node.value)
	if err != nil {
		return nil, err
	}
	return newComputedTensor(out, ops.NewAddOp(t.node.value, other.node.value), t.node, other.node), nil
}

// Sub performs elementwise subtraction with broadcasting.
func (t *Tensor) Sub(other *Tensor) (*Tensor, error) {
	out, err := array.Sub(t.node.value, other.node.value)
	if err != nil {
		return nil, err
	}
	return newComputedTensor(out, ops.NewSubOp(t.node.value, other.node.value), t.node, other.node), nil
}

// Mul performs elementwise multiplication with broadcasting.
func (t *Tensor) Mul(other *Tensor) (*Tensor, error) {
	out, err := array.Mul(t.node.value, other.node.value)
	if err != nil {
		return nil, err
	}
	return newComputedTensor(out, ops.NewMulOp(t.node.value, other.node.value), t.node, other.node), nil
}

// Div performs elementwise division with broadcasting.
func (t *Tensor) Div(other *Tensor) (*Tensor, error) {
	out, err := array.Div(t.node.value, other.node.value)
	if err != nil {
		return nil, err
	}
	return newComputedTensor(out, ops.NewDivOp(t.node.value, other.node.value), t.node, other.node), nil
}

// MatMul performs 2-D matrix multiplication.
func (t *Tensor) MatMul(other *Tensor) (*Tensor, error) {
	out, err := array.MatMul(t.node.value, other.node.value)
	if err != nil {
		return nil, err
	}
	return newComputedTensor(out, ops.NewMatMulOp(t.node.value, other.node.value), t.node, other.node), nil
}

// AddScalar returns t + s.
func (t *Tensor) AddScalar(s float64) *Tensor {
	return newComputedTensor(array.AddScalar(t.node.value, s), ops.NewAddScalarOp(), t.node)
}

// SubScalar returns t - s.
func (t *Tensor) SubScalar(s float64) *Tensor {
	return newComputedTensor(array.SubScalar(t.node.value, s), ops.NewSubScalarOp(), t.node)
}

// MulScalar returns t * s.
func (t *Tensor) MulScalar(s float64) *Tensor {
	return newComputedTensor(array.Scale(t.node.value, s), ops.NewMulScalarOp(s), t.node)
}

// Pow raises every element to the constant power p.
func (t *Tensor) Pow(p float64) *Tensor {
	return newComputedTensor(array.Pow(t.node.value, p), ops.NewPowOp(t.node.value, p), t.node)
}

// Neg returns -t.
func (t *Tensor) Neg() *Tensor {
	return newComputedTensor(array.Neg(t.node.value), ops.NewNegOp(), t.node)
}

// Exp computes the elementwise exponential.
func (t *Tensor) Exp() *Tensor {
	out := array.Exp(t.node.value)
	return newComputedTensor(out, ops.NewExpOp(out), t.node)
}

// Log computes the elementwise natural logarithm. Non-positive inputs
// produce NaN/-Inf per IEEE-754 semantics and are not intercepted.
func (t *Tensor) Log() *Tensor {
	return newComputedTensor(array.Log(t.node.value), ops.NewLogOp(t.node.value), t.node)
}

// Abs computes the elementwise absolute value.
func (t *Tensor) Abs() *Tensor {
	return newComputedTensor(array.Abs(t.node.value), ops.NewAbsOp(t.node.value), t.node)
}

// Transpose permutes the tensor's dimensions. With no axes, all dimensions
// are reversed.
func (t *Tensor) Transpose(axes ...int) (*Tensor, error) {
	ndim := len(t.Shape())
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	// Transposing a transpose with the inverse permutation restores the
	// original tensor; hand back its node instead of growing the graph.
	if prev, ok := t.node.op.(*ops.TransposeOp); ok && invertsPermutation(prev.Axes(), axes) {
		return &Tensor{node: t.node.parents[0]}, nil
	}
	out, err := array.Transpose(t.node.value, axes...)
	if err != nil {
		return nil, err
	}
	return newComputedTensor(out, ops.NewTransposeOp(axes), t.node), nil
}

// invertsPermutation reports whether applying second after first is the
// identity, i.e. first[second[i]] == i for all i. Out-of-range axes report
// false so invalid permutations still reach the kernel's validation.
func invertsPermutation(first, second []int) bool {
	if len(first) != len(second) {
		return false
	}
	for i, ax := range second {
		if ax < 0 || ax >= len(first) || first[ax] != i {
			return false
		}
	}
	return true
}

// T is a shortcut for the 2-D matrix transpose.
func (t *Tensor) T() (*Tensor, error) {
	if len(t.Shape()) != 2 {
		return nil, &array.ShapeError{
			Op:     "transpose",
			Shapes: []array.Shape{t.Shape().Clone()},
			Detail: "T() requires a rank-2 tensor",
		}
	}
	return t.Transpose(1, 0)
}

// Reshape returns a tensor with the same data and a different shape.
func (t *Tensor) Reshape(shape ...int) (*Tensor, error) {
	out, err := array.Reshape(t.node.value, array.Shape(shape))
	if err != nil {
		return nil, err
	}
	return newComputedTensor(out, ops.NewReshapeOp(t.node.value), t.node), nil
}

// Sum reduces all elements to a scalar tensor.
func (t *Tensor) Sum() *Tensor {
	return newComputedTensor(array.Sum(t.node.value), ops.NewSumOp(t.node.value), t.node)
}

// Mean reduces all elements to their average as a scalar tensor.
func (t *Tensor) Mean() *Tensor {
	return newComputedTensor(array.Mean(t.node.value), ops.NewMeanOp(t.node.value), t.node)
}

// SumAxis sums along the given axis.
func (t *Tensor) SumAxis(axis int, keepDim bool) (*Tensor, error) {
	out, err := array.SumAxis(t.node.value, axis, keepDim)
	if err != nil {
		return nil, err
	}
	return newComputedTensor(out, ops.NewSumAxisOp(t.node.value, axis, keepDim), t.node), nil
}

// MeanAxis averages along the given axis.
func (t *Tensor) MeanAxis(axis int, keepDim bool) (*Tensor, error) {
	out, err := array.MeanAxis(t.node.value, axis, keepDim)
	if err != nil {
		return nil, err
	}
	return newComputedTensor(out, ops.NewMeanAxisOp(t.node.value, axis, keepDim), t.node), nil
}
