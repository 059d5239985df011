package graph

import (
	"fmt"

	"github.com/gradflow-ml/gradflow/internal/array"
	"github.com/gradflow-ml/gradflow/internal/graph/ops"
)

// Node is a single vertex of the computational graph.
//
// A node is created exactly once, when a leaf constructor or an operation
// produces it, and is never mutated afterwards except for gradient
// accumulation. Parent references are fixed at construction and always point
// at strictly older nodes, so the reference structure is acyclic by
// construction: a node reaches its ancestors but nothing reaches back. No
// child back-references exist anywhere, which is what lets the garbage
// collector reclaim a discarded graph as soon as the last Tensor handle
// (and any traversal walking through it) lets go.
type Node struct {
	value        *array.Array
	role         Role
	requiresGrad bool
	grad         *array.Array  // nil until a backward pass reaches this node
	parents      []*Node       // empty for Source/Parameter nodes
	op           ops.Operation // backward rule; nil for Source/Parameter nodes
}

// newLeaf creates a Source or Parameter node with no parents and no
// backward rule.
func newLeaf(value *array.Array, role Role, requiresGrad bool) *Node {
	return &Node{
		value:        value,
		role:         role,
		requiresGrad: requiresGrad,
	}
}

// newComputed creates a Computed node. The node requires gradients iff any
// parent does; the backward rule is stored either way (it is cheap, and the
// traversal skips nodes that cannot contribute).
func newComputed(value *array.Array, op ops.Operation, parents ...*Node) *Node {
	requiresGrad := false
	for _, p := range parents {
		if p.requiresGrad {
			requiresGrad = true
			break
		}
	}
	return &Node{
		value:        value,
		role:         Computed,
		requiresGrad: requiresGrad,
		parents:      parents,
		op:           op,
	}
}

// accumulateGrad sums a contribution into the node's stored gradient,
// creating it on the first contribution.
func (n *Node) accumulateGrad(g *array.Array) error {
	if !g.Shape().Equal(n.value.Shape()) {
		opName := "leaf"
		if n.op != nil {
			opName = n.op.Name()
		}
		return &array.ShapeError{
			Op:     "grad accumulate",
			Shapes: []array.Shape{g.Shape().Clone(), n.value.Shape().Clone()},
			Detail: fmt.Sprintf("gradient shape does not match %s node value", opName),
		}
	}
	if n.grad == nil {
		n.grad = g
		return nil
	}
	return array.AddInPlace(n.grad, g, 1)
}

// clearGrad removes the node's accumulated gradient.
func (n *Node) clearGrad() {
	n.grad = nil
}
