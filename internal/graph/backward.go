// Package graph implements the reverse-mode differentiation engine: the
// computational graph built as tensor expressions are composed, and the
// backward traversal that accumulates gradients of a scalar output with
// respect to every upstream node.
//
// Gradients accumulate across backward passes by default; the engine never
// auto-zeroes on entry. Callers that want fresh gradients per step must
// clear them explicitly (Tensor.ZeroGrad, or the optimizer's ZeroGrad
// between steps).
//
// Example:
//
//	x := graph.New(array.Scalar(2, array.Float64), graph.Parameter)
//	y := x.Pow(2).AddScalar(1).Pow(3) // (x²+1)³
//	if err := y.Backward(); err != nil { ... }
//	fmt.Println(x.Gradient()) // dy/dx = 300 at x=2
package graph

import (
	"fmt"

	"github.com/gradflow-ml/gradflow/internal/array"
)

// BackwardOptions configures a backward pass.
type BackwardOptions struct {
	// ReleaseIntermediates drops gradients on Computed nodes (other than
	// the root) instead of retaining them, bounding memory across training
	// loops that never read intermediate gradients. Leaf gradients are
	// accumulated either way.
	ReleaseIntermediates bool
}

// Backward runs a reverse-mode pass from this tensor, accumulating
// gradients into every requires-grad node reachable from it.
//
// The tensor's value must be a scalar (one element); otherwise
// ErrInvalidBackwardTarget is returned and no gradient is touched.
func (t *Tensor) Backward() error {
	return t.BackwardWith(BackwardOptions{})
}

// BackwardWith runs a backward pass with explicit options.
//
// The pass computes its own contributions in isolation and folds them into
// stored gradients only once the whole traversal has succeeded, so a failed
// pass leaves previously accumulated gradients intact.
func (t *Tensor) BackwardWith(opts BackwardOptions) error {
	root := t.node
	if !root.requiresGrad {
		return fmt.Errorf("backward: %w", ErrNoGrad)
	}
	if root.value.NumElements() != 1 {
		return fmt.Errorf("backward: root shape %v has %d elements: %w",
			[]int(root.value.Shape()), root.value.NumElements(), ErrInvalidBackwardTarget)
	}

	order, err := topoOrder(root)
	if err != nil {
		return err
	}

	// Contributions of this pass only, keyed by node identity. Keeping them
	// out of the nodes until the end makes re-running backward on the same
	// root additive: each pass seeds exactly one d(root)/d(root) = 1.
	passGrads := make(map[*Node]*array.Array, len(order))
	passGrads[root] = array.OnesLike(root.value)

	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		g := passGrads[n]
		if g == nil {
			continue
		}
		if n.op == nil {
			if n.role == Computed {
				return &StructuralError{Detail: "computed node has no backward rule"}
			}
			continue // leaf: nothing upstream
		}

		parentGrads, err := n.op.Backward(g)
		if err != nil {
			return fmt.Errorf("backward through %s: %w", n.op.Name(), err)
		}
		if len(parentGrads) != len(n.parents) {
			return &StructuralError{
				Op:     n.op.Name(),
				Detail: fmt.Sprintf("rule produced %d gradients for %d inputs", len(parentGrads), len(n.parents)),
			}
		}

		for j, p := range n.parents {
			pg := parentGrads[j]
			if pg == nil || !p.requiresGrad {
				continue
			}
			if !pg.Shape().Equal(p.value.Shape()) {
				return &array.ShapeError{
					Op:     n.op.Name(),
					Shapes: []array.Shape{pg.Shape().Clone(), p.value.Shape().Clone()},
					Detail: fmt.Sprintf("backward gradient for input %d does not match its shape", j),
				}
			}
			if cur := passGrads[p]; cur == nil {
				passGrads[p] = pg
			} else if err := array.AddInPlace(cur, pg, 1); err != nil {
				return err
			}
		}
	}

	for n, g := range passGrads {
		if opts.ReleaseIntermediates && n.role == Computed && n != root {
			n.clearGrad()
			continue
		}
		if err := n.accumulateGrad(g); err != nil {
			return err
		}
	}

	return nil
}

// topoOrder produces a topological order of the requires-grad subgraph
// rooted at root: every node appears after all of its parents. Visiting is
// keyed on node identity so diamond fan-in is ordered exactly once.
//
// Cycles are structurally impossible (parents are always strictly older
// nodes), but the walk still detects them so a construction defect fails
// loudly instead of hanging.
func topoOrder(root *Node) ([]*Node, error) {
	visited := make(map[*Node]bool)
	onStack := make(map[*Node]bool)
	var order []*Node

	var visit func(n *Node) error
	visit = func(n *Node) error {
		if onStack[n] {
			return &StructuralError{Detail: "cycle detected in computational graph"}
		}
		if visited[n] || !n.requiresGrad {
			return nil
		}
		visited[n] = true
		onStack[n] = true
		for _, p := range n.parents {
			if err := visit(p); err != nil {
				return err
			}
		}
		onStack[n] = false
		order = append(order, n)
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return order, nil
}
