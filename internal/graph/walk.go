package graph

// Parameters collects every Parameter tensor reachable from t, in discovery
// order. This is how optimizers find the trainable leaves of a loss graph.
func Parameters(t *Tensor) []*Tensor {
	var params []*Tensor
	visited := make(map[*Node]bool)

	var walk func(n *Node)
	walk = func(n *Node) {
		if visited[n] {
			return
		}
		visited[n] = true
		if n.role == Parameter {
			params = append(params, &Tensor{node: n})
		}
		for _, p := range n.parents {
			walk(p)
		}
	}

	walk(t.node)
	return params
}

// CountRoles counts the nodes of each role reachable from t.
func CountRoles(t *Tensor) map[Role]int {
	counts := make(map[Role]int)
	visited := make(map[*Node]bool)

	var walk func(n *Node)
	walk = func(n *Node) {
		if visited[n] {
			return
		}
		visited[n] = true
		counts[n.role]++
		for _, p := range n.parents {
			walk(p)
		}
	}

	walk(t.node)
	return counts
}
