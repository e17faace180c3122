package calc

// BackPropagation recomputes the gradients of every node the root was built
// from, using reverse-mode automatic differentiation:
//
//  1. Topologically sort all reachable nodes (parents before children),
//     visiting each node exactly once by pointer identity so shared
//     sub-expressions appear a single time.
//  2. Zero every gradient in the sorted set.
//  3. Seed the root gradient with ones.
//  4. Walk the order in reverse, invoking each node's back-prop closure,
//     which accumulates contributions onto its parents' gradients.
//
// The accumulation (+=) is what makes shared sub-expressions come out
// right: a parameter used on two paths receives the sum of both.
func (n *Node) BackPropagation() {
	sorted := topoSort(n)
	for _, node := range sorted {
		node.resetGrads()
	}
	for i := range n.grads {
		n.grads[i] = 1
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if node := sorted[i]; node.backProp != nil {
			node.backProp(node)
		}
	}
}

// topoSort returns all nodes reachable from root over parent edges in
// post-order: leaves first, the root last.
func topoSort(root *Node) []*Node {
	visited := make(map[*Node]struct{})
	var sorted []*Node
	var visit func(node *Node)
	visit = func(node *Node) {
		if _, seen := visited[node]; seen {
			return
		}
		visited[node] = struct{}{}
		for _, parent := range node.parents {
			visit(parent)
		}
		sorted = append(sorted, node)
	}
	visit(root)
	return sorted
}

// Descend performs a plain gradient-descent step on this node:
// value[i] -= rate·grad[i]. Gradients are left untouched; the next
// BackPropagation re-zeroes them.
func (n *Node) Descend(rate float64) {
	for i, g := range n.grads {
		n.vals[i] -= rate * g
	}
}
