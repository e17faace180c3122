package calc

import "math/rand"

// Sum reduces the node to a scalar holding the sum of all values.
//
// Back-prop: every parent element receives the child's single gradient.
func (n *Node) Sum() *Node {
	var sum float64
	for _, v := range n.vals {
		sum += v
	}
	return NewWithBackward(Shape{1, 1}, []float64{sum}, []*Node{n}, func(child *Node) {
		p := child.parents[0]
		g := child.grads[0]
		for i := range p.grads {
			p.grads[i] += g
		}
	})
}

// Normalize scales the node so that its values sum to one. Built as
// n / Sum(n), so gradients flow through both the numerator and the sum.
func (n *Node) Normalize() *Node {
	return n.Div(n.Sum())
}

// Collapse samples a one-hot leaf from the node's values interpreted as a
// probability distribution, by inverse-CDF sampling: a uniform draw over the
// value sum walks the buckets, and the last bucket absorbs any float
// precision leftovers. The result is a fresh leaf of the same shape and is
// not connected to the graph.
func (n *Node) Collapse() *Node {
	vals := make([]float64, n.Len())
	var sum float64
	for _, v := range n.vals {
		sum += v
	}
	rnd := rand.Float64() * sum //nolint:gosec // sampling, not security-critical
	for i, v := range n.vals {
		rnd -= v
		if rnd <= 0 || i+1 == n.Len() {
			vals[i] = 1
			break
		}
	}
	return Filled(n.shape, vals)
}
