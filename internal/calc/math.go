package calc

import (
	"fmt"
	"math"
)

// Exp exponentiates every element.
//
// Back-prop uses the result itself: d(eˣ)/dx = eˣ, so the parent gradient
// accumulates g·child.val.
func (n *Node) Exp() *Node {
	vals := make([]float64, n.Len())
	for i, v := range n.vals {
		vals[i] = math.Exp(v)
	}
	return NewWithBackward(n.shape, vals, []*Node{n}, func(child *Node) {
		p := child.parents[0]
		for i, g := range child.grads {
			p.grads[i] += g * child.vals[i]
		}
	})
}

// Log applies the natural logarithm to every element.
//
// The domain is not guarded: non-positive inputs produce NaN (or -Inf) that
// propagate through the graph.
func (n *Node) Log() *Node {
	vals := make([]float64, n.Len())
	for i, v := range n.vals {
		vals[i] = math.Log(v)
	}
	return NewWithBackward(n.shape, vals, []*Node{n}, func(child *Node) {
		p := child.parents[0]
		for i, g := range child.grads {
			p.grads[i] += g / p.vals[i]
		}
	})
}

// Pow raises every element to the given scalar power. Panics if the power
// is not a scalar node.
//
// Back-prop: base.grad += g·p·base^(p-1); the power accumulates
// g·ln(base)·child.val, which is NaN for non-positive bases and left
// unguarded just like Log.
func (n *Node) Pow(power *Node) *Node {
	if power.Len() != 1 {
		panic(&ShapeError{Op: "pow", Detail: fmt.Sprintf("power must be a scalar, got %v", power.shape)})
	}
	p := power.vals[0]
	vals := make([]float64, n.Len())
	for i, v := range n.vals {
		vals[i] = math.Pow(v, p)
	}
	return NewWithBackward(n.shape, vals, []*Node{n, power}, func(child *Node) {
		base, power := child.parents[0], child.parents[1]
		p := power.vals[0]
		for i, g := range child.grads {
			b := base.vals[i]
			base.grads[i] += g * p * math.Pow(b, p-1)
			power.grads[0] += g * math.Log(b) * child.vals[i]
		}
	})
}
