package calc

import "fmt"

// Add returns a new node holding the element-wise sum of n and other.
// The operands must have equal length, or one of them must be a scalar, in
// which case it is broadcast across the other. The result takes the shape of
// the non-scalar operand.
//
// Back-prop: both parents receive the child gradient unchanged; a broadcast
// scalar receives the sum of all child gradient elements.
func (n *Node) Add(other *Node) *Node {
	a, b := n, other
	// Keep a possible scalar on the right.
	if a.Len() == 1 {
		a, b = b, a
	}
	var vals []float64
	switch {
	case b.Len() == 1:
		s := b.vals[0]
		vals = make([]float64, a.Len())
		for i, v := range a.vals {
			vals[i] = v + s
		}
	case a.Len() == b.Len():
		vals = make([]float64, a.Len())
		for i, v := range a.vals {
			vals[i] = v + b.vals[i]
		}
	default:
		panic(&ShapeError{Op: "add", Detail: fmt.Sprintf("invalid operands %v and %v", a.shape, b.shape)})
	}
	return NewWithBackward(a.shape, vals, []*Node{a, b}, func(child *Node) {
		for _, p := range child.parents {
			if p.Len() == 1 && child.Len() > 1 {
				// Broadcast scalar: every element of the child was fed by it.
				var sum float64
				for _, g := range child.grads {
					sum += g
				}
				p.grads[0] += sum
				continue
			}
			for i, g := range child.grads {
				p.grads[i] += g
			}
		}
	})
}

// Neg returns a new node holding the element-wise negation of n.
func (n *Node) Neg() *Node {
	vals := make([]float64, n.Len())
	for i, v := range n.vals {
		vals[i] = -v
	}
	return NewWithBackward(n.shape, vals, []*Node{n}, func(child *Node) {
		p := child.parents[0]
		for i, g := range child.grads {
			p.grads[i] -= g
		}
	})
}

// Sub returns n - other, built as n + (-other).
func (n *Node) Sub(other *Node) *Node {
	return n.Add(other.Neg())
}
