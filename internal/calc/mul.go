package calc

import "fmt"

// Mul multiplies two nodes. Two kinds of multiplication are recognised:
//
//  1. multiplication by a scalar, chosen when either operand has length 1;
//  2. the matrix product (m,n)·(n,p) → (m,p) otherwise.
//
// Element-wise multiplication is provided by ElementWiseMul. Panics with a
// *ShapeError if the inner dimensions do not match.
func (n *Node) Mul(other *Node) *Node {
	if n.Len() == 1 || other.Len() == 1 {
		a, b := n, other
		if a.Len() == 1 {
			a, b = b, a
		}
		return a.mulScalar(b)
	}
	return n.matMul(other)
}

// mulScalar scales every element of a by the scalar s.
//
// Back-prop: a.grad += g·s element-wise; the scalar accumulates Σ g·a.
func (a *Node) mulScalar(s *Node) *Node {
	scalar := s.vals[0]
	vals := make([]float64, a.Len())
	for i, v := range a.vals {
		vals[i] = v * scalar
	}
	return NewWithBackward(a.shape, vals, []*Node{a, s}, func(child *Node) {
		a, s := child.parents[0], child.parents[1]
		scalar := s.vals[0]
		for i, g := range child.grads {
			a.grads[i] += g * scalar
			s.grads[0] += g * a.vals[i]
		}
	})
}

// matMul computes the standard matrix product.
//
// Back-prop: A.grad += G·Bᵀ and B.grad += Aᵀ·G, written as index loops over
// the flat row-major buffers. The contributions are staged in scratch
// buffers before accumulation so that A and B may be the same node.
func (n *Node) matMul(other *Node) *Node {
	if n.shape.Cols != other.shape.Rows {
		panic(&ShapeError{
			Op:     "matmul",
			Detail: fmt.Sprintf("inner dimensions of %v and %v do not match", n.shape, other.shape),
		})
	}
	m, inner := n.shape.Rows, n.shape.Cols
	p := other.shape.Cols
	vals := make([]float64, m*p)
	for i := range vals {
		row, col := i/p, i%p
		var sum float64
		for k := 0; k < inner; k++ {
			sum += n.vals[row*inner+k] * other.vals[k*p+col]
		}
		vals[i] = sum
	}
	return NewWithBackward(Shape{m, p}, vals, []*Node{n, other}, func(child *Node) {
		a, b := child.parents[0], child.parents[1]
		inner := a.shape.Cols
		p := b.shape.Cols
		gradA := make([]float64, a.Len())
		gradB := make([]float64, b.Len())
		for i, g := range child.grads {
			row, col := i/p, i%p
			for k := 0; k < inner; k++ {
				gradA[row*inner+k] += g * b.vals[k*p+col]
				gradB[k*p+col] += g * a.vals[row*inner+k]
			}
		}
		a.AddGrads(gradA)
		b.AddGrads(gradB)
	})
}

// ElementWiseMul multiplies the two nodes element-wise. The operands must
// have equal length; the result takes the receiver's shape.
func (n *Node) ElementWiseMul(other *Node) *Node {
	if n.Len() != other.Len() {
		panic(&ShapeError{
			Op:     "element-wise mul",
			Detail: fmt.Sprintf("invalid operands %v and %v", n.shape, other.shape),
		})
	}
	vals := make([]float64, n.Len())
	for i, v := range n.vals {
		vals[i] = v * other.vals[i]
	}
	return NewWithBackward(n.shape, vals, []*Node{n, other}, func(child *Node) {
		a, b := child.parents[0], child.parents[1]
		for i, g := range child.grads {
			av, bv := a.vals[i], b.vals[i]
			a.grads[i] += g * bv
			b.grads[i] += g * av
		}
	})
}

// Inv raises every element to the power -1.
func (n *Node) Inv() *Node {
	return n.Pow(NewScalar(-1))
}

// Div divides n by other. A scalar divisor scales every element; otherwise
// the division is element-wise. Both routes go through Inv, so the gradient
// follows from the Pow and Mul rules.
func (n *Node) Div(other *Node) *Node {
	if other.Kind() == KindScalar {
		return n.Mul(other.Inv())
	}
	return n.ElementWiseMul(other.Inv())
}
