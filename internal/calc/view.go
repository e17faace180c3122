package calc

import "fmt"

// Reshaped returns a view of the node under a new shape. The view shares the
// flat value buffer with the original, so writes to either are seen by both,
// but it carries its own gradient buffer: during back-propagation the view's
// gradient is forwarded to the original unchanged, since a reshape is the
// identity on the flat buffer. Panics if the size would change.
func (n *Node) Reshaped(shape Shape) *Node {
	if shape.Size() != len(n.vals) {
		panic(&ShapeError{
			Op:     "reshape",
			Detail: fmt.Sprintf("cannot view %v (%d values) as %v", n.shape, len(n.vals), shape),
		})
	}
	out := NewWithBackward(shape, n.vals, []*Node{n}, func(child *Node) {
		child.parents[0].AddGrads(child.grads)
	})
	return out
}
