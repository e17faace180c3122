// Package calc implements the differentiable computation graph that the rest
// of the library is built on.
//
// The unit of the graph is the Node: a 2-D shaped array of float64 values
// with a gradient buffer of the same size, an ordered list of parent Nodes,
// and an optional back-propagation closure installed by the op builder that
// created it.
//
// The graph is built dynamically: every op builder (Add, Mul, Exp, ...)
// computes its result eagerly, records its operands as parents, and installs
// a closure that knows how to push the result's gradient back onto those
// parents. Calling BackPropagation on a root then performs reverse-mode
// automatic differentiation over everything reachable from it.
//
// Usage:
//
//	a := calc.NewScalar(2)
//	y := a.Mul(a) // y = a²
//	y.BackPropagation()
//	fmt.Println(a.GradAt(0)) // dy/da = 2a = 4
package calc

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Shape describes a Node as a (rows, cols) matrix. (1,1) is a scalar,
// (n,1) a column vector, (1,n) a row vector.
type Shape struct {
	Rows, Cols int
}

// Size returns rows*cols.
func (s Shape) Size() int {
	return s.Rows * s.Cols
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d,%d)", s.Rows, s.Cols)
}

// Kind classifies a Node's shape. Mostly used for dispatch and debug output.
type Kind int

const (
	KindScalar Kind = iota
	KindColumnVector
	KindRowVector
	KindMatrix
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindColumnVector:
		return "ColumnVector"
	case KindRowVector:
		return "RowVector"
	case KindMatrix:
		return "Matrix"
	}
	return "Unknown"
}

// Node is a shaped array of values plus gradients, parents and an optional
// back-propagation closure. Interior Nodes are created exclusively by op
// builders; leaves (parameters, constants, inputs) are created by the
// constructors below and are the only Nodes mutated by training.
//
// A Node may be the parent of several children (shared sub-expressions);
// back-propagation accumulates into its gradient, so every path through the
// graph contributes.
type Node struct {
	shape    Shape
	vals     []float64
	grads    []float64
	parents  []*Node
	backProp func(child *Node)
}

// NewWithBackward is the raw constructor used by op builders. It panics if
// the value slice does not match the shape. Gradients start out as NaN so
// that reading them before the first BackPropagation is conspicuous.
func NewWithBackward(shape Shape, vals []float64, parents []*Node, backProp func(child *Node)) *Node {
	if shape.Size() != len(vals) {
		panic(&ShapeError{Op: "new", Detail: fmt.Sprintf("shape %v does not hold %d values", shape, len(vals))})
	}
	grads := make([]float64, len(vals))
	for i := range grads {
		grads[i] = math.NaN()
	}
	return &Node{
		shape:    shape,
		vals:     vals,
		grads:    grads,
		parents:  parents,
		backProp: backProp,
	}
}

// NewScalar constructs a (1,1) leaf.
func NewScalar(value float64) *Node {
	return Filled(Shape{1, 1}, []float64{value})
}

// NewColVector constructs an (n,1) leaf from the given values.
func NewColVector(vals ...float64) *Node {
	return Filled(Shape{len(vals), 1}, vals)
}

// NewRowVector constructs a (1,n) leaf from the given values.
func NewRowVector(vals ...float64) *Node {
	return Filled(Shape{1, len(vals)}, vals)
}

// FromShape constructs a zero-filled leaf.
func FromShape(shape Shape) *Node {
	return Filled(shape, make([]float64, shape.Size()))
}

// Filled constructs a leaf with the given shape and values. Panics if the
// sizes disagree.
func Filled(shape Shape, vals []float64) *Node {
	return NewWithBackward(shape, vals, nil, nil)
}

// Rand constructs a leaf with values drawn from the standard normal
// distribution. Used for parameter initialization.
func Rand(shape Shape) *Node {
	vals := make([]float64, shape.Size())
	for i := range vals {
		vals[i] = rand.NormFloat64() //nolint:gosec // weight initialization is not security-critical
	}
	return Filled(shape, vals)
}

// Reshape coerces the node into a new shape in place. The flat value buffer
// and its row-major order are untouched; panics if the size would change.
func (n *Node) Reshape(shape Shape) {
	if shape.Size() != len(n.vals) {
		panic(&ShapeError{
			Op:     "reshape",
			Detail: fmt.Sprintf("cannot reshape %v (%d values) to %v", n.shape, len(n.vals), shape),
		})
	}
	n.shape = shape
}

// Len returns the number of elements.
func (n *Node) Len() int {
	return len(n.vals)
}

// Shape returns the (rows, cols) shape.
func (n *Node) Shape() Shape {
	return n.shape
}

// Kind classifies the node by its shape.
func (n *Node) Kind() Kind {
	switch {
	case n.shape.Rows == 1 && n.shape.Cols == 1:
		return KindScalar
	case n.shape.Cols == 1:
		return KindColumnVector
	case n.shape.Rows == 1:
		return KindRowVector
	}
	return KindMatrix
}

// Parents returns the nodes this one was constructed from. Leaves return nil.
func (n *Node) Parents() []*Node {
	return n.parents
}

// ValueAt returns the i-th value in row-major order.
func (n *Node) ValueAt(i int) float64 {
	return n.vals[i]
}

// GradAt returns the i-th gradient in row-major order.
func (n *Node) GradAt(i int) float64 {
	return n.grads[i]
}

// CopyVals returns a copy of the value buffer.
func (n *Node) CopyVals() []float64 {
	out := make([]float64, len(n.vals))
	copy(out, n.vals)
	return out
}

// CopyGrads returns a copy of the gradient buffer.
func (n *Node) CopyGrads() []float64 {
	out := make([]float64, len(n.grads))
	copy(out, n.grads)
	return out
}

// SetVals overwrites the value buffer. Panics if the length does not match.
func (n *Node) SetVals(vals []float64) {
	if len(vals) != len(n.vals) {
		panic(&ShapeError{
			Op:     "set values",
			Detail: fmt.Sprintf("node holds %d values, got %d", len(n.vals), len(vals)),
		})
	}
	copy(n.vals, vals)
}

// SetValueAt overwrites the i-th value.
func (n *Node) SetValueAt(i int, v float64) {
	n.vals[i] = v
}

// AddGrads accumulates the given contribution into the gradient buffer.
// Panics if the length does not match. Back-propagation closures of fused
// ops use this to push gradients onto their parents.
func (n *Node) AddGrads(contribution []float64) {
	if len(contribution) != len(n.grads) {
		panic(&ShapeError{
			Op:     "add gradients",
			Detail: fmt.Sprintf("node holds %d gradients, got %d", len(n.grads), len(contribution)),
		})
	}
	for i, g := range contribution {
		n.grads[i] += g
	}
}

func (n *Node) resetGrads() {
	for i := range n.grads {
		n.grads[i] = 0
	}
}

// String renders the node for debug output.
func (n *Node) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v %v [", n.Kind(), n.shape)
	for i, v := range n.vals {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%g", v)
	}
	sb.WriteString("]")
	return sb.String()
}
