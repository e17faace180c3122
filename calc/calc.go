// Package calc is the public face of the differentiable computation graph.
//
// A Node holds a (rows, cols) shaped value together with the gradient of
// whatever scalar was last back-propagated through it. Arithmetic on Nodes
// builds the graph; calling BackPropagation on a scalar result fills in the
// gradients of every node that contributed to it.
//
// Example:
//
//	x := calc.NewScalar(3)
//	y := x.Mul(x) // x²
//	y.BackPropagation()
//	x.GradAt(0)   // 6
package calc

import (
	"github.com/gradnet-ml/gradnet/internal/calc"
)

// Shape is a (rows, cols) pair describing a Node's layout.
type Shape = calc.Shape

// Kind classifies a Node's shape.
type Kind = calc.Kind

const (
	KindScalar       = calc.KindScalar
	KindColumnVector = calc.KindColumnVector
	KindRowVector    = calc.KindRowVector
	KindMatrix       = calc.KindMatrix
)

// Node is one vertex of the computation graph.
type Node = calc.Node

// ShapeError reports inputs whose shapes violate an operation's rules.
type ShapeError = calc.ShapeError

var (
	ErrShapeMismatch        = calc.ErrShapeMismatch
	ErrInvalidConfiguration = calc.ErrInvalidConfiguration
	ErrNumericDomain        = calc.ErrNumericDomain
)

// NewScalar creates a (1, 1) leaf node.
func NewScalar(value float64) *Node {
	return calc.NewScalar(value)
}

// NewColVector creates an (n, 1) leaf node.
func NewColVector(vals ...float64) *Node {
	return calc.NewColVector(vals...)
}

// NewRowVector creates a (1, n) leaf node.
func NewRowVector(vals ...float64) *Node {
	return calc.NewRowVector(vals...)
}

// FromShape creates a zero-valued leaf node of the given shape.
func FromShape(shape Shape) *Node {
	return calc.FromShape(shape)
}

// Filled creates a leaf node of the given shape holding vals in row-major
// order.
func Filled(shape Shape, vals []float64) *Node {
	return calc.Filled(shape, vals)
}

// Rand creates a leaf node with standard-normal distributed values.
func Rand(shape Shape) *Node {
	return calc.Rand(shape)
}
