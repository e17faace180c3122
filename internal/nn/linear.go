package nn

import (
	"fmt"

	"github.com/gradnet-ml/gradnet/internal/calc"
)

// Linear implements a fully connected layer: y = W·x, or W·x + b when
// biased. W has shape (out, in) and b, when present, (out, 1).
//
// The input is a column vector (in, 1), or an (in, p) matrix, in which case
// the bias column is broadcast over all p output columns.
type Linear struct {
	w    *calc.Node
	b    *calc.Node // nil when unbiased
	name string
}

// NewLinear creates a linear layer with standard-normal initialized weights
// and, when biased, a standard-normal initialized bias column.
func NewLinear(outRows, inRows int, biased bool, name string) *Linear {
	var b *calc.Node
	if biased {
		b = calc.Rand(calc.Shape{Rows: outRows, Cols: 1})
	}
	return &Linear{
		w:    calc.Rand(calc.Shape{Rows: outRows, Cols: inRows}),
		b:    b,
		name: name,
	}
}

// LinearFromNodes creates a linear layer around existing parameter nodes.
// The bias may be nil; panics if the bias rows disagree with the weight rows
// or either node is empty.
func LinearFromNodes(w, b *calc.Node, name string) *Linear {
	if w.Len() == 0 || (b != nil && b.Len() == 0) {
		panic(&calc.ShapeError{Op: "linear", Detail: "cannot create layer from an empty node"})
	}
	if b != nil && w.Shape().Rows != b.Shape().Rows {
		panic(&calc.ShapeError{
			Op:     "linear",
			Detail: fmt.Sprintf("bias %v must have as many rows as weight %v", b.Shape(), w.Shape()),
		})
	}
	return &Linear{w: w, b: b, name: name}
}

// Forward computes W·x (+ b).
func (l *Linear) Forward(inp *calc.Node) *calc.Node {
	out := l.w.Mul(inp)
	if l.b == nil {
		return out
	}
	if cols := out.Shape().Cols; cols > 1 {
		// Tile the bias column across all output columns. The ones row is a
		// constant leaf; the bias gradient then accumulates the row sums of
		// the output gradient, which is the broadcast adjoint.
		ones := make([]float64, cols)
		for i := range ones {
			ones[i] = 1
		}
		return out.Add(l.b.Mul(calc.NewRowVector(ones...)))
	}
	return out.Add(l.b)
}

// Params returns the weight and, when present, the bias.
func (l *Linear) Params() []*calc.Node {
	if l.b != nil {
		return []*calc.Node{l.w, l.b}
	}
	return []*calc.Node{l.w}
}

// Weights returns the weight node.
func (l *Linear) Weights() *calc.Node {
	return l.w
}

// Bias returns the bias node, or nil for an unbiased layer.
func (l *Linear) Bias() *calc.Node {
	return l.b
}

// Name returns the layer name.
func (l *Linear) Name() string {
	return l.name
}

// Shape returns the weight shape.
func (l *Linear) Shape() (calc.Shape, bool) {
	return l.w.Shape(), true
}

func (l *Linear) String() string {
	if l.b != nil {
		return fmt.Sprintf("Linear (%s): [weights: %v, biases: %v]", l.name, l.w, l.b)
	}
	return fmt.Sprintf("Linear (%s): [weights: %v]", l.name, l.w)
}
