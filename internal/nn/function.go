package nn

import (
	"fmt"
	"math"

	"github.com/gradnet-ml/gradnet/internal/calc"
)

// ActivationFunc maps an input node to an output node of the same shape.
type ActivationFunc func(inp *calc.Node) *calc.Node

// FunctionLayer applies an element-wise function to its input. It holds no
// parameters.
type FunctionLayer struct {
	fn      ActivationFunc
	formula string
	name    string
}

// NewFunctionLayer wraps an activation function. The formula is a short
// human-readable description used in debug output; the name identifies the
// layer in parameter bundles.
func NewFunctionLayer(fn ActivationFunc, formula, name string) *FunctionLayer {
	return &FunctionLayer{fn: fn, formula: formula, name: name}
}

// applyElementWise builds a single fused node for a unary function whose
// derivative can be expressed from the output, f'(y). This avoids composing
// a handful of primitive ops per activation: the back-prop closure applies
// g·f'(y) element-wise and pushes it onto the one parent.
func applyElementWise(inp *calc.Node, f, dfdy func(float64) float64) *calc.Node {
	vals := make([]float64, inp.Len())
	for i := range vals {
		vals[i] = f(inp.ValueAt(i))
	}
	return calc.NewWithBackward(inp.Shape(), vals, []*calc.Node{inp}, func(child *calc.Node) {
		contribution := make([]float64, child.Len())
		for i := range contribution {
			contribution[i] = dfdy(child.ValueAt(i)) * child.GradAt(i)
		}
		child.Parents()[0].AddGrads(contribution)
	})
}

// Sigmoid applies 1/(1+e^-x); f'(y) = y(1-y).
func Sigmoid(inp *calc.Node) *calc.Node {
	return applyElementWise(inp,
		func(x float64) float64 { return 1 / (1 + math.Exp(-x)) },
		func(y float64) float64 { return y * (1 - y) })
}

// Tanh applies the hyperbolic tangent; f'(y) = 1-y².
func Tanh(inp *calc.Node) *calc.Node {
	return applyElementWise(inp,
		math.Tanh,
		func(y float64) float64 { return 1 - y*y })
}

// LeakyReLU applies x for positive inputs and 0.01x otherwise. The output
// keeps the input's sign, so the derivative is recoverable from the output.
func LeakyReLU(inp *calc.Node) *calc.Node {
	return applyElementWise(inp,
		func(x float64) float64 {
			if x > 0 {
				return x
			}
			return 0.01 * x
		},
		func(y float64) float64 {
			if y > 0 {
				return 1
			}
			return 0.01
		})
}

// Softmax exponentiates and normalizes so the output sums to one. Unlike
// the fused unary activations it is composed from primitive ops, which
// handle the cross-element coupling of its gradient.
func Softmax(inp *calc.Node) *calc.Node {
	return inp.Exp().Normalize()
}

// Forward applies the wrapped function.
func (l *FunctionLayer) Forward(inp *calc.Node) *calc.Node {
	return l.fn(inp)
}

// Params returns nil; function layers are parameterless.
func (l *FunctionLayer) Params() []*calc.Node {
	return nil
}

// Name returns the layer name.
func (l *FunctionLayer) Name() string {
	return l.name
}

// Shape returns no nominal shape.
func (l *FunctionLayer) Shape() (calc.Shape, bool) {
	return calc.Shape{}, false
}

func (l *FunctionLayer) String() string {
	return fmt.Sprintf("FunctionLayer (%s): [%s]", l.name, l.formula)
}
