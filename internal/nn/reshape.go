package nn

import (
	"fmt"

	"github.com/gradnet-ml/gradnet/internal/calc"
)

// Reshape changes the nominal shape of the data flowing through it without
// touching any values. It holds no parameters; gradients pass through
// unchanged.
type Reshape struct {
	shape calc.Shape
	name  string
}

// NewReshape returns a layer that reinterprets its input as the given shape.
// The input's element count must match shape.Size(); Forward panics if it
// does not.
func NewReshape(shape calc.Shape, name string) *Reshape {
	return &Reshape{shape: shape, name: name}
}

// Forward returns a reshaped view of the input.
func (l *Reshape) Forward(inp *calc.Node) *calc.Node {
	return inp.Reshaped(l.shape)
}

// Params returns nil; reshape layers are parameterless.
func (l *Reshape) Params() []*calc.Node {
	return nil
}

// Name returns the layer name.
func (l *Reshape) Name() string {
	return l.name
}

// Shape returns the target shape.
func (l *Reshape) Shape() (calc.Shape, bool) {
	return l.shape, true
}

func (l *Reshape) String() string {
	return fmt.Sprintf("Reshape (%s): -> %s", l.name, l.shape)
}
