// Package nn implements the layer abstraction on top of the calc graph:
// linear layers, element-wise function layers, reshapes, and the MultiLayer
// container that composes them into a trainable feed-forward network.
//
// Layers never hold gradients; gradients live on their parameter Nodes and
// are rewritten by every backward pass.
package nn

import (
	"fmt"

	"github.com/gradnet-ml/gradnet/internal/calc"
)

// Layer is a single stage of a feed-forward network.
type Layer interface {
	fmt.Stringer

	// Forward builds the layer's piece of the computation graph on top of
	// the input node and returns the output node.
	Forward(inp *calc.Node) *calc.Node

	// Params returns the layer's trainable parameter nodes in a stable
	// order. Layers without parameters return nil.
	Params() []*calc.Node

	// Name returns the stable human-readable layer name used when
	// bundling parameters.
	Name() string

	// Shape returns the layer's nominal shape, if it has one: the weight
	// shape of a linear layer, the target shape of a reshape.
	Shape() (calc.Shape, bool)
}
