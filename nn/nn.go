// Package nn is the public face of the layer and training machinery.
//
// Example:
//
//	mlp, _ := nn.NewMultiLayer(
//	    nn.NewLinear(8, 2, true, "hidden"),
//	    nn.NewFunctionLayer(nn.Tanh, "tanh(x)", "activation"),
//	    nn.NewLinear(2, 8, true, "out"),
//	    nn.NewFunctionLayer(nn.Softmax, "softmax(x)", "probabilities"),
//	)
//	mlp.SetLossFunction(nn.NegLogLikelihood)
//	loss, _ := mlp.Train(batch, 0.1)
package nn

import (
	"github.com/gradnet-ml/gradnet/internal/calc"
	"github.com/gradnet-ml/gradnet/internal/nn"
)

// Layer is a single stage of a feed-forward network.
type Layer = nn.Layer

// Linear is a fully connected layer.
type Linear = nn.Linear

// FunctionLayer applies an element-wise function.
type FunctionLayer = nn.FunctionLayer

// Reshape reinterprets the data shape between layers.
type Reshape = nn.Reshape

// MultiLayer chains layers into a trainable network.
type MultiLayer = nn.MultiLayer

// Sample pairs a network input with its expected output.
type Sample = nn.Sample

// LossFunc scores a prediction against a same-shaped target.
type LossFunc = nn.LossFunc

// ActivationFunc maps an input node to a same-shaped output node.
type ActivationFunc = nn.ActivationFunc

// ParameterBundle is a graph-detached snapshot of network parameters.
type ParameterBundle = nn.ParameterBundle

var (
	ErrNoLayers               = nn.ErrNoLayers
	ErrNegativeRegularization = nn.ErrNegativeRegularization
	ErrEmptyBatch             = nn.ErrEmptyBatch
	ErrBundleMismatch         = nn.ErrBundleMismatch
)

// NewLinear creates a linear layer with standard-normal initialized
// parameters.
func NewLinear(outRows, inRows int, biased bool, name string) *Linear {
	return nn.NewLinear(outRows, inRows, biased, name)
}

// LinearFromNodes creates a linear layer around existing parameter nodes.
func LinearFromNodes(w, b *calc.Node, name string) *Linear {
	return nn.LinearFromNodes(w, b, name)
}

// NewFunctionLayer wraps an activation function as a layer.
func NewFunctionLayer(fn ActivationFunc, formula, name string) *FunctionLayer {
	return nn.NewFunctionLayer(fn, formula, name)
}

// NewReshape creates a layer that reinterprets its input's shape.
func NewReshape(shape calc.Shape, name string) *Reshape {
	return nn.NewReshape(shape, name)
}

// NewMultiLayer builds a network from the given layers.
func NewMultiLayer(layers ...Layer) (*MultiLayer, error) {
	return nn.NewMultiLayer(layers...)
}

// Activations.
var (
	Sigmoid   = nn.Sigmoid
	Tanh      = nn.Tanh
	LeakyReLU = nn.LeakyReLU
	Softmax   = nn.Softmax
)

// Loss functions.
var (
	LeastSquares     LossFunc = nn.LeastSquares
	NegLogLikelihood LossFunc = nn.NegLogLikelihood
)

// BundleFrom captures the current parameter values of a network.
func BundleFrom(m *MultiLayer) *ParameterBundle {
	return nn.BundleFrom(m)
}

// ImportBundle reads a bundle from a file written by Export.
func ImportBundle(path string) (*ParameterBundle, error) {
	return nn.ImportBundle(path)
}
