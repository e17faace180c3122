package nn

import (
	"strings"

	"github.com/gradnet-ml/gradnet/internal/calc"
)

// Sample pairs a network input with its expected output.
type Sample struct {
	Input  *calc.Node
	Target *calc.Node
}

// MultiLayer chains layers into a network and drives training: it folds
// inputs through the stack, scores predictions with a loss function,
// back-propagates, and descends every parameter.
type MultiLayer struct {
	layers []Layer
	loss   LossFunc
	lambda float64
}

// NewMultiLayer builds a network from the given layers. The loss defaults
// to NegLogLikelihood and regularization is disabled.
func NewMultiLayer(layers ...Layer) (*MultiLayer, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}
	return &MultiLayer{layers: layers, loss: NegLogLikelihood}, nil
}

// SetLossFunction replaces the loss used by Loss and Train.
func (m *MultiLayer) SetLossFunction(loss LossFunc) {
	m.loss = loss
}

// SetRegularization sets the L2 penalty rate λ. Zero disables the penalty;
// negative rates are rejected.
func (m *MultiLayer) SetRegularization(lambda float64) error {
	if lambda < 0 {
		return ErrNegativeRegularization
	}
	m.lambda = lambda
	return nil
}

// Forward folds the input through every layer in order.
func (m *MultiLayer) Forward(inp *calc.Node) *calc.Node {
	out := inp
	for _, l := range m.layers {
		out = l.Forward(out)
	}
	return out
}

// Predict runs a forward pass and collapses the resulting distribution
// into a one-hot sample.
func (m *MultiLayer) Predict(inp *calc.Node) *calc.Node {
	return m.Forward(inp).Collapse()
}

// Loss builds the scalar training loss over a batch: the mean of the
// per-sample losses, plus λ times the mean of the squared parameter
// elements when regularization is enabled. The returned node is wired
// into the forward graphs, so back-propagation reaches the parameters.
func (m *MultiLayer) Loss(batch []Sample) (*calc.Node, error) {
	if len(batch) == 0 {
		return nil, ErrEmptyBatch
	}
	var total *calc.Node
	for _, s := range batch {
		sampleLoss := m.loss(m.Forward(s.Input), s.Target)
		if total == nil {
			total = sampleLoss
		} else {
			total = total.Add(sampleLoss)
		}
	}
	loss := total.Div(calc.NewScalar(float64(len(batch))))

	if m.lambda > 0 {
		var penalty *calc.Node
		elements := 0
		for _, p := range m.Params() {
			sq := p.Pow(calc.NewScalar(2)).Sum()
			elements += p.Len()
			if penalty == nil {
				penalty = sq
			} else {
				penalty = penalty.Add(sq)
			}
		}
		if penalty != nil {
			scale := m.lambda / float64(elements)
			loss = loss.Add(penalty.Mul(calc.NewScalar(scale)))
		}
	}
	return loss, nil
}

// Train performs one SGD step on a batch: compute the loss, back-propagate,
// and descend every parameter by the learning rate. The returned node holds
// the pre-step loss value.
func (m *MultiLayer) Train(batch []Sample, rate float64) (*calc.Node, error) {
	loss, err := m.Loss(batch)
	if err != nil {
		return nil, err
	}
	loss.BackPropagation()
	for _, p := range m.Params() {
		p.Descend(rate)
	}
	return loss, nil
}

// Params returns every trainable parameter across all layers.
func (m *MultiLayer) Params() []*calc.Node {
	var params []*calc.Node
	for _, l := range m.layers {
		params = append(params, l.Params()...)
	}
	return params
}

// Layer returns the i-th layer.
func (m *MultiLayer) Layer(i int) Layer {
	return m.layers[i]
}

// Len returns the number of layers.
func (m *MultiLayer) Len() int {
	return len(m.layers)
}

func (m *MultiLayer) String() string {
	var b strings.Builder
	b.WriteString("MultiLayer:\n")
	for _, l := range m.layers {
		b.WriteString("  ")
		b.WriteString(l.String())
		b.WriteString("\n")
	}
	return b.String()
}
