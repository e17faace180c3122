package colorize

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gradnet-ml/gradnet/internal/calc"
	"github.com/gradnet-ml/gradnet/internal/nn"
)

// Range is a half-open coordinate interval [Min, Max).
type Range struct {
	Min, Max float64
}

func (r Range) sample() float64 {
	return r.Min + rand.Float64()*(r.Max-r.Min) //nolint:gosec // sampling, not crypto
}

// UnitSquare covers [-0.5, 0.5) in both axes, which is where the Venn
// diagram key lives.
var UnitSquare = Range{Min: -0.5, Max: 0.5}

// FixedRate is a degenerate range for training at a constant learning rate.
func FixedRate(r float64) Range {
	return Range{Min: r, Max: r}
}

// Config describes the network geometry of a Predictor.
type Config struct {
	HiddenLayers   int
	LayerDim       int
	Regularization float64
}

// Predictor learns a coordinate → color mapping from a ColorFunc ground
// truth: a tanh MLP from 2 inputs to an 8-way softmax over the channel
// combinations, trained with least squares against one-hot color targets.
type Predictor struct {
	key ColorFunc
	mlp *nn.MultiLayer
}

func createLayers(cfg Config) []nn.Layer {
	const inputDim = 2
	tanh := func(name string) nn.Layer {
		return nn.NewFunctionLayer(nn.Tanh, "tanh(x)", name)
	}

	layers := []nn.Layer{
		nn.NewLinear(cfg.LayerDim, inputDim, true, "resizing layer (in)"),
		tanh("non-linearity layer"),
	}
	for n := 0; n < cfg.HiddenLayers; n++ {
		layers = append(layers,
			nn.NewLinear(cfg.LayerDim, cfg.LayerDim, true, fmt.Sprintf("hidden layer %d", n)),
			tanh(fmt.Sprintf("hidden non-linearity %d", n)),
		)
	}
	return append(layers,
		nn.NewLinear(NumColors, cfg.LayerDim, true, "resizing layer (out)"),
		nn.NewFunctionLayer(nn.Softmax, "softmax(x)", "probability producing layer"),
	)
}

// NewPredictor builds a predictor against the given ground truth.
func NewPredictor(key ColorFunc, cfg Config) (*Predictor, error) {
	mlp, err := nn.NewMultiLayer(createLayers(cfg)...)
	if err != nil {
		return nil, err
	}
	if err := mlp.SetRegularization(cfg.Regularization); err != nil {
		return nil, err
	}
	mlp.SetLossFunction(nn.LeastSquares)
	return &Predictor{key: key, mlp: mlp}, nil
}

// Key returns the ground-truth color of a coordinate.
func (p *Predictor) Key(x, y float64) Color {
	return ColorFromChannels(p.key(x, y))
}

func (p *Predictor) target(x, y float64) *calc.Node {
	vals := make([]float64, NumColors)
	vals[ColorFromChannels(p.key(x, y))] = 1
	return calc.NewColVector(vals...)
}

// calcCorrelations samples coordinates uniformly from the ranges and pairs
// them with their one-hot ground-truth color.
func (p *Predictor) calcCorrelations(batchSize int, xRange, yRange Range) []nn.Sample {
	samples := make([]nn.Sample, batchSize)
	for i := range samples {
		x, y := xRange.sample(), yRange.sample()
		samples[i] = nn.Sample{
			Input:  calc.NewColVector(x, y),
			Target: p.target(x, y),
		}
	}
	return samples
}

// Train runs SGD for the given number of cycles over freshly sampled
// batches. The learning rate is log-spaced from rate.Min down (or up) to
// rate.Max across the cycles; a degenerate range trains at a fixed rate.
// With verbose set, the per-cycle loss and duration go to stdout.
// Returns the loss of the final cycle.
func (p *Predictor) Train(cycles, batchSize int, rate Range, xRange, yRange Range, verbose bool) (float64, error) {
	start := time.Now()
	logStep := 0.0
	if cycles > 1 && rate.Min > 0 && rate.Max > 0 {
		logStep = (math.Log(rate.Max) - math.Log(rate.Min)) / float64(cycles-1)
	}
	last := 0.0
	for n := 0; n < cycles; n++ {
		batch := p.calcCorrelations(batchSize, xRange, yRange)
		cycleStart := time.Now()
		cycleRate := rate.Min
		if logStep != 0 {
			cycleRate = math.Exp(math.Log(rate.Min) + logStep*float64(n))
		}
		loss, err := p.mlp.Train(batch, cycleRate)
		if err != nil {
			return 0, err
		}
		last = loss.ValueAt(0)
		if verbose {
			fmt.Printf("Cycle #%d, rate: %.2e: [ loss: %.3e, duration: %d µs ]\n",
				n, cycleRate, last, time.Since(cycleStart).Microseconds())
		}
	}
	if verbose {
		params := 0
		for _, param := range p.mlp.Params() {
			params += param.Len()
		}
		fmt.Printf("Trained network with %d parameters for %d cycles in %d ms achieving a loss of %.3e.\n",
			params, cycles, time.Since(start).Milliseconds(), last)
	}
	return last, nil
}

// Predict returns the most probable color for a coordinate.
func (p *Predictor) Predict(x, y float64) Color {
	out := p.mlp.Forward(calc.NewColVector(x, y))
	best, bestVal := 0, out.ValueAt(0)
	for i := 1; i < out.Len(); i++ {
		if v := out.ValueAt(i); v > bestVal {
			best, bestVal = i, v
		}
	}
	return Color(best)
}

// Accuracy samples n coordinates uniformly and returns the fraction whose
// predicted color matches the ground truth.
func (p *Predictor) Accuracy(n int, xRange, yRange Range) float64 {
	if n == 0 {
		return 0
	}
	hits := 0
	for i := 0; i < n; i++ {
		x, y := xRange.sample(), yRange.sample()
		if p.Predict(x, y) == p.Key(x, y) {
			hits++
		}
	}
	return float64(hits) / float64(n)
}

// ParameterBundle captures the network's current parameters.
func (p *Predictor) ParameterBundle() *nn.ParameterBundle {
	return nn.BundleFrom(p.mlp)
}

// LoadParameterBundle restores previously captured parameters.
func (p *Predictor) LoadParameterBundle(b *nn.ParameterBundle) error {
	return b.Apply(p.mlp)
}
