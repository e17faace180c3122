// Package retext implements the character-level language-model demo: a
// feed-forward network that learns next-character probabilities over a text
// corpus and extrapolates text from a seed string.
package retext

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gradnet-ml/gradnet/internal/calc"
	"github.com/gradnet-ml/gradnet/internal/dataset"
	"github.com/gradnet-ml/gradnet/internal/nn"
)

// Sentinel pads contexts shorter than the block size and terminates
// generated text.
const Sentinel = '^'

// ErrShortSeed is returned when prediction is asked to extrapolate from
// nothing at all.
var ErrShortSeed = errors.New("seed must not be empty")

// Config describes the network geometry of a ReText model.
type Config struct {
	BlockSize      int     // context window length in characters
	EmbedDim       int     // embedding dimension; 0 disables the embedding stage
	HiddenLayers   int     // number of hidden (linear+tanh) pairs
	LayerDim       int     // width of the resize and hidden layers
	Regularization float64 // L2 rate; 0 disables
}

// ReText couples a text corpus with a next-character network. The alphabet
// is the corpus alphabet extended with the sentinel character.
type ReText struct {
	data      *dataset.DataSet
	mlp       *nn.MultiLayer
	blockSize int
	embedding bool
}

// createLayers builds the layer stack: an optional unbiased embedding
// stage (linear, reshape to a single column, tanh), a biased resize-in
// linear, tanh, the hidden pairs, a biased resize-out linear, and softmax.
func createLayers(chars int, cfg Config) []nn.Layer {
	var layers []nn.Layer
	tanh := func(name string) nn.Layer {
		return nn.NewFunctionLayer(nn.Tanh, "tanh(x)", name)
	}

	if cfg.EmbedDim > 0 {
		layers = append(layers,
			nn.NewLinear(cfg.EmbedDim, chars, false, "embedding layer"),
			nn.NewReshape(calc.Shape{Rows: cfg.BlockSize * cfg.EmbedDim, Cols: 1}, "reshaping layer"),
			tanh("embedding non-linearity"),
			nn.NewLinear(cfg.LayerDim, cfg.BlockSize*cfg.EmbedDim, true, "resizing layer (in)"),
		)
	} else {
		layers = append(layers,
			nn.NewReshape(calc.Shape{Rows: cfg.BlockSize * chars, Cols: 1}, "reshaping layer"),
			nn.NewLinear(cfg.LayerDim, cfg.BlockSize*chars, true, "resizing layer (in)"),
		)
	}
	layers = append(layers, tanh("non-linearity layer"))

	for n := 0; n < cfg.HiddenLayers; n++ {
		layers = append(layers,
			nn.NewLinear(cfg.LayerDim, cfg.LayerDim, true, fmt.Sprintf("hidden layer %d", n)),
			tanh(fmt.Sprintf("hidden non-linearity %d", n)),
		)
	}

	layers = append(layers,
		nn.NewLinear(chars, cfg.LayerDim, true, "resizing layer (out)"),
		nn.NewFunctionLayer(nn.Softmax, "softmax(x)", "probability producing layer"),
	)
	return layers
}

// New builds a ReText model over a loaded corpus. The corpus alphabet is
// extended with the sentinel and re-sorted, so encoding is stable across
// models built from the same corpus.
func New(data *dataset.DataSet, cfg Config) (*ReText, error) {
	data.CharSet().AddCharacter(Sentinel).Sort()

	mlp, err := nn.NewMultiLayer(createLayers(data.CharSet().Size(), cfg)...)
	if err != nil {
		return nil, err
	}
	if err := mlp.SetRegularization(cfg.Regularization); err != nil {
		return nil, err
	}
	mlp.SetLossFunction(nn.NegLogLikelihood)

	return &ReText{
		data:      data,
		mlp:       mlp,
		blockSize: cfg.BlockSize,
		embedding: cfg.EmbedDim > 0,
	}, nil
}

// extractCorrelations samples n (context, next character) pairs from text.
// The text is padded with a leading sentinel run and a trailing sentinel,
// so every character has a full-width context and line ends are learnable.
func (r *ReText) extractCorrelations(text string, n int) ([]nn.Sample, error) {
	padded := []rune(strings.Repeat(string(Sentinel), r.blockSize) + text + string(Sentinel))
	positions := len(padded) - r.blockSize
	if positions < 1 {
		return nil, fmt.Errorf("text of %d characters has no full context windows", len(padded))
	}
	if n > positions {
		n = positions
	}

	cs := r.data.CharSet()
	start := rand.Intn(positions) //nolint:gosec // sampling, not crypto
	samples := make([]nn.Sample, 0, n)
	for i := 0; len(samples) < n; i++ {
		pos := (start + i) % positions
		context, err := cs.Encode(string(padded[pos : pos+r.blockSize]))
		if err != nil {
			return nil, err
		}
		next, err := cs.EncodeChar(padded[pos+r.blockSize])
		if err != nil {
			return nil, err
		}
		samples = append(samples, nn.Sample{Input: context, Target: next})
	}
	return samples, nil
}

// Train runs SGD for the given number of cycles, sampling batchSize pairs
// from the training slice each cycle. With verbose set, the per-cycle loss
// and duration go to stdout. Returns the loss of the final cycle.
func (r *ReText) Train(cycles int, rate float64, batchSize int, verbose bool) (float64, error) {
	start := time.Now()
	last := 0.0
	for n := 0; n < cycles; n++ {
		batch, err := r.extractCorrelations(r.data.TrainingData(), batchSize)
		if err != nil {
			return 0, err
		}
		cycleStart := time.Now()
		loss, err := r.mlp.Train(batch, rate)
		if err != nil {
			return 0, err
		}
		last = loss.ValueAt(0)
		if verbose {
			fmt.Printf("Cycle #%d: [ loss: %.3e, duration: %d µs ]\n",
				n, last, time.Since(cycleStart).Microseconds())
		}
	}
	if verbose {
		params := 0
		for _, p := range r.mlp.Params() {
			params += p.Len()
		}
		fmt.Printf("Trained network with %d parameters for %d cycles in %d ms.\n",
			params, cycles, time.Since(start).Milliseconds())
	}
	return last, nil
}

// ValidationLoss scores up to batchSize pairs from the validation slice
// without updating any parameters.
func (r *ReText) ValidationLoss(batchSize int) (float64, error) {
	batch, err := r.extractCorrelations(r.data.ValidationData(), batchSize)
	if err != nil {
		return 0, err
	}
	loss, err := r.mlp.Loss(batch)
	if err != nil {
		return 0, err
	}
	return loss.ValueAt(0), nil
}

// Predict extrapolates up to length characters from the seed string. Each
// step encodes the last blockSize characters of the running text, collapses
// the network's softmax output into a character, and appends it. Generation
// stops early when the network emits the sentinel.
func (r *ReText) Predict(seed string, length int) (string, error) {
	if seed == "" {
		return "", ErrShortSeed
	}
	cs := r.data.CharSet()
	text := append([]rune(strings.Repeat(string(Sentinel), r.blockSize)), []rune(seed)...)
	generated := 0
	for generated < length {
		context := text[len(text)-r.blockSize:]
		inp, err := cs.Encode(string(context))
		if err != nil {
			return "", err
		}
		c, err := cs.Decode(r.mlp.Predict(inp))
		if err != nil {
			return "", err
		}
		if c == Sentinel {
			break
		}
		text = append(text, c)
		generated++
	}
	return string(text[r.blockSize:]), nil
}

// Embed runs the input through the embedding layer alone. Without an
// embedding stage the encoded input is returned as is.
func (r *ReText) Embed(s string) (*calc.Node, error) {
	inp, err := r.data.CharSet().Encode(s)
	if err != nil {
		return nil, err
	}
	if !r.embedding {
		return inp, nil
	}
	return r.mlp.Layer(0).Forward(inp), nil
}

// Characters returns the model's alphabet, sentinel included.
func (r *ReText) Characters() []rune {
	return r.data.CharSet().Characters()
}

// ParameterBundle captures the network's current parameters.
func (r *ReText) ParameterBundle() *nn.ParameterBundle {
	return nn.BundleFrom(r.mlp)
}

// LoadParameterBundle restores previously captured parameters.
func (r *ReText) LoadParameterBundle(b *nn.ParameterBundle) error {
	return b.Apply(r.mlp)
}
