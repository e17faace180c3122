package colorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGBVennDiagram(t *testing.T) {
	// Circle centers carry exactly their own channel plus the overlaps.
	assert.Equal(t, [3]bool{true, true, true}, RGBVennDiagram(0, 0))
	assert.Equal(t, [3]bool{true, false, false}, RGBVennDiagram(0.4, -0.125))
	assert.Equal(t, [3]bool{false, true, false}, RGBVennDiagram(-0.4, -0.125))
	assert.Equal(t, [3]bool{false, false, true}, RGBVennDiagram(0, 0.6))
	assert.Equal(t, [3]bool{false, false, false}, RGBVennDiagram(2, 2))
}

func TestColorFromChannels(t *testing.T) {
	assert.Equal(t, Black, ColorFromChannels([3]bool{false, false, false}))
	assert.Equal(t, Red, ColorFromChannels([3]bool{true, false, false}))
	assert.Equal(t, Green, ColorFromChannels([3]bool{false, true, false}))
	assert.Equal(t, Blue, ColorFromChannels([3]bool{false, false, true}))
	assert.Equal(t, Yellow, ColorFromChannels([3]bool{true, true, false}))
	assert.Equal(t, White, ColorFromChannels([3]bool{true, true, true}))
}

func TestColor_ChannelsRoundTrip(t *testing.T) {
	for c := Black; c < NumColors; c++ {
		assert.Equal(t, c, ColorFromChannels(c.Channels()))
	}
}

func TestColor_String(t *testing.T) {
	assert.Equal(t, "black", Black.String())
	assert.Equal(t, "white", White.String())
	assert.Equal(t, "magenta", Magenta.String())
}

func TestNewPredictor_LayerStack(t *testing.T) {
	p, err := NewPredictor(RGBVennDiagram, Config{HiddenLayers: 2, LayerDim: 6})
	require.NoError(t, err)

	// In pair, two hidden pairs, out pair.
	assert.Equal(t, 8, p.mlp.Len())
}

func TestPredictor_TargetIsOneHot(t *testing.T) {
	p, err := NewPredictor(RGBVennDiagram, Config{LayerDim: 4})
	require.NoError(t, err)

	target := p.target(0, 0)
	require.Equal(t, NumColors, target.Len())
	assert.Equal(t, 1.0, target.ValueAt(int(White)))

	sum := 0.0
	for i := 0; i < target.Len(); i++ {
		sum += target.ValueAt(i)
	}
	assert.Equal(t, 1.0, sum)
}

func TestPredictor_CalcCorrelations(t *testing.T) {
	p, err := NewPredictor(RGBVennDiagram, Config{LayerDim: 4})
	require.NoError(t, err)

	samples := p.calcCorrelations(16, UnitSquare, UnitSquare)
	require.Len(t, samples, 16)
	for _, s := range samples {
		assert.Equal(t, 2, s.Input.Len())
		assert.GreaterOrEqual(t, s.Input.ValueAt(0), -0.5)
		assert.Less(t, s.Input.ValueAt(0), 0.5)
		assert.Equal(t, NumColors, s.Target.Len())
	}
}

func TestPredictor_TrainReducesLoss(t *testing.T) {
	p, err := NewPredictor(RGBVennDiagram, Config{HiddenLayers: 1, LayerDim: 8})
	require.NoError(t, err)

	first, err := p.Train(1, 32, FixedRate(0.5), UnitSquare, UnitSquare, false)
	require.NoError(t, err)
	last, err := p.Train(40, 32, Range{Min: 0.5, Max: 0.05}, UnitSquare, UnitSquare, false)
	require.NoError(t, err)
	assert.Less(t, last, first)
}

func TestPredictor_PredictReturnsValidColor(t *testing.T) {
	p, err := NewPredictor(RGBVennDiagram, Config{LayerDim: 4})
	require.NoError(t, err)

	c := p.Predict(0.1, -0.1)
	assert.GreaterOrEqual(t, int(c), 0)
	assert.Less(t, int(c), NumColors)
}

func TestPredictor_AccuracyBounds(t *testing.T) {
	p, err := NewPredictor(RGBVennDiagram, Config{LayerDim: 4})
	require.NoError(t, err)

	acc := p.Accuracy(50, UnitSquare, UnitSquare)
	assert.GreaterOrEqual(t, acc, 0.0)
	assert.LessOrEqual(t, acc, 1.0)
	assert.Zero(t, p.Accuracy(0, UnitSquare, UnitSquare))
}

func TestPredictor_BundleRoundTrip(t *testing.T) {
	trained, err := NewPredictor(RGBVennDiagram, Config{LayerDim: 4})
	require.NoError(t, err)
	_, err = trained.Train(2, 8, FixedRate(0.1), UnitSquare, UnitSquare, false)
	require.NoError(t, err)

	fresh, err := NewPredictor(RGBVennDiagram, Config{LayerDim: 4})
	require.NoError(t, err)
	require.NoError(t, fresh.LoadParameterBundle(trained.ParameterBundle()))

	for i, p := range trained.mlp.Params() {
		assert.Equal(t, p.CopyVals(), fresh.mlp.Params()[i].CopyVals(), "parameter %d", i)
	}
}
