package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradnet-ml/gradnet/internal/calc"
)

func TestLinear_ForwardUnbiased(t *testing.T) {
	w := calc.Filled(calc.Shape{Rows: 2, Cols: 2}, []float64{1, 2, 3, 4})
	l := LinearFromNodes(w, nil, "test")

	out := l.Forward(calc.NewColVector(5, 6))

	assert.Equal(t, []float64{17, 39}, out.CopyVals())
	assert.Len(t, l.Params(), 1)
}

func TestLinear_ForwardBiased(t *testing.T) {
	w := calc.Filled(calc.Shape{Rows: 2, Cols: 2}, []float64{1, 2, 3, 4})
	b := calc.NewColVector(7, 8)
	l := LinearFromNodes(w, b, "test")

	out := l.Forward(calc.NewColVector(5, 6))

	assert.Equal(t, []float64{24, 47}, out.CopyVals())
	assert.Len(t, l.Params(), 2)
}

func TestLinear_BiasBroadcastOverColumns(t *testing.T) {
	w := calc.Filled(calc.Shape{Rows: 2, Cols: 2}, []float64{1, 0, 0, 1})
	b := calc.NewColVector(10, 20)
	l := LinearFromNodes(w, b, "test")

	// Two input columns at once; the bias applies to each.
	inp := calc.Filled(calc.Shape{Rows: 2, Cols: 2}, []float64{1, 2, 3, 4})
	out := l.Forward(inp)

	require.Equal(t, calc.Shape{Rows: 2, Cols: 2}, out.Shape())
	assert.Equal(t, []float64{11, 12, 23, 24}, out.CopyVals())
}

func TestLinear_BiasGradientSumsOverColumns(t *testing.T) {
	w := calc.Filled(calc.Shape{Rows: 1, Cols: 1}, []float64{1})
	b := calc.NewColVector(0)
	l := LinearFromNodes(w, b, "test")

	inp := calc.Filled(calc.Shape{Rows: 1, Cols: 3}, []float64{1, 2, 3})
	l.Forward(inp).Sum().BackPropagation()

	// Each of the three output columns contributes 1 to the bias gradient.
	assert.Equal(t, []float64{3}, b.CopyGrads())
}

func TestLinear_TrainablesDescend(t *testing.T) {
	w := calc.Filled(calc.Shape{Rows: 2, Cols: 2}, []float64{1, 2, 3, 4})
	b := calc.NewColVector(1, 1)
	l := LinearFromNodes(w, b, "test")

	l.Forward(calc.NewColVector(1, 1)).Sum().BackPropagation()
	for _, p := range l.Params() {
		p.Descend(0.5)
	}

	assert.Equal(t, []float64{0.5, 1.5, 2.5, 3.5}, w.CopyVals())
	assert.Equal(t, []float64{0.5, 0.5}, b.CopyVals())
}

func TestNewLinear_Shapes(t *testing.T) {
	l := NewLinear(3, 2, true, "dense")

	require.NotNil(t, l.Bias())
	assert.Equal(t, calc.Shape{Rows: 3, Cols: 2}, l.Weights().Shape())
	assert.Equal(t, calc.Shape{Rows: 3, Cols: 1}, l.Bias().Shape())
	assert.Equal(t, "dense", l.Name())
}

func TestNewLinear_UnbiasedHasNoBias(t *testing.T) {
	l := NewLinear(3, 2, false, "embed")

	assert.Nil(t, l.Bias())
	assert.Len(t, l.Params(), 1)
}

func TestLinearFromNodes_BiasRowMismatchPanics(t *testing.T) {
	w := calc.Filled(calc.Shape{Rows: 2, Cols: 2}, []float64{1, 2, 3, 4})
	b := calc.NewColVector(1, 2, 3)

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok, "expected an error panic")
		assert.ErrorIs(t, err, calc.ErrShapeMismatch)
	}()
	LinearFromNodes(w, b, "test")
}
