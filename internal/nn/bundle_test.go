package nn

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradnet-ml/gradnet/internal/calc"
)

func bundleNetwork(t *testing.T) *MultiLayer {
	t.Helper()
	m, err := NewMultiLayer(
		NewLinear(2, 2, true, "hidden"),
		NewFunctionLayer(Tanh, "tanh(x)", "act"),
		NewLinear(2, 2, false, "out"),
	)
	require.NoError(t, err)
	return m
}

func TestBundle_RoundTrip(t *testing.T) {
	m := bundleNetwork(t)
	path := filepath.Join(t.TempDir(), "params.txt")

	actual, err := BundleFrom(m).Export(path)
	require.NoError(t, err)
	assert.Equal(t, path, actual)

	// A fresh network with the same architecture gets the saved values.
	fresh := bundleNetwork(t)
	imported, err := ImportBundle(actual)
	require.NoError(t, err)
	require.NoError(t, imported.Apply(fresh))

	for i, p := range m.Params() {
		assert.Equal(t, p.CopyVals(), fresh.Params()[i].CopyVals(), "parameter %d", i)
	}
}

func TestBundle_ExportAvoidsOverwrite(t *testing.T) {
	m := bundleNetwork(t)
	path := filepath.Join(t.TempDir(), "params.txt")
	b := BundleFrom(m)

	first, err := b.Export(path)
	require.NoError(t, err)
	second, err := b.Export(path)
	require.NoError(t, err)
	third, err := b.Export(path)
	require.NoError(t, err)

	assert.Equal(t, path, first)
	assert.Equal(t, path+".0", second)
	assert.Equal(t, path+".1", third)
}

func TestBundle_ApplyLayerCountMismatch(t *testing.T) {
	m := bundleNetwork(t)
	b := BundleFrom(m)

	small, err := NewMultiLayer(NewLinear(2, 2, true, "hidden"))
	require.NoError(t, err)
	assert.ErrorIs(t, b.Apply(small), ErrBundleMismatch)
}

func TestBundle_ApplyParameterLengthMismatch(t *testing.T) {
	m := bundleNetwork(t)
	b := BundleFrom(m)

	wider, err := NewMultiLayer(
		NewLinear(3, 3, true, "hidden"),
		NewFunctionLayer(Tanh, "tanh(x)", "act"),
		NewLinear(2, 3, false, "out"),
	)
	require.NoError(t, err)
	assert.ErrorIs(t, b.Apply(wider), ErrBundleMismatch)
}

func TestBundle_ApplyNameMismatchOnlyWarns(t *testing.T) {
	m := bundleNetwork(t)
	b := BundleFrom(m)

	renamed, err := NewMultiLayer(
		NewLinear(2, 2, true, "first"),
		NewFunctionLayer(Tanh, "tanh(x)", "act"),
		NewLinear(2, 2, false, "out"),
	)
	require.NoError(t, err)
	assert.NoError(t, b.Apply(renamed))
	assert.Equal(t, m.Params()[0].CopyVals(), renamed.Params()[0].CopyVals())
}

func TestImportBundle_MissingFile(t *testing.T) {
	_, err := ImportBundle(filepath.Join(t.TempDir(), "absent.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImportBundle_TruncatedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	content := "Layer 0: hidden\nParameter: 3\n1\n2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := ImportBundle(path)
	assert.ErrorIs(t, err, ErrBundleMismatch)
}

func TestImportBundle_MalformedValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	content := "Layer 0: hidden\nParameter: 1\nnot-a-number\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := ImportBundle(path)
	assert.ErrorIs(t, err, ErrBundleMismatch)
}

func TestBundle_FormatIsStable(t *testing.T) {
	w := calc.Filled(calc.Shape{Rows: 1, Cols: 2}, []float64{0.5, -1.25})
	m, err := NewMultiLayer(LinearFromNodes(w, nil, "only"))
	require.NoError(t, err)

	path, err := BundleFrom(m).Export(filepath.Join(t.TempDir(), "params.txt"))
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Layer 0: only\nParameter: 2\n0.5\n-1.25\n", string(data))
}
