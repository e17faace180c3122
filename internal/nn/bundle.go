package nn

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParameterBundle is a snapshot of a network's parameter values, detached
// from the graph. Bundles round-trip through a plain text format: a header
// line per layer, a count line per parameter, then one value per line.
type ParameterBundle struct {
	layers []bundleLayer
}

type bundleLayer struct {
	name   string
	params [][]float64
}

// BundleFrom captures the current parameter values of a network.
func BundleFrom(m *MultiLayer) *ParameterBundle {
	b := &ParameterBundle{}
	for i := 0; i < m.Len(); i++ {
		l := m.Layer(i)
		bl := bundleLayer{name: l.Name()}
		for _, p := range l.Params() {
			bl.params = append(bl.params, p.CopyVals())
		}
		b.layers = append(b.layers, bl)
	}
	return b
}

// Apply writes the bundle's values back into a network's parameters. Layer
// names that differ only produce a warning on stderr; a mismatch in layer
// count, parameter count, or parameter length is an error and leaves the
// remaining parameters untouched.
func (b *ParameterBundle) Apply(m *MultiLayer) error {
	if len(b.layers) != m.Len() {
		return fmt.Errorf("%w: bundle has %d layers, network has %d",
			ErrBundleMismatch, len(b.layers), m.Len())
	}
	for i, bl := range b.layers {
		l := m.Layer(i)
		if bl.name != l.Name() {
			fmt.Fprintf(os.Stderr, "warning: layer %d name mismatch: bundle %q, network %q\n",
				i, bl.name, l.Name())
		}
		params := l.Params()
		if len(bl.params) != len(params) {
			return fmt.Errorf("%w: layer %d has %d parameters in bundle, %d in network",
				ErrBundleMismatch, i, len(bl.params), len(params))
		}
		for j, vals := range bl.params {
			if len(vals) != params[j].Len() {
				return fmt.Errorf("%w: layer %d parameter %d has %d values in bundle, %d in network",
					ErrBundleMismatch, i, j, len(vals), params[j].Len())
			}
		}
		for j, vals := range bl.params {
			params[j].SetVals(vals)
		}
	}
	return nil
}

// Export writes the bundle to path in the text format. If path already
// exists, numeric suffixes (.0, .1, ...) are tried until a free name is
// found; the path actually written is returned.
func (b *ParameterBundle) Export(path string) (string, error) {
	actual := path
	for i := 0; ; i++ {
		if _, err := os.Stat(actual); os.IsNotExist(err) {
			break
		}
		actual = fmt.Sprintf("%s.%d", path, i)
	}
	f, err := os.Create(actual)
	if err != nil {
		return "", fmt.Errorf("exporting parameter bundle: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, bl := range b.layers {
		fmt.Fprintf(w, "Layer %d: %s\n", i, bl.name)
		for _, vals := range bl.params {
			fmt.Fprintf(w, "Parameter: %d\n", len(vals))
			for _, v := range vals {
				w.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
				w.WriteByte('\n')
			}
		}
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("exporting parameter bundle: %w", err)
	}
	return actual, nil
}

// ImportBundle reads a bundle from a file written by Export.
func ImportBundle(path string) (*ParameterBundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("importing parameter bundle: %w", err)
	}
	defer f.Close()

	b := &ParameterBundle{}
	var cur *bundleLayer
	var pending []float64
	var want int

	flush := func() error {
		if pending == nil {
			return nil
		}
		if len(pending) != want {
			return fmt.Errorf("%w: parameter declares %d values, found %d",
				ErrBundleMismatch, want, len(pending))
		}
		cur.params = append(cur.params, pending)
		pending = nil
		return nil
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "Layer "):
			if err := flush(); err != nil {
				return nil, err
			}
			rest := strings.TrimPrefix(line, "Layer ")
			_, name, ok := strings.Cut(rest, ": ")
			if !ok {
				return nil, fmt.Errorf("%w: malformed layer header %q", ErrBundleMismatch, line)
			}
			b.layers = append(b.layers, bundleLayer{name: name})
			cur = &b.layers[len(b.layers)-1]
		case strings.HasPrefix(line, "Parameter: "):
			if cur == nil {
				return nil, fmt.Errorf("%w: parameter before any layer header", ErrBundleMismatch)
			}
			if err := flush(); err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(strings.TrimPrefix(line, "Parameter: "))
			if err != nil {
				return nil, fmt.Errorf("%w: malformed parameter count %q", ErrBundleMismatch, line)
			}
			want = n
			pending = make([]float64, 0, n)
		default:
			if pending == nil {
				return nil, fmt.Errorf("%w: value outside a parameter block: %q", ErrBundleMismatch, line)
			}
			v, err := strconv.ParseFloat(line, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: malformed value %q", ErrBundleMismatch, line)
			}
			pending = append(pending, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("importing parameter bundle: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return b, nil
}

// Layers returns the number of layers captured in the bundle.
func (b *ParameterBundle) Layers() int {
	return len(b.layers)
}
