// Package main provides the colorizer demo: trains a coordinate → color
// classifier against the RGB Venn diagram and plots its predictions.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/gradnet-ml/gradnet/internal/colorize"
)

var palette = map[colorize.Color]color.RGBA{
	colorize.Black:   {A: 255},
	colorize.Red:     {R: 255, A: 255},
	colorize.Green:   {G: 255, A: 255},
	colorize.Yellow:  {R: 255, G: 255, A: 255},
	colorize.Blue:    {B: 255, A: 255},
	colorize.Magenta: {R: 255, B: 255, A: 255},
	colorize.Cyan:    {G: 255, B: 255, A: 255},
	colorize.White:   {R: 230, G: 230, B: 230, A: 255},
}

func main() {
	var (
		cycles         = flag.Int("cycles", 500, "number of training cycles")
		batchSize      = flag.Int("batch", 64, "coordinates per cycle")
		rateStart      = flag.Float64("rate-start", 0.5, "learning rate at the first cycle")
		rateEnd        = flag.Float64("rate-end", 0.05, "learning rate at the last cycle, log-spaced in between")
		hiddenLayers   = flag.Int("hidden", 2, "number of hidden layer pairs")
		layerDim       = flag.Int("width", 16, "width of the hidden layers")
		regularization = flag.Float64("regularization", 0, "L2 regularization rate, 0 to disable")
		divisions      = flag.Int("divisions", 100, "plot resolution per axis")
		samples        = flag.Int("samples", 1000, "coordinates sampled for the accuracy estimate")
		plotPath       = flag.String("plot", "colorizer.png", "where to write the prediction plot")
		verbose        = flag.Bool("verbose", false, "print per-cycle training stats")
	)
	flag.Parse()

	if err := run(colorize.Config{
		HiddenLayers:   *hiddenLayers,
		LayerDim:       *layerDim,
		Regularization: *regularization,
	}, *cycles, *batchSize, colorize.Range{Min: *rateStart, Max: *rateEnd}, *divisions, *samples, *plotPath, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "colorizer:", err)
		os.Exit(1)
	}
}

func run(cfg colorize.Config, cycles, batchSize int, rate colorize.Range,
	divisions, samples int, plotPath string, verbose bool) error {

	predictor, err := colorize.NewPredictor(colorize.RGBVennDiagram, cfg)
	if err != nil {
		return err
	}

	loss, err := predictor.Train(cycles, batchSize, rate, colorize.UnitSquare, colorize.UnitSquare, verbose)
	if err != nil {
		return err
	}
	fmt.Printf("Final training loss: %.3e\n", loss)
	fmt.Printf("Accuracy over %d samples: %.1f%%\n",
		samples, 100*predictor.Accuracy(samples, colorize.UnitSquare, colorize.UnitSquare))

	if plotPath != "" {
		if err := renderPredictions(predictor, divisions, plotPath); err != nil {
			return err
		}
		fmt.Printf("Wrote prediction plot to %s.\n", plotPath)
	}
	return nil
}

// renderPredictions scatters a divisions×divisions grid over the unit
// square, each point drawn in its predicted color.
func renderPredictions(predictor *colorize.Predictor, divisions int, path string) error {
	span := colorize.UnitSquare.Max - colorize.UnitSquare.Min
	step := span / float64(divisions)

	pts := make(plotter.XYs, 0, divisions*divisions)
	colors := make([]colorize.Color, 0, divisions*divisions)
	for xi := 0; xi < divisions; xi++ {
		for yi := 0; yi < divisions; yi++ {
			x := colorize.UnitSquare.Min + step*(float64(xi)+0.5)
			y := colorize.UnitSquare.Min + step*(float64(yi)+0.5)
			pts = append(pts, plotter.XY{X: x, Y: y})
			colors = append(colors, predictor.Predict(x, y))
		}
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  palette[colors[i]],
			Radius: vg.Points(1.5),
			Shape:  draw.BoxGlyph{},
		}
	}

	p := plot.New()
	p.Title.Text = "Predicted colors"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(scatter)

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
