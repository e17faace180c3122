// Package main provides the retexter demo: trains a character-level
// language model on a text corpus and extrapolates text from a seed.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gradnet-ml/gradnet/internal/dataset"
	"github.com/gradnet-ml/gradnet/internal/retext"
	"github.com/gradnet-ml/gradnet/nn"
)

func main() {
	var (
		corpus         = flag.String("corpus", "datasets/tiny_shakespeare.txt", "path to the training corpus")
		trainingRatio  = flag.Float64("training-ratio", 0.9, "fraction of the corpus used for training")
		lowercase      = flag.Bool("lowercase", true, "lowercase the corpus before training")
		cycles         = flag.Int("cycles", 1000, "number of training cycles")
		rate           = flag.Float64("rate", 0.1, "learning rate")
		batchSize      = flag.Int("batch", 64, "training pairs per cycle")
		blockSize      = flag.Int("block", 8, "context window length in characters")
		embedDim       = flag.Int("embed", 8, "embedding dimension, 0 to disable the embedding stage")
		hiddenLayers   = flag.Int("hidden", 2, "number of hidden layer pairs")
		layerDim       = flag.Int("width", 64, "width of the hidden layers")
		regularization = flag.Float64("regularization", 0, "L2 regularization rate, 0 to disable")
		importPath     = flag.String("import", "", "parameter bundle to start from")
		exportPath     = flag.String("export", "", "write the trained parameters to this path")
		seed           = flag.String("seed", "the ", "seed string for prediction")
		predictLen     = flag.Int("predict", 200, "number of characters to extrapolate")
		verbose        = flag.Bool("verbose", false, "print per-cycle training stats")
	)
	flag.Parse()

	if err := run(*corpus, *trainingRatio, *lowercase, retext.Config{
		BlockSize:      *blockSize,
		EmbedDim:       *embedDim,
		HiddenLayers:   *hiddenLayers,
		LayerDim:       *layerDim,
		Regularization: *regularization,
	}, *cycles, *rate, *batchSize, *importPath, *exportPath, *seed, *predictLen, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "retexter:", err)
		os.Exit(1)
	}
}

func run(corpus string, trainingRatio float64, lowercase bool, cfg retext.Config,
	cycles int, rate float64, batchSize int,
	importPath, exportPath, seed string, predictLen int, verbose bool) error {

	data, err := dataset.Load(corpus, trainingRatio, lowercase)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d characters, alphabet size %d.\n",
		data.TrainingLen()+data.ValidationLen(), data.CharSet().Size())

	model, err := retext.New(data, cfg)
	if err != nil {
		return err
	}

	if importPath != "" {
		// A missing or truncated bundle is not fatal: fall back to the
		// random initialization and train from scratch.
		bundle, err := nn.ImportBundle(importPath)
		if err == nil {
			err = model.LoadParameterBundle(bundle)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "retexter: cannot use bundle %s (%v), starting from random parameters\n",
				importPath, err)
		} else {
			fmt.Printf("Imported parameters from %s.\n", importPath)
		}
	}

	if cycles > 0 {
		loss, err := model.Train(cycles, rate, batchSize, verbose)
		if err != nil {
			return err
		}
		fmt.Printf("Final training loss: %.3e\n", loss)

		validation, err := model.ValidationLoss(batchSize)
		if err != nil {
			return err
		}
		fmt.Printf("Validation loss: %.3e\n", validation)
	}

	if exportPath != "" {
		actual, err := model.ParameterBundle().Export(exportPath)
		if err != nil {
			return err
		}
		fmt.Printf("Exported parameters to %s.\n", actual)
	}

	if predictLen > 0 {
		text, err := model.Predict(seed, predictLen)
		if err != nil {
			return err
		}
		fmt.Printf("Prediction:\n%s\n", text)
	}
	return nil
}
