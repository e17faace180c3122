package dataset

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// DataSet holds a text corpus split into a training and a validation slice,
// together with a CharSet covering every character in the corpus. The split
// point is a character count derived from the training ratio.
type DataSet struct {
	data        []rune
	trainingLen int
	charSet     *CharSet
}

// Load reads a UTF-8 corpus from path. When lowercase is set the whole
// corpus is lowercased before anything else. The training ratio in [0,1]
// decides how much of the corpus is available for training; the rest is
// reserved for validation.
func Load(path string, trainingRatio float64, lowercase bool) (*DataSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("importing dataset: %w", err)
	}
	text := string(raw)
	if lowercase {
		text = strings.ToLower(text)
	}
	ds := &DataSet{
		data:    []rune(text),
		charSet: CharSetFrom(text),
	}
	ds.SetTrainingRatio(trainingRatio)
	return ds, nil
}

// SetTrainingRatio moves the training/validation split point.
func (ds *DataSet) SetTrainingRatio(ratio float64) {
	ds.trainingLen = int(float64(len(ds.data)) * ratio)
	if ds.trainingLen > len(ds.data) {
		ds.trainingLen = len(ds.data)
	}
	if ds.trainingLen < 0 {
		ds.trainingLen = 0
	}
}

// CharSet returns the alphabet covering the corpus. Callers may extend it
// with sentinel characters via AddCharacter.
func (ds *DataSet) CharSet() *CharSet {
	return ds.charSet
}

// TrainingData returns the training slice of the corpus.
func (ds *DataSet) TrainingData() string {
	return string(ds.data[:ds.trainingLen])
}

// TrainingLen returns the training slice length in characters.
func (ds *DataSet) TrainingLen() int {
	return ds.trainingLen
}

// ValidationData returns the validation slice of the corpus.
func (ds *DataSet) ValidationData() string {
	return string(ds.data[ds.trainingLen:])
}

// ValidationLen returns the validation slice length in characters.
func (ds *DataSet) ValidationLen() int {
	return len(ds.data) - ds.trainingLen
}

// TrainingBlock returns a random contiguous block of blockSize characters
// from the training slice. When the slice is not longer than the block, the
// whole slice is returned.
func (ds *DataSet) TrainingBlock(blockSize int) string {
	if blockSize+1 >= ds.trainingLen {
		return ds.TrainingData()
	}
	end := blockSize + rand.Intn(ds.trainingLen-blockSize+1) //nolint:gosec // sampling, not crypto
	return string(ds.data[end-blockSize : end])
}

// ValidationBlock returns a random contiguous block of blockSize characters
// from the validation slice, or the whole slice when it is not longer than
// the block.
func (ds *DataSet) ValidationBlock(blockSize int) string {
	validationLen := ds.ValidationLen()
	if blockSize >= validationLen {
		return ds.ValidationData()
	}
	end := ds.trainingLen + blockSize + rand.Intn(validationLen-blockSize+1) //nolint:gosec // sampling, not crypto
	return string(ds.data[end-blockSize : end])
}
