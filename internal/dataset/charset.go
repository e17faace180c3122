// Package dataset holds the text-corpus collaborators of the network: a
// CharSet for one-hot encoding and decoding of characters, and a DataSet
// that splits a corpus into training and validation slices.
package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gradnet-ml/gradnet/internal/calc"
)

// ErrDecode is the sentinel wrapped by every DecodeError.
var ErrDecode = errors.New("cannot decode node")

// EncodeError reports a character missing from the alphabet.
type EncodeError struct {
	Char rune
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("character %q is not in the alphabet", e.Char)
}

// DecodeError reports a node that is not a usable one-hot vector: either
// the number of positive entries differs from one, or the active index
// falls outside the alphabet.
type DecodeError struct {
	Vals  []float64
	Index int // active index, -1 when the values themselves are at fault
}

func (e *DecodeError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("one-hot index %d is outside the alphabet", e.Index)
	}
	return fmt.Sprintf("%v is not a one-hot vector", e.Vals)
}

func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

// CharSet is an ordered character alphabet. It translates between runes and
// one-hot encoded calc nodes: character i maps to the unit vector with a one
// in row i.
type CharSet struct {
	chars []rune
}

// CharSetFrom builds a sorted alphabet from the distinct characters of s.
//
// Example:
//
//	cs := dataset.CharSetFrom("cab")
//	cs.Characters() // ['a' 'b' 'c']
func CharSetFrom(s string) *CharSet {
	cs := &CharSet{}
	for _, r := range s {
		cs.add(r)
	}
	sort.Slice(cs.chars, func(i, j int) bool { return cs.chars[i] < cs.chars[j] })
	return cs
}

func (cs *CharSet) add(r rune) {
	for _, c := range cs.chars {
		if c == r {
			return
		}
	}
	cs.chars = append(cs.chars, r)
}

// AddCharacter appends a character to the alphabet unless already present.
// Added characters go last; the set is not re-sorted.
func (cs *CharSet) AddCharacter(r rune) *CharSet {
	cs.add(r)
	return cs
}

// Sort re-sorts the alphabet, e.g. after AddCharacter.
func (cs *CharSet) Sort() *CharSet {
	sort.Slice(cs.chars, func(i, j int) bool { return cs.chars[i] < cs.chars[j] })
	return cs
}

// Size returns the number of characters in the alphabet.
func (cs *CharSet) Size() int {
	return len(cs.chars)
}

// Characters returns the alphabet in encoding order.
func (cs *CharSet) Characters() []rune {
	return cs.chars
}

func (cs *CharSet) index(r rune) int {
	for i, c := range cs.chars {
		if c == r {
			return i
		}
	}
	return -1
}

// EncodeChar one-hot encodes a single character as a column vector node.
func (cs *CharSet) EncodeChar(r rune) (*calc.Node, error) {
	i := cs.index(r)
	if i < 0 {
		return nil, &EncodeError{Char: r}
	}
	vals := make([]float64, len(cs.chars))
	vals[i] = 1
	return calc.NewColVector(vals...), nil
}

// Encode one-hot encodes a string as an (alphabet, len) matrix node whose
// columns are the characters of s in order.
func (cs *CharSet) Encode(s string) (*calc.Node, error) {
	runes := []rune(s)
	rows, cols := len(cs.chars), len(runes)
	vals := make([]float64, rows*cols)
	for col, r := range runes {
		row := cs.index(r)
		if row < 0 {
			return nil, &EncodeError{Char: r}
		}
		vals[row*cols+col] = 1
	}
	return calc.Filled(calc.Shape{Rows: rows, Cols: cols}, vals), nil
}

// Decode interprets a one-hot column vector node as a character. Exactly
// one entry must be positive and its index must fall inside the alphabet.
func (cs *CharSet) Decode(n *calc.Node) (rune, error) {
	if n.Kind() != calc.KindColumnVector && n.Kind() != calc.KindScalar {
		return 0, &DecodeError{Vals: n.CopyVals(), Index: -1}
	}
	active := -1
	for i := 0; i < n.Len(); i++ {
		if n.ValueAt(i) > 0 {
			if active >= 0 {
				return 0, &DecodeError{Vals: n.CopyVals(), Index: -1}
			}
			active = i
		}
	}
	if active < 0 {
		return 0, &DecodeError{Vals: n.CopyVals(), Index: -1}
	}
	if active >= len(cs.chars) {
		return 0, &DecodeError{Vals: n.CopyVals(), Index: active}
	}
	return cs.chars[active], nil
}

// DecodeString decodes a sequence of one-hot column vectors into a string.
func (cs *CharSet) DecodeString(nodes []*calc.Node) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		r, err := cs.Decode(n)
		if err != nil {
			return "", err
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// String renders the alphabet with whitespace escaped for readability.
func (cs *CharSet) String() string {
	r := strings.NewReplacer("\n", `\n`, "\t", `\t`, " ", `\ `)
	return r.Replace(string(cs.chars))
}
