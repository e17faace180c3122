package calc

import (
	"math"
	"testing"
)

// checkGradients compares the analytic gradient of a scalar-valued graph
// against central finite differences. build must construct a fresh graph
// from the given leaf every time it is called.
func checkGradients(t *testing.T, name string, inputs []float64, build func(leaf *Node) *Node, tolerance float64) {
	t.Helper()
	const h = 1e-4

	leaf := NewColVector(inputs...)
	root := build(leaf)
	if root.Len() != 1 {
		t.Fatalf("%s: gradient check needs a scalar root, got %v", name, root.Shape())
	}
	root.BackPropagation()
	analytic := leaf.CopyGrads()

	eval := func(vals []float64) float64 {
		return build(NewColVector(vals...)).ValueAt(0)
	}
	for i := range inputs {
		bumped := append([]float64{}, inputs...)
		bumped[i] += h
		plus := eval(bumped)
		bumped[i] -= 2 * h
		minus := eval(bumped)
		numeric := (plus - minus) / (2 * h)
		if math.Abs(numeric-analytic[i]) > tolerance {
			t.Errorf("%s: grad[%d] analytic %v vs numeric %v", name, i, analytic[i], numeric)
		}
	}
}

func TestGradientCheck_Polynomial(t *testing.T) {
	// f(x) = Σ (x³ - 2x² + x)
	checkGradients(t, "polynomial", []float64{2, -1, 0.5}, func(x *Node) *Node {
		x3 := x.Pow(NewScalar(3))
		x2 := x.Pow(NewScalar(2)).Mul(NewScalar(2))
		return x3.Sub(x2).Add(x).Sum()
	}, 1e-5)
}

func TestGradientCheck_ExpLog(t *testing.T) {
	// f(x) = Σ log(1 + eˣ)
	checkGradients(t, "softplus", []float64{-2, 0, 1.5}, func(x *Node) *Node {
		return x.Exp().Add(NewScalar(1)).Log().Sum()
	}, 1e-5)
}

func TestGradientCheck_Normalize(t *testing.T) {
	// f(x) = first component of softmax(x); exercises Exp, Sum, Pow and
	// the shared sub-expression inside Normalize.
	checkGradients(t, "softmax", []float64{1, 2, 3}, func(x *Node) *Node {
		soft := x.Exp().Normalize()
		mask := NewColVector(1, 0, 0)
		return soft.ElementWiseMul(mask).Sum()
	}, 1e-5)
}

func TestGradientCheck_MatMulChain(t *testing.T) {
	// f(x) = Σ (A·x)², with a fixed matrix A.
	a := []float64{1, -2, 0.5, 3, 1, -1}
	checkGradients(t, "matmul chain", []float64{0.3, -0.7, 1.1}, func(x *Node) *Node {
		mat := Filled(Shape{2, 3}, append([]float64{}, a...))
		return mat.Mul(x).Pow(NewScalar(2)).Sum()
	}, 1e-4)
}

func TestGradientCheck_Division(t *testing.T) {
	// f(x) = Σx / Σx², denominator kept positive by squaring.
	checkGradients(t, "division", []float64{1, 2, 4}, func(x *Node) *Node {
		return x.Sum().Div(x.ElementWiseMul(x).Sum())
	}, 1e-5)
}

func TestGradientCheck_NegLogLikelihoodShape(t *testing.T) {
	// -log(Σ softmax(x) ∘ t) with a one-hot target, the loss used by the
	// text model.
	checkGradients(t, "nll", []float64{0.2, -0.4, 0.9}, func(x *Node) *Node {
		target := NewColVector(0, 1, 0)
		return x.Exp().Normalize().ElementWiseMul(target).Sum().Log().Neg()
	}, 1e-5)
}
