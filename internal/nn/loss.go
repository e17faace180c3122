package nn

import "github.com/gradnet-ml/gradnet/internal/calc"

// LossFunc scores a prediction against a target of the same shape, returning
// a scalar node wired into the prediction's graph.
type LossFunc func(prediction, target *calc.Node) *calc.Node

// LeastSquares is the sum of squared differences, Σ(p-t)².
func LeastSquares(prediction, target *calc.Node) *calc.Node {
	return prediction.Sub(target).Pow(calc.NewScalar(2)).Sum()
}

// NegLogLikelihood computes -log Σ(p·t). With a one-hot target the inner
// product selects the predicted probability of the true class.
func NegLogLikelihood(prediction, target *calc.Node) *calc.Node {
	return prediction.ElementWiseMul(target).Sum().Log().Neg()
}
