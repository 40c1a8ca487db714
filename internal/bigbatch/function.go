// Package bigbatch implements adaptive stepsize control for big-batch
// stochastic gradient descent, following De et al., "Big Batch SGD:
// Automated Inference using Adaptive Batch Sizes" (arXiv:1610.05792).
//
// The package provides:
//   - AdaptiveStepsize: per-iteration stepsize controller driven by
//     curvature and gradient-noise estimates
//   - Backtracking: Armijo–Goldstein backtracking line search
//   - DecomposableFunction: interface the objective must satisfy
//
// The outer optimizer owns the iterate and calls Update once per
// iteration; the controller adapts the scalar stepsize in place.
package bigbatch

import "gonum.org/v1/gonum/mat"

// DecomposableFunction is an objective of the form f(x) = Σᵢ fᵢ(x), where
// each fᵢ corresponds to one sample of a dataset. The stepsize controller
// only ever touches contiguous sample ranges [offset, offset+batchSize).
//
// Implementations must be deterministic for fixed arguments; every call is
// synchronous and the controller makes no assumptions beyond that.
type DecomposableFunction interface {
	// Evaluate returns the objective value aggregated over the samples
	// [offset, offset+batchSize), evaluated at iterate.
	Evaluate(iterate mat.Matrix, offset, batchSize int) float64

	// Gradient fills gradient with the objective gradient aggregated over
	// the samples [offset, offset+batchSize), evaluated at iterate. The
	// gradient matrix has the same shape as the iterate.
	Gradient(iterate mat.Matrix, offset int, gradient *mat.Dense, batchSize int)

	// NumFunctions returns the total number of addressable samples.
	NumFunctions() int
}
