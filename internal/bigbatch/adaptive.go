package bigbatch

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Config holds configuration for the adaptive stepsize controller.
type Config struct {
	BacktrackStepSize float64 // line search shrink factor, in (0, 1) (default: 0.5)
	SearchParameter   float64 // Armijo–Goldstein decrease factor, > 0 (default: 0.1)
	MaxBacktrackSteps int     // line search shrink budget (default: 100)
}

// AdaptiveStepsize adapts the stepsize of a big-batch SGD run from
// curvature and gradient-noise estimates, a non-monotonic scheme that can
// grow as well as shrink the step.
//
// The controller carries the previous iterate between calls; each call's
// curvature estimate depends on the iterate written by the prior call, so
// calls to Update must be strictly sequential. One controller serves
// exactly one optimizer run and must not be shared between concurrent
// runs.
type AdaptiveStepsize struct {
	search      Backtracking
	iteratePrev *mat.Dense
}

// NewAdaptiveStepsize creates a controller with the given configuration.
// Zero-valued fields receive defaults: BacktrackStepSize=0.5,
// SearchParameter=0.1, MaxBacktrackSteps=100. Out-of-range values are
// rejected.
func NewAdaptiveStepsize(config Config) (*AdaptiveStepsize, error) {
	if config.BacktrackStepSize == 0 {
		config.BacktrackStepSize = defaultBacktrackStepSize
	}
	if config.SearchParameter == 0 {
		config.SearchParameter = defaultSearchParameter
	}
	if config.MaxBacktrackSteps == 0 {
		config.MaxBacktrackSteps = defaultMaxBacktrackSteps
	}
	if config.BacktrackStepSize <= 0 || config.BacktrackStepSize >= 1 {
		return nil, fmt.Errorf("bigbatch: backtrack step size %v outside (0, 1)", config.BacktrackStepSize)
	}
	if config.SearchParameter <= 0 {
		return nil, fmt.Errorf("bigbatch: search parameter %v must be positive", config.SearchParameter)
	}
	if config.MaxBacktrackSteps < 0 {
		return nil, fmt.Errorf("bigbatch: max backtrack steps %v must not be negative", config.MaxBacktrackSteps)
	}
	return &AdaptiveStepsize{
		search: Backtracking{
			BacktrackStepSize: config.BacktrackStepSize,
			SearchParameter:   config.SearchParameter,
			MaxSteps:          config.MaxBacktrackSteps,
		},
	}, nil
}

// GetBacktrackStepSize returns the line search shrink factor.
func (a *AdaptiveStepsize) GetBacktrackStepSize() float64 {
	return a.search.BacktrackStepSize
}

// SetBacktrackStepSize updates the line search shrink factor.
func (a *AdaptiveStepsize) SetBacktrackStepSize(backtrackStepSize float64) {
	a.search.BacktrackStepSize = backtrackStepSize
}

// GetSearchParameter returns the sufficient-decrease factor.
func (a *AdaptiveStepsize) GetSearchParameter() float64 {
	return a.search.SearchParameter
}

// SetSearchParameter updates the sufficient-decrease factor.
func (a *AdaptiveStepsize) SetSearchParameter(searchParameter float64) {
	a.search.SearchParameter = searchParameter
}

// Update performs one iteration of stepsize control. In order, it:
// refines the incoming step with a backtracking line search, advances the
// iterate along the negative gradient, re-estimates the gradient together
// with its sample variance over the backtracking batch
// [offset, offset+backtrackingBatchSize), estimates the curvature of the
// quadratic approximation between the previous and current iterate,
// blends the adaptive stepsize candidate with the previous stepsize by
// the batch fraction batchSize/NumFunctions(), and finally backtracks the
// blended step until it satisfies the sufficient-decrease condition.
//
// stepSize, iterate, gradient, gradientNorm and sampleVariance are all
// updated in place. batchSize is the logical batch size of the outer
// algorithm and only enters the smoothing weights; a batchSize of at
// least NumFunctions() selects the full-batch decay formula.
//
// The reset flag is accepted for interface compatibility but has no
// effect: the previous-iterate state is carried across calls
// unconditionally.
//
// Contract violations are reported before any state is mutated:
// ErrNoFunctions, ErrBatchTooSmall, ErrBatchOutOfRange and
// ErrShapeMismatch. A failed line search surfaces as an error wrapping
// ErrLineSearch; by then the iterate has already advanced.
func (a *AdaptiveStepsize) Update(
	function DecomposableFunction,
	stepSize *float64,
	iterate, gradient *mat.Dense,
	gradientNorm, sampleVariance *float64,
	offset, batchSize, backtrackingBatchSize int,
	reset bool,
) error {
	numFunctions := function.NumFunctions()
	if numFunctions == 0 {
		return fmt.Errorf("%w: stepsize blending is undefined", ErrNoFunctions)
	}
	if backtrackingBatchSize < 1 {
		return fmt.Errorf("%w: backtracking batch size %d, need at least 1", ErrBatchTooSmall, backtrackingBatchSize)
	}
	if batchSize < numFunctions && batchSize < 2 {
		return fmt.Errorf("%w: mini-batch size %d, the variance term needs at least 2", ErrBatchTooSmall, batchSize)
	}
	if offset < 0 || offset+backtrackingBatchSize > numFunctions {
		return fmt.Errorf("%w: samples [%d, %d) of %d", ErrBatchOutOfRange,
			offset, offset+backtrackingBatchSize, numFunctions)
	}
	rows, cols := iterate.Dims()
	if gr, gc := gradient.Dims(); gr != rows || gc != cols {
		return fmt.Errorf("%w: iterate %dx%d, gradient %dx%d", ErrShapeMismatch, rows, cols, gr, gc)
	}
	if a.iteratePrev != nil {
		if pr, pc := a.iteratePrev.Dims(); pr != rows || pc != cols {
			return fmt.Errorf("%w: iterate %dx%d, previous iterate %dx%d", ErrShapeMismatch, rows, cols, pr, pc)
		}
	}

	if _, err := a.search.Search(function, stepSize, iterate, gradient,
		*gradientNorm, offset, backtrackingBatchSize); err != nil {
		return err
	}

	// Advance the iterate.
	var scaled mat.Dense
	scaled.Scale(*stepSize, gradient)
	iterate.Sub(iterate, &scaled)

	// The previous iterate starts at the origin on the first call.
	if a.iteratePrev == nil {
		a.iteratePrev = mat.NewDense(rows, cols, nil)
	}

	functionGradient := mat.NewDense(rows, cols, nil)
	functionGradientPrev := mat.NewDense(rows, cols, nil)
	gradPrevIterate := mat.NewDense(rows, cols, nil)

	// Seed the two running gradient sums with the first sample.
	function.Gradient(iterate, offset, gradient, 1)
	function.Gradient(a.iteratePrev, offset, gradPrevIterate, 1)

	// delta1 tracks the running mean of the per-sample gradients; the
	// sample variance accumulates the product of the residual norms
	// against the mean before and after each sample, a pairwise-difference
	// dispersion estimate.
	vB := 0.0
	delta1 := mat.DenseCopyOf(gradient)
	delta0 := mat.NewDense(rows, cols, nil)
	residual := mat.NewDense(rows, cols, nil)

	for j := 1; j < backtrackingBatchSize; j++ {
		function.Gradient(iterate, offset+j, functionGradient, 1)

		residual.Sub(functionGradient, delta1)
		normBefore := mat.Norm(residual, 2)
		delta0.Scale(1/float64(j), residual)
		delta0.Add(delta0, delta1)

		residual.Sub(functionGradient, delta0)
		vB += normBefore * mat.Norm(residual, 2)

		delta1.Copy(delta0)
		gradient.Add(gradient, functionGradient)

		function.Gradient(a.iteratePrev, offset+j, functionGradientPrev, 1)
		gradPrevIterate.Add(gradPrevIterate, functionGradientPrev)
	}

	*sampleVariance = vB

	var averaged mat.Dense
	averaged.Scale(1/float64(backtrackingBatchSize), gradient)
	norm := mat.Norm(&averaged, 2)
	*gradientNorm = norm * norm

	// Curvature of the quadratic approximation between consecutive
	// iterates. A degenerate denominator makes it non-finite; call it 0,
	// which suppresses the decay term for this iteration.
	var deltaIterate, deltaGradient mat.Dense
	deltaIterate.Sub(iterate, a.iteratePrev)
	deltaGradient.Sub(gradient, gradPrevIterate)
	distance := mat.Norm(&deltaIterate, 2)
	v := frobInner(&deltaIterate, &deltaGradient) / (distance * distance)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}

	a.iteratePrev.Copy(iterate)

	stepSizeDecay := 0.0
	if *gradientNorm != 0 && *sampleVariance != 0 && batchSize != 0 && v != 0 {
		if batchSize < numFunctions {
			stepSizeDecay = (1 - (*sampleVariance/float64(batchSize-1))/
				(float64(batchSize)*(*gradientNorm))) / v
		} else {
			stepSizeDecay = 1 / v
		}
	}

	// Stepsize smoothing.
	ratio := float64(batchSize) / float64(numFunctions)
	*stepSize = *stepSize*(1-ratio) + stepSizeDecay*ratio

	_, err := a.search.Search(function, stepSize, iterate, gradient,
		*gradientNorm, offset, backtrackingBatchSize)
	return err
}

// frobInner returns trace(aᵀ·b), the Frobenius inner product.
func frobInner(a, b *mat.Dense) float64 {
	ra, rb := a.RawMatrix(), b.RawMatrix()
	sum := 0.0
	for i := 0; i < ra.Rows; i++ {
		sum += floats.Dot(
			ra.Data[i*ra.Stride:i*ra.Stride+ra.Cols],
			rb.Data[i*rb.Stride:i*rb.Stride+rb.Cols],
		)
	}
	return sum
}
