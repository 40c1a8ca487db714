package bigbatch

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	defaultBacktrackStepSize = 0.5
	defaultSearchParameter   = 0.1
	defaultMaxBacktrackSteps = 100

	// Steps below this floor can only satisfy the decrease test through
	// floating-point cancellation; treat them as a failed search.
	minBacktrackStepSize = 1e-20
)

// Backtracking is a backtracking line search over the negative gradient
// direction. The candidate step is shrunk by BacktrackStepSize until the
// Armijo–Goldstein sufficient-decrease condition
//
//	f(x − s·g) ≤ f(x) − SearchParameter · s · ‖g‖²
//
// holds. The zero value is usable; zero fields are replaced with the
// defaults 0.5, 0.1 and 100.
type Backtracking struct {
	BacktrackStepSize float64 // shrink factor per rejected candidate, in (0, 1)
	SearchParameter   float64 // sufficient-decrease factor, > 0
	MaxSteps          int     // shrink budget before giving up
}

// Search shrinks *stepSize in place until the sufficient-decrease
// condition holds for the given iterate, gradient and gradient norm, with
// the objective evaluated over the samples [offset, offset+batchSize).
// It returns the number of shrink iterations performed.
//
// A step is never increased. If the condition is still unmet after
// MaxSteps shrinks, or the step falls below the representable floor,
// Search returns an error wrapping ErrLineSearch; *stepSize then holds the
// last rejected candidate.
func (b Backtracking) Search(function DecomposableFunction, stepSize *float64,
	iterate, gradient mat.Matrix, gradientNorm float64, offset, batchSize int) (int, error) {
	shrink := b.BacktrackStepSize
	if shrink == 0 {
		shrink = defaultBacktrackStepSize
	}
	search := b.SearchParameter
	if search == 0 {
		search = defaultSearchParameter
	}
	maxSteps := b.MaxSteps
	if maxSteps == 0 {
		maxSteps = defaultMaxBacktrackSteps
	}

	objective := function.Evaluate(iterate, offset, batchSize)

	var next mat.Dense
	evalAt := func(step float64) float64 {
		next.Scale(-step, gradient)
		next.Add(&next, iterate)
		return function.Evaluate(&next, offset, batchSize)
	}

	steps := 0
	objectiveNext := evalAt(*stepSize)
	for objectiveNext > objective-search*(*stepSize)*gradientNorm {
		if steps >= maxSteps {
			return steps, fmt.Errorf("%w: no sufficient decrease after %d shrink steps", ErrLineSearch, steps)
		}
		*stepSize *= shrink
		steps++
		if *stepSize < minBacktrackStepSize {
			return steps, fmt.Errorf("%w: step size %g fell below %g after %d shrink steps",
				ErrLineSearch, *stepSize, minBacktrackStepSize, steps)
		}
		objectiveNext = evalAt(*stepSize)
	}
	return steps, nil
}
