package bigbatch

import "errors"

var (
	// ErrNoFunctions is returned when the objective reports zero addressable
	// samples; the stepsize blending ratio is undefined in that case.
	ErrNoFunctions = errors.New("bigbatch: objective has no functions")

	// ErrBatchTooSmall is returned when a batch size is too small for the
	// requested operation: a backtracking batch below one sample, or a
	// mini-batch of a single sample, whose variance term divides by zero.
	ErrBatchTooSmall = errors.New("bigbatch: batch size too small")

	// ErrBatchOutOfRange is returned when the backtracking batch extends past
	// the last addressable sample of the objective.
	ErrBatchOutOfRange = errors.New("bigbatch: batch range exceeds objective")

	// ErrShapeMismatch is returned when the iterate and gradient matrices do
	// not share a shape, or when the iterate shape changes between calls.
	ErrShapeMismatch = errors.New("bigbatch: shape mismatch")

	// ErrLineSearch is returned when backtracking exhausts its shrink budget
	// or drives the step size below the representable floor without meeting
	// the sufficient-decrease condition.
	ErrLineSearch = errors.New("bigbatch: line search failed")
)
