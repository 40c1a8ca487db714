// Copyright 2025 The ensmallen-go Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package bigbatch

import (
	"github.com/zeta1999/ensmallen/internal/bigbatch"
)

// DecomposableFunction is the objective collaborator: a function of the
// form f(x) = Σᵢ fᵢ(x) evaluated over contiguous sample ranges.
type DecomposableFunction = bigbatch.DecomposableFunction

// Config holds configuration for the adaptive stepsize controller.
type Config = bigbatch.Config

// AdaptiveStepsize is the per-iteration stepsize controller.
type AdaptiveStepsize = bigbatch.AdaptiveStepsize

// Backtracking is the Armijo–Goldstein backtracking line search.
type Backtracking = bigbatch.Backtracking

// Sentinel errors reported by the controller and line search.
var (
	ErrNoFunctions     = bigbatch.ErrNoFunctions
	ErrBatchTooSmall   = bigbatch.ErrBatchTooSmall
	ErrBatchOutOfRange = bigbatch.ErrBatchOutOfRange
	ErrShapeMismatch   = bigbatch.ErrShapeMismatch
	ErrLineSearch      = bigbatch.ErrLineSearch
)

// NewAdaptiveStepsize creates a stepsize controller.
//
// Example:
//
//	control, err := bigbatch.NewAdaptiveStepsize(bigbatch.Config{
//	    BacktrackStepSize: 0.5,
//	    SearchParameter:   0.1,
//	})
func NewAdaptiveStepsize(config Config) (*AdaptiveStepsize, error) {
	return bigbatch.NewAdaptiveStepsize(config)
}
