// Copyright 2025 The ensmallen-go Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package bigbatch provides adaptive stepsize control for big-batch
// stochastic gradient descent, after De et al., "Big Batch SGD: Automated
// Inference using Adaptive Batch Sizes" (arXiv:1610.05792).
//
// # Overview
//
// This package contains:
//   - AdaptiveStepsize: stepsize controller driven by curvature and
//     gradient-noise estimates, refined by backtracking line searches
//   - Backtracking: Armijo–Goldstein backtracking line search
//   - DecomposableFunction: interface the objective must implement
//
// The outer optimizer owns the dataset iteration, batch-size growth and
// convergence checks; this package only decides how far to move per
// iteration.
//
// # Basic Usage
//
//	import (
//	    "gonum.org/v1/gonum/mat"
//
//	    "github.com/zeta1999/ensmallen/bigbatch"
//	)
//
//	func main() {
//	    control, err := bigbatch.NewAdaptiveStepsize(bigbatch.Config{})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    iterate := mat.NewDense(dim, 1, start)
//	    gradient := mat.NewDense(dim, 1, nil)
//	    stepSize := 0.01
//	    var gradientNorm, sampleVariance float64
//
//	    for offset := 0; offset+batchSize <= function.NumFunctions(); offset += batchSize {
//	        function.Gradient(iterate, offset, gradient, batchSize)
//	        gradientNorm = math.Pow(mat.Norm(gradient, 2)/float64(batchSize), 2)
//
//	        err := control.Update(function, &stepSize, iterate, gradient,
//	            &gradientNorm, &sampleVariance, offset, batchSize, batchSize, false)
//	        if err != nil {
//	            log.Fatal(err)
//	        }
//	    }
//	}
//
// # Per-Iteration Control Flow
//
// Update runs, in order: a backtracking line search on the incoming step,
// the iterate advance, gradient noise and curvature estimation over the
// backtracking batch, stepsize decay derivation and smoothing, and a
// second line search on the blended step. On return the stepsize
// satisfies the sufficient-decrease condition for the backtracking batch.
//
// A controller holds the previous iterate between calls; calls must be
// strictly sequential and a controller must not be shared between
// concurrent optimizer runs.
package bigbatch
