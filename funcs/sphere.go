// Copyright 2025 The ensmallen-go Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package funcs provides decomposable objective functions for exercising
// the stepsize controller, mirroring the test functions the original
// library ships with its optimizers.
//
// Every function implements bigbatch.DecomposableFunction: Evaluate and
// Gradient aggregate over a contiguous sample range, and NumFunctions
// reports the number of addressable samples. Out-of-range sample
// requests and shape mismatches are contract violations and panic.
package funcs

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sphere is the separable sphere function f(x) = Σᵢ xᵢ². Each coordinate
// of the iterate contributes one addressable sample fᵢ(x) = xᵢ², so
// NumFunctions equals Dim and coordinates are indexed in row-major order.
type Sphere struct {
	Dim int
}

// NumFunctions returns the number of separable terms.
func (s Sphere) NumFunctions() int { return s.Dim }

// Evaluate returns Σ xₖ² over the coordinates [offset, offset+batchSize).
func (s Sphere) Evaluate(iterate mat.Matrix, offset, batchSize int) float64 {
	s.checkArgs(iterate, offset, batchSize)
	_, cols := iterate.Dims()
	sum := 0.0
	for k := offset; k < offset+batchSize; k++ {
		x := iterate.At(k/cols, k%cols)
		sum += x * x
	}
	return sum
}

// Gradient fills gradient with the gradient of the batch: 2·xₖ at each
// coordinate in [offset, offset+batchSize), zero elsewhere.
func (s Sphere) Gradient(iterate mat.Matrix, offset int, gradient *mat.Dense, batchSize int) {
	s.checkArgs(iterate, offset, batchSize)
	_, cols := iterate.Dims()
	gradient.Zero()
	for k := offset; k < offset+batchSize; k++ {
		i, j := k/cols, k%cols
		gradient.Set(i, j, 2*iterate.At(i, j))
	}
}

func (s Sphere) checkArgs(iterate mat.Matrix, offset, batchSize int) {
	rows, cols := iterate.Dims()
	if rows*cols != s.Dim {
		panic(fmt.Sprintf("funcs: sphere of %d coordinates evaluated at a %dx%d iterate", s.Dim, rows, cols))
	}
	if offset < 0 || batchSize < 1 || offset+batchSize > s.Dim {
		panic(fmt.Sprintf("funcs: sample range [%d, %d) out of bounds for %d samples", offset, offset+batchSize, s.Dim))
	}
}
