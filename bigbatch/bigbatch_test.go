// Copyright 2025 The ensmallen-go Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package bigbatch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/zeta1999/ensmallen/bigbatch"
	"github.com/zeta1999/ensmallen/funcs"
)

func TestNewAdaptiveStepsize(t *testing.T) {
	control, err := bigbatch.NewAdaptiveStepsize(bigbatch.Config{})
	require.NoError(t, err)
	assert.Equal(t, 0.5, control.GetBacktrackStepSize())
	assert.Equal(t, 0.1, control.GetSearchParameter())

	_, err = bigbatch.NewAdaptiveStepsize(bigbatch.Config{BacktrackStepSize: 2})
	require.Error(t, err)
}

// TestUpdateOnSphere runs one controller iteration on the separable
// sphere through the public API.
func TestUpdateOnSphere(t *testing.T) {
	control, err := bigbatch.NewAdaptiveStepsize(bigbatch.Config{})
	require.NoError(t, err)

	sphere := funcs.Sphere{Dim: 4}
	iterate := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	before := mat.DenseCopyOf(iterate)

	// Driver-supplied batch gradient over samples [0, 2).
	gradient := mat.NewDense(4, 1, nil)
	sphere.Gradient(iterate, 0, gradient, 2)
	norm := mat.Norm(gradient, 2) / 2
	gradientNorm := norm * norm
	stepSize := 0.1
	var sampleVariance float64

	err = control.Update(sphere, &stepSize, iterate, gradient,
		&gradientNorm, &sampleVariance, 0, 2, 2, false)
	require.NoError(t, err)

	assert.Greater(t, stepSize, 0.0)
	assert.GreaterOrEqual(t, sampleVariance, 0.0)
	assert.False(t, mat.Equal(before, iterate), "iterate should advance")
}
