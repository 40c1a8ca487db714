package funcs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/zeta1999/ensmallen/bigbatch"
	"github.com/zeta1999/ensmallen/funcs"
)

func TestSphere(t *testing.T) {
	sphere := funcs.Sphere{Dim: 3}
	iterate := mat.NewDense(3, 1, []float64{1, 2, 3})

	assert.Equal(t, 3, sphere.NumFunctions())
	assert.InDelta(t, 14, sphere.Evaluate(iterate, 0, 3), 1e-12)
	assert.InDelta(t, 13, sphere.Evaluate(iterate, 1, 2), 1e-12)

	gradient := mat.NewDense(3, 1, []float64{9, 9, 9})
	sphere.Gradient(iterate, 1, gradient, 2)
	assert.InDelta(t, 0, gradient.At(0, 0), 1e-12, "coordinate outside the batch must be zeroed")
	assert.InDelta(t, 4, gradient.At(1, 0), 1e-12)
	assert.InDelta(t, 6, gradient.At(2, 0), 1e-12)
}

func TestSphere_ContractViolationsPanic(t *testing.T) {
	sphere := funcs.Sphere{Dim: 3}
	iterate := mat.NewDense(3, 1, []float64{1, 2, 3})

	assert.Panics(t, func() { sphere.Evaluate(iterate, 2, 2) })
	assert.Panics(t, func() { sphere.Evaluate(iterate, -1, 2) })
	assert.Panics(t, func() { sphere.Evaluate(mat.NewDense(2, 1, nil), 0, 1) })
}

func TestLinearRegression(t *testing.T) {
	data := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	})
	function, err := funcs.NewLinearRegression(data, []float64{1, 2, 4})
	require.NoError(t, err)

	weights := mat.NewDense(2, 1, []float64{1, 1})

	assert.Equal(t, 3, function.NumFunctions())
	// Residuals at w = (1, 1): 0, -1, -2.
	assert.InDelta(t, 2.5, function.Evaluate(weights, 0, 3), 1e-12)
	assert.InDelta(t, 2.5, function.Evaluate(weights, 1, 2), 1e-12)

	gradient := mat.NewDense(2, 1, nil)
	function.Gradient(weights, 0, gradient, 3)
	assert.InDelta(t, -2, gradient.At(0, 0), 1e-12)
	assert.InDelta(t, -3, gradient.At(1, 0), 1e-12)

	function.Gradient(weights, 1, gradient, 1)
	assert.InDelta(t, 0, gradient.At(0, 0), 1e-12)
	assert.InDelta(t, -1, gradient.At(1, 0), 1e-12)
}

func TestNewLinearRegression_LengthMismatch(t *testing.T) {
	data := mat.NewDense(3, 2, nil)
	_, err := funcs.NewLinearRegression(data, []float64{1, 2})
	require.Error(t, err)
}

// TestLinearRegression_AdaptiveDescent drives the stepsize controller over
// a small noise-free regression problem and checks the loss drops.
func TestLinearRegression_AdaptiveDescent(t *testing.T) {
	data := mat.NewDense(8, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
		1, -1,
		2, 1,
		-1, 2,
		0.5, 1,
		1, 2,
	})
	// Responses follow y = 2a − b exactly.
	responses := []float64{2, -1, 1, 3, 3, -4, 0, 0}
	function, err := funcs.NewLinearRegression(data, responses)
	require.NoError(t, err)

	control, err := bigbatch.NewAdaptiveStepsize(bigbatch.Config{})
	require.NoError(t, err)

	const batchSize = 4
	iterate := mat.NewDense(2, 1, nil)
	gradient := mat.NewDense(2, 1, nil)
	stepSize := 0.01
	var gradientNorm, sampleVariance float64

	initial := function.Evaluate(iterate, 0, function.NumFunctions())

	for epoch := 0; epoch < 30; epoch++ {
		for offset := 0; offset+batchSize <= function.NumFunctions(); offset += batchSize {
			function.Gradient(iterate, offset, gradient, batchSize)
			norm := mat.Norm(gradient, 2) / batchSize
			gradientNorm = norm * norm

			err := control.Update(function, &stepSize, iterate, gradient,
				&gradientNorm, &sampleVariance, offset, batchSize, batchSize, false)
			require.NoError(t, err)
		}
	}

	final := function.Evaluate(iterate, 0, function.NumFunctions())
	require.Less(t, final, initial, "adaptive descent should reduce the loss")
	assert.Greater(t, stepSize, 0.0)
	assert.GreaterOrEqual(t, sampleVariance, 0.0)
}
