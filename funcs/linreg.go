// Copyright 2025 The ensmallen-go Authors. All rights reserved.
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package funcs

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LinearRegression is the decomposable least-squares objective
//
//	fᵢ(w) = ½ (xᵢᵀw − yᵢ)²
//
// over the rows xᵢ of a data matrix. The iterate is a d×1 column vector
// of weights; each data row is one addressable sample.
type LinearRegression struct {
	data      *mat.Dense
	responses []float64
}

// NewLinearRegression creates a least-squares objective from an n×d data
// matrix and its n responses.
func NewLinearRegression(data *mat.Dense, responses []float64) (*LinearRegression, error) {
	n, _ := data.Dims()
	if n != len(responses) {
		return nil, fmt.Errorf("funcs: %d data rows but %d responses", n, len(responses))
	}
	return &LinearRegression{data: data, responses: responses}, nil
}

// NumFunctions returns the number of data rows.
func (l *LinearRegression) NumFunctions() int {
	n, _ := l.data.Dims()
	return n
}

// Evaluate returns Σ ½(xᵢᵀw − yᵢ)² over the rows [offset, offset+batchSize).
func (l *LinearRegression) Evaluate(iterate mat.Matrix, offset, batchSize int) float64 {
	weights := l.weights(iterate)
	l.checkRange(offset, batchSize)
	sum := 0.0
	for i := offset; i < offset+batchSize; i++ {
		r := floats.Dot(l.data.RawRowView(i), weights) - l.responses[i]
		sum += 0.5 * r * r
	}
	return sum
}

// Gradient fills gradient with Σ (xᵢᵀw − yᵢ)·xᵢ over the rows
// [offset, offset+batchSize).
func (l *LinearRegression) Gradient(iterate mat.Matrix, offset int, gradient *mat.Dense, batchSize int) {
	weights := l.weights(iterate)
	l.checkRange(offset, batchSize)
	gradient.Zero()
	for i := offset; i < offset+batchSize; i++ {
		r := floats.Dot(l.data.RawRowView(i), weights) - l.responses[i]
		for j, x := range l.data.RawRowView(i) {
			gradient.Set(j, 0, gradient.At(j, 0)+r*x)
		}
	}
}

func (l *LinearRegression) weights(iterate mat.Matrix) []float64 {
	rows, cols := iterate.Dims()
	_, d := l.data.Dims()
	if rows != d || cols != 1 {
		panic(fmt.Sprintf("funcs: regression over %d features got a %dx%d iterate", d, rows, cols))
	}
	weights := make([]float64, d)
	mat.Col(weights, 0, iterate)
	return weights
}

func (l *LinearRegression) checkRange(offset, batchSize int) {
	n := l.NumFunctions()
	if offset < 0 || batchSize < 1 || offset+batchSize > n {
		panic(fmt.Sprintf("funcs: sample range [%d, %d) out of bounds for %d samples", offset, offset+batchSize, n))
	}
}
