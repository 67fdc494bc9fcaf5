// Copyright 2026 The cnn-from-scratch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense array storage the
// forward-pass operators work on.
//
// A Volume is a rank-4 Dense with NHWC axis order (batch, height, width,
// channel). All storage is flat row-major; the typed accessors give
// zero-copy views of the buffer.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 28, 28, 1}, tensor.Float32)
//	data := x.AsFloat32() // flat NHWC view
package tensor

import (
	"math/rand"

	"github.com/jesus-a-martinez-v/cnn-from-scratch/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 28, 28, 1} is a batch of two 28x28 single-channel images.
type Shape = tensor.Shape

// DataType is the element type of a Dense buffer.
type DataType = tensor.DataType

// Supported element types.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Dense is a dense row-major n-dimensional array.
type Dense = tensor.Dense

// NewDense creates a zero-initialized Dense with the given shape and type.
func NewDense(shape Shape, dtype DataType) (*Dense, error) {
	return tensor.NewDense(shape, dtype)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType) *Dense {
	return tensor.Zeros(shape, dtype)
}

// FromFloat32 creates a Float32 tensor from a flat row-major slice.
func FromFloat32(data []float32, shape Shape) (*Dense, error) {
	return tensor.FromFloat32(data, shape)
}

// FromFloat64 creates a Float64 tensor from a flat row-major slice.
func FromFloat64(data []float64, shape Shape) (*Dense, error) {
	return tensor.FromFloat64(data, shape)
}

// Randn creates a tensor filled with draws from N(0, 1) using the
// caller's generator.
func Randn(shape Shape, dtype DataType, rng *rand.Rand) *Dense {
	return tensor.Randn(shape, dtype, rng)
}
