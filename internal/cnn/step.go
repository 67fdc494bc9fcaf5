package cnn

import (
	"fmt"

	"github.com/jesus-a-martinez-v/cnn-from-scratch/internal/tensor"

	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/floats"
)

// Step reduces one aligned window against one filter's weights and bias.
//
// window and weights must be rank-3 [F, F, Ci] tensors of identical
// shape and element type; the result is the sum of their element-wise
// products plus bias. This is the single-position kernel that
// ConvForward applies at every output coordinate.
func Step(window, weights *tensor.Dense, bias float64) (float64, error) {
	ws, fs := window.Shape(), weights.Shape()
	if len(ws) != 3 {
		return 0, fmt.Errorf("step: window must be 3D [F,F,C], got %dD: %w",
			len(ws), ErrShapeMismatch)
	}
	if len(fs) != 3 {
		return 0, fmt.Errorf("step: weights must be 3D [F,F,C], got %dD: %w",
			len(fs), ErrShapeMismatch)
	}
	if !ws.Equal(fs) {
		return 0, fmt.Errorf("step: window shape %v != weights shape %v: %w",
			ws, fs, ErrShapeMismatch)
	}
	if window.DType() != weights.DType() {
		return 0, fmt.Errorf("step: window dtype %s != weights dtype %s: %w",
			window.DType(), weights.DType(), ErrShapeMismatch)
	}

	switch window.DType() {
	case tensor.Float32:
		return float64(stepFloat32(window.AsFloat32(), weights.AsFloat32(), float32(bias))), nil
	case tensor.Float64:
		return stepFloat64(window.AsFloat64(), weights.AsFloat64(), bias), nil
	default:
		panic(fmt.Sprintf("step: unsupported dtype %s", window.DType()))
	}
}

// stepFloat32 computes dot(window, weights) + bias in single precision.
// Both slices are flat row-major views of the same [F, F, Ci] shape.
func stepFloat32(window, weights []float32, bias float32) float32 {
	x := blas32.Vector{N: len(window), Inc: 1, Data: window}
	w := blas32.Vector{N: len(weights), Inc: 1, Data: weights}
	return blas32.Dot(x, w) + bias
}

// stepFloat64 is the float64 counterpart of stepFloat32.
func stepFloat64(window, weights []float64, bias float64) float64 {
	return floats.Dot(window, weights) + bias
}
