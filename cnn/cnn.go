// Copyright 2026 The cnn-from-scratch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cnn provides the public API for the convolution and pooling
// forward passes.
//
// Both operators consume rank-4 NHWC volumes, return a freshly
// allocated output volume plus a replay cache referencing the borrowed
// inputs, and fail fast with errors wrapping ErrShapeMismatch or
// ErrInvalidArgument.
//
// Example:
//
//	out, cache, err := cnn.ConvForward(x, filters, biases, cnn.ConvParams{Stride: 1, Pad: 1})
//	if err != nil {
//	    // errors.Is(err, cnn.ErrShapeMismatch) etc.
//	}
//	pooled, _, err := cnn.PoolForward(out, cnn.PoolParams{WindowSize: 2, Stride: 2}, cnn.MaxPool)
package cnn

import (
	"github.com/jesus-a-martinez-v/cnn-from-scratch/internal/cnn"
	"github.com/jesus-a-martinez-v/cnn-from-scratch/internal/tensor"
)

// Sentinel errors; see the internal package for the taxonomy.
var (
	ErrShapeMismatch   = cnn.ErrShapeMismatch
	ErrInvalidArgument = cnn.ErrInvalidArgument
)

// ConvParams are the hyperparameters of a convolution forward pass.
type ConvParams = cnn.ConvParams

// PoolParams are the hyperparameters of a pooling forward pass.
type PoolParams = cnn.PoolParams

// Mode selects the pooling reduction.
type Mode = cnn.Mode

// Supported pooling modes.
const (
	MaxPool     Mode = cnn.MaxPool
	AveragePool Mode = cnn.AveragePool
)

// ConvCache is the replay record of one convolution forward pass.
type ConvCache = cnn.ConvCache

// PoolCache is the replay record of one pooling forward pass.
type PoolCache = cnn.PoolCache

// Pad adds a symmetric zero border to the two spatial axes of a volume.
func Pad(x *tensor.Dense, pad int) (*tensor.Dense, error) {
	return cnn.Pad(x, pad)
}

// Step reduces one aligned window against one filter's weights and bias.
func Step(window, weights *tensor.Dense, bias float64) (float64, error) {
	return cnn.Step(window, weights, bias)
}

// ConvForward computes the forward pass of a spatial convolution.
func ConvForward(input, filters, biases *tensor.Dense, p ConvParams) (*tensor.Dense, *ConvCache, error) {
	return cnn.ConvForward(input, filters, biases, p)
}

// PoolForward computes the forward pass of a spatial pooling reduction.
func PoolForward(input *tensor.Dense, p PoolParams, mode Mode) (*tensor.Dense, *PoolCache, error) {
	return cnn.PoolForward(input, p, mode)
}
