package cnn

import "github.com/jesus-a-martinez-v/cnn-from-scratch/internal/tensor"

// ConvCache is the replay record of one convolution forward pass,
// intended for a future backward pass. It aliases the operator's own
// inputs (the pre-padding input, not the padded copy) and owns no data
// of its own.
type ConvCache struct {
	Input   *tensor.Dense // borrowed, shape (B, Hi, Wi, Ci)
	Filters *tensor.Dense // borrowed, shape (F, F, Ci, Co)
	Biases  *tensor.Dense // borrowed, shape (1, 1, 1, Co)
	Params  ConvParams
}

// PoolCache is the replay record of one pooling forward pass.
type PoolCache struct {
	Input  *tensor.Dense // borrowed, shape (B, Hi, Wi, C)
	Params PoolParams
	Mode   Mode
}
