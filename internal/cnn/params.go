package cnn

import "fmt"

// ConvParams are the hyperparameters of a convolution forward pass.
type ConvParams struct {
	Stride int // Pixels advanced per output step. Must be >= 1.
	Pad    int // Zero-border width added to both spatial axes. Must be >= 0.
}

// PoolParams are the hyperparameters of a pooling forward pass.
type PoolParams struct {
	WindowSize int // Side of the square pooling window. Must be >= 1.
	Stride     int // Pixels advanced per output step. Must be >= 1.
}

// Mode selects the pooling reduction.
type Mode int

// Supported pooling modes.
const (
	MaxPool     Mode = iota // maximum element of the window
	AveragePool             // arithmetic mean of the window
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case MaxPool:
		return "max"
	case AveragePool:
		return "average"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) valid() bool {
	return m == MaxPool || m == AveragePool
}
