package cnn

import (
	"fmt"

	"github.com/jesus-a-martinez-v/cnn-from-scratch/internal/parallel"
	"github.com/jesus-a-martinez-v/cnn-from-scratch/internal/tensor"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PoolForward computes the forward pass of a spatial pooling reduction.
//
// Input shape:  [batch, height, width, channels]
// Output shape: [batch, out_h, out_w, channels]
//
// Where:
//
//	out_h = (height - windowSize) / stride + 1
//	out_w = (width - windowSize) / stride + 1
//
// No padding is applied; the truncating division drops ragged tails.
// Each output cell reduces the windowSize x windowSize single-channel
// window starting at (h*stride, w*stride) with the selected mode:
// MaxPool takes the maximum element, AveragePool the arithmetic mean.
// Pooling has no learned parameters and applies no activation.
//
// The returned cache references the input, params, and mode; PoolForward
// never mutates its input.
func PoolForward(input *tensor.Dense, p PoolParams, mode Mode) (*tensor.Dense, *PoolCache, error) {
	if !mode.valid() {
		return nil, nil, fmt.Errorf("pool: unknown mode %v: %w", mode, ErrInvalidArgument)
	}

	is := input.Shape()
	if len(is) != 4 {
		return nil, nil, fmt.Errorf("pool: input must be 4D [N,H,W,C], got %dD: %w",
			len(is), ErrShapeMismatch)
	}

	B, Hi, Wi, C := is[0], is[1], is[2], is[3]

	if p.WindowSize < 1 {
		return nil, nil, fmt.Errorf("pool: window size %d must be >= 1: %w",
			p.WindowSize, ErrInvalidArgument)
	}
	if p.Stride < 1 {
		return nil, nil, fmt.Errorf("pool: stride %d must be >= 1: %w",
			p.Stride, ErrInvalidArgument)
	}

	// Separate fit check: integer division truncates toward zero, so a
	// negative numerator would otherwise yield Ho = 1.
	if Hi < p.WindowSize || Wi < p.WindowSize {
		return nil, nil, fmt.Errorf("pool: window %d does not fit input %dx%d: %w",
			p.WindowSize, Hi, Wi, ErrInvalidArgument)
	}

	Ho := (Hi-p.WindowSize)/p.Stride + 1
	Wo := (Wi-p.WindowSize)/p.Stride + 1
	if Ho < 1 || Wo < 1 {
		return nil, nil, fmt.Errorf("pool: empty output %dx%d for input %dx%d, window %d, stride %d: %w",
			Ho, Wo, Hi, Wi, p.WindowSize, p.Stride, ErrInvalidArgument)
	}

	wantShape := tensor.Shape{B, Ho, Wo, C}
	out, err := tensor.NewDense(wantShape, input.DType())
	if err != nil {
		return nil, nil, fmt.Errorf("pool: %w", err)
	}

	cfg := parallel.DefaultConfig()

	switch input.DType() {
	case tensor.Float32:
		poolForwardFloat32(out, input, B, Hi, Wi, C, Ho, Wo, p.WindowSize, p.Stride, mode, cfg)
	case tensor.Float64:
		poolForwardFloat64(out, input, B, Hi, Wi, C, Ho, Wo, p.WindowSize, p.Stride, mode, cfg)
	default:
		panic(fmt.Sprintf("pool: unsupported dtype %s", input.DType()))
	}

	if !out.Shape().Equal(wantShape) {
		panic(fmt.Sprintf("pool: output shape %v != expected %v", out.Shape(), wantShape))
	}

	cache := &PoolCache{Input: input, Params: p, Mode: mode}
	return out, cache, nil
}

// poolForwardFloat32 runs the window loop for float32 volumes. Channels
// are interleaved in NHWC, so window elements are gathered with stride C
// rather than sliced.
func poolForwardFloat32(out, input *tensor.Dense,
	B, Hi, Wi, C, Ho, Wo, window, stride int, mode Mode, cfg parallel.Config,
) {
	in := input.AsFloat32()
	dst := out.AsFloat32()
	area := float32(window * window)

	parallel.ForBatch(B, C, func(b, c int) {
		for h := 0; h < Ho; h++ {
			hStart := h * stride
			for w := 0; w < Wo; w++ {
				wStart := w * stride

				var val float32
				switch mode {
				case MaxPool:
					val = math32.Inf(-1)
					for kh := 0; kh < window; kh++ {
						row := ((b*Hi+hStart+kh)*Wi + wStart) * C
						for kw := 0; kw < window; kw++ {
							if v := in[row+kw*C+c]; v > val {
								val = v
							}
						}
					}
				case AveragePool:
					var sum float32
					for kh := 0; kh < window; kh++ {
						row := ((b*Hi+hStart+kh)*Wi + wStart) * C
						for kw := 0; kw < window; kw++ {
							sum += in[row+kw*C+c]
						}
					}
					val = sum / area
				}

				dst[((b*Ho+h)*Wo+w)*C+c] = val
			}
		}
	}, cfg)
}

// poolForwardFloat64 is the float64 counterpart of poolForwardFloat32.
// The window is gathered into a scratch slice so the reduction can use
// the gonum primitives.
func poolForwardFloat64(out, input *tensor.Dense,
	B, Hi, Wi, C, Ho, Wo, window, stride int, mode Mode, cfg parallel.Config,
) {
	in := input.AsFloat64()
	dst := out.AsFloat64()

	parallel.ForBatch(B, C, func(b, c int) {
		scratch := make([]float64, window*window)
		for h := 0; h < Ho; h++ {
			hStart := h * stride
			for w := 0; w < Wo; w++ {
				wStart := w * stride

				i := 0
				for kh := 0; kh < window; kh++ {
					row := ((b*Hi+hStart+kh)*Wi + wStart) * C
					for kw := 0; kw < window; kw++ {
						scratch[i] = in[row+kw*C+c]
						i++
					}
				}

				var val float64
				switch mode {
				case MaxPool:
					val = floats.Max(scratch)
				case AveragePool:
					val = stat.Mean(scratch, nil)
				}

				dst[((b*Ho+h)*Wo+w)*C+c] = val
			}
		}
	}, cfg)
}
