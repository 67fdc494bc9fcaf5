package cnn

import (
	"fmt"

	"github.com/jesus-a-martinez-v/cnn-from-scratch/internal/parallel"
	"github.com/jesus-a-martinez-v/cnn-from-scratch/internal/tensor"
)

// ConvForward computes the forward pass of a spatial convolution.
//
// Input shape:   [batch, height, width, in_channels]
// Filter shape:  [F, F, in_channels, out_channels] (square filters only)
// Bias shape:    [1, 1, 1, out_channels]
// Output shape:  [batch, out_h, out_w, out_channels]
//
// Where:
//
//	out_h = (height + 2*pad - F) / stride + 1
//	out_w = (width + 2*pad - F) / stride + 1
//
// The division truncates: window positions that would run past the
// padded input are dropped, never an error. Each output cell is the
// Step reduction of the [F, F, in_channels] window starting at
// (h*stride, w*stride) in the padded input against the filter slice
// for that output channel, plus the channel's bias. No activation is
// applied.
//
// The returned cache references the pre-padding input, the filters,
// the biases, and the params; ConvForward never mutates its inputs.
func ConvForward(input, filters, biases *tensor.Dense, p ConvParams) (*tensor.Dense, *ConvCache, error) {
	is, fs, bs := input.Shape(), filters.Shape(), biases.Shape()

	if len(is) != 4 {
		return nil, nil, fmt.Errorf("conv: input must be 4D [N,H,W,C], got %dD: %w",
			len(is), ErrShapeMismatch)
	}
	if len(fs) != 4 {
		return nil, nil, fmt.Errorf("conv: filters must be 4D [F,F,Ci,Co], got %dD: %w",
			len(fs), ErrShapeMismatch)
	}
	if len(bs) != 4 {
		return nil, nil, fmt.Errorf("conv: biases must be 4D [1,1,1,Co], got %dD: %w",
			len(bs), ErrShapeMismatch)
	}

	B, Hi, Wi, Ci := is[0], is[1], is[2], is[3]
	F, Co := fs[0], fs[3]

	if fs[0] != fs[1] {
		return nil, nil, fmt.Errorf("conv: non-square filter %dx%d: %w",
			fs[0], fs[1], ErrShapeMismatch)
	}
	if fs[2] != Ci {
		return nil, nil, fmt.Errorf("conv: input channels %d != filter input channels %d: %w",
			Ci, fs[2], ErrShapeMismatch)
	}
	if bs[0] != 1 || bs[1] != 1 || bs[2] != 1 || bs[3] != Co {
		return nil, nil, fmt.Errorf("conv: biases must have shape [1,1,1,%d], got %v: %w",
			Co, bs, ErrShapeMismatch)
	}
	if input.DType() != filters.DType() || input.DType() != biases.DType() {
		return nil, nil, fmt.Errorf("conv: dtype mismatch input=%s filters=%s biases=%s: %w",
			input.DType(), filters.DType(), biases.DType(), ErrShapeMismatch)
	}
	if p.Stride < 1 {
		return nil, nil, fmt.Errorf("conv: stride %d must be >= 1: %w",
			p.Stride, ErrInvalidArgument)
	}
	if p.Pad < 0 {
		return nil, nil, fmt.Errorf("conv: negative padding %d: %w",
			p.Pad, ErrInvalidArgument)
	}

	// The filter must fit the padded input at least once; checked
	// separately because integer division truncates toward zero and
	// would turn a negative numerator into Ho = 1.
	if Hi+2*p.Pad < F || Wi+2*p.Pad < F {
		return nil, nil, fmt.Errorf("conv: filter %d does not fit padded input %dx%d: %w",
			F, Hi+2*p.Pad, Wi+2*p.Pad, ErrInvalidArgument)
	}

	Ho := (Hi-F+2*p.Pad)/p.Stride + 1
	Wo := (Wi-F+2*p.Pad)/p.Stride + 1
	if Ho < 1 || Wo < 1 {
		return nil, nil, fmt.Errorf("conv: empty output %dx%d for input %dx%d, filter %d, stride %d, pad %d: %w",
			Ho, Wo, Hi, Wi, F, p.Stride, p.Pad, ErrInvalidArgument)
	}

	padded, err := Pad(input, p.Pad)
	if err != nil {
		return nil, nil, err
	}

	wantShape := tensor.Shape{B, Ho, Wo, Co}
	out, err := tensor.NewDense(wantShape, input.DType())
	if err != nil {
		return nil, nil, fmt.Errorf("conv: %w", err)
	}

	HP, WP := Hi+2*p.Pad, Wi+2*p.Pad
	cfg := parallel.DefaultConfig()

	switch input.DType() {
	case tensor.Float32:
		convForwardFloat32(out, padded, filters, biases, B, HP, WP, Ci, F, Co, Ho, Wo, p.Stride, cfg)
	case tensor.Float64:
		convForwardFloat64(out, padded, filters, biases, B, HP, WP, Ci, F, Co, Ho, Wo, p.Stride, cfg)
	default:
		panic(fmt.Sprintf("conv: unsupported dtype %s", input.DType()))
	}

	if !out.Shape().Equal(wantShape) {
		panic(fmt.Sprintf("conv: output shape %v != expected %v", out.Shape(), wantShape))
	}

	cache := &ConvCache{Input: input, Filters: filters, Biases: biases, Params: p}
	return out, cache, nil
}

// convForwardFloat32 runs the window loop for float32 volumes.
//
// Filters arrive as [F, F, Ci, Co] with the output channel innermost, so
// each channel's weights are regrouped once into a contiguous slice; the
// per-position reduction is then a flat dot product. Batch and output
// channel iterations spread over workers; each (b, c) pair writes a
// disjoint set of output cells.
func convForwardFloat32(out, padded, filters, biases *tensor.Dense,
	B, HP, WP, Ci, F, Co, Ho, Wo, stride int, cfg parallel.Config,
) {
	in := padded.AsFloat32()
	w := filters.AsFloat32()
	bias := biases.AsFloat32()
	dst := out.AsFloat32()

	wByCh := make([][]float32, Co)
	for c := range wByCh {
		wByCh[c] = make([]float32, F*F*Ci)
	}
	for fh := 0; fh < F; fh++ {
		for fw := 0; fw < F; fw++ {
			for ci := 0; ci < Ci; ci++ {
				flat := (fh*F+fw)*Ci + ci
				for c := 0; c < Co; c++ {
					wByCh[c][flat] = w[flat*Co+c]
				}
			}
		}
	}

	parallel.ForBatch(B, Co, func(b, c int) {
		window := make([]float32, F*F*Ci)
		weights := wByCh[c]
		for h := 0; h < Ho; h++ {
			hStart := h * stride
			for wo := 0; wo < Wo; wo++ {
				wStart := wo * stride
				for kh := 0; kh < F; kh++ {
					src := ((b*HP+hStart+kh)*WP + wStart) * Ci
					copy(window[kh*F*Ci:(kh+1)*F*Ci], in[src:src+F*Ci])
				}
				dst[((b*Ho+h)*Wo+wo)*Co+c] = stepFloat32(window, weights, bias[c])
			}
		}
	}, cfg)
}

// convForwardFloat64 is the float64 counterpart of convForwardFloat32.
func convForwardFloat64(out, padded, filters, biases *tensor.Dense,
	B, HP, WP, Ci, F, Co, Ho, Wo, stride int, cfg parallel.Config,
) {
	in := padded.AsFloat64()
	w := filters.AsFloat64()
	bias := biases.AsFloat64()
	dst := out.AsFloat64()

	wByCh := make([][]float64, Co)
	for c := range wByCh {
		wByCh[c] = make([]float64, F*F*Ci)
	}
	for fh := 0; fh < F; fh++ {
		for fw := 0; fw < F; fw++ {
			for ci := 0; ci < Ci; ci++ {
				flat := (fh*F+fw)*Ci + ci
				for c := 0; c < Co; c++ {
					wByCh[c][flat] = w[flat*Co+c]
				}
			}
		}
	}

	parallel.ForBatch(B, Co, func(b, c int) {
		window := make([]float64, F*F*Ci)
		weights := wByCh[c]
		for h := 0; h < Ho; h++ {
			hStart := h * stride
			for wo := 0; wo < Wo; wo++ {
				wStart := wo * stride
				for kh := 0; kh < F; kh++ {
					src := ((b*HP+hStart+kh)*WP + wStart) * Ci
					copy(window[kh*F*Ci:(kh+1)*F*Ci], in[src:src+F*Ci])
				}
				dst[((b*Ho+h)*Wo+wo)*Co+c] = stepFloat64(window, weights, bias[c])
			}
		}
	}, cfg)
}
