package cnn

import (
	"fmt"

	"github.com/jesus-a-martinez-v/cnn-from-scratch/internal/tensor"
)

// Pad adds a symmetric zero border to the two spatial axes of a volume.
//
// Input shape:  [batch, height, width, channels]
// Output shape: [batch, height + 2*pad, width + 2*pad, channels]
//
// Batch and channel extents are unchanged. pad == 0 returns an identity
// copy with its own buffer, never an alias of the input.
func Pad(x *tensor.Dense, pad int) (*tensor.Dense, error) {
	if pad < 0 {
		return nil, fmt.Errorf("pad: negative padding %d: %w", pad, ErrInvalidArgument)
	}

	shape := x.Shape()
	if len(shape) != 4 {
		return nil, fmt.Errorf("pad: expected 4D volume [N,H,W,C], got %dD: %w",
			len(shape), ErrShapeMismatch)
	}

	if pad == 0 {
		return x.Clone(), nil
	}

	N, H, W, C := shape[0], shape[1], shape[2], shape[3]
	out, err := tensor.NewDense(tensor.Shape{N, H + 2*pad, W + 2*pad, C}, x.DType())
	if err != nil {
		return nil, fmt.Errorf("pad: %w", err)
	}

	switch x.DType() {
	case tensor.Float32:
		padFloat32(out, x, N, H, W, C, pad)
	case tensor.Float64:
		padFloat64(out, x, N, H, W, C, pad)
	default:
		panic(fmt.Sprintf("pad: unsupported dtype %s", x.DType()))
	}

	return out, nil
}

// padFloat32 copies each input row into the interior of the padded
// volume. In NHWC layout a spatial row is W*C contiguous elements, so
// one copy per row suffices; the border stays zero from allocation.
func padFloat32(dst, src *tensor.Dense, N, H, W, C, pad int) {
	in := src.AsFloat32()
	out := dst.AsFloat32()
	HP, WP := H+2*pad, W+2*pad

	for n := 0; n < N; n++ {
		for h := 0; h < H; h++ {
			srcRow := (n*H + h) * W * C
			dstRow := ((n*HP+h+pad)*WP + pad) * C
			copy(out[dstRow:dstRow+W*C], in[srcRow:srcRow+W*C])
		}
	}
}

// padFloat64 is the float64 counterpart of padFloat32.
func padFloat64(dst, src *tensor.Dense, N, H, W, C, pad int) {
	in := src.AsFloat64()
	out := dst.AsFloat64()
	HP, WP := H+2*pad, W+2*pad

	for n := 0; n < N; n++ {
		for h := 0; h < H; h++ {
			srcRow := (n*H + h) * W * C
			dstRow := ((n*HP+h+pad)*WP + pad) * C
			copy(out[dstRow:dstRow+W*C], in[srcRow:srcRow+W*C])
		}
	}
}
