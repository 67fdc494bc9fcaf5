package tensor

import (
	"fmt"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType) *Dense {
	d, err := NewDense(shape, dtype)
	if err != nil {
		panic(err) // caller passed a malformed shape
	}
	return d
}

// FromFloat32 creates a Float32 tensor from a flat row-major slice.
// The data is copied; the caller keeps ownership of the slice.
func FromFloat32(data []float32, shape Shape) (*Dense, error) {
	d, err := NewDense(shape, Float32)
	if err != nil {
		return nil, err
	}
	if len(data) != d.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, d.NumElements())
	}
	copy(d.AsFloat32(), data)
	return d, nil
}

// FromFloat64 creates a Float64 tensor from a flat row-major slice.
// The data is copied; the caller keeps ownership of the slice.
func FromFloat64(data []float64, shape Shape) (*Dense, error) {
	d, err := NewDense(shape, Float64)
	if err != nil {
		return nil, err
	}
	if len(data) != d.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, d.NumElements())
	}
	copy(d.AsFloat64(), data)
	return d, nil
}

// Randn creates a tensor filled with draws from N(0, 1).
//
// The generator is passed in explicitly so fixtures stay deterministic
// without any process-wide seed state.
func Randn(shape Shape, dtype DataType, rng *rand.Rand) *Dense {
	d := Zeros(shape, dtype)
	switch dtype {
	case Float32:
		data := d.AsFloat32()
		for i := range data {
			data[i] = float32(rng.NormFloat64())
		}
	case Float64:
		data := d.AsFloat64()
		for i := range data {
			data[i] = rng.NormFloat64()
		}
	default:
		panic(fmt.Sprintf("randn: unsupported dtype %s", dtype))
	}
	return d
}
