package cnn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jesus-a-martinez-v/cnn-from-scratch/internal/tensor"
)

// pool4x4 returns the worked single-channel example:
// [[1,2,3,4],[5,6,7,8],[9,10,11,12],[13,14,15,16]].
func pool4x4(t *testing.T, dtype tensor.DataType) *tensor.Dense {
	t.Helper()
	switch dtype {
	case tensor.Float32:
		data := make([]float32, 16)
		for i := range data {
			data[i] = float32(i + 1)
		}
		d, err := tensor.FromFloat32(data, tensor.Shape{1, 4, 4, 1})
		require.NoError(t, err)
		return d
	default:
		data := make([]float64, 16)
		for i := range data {
			data[i] = float64(i + 1)
		}
		d, err := tensor.FromFloat64(data, tensor.Shape{1, 4, 4, 1})
		require.NoError(t, err)
		return d
	}
}

// TestPoolForward_Max tests 2x2/stride-2 max pooling on the worked
// example.
func TestPoolForward_Max(t *testing.T) {
	input := pool4x4(t, tensor.Float32)

	out, cache, err := PoolForward(input, PoolParams{WindowSize: 2, Stride: 2}, MaxPool)
	require.NoError(t, err)
	require.NotNil(t, cache)

	assert.True(t, out.Shape().Equal(tensor.Shape{1, 2, 2, 1}))
	assert.Equal(t, []float32{6, 8, 14, 16}, out.AsFloat32())
}

// TestPoolForward_Average tests 2x2/stride-2 average pooling on the
// worked example.
func TestPoolForward_Average(t *testing.T) {
	input := pool4x4(t, tensor.Float32)

	out, _, err := PoolForward(input, PoolParams{WindowSize: 2, Stride: 2}, AveragePool)
	require.NoError(t, err)

	assert.Equal(t, []float32{3.5, 5.5, 11.5, 13.5}, out.AsFloat32())
}

// TestPoolForward_Float64 tests both modes through the float64 kernels.
func TestPoolForward_Float64(t *testing.T) {
	input := pool4x4(t, tensor.Float64)
	p := PoolParams{WindowSize: 2, Stride: 2}

	maxOut, _, err := PoolForward(input, p, MaxPool)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 8, 14, 16}, maxOut.AsFloat64())

	avgOut, _, err := PoolForward(input, p, AveragePool)
	require.NoError(t, err)
	assert.Equal(t, []float64{3.5, 5.5, 11.5, 13.5}, avgOut.AsFloat64())
}

// TestPoolForward_Overlapping tests a 3x3 window with stride 1.
func TestPoolForward_Overlapping(t *testing.T) {
	data := make([]float32, 25)
	for i := range data {
		data[i] = float32(i + 1)
	}
	input, err := tensor.FromFloat32(data, tensor.Shape{1, 5, 5, 1})
	require.NoError(t, err)

	out, _, err := PoolForward(input, PoolParams{WindowSize: 3, Stride: 1}, MaxPool)
	require.NoError(t, err)

	assert.True(t, out.Shape().Equal(tensor.Shape{1, 3, 3, 1}))

	// Max of each 3x3 window is its bottom-right element.
	want := []float32{
		13, 14, 15,
		18, 19, 20,
		23, 24, 25,
	}
	assert.Equal(t, want, out.AsFloat32())
}

// TestPoolForward_RaggedTail tests that positions past the input are
// dropped, not padded or rejected.
func TestPoolForward_RaggedTail(t *testing.T) {
	data := make([]float32, 25)
	for i := range data {
		data[i] = float32(i + 1)
	}
	input, err := tensor.FromFloat32(data, tensor.Shape{1, 5, 5, 1})
	require.NoError(t, err)

	out, _, err := PoolForward(input, PoolParams{WindowSize: 2, Stride: 2}, MaxPool)
	require.NoError(t, err)

	// (5-2)/2+1 = 2: the last row and column never enter a window.
	assert.True(t, out.Shape().Equal(tensor.Shape{1, 2, 2, 1}))
	assert.Equal(t, []float32{7, 9, 17, 19}, out.AsFloat32())
}

// TestPoolForward_MultiChannel tests that channels reduce independently.
func TestPoolForward_MultiChannel(t *testing.T) {
	// 2x2 spatial, 2 channels: c0 holds 1..4, c1 holds 10..40.
	input, err := tensor.FromFloat64(
		[]float64{1, 10, 2, 20, 3, 30, 4, 40}, tensor.Shape{1, 2, 2, 2})
	require.NoError(t, err)

	p := PoolParams{WindowSize: 2, Stride: 2}

	maxOut, _, err := PoolForward(input, p, MaxPool)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 40}, maxOut.AsFloat64())

	avgOut, _, err := PoolForward(input, p, AveragePool)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 25}, avgOut.AsFloat64())
}

// TestPoolForward_Batch tests that batch elements reduce independently.
func TestPoolForward_Batch(t *testing.T) {
	// Batch 0 holds 1..4, batch 1 holds 5..8.
	input, err := tensor.FromFloat32(
		[]float32{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{2, 2, 2, 1})
	require.NoError(t, err)

	out, _, err := PoolForward(input, PoolParams{WindowSize: 2, Stride: 2}, MaxPool)
	require.NoError(t, err)

	assert.Equal(t, []float32{4, 8}, out.AsFloat32())
}

// TestPoolForward_InvalidMode tests that an unknown mode fails before
// any output exists.
func TestPoolForward_InvalidMode(t *testing.T) {
	input := pool4x4(t, tensor.Float32)

	out, cache, err := PoolForward(input, PoolParams{WindowSize: 2, Stride: 2}, Mode(7))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Nil(t, out)
	assert.Nil(t, cache)
}

// TestPoolForward_InvalidParams tests hyperparameter validation.
func TestPoolForward_InvalidParams(t *testing.T) {
	input := pool4x4(t, tensor.Float32)

	_, _, err := PoolForward(input, PoolParams{WindowSize: 0, Stride: 2}, MaxPool)
	assert.ErrorIs(t, err, ErrInvalidArgument, "zero window")

	_, _, err = PoolForward(input, PoolParams{WindowSize: 2, Stride: 0}, MaxPool)
	assert.ErrorIs(t, err, ErrInvalidArgument, "zero stride")

	// Window larger than the input plane: empty output.
	_, _, err = PoolForward(input, PoolParams{WindowSize: 5, Stride: 1}, MaxPool)
	assert.ErrorIs(t, err, ErrInvalidArgument, "empty output")
}

// TestPoolForward_WrongRank tests rejection of non-volume input.
func TestPoolForward_WrongRank(t *testing.T) {
	input := tensor.Zeros(tensor.Shape{4, 4, 1}, tensor.Float32)

	_, _, err := PoolForward(input, PoolParams{WindowSize: 2, Stride: 2}, MaxPool)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

// TestPoolForward_NegativeValues tests the max reduction on an
// all-negative window (the running max must not stick at zero).
func TestPoolForward_NegativeValues(t *testing.T) {
	input, err := tensor.FromFloat32(
		[]float32{-5, -2, -8, -3}, tensor.Shape{1, 2, 2, 1})
	require.NoError(t, err)

	out, _, err := PoolForward(input, PoolParams{WindowSize: 2, Stride: 2}, MaxPool)
	require.NoError(t, err)

	assert.Equal(t, []float32{-2}, out.AsFloat32())
}

// TestPoolForward_Deterministic tests that identical inputs give
// bit-identical outputs across repeated calls.
func TestPoolForward_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	input := tensor.Randn(tensor.Shape{3, 8, 8, 4}, tensor.Float64, rng)
	p := PoolParams{WindowSize: 3, Stride: 2}

	a, _, err := PoolForward(input, p, AveragePool)
	require.NoError(t, err)
	b, _, err := PoolForward(input, p, AveragePool)
	require.NoError(t, err)

	assert.True(t, a.Equal(b), "repeated forward passes differ")
}

// TestPoolForward_Cache tests that the cache aliases the input and
// records params and mode.
func TestPoolForward_Cache(t *testing.T) {
	input := pool4x4(t, tensor.Float32)
	p := PoolParams{WindowSize: 2, Stride: 2}

	_, cache, err := PoolForward(input, p, AveragePool)
	require.NoError(t, err)

	assert.Same(t, input, cache.Input)
	assert.Equal(t, p, cache.Params)
	assert.Equal(t, AveragePool, cache.Mode)
}

// TestPoolForward_InputUntouched tests that pooling never mutates its
// input.
func TestPoolForward_InputUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	input := tensor.Randn(tensor.Shape{2, 6, 6, 3}, tensor.Float32, rng)
	inputCopy := input.Clone()

	_, _, err := PoolForward(input, PoolParams{WindowSize: 2, Stride: 2}, MaxPool)
	require.NoError(t, err)

	assert.True(t, input.Equal(inputCopy), "input mutated")
}

// TestModeString tests the mode names.
func TestModeString(t *testing.T) {
	assert.Equal(t, "max", MaxPool.String())
	assert.Equal(t, "average", AveragePool.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
