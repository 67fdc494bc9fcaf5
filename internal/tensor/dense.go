package tensor

import (
	"fmt"
	"unsafe"
)

// Dense is a dense row-major n-dimensional array.
//
// Storage is a single flat byte buffer reinterpreted through the typed
// accessors below. The operators in internal/cnn never mutate a Dense
// they did not allocate themselves; callers keep ownership of everything
// they pass in.
type Dense struct {
	shape Shape
	dtype DataType
	data  []byte
}

// NewDense creates a zero-initialized Dense with the given shape and type.
func NewDense(shape Shape, dtype DataType) (*Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	byteSize := shape.NumElements() * dtype.Size()

	return &Dense{
		shape: shape.Clone(),
		dtype: dtype,
		data:  make([]byte, byteSize),
	}, nil
}

// Shape returns the tensor's shape.
func (d *Dense) Shape() Shape {
	return d.shape
}

// DType returns the tensor's element type.
func (d *Dense) DType() DataType {
	return d.dtype
}

// NumElements returns the total number of elements.
func (d *Dense) NumElements() int {
	return d.shape.NumElements()
}

// AsFloat32 interprets the buffer as []float32.
// Panics if the element type is not Float32.
func (d *Dense) AsFloat32() []float32 {
	if d.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", d.dtype))
	}
	//nolint:gosec // zero-copy view, length bounded by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&d.data[0])), d.NumElements())
}

// AsFloat64 interprets the buffer as []float64.
// Panics if the element type is not Float64.
func (d *Dense) AsFloat64() []float64 {
	if d.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", d.dtype))
	}
	//nolint:gosec // zero-copy view, length bounded by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&d.data[0])), d.NumElements())
}

// Clone returns a deep copy with its own buffer.
func (d *Dense) Clone() *Dense {
	data := make([]byte, len(d.data))
	copy(data, d.data)
	return &Dense{
		shape: d.shape.Clone(),
		dtype: d.dtype,
		data:  data,
	}
}

// Equal reports whether two tensors agree on shape, type, and every element.
func (d *Dense) Equal(other *Dense) bool {
	if d.dtype != other.dtype || !d.shape.Equal(other.shape) {
		return false
	}
	for i := range d.data {
		if d.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
