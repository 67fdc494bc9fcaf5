package tensor

import "fmt"

// DataType is the element type of a Dense buffer.
type DataType int

// Supported element types.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the size of one element in bytes.
func (d DataType) Size() int {
	switch d {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic(fmt.Sprintf("unknown data type %d", int(d)))
	}
}

// String returns a human-readable type name.
func (d DataType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("DataType(%d)", int(d))
	}
}
