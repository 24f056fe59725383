package memory

import (
	"encoding/binary"
	"math"
)

// Scalar is the set of fixed-size values that can be read from or written to a region.
type Scalar interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// SizeOf returns the encoded width of T in bytes.
func SizeOf[T Scalar]() uint64 {
	var zero T
	switch any(zero).(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	default:
		return 8
	}
}

// Read decodes a little-endian T at addr. ok is false when the value does not
// fit inside the region; nothing is read in that case.
func Read[T Scalar](r Region, addr uint64) (v T, ok bool) {
	size := SizeOf[T]()
	b := view(r, addr, size, false)
	if b == nil {
		return v, false
	}
	var bits uint64
	switch size {
	case 1:
		bits = uint64(b[0])
	case 2:
		bits = uint64(binary.LittleEndian.Uint16(b))
	case 4:
		bits = uint64(binary.LittleEndian.Uint32(b))
	default:
		bits = binary.LittleEndian.Uint64(b)
	}
	return fromBits[T](bits), true
}

// Write encodes v little-endian at addr. It reports whether the write landed;
// an out-of-bounds write is dropped without touching the region.
func Write[T Scalar](r Region, addr uint64, v T) bool {
	size := SizeOf[T]()
	b := view(r, addr, size, true)
	if b == nil {
		return false
	}
	bits := toBits(v)
	switch size {
	case 1:
		b[0] = byte(bits)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(bits))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(bits))
	default:
		binary.LittleEndian.PutUint64(b, bits)
	}
	return true
}

func fromBits[T Scalar](bits uint64) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(math.Float32frombits(uint32(bits))).(T)
	case float64:
		return any(math.Float64frombits(bits)).(T)
	}
	// Integer conversion truncates to the width of T.
	return T(bits)
}

func toBits[T Scalar](v T) uint64 {
	switch x := any(v).(type) {
	case float32:
		return uint64(math.Float32bits(x))
	case float64:
		return math.Float64bits(x)
	}
	return uint64(v)
}
