package translate

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Value is the set of element types the translation layer moves between the
// scene and codec models: float tuples for geometry and single integers for
// auxiliary marker attributes.
type Value interface {
	mgl32.Vec3 | mgl32.Vec2 | int32
}

// putValue writes one element into buf in codec byte order. This is the one
// place where writing a scalar integer differs from writing a tuple.
func putValue[T Value](buf []byte, value T) {
	switch v := any(value).(type) {
	case mgl32.Vec3:
		binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(v[0]))
		binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(v[1]))
		binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(v[2]))
	case mgl32.Vec2:
		binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(v[0]))
		binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(v[1]))
	case int32:
		binary.LittleEndian.PutUint32(buf, uint32(v))
	}
}

// getValue reads one element from codec bytes.
func getValue[T Value](buf []byte) T {
	var value T
	switch v := any(&value).(type) {
	case *mgl32.Vec3:
		v[0] = math.Float32frombits(binary.LittleEndian.Uint32(buf[0:]))
		v[1] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4:]))
		v[2] = math.Float32frombits(binary.LittleEndian.Uint32(buf[8:]))
	case *mgl32.Vec2:
		v[0] = math.Float32frombits(binary.LittleEndian.Uint32(buf[0:]))
		v[1] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4:]))
	case *int32:
		*v = int32(binary.LittleEndian.Uint32(buf))
	}
	return value
}

// intFromBytes reads a single integer element.
func intFromBytes(buf []byte) int32 {
	return int32(binary.LittleEndian.Uint32(buf))
}

// valueFromInt converts a range element; only the integer value kind has a
// meaningful conversion, which is the only kind ranges are built for.
func valueFromInt[T Value](i int) T {
	var value T
	if v, ok := any(&value).(*int32); ok {
		*v = int32(i)
	}
	return value
}

// makeRange returns the identity index sequence 0..size-1.
func makeRange(size int) []int32 {
	indices := make([]int32, size)
	for i := range indices {
		indices[i] = int32(i)
	}
	return indices
}
