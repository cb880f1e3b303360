// Package endian provides byte order utilities for reading fixed-width fields out of
// an in-memory buffer.
//
// Diffraction binaries are read by offset arithmetic rather than by a sequential
// stream, so the central type here is Buffer: an immutable byte slice paired with a
// byte order, exposing bounds-checked reads at arbitrary offsets.
//
// # Basic Usage
//
//	buf := endian.NewBuffer(data, endian.GetLittleEndianEngine())
//	if count, ok := buf.Uint32At(off); ok {
//	    // ...
//	}
//
// # Thread Safety
//
// Buffer never mutates the underlying slice and holds no cursor, so a Buffer may be
// shared by concurrent readers as long as the caller does not modify the slice.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// Buffer is a read-only view of a byte slice with offset-addressed decoding.
//
// Every accessor returns ok=false instead of panicking when the requested field
// does not fit entirely inside the buffer, including negative offsets.
type Buffer struct {
	data   []byte
	engine EndianEngine
}

// NewBuffer wraps data for reads with the given byte order.
func NewBuffer(data []byte, engine EndianEngine) Buffer {
	return Buffer{data: data, engine: engine}
}

// field returns the n bytes at off, or nil when they are out of range.
func (b Buffer) field(off, n int) []byte {
	if off < 0 || n > len(b.data) || off > len(b.data)-n {
		return nil
	}

	return b.data[off : off+n]
}

// Uint32At decodes the unsigned 32-bit integer at off.
func (b Buffer) Uint32At(off int) (uint32, bool) {
	f := b.field(off, 4)
	if f == nil {
		return 0, false
	}

	return b.engine.Uint32(f), true
}

// Float32At decodes the IEEE-754 binary32 value at off.
func (b Buffer) Float32At(off int) (float32, bool) {
	v, ok := b.Uint32At(off)
	if !ok {
		return 0, false
	}

	return math.Float32frombits(v), true
}

// Float64At decodes the IEEE-754 binary64 value at off.
func (b Buffer) Float64At(off int) (float64, bool) {
	f := b.field(off, 8)
	if f == nil {
		return 0, false
	}

	return math.Float64frombits(b.engine.Uint64(f)), true
}
