// Package serialize implements the fixed-field binary record format used by
// world saves. All multi-byte values are little-endian; strings are a uint32
// byte length followed by UTF-8 bytes. There is no versioning: reordering
// fields breaks existing saves.
package serialize

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/udisondev/openworld/internal/model"
)

// Writer accumulates a record.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a writer with the given initial capacity.
func NewWriter(capacity int) *Writer {
	return &Writer{
		buf: bytes.NewBuffer(make([]byte, 0, capacity)),
	}
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) error {
	return w.buf.WriteByte(b)
}

// WriteBool writes a bool as one byte (0/1).
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteByte(1)
		return
	}
	w.buf.WriteByte(0)
}

// WriteInt writes an int32 (4 bytes, LE).
func (w *Writer) WriteInt(val int32) {
	w.WriteUint(uint32(val))
}

// WriteUint writes a uint32 (4 bytes, LE).
func (w *Writer) WriteUint(val uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], val)
	w.buf.Write(tmp[:])
}

// WriteFloat writes a float32 (4 bytes, IEEE 754, LE).
func (w *Writer) WriteFloat(val float32) {
	w.WriteUint(math.Float32bits(val))
}

// WriteString writes a length-prefixed UTF-8 string.
func (w *Writer) WriteString(s string) {
	w.WriteUint(uint32(len(s)))
	w.buf.WriteString(s)
}

// WriteVec3 writes three floats.
func (w *Writer) WriteVec3(v model.Vec3) {
	w.WriteFloat(v.X)
	w.WriteFloat(v.Y)
	w.WriteFloat(v.Z)
}

// WriteMatrix writes 16 floats in storage order.
func (w *Writer) WriteMatrix(m model.Matrix4x4) {
	for _, f := range m.M {
		w.WriteFloat(f)
	}
}

// Bytes returns the accumulated record.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the current length of the record.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Reset clears the buffer for reuse.
func (w *Writer) Reset() {
	w.buf.Reset()
}
