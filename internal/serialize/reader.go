package serialize

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/udisondev/openworld/internal/model"
)

// maxStringLen guards against garbage length prefixes in corrupt records.
const maxStringLen = 1 << 20

// Reader decodes a record produced by Writer.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("ReadByte: not enough data (pos=%d, len=%d)", r.pos, len(r.data))
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBool reads a one-byte bool.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, fmt.Errorf("ReadBool: %w", err)
	}
	return b != 0, nil
}

// ReadUint reads a uint32 (4 bytes, LE).
func (r *Reader) ReadUint() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, fmt.Errorf("ReadUint: not enough data (pos=%d, len=%d)", r.pos, len(r.data))
	}
	val := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return val, nil
}

// ReadInt reads an int32 (4 bytes, LE).
func (r *Reader) ReadInt() (int32, error) {
	v, err := r.ReadUint()
	if err != nil {
		return 0, fmt.Errorf("ReadInt: %w", err)
	}
	return int32(v), nil
}

// ReadFloat reads a float32.
func (r *Reader) ReadFloat() (float32, error) {
	v, err := r.ReadUint()
	if err != nil {
		return 0, fmt.Errorf("ReadFloat: %w", err)
	}
	return math.Float32frombits(v), nil
}

// ReadString reads a length-prefixed UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUint()
	if err != nil {
		return "", fmt.Errorf("ReadString: %w", err)
	}
	if n > maxStringLen || r.pos+int(n) > len(r.data) {
		return "", fmt.Errorf("ReadString: bad length %d (pos=%d, len=%d)", n, r.pos, len(r.data))
	}
	s := string(r.data[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}

// ReadVec3 reads three floats.
func (r *Reader) ReadVec3() (model.Vec3, error) {
	var v model.Vec3
	var err error
	if v.X, err = r.ReadFloat(); err != nil {
		return v, err
	}
	if v.Y, err = r.ReadFloat(); err != nil {
		return v, err
	}
	if v.Z, err = r.ReadFloat(); err != nil {
		return v, err
	}
	return v, nil
}

// ReadMatrix reads 16 floats.
func (r *Reader) ReadMatrix() (model.Matrix4x4, error) {
	var m model.Matrix4x4
	for i := range m.M {
		f, err := r.ReadFloat()
		if err != nil {
			return m, fmt.Errorf("ReadMatrix: element %d: %w", i, err)
		}
		m.M[i] = f
	}
	return m, nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Position returns the current read position.
func (r *Reader) Position() int {
	return r.pos
}
