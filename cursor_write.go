package bser

import (
	"io"
	"math"
)

// WriteCursor is a position within a caller-owned byte buffer, advanced
// by every encode operation. It will not grow the buffer: a write past
// the end latches io.ErrShortWrite and every subsequent operation
// becomes a no-op, so a long encode sequence only needs one error check
// at the end via Err.
type WriteCursor struct {
	B   []byte // destination slice
	N   int    // current write position
	err error  // first error encountered; subsequent writes become no-ops
}

var (
	_ io.Writer     = (*WriteCursor)(nil)
	_ io.ByteWriter = (*WriteCursor)(nil)
)

// NewWriteCursor creates a WriteCursor over p.
func NewWriteCursor(p []byte) *WriteCursor {
	return &WriteCursor{B: p}
}

// setError records the first non-nil error.
// This preserves the root cause of a failure chain instead of a later,
// less relevant error.
func (w *WriteCursor) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Err returns the first error encountered, if any.
func (w *WriteCursor) Err() error { return w.err }

// Len returns the number of bytes written.
func (w *WriteCursor) Len() int { return w.N }

// Size returns the capacity of the underlying byte slice.
func (w *WriteCursor) Size() int { return len(w.B) }

// Available returns the number of bytes available for writing.
func (w *WriteCursor) Available() int { return len(w.B) - w.N }

// Bytes returns a slice view of the written data.
func (w *WriteCursor) Bytes() []byte { return w.B[:w.N] }

// Reset allows the underlying byte slice to be reused.
func (w *WriteCursor) Reset() {
	w.N = 0
	w.err = nil
}

// Write implements the io.Writer interface.
func (w *WriteCursor) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	if len(p) > len(w.B)-w.N {
		w.setError(io.ErrShortWrite)
		return 0, w.err
	}
	n := copy(w.B[w.N:], p)
	w.N += n
	return n, nil
}

// WriteByte implements the io.ByteWriter interface.
func (w *WriteCursor) WriteByte(c byte) error {
	if w.err != nil {
		return w.err
	}
	if w.N >= len(w.B) {
		w.setError(io.ErrShortWrite)
		return w.err
	}
	w.B[w.N] = c
	w.N++
	return nil
}

// WriteBytes writes a byte slice verbatim.
func (w *WriteCursor) WriteBytes(p []byte) {
	if len(p) == 0 || w.err != nil {
		return
	}
	_, _ = w.Write(p)
}

// --- Primitive Write Operations ---

func (w *WriteCursor) WriteBool(v bool) {
	if v {
		_ = w.WriteByte(1)
	} else {
		_ = w.WriteByte(0)
	}
}

func (w *WriteCursor) WriteUint8(v uint8) {
	_ = w.WriteByte(v)
}

func (w *WriteCursor) WriteUint16(v uint16) {
	if w.err != nil {
		return
	}
	var buf [2]byte
	Order.PutUint16(buf[:], v)
	_, _ = w.Write(buf[:])
}

func (w *WriteCursor) WriteUint32(v uint32) {
	if w.err != nil {
		return
	}
	var buf [4]byte
	Order.PutUint32(buf[:], v)
	_, _ = w.Write(buf[:])
}

func (w *WriteCursor) WriteUint64(v uint64) {
	if w.err != nil {
		return
	}
	var buf [8]byte
	Order.PutUint64(buf[:], v)
	_, _ = w.Write(buf[:])
}

func (w *WriteCursor) WriteInt8(v int8) {
	_ = w.WriteByte(uint8(v))
}

func (w *WriteCursor) WriteInt16(v int16) {
	w.WriteUint16(uint16(v))
}

func (w *WriteCursor) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

func (w *WriteCursor) WriteInt64(v int64) {
	w.WriteUint64(uint64(v))
}

// WriteFloat32 writes the IEEE 754 bit pattern in wire order. Floats are
// normalized exactly like integers, so encodings are portable across
// hosts of either endianness.
func (w *WriteCursor) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 writes the IEEE 754 bit pattern in wire order.
func (w *WriteCursor) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}
