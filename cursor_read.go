package bser

import (
	"io"
	"math"
)

// ReadCursor is a position within a caller-owned byte buffer, advanced
// by every decode operation. Reading past the end of the buffer latches
// ErrTruncatedData and every subsequent operation becomes a no-op; the
// cursor position after a failed read is undefined and the caller must
// not continue decoding from it.
type ReadCursor struct {
	B   []byte // source slice
	N   int    // current read position
	err error  // first error encountered; subsequent reads become no-ops
}

var (
	_ io.Reader     = (*ReadCursor)(nil)
	_ io.ByteReader = (*ReadCursor)(nil)
	_ io.Seeker     = (*ReadCursor)(nil)
)

// NewReadCursor creates a ReadCursor over b.
func NewReadCursor(b []byte) *ReadCursor {
	return &ReadCursor{B: b}
}

// setError records the first non-nil error.
func (r *ReadCursor) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// Err returns the first error encountered, if any.
func (r *ReadCursor) Err() error { return r.err }

// Len returns the number of bytes read.
func (r *ReadCursor) Len() int { return r.N }

// Size returns the size of the underlying byte slice.
func (r *ReadCursor) Size() int { return len(r.B) }

// Available returns the number of bytes available for reading.
func (r *ReadCursor) Available() int {
	length := len(r.B) - r.N
	if length <= 0 {
		return 0
	}
	return length
}

// Reset allows the underlying byte slice to be reused.
func (r *ReadCursor) Reset() {
	r.N = 0
	r.err = nil
}

// Read implements the [io.Reader] interface.
func (r *ReadCursor) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.N >= len(r.B) {
		return 0, io.EOF
	}
	n := copy(p, r.B[r.N:])
	r.N += n
	return n, nil
}

// ReadByte implements the [io.ByteReader] interface.
func (r *ReadCursor) ReadByte() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.N >= len(r.B) {
		r.setError(ErrTruncatedData)
		return 0, r.err
	}
	b := r.B[r.N]
	r.N++
	return b, nil
}

// Seek implements the [io.Seeker] interface.
func (r *ReadCursor) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(r.N) + offset
	case io.SeekEnd:
		abs = int64(len(r.B)) + offset
	default:
		return 0, ErrInvalidWhence
	}

	if abs < 0 || abs > int64(len(r.B)) {
		return 0, ErrInvalidSeek
	}

	r.N = int(abs)
	return abs, nil
}

// next returns the n bytes at the cursor and advances past them, or
// latches ErrTruncatedData. The returned slice aliases the buffer.
func (r *ReadCursor) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > len(r.B)-r.N {
		r.setError(ErrTruncatedData)
		return nil
	}
	b := r.B[r.N : r.N+n]
	r.N += n
	return b
}

// ReadBytes reads n bytes and returns a new byte slice.
func (r *ReadCursor) ReadBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	b := r.next(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// ReadBytesTo reads exactly len(dest) bytes into dest.
func (r *ReadCursor) ReadBytesTo(dest []byte) {
	if len(dest) == 0 {
		return
	}
	b := r.next(len(dest))
	if b != nil {
		copy(dest, b)
	}
}

// --- Primitive Read Operations ---

func (r *ReadCursor) ReadBool(dest *bool) {
	b, err := r.ReadByte()
	if err == nil {
		*dest = b != 0
	}
}

func (r *ReadCursor) ReadUint8(dest *uint8) {
	b, err := r.ReadByte()
	if err == nil {
		*dest = b
	}
}

func (r *ReadCursor) ReadUint16(dest *uint16) {
	if buf := r.next(2); buf != nil {
		*dest = Order.Uint16(buf)
	}
}

func (r *ReadCursor) ReadUint32(dest *uint32) {
	if buf := r.next(4); buf != nil {
		*dest = Order.Uint32(buf)
	}
}

func (r *ReadCursor) ReadUint64(dest *uint64) {
	if buf := r.next(8); buf != nil {
		*dest = Order.Uint64(buf)
	}
}

func (r *ReadCursor) ReadInt8(dest *int8) {
	b, err := r.ReadByte()
	if err == nil {
		*dest = int8(b)
	}
}

func (r *ReadCursor) ReadInt16(dest *int16) {
	if buf := r.next(2); buf != nil {
		*dest = int16(Order.Uint16(buf))
	}
}

func (r *ReadCursor) ReadInt32(dest *int32) {
	if buf := r.next(4); buf != nil {
		*dest = int32(Order.Uint32(buf))
	}
}

func (r *ReadCursor) ReadInt64(dest *int64) {
	if buf := r.next(8); buf != nil {
		*dest = int64(Order.Uint64(buf))
	}
}

func (r *ReadCursor) ReadFloat32(dest *float32) {
	if buf := r.next(4); buf != nil {
		*dest = math.Float32frombits(Order.Uint32(buf))
	}
}

func (r *ReadCursor) ReadFloat64(dest *float64) {
	if buf := r.next(8); buf != nil {
		*dest = math.Float64frombits(Order.Uint64(buf))
	}
}
