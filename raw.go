package bser

import (
	"encoding/binary"
	"fmt"
	"io"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// WriteRaw copies p to the cursor verbatim, with no length prefix and
// no interpretation. It is the escape hatch for callers who want to
// move exact bytes through a buffer shared with encoded values.
func WriteRaw(w *WriteCursor, p []byte) error {
	w.WriteBytes(p)
	return w.Err()
}

// ReadRaw copies the next n bytes off the cursor verbatim.
func ReadRaw(r *ReadCursor, n int) ([]byte, error) {
	b := r.ReadBytes(n)
	return b, r.Err()
}

// ReadRawInto copies exactly len(dest) bytes off the cursor into dest.
func ReadRawInto(r *ReadCursor, dest []byte) error {
	r.ReadBytesTo(dest)
	return r.Err()
}

// rawSizeCache avoids the high performance cost of reflection in
// binary.Size on every call.
var rawSizeCache = xsync.NewMap[reflect.Type, int]()

// Raw is a self-describing codec wrapping any struct Payload composed of
// fixed-size fields. It lays the payload out with encoding/binary in
// wire order, field by field, with none of the generic engine's framing.
// Use it for types whose memory layout IS the wire layout.
//
// Constraint: Payload must not contain variable-size fields like slices,
// maps, or strings; Encode and Decode report such a payload as
// ErrUnsupportedType.
type Raw[Payload any] struct {
	Payload Payload
}

var _ Codec = (*Raw[struct{}])(nil)

// Size returns the fixed size of the payload in bytes, or -1 when the
// payload is not fixed-size.
// The result is cached to avoid reflection overhead on subsequent calls.
func (c *Raw[Payload]) Size() int {
	t := reflect.TypeFor[Payload]()
	if size, ok := rawSizeCache.Load(t); ok {
		return size
	}
	size := binary.Size(&c.Payload)
	rawSizeCache.Store(t, size)
	return size
}

// Encode writes the payload at the cursor, advancing it by Size bytes.
func (c *Raw[Payload]) Encode(w *WriteCursor) error {
	if w.err != nil {
		return w.err
	}
	if c.Size() < 0 {
		return fmt.Errorf("%w: %s has variable-size fields", ErrUnsupportedType, reflect.TypeFor[Payload]())
	}
	n, err := binary.Encode(w.B[w.N:], Order, &c.Payload)
	if err != nil {
		// binary.Encode only fails when the buffer is too small.
		return io.ErrShortWrite
	}
	w.N += n
	return nil
}

// Decode reads the payload at the cursor, advancing it by Size bytes.
func (c *Raw[Payload]) Decode(r *ReadCursor) error {
	if r.err != nil {
		return r.err
	}
	if c.Size() < 0 {
		return fmt.Errorf("%w: %s has variable-size fields", ErrUnsupportedType, reflect.TypeFor[Payload]())
	}
	n, err := binary.Decode(r.B[r.N:], Order, &c.Payload)
	if err != nil {
		// binary.Decode only fails when the data is too short.
		return ErrTruncatedData
	}
	r.N += n
	return nil
}
