package bser

import (
	"fmt"
	"reflect"
)

// Size returns the exact number of bytes the encoding of v occupies.
// It is pure: v is neither mutated nor consumed, and Write will advance
// its cursor by exactly this many bytes for an equal value. A type that
// fails classification is reported here, before any byte moves.
func Size[T any](v T) (int, error) {
	e, err := engineOf(reflect.TypeFor[T]())
	if err != nil {
		return 0, err
	}
	n := e.size(reflect.ValueOf(&v).Elem())
	if n < 0 {
		// A self-describing type without a fixed answer reports a
		// negative size; surface it instead of allocating with it.
		return 0, fmt.Errorf("%w: %s reported size %d", ErrUnsupportedType, reflect.TypeFor[T](), n)
	}
	return n, nil
}

// Write encodes v at the cursor, advancing it by exactly Size(v) bytes.
// The caller owns the buffer and must have sized it beforehand; a buffer
// too small surfaces as io.ErrShortWrite.
func Write[T any](w *WriteCursor, v T) error {
	e, err := engineOf(reflect.TypeFor[T]())
	if err != nil {
		return err
	}
	e.write(w, reflect.ValueOf(&v).Elem())
	return w.Err()
}

// Read decodes a value of type T at the cursor, advancing it past the
// encoding. On error the cursor position is undefined and the caller
// must not continue decoding from it.
func Read[T any](r *ReadCursor) (T, error) {
	var v T
	err := ReadInto(r, &v)
	return v, err
}

// ReadInto is the placement form of Read: it decodes directly into an
// existing value instead of returning a new one.
func ReadInto[T any](r *ReadCursor, out *T) error {
	e, err := engineOf(reflect.TypeFor[T]())
	if err != nil {
		return err
	}
	e.read(r, reflect.ValueOf(out).Elem())
	return r.Err()
}

// Marshal sizes v, allocates a buffer of exactly that length, and
// encodes into it.
func Marshal[T any](v T) ([]byte, error) {
	size, err := Size(v)
	if err != nil {
		return nil, err
	}
	w := NewWriteCursor(make([]byte, size))
	if err := Write(w, v); err != nil {
		return nil, err
	}
	if w.Len() != size {
		return nil, fmt.Errorf("%w: sized %d bytes but wrote %d", ErrSizeMismatch, size, w.Len())
	}
	return w.Bytes(), nil
}

// Unmarshal decodes a value of type T from data. Leftover bytes after
// the decode must be zero padding; any non-zero remainder is
// ErrTrailingData, which catches a writer/reader type mismatch early
// instead of silently accepting an ambiguous payload.
func Unmarshal[T any](data []byte) (T, error) {
	r := NewReadCursor(data)
	v, err := Read[T](r)
	if err != nil {
		return v, err
	}
	if r.Available() > 0 {
		if err := checkTrailing(data[r.N:]); err != nil {
			return v, err
		}
	}
	return v, nil
}
