package bser

import (
	"fmt"
	"reflect"
)

// Pair is a two-component heterogeneous value. On the wire it is the
// concatenation of the two component encodings, like any other struct.
type Pair[A, B any] struct {
	First  A
	Second B
}

// PairOf is a convenience constructor for Pair.
func PairOf[A, B any](first A, second B) Pair[A, B] {
	return Pair[A, B]{First: first, Second: second}
}

// structEngine treats a struct as a fixed heterogeneous tuple: fields
// are encoded in declaration order with no prefix, the length being
// derivable from the static type. The zero-field struct encodes to zero
// bytes. Every field must be exported: an unexported field cannot be
// reconstructed through reflection, so it fails classification rather
// than silently dropping data.
func structEngine(t reflect.Type, seen map[reflect.Type]*engine) (*engine, error) {
	n := t.NumField()
	fields := make([]*engine, n)
	for i := range n {
		f := t.Field(i)
		if !f.IsExported() {
			return nil, fmt.Errorf("%w: %s has unexported field %s", ErrUnsupportedType, t, f.Name)
		}
		fe, err := buildEngine(f.Type, seen)
		if err != nil {
			return nil, fmt.Errorf("%s field %s: %w", t, f.Name, err)
		}
		fields[i] = fe
	}

	return &engine{
		size: func(v reflect.Value) int {
			total := 0
			for i, fe := range fields {
				total += fe.size(v.Field(i))
			}
			return total
		},
		write: func(w *WriteCursor, v reflect.Value) {
			for i, fe := range fields {
				fe.write(w, v.Field(i))
			}
		},
		read: func(r *ReadCursor, v reflect.Value) {
			for i, fe := range fields {
				fe.read(r, v.Field(i))
			}
		},
	}, nil
}

// arrayEngine encodes a fixed-length array as the concatenation of its
// element encodings, no prefix. Sizing sums per-element sizes rather
// than multiplying, so variable-width elements (nested collections,
// strings) stay correct.
func arrayEngine(t reflect.Type, seen map[reflect.Type]*engine) (*engine, error) {
	elem, err := buildEngine(t.Elem(), seen)
	if err != nil {
		return nil, fmt.Errorf("%s element: %w", t, err)
	}
	n := t.Len()

	return &engine{
		size: func(v reflect.Value) int {
			total := 0
			for i := range n {
				total += elem.size(v.Index(i))
			}
			return total
		},
		write: func(w *WriteCursor, v reflect.Value) {
			for i := range n {
				elem.write(w, v.Index(i))
			}
		},
		read: func(r *ReadCursor, v reflect.Value) {
			for i := range n {
				elem.read(r, v.Index(i))
			}
		},
	}, nil
}
