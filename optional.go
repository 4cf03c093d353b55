package bser

import (
	"fmt"
	"reflect"
)

// optionalEngine encodes a pointer as a nullable single value: a 1-byte
// presence flag, then the pointee's encoding when present. Decoding an
// absent value leaves the pointer nil.
func optionalEngine(t reflect.Type, seen map[reflect.Type]*engine) (*engine, error) {
	elem, err := buildEngine(t.Elem(), seen)
	if err != nil {
		return nil, fmt.Errorf("%s pointee: %w", t, err)
	}
	et := t.Elem()

	return &engine{
		size: func(v reflect.Value) int {
			if v.IsNil() {
				return 1
			}
			return 1 + elem.size(v.Elem())
		},
		write: func(w *WriteCursor, v reflect.Value) {
			if v.IsNil() {
				w.WriteBool(false)
				return
			}
			w.WriteBool(true)
			elem.write(w, v.Elem())
		},
		read: func(r *ReadCursor, v reflect.Value) {
			var present bool
			r.ReadBool(&present)
			if r.err != nil {
				return
			}
			if !present {
				v.SetZero()
				return
			}
			p := reflect.New(et)
			elem.read(r, p.Elem())
			if r.err == nil {
				v.Set(p)
			}
		},
	}, nil
}
