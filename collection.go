package bser

import (
	"fmt"
	"math"
	"reflect"
	"sync"
)

// Variable-length sequences share one frame: an 8-byte unsigned length
// in wire order, then the encoded elements. Strings and byte slices copy
// their payload verbatim, boolean slices bit-pack it, everything else
// recurses per element.

// readLength reads the 8-byte length prefix of a sequence whose
// elements each encode to at least elemMin bytes. A length whose
// payload cannot fit in the remaining buffer is reported as truncation
// before any element allocation happens, so a corrupt prefix cannot
// force a huge up-front allocation. Zero-size elements occupy no
// payload at all, so no length can overrun the buffer and the payload
// bound does not apply to them.
func readLength(r *ReadCursor, elemMin int) (int, bool) {
	var n uint64
	r.ReadUint64(&n)
	if r.err != nil {
		return 0, false
	}
	if n > math.MaxInt || elemMin > 0 && n > uint64(r.Available())/uint64(elemMin) {
		r.setError(ErrTruncatedData)
		return 0, false
	}
	return int(n), true
}

// stringEngine encodes a string as a length-prefixed byte sequence.
func stringEngine() *engine {
	return &engine{
		size: func(v reflect.Value) int {
			return lenPrefixSize + v.Len()
		},
		write: func(w *WriteCursor, v reflect.Value) {
			s := v.String()
			w.WriteUint64(uint64(len(s)))
			w.WriteBytes([]byte(s))
		},
		read: func(r *ReadCursor, v reflect.Value) {
			var n uint64
			r.ReadUint64(&n)
			if r.err != nil {
				return
			}
			b := r.next(int(n))
			if b != nil {
				v.SetString(string(b))
			}
		},
	}
}

// sliceEngine encodes a slice as a length-prefixed element sequence.
// []bool is bit-packed and []byte is copied verbatim; both produce the
// same frame a per-element encoding would, just faster. A nil slice
// encodes as length 0 and decodes to an empty, non-nil slice.
func sliceEngine(t reflect.Type, seen map[reflect.Type]*engine) (*engine, error) {
	switch t.Elem().Kind() {
	case reflect.Bool:
		return packedBoolEngine(t), nil
	case reflect.Uint8:
		return byteSliceEngine(t), nil
	}

	elem, err := buildEngine(t.Elem(), seen)
	if err != nil {
		return nil, fmt.Errorf("%s element: %w", t, err)
	}
	// The element engine may still be under construction for recursive
	// types, so the minimum element size is taken lazily from the zero
	// value on first decode.
	et := t.Elem()
	elemMin := sync.OnceValue(func() int { return elem.size(reflect.Zero(et)) })

	return &engine{
		size: func(v reflect.Value) int {
			total := lenPrefixSize
			for i := range v.Len() {
				total += elem.size(v.Index(i))
			}
			return total
		},
		write: func(w *WriteCursor, v reflect.Value) {
			n := v.Len()
			w.WriteUint64(uint64(n))
			for i := range n {
				elem.write(w, v.Index(i))
			}
		},
		read: func(r *ReadCursor, v reflect.Value) {
			n, ok := readLength(r, elemMin())
			if !ok {
				return
			}
			// Elements decode into a freshly made slice which becomes
			// the value itself; the staging area and the final container
			// are one allocation.
			s := reflect.MakeSlice(t, n, n)
			for i := range n {
				elem.read(r, s.Index(i))
				if r.err != nil {
					return
				}
			}
			v.Set(s)
		},
	}, nil
}

// byteSliceEngine is the verbatim fast path for []byte and named types
// with a uint8 element.
func byteSliceEngine(t reflect.Type) *engine {
	return &engine{
		size: func(v reflect.Value) int {
			return lenPrefixSize + v.Len()
		},
		write: func(w *WriteCursor, v reflect.Value) {
			w.WriteUint64(uint64(v.Len()))
			w.WriteBytes(v.Bytes())
		},
		read: func(r *ReadCursor, v reflect.Value) {
			n, ok := readLength(r, 1)
			if !ok {
				return
			}
			b := r.next(n)
			if b == nil {
				return
			}
			s := reflect.MakeSlice(t, n, n)
			copy(s.Bytes(), b)
			v.Set(s)
		},
	}
}

// packedBoolEngine bit-packs boolean sequences 8 per byte: element i
// lands in bit i&7 of byte i>>3, so the first element occupies the
// lowest bit of the first byte. Unused bits of the final partial byte
// are zero-filled, making the writer deterministic even though those
// bits are don't-care on the wire.
func packedBoolEngine(t reflect.Type) *engine {
	return &engine{
		size: func(v reflect.Value) int {
			return lenPrefixSize + ceilDiv(v.Len(), 8)
		},
		write: func(w *WriteCursor, v reflect.Value) {
			n := v.Len()
			w.WriteUint64(uint64(n))
			if n == 0 {
				return
			}
			packed := make([]byte, ceilDiv(n, 8))
			for i := range n {
				if v.Index(i).Bool() {
					packed[i>>3] |= 1 << (i & 7)
				}
			}
			w.WriteBytes(packed)
		},
		read: func(r *ReadCursor, v reflect.Value) {
			var n64 uint64
			r.ReadUint64(&n64)
			if r.err != nil {
				return
			}
			// n booleans occupy ceil(n/8) bytes, so the length may
			// legitimately exceed the remaining byte count; bound it by
			// the packed payload instead.
			if n64 > 8*uint64(r.Available()) {
				r.setError(ErrTruncatedData)
				return
			}
			n := int(n64)
			var packed []byte
			if n > 0 {
				packed = r.next(ceilDiv(n, 8))
				if packed == nil {
					return
				}
			}
			s := reflect.MakeSlice(t, n, n)
			for i := range n {
				s.Index(i).SetBool(packed[i>>3]&(1<<(i&7)) != 0)
			}
			v.Set(s)
		},
	}
}

// mapEngine encodes a map as a length-prefixed sequence of (key, value)
// pairs; a set is simply a map with a zero-size value type. Decoding
// pre-sizes the map with the decoded length and inserts by key, so
// iteration-order differences between producers never matter. A nil map
// encodes as length 0 and decodes to an empty, non-nil map.
func mapEngine(t reflect.Type, seen map[reflect.Type]*engine) (*engine, error) {
	key, err := buildEngine(t.Key(), seen)
	if err != nil {
		return nil, fmt.Errorf("%s key: %w", t, err)
	}
	val, err := buildEngine(t.Elem(), seen)
	if err != nil {
		return nil, fmt.Errorf("%s value: %w", t, err)
	}
	kt, vt := t.Key(), t.Elem()
	entryMin := sync.OnceValue(func() int {
		return key.size(reflect.Zero(kt)) + val.size(reflect.Zero(vt))
	})

	return &engine{
		size: func(v reflect.Value) int {
			total := lenPrefixSize
			iter := v.MapRange()
			for iter.Next() {
				total += key.size(iter.Key())
				total += val.size(iter.Value())
			}
			return total
		},
		write: func(w *WriteCursor, v reflect.Value) {
			w.WriteUint64(uint64(v.Len()))
			iter := v.MapRange()
			for iter.Next() {
				key.write(w, iter.Key())
				val.write(w, iter.Value())
			}
		},
		read: func(r *ReadCursor, v reflect.Value) {
			n, ok := readLength(r, entryMin())
			if !ok {
				return
			}
			hint := n
			if entryMin() == 0 && hint > 1 {
				// Zero-size entries are indistinguishable, so the map
				// holds at most one of them.
				hint = 1
			}
			m := reflect.MakeMapWithSize(t, hint)
			k := reflect.New(kt).Elem()
			e := reflect.New(vt).Elem()
			for range n {
				k.SetZero()
				e.SetZero()
				key.read(r, k)
				val.read(r, e)
				if r.err != nil {
					return
				}
				m.SetMapIndex(k, e)
			}
			v.Set(m)
		},
	}, nil
}
