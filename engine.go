package bser

import (
	"fmt"
	"reflect"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
)

// engine is the compiled codec for one reflect.Type: a size/write/read
// function triple sharing a single layout. size is pure; write advances
// the cursor by exactly size(v) bytes; read consumes the same span and
// constructs into an addressable value. Runtime failures latch onto the
// cursor, so engine functions themselves never return errors.
type engine struct {
	size  func(v reflect.Value) int
	write func(w *WriteCursor, v reflect.Value)
	read  func(r *ReadCursor, v reflect.Value)
}

// engineCache avoids re-deriving an engine on every call. Classification
// of a type is deterministic, so cached engines are immutable and safe
// to share across goroutines.
var engineCache = xsync.NewMap[reflect.Type, *engine]()

var (
	codecType    = reflect.TypeFor[Codec]()
	variantType  = reflect.TypeFor[variantState]()
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
)

// engineOf returns the engine for t, deriving and caching it on first
// use. An unsupported type is reported here, before any byte moves.
func engineOf(t reflect.Type) (*engine, error) {
	if e, ok := engineCache.Load(t); ok {
		return e, nil
	}
	seen := make(map[reflect.Type]*engine)
	e, err := buildEngine(t, seen)
	if err != nil {
		return nil, err
	}
	for st, se := range seen {
		engineCache.Store(st, se)
	}
	return e, nil
}

// buildEngine derives the engine for t. seen holds engines still under
// construction so recursive types (for example a struct holding a
// pointer to itself) resolve to the in-progress engine instead of
// recursing forever.
func buildEngine(t reflect.Type, seen map[reflect.Type]*engine) (*engine, error) {
	if e, ok := engineCache.Load(t); ok {
		return e, nil
	}
	if e, ok := seen[t]; ok {
		return e, nil
	}
	e := new(engine)
	seen[t] = e

	built, err := classify(t, seen)
	if err != nil {
		delete(seen, t)
		return nil, err
	}
	*e = *built
	return e, nil
}

// classify picks the codec branch for t. The branch order is the
// documented dispatch priority: the first matching branch wins, and a
// type matching none of them is rejected.
func classify(t reflect.Type, seen map[reflect.Type]*engine) (*engine, error) {
	// Self-describing types bypass classification entirely.
	if reflect.PointerTo(t).Implements(codecType) {
		return codecEngine(t), nil
	}

	switch t {
	case durationType:
		// Only the tick count crosses the wire; the nanosecond unit is
		// agreed out of band.
		return durationEngine(), nil
	case timeType:
		return timeEngine(), nil
	}

	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return arithmeticEngine(t.Kind()), nil

	case reflect.Complex64, reflect.Complex128:
		return complexEngine(t.Kind()), nil

	case reflect.String:
		return stringEngine(), nil

	case reflect.Pointer:
		return optionalEngine(t, seen)

	case reflect.Struct:
		if reflect.PointerTo(t).Implements(variantType) {
			return variantEngine(t, seen)
		}
		return structEngine(t, seen)

	case reflect.Array:
		return arrayEngine(t, seen)

	case reflect.Slice:
		return sliceEngine(t, seen)

	case reflect.Map:
		return mapEngine(t, seen)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

// codecEngine defers to the type's own Size/Encode/Decode methods.
func codecEngine(t reflect.Type) *engine {
	// Encode and Size may be declared on the value or pointer receiver;
	// calling through an addressable copy covers both.
	asCodec := func(v reflect.Value) Codec {
		if v.CanAddr() {
			return v.Addr().Interface().(Codec)
		}
		p := reflect.New(t)
		p.Elem().Set(v)
		return p.Interface().(Codec)
	}
	return &engine{
		size: func(v reflect.Value) int {
			return asCodec(v).Size()
		},
		write: func(w *WriteCursor, v reflect.Value) {
			w.setError(asCodec(v).Encode(w))
		},
		read: func(r *ReadCursor, v reflect.Value) {
			r.setError(v.Addr().Interface().(Codec).Decode(r))
		},
	}
}
