package bser

import (
	"fmt"
	"reflect"
)

// None is the empty-marker alternative for variants. A variant declaring
// None among its alternatives can hold "nothing" as a first-class state,
// encoded as an ordinal with no payload.
type None struct{}

// union is the shared state of every VariantN: the index of the active
// alternative and its value. The zero union selects alternative 0 in its
// zero state, mirroring how a default-constructed tagged union holds the
// first alternative.
type union struct {
	index int
	value any
}

// variantState is the marker interface the classifier uses to recognize
// variant types and the engine uses to manipulate them.
type variantState interface {
	alternatives() []reflect.Type
	state() (int, any)
	setState(index int, value any)
}

func (u *union) state() (int, any) { return u.index, u.value }

func (u *union) setState(index int, value any) { u.index, u.value = index, value }

// Index returns the ordinal of the active alternative.
func (u *union) Index() int { return u.index }

// normalValue resolves the zero state: a variant that has never been
// selected holds the zero value of alternative 0, so the predicates on
// it agree with those on its decoded round trip.
func (u union) normalValue(alts []reflect.Type) any {
	if u.value == nil {
		return reflect.Zero(alts[u.index]).Interface()
	}
	return u.value
}

// choose validates a selection against the declared alternative list.
func (u *union) choose(alts []reflect.Type, index int, value any) error {
	if index < 0 || index >= len(alts) {
		return fmt.Errorf("%w: index %d of %d alternatives", ErrInvalidOrdinal, index, len(alts))
	}
	if value == nil {
		value = reflect.Zero(alts[index]).Interface()
	}
	if vt := reflect.TypeOf(value); vt != alts[index] {
		return fmt.Errorf("%w: alternative %d is %s, got %s", ErrVariantMismatch, index, alts[index], vt)
	}
	u.index, u.value = index, value
	return nil
}

// Variant2 holds exactly one of two alternative types at a time.
type Variant2[A, B any] struct{ union }

func (Variant2[A, B]) alternatives() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()}
}

// Select makes alternative index the active one, holding value. A nil
// value selects the alternative's zero value.
func (v *Variant2[A, B]) Select(index int, value any) error {
	return v.choose(v.alternatives(), index, value)
}

// Value returns the active alternative's value. The zero variant holds
// the zero value of alternative 0.
func (v Variant2[A, B]) Value() any { return v.normalValue(v.alternatives()) }

// IsNone reports whether the active alternative is the None marker.
func (v Variant2[A, B]) IsNone() bool {
	_, ok := v.Value().(None)
	return ok
}

// Variant3 holds exactly one of three alternative types at a time.
type Variant3[A, B, C any] struct{ union }

func (Variant3[A, B, C]) alternatives() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()}
}

// Select makes alternative index the active one, holding value. A nil
// value selects the alternative's zero value.
func (v *Variant3[A, B, C]) Select(index int, value any) error {
	return v.choose(v.alternatives(), index, value)
}

// Value returns the active alternative's value. The zero variant holds
// the zero value of alternative 0.
func (v Variant3[A, B, C]) Value() any { return v.normalValue(v.alternatives()) }

// IsNone reports whether the active alternative is the None marker.
func (v Variant3[A, B, C]) IsNone() bool {
	_, ok := v.Value().(None)
	return ok
}

// Variant4 holds exactly one of four alternative types at a time.
type Variant4[A, B, C, D any] struct{ union }

func (Variant4[A, B, C, D]) alternatives() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D]()}
}

// Select makes alternative index the active one, holding value. A nil
// value selects the alternative's zero value.
func (v *Variant4[A, B, C, D]) Select(index int, value any) error {
	return v.choose(v.alternatives(), index, value)
}

// Value returns the active alternative's value. The zero variant holds
// the zero value of alternative 0.
func (v Variant4[A, B, C, D]) Value() any { return v.normalValue(v.alternatives()) }

// IsNone reports whether the active alternative is the None marker.
func (v Variant4[A, B, C, D]) IsNone() bool {
	_, ok := v.Value().(None)
	return ok
}

// variantEngine encodes a tagged union as an 8-byte unsigned ordinal
// selecting the active alternative by position, followed by that
// alternative's payload. The None alternative contributes no payload.
//
// The writer always emits the positional ordinal, None included. The
// reader accepts any ordinal at or beyond the alternative count, notably
// the reserved all-ones sentinel, as None when a None alternative is
// declared; without one such an ordinal is ErrInvalidOrdinal.
func variantEngine(t reflect.Type, seen map[reflect.Type]*engine) (*engine, error) {
	alts := reflect.New(t).Interface().(variantState).alternatives()
	noneType := reflect.TypeFor[None]()

	altEngines := make([]*engine, len(alts))
	noneIndex := -1
	for i, at := range alts {
		if at == noneType {
			if noneIndex < 0 {
				noneIndex = i
			}
			continue
		}
		ae, err := buildEngine(at, seen)
		if err != nil {
			return nil, fmt.Errorf("%s alternative %d: %w", t, i, err)
		}
		altEngines[i] = ae
	}

	// state and setState live on the pointer receiver; values that are
	// not addressable are copied first.
	asState := func(v reflect.Value) variantState {
		if v.CanAddr() {
			return v.Addr().Interface().(variantState)
		}
		p := reflect.New(t)
		p.Elem().Set(v)
		return p.Interface().(variantState)
	}

	active := func(v reflect.Value) (int, reflect.Value) {
		idx, val := asState(v).state()
		if val == nil {
			// Zero variant: alternative 0 in its zero state.
			return idx, reflect.Zero(alts[idx])
		}
		return idx, reflect.ValueOf(val)
	}

	return &engine{
		size: func(v reflect.Value) int {
			idx, val := active(v)
			if altEngines[idx] == nil {
				return lenPrefixSize
			}
			return lenPrefixSize + altEngines[idx].size(val)
		},
		write: func(w *WriteCursor, v reflect.Value) {
			idx, val := active(v)
			w.WriteUint64(uint64(idx))
			if altEngines[idx] != nil {
				altEngines[idx].write(w, val)
			}
		},
		read: func(r *ReadCursor, v reflect.Value) {
			var ordinal uint64
			r.ReadUint64(&ordinal)
			if r.err != nil {
				return
			}
			if ordinal >= uint64(len(alts)) {
				if noneIndex < 0 {
					r.setError(fmt.Errorf("%w: ordinal %d of %d alternatives", ErrInvalidOrdinal, ordinal, len(alts)))
					return
				}
				asState(v).setState(noneIndex, None{})
				return
			}
			idx := int(ordinal)
			if altEngines[idx] == nil {
				asState(v).setState(idx, None{})
				return
			}
			p := reflect.New(alts[idx])
			altEngines[idx].read(r, p.Elem())
			if r.err == nil {
				asState(v).setState(idx, p.Elem().Interface())
			}
		},
	}, nil
}
