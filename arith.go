package bser

import (
	"reflect"
	"time"
)

// kindWidth is the wire width of each arithmetic kind. Platform-width
// int and uint always travel as 8 bytes so the encoding is independent
// of the producing host.
func kindWidth(k reflect.Kind) int {
	switch k {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4
	default:
		return 8
	}
}

// arithmeticEngine handles the fixed-width numeric kinds. Every value
// passes through the wire byte order on both sides, which is a no-op on
// little-endian hosts.
func arithmeticEngine(k reflect.Kind) *engine {
	width := kindWidth(k)
	e := &engine{
		size: func(reflect.Value) int { return width },
	}

	switch k {
	case reflect.Bool:
		e.write = func(w *WriteCursor, v reflect.Value) { w.WriteBool(v.Bool()) }
		e.read = func(r *ReadCursor, v reflect.Value) {
			var b bool
			r.ReadBool(&b)
			v.SetBool(b)
		}

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		e.write = func(w *WriteCursor, v reflect.Value) { writeUintN(w, uint64(v.Int()), width) }
		e.read = func(r *ReadCursor, v reflect.Value) {
			if u, ok := readUintN(r, width); ok {
				v.SetInt(signExtend(u, width))
			}
		}

	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		e.write = func(w *WriteCursor, v reflect.Value) { writeUintN(w, v.Uint(), width) }
		e.read = func(r *ReadCursor, v reflect.Value) {
			if u, ok := readUintN(r, width); ok {
				v.SetUint(u)
			}
		}

	case reflect.Float32:
		e.write = func(w *WriteCursor, v reflect.Value) { w.WriteFloat32(float32(v.Float())) }
		e.read = func(r *ReadCursor, v reflect.Value) {
			var f float32
			r.ReadFloat32(&f)
			v.SetFloat(float64(f))
		}

	case reflect.Float64:
		e.write = func(w *WriteCursor, v reflect.Value) { w.WriteFloat64(v.Float()) }
		e.read = func(r *ReadCursor, v reflect.Value) {
			var f float64
			r.ReadFloat64(&f)
			v.SetFloat(f)
		}
	}
	return e
}

// writeUintN writes the low width bytes of u in wire order. A single
// width-driven routine replaces one write path per integer width.
func writeUintN(w *WriteCursor, u uint64, width int) {
	switch width {
	case 1:
		w.WriteUint8(uint8(u))
	case 2:
		w.WriteUint16(uint16(u))
	case 4:
		w.WriteUint32(uint32(u))
	default:
		w.WriteUint64(u)
	}
}

// readUintN reads width bytes in wire order into a zero-extended uint64.
func readUintN(r *ReadCursor, width int) (uint64, bool) {
	switch width {
	case 1:
		var u uint8
		r.ReadUint8(&u)
		return uint64(u), r.err == nil
	case 2:
		var u uint16
		r.ReadUint16(&u)
		return uint64(u), r.err == nil
	case 4:
		var u uint32
		r.ReadUint32(&u)
		return uint64(u), r.err == nil
	default:
		var u uint64
		r.ReadUint64(&u)
		return u, r.err == nil
	}
}

// signExtend reinterprets the low width bytes of u as a signed value.
func signExtend(u uint64, width int) int64 {
	shift := 64 - 8*width
	return int64(u<<shift) >> shift
}

// complexEngine writes the real component then the imaginary component,
// each as a float of the matching width.
func complexEngine(k reflect.Kind) *engine {
	if k == reflect.Complex64 {
		return &engine{
			size: func(reflect.Value) int { return 8 },
			write: func(w *WriteCursor, v reflect.Value) {
				c := v.Complex()
				w.WriteFloat32(float32(real(c)))
				w.WriteFloat32(float32(imag(c)))
			},
			read: func(r *ReadCursor, v reflect.Value) {
				var re, im float32
				r.ReadFloat32(&re)
				r.ReadFloat32(&im)
				v.SetComplex(complex(float64(re), float64(im)))
			},
		}
	}
	return &engine{
		size: func(reflect.Value) int { return 16 },
		write: func(w *WriteCursor, v reflect.Value) {
			c := v.Complex()
			w.WriteFloat64(real(c))
			w.WriteFloat64(imag(c))
		},
		read: func(r *ReadCursor, v reflect.Value) {
			var re, im float64
			r.ReadFloat64(&re)
			r.ReadFloat64(&im)
			v.SetComplex(complex(re, im))
		},
	}
}

// durationEngine encodes the int64 tick count of a time.Duration.
func durationEngine() *engine {
	return &engine{
		size: func(reflect.Value) int { return 8 },
		write: func(w *WriteCursor, v reflect.Value) {
			w.WriteInt64(v.Int())
		},
		read: func(r *ReadCursor, v reflect.Value) {
			var n int64
			r.ReadInt64(&n)
			v.SetInt(n)
		},
	}
}

// timeEngine encodes a time.Time as nanoseconds since the Unix epoch.
// The location and the monotonic clock reading are not on the wire;
// decoded values are in UTC and compare equal to the original with
// time.Time.Equal.
func timeEngine() *engine {
	return &engine{
		size: func(reflect.Value) int { return 8 },
		write: func(w *WriteCursor, v reflect.Value) {
			w.WriteInt64(v.Interface().(time.Time).UnixNano())
		},
		read: func(r *ReadCursor, v reflect.Value) {
			var n int64
			r.ReadInt64(&n)
			if r.err == nil {
				v.Set(reflect.ValueOf(time.Unix(0, n).UTC()))
			}
		},
	}
}
