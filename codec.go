// Package bser is a generic binary (de)serialization library.
//
// Given a value built from arithmetic types, strings, structs, fixed
// arrays, slices, maps, pointers (optionals), tagged unions, complex
// numbers and time types, it computes the exact byte length of the
// value's encoding, writes that encoding into a caller-supplied buffer
// through a [WriteCursor], and reconstructs an equivalent value from a
// [ReadCursor] over such a buffer. The three operations agree byte for
// byte: Write advances the cursor by exactly what Size reported, and
// Read consumes exactly the same span.
//
// The wire format is little-endian throughout, length-prefixed for
// variable-length sequences, and carries no schema or version
// information; both ends must agree on the Go type out of band.
package bser

// Sizer is an interface for types that can report their binary size.
// This is useful for pre-allocating buffers before encoding.
type Sizer interface {
	// Size returns the size of the type in bytes when binary encoded.
	Size() int
}

// Encoder is implemented by types that can write their own encoding
// to a WriteCursor.
type Encoder interface {
	// Encode writes the value's encoding, advancing the cursor by
	// exactly Size() bytes.
	Encode(w *WriteCursor) error
}

// Decoder is implemented by types that can reconstruct themselves
// from a ReadCursor.
type Decoder interface {
	// Decode reads the value's encoding, advancing the cursor past it.
	Decode(r *ReadCursor) error
}

// Codec aggregates the three-method contract for self-describing types.
// A type whose pointer implements Codec defines its own wire layout and
// bypasses the generic classification entirely: Size, Write and Read
// defer to these methods and do not inspect the type further.
type Codec interface {
	Sizer
	Encoder
	Decoder
}
