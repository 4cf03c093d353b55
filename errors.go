package bser

import "errors"

var (
	// ErrUnsupportedType indicates that a type failed every classification
	// branch. It is reported before any byte is read or written, so an
	// unsupported type can never reach the runtime codec.
	ErrUnsupportedType = errors.New("bser: unsupported type")

	// ErrInvalidOrdinal indicates that a decoded variant ordinal does not
	// correspond to any declared alternative and no None alternative
	// exists to absorb it.
	ErrInvalidOrdinal = errors.New("bser: variant ordinal out of range")

	// ErrVariantMismatch indicates a variant was selected with a value
	// whose type is not the declared alternative at that index.
	ErrVariantMismatch = errors.New("bser: value does not match variant alternative")

	// ErrSizeMismatch indicates a self-describing encoder wrote a
	// different byte count than its reported size.
	ErrSizeMismatch = errors.New("bser: encoder wrote a different byte count than its reported size")

	// ErrTruncatedData indicates that a read operation could not complete
	// because the buffer ended before all expected bytes were read.
	ErrTruncatedData = errors.New("bser: truncated data")

	// ErrTrailingData is returned by Unmarshal when non-zero bytes are
	// found after the expected end of the data structure, indicating a
	// potential parsing error or malformed data.
	ErrTrailingData = errors.New("bser: non-zero trailing data found after decoding")

	// ErrInvalidSeek indicates a seek was attempted to a position outside
	// the cursor's buffer.
	ErrInvalidSeek = errors.New("bser: seek to an invalid position")

	// ErrInvalidWhence indicates that an invalid 'whence' parameter was
	// provided to a Seek operation.
	ErrInvalidWhence = errors.New("bser: invalid whence for seek")
)
