package bser

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/constraints"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
	// Order is the on-wire byte order. The wire format is defined as
	// little-endian regardless of the host; the conversion is symmetric
	// on write and read, so a little-endian host pays nothing for it.
	Order = LE
)

// lenPrefixSize is the width of the length prefix in front of every
// variable-length sequence, and of the variant ordinal.
const lenPrefixSize = 8

// ceilDiv returns n/d rounded up.
func ceilDiv[T constraints.Integer](n, d T) T { return (n + d - 1) / d }

// checkTrailing verifies that leftover bytes after a decode are all
// zero. Zero padding is tolerated; any non-zero byte means the buffer
// holds more structure than the target type, which is a caller bug or a
// malformed payload.
func checkTrailing(p []byte) error {
	for i, b := range p {
		if b != 0 {
			return fmt.Errorf("%w: found non-zero byte 0x%02x at offset %d", ErrTrailingData, b, i)
		}
	}
	return nil
}
