package bser

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- WriteCursor Test Suite ---

type WriteCursorTestSuite struct {
	suite.Suite
	buf []byte
	w   *WriteCursor
}

// SetupTest runs before each test in the suite, ensuring a clean state.
func (s *WriteCursorTestSuite) SetupTest() {
	s.buf = make([]byte, 64)
	s.w = NewWriteCursor(s.buf)
}

func (s *WriteCursorTestSuite) TestBasicWrites() {
	s.w.WriteUint8(0xAA)
	s.w.WriteUint16(0xBBCC)
	s.w.WriteUint32(0xDDEEFF00)
	s.w.WriteUint64(0x0102030405060708)
	s.w.WriteBool(true)
	s.w.WriteBytes([]byte{5, 6, 7})

	s.Require().NoError(s.w.Err())
	s.Assert().Equal(1+2+4+8+1+3, s.w.Len())

	expected := []byte{
		0xAA,       // WriteUint8
		0xCC, 0xBB, // WriteUint16 (little endian)
		0x00, 0xFF, 0xEE, 0xDD, // WriteUint32 (little endian)
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, // WriteUint64 (little endian)
		1,       // WriteBool
		5, 6, 7, // WriteBytes
	}
	s.Assert().Equal(expected, s.w.Bytes())
}

func (s *WriteCursorTestSuite) TestErrorHandling() {
	s.T().Run("ShortBufferError", func(t *testing.T) {
		w := NewWriteCursor(make([]byte, 5))

		w.WriteUint32(0x11223344) // 4 bytes, OK.
		w.WriteUint32(0xAABBCCDD) // only 1 byte left, fails.

		require.Error(t, w.Err())
		assert.ErrorIs(t, w.Err(), io.ErrShortWrite)
	})

	s.T().Run("WriteAfterErrorIsNoOp", func(t *testing.T) {
		buf := make([]byte, 5)
		w := NewWriteCursor(buf)

		w.WriteUint32(0x11223344)
		w.WriteUint32(0xAABBCCDD) // latches the error
		firstErr := w.Err()
		require.Error(t, firstErr)

		w.WriteUint8(0xFF) // no-op
		assert.Equal(t, firstErr, w.Err(), "the latched error should not change")

		// The failed write is all-or-nothing: the buffer holds only the
		// first value and the final 0xFF was never written.
		assert.Equal(t, []byte{0x44, 0x33, 0x22, 0x11, 0}, buf)
		assert.Equal(t, 4, w.Len())
	})
}

func (s *WriteCursorTestSuite) TestFloats() {
	s.w.WriteFloat64(1.5)
	s.Require().NoError(s.w.Err())
	// 1.5 == 0x3FF8000000000000
	s.Assert().Equal([]byte{0, 0, 0, 0, 0, 0, 0xF8, 0x3F}, s.w.Bytes())
}

func (s *WriteCursorTestSuite) TestReset() {
	s.w.WriteUint64(1)
	s.w.Reset()
	s.Assert().Zero(s.w.Len())
	s.Assert().Equal(len(s.buf), s.w.Available())
}

// TestWriteCursor runs the WriteCursorTestSuite.
func TestWriteCursor(t *testing.T) {
	suite.Run(t, new(WriteCursorTestSuite))
}

// --- ReadCursor Test Suite ---

type ReadCursorTestSuite struct {
	suite.Suite
}

func (s *ReadCursorTestSuite) TestSuccessfulReads() {
	data := []byte{
		0xAA,       // uint8
		0xCC, 0xBB, // uint16
		0x00, 0xFF, 0xEE, 0xDD, // uint32
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, // uint64
		0x11, 0x22, 0x33, // raw bytes
	}
	r := NewReadCursor(data)

	var v8 uint8
	var v16 uint16
	var v32 uint32
	var v64 uint64
	r.ReadUint8(&v8)
	r.ReadUint16(&v16)
	r.ReadUint32(&v32)
	r.ReadUint64(&v64)
	read := r.ReadBytes(3)

	s.Require().NoError(r.Err())
	s.Assert().Equal(uint8(0xAA), v8)
	s.Assert().Equal(uint16(0xBBCC), v16)
	s.Assert().Equal(uint32(0xDDEEFF00), v32)
	s.Assert().Equal(uint64(0x0102030405060708), v64)
	s.Assert().Equal([]byte{0x11, 0x22, 0x33}, read)
	s.Assert().Zero(r.Available())

	// A plain Read at the end is a clean EOF, not a latched error.
	_, err := r.Read(make([]byte, 1))
	s.Assert().ErrorIs(err, io.EOF)
	s.Assert().NoError(r.Err())
}

func (s *ReadCursorTestSuite) TestErrorHandling() {
	s.T().Run("ReadPastEnd", func(t *testing.T) {
		r := NewReadCursor([]byte{0x01, 0x02, 0x03})
		var v32 uint32
		r.ReadUint32(&v32) // 4 bytes from a 3-byte source.

		require.Error(t, r.Err())
		assert.ErrorIs(t, r.Err(), ErrTruncatedData)
		assert.Zero(t, v32, "destination must not hold a partial value")
	})

	s.T().Run("ReadAfterErrorIsNoOp", func(t *testing.T) {
		r := NewReadCursor([]byte{0x01, 0x02, 0x03})
		var v32 uint32
		var v8 uint8

		r.ReadUint32(&v32) // latches the error
		firstErr := r.Err()
		require.Error(t, firstErr)

		r.ReadUint8(&v8)
		assert.Equal(t, firstErr, r.Err(), "the latched error should not change")
		assert.Zero(t, v8, "destination variable should be unchanged after an error")
	})
}

func (s *ReadCursorTestSuite) TestSeekBehavior() {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	r := NewReadCursor(data)

	pos, err := r.Seek(3, io.SeekStart)
	s.Require().NoError(err)
	s.Assert().EqualValues(3, pos)

	b := r.ReadBytes(2)
	s.Require().NoError(r.Err())
	s.Assert().Equal([]byte{4, 5}, b)

	pos, err = r.Seek(1, io.SeekCurrent)
	s.Require().NoError(err)
	s.Assert().EqualValues(6, pos)

	pos, err = r.Seek(-2, io.SeekEnd)
	s.Require().NoError(err)
	s.Assert().EqualValues(6, pos)

	_, err = r.Seek(-1, io.SeekStart)
	s.Assert().ErrorIs(err, ErrInvalidSeek)

	_, err = r.Seek(0, 42)
	s.Assert().ErrorIs(err, ErrInvalidWhence)
}

// TestReadCursor runs the ReadCursorTestSuite.
func TestReadCursor(t *testing.T) {
	suite.Run(t, new(ReadCursorTestSuite))
}
