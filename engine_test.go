package bser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsupportedTypes(t *testing.T) {
	t.Run("Chan", func(t *testing.T) {
		_, err := Size(make(chan int))
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("Func", func(t *testing.T) {
		_, err := Size(func() {})
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("Interface", func(t *testing.T) {
		_, err := Size[any](42)
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("Uintptr", func(t *testing.T) {
		_, err := Size(uintptr(1))
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("NestedRejection", func(t *testing.T) {
		// A composite is only classifiable if its components are; the
		// rejection names the offending path.
		_, err := Size(map[string]chan int{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("UnexportedField", func(t *testing.T) {
		type leaky struct {
			Visible uint8
			hidden  uint8
		}
		_, err := Size(leaky{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedType)
		assert.Contains(t, err.Error(), "hidden")
	})

	t.Run("RejectedBeforeWriting", func(t *testing.T) {
		// Classification failures never touch the cursor.
		w := NewWriteCursor(make([]byte, 16))
		err := Write(w, make(chan int))
		assert.ErrorIs(t, err, ErrUnsupportedType)
		assert.Zero(t, w.Len())
		assert.NoError(t, w.Err())
	})
}

type listNode struct {
	Value int32
	Next  *listNode
}

func TestRecursiveType(t *testing.T) {
	x := &listNode{Value: 1, Next: &listNode{Value: 2, Next: &listNode{Value: 3}}}

	size, err := Size(x)
	require.NoError(t, err)
	// Three present nodes of (flag + value) plus a trailing nil flag.
	assert.Equal(t, 3*(1+4)+1, size)

	data, err := Marshal(x)
	require.NoError(t, err)
	y, err := Unmarshal[*listNode](data)
	require.NoError(t, err)
	assert.Equal(t, x, y)
}

func TestEngineCacheConcurrency(t *testing.T) {
	type payload struct {
		ID   uint32
		Data [4]byte
	}
	expected := 8

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			size, err := Size(payload{ID: 2})
			assert.NoError(t, err)
			assert.Equal(t, expected, size)
		}()
	}
	wg.Wait()
}

func TestPlatformIntsTravelAs8Bytes(t *testing.T) {
	size, err := Size(int(-1))
	require.NoError(t, err)
	assert.Equal(t, 8, size)

	data, err := Marshal(int(-123456789))
	require.NoError(t, err)
	y, err := Unmarshal[int](data)
	require.NoError(t, err)
	assert.Equal(t, -123456789, y)

	data, err = Marshal(uint(7))
	require.NoError(t, err)
	require.Len(t, data, 8)
}

func TestComplexRoundTrip(t *testing.T) {
	t.Run("Complex64", func(t *testing.T) {
		x := complex(float32(1.5), float32(-2.5))
		size, err := Size(x)
		require.NoError(t, err)
		assert.Equal(t, 8, size)

		data, err := Marshal(x)
		require.NoError(t, err)
		y, err := Unmarshal[complex64](data)
		require.NoError(t, err)
		assert.Equal(t, x, y)
	})

	t.Run("Complex128", func(t *testing.T) {
		x := complex(3.25, -0.125)
		size, err := Size(x)
		require.NoError(t, err)
		assert.Equal(t, 16, size)

		data, err := Marshal(x)
		require.NoError(t, err)
		y, err := Unmarshal[complex128](data)
		require.NoError(t, err)
		assert.Equal(t, x, y)
	})
}
