// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pbf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Varint_RoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		input uint64
	}{
		{"Zero", 0},
		{"OneByte", 127},
		{"TwoBytes", 128},
		{"Large", 1 << 40},
		{"Max", ^uint64(0)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWriter()
			w.Varint(tc.input)
			r := NewReader(w.Bytes())
			got, err := r.Varint()
			require.NoError(t, err)
			assert.Equal(t, tc.input, got)
			assert.True(t, r.Done())
		})
	}
}

func TestWriter_Zigzag_RoundTrip(t *testing.T) {
	testCases := []int64{0, 1, -1, 2, -2, 1 << 30, -(1 << 30)}
	for _, v := range testCases {
		w := NewWriter()
		w.Zigzag(v)
		r := NewReader(w.Bytes())
		got, err := r.Zigzag()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestWriter_Zigzag32_RoundTrip(t *testing.T) {
	testCases := []int32{0, 1, -1, 3, -3, -5, 6}
	for _, v := range testCases {
		w := NewWriter()
		w.Zigzag32(v)
		r := NewReader(w.Bytes())
		got, err := r.Zigzag32()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestReader_Next_FieldAndWireType(t *testing.T) {
	w := NewWriter()
	w.Tag(1, Bytes)
	w.LengthDelimited([]byte("test"))
	w.Tag(15, Varint)
	w.Varint(2)

	r := NewReader(w.Bytes())

	field, wt, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), field)
	assert.Equal(t, Bytes, wt)
	payload, err := r.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "test", string(payload))

	field, wt, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, uint32(15), field)
	assert.Equal(t, Varint, wt)
	v, err := r.Varint()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)

	assert.True(t, r.Done())
}

func TestReader_Fixed32Fixed64_RoundTrip(t *testing.T) {
	w := NewWriter()
	w.Fixed32([]byte{1, 2, 3, 4})
	w.Fixed64([]byte{1, 2, 3, 4, 5, 6, 7, 8})

	r := NewReader(w.Bytes())
	got32, err := r.Fixed32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x04030201), got32)

	got64, err := r.Fixed64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0807060504030201), got64)
}

func TestReader_Bytes_ZeroCopy(t *testing.T) {
	w := NewWriter()
	w.LengthDelimited([]byte("hello"))
	buf := w.Bytes()

	r := NewReader(buf)
	b, err := r.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
	// The returned slice must alias the source, not a copy.
	assert.Same(t, &buf[len(buf)-len(b)], &b[0])
}

func TestReader_Skip(t *testing.T) {
	w := NewWriter()
	w.Tag(1, Varint)
	w.Varint(12345)
	w.Tag(2, Bytes)
	w.LengthDelimited([]byte("skip me"))
	w.Tag(3, Varint)
	w.Varint(7)

	r := NewReader(w.Bytes())
	_, wt, err := r.Next()
	require.NoError(t, err)
	require.NoError(t, r.Skip(wt))

	_, wt, err = r.Next()
	require.NoError(t, err)
	require.NoError(t, r.Skip(wt))

	field, wt, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), field)
	v, err := r.Varint()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v)
}

func TestReader_TruncatedVarint(t *testing.T) {
	r := NewReader([]byte{0x80, 0x80})
	_, err := r.Varint()
	assert.Error(t, err)
}

func TestReader_LengthExceedsRemaining(t *testing.T) {
	w := NewWriter()
	w.Varint(100)
	r := NewReader(w.Bytes())
	_, err := r.Bytes()
	assert.Error(t, err)
}

func TestWriter_Field(t *testing.T) {
	w := NewWriter()
	w.Field(4, []byte{9, 9})

	r := NewReader(w.Bytes())
	field, wt, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), field)
	assert.Equal(t, Bytes, wt)
	b, err := r.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 9}, b)
}
