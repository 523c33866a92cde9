// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package pbf is the tag-length-value record cursor the rest of this
// module is built on: iteration of (field number, wire type, payload)
// triples over a byte slice, plus varint, zigzag-varint, fixed-size
// numeric, and length-delimited payload accessors, and a symmetric
// writer. It is a minimal, dependency-free stand-in for what a C++
// vector-tile decoder gets from protozero.
//
// Every accessor that returns a []byte aliases the Reader's source
// slice; the Reader never copies payload bytes.
package pbf

import (
	"github.com/gogama/vectortile/littleendian"
	"github.com/gogama/vectortile/mvterr"
)

// WireType is the low three bits of a field tag, identifying how the
// field's payload is encoded.
type WireType uint8

const (
	Varint  WireType = 0
	Fixed64 WireType = 1
	Bytes   WireType = 2
	Fixed32 WireType = 5
)

// Reader is a non-owning cursor over a byte slice containing a
// sequence of length-prefixed TLV records. The zero Reader is not
// usable; construct one with NewReader.
type Reader struct {
	buf []byte
	pos int
}

// NewReader returns a Reader over buf. buf is not copied; it must
// outlive the Reader and any byte slice the Reader returns.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len reports the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

// Done reports whether the cursor has consumed the entire buffer.
func (r *Reader) Done() bool {
	return r.pos >= len(r.buf)
}

// Next reads the next field tag, reporting its field number and wire
// type. Call one of the payload accessors, or Skip, to consume the
// field's payload before calling Next again.
func (r *Reader) Next() (field uint32, wireType WireType, err error) {
	tag, err := r.Varint()
	if err != nil {
		return 0, 0, err
	}
	if tag>>3 >= 1<<29 {
		return 0, 0, mvterr.Formatf("field number %d out of range", tag>>3)
	}
	return uint32(tag >> 3), WireType(tag & 0x7), nil
}

// Varint reads a single base-128 varint.
func (r *Reader) Varint() (uint64, error) {
	var result uint64
	var shift uint
	for {
		if r.pos >= len(r.buf) {
			return 0, mvterr.Formatf("truncated varint")
		}
		b := r.buf[r.pos]
		r.pos++
		if shift >= 64 {
			return 0, mvterr.Formatf("varint overflows 64 bits")
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// Zigzag reads a zigzag-encoded signed varint.
func (r *Reader) Zigzag() (int64, error) {
	u, err := r.Varint()
	if err != nil {
		return 0, err
	}
	return int64(u>>1) ^ -int64(u&1), nil
}

// Zigzag32 reads a zigzag-encoded signed varint known to fit in 32
// bits, as used by the geometry command stream's parameter integers.
func (r *Reader) Zigzag32() (int32, error) {
	v, err := r.Zigzag()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// Fixed32Bytes returns a zero-copy 4-byte view of the next fixed32
// field's payload.
func (r *Reader) Fixed32Bytes() ([]byte, error) {
	if r.Len() < 4 {
		return nil, mvterr.Formatf("truncated fixed32")
	}
	b := r.buf[r.pos : r.pos+4]
	r.pos += 4
	return b, nil
}

// Fixed32 reads the next fixed32 field's raw bits.
func (r *Reader) Fixed32() (uint32, error) {
	b, err := r.Fixed32Bytes()
	if err != nil {
		return 0, err
	}
	return littleendian.Uint32(b), nil
}

// Fixed64Bytes returns a zero-copy 8-byte view of the next fixed64
// field's payload.
func (r *Reader) Fixed64Bytes() ([]byte, error) {
	if r.Len() < 8 {
		return nil, mvterr.Formatf("truncated fixed64")
	}
	b := r.buf[r.pos : r.pos+8]
	r.pos += 8
	return b, nil
}

// Fixed64 reads the next fixed64 field's raw bits.
func (r *Reader) Fixed64() (uint64, error) {
	b, err := r.Fixed64Bytes()
	if err != nil {
		return 0, err
	}
	return littleendian.Uint64(b), nil
}

// Bytes reads a length-delimited field, returning a zero-copy view of
// its payload.
func (r *Reader) Bytes() ([]byte, error) {
	n, err := r.Varint()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Len()) {
		return nil, mvterr.Formatf("length-delimited field of %d bytes exceeds remaining input", n)
	}
	b := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b, nil
}

// Skip discards the payload of a field of the given wire type without
// interpreting it.
func (r *Reader) Skip(wireType WireType) error {
	switch wireType {
	case Varint:
		_, err := r.Varint()
		return err
	case Fixed64:
		_, err := r.Fixed64Bytes()
		return err
	case Bytes:
		_, err := r.Bytes()
		return err
	case Fixed32:
		_, err := r.Fixed32Bytes()
		return err
	default:
		return mvterr.Formatf("unknown wire type %d", wireType)
	}
}

// PackedVarint returns a sub-reader over a length-delimited field
// whose payload is a packed sequence of varints, used for MVT's
// packed repeated fields (tags, geometry).
func PackedVarint(b []byte) *Reader {
	return NewReader(b)
}
