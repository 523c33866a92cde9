// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pbf

// Writer appends TLV-encoded fields to a growing byte buffer. The
// zero Writer is ready to use.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated buffer. The slice aliases the
// Writer's internal storage; callers must not retain it across
// further writes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len reports the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Truncate discards everything written after byte offset n, used to
// roll back the most recently committed feature's bytes.
func (w *Writer) Truncate(n int) {
	w.buf = w.buf[:n]
}

// Tag writes a field tag for the given field number and wire type.
func (w *Writer) Tag(field uint32, wireType WireType) {
	w.Varint(uint64(field)<<3 | uint64(wireType))
}

// Varint appends a base-128 varint.
func (w *Writer) Varint(v uint64) {
	for v >= 0x80 {
		w.buf = append(w.buf, byte(v)|0x80)
		v >>= 7
	}
	w.buf = append(w.buf, byte(v))
}

// Zigzag appends a zigzag-encoded signed varint.
func (w *Writer) Zigzag(v int64) {
	w.Varint(uint64((v << 1) ^ (v >> 63)))
}

// Zigzag32 appends a zigzag-encoded 32-bit signed varint, as used by
// the geometry command stream's parameter integers.
func (w *Writer) Zigzag32(v int32) {
	w.Varint(uint64(uint32((v << 1) ^ (v >> 31))))
}

// Fixed32 appends 4 raw bytes, already in wire (little-endian) order,
// for example as produced by flatbuffers.WriteFloat32 into a scratch
// buffer.
func (w *Writer) Fixed32(b []byte) {
	w.buf = append(w.buf, b...)
}

// Fixed64 appends 8 raw bytes, already in wire (little-endian) order.
func (w *Writer) Fixed64(b []byte) {
	w.buf = append(w.buf, b...)
}

// LengthDelimited appends a varint length prefix followed by b. Used
// to splice an independently-assembled sub-message (a feature record
// into its layer, a layer record into its tile) into a parent buffer.
func (w *Writer) LengthDelimited(b []byte) {
	w.Varint(uint64(len(b)))
	w.buf = append(w.buf, b...)
}

// Field writes a complete length-delimited field: a tag for field at
// wire type Bytes, followed by its varint length and payload.
func (w *Writer) Field(field uint32, b []byte) {
	w.Tag(field, Bytes)
	w.LengthDelimited(b)
}

// Raw appends b verbatim, with no tag or length prefix of its own.
// Used to splice a buffer that already contains one or more complete
// tagged fields (for example, a LayerBuilder's accumulated feature
// list) directly into a parent buffer.
func (w *Writer) Raw(b []byte) {
	w.buf = append(w.buf, b...)
}
