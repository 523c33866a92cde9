// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geom

// Encoder assembles a geometry command stream, tracking the running
// cursor so callers supply absolute coordinates and Encoder computes
// the zigzag deltas. It is the inverse of the cursor used by the
// Decode* functions, and is what the feature builders in package
// build use to emit MoveTo/LineTo/ClosePath sequences.
type Encoder struct {
	stream []uint32
	x, y   int32
}

// NewEncoder returns an empty Encoder with its cursor at (0, 0).
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Command appends a command integer for cmd repeated count times.
func (e *Encoder) Command(cmd Command, count uint32) {
	e.stream = append(e.stream, commandInt(cmd, count))
}

// Point appends the zigzag-encoded delta from the running cursor to
// (x, y), then advances the cursor to (x, y).
func (e *Encoder) Point(x, y int32) {
	dx := x - e.x
	dy := y - e.y
	e.stream = append(e.stream, zigzagEncode32(dx), zigzagEncode32(dy))
	e.x, e.y = x, y
}

// Stream returns the accumulated command stream.
func (e *Encoder) Stream() []uint32 {
	return e.stream
}

func zigzagEncode32(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}
