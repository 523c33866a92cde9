// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package geom decodes and encodes the Mapbox Vector Tile geometry
// command stream: a sequence of unsigned 32-bit integers describing
// Point, LineString, and Polygon geometries as MoveTo/LineTo/ClosePath
// commands with zigzag-delta parameters relative to a running cursor.
package geom

import "github.com/gogama/vectortile/mvterr"

// Command identifies one of the three geometry commands a command
// integer can encode.
type Command uint32

const (
	MoveTo    Command = 1
	LineTo    Command = 2
	ClosePath Command = 7
)

func (c Command) String() string {
	switch c {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case ClosePath:
		return "ClosePath"
	default:
		return "Unknown"
	}
}

// Point is a decoded vertex in tile-local coordinates.
type Point struct {
	X, Y int32
}

// Options configures geometry decoding.
type Options struct {
	// Strict enables the stricter of the two validation regimes: it
	// rejects zero-length LineTo segments, polygon rings with fewer
	// than 4 total points, and (always enforced, strict or not)
	// malformed ClosePath commands.
	Strict bool
}

// commandInt packs a command and its repeat count into a single
// command integer.
func commandInt(cmd Command, count uint32) uint32 {
	return uint32(cmd)&0x7 | count<<3
}

// decodeCommandInt unpacks a command integer into its command id and
// repeat count.
func decodeCommandInt(v uint32) (cmd Command, count uint32) {
	return Command(v & 0x7), v >> 3
}

// cursor walks a command stream, tracking the running (x, y) position
// that every parameter pair is a zigzag delta from.
type cursor struct {
	stream []uint32
	pos    int
	x, y   int32
}

func (c *cursor) done() bool {
	return c.pos >= len(c.stream)
}

func (c *cursor) readCommand() (Command, uint32, error) {
	if c.pos >= len(c.stream) {
		return 0, 0, mvterr.Geometryf("premature end of command stream")
	}
	cmd, count := decodeCommandInt(c.stream[c.pos])
	c.pos++
	return cmd, count, nil
}

func zigzagDecode32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

func (c *cursor) readParam() (int32, error) {
	if c.pos >= len(c.stream) {
		return 0, mvterr.Geometryf("premature end of command stream: missing parameter")
	}
	v := zigzagDecode32(c.stream[c.pos])
	c.pos++
	return v, nil
}

// readPoint reads one (dx, dy) parameter pair and applies it to the
// running cursor, returning the new absolute position.
func (c *cursor) readPoint() (Point, error) {
	dx, err := c.readParam()
	if err != nil {
		return Point{}, err
	}
	dy, err := c.readParam()
	if err != nil {
		return Point{}, err
	}
	c.x += dx
	c.y += dy
	return Point{X: c.x, Y: c.y}, nil
}
