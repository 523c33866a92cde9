// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geom

import "github.com/gogama/vectortile/mvterr"

// DecodePoint decodes stream as a Point geometry: exactly one MoveTo
// command with count >= 1, and no trailing data. Each decoded point
// is reported through h.
func DecodePoint(stream []uint32, opts Options, h PointHandler) error {
	c := &cursor{stream: stream}

	cmd, count, err := c.readCommand()
	if err != nil {
		return err
	}
	if cmd != MoveTo {
		return mvterr.Geometryf("point geometry: expected MoveTo, got %s", cmd)
	}
	if count < 1 {
		return mvterr.Geometryf("point geometry: MoveTo count must be >= 1, got %d", count)
	}

	h.PointsBegin(int(count))
	for i := uint32(0); i < count; i++ {
		p, err := c.readPoint()
		if err != nil {
			return err
		}
		h.PointsPoint(p)
	}
	h.PointsEnd()

	if !c.done() {
		return mvterr.Geometryf("point geometry: trailing data after MoveTo")
	}
	return nil
}

// DecodeLineString decodes stream as a LineString geometry: one or
// more (MoveTo count=1, LineTo count>=1) pairs, each reported as one
// linestring through h.
func DecodeLineString(stream []uint32, opts Options, h LineStringHandler) error {
	c := &cursor{stream: stream}

	for !c.done() {
		cmd, count, err := c.readCommand()
		if err != nil {
			return err
		}
		if cmd != MoveTo {
			return mvterr.Geometryf("linestring geometry: expected MoveTo, got %s", cmd)
		}
		if count != 1 {
			return mvterr.Geometryf("linestring geometry: MoveTo count must be 1, got %d", count)
		}
		start, err := c.readPoint()
		if err != nil {
			return err
		}

		cmd, lineCount, err := c.readCommand()
		if err != nil {
			return err
		}
		if cmd != LineTo {
			return mvterr.Geometryf("linestring geometry: expected LineTo, got %s", cmd)
		}
		if lineCount < 1 {
			return mvterr.Geometryf("linestring geometry: LineTo count must be >= 1, got %d", lineCount)
		}

		h.LineStringBegin(int(lineCount) + 1)
		h.LineStringPoint(start)
		prev := start
		for i := uint32(0); i < lineCount; i++ {
			p, err := c.readPoint()
			if err != nil {
				return err
			}
			if opts.Strict && p == prev {
				return mvterr.Geometryf("linestring geometry: strict mode forbids a zero-length LineTo segment")
			}
			h.LineStringPoint(p)
			prev = p
		}
		h.LineStringEnd()
	}
	return nil
}

// DecodePolygon decodes stream as a Polygon geometry: one or more
// (MoveTo count=1, LineTo count>1 [strict] else count>=1, ClosePath
// count=1) triples, each reported as one ring through h. RingEnd's
// argument reports the sign of the ring's shoelace sum.
func DecodePolygon(stream []uint32, opts Options, h RingHandler) error {
	c := &cursor{stream: stream}

	for !c.done() {
		cmd, count, err := c.readCommand()
		if err != nil {
			return err
		}
		if cmd != MoveTo {
			return mvterr.Geometryf("polygon geometry: expected MoveTo, got %s", cmd)
		}
		if count != 1 {
			return mvterr.Geometryf("polygon geometry: MoveTo count must be 1, got %d", count)
		}
		start, err := c.readPoint()
		if err != nil {
			return err
		}

		cmd, lineCount, err := c.readCommand()
		if err != nil {
			return err
		}
		if cmd != LineTo {
			return mvterr.Geometryf("polygon geometry: expected LineTo, got %s", cmd)
		}
		minLineCount := uint32(1)
		if opts.Strict {
			minLineCount = 2
		}
		if lineCount < minLineCount {
			return mvterr.Geometryf("polygon geometry: ring has %d LineTo points, need >= %d", lineCount, minLineCount)
		}

		h.RingBegin(int(lineCount) + 2) // start point + LineTo points + repeated closing point
		h.RingPoint(start)

		var sum int64
		prev := start
		for i := uint32(0); i < lineCount; i++ {
			p, err := c.readPoint()
			if err != nil {
				return err
			}
			if opts.Strict && p == prev {
				return mvterr.Geometryf("polygon geometry: strict mode forbids a zero-length LineTo segment")
			}
			sum += shoelaceTerm(prev, p)
			h.RingPoint(p)
			prev = p
		}
		// Implicit closing segment back to the ring's start.
		sum += shoelaceTerm(prev, start)

		cmd, closeCount, err := c.readCommand()
		if err != nil {
			return err
		}
		if cmd != ClosePath {
			return mvterr.Geometryf("polygon geometry: expected ClosePath, got %s", cmd)
		}
		if closeCount != 1 {
			return mvterr.Geometryf("polygon geometry: ClosePath count must be 1, got %d", closeCount)
		}

		h.RingPoint(start)
		h.RingEnd(sum > 0)
	}
	return nil
}

// shoelaceTerm computes det(p, q) = p.X*q.Y - q.X*p.Y, one term of
// the shoelace sum accumulated across a ring's segments.
func shoelaceTerm(p, q Point) int64 {
	return int64(p.X)*int64(q.Y) - int64(q.X)*int64(p.Y)
}
