// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geom

// PointHandler receives callbacks while decoding a Point geometry.
// Only these three methods are required; a type satisfying
// PointHandler need not also satisfy LineStringHandler or
// RingHandler.
type PointHandler interface {
	PointsBegin(count int)
	PointsPoint(p Point)
	PointsEnd()
}

// LineStringHandler receives callbacks while decoding a LineString
// geometry. Called once per MoveTo/LineTo pair (i.e. once per
// linestring in a multilinestring).
type LineStringHandler interface {
	LineStringBegin(count int)
	LineStringPoint(p Point)
	LineStringEnd()
}

// RingHandler receives callbacks while decoding a Polygon geometry.
// Called once per MoveTo/LineTo/ClosePath triple (i.e. once per ring
// in a polygon or multipolygon). RingEnd's outer argument reports the
// sign of the ring's shoelace sum: true for a positive sum (outer
// ring in a tile's screen-aligned, y-down coordinate system), false
// for negative (inner ring / hole).
type RingHandler interface {
	RingBegin(count int)
	RingPoint(p Point)
	RingEnd(outer bool)
}
