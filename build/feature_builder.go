// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package build provides an incremental builder for Mapbox Vector Tile
// layers and features, the inverse of the root package's Tile/Layer/
// Feature readers.
package build

import (
	vt "github.com/gogama/vectortile"
	"github.com/gogama/vectortile/geom"
	"github.com/gogama/vectortile/internal/pbf"
	"github.com/gogama/vectortile/mvterr"
)

// FeatureBuilder incrementally assembles one feature record. Create
// one with LayerBuilder.NewFeature; finish it with Commit or abandon
// it with Drop.
//
// Calls must follow the sequence: an optional SetID, then one or more
// geometry calls (AddPoints, AddLineString, or AddRing — exactly one
// of these three kinds, not a mix), then zero or more AddProperty /
// AddPropertyIndices calls, then Commit. Calling these out of
// sequence is a programmer error and panics with a mvterr Assert-kind
// error rather than returning one, since it reflects a bug in the
// caller, not malformed input.
type FeatureBuilder struct {
	parent *LayerBuilder
	st     stateful

	hasID bool
	id    uint64

	typ  vt.GeometryType
	enc  *geom.Encoder
	tags []uint32
}

func newFeatureBuilder(parent *LayerBuilder) *FeatureBuilder {
	return &FeatureBuilder{parent: parent, enc: geom.NewEncoder()}
}

// checkKind panics if a geometry call of a different kind has already
// been made, and otherwise fixes the feature's geometry type to want.
func (fb *FeatureBuilder) checkKind(op string, want vt.GeometryType) {
	if fb.st.state == stateGeometry && fb.typ != want {
		mvterr.PanicAssertf("build: %s: feature already has a %s geometry", op, fb.typ)
	}
	fb.typ = want
}

// SetID sets the feature's id. It must be called before any geometry
// call, if at all.
func (fb *FeatureBuilder) SetID(id uint64) {
	fb.st.advance("SetID", stateHasID, stateInit)
	fb.id = id
	fb.hasID = true
}

// AddPoints appends one MoveTo command covering every point in pts,
// producing a Point geometry (or a MultiPoint, if len(pts) > 1). It
// may be called only once per feature, and not combined with
// AddLineString or AddRing.
func (fb *FeatureBuilder) AddPoints(pts []geom.Point) {
	if len(pts) == 0 {
		mvterr.PanicAssertf("build: AddPoints: requires at least one point")
	}
	fb.checkKind("AddPoints", vt.Point)
	fb.st.advance("AddPoints", stateGeometry, stateInit, stateHasID)
	fb.enc.Command(geom.MoveTo, uint32(len(pts)))
	for _, p := range pts {
		fb.enc.Point(p.X, p.Y)
	}
}

// AddLineString appends one (MoveTo, LineTo) pair tracing pts as a
// single line string. Calling it more than once before Commit
// produces a MultiLineString.
func (fb *FeatureBuilder) AddLineString(pts []geom.Point) {
	if len(pts) < 2 {
		mvterr.PanicAssertf("build: AddLineString: requires at least 2 points, got %d", len(pts))
	}
	fb.checkKind("AddLineString", vt.LineString)
	fb.st.advance("AddLineString", stateGeometry, stateInit, stateHasID, stateGeometry)
	fb.enc.Command(geom.MoveTo, 1)
	fb.enc.Point(pts[0].X, pts[0].Y)
	fb.enc.Command(geom.LineTo, uint32(len(pts)-1))
	for _, p := range pts[1:] {
		fb.enc.Point(p.X, p.Y)
	}
}

// AddRing appends one ring, tracing pts as a closed loop: pts must not
// repeat its first point at the end — the ClosePath command that
// closes the ring back to pts[0] is appended automatically. Calling it
// more than once before Commit adds more rings to the same polygon
// (the first ring conventionally the outer ring, subsequent rings
// holes).
//
// AddRing panics if pts has fewer than 3 points. It does not validate
// ring orientation or reject repeated consecutive points; those are
// checked only when the finished geometry is later decoded.
func (fb *FeatureBuilder) AddRing(pts []geom.Point) {
	if len(pts) < 3 {
		mvterr.PanicAssertf("build: AddRing: requires at least 3 points, got %d", len(pts))
	}
	fb.checkKind("AddRing", vt.Polygon)
	fb.st.advance("AddRing", stateGeometry, stateInit, stateHasID, stateGeometry)
	fb.enc.Command(geom.MoveTo, 1)
	fb.enc.Point(pts[0].X, pts[0].Y)
	fb.enc.Command(geom.LineTo, uint32(len(pts)-1))
	for _, p := range pts[1:] {
		fb.enc.Point(p.X, p.Y)
	}
	fb.enc.Command(geom.ClosePath, 1)
}

// AddProperty resolves key and val through the parent layer builder's
// key and value dictionaries and appends the resulting index pair to
// the feature's tags.
func (fb *FeatureBuilder) AddProperty(key []byte, val vt.Value) {
	ki := fb.parent.keyIndex.Intern(key)
	vi := fb.parent.valueIndex.Intern(val)
	fb.AddPropertyIndices(ki, vi)
}

// AddPropertyIndices appends an already-resolved key/value dictionary
// index pair to the feature's tags, skipping dictionary interning.
// AddProperty calls it after interning its key and value.
func (fb *FeatureBuilder) AddPropertyIndices(keyIndex, valueIndex uint32) {
	fb.st.advance("AddPropertyIndices", stateProperties, stateGeometry, stateProperties)
	fb.tags = append(fb.tags, keyIndex, valueIndex)
}

// Drop abandons the feature without adding it to the parent layer
// builder.
func (fb *FeatureBuilder) Drop() {
	fb.st.state = stateCommitted
}

// Commit finalizes the feature and appends it to the parent layer
// builder. A FeatureBuilder must not be used again after Commit.
func (fb *FeatureBuilder) Commit() {
	fb.st.advance("Commit", stateCommitted, stateGeometry, stateProperties)

	w := pbf.NewWriter()
	if fb.hasID {
		w.Tag(1, pbf.Varint)
		w.Varint(fb.id)
	}
	if len(fb.tags) > 0 {
		tagsW := pbf.NewWriter()
		for _, t := range fb.tags {
			tagsW.Varint(uint64(t))
		}
		w.Field(2, tagsW.Bytes())
	}
	w.Tag(3, pbf.Varint)
	w.Varint(uint64(fb.typ))
	stream := fb.enc.Stream()
	if len(stream) > 0 {
		geomW := pbf.NewWriter()
		for _, v := range stream {
			geomW.Varint(uint64(v))
		}
		w.Field(4, geomW.Bytes())
	}

	fb.parent.addFeature(w.Bytes())
}
