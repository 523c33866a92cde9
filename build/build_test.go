// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vt "github.com/gogama/vectortile"
	"github.com/gogama/vectortile/geom"
)

func TestFeatureBuilder_LineStringRoundTrip(t *testing.T) {
	lb := NewLayerBuilder("roads", LayerOptions{})
	fb := lb.NewFeature()
	fb.SetID(7)
	fb.AddLineString([]geom.Point{{X: 2, Y: 2}, {X: 2, Y: 10}, {X: 10, Y: 10}})
	fb.AddProperty([]byte("highway"), vt.NewStringValue("primary"))
	fb.Commit()

	raw := lb.Finish()
	layer, err := vt.NewLayer(raw)
	require.NoError(t, err)
	assert.EqualValues(t, 2, layer.Version())
	assert.EqualValues(t, 4096, layer.Extent())

	f, ok, err := layer.NextFeature()
	require.NoError(t, err)
	require.True(t, ok)

	id, err := f.ID()
	require.NoError(t, err)
	assert.EqualValues(t, 7, id)

	typ, err := f.Type()
	require.NoError(t, err)
	assert.Equal(t, vt.LineString, typ)

	var collected []geom.Point
	err = f.DecodeLineString(geom.Options{}, lineCollector{
		point: func(p geom.Point) { collected = append(collected, p) },
	})
	require.NoError(t, err)
	assert.Equal(t, []geom.Point{{X: 2, Y: 2}, {X: 2, Y: 10}, {X: 10, Y: 10}}, collected)

	var gotKey []byte
	var gotVal vt.Value
	err = f.ForEachProperty(func(key []byte, val vt.Value) error {
		gotKey = key
		gotVal = val
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "highway", string(gotKey))
	s, err := gotVal.StringValue()
	require.NoError(t, err)
	assert.Equal(t, "primary", s)

	_, ok, err = layer.NextFeature()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFeatureBuilder_Polygon(t *testing.T) {
	lb := NewLayerBuilder("buildings", LayerOptions{})
	fb := lb.NewFeature()
	fb.AddRing([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})
	fb.Commit()

	layer, err := vt.NewLayer(lb.Finish())
	require.NoError(t, err)
	f, ok, err := layer.NextFeature()
	require.NoError(t, err)
	require.True(t, ok)

	var rings [][]geom.Point
	var outers []bool
	var cur []geom.Point
	err = f.DecodePolygon(geom.Options{}, ringCollector{
		begin: func(int) { cur = nil },
		point: func(p geom.Point) { cur = append(cur, p) },
		end: func(outer bool) {
			rings = append(rings, cur)
			outers = append(outers, outer)
		},
	})
	require.NoError(t, err)
	require.Len(t, rings, 1)
	assert.True(t, outers[0])
}

func TestFeatureBuilder_MultiPoint(t *testing.T) {
	lb := NewLayerBuilder("pois", LayerOptions{})
	fb := lb.NewFeature()
	fb.AddPoints([]geom.Point{{X: 1, Y: 1}, {X: 5, Y: 5}})
	fb.Commit()

	layer, err := vt.NewLayer(lb.Finish())
	require.NoError(t, err)
	f, _, err := layer.NextFeature()
	require.NoError(t, err)

	var pts []geom.Point
	err = f.DecodePoint(geom.Options{}, pointCollector{
		point: func(p geom.Point) { pts = append(pts, p) },
	})
	require.NoError(t, err)
	assert.Equal(t, []geom.Point{{X: 1, Y: 1}, {X: 5, Y: 5}}, pts)
}

func TestFeatureBuilder_IllegalSequencePanics(t *testing.T) {
	lb := NewLayerBuilder("t", LayerOptions{})

	t.Run("SetID after geometry", func(t *testing.T) {
		fb := lb.NewFeature()
		fb.AddPoints([]geom.Point{{X: 0, Y: 0}})
		assert.Panics(t, func() { fb.SetID(1) })
	})

	t.Run("Commit with no geometry", func(t *testing.T) {
		fb := lb.NewFeature()
		assert.Panics(t, func() { fb.Commit() })
	})

	t.Run("mixing geometry kinds", func(t *testing.T) {
		fb := lb.NewFeature()
		fb.AddPoints([]geom.Point{{X: 0, Y: 0}})
		assert.Panics(t, func() { fb.AddLineString([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}) })
	})

	t.Run("property before geometry", func(t *testing.T) {
		fb := lb.NewFeature()
		assert.Panics(t, func() { fb.AddPropertyIndices(0, 0) })
	})
}

func TestLayerBuilder_RemoveLastFeature(t *testing.T) {
	lb := NewLayerBuilder("t", LayerOptions{})

	fb1 := lb.NewFeature()
	fb1.SetID(1)
	fb1.AddPoints([]geom.Point{{X: 0, Y: 0}})
	fb1.Commit()
	assert.Equal(t, 1, lb.NumFeatures())

	fb2 := lb.NewFeature()
	fb2.SetID(2)
	fb2.AddPoints([]geom.Point{{X: 1, Y: 1}})
	fb2.Commit()
	assert.Equal(t, 2, lb.NumFeatures())

	lb.RemoveLastFeature()
	assert.Equal(t, 1, lb.NumFeatures())

	layer, err := vt.NewLayer(lb.Finish())
	require.NoError(t, err)
	assert.Equal(t, 1, layer.NumFeatures())
	f, _, err := layer.NextFeature()
	require.NoError(t, err)
	id, err := f.ID()
	require.NoError(t, err)
	assert.EqualValues(t, 1, id)
}

func TestLayerBuilder_RemoveLastFeature_PanicsWithoutCommit(t *testing.T) {
	lb := NewLayerBuilder("t", LayerOptions{})
	assert.Panics(t, func() { lb.RemoveLastFeature() })
}

func TestFeatureBuilder_Drop(t *testing.T) {
	lb := NewLayerBuilder("t", LayerOptions{})
	fb := lb.NewFeature()
	fb.AddPoints([]geom.Point{{X: 0, Y: 0}})
	fb.Drop()
	assert.Equal(t, 0, lb.NumFeatures())
}

func TestTileBuilder_RoundTrip(t *testing.T) {
	roads := NewLayerBuilder("roads", LayerOptions{})
	fb := roads.NewFeature()
	fb.AddLineString([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
	fb.Commit()

	water := NewLayerBuilder("water", LayerOptions{})
	fb = water.NewFeature()
	fb.AddRing([]geom.Point{{X: 0, Y: 0}, {X: 0, Y: 5}, {X: 5, Y: 5}})
	fb.Commit()

	tb := NewTileBuilder()
	tb.AddLayer(roads.Finish())
	tb.AddLayer(water.Finish())

	layers, err := vt.NewTile(tb.Serialize()).Layers()
	require.NoError(t, err)
	require.Len(t, layers, 2)
	assert.Equal(t, "roads", string(layers[0].Name()))
	assert.Equal(t, "water", string(layers[1].Name()))
}

func TestLayerBuilder_DictionaryDeduplication(t *testing.T) {
	lb := NewLayerBuilder("t", LayerOptions{})

	fb1 := lb.NewFeature()
	fb1.AddPoints([]geom.Point{{X: 0, Y: 0}})
	fb1.AddProperty([]byte("kind"), vt.NewStringValue("park"))
	fb1.Commit()

	fb2 := lb.NewFeature()
	fb2.AddPoints([]geom.Point{{X: 1, Y: 1}})
	fb2.AddProperty([]byte("kind"), vt.NewStringValue("park"))
	fb2.Commit()

	layer, err := vt.NewLayer(lb.Finish())
	require.NoError(t, err)
	keys, err := layer.KeyTable()
	require.NoError(t, err)
	values, err := layer.ValueTable()
	require.NoError(t, err)
	assert.Len(t, keys, 1)
	assert.Len(t, values, 1)
}

// pointCollector, lineCollector, ringCollector adapt geom's handler
// interfaces to simple closures for test assertions.

type pointCollector struct {
	point func(geom.Point)
}

func (c pointCollector) PointsBegin(int)       {}
func (c pointCollector) PointsPoint(p geom.Point) { c.point(p) }
func (c pointCollector) PointsEnd()             {}

type lineCollector struct {
	point func(geom.Point)
}

func (c lineCollector) LineStringBegin(int)            {}
func (c lineCollector) LineStringPoint(p geom.Point) { c.point(p) }
func (c lineCollector) LineStringEnd()                 {}

type ringCollector struct {
	begin func(int)
	point func(geom.Point)
	end   func(bool)
}

func (c ringCollector) RingBegin(n int)      { c.begin(n) }
func (c ringCollector) RingPoint(p geom.Point) { c.point(p) }
func (c ringCollector) RingEnd(outer bool)   { c.end(outer) }
