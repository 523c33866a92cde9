// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mvt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vt "github.com/gogama/vectortile"
	"github.com/gogama/vectortile/build"
	"github.com/gogama/vectortile/geom"
	"github.com/gogama/vectortile/spatialindex"
)

func TestLayer_BuildIndex(t *testing.T) {
	lb := build.NewLayerBuilder("pois", build.LayerOptions{})

	pts := []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 100}, {X: 4000, Y: 4000}}
	for _, p := range pts {
		fb := lb.NewFeature()
		fb.AddPoints([]geom.Point{p})
		fb.Commit()
	}

	layer, err := vt.NewLayer(lb.Finish())
	require.NoError(t, err)

	idx, err := layer.BuildIndex(4)
	require.NoError(t, err)

	bounds := idx.Bounds()
	assert.Equal(t, spatialindex.Box{MinX: 0, MinY: 0, MaxX: 4000, MaxY: 4000}, bounds)

	results := idx.Query(spatialindex.Box{MinX: -1, MinY: -1, MaxX: 101, MaxY: 101})
	got := make(map[int]bool)
	for _, r := range results {
		got[r.FeatureIndex] = true
	}
	assert.True(t, got[0])
	assert.True(t, got[1])
	assert.False(t, got[2])
}

func TestLayer_BuildIndex_RejectsEmptyLayer(t *testing.T) {
	lb := build.NewLayerBuilder("empty", build.LayerOptions{})
	layer, err := vt.NewLayer(lb.Finish())
	require.NoError(t, err)

	_, err = layer.BuildIndex(4)
	assert.Error(t, err)
}
