// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vt "github.com/gogama/vectortile"
	"github.com/gogama/vectortile/build"
	"github.com/gogama/vectortile/geom"
)

func TestValueToInterface(t *testing.T) {
	cases := []struct {
		name string
		in   vt.Value
		want any
	}{
		{"string", vt.NewStringValue("hi"), "hi"},
		{"float", vt.NewFloatValue(1.5), float32(1.5)},
		{"double", vt.NewDoubleValue(2.5), 2.5},
		{"int", vt.NewIntValue(-3), int64(-3)},
		{"sint", vt.NewSintValue(-3), int64(-3)},
		{"uint", vt.NewUintValue(3), uint64(3)},
		{"bool", vt.NewBoolValue(true), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, valueToInterface(c.in))
		})
	}
}

func TestCollectLayer_HilbertIndicesAreDistinct(t *testing.T) {
	lb := build.NewLayerBuilder("pois", build.LayerOptions{Extent: 4096})
	corners := []geom.Point{
		{X: 0, Y: 0},
		{X: 4095, Y: 0},
		{X: 0, Y: 4095},
		{X: 4095, Y: 4095},
	}
	for _, p := range corners {
		fb := lb.NewFeature()
		fb.AddPoints([]geom.Point{p})
		fb.Commit()
	}

	layer, err := vt.NewLayer(lb.Finish())
	require.NoError(t, err)

	entries, err := collectLayer(layer, geom.Options{})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	sort.Slice(entries, func(i, j int) bool { return entries[i].hilbert < entries[j].hilbert })

	seen := make(map[int]bool)
	for _, e := range entries {
		assert.False(t, seen[e.hilbert], "duplicate hilbert index %d", e.hilbert)
		seen[e.hilbert] = true
	}
}
