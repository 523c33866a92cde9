// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package spatialindex

import (
	"math"
	"sort"

	"github.com/google/hilbert"
)

const (
	// hilbertOrder is the order of the Hilbert curve used to sort leaf
	// boxes before packing them into the tree: a grid of
	// 2^hilbertOrder cells per axis.
	hilbertOrder = 16
	hilbertSide  = 1 << hilbertOrder
	hilbertMax   = hilbertSide - 1
)

// curve is the fixed Hilbert curve every hilbertSort call maps onto.
// NewHilbert only fails for a non-power-of-2 side length, which
// hilbertSide always is.
var curve = mustHilbert(hilbertSide)

func mustHilbert(n int) *hilbert.Hilbert {
	h, err := hilbert.NewHilbert(n)
	if err != nil {
		panic(err)
	}
	return h
}

type hilbertSortable struct {
	refs       []Ref
	x, y, w, h float64
}

func (hs *hilbertSortable) Len() int { return len(hs.refs) }

func (hs *hilbertSortable) Less(i, j int) bool {
	a := hilbertFromBox(&hs.refs[i].Box, hs.x, hs.y, hs.w, hs.h)
	b := hilbertFromBox(&hs.refs[j].Box, hs.x, hs.y, hs.w, hs.h)
	return a < b
}

func (hs *hilbertSortable) Swap(i, j int) {
	hs.refs[i], hs.refs[j] = hs.refs[j], hs.refs[i]
}

// hilbertSort sorts refs in place along a Hilbert curve of order
// hilbertOrder spanning extent. The sort is not guaranteed stable.
func hilbertSort(refs []Ref, extent *Box) {
	hs := hilbertSortable{
		refs: refs,
		x:    extent.MinX,
		y:    extent.MinY,
		w:    extent.Width(),
		h:    extent.Height(),
	}
	sort.Sort(&hs)
}

// HilbertIndex returns the Hilbert-curve index of b's center point
// within extent, the same metric hilbertSort uses to order leaf boxes.
// Exported for callers that want a stable, cross-layer feature
// ordering (for example, a dump tool's --order=hilbert flag) without
// building a full Index.
func HilbertIndex(b, extent Box) int {
	return hilbertFromBox(&b, extent.MinX, extent.MinY, extent.Width(), extent.Height())
}

// hilbertFromBox maps b's center point, rescaled into the curve's grid
// by its position within the rectangle (ex, ey, ex+ew, ey+eh), to its
// distance along the Hilbert curve. A center outside the rectangle is
// clamped to the nearest edge cell.
func hilbertFromBox(b *Box, ex, ey, ew, eh float64) int {
	var hx, hy int
	if ew != 0.0 {
		rx := (b.midX() - ex) / ew
		hx = int(math.Floor(hilbertMax * rx))
	}
	if eh != 0.0 {
		ry := (b.midY() - ey) / eh
		hy = int(math.Floor(hilbertMax * ry))
	}
	hx = min(max(hx, 0), hilbertMax)
	hy = min(max(hy, 0), hilbertMax)
	d, err := curve.MapInverse(hx, hy)
	if err != nil {
		// hx, hy are always in [0, hilbertMax] after clamping.
		panic(err)
	}
	return d
}
