// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package spatialindex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHilbertFromBox_DistinctAlongRow(t *testing.T) {
	extent := box(0, 0, 100, 100)
	var got []int
	for x := 0.0; x < 100; x += 10 {
		b := box(x, 0, x+1, 1)
		got = append(got, hilbertFromBox(&b, extent.MinX, extent.MinY, extent.Width(), extent.Height()))
	}

	// Adjacent cells along the same row should map to distinct curve
	// positions; the set of positions should have no duplicates.
	seen := make(map[int]bool, len(got))
	var dupes []int
	for _, d := range got {
		if seen[d] {
			dupes = append(dupes, d)
		}
		seen[d] = true
	}
	if diff := cmp.Diff([]int(nil), dupes); diff != "" {
		t.Errorf("unexpected duplicate Hilbert indices (-want +got):\n%s", diff)
	}
}

func TestHilbertFromBox_OriginIsZero(t *testing.T) {
	extent := box(0, 0, 100, 100)
	b := box(0, 0, 1, 1)
	got := hilbertFromBox(&b, extent.MinX, extent.MinY, extent.Width(), extent.Height())
	if diff := cmp.Diff(0, got); diff != "" {
		t.Errorf("hilbertFromBox at origin (-want +got):\n%s", diff)
	}
}

func TestHilbertSort_GroupsNearbyBoxes(t *testing.T) {
	// A 2x2 block of cells should sort into two adjacent pairs under a
	// Hilbert curve, not alternate with distant cells.
	refs := []Ref{
		{Box: box(0, 0, 1, 1), FeatureIndex: 0},
		{Box: box(1, 0, 2, 1), FeatureIndex: 1},
		{Box: box(0, 1, 1, 2), FeatureIndex: 2},
		{Box: box(1, 1, 2, 2), FeatureIndex: 3},
		{Box: box(50, 50, 51, 51), FeatureIndex: 4},
	}
	extent := box(0, 0, 100, 100)
	hilbertSort(refs, &extent)

	last := refs[len(refs)-1]
	if diff := cmp.Diff(4, last.FeatureIndex); diff != "" {
		t.Errorf("expected the distant box last (-want +got):\n%s", diff)
	}
}
