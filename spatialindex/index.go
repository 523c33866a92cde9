// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package spatialindex provides an in-memory packed Hilbert R-tree for
// bounding-box queries over a decoded layer's features. Unlike a
// file-backed spatial index, it is built once from already-decoded
// geometry and never serialized: a tile has no on-disk index section,
// so the tree only ever needs to answer Query calls against the
// process that built it.
package spatialindex

import "github.com/gogama/vectortile/mvterr"

// Ref associates a feature's bounding box with its position in the
// caller's feature list (typically an index into a Layer's features,
// in the order returned by NextFeature).
type Ref struct {
	Box
	FeatureIndex int
}

// A node is either a leaf (a Ref copied in directly) or an internal
// node, in which case Box is the bounding box of its subtree and
// FeatureIndex is repurposed as the index of its first child node.
type node struct {
	Ref
}

// Result is a single query match.
type Result struct {
	FeatureIndex int
}

type levelRange struct {
	start, end int
}

// Index is a packed Hilbert R-tree built from a fixed set of Refs. It
// answers bounding-box intersection queries but cannot be modified
// once built.
type Index struct {
	nodeSize int
	levels   []levelRange
	nodes    []node
}

const minNodeSize = 2

// New builds a packed Hilbert R-tree over refs. nodeSize is the number
// of children per internal node and must be at least 2. refs is
// Hilbert-sorted internally; the caller's slice is not modified.
//
// New returns a GeometryError if refs is empty, since an index over no
// features has no sensible bounds.
func New(refs []Ref, nodeSize uint16) (*Index, error) {
	if len(refs) == 0 {
		return nil, mvterr.Geometryf("spatialindex: cannot build index over zero features")
	}
	if nodeSize < minNodeSize {
		mvterr.PanicAssertf("spatialindex: node size must be at least %d, got %d", minNodeSize, nodeSize)
	}

	sorted := make([]Ref, len(refs))
	copy(sorted, refs)
	bounds := EmptyBox
	for i := range sorted {
		bounds.Expand(&sorted[i].Box)
	}
	hilbertSort(sorted, &bounds)

	levels := levelify(len(sorted), int(nodeSize))
	idx := &Index{
		nodeSize: int(nodeSize),
		levels:   levels,
		nodes:    make([]node, levels[0].end),
	}

	i := levels[0].start
	for j := range sorted {
		idx.nodes[i] = node{sorted[j]}
		i++
	}
	for lvl := 0; lvl < len(levels)-1; lvl++ {
		level := levels[lvl]
		nodeIndex := level.start
		parentPos := levels[lvl+1].start
		for nodeIndex < level.end {
			parent := &idx.nodes[parentPos]
			*parent = node{Ref{Box: EmptyBox, FeatureIndex: nodeIndex}}
			count := 0
			for {
				parent.Expand(&idx.nodes[nodeIndex].Box)
				count++
				nodeIndex++
				if count == idx.nodeSize || nodeIndex == level.end {
					break
				}
			}
			parentPos++
		}
	}
	return idx, nil
}

// levelify partitions numRefs leaf nodes into a bottom-up list of
// levelRanges, the last of which is the single-node root level.
func levelify(numRefs, nodeSize int) []levelRange {
	var nodesPerLevel []int
	n := numRefs
	nodesPerLevel = append(nodesPerLevel, n)
	for n > 1 {
		n = (n + nodeSize - 1) / nodeSize
		nodesPerLevel = append(nodesPerLevel, n)
	}

	total := 0
	for _, c := range nodesPerLevel {
		total += c
	}

	levels := make([]levelRange, len(nodesPerLevel))
	remaining := total
	for i, c := range nodesPerLevel {
		remaining -= c
		levels[i] = levelRange{start: remaining, end: remaining + c}
	}
	return levels
}

// Bounds returns the bounding box of every feature referenced by the
// index.
func (idx *Index) Bounds() Box {
	return idx.nodes[idx.levels[len(idx.levels)-1].start].Box
}

// Query returns every Ref whose bounding box intersects b. The order
// of results is not defined.
func (idx *Index) Query(b Box) []Result {
	var results []Result
	type ticket struct {
		nodeIndex, level int
	}
	stack := []ticket{{nodeIndex: idx.levels[len(idx.levels)-1].start, level: len(idx.levels) - 1}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		level := idx.levels[t.level]
		end := t.nodeIndex + idx.nodeSize
		if level.end < end {
			end = level.end
		}
		isLeaf := t.level == 0

		for pos := t.nodeIndex; pos < end; pos++ {
			n := &idx.nodes[pos]
			if !b.Intersects(&n.Box) {
				continue
			}
			if isLeaf {
				results = append(results, Result{FeatureIndex: n.FeatureIndex})
			} else {
				stack = append(stack, ticket{nodeIndex: n.FeatureIndex, level: t.level - 1})
			}
		}
	}
	return results
}
