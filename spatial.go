// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mvt

import (
	"github.com/gogama/vectortile/geom"
	"github.com/gogama/vectortile/spatialindex"
)

// BuildIndex scans every feature in l, computes each one's geometry
// bounding box, and returns a spatial index over them. Feature indices
// returned by the index's Query method correspond to the order
// features are returned by NextFeature, starting from l's current
// iteration position; callers that want indices relative to the start
// of the layer should call l.Reset() first.
//
// nodeSize is the packed R-tree's child count per node; 16 is a
// reasonable default for typical tile layers.
func (l *Layer) BuildIndex(nodeSize uint16) (*spatialindex.Index, error) {
	var refs []spatialindex.Ref
	i := 0
	for {
		f, ok, err := l.NextFeature()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		_, stream, err := f.Geometry()
		if err != nil {
			return nil, err
		}
		b, err := geom.StreamBounds(stream)
		if err != nil {
			return nil, err
		}
		refs = append(refs, spatialindex.Ref{
			Box: spatialindex.Box{
				MinX: float64(b.MinX), MinY: float64(b.MinY),
				MaxX: float64(b.MaxX), MaxY: float64(b.MaxY),
			},
			FeatureIndex: i,
		})
		i++
	}
	return spatialindex.New(refs, nodeSize)
}
