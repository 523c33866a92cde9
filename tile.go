// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mvt

import (
	"github.com/gogama/vectortile/internal/pbf"
	"github.com/gogama/vectortile/mvterr"
)

// Tile is a non-owning view over a tile's bytes: a sequence of layer
// records with no header. Layer order is preserved but
// not semantically significant.
type Tile struct {
	raw  []byte
	iter *pbf.Reader
}

// NewTile returns a Tile view over raw. raw is not copied; it must
// outlive the Tile and any Layer or Feature read from it.
func NewTile(raw []byte) *Tile {
	t := &Tile{raw: raw}
	t.Reset()
	return t
}

// Reset restores layer iteration to the first layer.
func (t *Tile) Reset() {
	t.iter = pbf.NewReader(t.raw)
}

// NextLayer advances the iterator and returns the next Layer, or
// ok == false at end of input.
func (t *Tile) NextLayer() (layer *Layer, ok bool, err error) {
	for !t.iter.Done() {
		field, wt, err := t.iter.Next()
		if err != nil {
			return nil, false, err
		}
		if field != 3 {
			if err := t.iter.Skip(wt); err != nil {
				return nil, false, err
			}
			continue
		}
		if wt != pbf.Bytes {
			return nil, false, mvterr.Formatf("tile: field 3 (layers) has wrong wire type %d", wt)
		}
		b, err := t.iter.Bytes()
		if err != nil {
			return nil, false, err
		}
		layer, err := NewLayer(b)
		if err != nil {
			return nil, false, err
		}
		return layer, true, nil
	}
	return nil, false, nil
}

// Layers reads and returns every layer in the tile, from the current
// iteration position to the end.
func (t *Tile) Layers() ([]*Layer, error) {
	var layers []*Layer
	for {
		l, ok, err := t.NextLayer()
		if err != nil {
			return nil, err
		}
		if !ok {
			return layers, nil
		}
		layers = append(layers, l)
	}
}
