// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package build

import "github.com/gogama/vectortile/internal/pbf"

// TileBuilder assembles a complete tile out of finished layer records.
type TileBuilder struct {
	w *pbf.Writer
}

// NewTileBuilder returns an empty TileBuilder.
func NewTileBuilder() *TileBuilder {
	return &TileBuilder{w: pbf.NewWriter()}
}

// AddLayer appends an already-finished layer record (the return value
// of LayerBuilder.Finish, or bytes copied verbatim from an existing
// tile's Layer) to the tile.
func (tb *TileBuilder) AddLayer(layer []byte) {
	tb.w.Field(3, layer)
}

// Serialize returns the complete, encoded tile.
func (tb *TileBuilder) Serialize() []byte {
	return tb.w.Bytes()
}
