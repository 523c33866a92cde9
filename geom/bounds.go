// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geom

// Bounds is the axis-aligned bounding rectangle of a command stream's
// vertices, in tile-local coordinates.
type Bounds struct {
	MinX, MinY, MaxX, MaxY int32
}

// StreamBounds walks stream once, tracking the running cursor position
// through every command regardless of geometry type, and returns the
// bounding rectangle of every vertex visited. It performs no strict-mode
// validation; a malformed stream still yields whatever bounds its
// well-formed prefix produced, returning the first error encountered.
func StreamBounds(stream []uint32) (Bounds, error) {
	c := cursor{stream: stream}
	first := true
	var b Bounds
	for !c.done() {
		cmd, count, err := c.readCommand()
		if err != nil {
			return b, err
		}
		if cmd == ClosePath {
			continue
		}
		for i := uint32(0); i < count; i++ {
			p, err := c.readPoint()
			if err != nil {
				return b, err
			}
			if first {
				b.MinX, b.MaxX = p.X, p.X
				b.MinY, b.MaxY = p.Y, p.Y
				first = false
				continue
			}
			if p.X < b.MinX {
				b.MinX = p.X
			}
			if p.X > b.MaxX {
				b.MaxX = p.X
			}
			if p.Y < b.MinY {
				b.MinY = p.Y
			}
			if p.Y > b.MaxY {
				b.MaxY = p.Y
			}
		}
	}
	return b, nil
}
