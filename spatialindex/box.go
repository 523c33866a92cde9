// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package spatialindex

import (
	"fmt"
	"math"
)

// Box is an axis-aligned bounding rectangle in tile coordinate space.
type Box struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// EmptyBox is the identity value for Expand: expanding it by any box
// yields that box unchanged.
var EmptyBox = Box{
	MinX: math.Inf(1),
	MinY: math.Inf(1),
	MaxX: math.Inf(-1),
	MaxY: math.Inf(-1),
}

func (b *Box) Width() float64  { return b.MaxX - b.MinX }
func (b *Box) Height() float64 { return b.MaxY - b.MinY }

func (b *Box) midX() float64 { return (b.MinX + b.MaxX) / 2 }
func (b *Box) midY() float64 { return (b.MinY + b.MaxY) / 2 }

// Expand grows b, in place, to cover c as well.
func (b *Box) Expand(c *Box) {
	if c.MinX < b.MinX {
		b.MinX = c.MinX
	}
	if c.MinY < b.MinY {
		b.MinY = c.MinY
	}
	if c.MaxX > b.MaxX {
		b.MaxX = c.MaxX
	}
	if c.MaxY > b.MaxY {
		b.MaxY = c.MaxY
	}
}

// Intersects reports whether b and o share at least one point.
func (b *Box) Intersects(o *Box) bool {
	if b.MaxX < o.MinX || o.MaxX < b.MinX {
		return false
	}
	if b.MaxY < o.MinY || o.MaxY < b.MinY {
		return false
	}
	return true
}

func (b Box) String() string {
	return fmt.Sprintf("[%g, %g, %g, %g]", b.MinX, b.MinY, b.MaxX, b.MaxY)
}
