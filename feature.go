// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mvt

import (
	"github.com/gogama/vectortile/geom"
	"github.com/gogama/vectortile/internal/pbf"
	"github.com/gogama/vectortile/mvterr"
)

// GeometryType is one of the four geometry type tags a Feature can
// carry.
type GeometryType int

const (
	Unknown GeometryType = iota
	Point
	LineString
	Polygon
)

func (t GeometryType) String() string {
	switch t {
	case Point:
		return "Point"
	case LineString:
		return "LineString"
	case Polygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// Feature is a lazy, non-owning view over one feature record within a
// Layer. Parsing happens on first access, not at construction.
type Feature struct {
	layer *Layer
	raw   []byte

	parsed   bool
	hasID    bool
	id       uint64
	typ      GeometryType
	tags     []uint32
	geometry []uint32
}

func newFeature(l *Layer, raw []byte) *Feature {
	return &Feature{layer: l, raw: raw}
}

func (f *Feature) ensureParsed() error {
	if f.parsed {
		return nil
	}
	r := pbf.NewReader(f.raw)
	for !r.Done() {
		field, wt, err := r.Next()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			u, err := r.Varint()
			if err != nil {
				return err
			}
			f.id = u
			f.hasID = true
		case 2:
			b, err := r.Bytes()
			if err != nil {
				return err
			}
			tags, err := readPackedVarints32(b)
			if err != nil {
				return err
			}
			f.tags = tags
		case 3:
			u, err := r.Varint()
			if err != nil {
				return err
			}
			if u > 3 {
				return mvterr.Formatf("feature: unknown geometry type %d", u)
			}
			f.typ = GeometryType(u)
		case 4:
			b, err := r.Bytes()
			if err != nil {
				return err
			}
			cmds, err := readPackedVarints32(b)
			if err != nil {
				return err
			}
			f.geometry = cmds
		default:
			if err := r.Skip(wt); err != nil {
				return err
			}
		}
	}
	if len(f.tags)%2 != 0 {
		return mvterr.Formatf("feature: tags list has odd length %d", len(f.tags))
	}
	f.parsed = true
	return nil
}

func readPackedVarints32(b []byte) ([]uint32, error) {
	r := pbf.NewReader(b)
	var out []uint32
	for !r.Done() {
		v, err := r.Varint()
		if err != nil {
			return nil, err
		}
		out = append(out, uint32(v))
	}
	return out, nil
}

// ID returns the feature's id, or 0 if unset.
func (f *Feature) ID() (uint64, error) {
	if err := f.ensureParsed(); err != nil {
		return 0, err
	}
	return f.id, nil
}

// HasID reports whether the feature record carried an explicit id.
func (f *Feature) HasID() (bool, error) {
	if err := f.ensureParsed(); err != nil {
		return false, err
	}
	return f.hasID, nil
}

// Type returns the feature's geometry type tag.
func (f *Feature) Type() (GeometryType, error) {
	if err := f.ensureParsed(); err != nil {
		return Unknown, err
	}
	return f.typ, nil
}

// Geometry returns the feature's geometry type and its command
// stream, unpacked from the packed-varint field into a []uint32. It
// does not check the stream against the type.
func (f *Feature) Geometry() (GeometryType, []uint32, error) {
	if err := f.ensureParsed(); err != nil {
		return Unknown, nil, err
	}
	return f.typ, f.geometry, nil
}

// DecodePoint decodes the feature's geometry as a Point, returning a
// TypeError if the feature's declared type is not Point.
func (f *Feature) DecodePoint(opts geom.Options, h geom.PointHandler) error {
	typ, stream, err := f.Geometry()
	if err != nil {
		return err
	}
	if typ != Point {
		return mvterr.Typef("feature geometry is %s, not Point", typ)
	}
	return geom.DecodePoint(stream, opts, h)
}

// DecodeLineString decodes the feature's geometry as a LineString,
// returning a TypeError if the feature's declared type is not
// LineString.
func (f *Feature) DecodeLineString(opts geom.Options, h geom.LineStringHandler) error {
	typ, stream, err := f.Geometry()
	if err != nil {
		return err
	}
	if typ != LineString {
		return mvterr.Typef("feature geometry is %s, not LineString", typ)
	}
	return geom.DecodeLineString(stream, opts, h)
}

// DecodePolygon decodes the feature's geometry as a Polygon, returning
// a TypeError if the feature's declared type is not Polygon.
func (f *Feature) DecodePolygon(opts geom.Options, h geom.RingHandler) error {
	typ, stream, err := f.Geometry()
	if err != nil {
		return err
	}
	if typ != Polygon {
		return mvterr.Typef("feature geometry is %s, not Polygon", typ)
	}
	return geom.DecodePolygon(stream, opts, h)
}

// ForEachProperty walks the feature's tags, pairing even-indexed key
// indices with odd-indexed value indices and resolving each through
// the owning layer's dictionaries.
func (f *Feature) ForEachProperty(fn func(key []byte, value Value) error) error {
	if err := f.ensureParsed(); err != nil {
		return err
	}
	for i := 0; i < len(f.tags); i += 2 {
		keyIdx, valIdx := int(f.tags[i]), int(f.tags[i+1])
		key, err := f.layer.Key(keyIdx)
		if err != nil {
			return err
		}
		val, err := f.layer.Value(valIdx)
		if err != nil {
			return err
		}
		if err := fn(key, val); err != nil {
			return err
		}
	}
	return nil
}

// Tags returns the feature's raw, alternating key-index/value-index
// pairs, without resolving them through the layer's dictionaries.
func (f *Feature) Tags() ([]uint32, error) {
	if err := f.ensureParsed(); err != nil {
		return nil, err
	}
	return f.tags, nil
}
