// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mvt

import (
	"github.com/gogama/vectortile/internal/pbf"
	"github.com/gogama/vectortile/mvterr"
)

const (
	defaultVersion = 1
	defaultExtent  = 4096
)

// Layer is a non-owning view over one layer record. Header fields
// (version, name, extent) and dictionary/feature counts are parsed at
// construction; the key and value dictionaries and the feature list
// are materialized lazily.
type Layer struct {
	raw []byte

	version uint32
	name    []byte
	extent  uint32

	numFeatures, numKeys, numValues int

	tablesBuilt bool
	keys        [][]byte
	values      []Value

	iter *pbf.Reader
}

// NewLayer parses raw as one layer record. It returns a VersionError
// if the declared version is not 1 or 2, and a FormatError for any
// other structural violation (missing name, unknown field, duplicate
// name).
func NewLayer(raw []byte) (*Layer, error) {
	l := &Layer{raw: raw, version: defaultVersion, extent: defaultExtent}
	var nameSet bool

	r := pbf.NewReader(raw)
	for !r.Done() {
		field, wt, err := r.Next()
		if err != nil {
			return nil, err
		}
		switch field {
		case 1:
			if wt != pbf.Bytes {
				return nil, mvterr.Formatf("layer: field 1 (name) has wrong wire type %d", wt)
			}
			b, err := r.Bytes()
			if err != nil {
				return nil, err
			}
			if nameSet {
				return nil, mvterr.Formatf("layer: duplicate name field")
			}
			l.name = b
			nameSet = true
		case 2:
			if wt != pbf.Bytes {
				return nil, mvterr.Formatf("layer: field 2 (features) has wrong wire type %d", wt)
			}
			if err := r.Skip(wt); err != nil {
				return nil, err
			}
			l.numFeatures++
		case 3:
			if wt != pbf.Bytes {
				return nil, mvterr.Formatf("layer: field 3 (keys) has wrong wire type %d", wt)
			}
			if err := r.Skip(wt); err != nil {
				return nil, err
			}
			l.numKeys++
		case 4:
			if wt != pbf.Bytes {
				return nil, mvterr.Formatf("layer: field 4 (values) has wrong wire type %d", wt)
			}
			if err := r.Skip(wt); err != nil {
				return nil, err
			}
			l.numValues++
		case 5:
			if wt != pbf.Varint {
				return nil, mvterr.Formatf("layer: field 5 (extent) has wrong wire type %d", wt)
			}
			v, err := r.Varint()
			if err != nil {
				return nil, err
			}
			l.extent = uint32(v)
		case 15:
			if wt != pbf.Varint {
				return nil, mvterr.Formatf("layer: field 15 (version) has wrong wire type %d", wt)
			}
			v, err := r.Varint()
			if err != nil {
				return nil, err
			}
			l.version = uint32(v)
		default:
			return nil, mvterr.Formatf("layer: unknown field %d", field)
		}
	}

	if !nameSet {
		return nil, mvterr.Formatf("layer: missing required name")
	}
	if l.version != 1 && l.version != 2 {
		return nil, mvterr.Versionf(l.version)
	}
	if l.extent == 0 {
		return nil, mvterr.Formatf("layer: extent must be positive")
	}

	l.Reset()
	return l, nil
}

// Name returns the layer's name. The returned slice aliases the
// source buffer.
func (l *Layer) Name() []byte { return l.name }

// Version returns the layer's declared version (1 or 2).
func (l *Layer) Version() uint32 { return l.version }

// Extent returns the layer's coordinate-space extent.
func (l *Layer) Extent() uint32 { return l.extent }

// NumFeatures returns the number of feature records, counted at
// construction.
func (l *Layer) NumFeatures() int { return l.numFeatures }

// Reset restores feature iteration to the first feature.
func (l *Layer) Reset() {
	l.iter = pbf.NewReader(l.raw)
}

// NextFeature advances the resumable feature iterator and returns the
// next Feature, or ok == false at end of input.
func (l *Layer) NextFeature() (feature *Feature, ok bool, err error) {
	for !l.iter.Done() {
		field, wt, err := l.iter.Next()
		if err != nil {
			return nil, false, err
		}
		if field == 2 {
			b, err := l.iter.Bytes()
			if err != nil {
				return nil, false, err
			}
			return newFeature(l, b), true, nil
		}
		if err := l.iter.Skip(wt); err != nil {
			return nil, false, err
		}
	}
	return nil, false, nil
}

// FeatureByID linearly scans the layer's features for one with a
// matching id, leaving the main iteration cursor (Reset/NextFeature)
// undisturbed.
func (l *Layer) FeatureByID(id uint64) (*Feature, bool, error) {
	r := pbf.NewReader(l.raw)
	for !r.Done() {
		field, wt, err := r.Next()
		if err != nil {
			return nil, false, err
		}
		if field != 2 {
			if err := r.Skip(wt); err != nil {
				return nil, false, err
			}
			continue
		}
		b, err := r.Bytes()
		if err != nil {
			return nil, false, err
		}
		f := newFeature(l, b)
		fid, err := f.ID()
		if err != nil {
			return nil, false, err
		}
		if fid == id {
			return f, true, nil
		}
	}
	return nil, false, nil
}

// materialize builds the key and value dictionaries from raw on first
// call; subsequent calls are no-ops. KeyTable and ValueTable always
// return the same backing slice once materialized.
func (l *Layer) materialize() error {
	if l.tablesBuilt {
		return nil
	}
	keys := make([][]byte, 0, l.numKeys)
	values := make([]Value, 0, l.numValues)

	r := pbf.NewReader(l.raw)
	for !r.Done() {
		field, wt, err := r.Next()
		if err != nil {
			return err
		}
		switch field {
		case 3:
			b, err := r.Bytes()
			if err != nil {
				return err
			}
			keys = append(keys, b)
		case 4:
			b, err := r.Bytes()
			if err != nil {
				return err
			}
			v, err := decodeValue(b)
			if err != nil {
				return err
			}
			values = append(values, v)
		default:
			if err := r.Skip(wt); err != nil {
				return err
			}
		}
	}

	l.keys = keys
	l.values = values
	l.tablesBuilt = true
	return nil
}

// Key returns the i'th entry of the key dictionary, materializing it
// on first call.
func (l *Layer) Key(i int) ([]byte, error) {
	if err := l.materialize(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(l.keys) {
		return nil, mvterr.OutOfRangef(i, len(l.keys))
	}
	return l.keys[i], nil
}

// Value returns the i'th entry of the value dictionary, materializing
// it on first call.
func (l *Layer) Value(i int) (Value, error) {
	if err := l.materialize(); err != nil {
		return Value{}, err
	}
	if i < 0 || i >= len(l.values) {
		return Value{}, mvterr.OutOfRangef(i, len(l.values))
	}
	return l.values[i], nil
}

// KeyTable returns the full key dictionary, materializing it on first
// call. The returned slice is the layer's own cached storage, not a
// copy; callers must not mutate it.
func (l *Layer) KeyTable() ([][]byte, error) {
	if err := l.materialize(); err != nil {
		return nil, err
	}
	return l.keys, nil
}

// ValueTable returns the full value dictionary, materializing it on
// first call. The returned slice is the layer's own cached storage,
// not a copy.
func (l *Layer) ValueTable() ([]Value, error) {
	if err := l.materialize(); err != nil {
		return nil, err
	}
	return l.values, nil
}
