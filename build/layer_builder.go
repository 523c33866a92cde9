// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package build

import (
	vt "github.com/gogama/vectortile"
	"github.com/gogama/vectortile/index"
	"github.com/gogama/vectortile/internal/pbf"
	"github.com/gogama/vectortile/mvterr"
)

// LayerOptions configures a LayerBuilder.
type LayerOptions struct {
	// Version is the layer version written to field 15: 1 or 2. Zero
	// defaults to 2, the version this package's builder targets.
	Version uint32
	// Extent is the layer's coordinate-space extent, field 5. Zero
	// defaults to 4096, the conventional Mapbox Vector Tile extent.
	Extent uint32
	// KeyIndex and ValueIndex override the dictionary interning
	// strategy. If nil, a hashed index is used for each.
	KeyIndex   index.KeyIndex
	ValueIndex index.ValueIndex
}

// LayerBuilder incrementally assembles one layer record: a name, a
// growing list of committed features, and the key/value dictionaries
// those features' properties are interned against.
type LayerBuilder struct {
	name    string
	version uint32
	extent  uint32

	keyIndex   index.KeyIndex
	valueIndex index.ValueIndex

	features          *pbf.Writer
	lastFeatureOffset int
	hasLastFeature    bool
	numFeatures       int
}

// NewLayerBuilder returns a LayerBuilder for a layer named name.
func NewLayerBuilder(name string, opts LayerOptions) *LayerBuilder {
	version := opts.Version
	if version == 0 {
		version = 2
	}
	extent := opts.Extent
	if extent == 0 {
		extent = 4096
	}
	keyIdx := opts.KeyIndex
	if keyIdx == nil {
		keyIdx = index.NewHashedKeyIndex()
	}
	valIdx := opts.ValueIndex
	if valIdx == nil {
		valIdx = index.NewHashedValueIndex()
	}
	return &LayerBuilder{
		name:       name,
		version:    version,
		extent:     extent,
		keyIndex:   keyIdx,
		valueIndex: valIdx,
		features:   pbf.NewWriter(),
	}
}

// NewFeature returns a FeatureBuilder for a new feature in this layer.
func (lb *LayerBuilder) NewFeature() *FeatureBuilder {
	return newFeatureBuilder(lb)
}

// addFeature appends an already-serialized feature record to the
// layer's feature list. Called only by FeatureBuilder.Commit.
func (lb *LayerBuilder) addFeature(b []byte) {
	lb.lastFeatureOffset = lb.features.Len()
	lb.hasLastFeature = true
	lb.features.Field(2, b)
	lb.numFeatures++
}

// RemoveLastFeature discards the most recently committed feature. It
// can be called at most once per commit; calling it with no committed
// feature to remove, or twice in a row, is a programmer error and
// panics.
func (lb *LayerBuilder) RemoveLastFeature() {
	if !lb.hasLastFeature {
		mvterr.PanicAssertf("build: RemoveLastFeature: no feature to remove")
	}
	lb.features.Truncate(lb.lastFeatureOffset)
	lb.hasLastFeature = false
	lb.numFeatures--
}

// NumFeatures reports how many features have been committed so far.
func (lb *LayerBuilder) NumFeatures() int { return lb.numFeatures }

// CopyProperties copies every property of an existing feature into fb,
// re-interning each key and value through lb's own dictionaries. This
// is the supported way to carry a feature's properties across into a
// different layer builder (for example, a filtering or re-tiling
// pipeline) without manually walking ForEachProperty.
func (lb *LayerBuilder) CopyProperties(fb *FeatureBuilder, f *vt.Feature) error {
	return f.ForEachProperty(func(key []byte, val vt.Value) error {
		fb.AddProperty(key, val)
		return nil
	})
}

// Finish serializes the complete layer record: name, features, key
// and value dictionaries, extent, and version.
func (lb *LayerBuilder) Finish() []byte {
	w := pbf.NewWriter()
	w.Field(1, []byte(lb.name))
	w.Raw(lb.features.Bytes())
	for _, key := range lb.keyIndex.Keys() {
		w.Field(3, key)
	}
	for _, val := range lb.valueIndex.Values() {
		w.Field(4, val.Encode())
	}
	w.Tag(5, pbf.Varint)
	w.Varint(uint64(lb.extent))
	w.Tag(15, pbf.Varint)
	w.Varint(uint64(lb.version))
	return w.Bytes()
}
