// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	vt "github.com/gogama/vectortile"
	"github.com/gogama/vectortile/geom"
	"github.com/gogama/vectortile/spatialindex"
)

var (
	decodeLayer  string
	decodeStrict bool
	decodeOrder  string
)

func init() {
	decodeCmd.Flags().StringVarP(&decodeLayer, "layer", "l", "", "only decode this layer (default: all layers)")
	decodeCmd.Flags().BoolVar(&decodeStrict, "strict", false, "validate geometry in strict mode (also reject zero-length segments and rings under 4 points)")
	decodeCmd.Flags().StringVar(&decodeOrder, "order", "", `feature print order: "" for input order, "hilbert" for Hilbert-curve order across layers`)
	rootCmd.AddCommand(decodeCmd)
}

type decodedFeature struct {
	Layer  string         `json:"layer"`
	ID     uint64         `json:"id,omitempty"`
	Type   string         `json:"type"`
	Bounds [4]int32       `json:"bounds"`
	Props  map[string]any `json:"properties,omitempty"`
}

var decodeCmd = &cobra.Command{
	Use:   "decode <tile-file>",
	Short: "Dump every feature in a tile as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if decodeOrder != "" && decodeOrder != "hilbert" {
			log.Fatalf("decode: --order must be \"\" or \"hilbert\", got %q", decodeOrder)
		}

		raw, err := readTileFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		tile := vt.NewTile(raw)
		opts := geom.Options{Strict: decodeStrict}

		var ordered []orderedFeature
		for {
			layer, ok, err := tile.NextLayer()
			if err != nil {
				log.Fatal(err)
			}
			if !ok {
				break
			}
			if decodeLayer != "" && string(layer.Name()) != decodeLayer {
				log.Debugf("decode: skipping layer %q", layer.Name())
				continue
			}
			log.Debugf("decode: dumping layer %q (%d features)", layer.Name(), layer.NumFeatures())
			if decodeOrder == "hilbert" {
				entries, err := collectLayer(layer, opts)
				if err != nil {
					log.Fatal(err)
				}
				ordered = append(ordered, entries...)
				continue
			}
			if err := dumpLayer(layer, opts); err != nil {
				log.Fatal(err)
			}
		}

		if decodeOrder == "hilbert" {
			sort.Slice(ordered, func(i, j int) bool { return ordered[i].hilbert < ordered[j].hilbert })
			for _, e := range ordered {
				b, err := json.Marshal(e.decodedFeature)
				if err != nil {
					log.Fatal(err)
				}
				fmt.Println(string(b))
			}
		}
	},
}

// orderedFeature pairs a decoded feature with its Hilbert-curve index
// for --order=hilbert's cross-layer sort.
type orderedFeature struct {
	decodedFeature
	hilbert int
}

// collectLayer is dumpLayer's non-streaming counterpart: it buffers
// every feature instead of printing as it goes, so the caller can sort
// across layers before printing.
func collectLayer(layer *vt.Layer, opts geom.Options) ([]orderedFeature, error) {
	name := string(layer.Name())
	extent := spatialindex.Box{MinX: 0, MinY: 0, MaxX: float64(layer.Extent()), MaxY: float64(layer.Extent())}
	var out []orderedFeature
	for {
		f, ok, err := layer.NextFeature()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		df, err := describeFeature(name, f, opts)
		if err != nil {
			return nil, err
		}
		box := spatialindex.Box{
			MinX: float64(df.Bounds[0]), MinY: float64(df.Bounds[1]),
			MaxX: float64(df.Bounds[2]), MaxY: float64(df.Bounds[3]),
		}
		out = append(out, orderedFeature{decodedFeature: df, hilbert: spatialindex.HilbertIndex(box, extent)})
	}
}

func dumpLayer(layer *vt.Layer, opts geom.Options) error {
	name := string(layer.Name())
	for {
		f, ok, err := layer.NextFeature()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		out, err := describeFeature(name, f, opts)
		if err != nil {
			return err
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Println(string(b))
	}
}

func describeFeature(layerName string, f *vt.Feature, opts geom.Options) (decodedFeature, error) {
	id, err := f.ID()
	if err != nil {
		return decodedFeature{}, err
	}
	typ, stream, err := f.Geometry()
	if err != nil {
		return decodedFeature{}, err
	}
	if err := validateGeometry(f, typ, opts); err != nil {
		log.Debugf("decode: feature %d in layer %q failed strict validation: %v", id, layerName, err)
		return decodedFeature{}, err
	}
	bounds, err := geom.StreamBounds(stream)
	if err != nil {
		return decodedFeature{}, err
	}
	props := make(map[string]any)
	err = f.ForEachProperty(func(key []byte, val vt.Value) error {
		props[string(key)] = valueToInterface(val)
		return nil
	})
	if err != nil {
		return decodedFeature{}, err
	}
	return decodedFeature{
		Layer:  layerName,
		ID:     id,
		Type:   typ.String(),
		Bounds: [4]int32{bounds.MinX, bounds.MinY, bounds.MaxX, bounds.MaxY},
		Props:  props,
	}, nil
}

// validateGeometry decodes f's geometry through the decoder matching
// its declared type, under opts, purely to surface a strict-mode
// validation error; the decoded points themselves are discarded since
// describeFeature only reports a bounding box.
func validateGeometry(f *vt.Feature, typ vt.GeometryType, opts geom.Options) error {
	switch typ {
	case vt.Point:
		return f.DecodePoint(opts, discardHandler{})
	case vt.LineString:
		return f.DecodeLineString(opts, discardHandler{})
	case vt.Polygon:
		return f.DecodePolygon(opts, discardHandler{})
	default:
		return nil
	}
}

type discardHandler struct{}

func (discardHandler) PointsBegin(int)           {}
func (discardHandler) PointsPoint(geom.Point)     {}
func (discardHandler) PointsEnd()                 {}
func (discardHandler) LineStringBegin(int)        {}
func (discardHandler) LineStringPoint(geom.Point) {}
func (discardHandler) LineStringEnd()             {}
func (discardHandler) RingBegin(int)              {}
func (discardHandler) RingPoint(geom.Point)       {}
func (discardHandler) RingEnd(bool)               {}

func valueToInterface(v vt.Value) any {
	switch v.Type() {
	case vt.ValueTypeString:
		s, _ := v.StringValue()
		return s
	case vt.ValueTypeFloat:
		f, _ := v.FloatValue()
		return f
	case vt.ValueTypeDouble:
		f, _ := v.DoubleValue()
		return f
	case vt.ValueTypeInt:
		i, _ := v.IntValue()
		return i
	case vt.ValueTypeSint:
		i, _ := v.SintValue()
		return i
	case vt.ValueTypeUint:
		u, _ := v.UintValue()
		return u
	case vt.ValueTypeBool:
		b, _ := v.BoolValue()
		return b
	default:
		return nil
	}
}
