// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	vt "github.com/gogama/vectortile"
	"github.com/gogama/vectortile/spatialindex"
)

var (
	queryLayer    string
	queryBBox     string
	queryNodeSize uint16
)

func init() {
	queryCmd.Flags().StringVarP(&queryLayer, "layer", "l", "", "layer to query (required)")
	queryCmd.Flags().StringVar(&queryBBox, "bbox", "", "minX,minY,maxX,maxY in the layer's own extent units (required)")
	queryCmd.Flags().Uint16Var(&queryNodeSize, "node-size", 16, "packed R-tree node size")
	_ = queryCmd.MarkFlagRequired("layer")
	_ = queryCmd.MarkFlagRequired("bbox")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <tile-file>",
	Short: "List feature ids in a layer whose geometry intersects a bounding box",
	Long: "query builds a Hilbert-packed spatial index over every feature's " +
		"geometry bounds in the named layer, then reports the ids of features " +
		"whose bounds intersect --bbox.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := readTileFile(args[0])
		if err != nil {
			log.Fatal(err)
		}
		box, err := parseBBox(queryBBox)
		if err != nil {
			log.Fatal(err)
		}

		layer, err := findLayer(raw, queryLayer)
		if err != nil {
			log.Fatal(err)
		}

		idx, err := layer.BuildIndex(queryNodeSize)
		if err != nil {
			log.Fatal(err)
		}
		log.Debugf("query: built index over layer %q", queryLayer)

		layer.Reset()
		features, err := collectFeatures(layer)
		if err != nil {
			log.Fatal(err)
		}

		results := idx.Query(box)
		log.Debugf("query: %d features matched bbox %+v", len(results), box)
		for _, r := range results {
			f := features[r.FeatureIndex]
			id, err := f.ID()
			if err != nil {
				log.Fatal(err)
			}
			typ, err := f.Type()
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("%d\t%s\n", id, typ)
		}
	},
}

func findLayer(raw []byte, name string) (*vt.Layer, error) {
	tile := vt.NewTile(raw)
	for {
		layer, ok, err := tile.NextLayer()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("mvtdump: no layer named %q", name)
		}
		if string(layer.Name()) == name {
			return layer, nil
		}
	}
}

func collectFeatures(layer *vt.Layer) ([]*vt.Feature, error) {
	var out []*vt.Feature
	for {
		f, ok, err := layer.NextFeature()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, f)
	}
}

func parseBBox(s string) (spatialindex.Box, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return spatialindex.Box{}, fmt.Errorf("mvtdump: --bbox must have 4 comma-separated values, got %q", s)
	}
	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return spatialindex.Box{}, fmt.Errorf("mvtdump: --bbox: %w", err)
		}
		vals[i] = v
	}
	return spatialindex.Box{MinX: vals[0], MinY: vals[1], MaxX: vals[2], MaxY: vals[3]}, nil
}
