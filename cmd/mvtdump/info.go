// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	humanize "github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	vt "github.com/gogama/vectortile"
)

var infoJSON bool

func init() {
	infoCmd.Flags().BoolVarP(&infoJSON, "json", "j", false, "format information as JSON")
	rootCmd.AddCommand(infoCmd)
}

type layerSummary struct {
	Name      string `json:"name"`
	Version   uint32 `json:"version"`
	Extent    uint32 `json:"extent"`
	Features  int    `json:"features"`
	NumKeys   int    `json:"numKeys"`
	NumValues int    `json:"numValues"`
}

var infoCmd = &cobra.Command{
	Use:   "info <tile-file>",
	Short: "Print layer summaries for a tile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := readTileFile(args[0])
		if err != nil {
			log.Fatal(err)
		}
		log.Debugf("info: read %d bytes from %s", len(raw), args[0])

		layers, err := vt.NewTile(raw).Layers()
		if err != nil {
			log.Fatal(err)
		}
		log.Debugf("info: tile has %d layers", len(layers))

		summaries := make([]layerSummary, len(layers))
		for i, l := range layers {
			keys, err := l.KeyTable()
			if err != nil {
				log.Fatal(err)
			}
			values, err := l.ValueTable()
			if err != nil {
				log.Fatal(err)
			}
			summaries[i] = layerSummary{
				Name:      string(l.Name()),
				Version:   l.Version(),
				Extent:    l.Extent(),
				Features:  l.NumFeatures(),
				NumKeys:   len(keys),
				NumValues: len(values),
			}
		}

		if infoJSON {
			b, err := json.MarshalIndent(summaries, "", "  ")
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(string(b))
			return
		}

		fmt.Printf("%s: %s\n", args[0], humanize.Bytes(uint64(len(raw))))
		for _, s := range summaries {
			fmt.Printf("  %-20s v%d  extent=%-6d features=%-8s keys=%d values=%d\n",
				s.Name, s.Version, s.Extent, humanize.Comma(int64(s.Features)), s.NumKeys, s.NumValues)
		}
	},
}
