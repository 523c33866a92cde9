// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mvt

import (
	"fmt"
	"strconv"
	"strings"
)

func (v Value) String() string {
	switch v.typ {
	case ValueTypeString:
		return strconv.Quote(v.s)
	case ValueTypeFloat:
		return strconv.FormatFloat(float64(v.f32), 'g', -1, 32)
	case ValueTypeDouble:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case ValueTypeInt, ValueTypeSint:
		return strconv.FormatInt(v.i64, 10)
	case ValueTypeUint:
		return strconv.FormatUint(v.u64, 10)
	case ValueTypeBool:
		return strconv.FormatBool(v.b)
	default:
		return "<invalid value>"
	}
}

// String renders f's id, type, and raw tag pairs for diagnostics. It
// does not resolve tags through the layer dictionary; use
// ForEachProperty for that.
func (f *Feature) String() string {
	if err := f.ensureParsed(); err != nil {
		return "error: " + err.Error()
	}
	var b strings.Builder
	b.WriteString("Feature{")
	if f.hasID {
		fmt.Fprintf(&b, "ID:%d,", f.id)
	}
	fmt.Fprintf(&b, "Type:%s,Tags:%v}", f.typ, f.tags)
	return b.String()
}

// String renders l's header fields for diagnostics.
func (l *Layer) String() string {
	return fmt.Sprintf("Layer{Name:%q,Version:%d,Extent:%d,Features:%d}",
		string(l.name), l.version, l.extent, l.numFeatures)
}
