// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package mvt decodes and encodes Mapbox Vector Tiles: the wire-format
// reader (Tile, Layer, Feature, Value) and, in the build subpackage,
// the incremental builder that produces the same wire format.
//
// Readers are zero-copy, non-owning views over caller-supplied byte
// slices: string and byte accessors alias the source buffer rather
// than copying it, so the source must outlive any reader built over
// it.
package mvt

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/gogama/vectortile/internal/pbf"
	"github.com/gogama/vectortile/mvterr"
)

// ValueType discriminates which of a Value's scalar payloads is set.
type ValueType int

const (
	ValueTypeString ValueType = iota
	ValueTypeFloat
	ValueTypeDouble
	ValueTypeInt
	ValueTypeUint
	ValueTypeSint
	ValueTypeBool
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeString:
		return "string"
	case ValueTypeFloat:
		return "float"
	case ValueTypeDouble:
		return "double"
	case ValueTypeInt:
		return "int"
	case ValueTypeUint:
		return "uint"
	case ValueTypeSint:
		return "sint"
	case ValueTypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is a tagged scalar: exactly one payload is meaningful,
// selected by Type. The zero Value is the empty string.
//
// Value is comparable (all fields are), so it can be used directly as
// a map key by a ValueIndex implementation.
type Value struct {
	typ ValueType
	s   string
	f32 float32
	f64 float64
	i64 int64
	u64 uint64
	b   bool
}

// NewStringValue returns a string-typed Value.
func NewStringValue(s string) Value { return Value{typ: ValueTypeString, s: s} }

// NewFloatValue returns a float32-typed Value.
func NewFloatValue(f float32) Value { return Value{typ: ValueTypeFloat, f32: f} }

// NewDoubleValue returns a float64-typed Value.
func NewDoubleValue(f float64) Value { return Value{typ: ValueTypeDouble, f64: f} }

// NewIntValue returns an int64-typed Value, written as a plain
// (non-zigzag) varint.
func NewIntValue(i int64) Value { return Value{typ: ValueTypeInt, i64: i} }

// NewUintValue returns a uint64-typed Value.
func NewUintValue(u uint64) Value { return Value{typ: ValueTypeUint, u64: u} }

// NewSintValue returns an int64-typed Value, written as a
// zigzag-encoded varint.
func NewSintValue(i int64) Value { return Value{typ: ValueTypeSint, i64: i} }

// NewBoolValue returns a bool-typed Value.
func NewBoolValue(b bool) Value { return Value{typ: ValueTypeBool, b: b} }

// Type reports which payload is set.
func (v Value) Type() ValueType { return v.typ }

func (v Value) typeErr(want ValueType) error {
	return mvterr.Typef("value is %s, not %s", v.typ, want)
}

// StringValue returns the string payload, or a TypeError if Type is
// not ValueTypeString.
func (v Value) StringValue() (string, error) {
	if v.typ != ValueTypeString {
		return "", v.typeErr(ValueTypeString)
	}
	return v.s, nil
}

// FloatValue returns the float32 payload, or a TypeError if Type is
// not ValueTypeFloat.
func (v Value) FloatValue() (float32, error) {
	if v.typ != ValueTypeFloat {
		return 0, v.typeErr(ValueTypeFloat)
	}
	return v.f32, nil
}

// DoubleValue returns the float64 payload, or a TypeError if Type is
// not ValueTypeDouble.
func (v Value) DoubleValue() (float64, error) {
	if v.typ != ValueTypeDouble {
		return 0, v.typeErr(ValueTypeDouble)
	}
	return v.f64, nil
}

// IntValue returns the int64 payload, or a TypeError if Type is not
// ValueTypeInt.
func (v Value) IntValue() (int64, error) {
	if v.typ != ValueTypeInt {
		return 0, v.typeErr(ValueTypeInt)
	}
	return v.i64, nil
}

// UintValue returns the uint64 payload, or a TypeError if Type is not
// ValueTypeUint.
func (v Value) UintValue() (uint64, error) {
	if v.typ != ValueTypeUint {
		return 0, v.typeErr(ValueTypeUint)
	}
	return v.u64, nil
}

// SintValue returns the int64 payload, or a TypeError if Type is not
// ValueTypeSint.
func (v Value) SintValue() (int64, error) {
	if v.typ != ValueTypeSint {
		return 0, v.typeErr(ValueTypeSint)
	}
	return v.i64, nil
}

// BoolValue returns the bool payload, or a TypeError if Type is not
// ValueTypeBool.
func (v Value) BoolValue() (bool, error) {
	if v.typ != ValueTypeBool {
		return false, v.typeErr(ValueTypeBool)
	}
	return v.b, nil
}

// DecodeValue parses b as a standalone value record (exactly one of
// fields 1-7 set). It is exported for callers, such as
// a layer builder's value index, that need to intern an already-
// encoded value without re-deriving its typed payload by hand.
func DecodeValue(b []byte) (Value, error) {
	return decodeValue(b)
}

// decodeValue parses one value record: exactly one of fields 1-7
// must be set.
func decodeValue(b []byte) (Value, error) {
	r := pbf.NewReader(b)
	var v Value
	var set bool

	requireUnset := func() error {
		if set {
			return mvterr.Formatf("value record has more than one scalar payload set")
		}
		set = true
		return nil
	}

	for !r.Done() {
		field, wt, err := r.Next()
		if err != nil {
			return Value{}, err
		}
		switch field {
		case 1:
			s, err := r.Bytes()
			if err != nil {
				return Value{}, err
			}
			if err := requireUnset(); err != nil {
				return Value{}, err
			}
			v = Value{typ: ValueTypeString, s: unsafeString(s)}
		case 2:
			b, err := r.Fixed32Bytes()
			if err != nil {
				return Value{}, err
			}
			if err := requireUnset(); err != nil {
				return Value{}, err
			}
			v = Value{typ: ValueTypeFloat, f32: flatbuffers.GetFloat32(b)}
		case 3:
			b, err := r.Fixed64Bytes()
			if err != nil {
				return Value{}, err
			}
			if err := requireUnset(); err != nil {
				return Value{}, err
			}
			v = Value{typ: ValueTypeDouble, f64: flatbuffers.GetFloat64(b)}
		case 4:
			u, err := r.Varint()
			if err != nil {
				return Value{}, err
			}
			if err := requireUnset(); err != nil {
				return Value{}, err
			}
			v = Value{typ: ValueTypeInt, i64: int64(u)}
		case 5:
			u, err := r.Varint()
			if err != nil {
				return Value{}, err
			}
			if err := requireUnset(); err != nil {
				return Value{}, err
			}
			v = Value{typ: ValueTypeUint, u64: u}
		case 6:
			z, err := r.Zigzag()
			if err != nil {
				return Value{}, err
			}
			if err := requireUnset(); err != nil {
				return Value{}, err
			}
			v = Value{typ: ValueTypeSint, i64: z}
		case 7:
			u, err := r.Varint()
			if err != nil {
				return Value{}, err
			}
			if err := requireUnset(); err != nil {
				return Value{}, err
			}
			v = Value{typ: ValueTypeBool, b: u != 0}
		default:
			if err := r.Skip(wt); err != nil {
				return Value{}, err
			}
		}
	}
	if !set {
		return Value{}, mvterr.Formatf("value record has no scalar payload set")
	}
	return v, nil
}

// EncodeTo serializes v as a value record into w.
func (v Value) EncodeTo(w *pbf.Writer) {
	switch v.typ {
	case ValueTypeString:
		w.Tag(1, pbf.Bytes)
		w.LengthDelimited([]byte(v.s))
	case ValueTypeFloat:
		w.Tag(2, pbf.Fixed32)
		buf := make([]byte, flatbuffers.SizeFloat32)
		flatbuffers.WriteFloat32(buf, v.f32)
		w.Fixed32(buf)
	case ValueTypeDouble:
		w.Tag(3, pbf.Fixed64)
		buf := make([]byte, flatbuffers.SizeFloat64)
		flatbuffers.WriteFloat64(buf, v.f64)
		w.Fixed64(buf)
	case ValueTypeInt:
		w.Tag(4, pbf.Varint)
		w.Varint(uint64(v.i64))
	case ValueTypeUint:
		w.Tag(5, pbf.Varint)
		w.Varint(v.u64)
	case ValueTypeSint:
		w.Tag(6, pbf.Varint)
		w.Zigzag(v.i64)
	case ValueTypeBool:
		w.Tag(7, pbf.Varint)
		if v.b {
			w.Varint(1)
		} else {
			w.Varint(0)
		}
	}
}

// Encode serializes v as a standalone value record.
func (v Value) Encode() []byte {
	w := pbf.NewWriter()
	v.EncodeTo(w)
	return w.Bytes()
}
