// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package index provides the key and value dictionary interning
// structures a layer builder uses to deduplicate property keys and
// values as features are added.
package index

import (
	vt "github.com/gogama/vectortile"
)

// KeyIndex interns property key strings into a layer's key dictionary,
// returning the same index for the same key on repeated calls.
type KeyIndex interface {
	// Intern returns key's index in the dictionary, appending it if
	// this is the first time key has been seen.
	Intern(key []byte) uint32
	// Keys returns the dictionary built so far, in assignment order.
	Keys() [][]byte
}

// ValueIndex interns property values into a layer's value dictionary,
// returning the same index for an equal value on repeated calls.
type ValueIndex interface {
	// Intern returns v's index in the dictionary, appending it if this
	// is the first time an equal value has been seen.
	Intern(v vt.Value) uint32
	// InternView decodes raw as an encoded Value and interns it,
	// avoiding an extra decode/re-encode round trip when copying a
	// value straight from one tile's dictionary into another's.
	InternView(raw []byte) (uint32, error)
	// Values returns the dictionary built so far, in assignment order.
	Values() []vt.Value
}

// linearKeyIndex is a KeyIndex backed by an unsorted slice, searched
// linearly. It is appropriate for layers with few distinct keys, where
// the overhead of a hash map is not worth it.
type linearKeyIndex struct {
	keys [][]byte
}

// NewLinearKeyIndex returns a KeyIndex that interns by linear scan.
func NewLinearKeyIndex() KeyIndex {
	return &linearKeyIndex{}
}

func (k *linearKeyIndex) Intern(key []byte) uint32 {
	for i, existing := range k.keys {
		if string(existing) == string(key) {
			return uint32(i)
		}
	}
	cp := make([]byte, len(key))
	copy(cp, key)
	k.keys = append(k.keys, cp)
	return uint32(len(k.keys) - 1)
}

func (k *linearKeyIndex) Keys() [][]byte { return k.keys }

// hashedKeyIndex is a KeyIndex backed by a map, appropriate for layers
// with many distinct keys.
type hashedKeyIndex struct {
	keys   [][]byte
	lookup map[string]uint32
}

// NewHashedKeyIndex returns a KeyIndex that interns via a hash map.
func NewHashedKeyIndex() KeyIndex {
	return &hashedKeyIndex{lookup: make(map[string]uint32)}
}

func (k *hashedKeyIndex) Intern(key []byte) uint32 {
	if i, ok := k.lookup[string(key)]; ok {
		return i
	}
	cp := make([]byte, len(key))
	copy(cp, key)
	i := uint32(len(k.keys))
	k.keys = append(k.keys, cp)
	k.lookup[string(cp)] = i
	return i
}

func (k *hashedKeyIndex) Keys() [][]byte { return k.keys }

// linearValueIndex is a ValueIndex backed by an unsorted slice, since
// vt.Value is comparable and therefore usable with ==.
type linearValueIndex struct {
	values []vt.Value
}

// NewLinearValueIndex returns a ValueIndex that interns by linear scan.
func NewLinearValueIndex() ValueIndex {
	return &linearValueIndex{}
}

func (v *linearValueIndex) Intern(val vt.Value) uint32 {
	for i, existing := range v.values {
		if existing == val {
			return uint32(i)
		}
	}
	v.values = append(v.values, val)
	return uint32(len(v.values) - 1)
}

func (v *linearValueIndex) InternView(raw []byte) (uint32, error) {
	val, err := vt.DecodeValue(raw)
	if err != nil {
		return 0, err
	}
	return v.Intern(val), nil
}

func (v *linearValueIndex) Values() []vt.Value { return v.values }

// hashedValueIndex is a ValueIndex backed by a map keyed on vt.Value,
// appropriate for layers with many distinct values.
type hashedValueIndex struct {
	values []vt.Value
	lookup map[vt.Value]uint32
}

// NewHashedValueIndex returns a ValueIndex that interns via a hash map.
func NewHashedValueIndex() ValueIndex {
	return &hashedValueIndex{lookup: make(map[vt.Value]uint32)}
}

func (v *hashedValueIndex) Intern(val vt.Value) uint32 {
	if i, ok := v.lookup[val]; ok {
		return i
	}
	i := uint32(len(v.values))
	v.values = append(v.values, val)
	v.lookup[val] = i
	return i
}

func (v *hashedValueIndex) InternView(raw []byte) (uint32, error) {
	val, err := vt.DecodeValue(raw)
	if err != nil {
		return 0, err
	}
	return v.Intern(val), nil
}

func (v *hashedValueIndex) Values() []vt.Value { return v.values }
