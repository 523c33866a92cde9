// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vt "github.com/gogama/vectortile"
)

func TestKeyIndex_Implementations(t *testing.T) {
	for name, newIdx := range map[string]func() KeyIndex{
		"linear": NewLinearKeyIndex,
		"hashed": NewHashedKeyIndex,
	} {
		t.Run(name, func(t *testing.T) {
			k := newIdx()
			i0 := k.Intern([]byte("name"))
			i1 := k.Intern([]byte("population"))
			i2 := k.Intern([]byte("name"))
			assert.Equal(t, i0, i2)
			assert.NotEqual(t, i0, i1)
			assert.Equal(t, [][]byte{[]byte("name"), []byte("population")}, k.Keys())
		})
	}
}

func TestKeyIndex_MutationIsolation(t *testing.T) {
	k := NewLinearKeyIndex()
	key := []byte("name")
	k.Intern(key)
	key[0] = 'X'
	assert.Equal(t, "name", string(k.Keys()[0]))
}

func TestValueIndex_Implementations(t *testing.T) {
	for name, newIdx := range map[string]func() ValueIndex{
		"linear": NewLinearValueIndex,
		"hashed": NewHashedValueIndex,
	} {
		t.Run(name, func(t *testing.T) {
			v := newIdx()
			i0 := v.Intern(vt.NewStringValue("park"))
			i1 := v.Intern(vt.NewUintValue(4))
			i2 := v.Intern(vt.NewStringValue("park"))
			assert.Equal(t, i0, i2)
			assert.NotEqual(t, i0, i1)
			assert.Equal(t, []vt.Value{vt.NewStringValue("park"), vt.NewUintValue(4)}, v.Values())
		})
	}
}

func TestValueIndex_InternView(t *testing.T) {
	v := NewHashedValueIndex()
	encoded := vt.NewDoubleValue(3.5).Encode()
	i0, err := v.InternView(encoded)
	require.NoError(t, err)
	i1 := v.Intern(vt.NewDoubleValue(3.5))
	assert.Equal(t, i0, i1)
}
