/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package ctyarchive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/archive/ctyarchive"
)

func TestWriter_BuildsCtyValues(t *testing.T) {
	w := ctyarchive.NewWriter()
	obj := w.Object()
	w.Insert(obj, "name", w.String("sample"))
	w.Insert(obj, "count", w.Int(-3))
	arr := w.Array()
	w.Append(arr, w.Bool(true))
	w.Append(arr, w.Null())
	w.Insert(obj, "flags", arr)

	v := ctyarchive.Value(obj)
	require.True(t, v.Type().IsObjectType())
	assert.True(t, v.GetAttr("name").RawEquals(cty.StringVal("sample")))
	assert.True(t, v.GetAttr("count").RawEquals(cty.NumberIntVal(-3)))
	flags := v.GetAttr("flags").AsValueSlice()
	require.Len(t, flags, 2)
	assert.True(t, flags[0].True())
	assert.True(t, flags[1].IsNull())
}

func TestWriter_EmptyContainers(t *testing.T) {
	w := ctyarchive.NewWriter()
	assert.True(t, ctyarchive.Value(w.Object()).RawEquals(cty.EmptyObjectVal))
	assert.True(t, ctyarchive.Value(w.Array()).RawEquals(cty.EmptyTupleVal))
}

func TestWriter_InsertReplacesKey(t *testing.T) {
	w := ctyarchive.NewWriter()
	obj := w.Object()
	w.Insert(obj, "x", w.Int(1))
	w.Insert(obj, "x", w.Int(2))
	r := ctyarchive.NewReader()
	assert.Equal(t, []string{"x"}, r.Keys(obj))
	m, ok := r.Member(obj, "x")
	require.True(t, ok)
	got, err := r.Int(m)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
}

func TestReader_Kinds(t *testing.T) {
	r := ctyarchive.NewReader()
	cases := []struct {
		node apis.Node
		want apis.NodeKind
	}{
		{cty.NullVal(cty.String), apis.KindNull},
		{cty.True, apis.KindBool},
		{cty.NumberIntVal(1), apis.KindNumber},
		{cty.StringVal("s"), apis.KindString},
		{cty.EmptyObjectVal, apis.KindObject},
		{cty.MapVal(map[string]cty.Value{"a": cty.True}), apis.KindObject},
		{cty.ListVal([]cty.Value{cty.True}), apis.KindArray},
		{cty.EmptyTupleVal, apis.KindArray},
		{nil, apis.KindNull},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, r.Kind(tc.node), "node %#v", tc.node)
	}
}

func TestReader_PrimitiveMismatch(t *testing.T) {
	r := ctyarchive.NewReader()
	_, err := r.Int(cty.StringVal("3"))
	assert.ErrorIs(t, err, ctyarchive.ErrNotPrimitive)
	_, err = r.Int(cty.NumberFloatVal(1.5))
	assert.Error(t, err)
}

func TestReader_MapMembers(t *testing.T) {
	r := ctyarchive.NewReader()
	m := cty.MapVal(map[string]cty.Value{"b": cty.NumberIntVal(2), "a": cty.NumberIntVal(1)})
	assert.Equal(t, []string{"a", "b"}, r.Keys(m))
	_, ok := r.Member(m, "c")
	assert.False(t, ok)
	n, ok := r.Member(m, "b")
	require.True(t, ok)
	u, err := r.Uint(n)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), u)
}

func TestMarshalRoundTrip(t *testing.T) {
	w := ctyarchive.NewWriter()
	obj := w.Object()
	w.Insert(obj, "x", w.Int(3))
	w.Insert(obj, "y", w.Float(4.5))
	w.Insert(obj, "tag", w.String("p"))
	w.Insert(obj, "none", w.Null())

	data, err := ctyarchive.Marshal(obj)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":3,"y":4.5,"tag":"p","none":null}`, string(data))

	v, err := ctyarchive.Unmarshal(data)
	require.NoError(t, err)
	r := ctyarchive.NewReader()
	x, _ := r.Member(v, "x")
	got, err := r.Int(x)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)
	none, _ := r.Member(v, "none")
	assert.Equal(t, apis.KindNull, r.Kind(none))
}

func TestUnmarshal_Invalid(t *testing.T) {
	_, err := ctyarchive.Unmarshal([]byte("{"))
	assert.Error(t, err)
}
