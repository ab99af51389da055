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

package ctyarchive

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"dirpx.dev/rtti/apis"
)

// ErrNotPrimitive is returned when a primitive is read from a node of
// another kind.
var ErrNotPrimitive = errors.New("rtti(ctyarchive): node kind mismatch")

// Reader implements apis.ArchiveReader over cty values. Nodes produced by
// Writer are accepted too.
type Reader struct{}

var _ apis.ArchiveReader = Reader{}

// NewReader returns a Reader.
func NewReader() Reader { return Reader{} }

func (Reader) Kind(n apis.Node) apis.NodeKind {
	return kindOf(Value(n))
}

func kindOf(v cty.Value) apis.NodeKind {
	if v.IsNull() || !v.IsKnown() {
		return apis.KindNull
	}
	t := v.Type()
	switch {
	case t == cty.Bool:
		return apis.KindBool
	case t == cty.Number:
		return apis.KindNumber
	case t == cty.String:
		return apis.KindString
	case t.IsObjectType(), t.IsMapType():
		return apis.KindObject
	case t.IsTupleType(), t.IsListType(), t.IsSetType():
		return apis.KindArray
	default:
		return apis.KindNull
	}
}

func (Reader) Member(obj apis.Node, key string) (apis.Node, bool) {
	v := Value(obj)
	if kindOf(v) != apis.KindObject {
		return nil, false
	}
	t := v.Type()
	if t.IsObjectType() {
		if !t.HasAttribute(key) {
			return nil, false
		}
		return v.GetAttr(key), true
	}
	k := cty.StringVal(key)
	if !v.HasIndex(k).True() {
		return nil, false
	}
	return v.Index(k), true
}

// Keys returns the member names of obj sorted lexically.
func (Reader) Keys(obj apis.Node) []string {
	v := Value(obj)
	if kindOf(v) != apis.KindObject {
		return nil
	}
	var keys []string
	if v.Type().IsObjectType() {
		for k := range v.Type().AttributeTypes() {
			keys = append(keys, k)
		}
	} else {
		for k := range v.AsValueMap() {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func (Reader) Elements(arr apis.Node) []apis.Node {
	v := Value(arr)
	if kindOf(v) != apis.KindArray {
		return nil
	}
	vals := v.AsValueSlice()
	out := make([]apis.Node, len(vals))
	for i, e := range vals {
		out[i] = e
	}
	return out
}

func (Reader) Bool(n apis.Node) (bool, error) {
	v, err := primitive(n, apis.KindBool)
	if err != nil {
		return false, err
	}
	return v.True(), nil
}

func (Reader) Int(n apis.Node) (int64, error) {
	v, err := primitive(n, apis.KindNumber)
	if err != nil {
		return 0, err
	}
	var i int64
	if err := gocty.FromCtyValue(v, &i); err != nil {
		return 0, err
	}
	return i, nil
}

func (Reader) Uint(n apis.Node) (uint64, error) {
	v, err := primitive(n, apis.KindNumber)
	if err != nil {
		return 0, err
	}
	var u uint64
	if err := gocty.FromCtyValue(v, &u); err != nil {
		return 0, err
	}
	return u, nil
}

func (Reader) Float(n apis.Node) (float64, error) {
	v, err := primitive(n, apis.KindNumber)
	if err != nil {
		return 0, err
	}
	f, _ := v.AsBigFloat().Float64()
	return f, nil
}

func (Reader) String(n apis.Node) (string, error) {
	v, err := primitive(n, apis.KindString)
	if err != nil {
		return "", err
	}
	return v.AsString(), nil
}

func primitive(n apis.Node, want apis.NodeKind) (cty.Value, error) {
	v := Value(n)
	if got := kindOf(v); got != want {
		return cty.NilVal, fmt.Errorf("%w: want %s, got %s", ErrNotPrimitive, want, got)
	}
	return v, nil
}
