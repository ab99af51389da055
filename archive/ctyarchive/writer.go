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
	"github.com/zclconf/go-cty/cty"

	"dirpx.dev/rtti/apis"
)

// object is a mutable object node. keys keeps insertion order.
type object struct {
	keys []string
	vals map[string]apis.Node
}

// array is a mutable array node.
type array struct {
	elems []apis.Node
}

// Writer implements apis.ArchiveWriter. The zero value is ready to use.
type Writer struct{}

var _ apis.ArchiveWriter = Writer{}

// NewWriter returns a Writer.
func NewWriter() Writer { return Writer{} }

func (Writer) Object() apis.Node { return &object{vals: make(map[string]apis.Node)} }
func (Writer) Array() apis.Node  { return &array{} }
func (Writer) Null() apis.Node   { return cty.NullVal(cty.DynamicPseudoType) }

func (Writer) Bool(v bool) apis.Node     { return cty.BoolVal(v) }
func (Writer) Int(v int64) apis.Node     { return cty.NumberIntVal(v) }
func (Writer) Uint(v uint64) apis.Node   { return cty.NumberUIntVal(v) }
func (Writer) Float(v float64) apis.Node { return cty.NumberFloatVal(v) }
func (Writer) String(v string) apis.Node { return cty.StringVal(v) }

// Insert sets obj[key] = v. Non-object nodes are ignored.
func (Writer) Insert(obj apis.Node, key string, v apis.Node) {
	o, ok := obj.(*object)
	if !ok {
		return
	}
	if _, exists := o.vals[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Append adds v to arr. Non-array nodes are ignored.
func (Writer) Append(arr apis.Node, v apis.Node) {
	if a, ok := arr.(*array); ok {
		a.elems = append(a.elems, v)
	}
}

// Value converts a node tree built by Writer into a cty value. Objects
// become object values and arrays become tuples. Unknown nodes become null.
func Value(n apis.Node) cty.Value {
	switch n := n.(type) {
	case cty.Value:
		return n
	case *object:
		if len(n.keys) == 0 {
			return cty.EmptyObjectVal
		}
		attrs := make(map[string]cty.Value, len(n.keys))
		for _, k := range n.keys {
			attrs[k] = Value(n.vals[k])
		}
		return cty.ObjectVal(attrs)
	case *array:
		if len(n.elems) == 0 {
			return cty.EmptyTupleVal
		}
		elems := make([]cty.Value, len(n.elems))
		for i, e := range n.elems {
			elems[i] = Value(e)
		}
		return cty.TupleVal(elems)
	default:
		return cty.NullVal(cty.DynamicPseudoType)
	}
}
