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

package meta

import (
	"github.com/zclconf/go-cty/cty"

	"dirpx.dev/rtti/apis"
)

// Field is one declared member of a registered type.
type Field struct {
	Name       string
	Index      int
	Desc       Descriptor
	Attributes Attributes

	get         func(inst, dst any)
	set         func(inst, src any)
	object      func(inst any) any
	copy        func(dst, src any)
	serialize   func(w apis.ArchiveWriter, inst any) (apis.Node, error)
	deserialize func(r apis.ArchiveReader, n apis.Node, inst any) error
	schema      func() (cty.Type, bool)
}

// Get copies the field's current value in inst into dst (a pointer to a
// value of the field's type).
func (f *Field) Get(inst, dst any) {
	if f.get != nil {
		f.get(inst, dst)
	}
}

// Set assigns the value pointed to by src to the field in inst.
func (f *Field) Set(inst, src any) {
	if f.set != nil {
		f.set(inst, src)
	}
}

// Object returns the address of the field inside inst, or nil.
func (f *Field) Object(inst any) any {
	if f.object == nil {
		return nil
	}
	return f.object(inst)
}

// Copy copies the field from src to dst. Pointer and reference fields copy
// the pointer itself, never the referent.
func (f *Field) Copy(dst, src any) {
	if f.copy != nil {
		f.copy(dst, src)
	}
}

// Serialize encodes the field's value in inst. A nil node with a nil error
// means nothing was written.
func (f *Field) Serialize(w apis.ArchiveWriter, inst any) (apis.Node, error) {
	if f.serialize == nil {
		return nil, nil
	}
	return f.serialize(w, inst)
}

// Deserialize decodes n into the field of inst.
func (f *Field) Deserialize(r apis.ArchiveReader, n apis.Node, inst any) error {
	if f.deserialize == nil {
		return nil
	}
	return f.deserialize(r, n, inst)
}

// SchemaType returns the persistence schema type of the field, if known.
func (f *Field) SchemaType() (cty.Type, bool) {
	if f.schema == nil {
		return cty.NilType, false
	}
	return f.schema()
}

// Attribute returns the field attribute whose payload identity is id, or nil.
func (f *Field) Attribute(id uint64) *Attribute {
	return f.Attributes.Find(id)
}

// BindGet sets the get callback.
func (f *Field) BindGet(fn func(inst, dst any)) { f.get = fn }

// BindSet sets the set callback.
func (f *Field) BindSet(fn func(inst, src any)) { f.set = fn }

// BindObject sets the address-of callback.
func (f *Field) BindObject(fn func(inst any) any) { f.object = fn }

// BindCopy sets the copy callback.
func (f *Field) BindCopy(fn func(dst, src any)) { f.copy = fn }

// BindSerialize sets the serialize callback.
func (f *Field) BindSerialize(fn func(w apis.ArchiveWriter, inst any) (apis.Node, error)) {
	f.serialize = fn
}

// BindDeserialize sets the deserialize callback.
func (f *Field) BindDeserialize(fn func(r apis.ArchiveReader, n apis.Node, inst any) error) {
	f.deserialize = fn
}

// BindSchema sets the persistence schema accessor.
func (f *Field) BindSchema(fn func() (cty.Type, bool)) { f.schema = fn }
