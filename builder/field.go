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

package builder

import (
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/serialize"
)

// FieldBuilder populates one field.
type FieldBuilder struct {
	f *meta.Field
}

// Meta returns the field record, or nil for an inert handle.
func (fb *FieldBuilder) Meta() *meta.Field { return fb.f }

// Get binds the get callback.
func (fb *FieldBuilder) Get(fn func(inst, dst any)) *FieldBuilder {
	if fb.f != nil {
		fb.f.BindGet(fn)
	}
	return fb
}

// Set binds the set callback.
func (fb *FieldBuilder) Set(fn func(inst, src any)) *FieldBuilder {
	if fb.f != nil {
		fb.f.BindSet(fn)
	}
	return fb
}

// Object binds the address-of callback.
func (fb *FieldBuilder) Object(fn func(inst any) any) *FieldBuilder {
	if fb.f != nil {
		fb.f.BindObject(fn)
	}
	return fb
}

// Copy binds the copy callback.
func (fb *FieldBuilder) Copy(fn func(dst, src any)) *FieldBuilder {
	if fb.f != nil {
		fb.f.BindCopy(fn)
	}
	return fb
}

// Serialize binds the serialize callback.
func (fb *FieldBuilder) Serialize(fn func(w apis.ArchiveWriter, inst any) (apis.Node, error)) *FieldBuilder {
	if fb.f != nil {
		fb.f.BindSerialize(fn)
	}
	return fb
}

// Deserialize binds the deserialize callback.
func (fb *FieldBuilder) Deserialize(fn func(r apis.ArchiveReader, n apis.Node, inst any) error) *FieldBuilder {
	if fb.f != nil {
		fb.f.BindDeserialize(fn)
	}
	return fb
}

// Schema binds the persistence schema accessor.
func (fb *FieldBuilder) Schema(fn func() (cty.Type, bool)) *FieldBuilder {
	if fb.f != nil {
		fb.f.BindSchema(fn)
	}
	return fb
}

// AddAttribute attaches an attribute to the field. Field attributes are not
// indexed by the registry.
func (fb *FieldBuilder) AddAttribute(props meta.Props, value any) *FieldBuilder {
	if fb.f != nil {
		fb.f.AppendAttribute(props, value)
	}
	return fb
}

// Transient marks the field as skipped by serialization.
func (fb *FieldBuilder) Transient() *FieldBuilder {
	return fb.AddAttribute(meta.PropsOf[meta.NotPersisted](), meta.NotPersisted{})
}

// Field appends a field of type F reached through at, and binds every
// field callback. at must return the address of the field inside *T.
func Field[T, F any](b *Type, name string, at func(*T) *F) *FieldBuilder {
	if !b.Valid() {
		return &FieldBuilder{}
	}
	reg := b.reg
	desc := meta.DescriptorFor(reflect.TypeFor[F](), reg.Config())
	return b.AddField(desc, name).
		Get(func(inst, dst any) {
			p, ok := inst.(*T)
			d, dok := dst.(*F)
			if ok && dok && p != nil && d != nil {
				*d = *at(p)
			}
		}).
		Set(func(inst, src any) {
			p, ok := inst.(*T)
			s, sok := src.(*F)
			if ok && sok && p != nil && s != nil {
				*at(p) = *s
			}
		}).
		Object(func(inst any) any {
			p, ok := inst.(*T)
			if !ok || p == nil {
				return nil
			}
			return at(p)
		}).
		Copy(func(dst, src any) {
			d, dok := dst.(*T)
			s, sok := src.(*T)
			if dok && sok && d != nil && s != nil {
				*at(d) = *at(s)
			}
		}).
		Serialize(func(w apis.ArchiveWriter, inst any) (apis.Node, error) {
			p, ok := inst.(*T)
			if !ok || p == nil {
				return nil, serialize.ErrNilInstance
			}
			return serialize.Encode(reg, w, at(p))
		}).
		Deserialize(func(r apis.ArchiveReader, n apis.Node, inst any) error {
			p, ok := inst.(*T)
			if !ok || p == nil {
				return serialize.ErrNilInstance
			}
			return serialize.Decode(reg, r, n, at(p))
		}).
		Schema(schemaOf(reflect.TypeFor[F]()))
}

// schemaOf returns an accessor for the cty type implied by t. Structs
// without cty tags have no implied type.
func schemaOf(t reflect.Type) func() (cty.Type, bool) {
	return func() (cty.Type, bool) {
		ty, err := gocty.ImpliedType(reflect.New(t).Interface())
		if err != nil {
			return cty.NilType, false
		}
		return ty, true
	}
}
