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
	"dirpx.dev/rtti/identity"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/registry"
)

// Type builds one registered type.
type Type struct {
	reg *registry.Registry
	typ *meta.Type
}

// New registers name with props and returns a builder over the new record.
// The builder is inert when the registry rejects the registration.
func New(reg *registry.Registry, name string, props meta.Props) *Type {
	return Wrap(reg, reg.RegisterType(name, props))
}

// Wrap returns a builder over an existing record of reg. A nil record gives
// an inert builder.
func Wrap(reg *registry.Registry, typ *meta.Type) *Type {
	return &Type{reg: reg, typ: typ}
}

// Register registers T under its decorated Go name and binds a whole-value
// copy callback.
func Register[T any](reg *registry.Registry) *Type {
	return RegisterAs[T](reg, identity.NameOf[T]())
}

// RegisterAs registers T under name and binds a whole-value copy callback.
func RegisterAs[T any](reg *registry.Registry, name string) *Type {
	b := New(reg, name, meta.PropsOf[T]())
	return b.Copy(func(dst, src any) {
		d, ok := dst.(*T)
		if !ok {
			return
		}
		if s, ok := src.(*T); ok {
			*d = *s
		}
	})
}

// Valid reports whether the builder wraps a record.
func (b *Type) Valid() bool { return b != nil && b.typ != nil }

// Meta returns the wrapped record, or nil for an inert builder.
func (b *Type) Meta() *meta.Type {
	if b == nil {
		return nil
	}
	return b.typ
}

// Registry returns the registry the type was registered in.
func (b *Type) Registry() *registry.Registry { return b.reg }

// AddField appends a field described by desc.
func (b *Type) AddField(desc meta.Descriptor, name string) *FieldBuilder {
	if !b.Valid() {
		return &FieldBuilder{}
	}
	return &FieldBuilder{f: b.typ.AppendField(name, desc)}
}

// AddFunction appends a function to the overload set of name.
func (b *Type) AddFunction(name string) *FunctionBuilder {
	if !b.Valid() {
		return &FunctionBuilder{}
	}
	return &FunctionBuilder{
		fn:  b.typ.AppendFunction(name, meta.Descriptor{}, nil),
		cfg: b.reg.Config(),
		log: b.reg.Logger(),
	}
}

// AddConstructor appends a constructor taking params. Without params it
// becomes the default constructor.
func (b *Type) AddConstructor(params ...meta.Descriptor) *ConstructorBuilder {
	if !b.Valid() {
		return &ConstructorBuilder{}
	}
	return &ConstructorBuilder{c: b.typ.AppendConstructor(params)}
}

// AddValue appends an enum value with the given description. Its code is
// its position unless set with ValueBuilder.Code.
func (b *Type) AddValue(description string) *ValueBuilder {
	if !b.Valid() {
		return &ValueBuilder{}
	}
	return &ValueBuilder{v: b.typ.AppendValue(description, int64(len(b.typ.Values)))}
}

// AddAttribute attaches an attribute of the type described by props and
// indexes the type under it.
func (b *Type) AddAttribute(props meta.Props) *AttributeBuilder {
	if !b.Valid() {
		return &AttributeBuilder{}
	}
	a := b.typ.AppendAttribute(props, nil)
	b.reg.IndexAttribute(props.ID, b.typ.ID())
	return &AttributeBuilder{a: a}
}

// AddBaseType declares base as a direct base of the type.
func (b *Type) AddBaseType(base uint64) *Type {
	if !b.Valid() {
		return b
	}
	if b.typ.AppendBase(base) {
		b.reg.IndexBase(base, b.typ.ID())
	}
	return b
}

// Copy binds the whole-object copy callback.
func (b *Type) Copy(fn func(dst, src any)) *Type {
	if b.Valid() {
		b.typ.BindCopy(fn)
	}
	return b
}

// Base declares B as a direct base of the type.
func Base[B any](b *Type) *Type {
	return b.AddBaseType(identity.Of[B]())
}

// Attr attaches value as an attribute of the type and indexes it.
func Attr[A any](b *Type, value A) *AttributeBuilder {
	return b.AddAttribute(meta.PropsOf[A]()).Value(value)
}
