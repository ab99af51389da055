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
	"dirpx.dev/rtti/identity"
)

// Type is the metadata record of one registered version of a type.
//
// Declaration order of fields, functions, constructors, values, attributes
// and bases is preserved. Functions sharing a name form an overload set.
type Type struct {
	// Name is the name the type was registered under.
	Name       string
	SimpleName string
	// Scope is the scope stack joined at registration time.
	Scope string
	// Version is 1-based and counts registrations of Name.
	Version int
	Props   Props

	Bases        []uint64
	Fields       []*Field
	Functions    []*Function
	Constructors []*Constructor
	// Default is the zero-parameter constructor, if any.
	Default    *Constructor
	Values     []*EnumValue
	Attributes Attributes

	overloads map[string][]*Function
	copy      func(dst, src any)
}

// NewType returns an empty record. Registries create records; callers use
// registry.RegisterType instead.
func NewType(name, scope string, version int, props Props) *Type {
	return &Type{
		Name:       name,
		SimpleName: identity.SimpleName(name),
		Scope:      scope,
		Version:    version,
		Props:      props,
		overloads:  make(map[string][]*Function),
	}
}

// ID returns the type identity.
func (t *Type) ID() uint64 { return t.Props.ID }

// IsEnum reports whether t declares enumeration values.
func (t *Type) IsEnum() bool { return len(t.Values) > 0 }

// Field returns the field named name, or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Function returns the first function named name, or nil.
func (t *Type) Function(name string) *Function {
	if fs := t.overloads[name]; len(fs) > 0 {
		return fs[0]
	}
	return nil
}

// Overloads returns every function named name in declaration order.
func (t *Type) Overloads(name string) []*Function {
	return t.overloads[name]
}

// Value returns the enumeration value described by name, or nil.
func (t *Type) Value(name string) *EnumValue {
	for _, v := range t.Values {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// ValueByCode returns the first enumeration value with the given code, or nil.
func (t *Type) ValueByCode(code int64) *EnumValue {
	for _, v := range t.Values {
		if v.Code == code {
			return v
		}
	}
	return nil
}

// ValueOf returns the enumeration value matching the instance p, or nil.
func (t *Type) ValueOf(p any) *EnumValue {
	for _, v := range t.Values {
		if v.Match(p) {
			return v
		}
	}
	return nil
}

// Attribute returns the type attribute whose payload identity is id, or nil.
func (t *Type) Attribute(id uint64) *Attribute {
	return t.Attributes.Find(id)
}

// DerivesFrom reports whether base is a direct base of t.
func (t *Type) DerivesFrom(base uint64) bool {
	for _, b := range t.Bases {
		if b == base {
			return true
		}
	}
	return false
}

// New allocates an instance through the default constructor. It returns nil
// when t has none.
func (t *Type) New() any {
	if t.Default == nil {
		return nil
	}
	return t.Default.New(nil)
}

// Copy copies the whole value from src to dst (both *T).
func (t *Type) Copy(dst, src any) {
	if t.copy != nil {
		t.copy(dst, src)
	}
}

// CanCopy reports whether a whole-object copy callback is bound.
func (t *Type) CanCopy() bool { return t.copy != nil }

// BindCopy sets the whole-object copy callback.
func (t *Type) BindCopy(fn func(dst, src any)) { t.copy = fn }

// AppendField declares a new field and returns it for population.
func (t *Type) AppendField(name string, desc Descriptor) *Field {
	f := &Field{Name: name, Index: len(t.Fields), Desc: desc}
	t.Fields = append(t.Fields, f)
	return f
}

// AppendFunction declares a new function and adds it to the overload set
// of name.
func (t *Type) AppendFunction(name string, ret Descriptor, params []Param) *Function {
	fn := &Function{Name: name, Return: ret, Params: params}
	t.Functions = append(t.Functions, fn)
	if t.overloads == nil {
		t.overloads = make(map[string][]*Function)
	}
	t.overloads[name] = append(t.overloads[name], fn)
	return fn
}

// AppendConstructor declares a constructor. A zero-parameter constructor
// becomes the default, replacing any earlier one.
func (t *Type) AppendConstructor(params []Descriptor) *Constructor {
	c := &Constructor{Params: params}
	t.Constructors = append(t.Constructors, c)
	if c.IsDefault() {
		t.Default = c
	}
	return c
}

// AppendValue declares an enumeration value.
func (t *Type) AppendValue(name string, code int64) *EnumValue {
	v := &EnumValue{Name: name, Code: code}
	t.Values = append(t.Values, v)
	return v
}

// AppendAttribute attaches an attribute payload to t.
func (t *Type) AppendAttribute(props Props, value any) *Attribute {
	a := &Attribute{Props: props, Value: value}
	t.Attributes = append(t.Attributes, a)
	return a
}

// AppendBase records base as a direct base of t. Duplicates are ignored.
func (t *Type) AppendBase(base uint64) bool {
	if t.DerivesFrom(base) {
		return false
	}
	t.Bases = append(t.Bases, base)
	return true
}

// AppendAttribute attaches an attribute payload to f.
func (f *Field) AppendAttribute(props Props, value any) *Attribute {
	a := &Attribute{Props: props, Value: value}
	f.Attributes = append(f.Attributes, a)
	return a
}
