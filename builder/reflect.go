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
	"strings"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/identity"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/registry"
	"dirpx.dev/rtti/serialize"
)

// TagName is the struct tag read by Reflect.
const TagName = "rtti"

// Reflect registers T with a default constructor and, for struct types,
// declares every exported field with reflection-driven callbacks. When T
// or *T implements apis.Describer its description is attached as a
// meta.Description attribute.
//
// The tag `rtti:"name"` renames a field, `rtti:"-"` skips it and
// `rtti:",transient"` keeps it out of serialization. Embedded structs are
// declared as fields and as direct bases.
func Reflect[T any](reg *registry.Registry) *Type {
	b := Register[T](reg)
	if !b.Valid() {
		return b
	}
	Default[T](b)
	if d, ok := any(new(T)).(apis.Describer); ok {
		Attr(b, meta.Description(d.TypeDescription()))
	}

	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return b
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, transient, skip := parseTag(sf)
		if skip {
			continue
		}
		fb := reflectField[T](b, name, i, sf.Type)
		if transient {
			fb.Transient()
		}
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			b.AddBaseType(identity.OfType(sf.Type))
		}
	}
	return b
}

func parseTag(sf reflect.StructField) (name string, transient, skip bool) {
	tag, ok := sf.Tag.Lookup(TagName)
	if !ok {
		return sf.Name, false, false
	}
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = sf.Name
	}
	for opt := range strings.SplitSeq(opts, ",") {
		if opt == "transient" {
			transient = true
		}
	}
	return name, transient, false
}

func reflectField[T any](b *Type, name string, index int, ft reflect.Type) *FieldBuilder {
	reg := b.reg
	field := func(inst any) (reflect.Value, bool) {
		p, ok := inst.(*T)
		if !ok || p == nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(p).Elem().Field(index), true
	}
	target := func(ptr any) (reflect.Value, bool) {
		v := reflect.ValueOf(ptr)
		if !v.IsValid() || v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Type() != ft {
			return reflect.Value{}, false
		}
		return v.Elem(), true
	}

	return b.AddField(meta.DescriptorFor(ft, reg.Config()), name).
		Get(func(inst, dst any) {
			fv, ok := field(inst)
			d, dok := target(dst)
			if ok && dok {
				d.Set(fv)
			}
		}).
		Set(func(inst, src any) {
			fv, ok := field(inst)
			s, sok := target(src)
			if ok && sok {
				fv.Set(s)
			}
		}).
		Object(func(inst any) any {
			fv, ok := field(inst)
			if !ok {
				return nil
			}
			return fv.Addr().Interface()
		}).
		Copy(func(dst, src any) {
			d, dok := field(dst)
			s, sok := field(src)
			if dok && sok {
				d.Set(s)
			}
		}).
		Serialize(func(w apis.ArchiveWriter, inst any) (apis.Node, error) {
			fv, ok := field(inst)
			if !ok {
				return nil, serialize.ErrNilInstance
			}
			return serialize.Encode(reg, w, fv.Addr().Interface())
		}).
		Deserialize(func(r apis.ArchiveReader, n apis.Node, inst any) error {
			fv, ok := field(inst)
			if !ok {
				return serialize.ErrNilInstance
			}
			return serialize.Decode(reg, r, n, fv.Addr().Interface())
		}).
		Schema(schemaOf(ft))
}
