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

import "dirpx.dev/rtti/meta"

// ValueBuilder populates one enum value.
type ValueBuilder struct {
	v *meta.EnumValue
}

// Code sets the numeric code.
func (vb *ValueBuilder) Code(code int64) *ValueBuilder {
	if vb.v != nil {
		vb.v.Code = code
	}
	return vb
}

// Address binds the canonical value accessor.
func (vb *ValueBuilder) Address(fn func() any) *ValueBuilder {
	if vb.v != nil {
		vb.v.BindAddress(fn)
	}
	return vb
}

// Match binds the comparator.
func (vb *ValueBuilder) Match(fn func(p any) bool) *ValueBuilder {
	if vb.v != nil {
		vb.v.BindMatch(fn)
	}
	return vb
}

// Meta returns the enum value record, or nil for an inert handle.
func (vb *ValueBuilder) Meta() *meta.EnumValue { return vb.v }

// Value appends the enum case v described by name, binding its code,
// address and comparator.
func Value[E ~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32](b *Type, name string, v E) *ValueBuilder {
	canonical := v
	return b.AddValue(name).
		Code(int64(v)).
		Address(func() any {
			c := canonical
			return &c
		}).
		Match(func(p any) bool {
			e, ok := p.(*E)
			return ok && e != nil && *e == canonical
		})
}
