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

package serialize

import (
	"fmt"
	"math"
	"reflect"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/registry"
)

// EnumToValue encodes the case of the enum registered under id whose code
// is code. It reports false when the type is unknown or no case matches;
// the caller decides how to treat a miss.
func EnumToValue(reg *registry.Registry, id uint64, w apis.ArchiveWriter, code int64) (apis.Node, bool) {
	typ := reg.FindTypeByID(id)
	if typ == nil {
		return nil, false
	}
	v := typ.ValueByCode(code)
	if v == nil {
		return nil, false
	}
	return w.String(v.Name), true
}

// ValueToEnum resolves an archived enum value of the type registered under
// id. String nodes match by description, number nodes by code.
func ValueToEnum(reg *registry.Registry, id uint64, r apis.ArchiveReader, n apis.Node) (*meta.EnumValue, bool) {
	typ := reg.FindTypeByID(id)
	if typ == nil {
		return nil, false
	}
	return lookupEnum(typ, r, n)
}

func lookupEnum(typ *meta.Type, r apis.ArchiveReader, n apis.Node) (*meta.EnumValue, bool) {
	switch r.Kind(n) {
	case apis.KindString:
		s, err := r.String(n)
		if err != nil {
			return nil, false
		}
		v := typ.Value(s)
		return v, v != nil
	case apis.KindNumber:
		code, err := r.Int(n)
		if err != nil {
			u, uerr := r.Uint(n)
			if uerr != nil || u > math.MaxInt64 {
				return nil, false
			}
			code = int64(u)
		}
		v := typ.ValueByCode(code)
		return v, v != nil
	default:
		return nil, false
	}
}

// assignEnum stores the canonical value of v into inst.
func assignEnum(typ *meta.Type, v *meta.EnumValue, inst any) error {
	src := v.Address()
	if src == nil {
		return fmt.Errorf("%w: %s.%s has no value", ErrEnumMismatch, typ.Name, v.Name)
	}
	if typ.CanCopy() {
		typ.Copy(inst, src)
		return nil
	}
	dst, err := pointee(inst)
	if err != nil {
		return err
	}
	sv := reflect.ValueOf(src).Elem()
	if !sv.Type().AssignableTo(dst.Type()) {
		return fmt.Errorf("%w: %s into %s", ErrEnumMismatch, sv.Type(), dst.Type())
	}
	dst.Set(sv)
	return nil
}
