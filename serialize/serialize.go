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
	"reflect"
	"slices"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/identity"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/registry"
)

var notPersisted = identity.Of[meta.NotPersisted]()

// Serialize encodes the instance inst (a *T) of the type registered under id.
func Serialize(reg *registry.Registry, id uint64, w apis.ArchiveWriter, inst any) (apis.Node, error) {
	typ := reg.FindTypeByID(id)
	if typ == nil {
		return nil, fmt.Errorf("%w: %#x", ErrUnknownType, id)
	}
	return SerializeType(typ, w, inst)
}

// SerializeType encodes inst through typ's metadata. inst must be a non-nil
// pointer.
func SerializeType(typ *meta.Type, w apis.ArchiveWriter, inst any) (apis.Node, error) {
	if _, err := pointee(inst); err != nil {
		return nil, err
	}
	w = track(w)
	if len(typ.Fields) == 0 {
		return serializeValue(typ, w, inst)
	}
	obj := w.Object()
	for _, f := range typ.Fields {
		if f.Attribute(notPersisted) != nil {
			continue
		}
		n, err := f.Serialize(w, inst)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", typ.Name, f.Name, err)
		}
		if n != nil {
			w.Insert(obj, f.Name, n)
		}
	}
	return obj, nil
}

func serializeValue(typ *meta.Type, w apis.ArchiveWriter, inst any) (apis.Node, error) {
	if typ.IsEnum() {
		v := typ.ValueOf(inst)
		if v == nil {
			return nil, fmt.Errorf("%w: %s", ErrEnumMismatch, typ.Name)
		}
		return w.String(v.Name), nil
	}
	if s, ok := scalars[typ.ID()]; ok {
		if n, ok := s.encode(w, inst); ok {
			return n, nil
		}
	}
	rv, err := pointee(inst)
	if err != nil {
		return nil, err
	}
	return encodeKind(w, rv)
}

// Deserialize decodes n into the instance inst (a *T) of the type registered
// under id.
func Deserialize(reg *registry.Registry, id uint64, r apis.ArchiveReader, n apis.Node, inst any) error {
	typ := reg.FindTypeByID(id)
	if typ == nil {
		return fmt.Errorf("%w: %#x", ErrUnknownType, id)
	}
	return DeserializeType(typ, r, n, inst)
}

// DeserializeType decodes n into inst through typ's metadata. Fields
// missing from n keep their current value.
func DeserializeType(typ *meta.Type, r apis.ArchiveReader, n apis.Node, inst any) error {
	if _, err := pointee(inst); err != nil {
		return err
	}
	if len(typ.Fields) == 0 {
		return deserializeValue(typ, r, n, inst)
	}
	if k := r.Kind(n); k != apis.KindObject {
		return fmt.Errorf("%w: %s wants object, got %s", ErrNodeKind, typ.Name, k)
	}
	for _, f := range typ.Fields {
		if f.Attribute(notPersisted) != nil {
			continue
		}
		m, ok := r.Member(n, f.Name)
		if !ok {
			continue
		}
		if err := f.Deserialize(r, m, inst); err != nil {
			return fmt.Errorf("%s.%s: %w", typ.Name, f.Name, err)
		}
	}
	return nil
}

func deserializeValue(typ *meta.Type, r apis.ArchiveReader, n apis.Node, inst any) error {
	if typ.IsEnum() {
		v, ok := lookupEnum(typ, r, n)
		if !ok {
			return fmt.Errorf("%w: %s", ErrEnumMismatch, typ.Name)
		}
		return assignEnum(typ, v, inst)
	}
	if s, ok := scalars[typ.ID()]; ok {
		if handled, err := s.decode(r, n, inst); handled {
			return err
		}
	}
	rv, err := pointee(inst)
	if err != nil {
		return err
	}
	return decodeKind(r, n, rv)
}

// pointee returns the value inst points to.
func pointee(inst any) (reflect.Value, error) {
	rv := reflect.ValueOf(inst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, ErrNilInstance
	}
	return rv.Elem(), nil
}

// Encode encodes the value ptr points to. Registered types go through their
// metadata; containers are walked. A nil pointer value encodes to nil.
// Reaching a pointer, map or slice that is already being encoded on the
// current path returns ErrCycle.
func Encode(reg *registry.Registry, w apis.ArchiveWriter, ptr any) (apis.Node, error) {
	rv, err := pointee(ptr)
	if err != nil {
		return nil, err
	}
	return encode(reg, track(w), rv)
}

func encode(reg *registry.Registry, w *tracker, rv reflect.Value) (apis.Node, error) {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		leave, err := w.enter(rv)
		if err != nil {
			return nil, err
		}
		defer leave()
		return encode(reg, w, rv.Elem())

	case reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		e := rv.Elem()
		tmp := reflect.New(e.Type()).Elem()
		tmp.Set(e)
		return encode(reg, w, tmp)

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice {
			if rv.IsNil() {
				return nil, nil
			}
			leave, err := w.enter(rv)
			if err != nil {
				return nil, err
			}
			defer leave()
		}
		arr := w.Array()
		for i := 0; i < rv.Len(); i++ {
			n, err := encode(reg, w, rv.Index(i))
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			if n == nil {
				n = w.Null()
			}
			w.Append(arr, n)
		}
		return arr, nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key %s", ErrUnsupportedKind, rv.Type().Key())
		}
		if rv.IsNil() {
			return nil, nil
		}
		leave, err := w.enter(rv)
		if err != nil {
			return nil, err
		}
		defer leave()
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			switch {
			case a.String() < b.String():
				return -1
			case a.String() > b.String():
				return 1
			}
			return 0
		})
		obj := w.Object()
		for _, k := range keys {
			elem := reflect.New(rv.Type().Elem()).Elem()
			elem.Set(rv.MapIndex(k))
			n, err := encode(reg, w, elem)
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k.String(), err)
			}
			if n == nil {
				n = w.Null()
			}
			w.Insert(obj, k.String(), n)
		}
		return obj, nil

	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, rv.Type())
	}

	inst := addr(rv)
	if typ := reg.FindTypeByID(identity.OfType(rv.Type())); typ != nil {
		return SerializeType(typ, w, inst)
	}
	return encodeKind(w, rv)
}

// Decode decodes n into the value ptr points to, allocating pointers,
// slices and maps as needed.
func Decode(reg *registry.Registry, r apis.ArchiveReader, n apis.Node, ptr any) error {
	rv, err := pointee(ptr)
	if err != nil {
		return err
	}
	return decode(reg, r, n, rv)
}

func decode(reg *registry.Registry, r apis.ArchiveReader, n apis.Node, rv reflect.Value) error {
	kind := r.Kind(n)
	switch rv.Kind() {
	case reflect.Pointer:
		if kind == apis.KindNull {
			rv.SetZero()
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return decode(reg, r, n, rv.Elem())

	case reflect.Interface:
		if kind == apis.KindNull {
			rv.SetZero()
			return nil
		}
		return fmt.Errorf("%w: interface %s", ErrUnsupportedKind, rv.Type())

	case reflect.Slice:
		if kind == apis.KindNull {
			rv.SetZero()
			return nil
		}
		if kind != apis.KindArray {
			return fmt.Errorf("%w: %s wants array, got %s", ErrNodeKind, rv.Type(), kind)
		}
		elems := r.Elements(n)
		s := reflect.MakeSlice(rv.Type(), len(elems), len(elems))
		for i, e := range elems {
			if err := decode(reg, r, e, s.Index(i)); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		rv.Set(s)
		return nil

	case reflect.Array:
		if kind != apis.KindArray {
			return fmt.Errorf("%w: %s wants array, got %s", ErrNodeKind, rv.Type(), kind)
		}
		for i, e := range r.Elements(n) {
			if i >= rv.Len() {
				break
			}
			if err := decode(reg, r, e, rv.Index(i)); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		return nil

	case reflect.Map:
		t := rv.Type()
		if t.Key().Kind() != reflect.String {
			return fmt.Errorf("%w: map key %s", ErrUnsupportedKind, t.Key())
		}
		if kind == apis.KindNull {
			rv.SetZero()
			return nil
		}
		if kind != apis.KindObject {
			return fmt.Errorf("%w: %s wants object, got %s", ErrNodeKind, t, kind)
		}
		m := reflect.MakeMap(t)
		for _, k := range r.Keys(n) {
			member, _ := r.Member(n, k)
			elem := reflect.New(t.Elem()).Elem()
			if err := decode(reg, r, member, elem); err != nil {
				return fmt.Errorf("[%q]: %w", k, err)
			}
			m.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), elem)
		}
		rv.Set(m)
		return nil

	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return fmt.Errorf("%w: %s", ErrUnsupportedKind, rv.Type())
	}

	if kind == apis.KindNull {
		return nil
	}
	inst := addr(rv)
	if typ := reg.FindTypeByID(identity.OfType(rv.Type())); typ != nil {
		return DeserializeType(typ, r, n, inst)
	}
	return decodeKind(r, n, rv)
}

// tracker carries the reference values on the current encoding path. It
// wraps the caller's writer so the path survives field callbacks, which
// receive the writer and re-enter Encode.
type tracker struct {
	apis.ArchiveWriter
	path map[ref]struct{}
}

type ref struct {
	t   reflect.Type
	ptr uintptr
	len int
}

func track(w apis.ArchiveWriter) *tracker {
	if t, ok := w.(*tracker); ok {
		return t
	}
	return &tracker{ArchiveWriter: w, path: make(map[ref]struct{})}
}

// enter records rv on the path and returns the func that removes it.
// Values reached twice along different paths are not cycles.
func (t *tracker) enter(rv reflect.Value) (func(), error) {
	k := ref{t: rv.Type(), ptr: rv.Pointer()}
	if rv.Kind() == reflect.Slice {
		k.len = rv.Len()
	}
	if _, ok := t.path[k]; ok {
		return nil, fmt.Errorf("%w: %s", ErrCycle, rv.Type())
	}
	t.path[k] = struct{}{}
	return func() { delete(t.path, k) }, nil
}

// addr returns a *T for rv, copying rv when it is not addressable.
func addr(rv reflect.Value) any {
	if rv.CanAddr() {
		return rv.Addr().Interface()
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return p.Interface()
}
