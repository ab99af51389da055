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

package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping containers)
	// does not contain a named type (e.g., anonymous struct, func, interface{}).
	ErrReflectTypeNotNamed = errors.New("reflect: type has no named element")
)

// Unwrapped is the result of peeling containers off a Go type.
type Unwrapped struct {
	// Elem is the nearest named type found inside the container chain.
	Elem reflect.Type
	// Depth is the number of containers removed to reach Elem.
	Depth int
	// Pointer is set when the outermost type is a Go pointer.
	Pointer bool
	// Reference is set when the outermost type has reference semantics
	// (slice, map, chan, func, interface).
	Reference bool
}

// Qualify reports the pointer/reference qualifiers of t itself, without unwrapping.
func Qualify(t reflect.Type) (pointer, reference bool) {
	if t == nil {
		return false, false
	}
	switch t.Kind() {
	case reflect.Ptr, reflect.UnsafePointer:
		return true, false
	case reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return false, true
	default:
		return false, false
	}
}

// Unwrap peels containers according to config (MaxUnwrap/MapPreferElem)
// and returns the nearest named inner type with the qualifiers of t.
//
// Unwrapping policy:
//   - ptr/slice/array/chan  -> Elem()
//   - map[K]V: try preferred side first (Elem if MapPreferElem; otherwise Key);
//     if the preferred side is named, return it;
//     else try the other side; if still unnamed, continue unwrapping Elem().
//   - default: if t.Name() != "", return t; otherwise ErrReflectTypeNotNamed.
//
// Qualifiers are filled even when no named element is found.
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Unwrap(t reflect.Type, cfg apis.Config) (Unwrapped, error) {
	if t == nil {
		return Unwrapped{}, ErrReflectNilType
	}
	var out Unwrapped
	out.Pointer, out.Reference = Qualify(t)

	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for ; t != nil && out.Depth < maxUnwrap; out.Depth++ {
		if t.Name() != "" {
			out.Elem = t
			return out, nil
		}
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()

		case reflect.Map:
			first, second := t.Elem(), t.Key()
			if !cfg.MapPreferElem {
				first, second = second, first
			}
			if first.Name() != "" {
				out.Elem, out.Depth = first, out.Depth+1
				return out, nil
			}
			if second.Name() != "" {
				out.Elem, out.Depth = second, out.Depth+1
				return out, nil
			}
			// Neither side named: keep unwrapping the element.
			t = t.Elem()

		default:
			return out, ErrReflectTypeNotNamed
		}
	}

	// After reaching max depth, ensure we ended on a named type.
	if t != nil && t.Name() != "" {
		out.Elem = t
		return out, nil
	}
	return out, ErrReflectTypeNotNamed
}
