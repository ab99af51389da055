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
	"reflect"
	"strings"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/identity"
	uref "dirpx.dev/rtti/utils/reflect"
)

// Props is the size/alignment/identity triple of a type.
type Props struct {
	ID    uint64
	Size  uintptr
	Align uintptr
}

// PropsOf returns the props of T.
func PropsOf[T any]() Props {
	t := reflect.TypeFor[T]()
	return Props{ID: identity.OfType(t), Size: t.Size(), Align: uintptr(t.Align())}
}

// Descriptor describes the type of a field, parameter or return value:
// the identity of its element type plus qualifiers.
type Descriptor struct {
	// ID is the identity of the element type.
	ID uint64
	// Name is the decorated name of the element type.
	Name string
	// Spelling is the type as written, e.g. "[]*geo.Point".
	Spelling string

	Const     bool
	Pointer   bool
	Reference bool

	Size  uintptr
	Align uintptr
}

// IsZero reports whether d describes nothing (e.g. a function without result).
func (d Descriptor) IsZero() bool {
	return d.ID == 0 && d.Name == ""
}

// String renders d as "const *name" style text.
func (d Descriptor) String() string {
	if d.IsZero() {
		return "void"
	}
	var b strings.Builder
	if d.Const {
		b.WriteString("const ")
	}
	if d.Pointer {
		b.WriteByte('*')
	}
	if d.Reference {
		b.WriteByte('&')
	}
	b.WriteString(d.Name)
	return b.String()
}

// DescriptorOf returns the descriptor of T under the default config.
func DescriptorOf[T any]() Descriptor {
	return DescriptorFor(reflect.TypeFor[T](), config.DefaultConfig())
}

// DescriptorFor returns the descriptor of t. The element is the nearest named
// type inside t's container chain; types without one describe themselves.
func DescriptorFor(t reflect.Type, cfg apis.Config) Descriptor {
	if t == nil {
		return Descriptor{}
	}
	u, err := uref.Unwrap(t, cfg)
	elem := u.Elem
	if err != nil || elem == nil {
		elem = t
	}
	return Descriptor{
		ID:        identity.OfType(elem),
		Name:      identity.Name(elem),
		Spelling:  t.String(),
		Pointer:   u.Pointer,
		Reference: u.Reference,
		Size:      t.Size(),
		Align:     uintptr(t.Align()),
	}
}
