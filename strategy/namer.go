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

package strategy

import (
	"reflect"
	"strings"

	"dirpx.dev/rtti/apis"
	uref "dirpx.dev/rtti/utils/reflect"
)

var namerType = reflect.TypeFor[apis.Namer]()

// NewNamerStrategy creates an apis.Strategy that uses apis.Namer.
//
// TypeName must not depend on instance state, so types resolve as well as
// values: the nearest named element of a container is asked for its name
// through a zero value. Blank names are not resolved.
func NewNamerStrategy() apis.Strategy {
	return &namerStrategy{}
}

type namerStrategy struct{}

// Ensure namerStrategy implements apis.Strategy.
var _ apis.Strategy = (*namerStrategy)(nil)

// TryResolve asks v for its TypeName, falling back to v's type.
func (s *namerStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	if n, ok := v.(apis.Namer); ok && !isNilPointer(v) {
		return named(n.TypeName())
	}
	return s.TryResolveType(reflect.TypeOf(v), cfg)
}

// TryResolveType unwraps t and asks its element for a TypeName.
func (*namerStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	if name, ok := nameOf(t); ok {
		return name, true
	}
	u, err := uref.Unwrap(t, cfg)
	if err != nil || u.Elem == t {
		return "", false
	}
	return nameOf(u.Elem)
}

// nameOf calls TypeName on a fresh zero value of t when t or *t is a Namer.
func nameOf(t reflect.Type) (string, bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Interface || !reflect.PointerTo(t).Implements(namerType) {
		return "", false
	}
	return named(reflect.New(t).Interface().(apis.Namer).TypeName())
}

func named(name string) (string, bool) {
	name = strings.TrimSpace(name)
	return name, name != ""
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
