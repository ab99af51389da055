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

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/identity"
	"dirpx.dev/rtti/meta"
	uref "dirpx.dev/rtti/utils/reflect"
)

// Lookup finds registered types by identity.
type Lookup interface {
	FindTypeByID(id uint64) *meta.Type
}

// NewRegistryStrategy creates an apis.Strategy that resolves the identity
// of the nearest named type through lookup. It finds types registered under
// names that differ from their Go name.
func NewRegistryStrategy(lookup Lookup) apis.Strategy {
	return &registryStrategy{lookup: lookup}
}

// registryStrategy consults the registry's identity index.
type registryStrategy struct {
	lookup Lookup
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryResolve looks up v's type in the registry.
func (s *registryStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return s.TryResolveType(reflect.TypeOf(v), cfg)
}

// TryResolveType looks up t in the registry.
func (s *registryStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil || s.lookup == nil {
		return "", false
	}
	u, err := uref.Unwrap(t, cfg)
	if err != nil {
		return "", false
	}
	typ := s.lookup.FindTypeByID(identity.OfType(u.Elem))
	if typ == nil {
		return "", false
	}
	return typ.Name, true
}
