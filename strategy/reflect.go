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
	"sync"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/identity"
	uref "dirpx.dev/rtti/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that derives the decorated
// name of the nearest named type, memoized.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback. It unwraps containers
// (ptr/slice/array/chan/map) and names the element the way Register does.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects all config knobs that affect resolution.
type cacheKey struct {
	t             reflect.Type
	maxUnwrap     int16
	mapPreferElem bool
}

// typeNameCache caches resolved type names by (type, config knobs).
var typeNameCache sync.Map // key: cacheKey, val: string

// TryResolve computes the decorated name for v's type.
func (reflectStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return byType(reflect.TypeOf(v), cfg)
}

// TryResolveType computes the decorated name for t.
func (reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return byType(t, cfg)
}

// byType resolves the name for t with memoization. Types without a named
// element resolve to nothing.
func byType(t reflect.Type, cfg apis.Config) (string, bool) {
	key := cacheKey{
		t:             t,
		maxUnwrap:     int16(cfg.MaxUnwrap),
		mapPreferElem: cfg.MapPreferElem,
	}
	if v, ok := typeNameCache.Load(key); ok {
		name := v.(string)
		return name, name != ""
	}

	var name string
	if u, err := uref.Unwrap(t, cfg); err == nil {
		name = identity.Name(u.Elem)
	}
	typeNameCache.Store(key, name)
	return name, name != ""
}
