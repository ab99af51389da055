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

package resolver

import (
	"reflect"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/registry"
	"dirpx.dev/rtti/strategy"
)

// Resolver maps Go values and types to their active registered type.
// It is safe for concurrent use while the registry is read-only.
type Resolver struct {
	reg    *registry.Registry
	strats []apis.Strategy
}

// New constructs a Resolver over reg that tries the given strategies in
// order. Nil strategies are ignored.
func New(reg *registry.Registry, strategies ...apis.Strategy) *Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return &Resolver{reg: reg, strats: out}
}

// Default returns the standard chain: apis.Namer, then the registry's
// identity index, then the reflected Go name.
func Default(reg *registry.Registry) *Resolver {
	return New(reg,
		strategy.NewNamerStrategy(),
		strategy.NewRegistryStrategy(reg),
		strategy.NewReflectStrategy(),
	)
}

// Registry returns the registry the resolver reads.
func (r *Resolver) Registry() *registry.Registry { return r.reg }

// Resolve returns the active type of v, or nil. Strategies are tried in
// order; a name that is not registered lets the next strategy run.
func (r *Resolver) Resolve(v any) *meta.Type {
	cfg := r.reg.Config()
	for _, s := range r.strats {
		if name, ok := s.TryResolve(v, cfg); ok {
			if typ := r.reg.FindTypeByName(name); typ != nil {
				return typ
			}
		}
	}
	return nil
}

// ResolveType returns the active type of t, or nil.
func (r *Resolver) ResolveType(t reflect.Type) *meta.Type {
	cfg := r.reg.Config()
	for _, s := range r.strats {
		if name, ok := s.TryResolveType(t, cfg); ok {
			if typ := r.reg.FindTypeByName(name); typ != nil {
				return typ
			}
		}
	}
	return nil
}

// Name returns the registered name of v's type, or "".
func (r *Resolver) Name(v any) string {
	if typ := r.Resolve(v); typ != nil {
		return typ.Name
	}
	return ""
}
