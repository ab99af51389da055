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

// Package rtti is a runtime type-metadata registry for Go.
//
// Types are described once, at startup or when a plugin loads, and are
// then queried by name or by identity: their fields, functions,
// constructors, enum values, base types and attributes. The metadata
// drives generic serialization, deep copy and introspection export without
// per-type code at the call site.
//
// # Identity
//
// Every type has a 64-bit identity, the FNV-1a hash of its decorated name.
// Go types get the name "<pkgpath>.<Name>", builtins keep their bare name.
// The same name always yields the same identity, in any process.
//
// # Versions
//
// Registering a name again creates a new version of the type. Lookups by
// name or identity always return the latest version; older versions stay
// reachable through Registry().Versions and are considered stale. This is
// how plugins are hot-reloaded: re-register, then migrate live instances
// with serialize.Migrate.
//
// # Default context
//
// The package keeps a process-wide context published through an atomic
// pointer. It starts with the builtin primitives registered:
//
//	p := rtti.Register[Point]()
//	builder.Field(p, "X", func(p *Point) *int { return &p.X })
//	builder.Default[Point](p)
//
//	typ := rtti.TypeOf(Point{})
//	node, err := rtti.Serialize(typ.ID(), ctyarchive.NewWriter(), &pt)
//
// Tests and embedding programs swap in their own registry with
// SetRegistry, or rebuild the context with SetConfig.
//
// # Concurrency
//
// The registry takes no locks. Registration must happen on a single
// goroutine while the registry is writable; once SetReadOnly(true) is
// called, lookups and dispatch are safe from any number of goroutines.
// Swapping the context itself is always safe.
package rtti
