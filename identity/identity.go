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

// Package identity computes stable numeric type identities.
//
// An identity is the 64-bit FNV-1a hash of a type's decorated name: the
// minimal fully-qualified name left after compiler or tooling noise has been
// stripped. Identical decorated names always produce the same identity, so
// independently compiled consumers agree on identities without sharing a
// central ID table. Collisions between distinct names are not detected here.
package identity

import (
	"hash/fnv"
	"reflect"
	"strings"
	"sync"
)

// Hash returns the identity of name. It is pure and deterministic.
// The name is hashed as given; callers that hold a raw compiler or
// tooling name should pass it through DecoratedName first.
func Hash(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}

// keyword prefixes emitted by foreign tooling in front of type names.
var noisePrefixes = []string{"struct ", "class ", "enum ", "union ", "const ", "volatile "}

// DecoratedName strips qualifier and keyword noise from a raw type name and
// returns the minimal qualified name used for hashing.
//
// "*main.Point", "struct main.Point", " main.Point const&" all decorate to
// "main.Point". Container forms such as "[]main.Point" are distinct types and
// are kept. Malformed input is returned trimmed, never rejected.
func DecoratedName(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		prev := s
		for _, p := range noisePrefixes {
			s = strings.TrimPrefix(s, p)
		}
		s = strings.TrimLeft(s, "*& ")
		s = strings.TrimRight(s, "*& ")
		s = strings.TrimSuffix(s, " const")
		s = strings.TrimSuffix(s, " volatile")
		if s == prev {
			break
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

// SimpleName returns the last path segment of a decorated name with generic
// instantiation parameters removed: "dirpx.dev/app/geo.Box[int]" -> "Box".
func SimpleName(name string) string {
	name = stripTypeParams(name)
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}

// Name returns the decorated name of a Go type.
//
// Named types use their full import path ("dirpx.dev/app/geo.Point") so
// equally named types from different packages do not share an identity.
// Predeclared types use their bare name ("int"). Pointers are stripped,
// since qualifiers live in descriptors rather than identities. Other
// unnamed types fall back to reflect's string form ("[]int").
func Name(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Ptr && t.Name() == "" {
		t = t.Elem()
	}
	if t.Name() == "" {
		return DecoratedName(t.String())
	}
	if p := t.PkgPath(); p != "" {
		return p + "." + t.Name()
	}
	return t.Name()
}

// cache memoizes identities per reflect.Type; computing them needs the
// decorated name, which allocates.
var cache sync.Map // key: reflect.Type, val: uint64

// OfType returns the identity of t, memoized.
func OfType(t reflect.Type) uint64 {
	if t == nil {
		return 0
	}
	if v, ok := cache.Load(t); ok {
		return v.(uint64)
	}
	id := Hash(Name(t))
	cache.Store(t, id)
	return id
}

// Of returns the identity of T.
func Of[T any]() uint64 {
	return OfType(reflect.TypeFor[T]())
}

// NameOf returns the decorated name of T.
func NameOf[T any]() string {
	return Name(reflect.TypeFor[T]())
}
