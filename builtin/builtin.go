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

// Package builtin registers Go's primitive types as fieldless types so
// primitive fields resolve through the registry like any other type.
package builtin

import (
	"dirpx.dev/rtti/builder"
	"dirpx.dev/rtti/plugin"
	"dirpx.dev/rtti/registry"
)

// Name is the plugin and scope name of the builtin types.
const Name = "builtin"

func primitive[T any](reg *registry.Registry) {
	builder.Default[T](builder.Register[T](reg))
}

// Register registers bool, string and every sized integer and float type.
func Register(reg *registry.Registry) error {
	primitive[bool](reg)
	primitive[string](reg)
	primitive[int](reg)
	primitive[int8](reg)
	primitive[int16](reg)
	primitive[int32](reg)
	primitive[int64](reg)
	primitive[uint](reg)
	primitive[uint8](reg)
	primitive[uint16](reg)
	primitive[uint32](reg)
	primitive[uint64](reg)
	primitive[uintptr](reg)
	primitive[float32](reg)
	primitive[float64](reg)
	return nil
}

// Plugin returns Register as a plugin.
func Plugin() plugin.Plugin {
	return plugin.Func(Name, Register)
}
