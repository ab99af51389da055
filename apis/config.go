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

package apis

// Config carries read-only knobs for the registry, descriptor normalization and export.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MaxUnwrap limits container unwrapping depth (ptr/slice/array/chan/map)
	// when computing the element identity of a descriptor.
	MaxUnwrap int

	// MapPreferElem controls which side of map[K]V is considered the element
	// of a map-typed descriptor. If true, prefer V; otherwise K.
	MapPreferElem bool

	// ReadOnly is the initial state of the registration gate.
	ReadOnly bool

	// DetectCollisions makes the registry log an error when two distinct
	// names hash to the same identity. Lookups are unaffected.
	DetectCollisions bool

	// ExportFields and ExportFunctions select the optional sections of an
	// introspection export.
	ExportFields    bool
	ExportFunctions bool

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string
	// LogFormat is either "text" or "json".
	LogFormat string
}
