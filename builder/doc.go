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

// Package builder populates registered types.
//
// A Type wraps the record returned by registry.RegisterType and hands out
// thin handles for fields, functions, constructors, enum values and
// attributes. Builders validate nothing beyond what the records guard: a
// second default constructor silently replaces the first.
//
// When registration is rejected (the registry is read-only) the builder is
// inert: every method is a no-op and every handle it returns is inert too,
// so registration code never needs to branch on the outcome.
//
// The generic helpers (Register, Field, Default, Value, Attr, Reflect)
// derive descriptors and callbacks from Go types:
//
//	b := builder.Register[Point](reg)
//	builder.Field(b, "X", func(p *Point) *int { return &p.X })
//	builder.Field(b, "Y", func(p *Point) *int { return &p.Y })
//	builder.Default[Point](b)
package builder
