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

// Package meta holds the metadata records describing registered types:
// Type, Field, Function, Constructor, EnumValue and Attribute.
//
// Records are plain data plus behavior callbacks bound to a concrete Go type
// at registration time. They are created by the registry, populated through
// the builder package and treated as immutable afterwards. A callback that
// was never bound turns the matching operation into a no-op: a type
// registered with partial metadata is an expected state, not an error.
//
// Instances are passed around as any holding a pointer to the host value
// (*T); callbacks type-assert to the concrete type they were bound for and
// do nothing when handed something else.
package meta
