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

// Namer lets a value name its own registered type.
//
// When a value implements Namer, resolution uses TypeName() as the registry
// key and does not derive a name from the Go type. This is how values of one
// Go type can be routed to a type registered under a domain-level name.
type Namer interface {
	// TypeName returns the registered name of the value's type.
	// It must be deterministic for a given concrete type.
	TypeName() string
}
