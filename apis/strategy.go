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

import "reflect"

// Strategy maps a value or a Go type to the name of a registered type.
// Strategies are tried in order by a resolver; the first one reporting
// ok=true wins only if its name is registered.
type Strategy interface {
	// TryResolve derives a type name from the value v.
	TryResolve(v any, cfg Config) (name string, ok bool)
	// TryResolveType derives a type name from the Go type t.
	TryResolveType(t reflect.Type, cfg Config) (name string, ok bool)
}
