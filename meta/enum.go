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

package meta

// EnumValue is one case of an enumeration type.
type EnumValue struct {
	// Name is the textual description of the case.
	Name string
	Code int64

	address func() any
	match   func(p any) bool
}

// Address returns a pointer to the canonical value of this case, or nil.
func (v *EnumValue) Address() any {
	if v.address == nil {
		return nil
	}
	return v.address()
}

// Match reports whether the instance p points at this case.
func (v *EnumValue) Match(p any) bool {
	return v.match != nil && v.match(p)
}

// BindAddress sets the address accessor.
func (v *EnumValue) BindAddress(fn func() any) { v.address = fn }

// BindMatch sets the comparator.
func (v *EnumValue) BindMatch(fn func(p any) bool) { v.match = fn }
