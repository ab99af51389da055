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

// Param is one named function parameter.
type Param struct {
	Name string
	Desc Descriptor
}

// Function is a callable member of a type, or a free function when the type
// stands for a namespace. Several functions may share a name.
type Function struct {
	Name   string
	Return Descriptor
	Params []Param
	// Raw is the bound Go function value, if any.
	Raw any

	invoke func(inst, ret any, params []any)
}

// Invoke calls the function. inst is the receiver (nil for free functions),
// ret points at storage for the result (nil to discard) and params holds one
// pointer per parameter.
func (f *Function) Invoke(inst, ret any, params []any) {
	if f.invoke != nil {
		f.invoke(inst, ret, params)
	}
}

// BindInvoke sets the type-erased invoke callback.
func (f *Function) BindInvoke(fn func(inst, ret any, params []any)) { f.invoke = fn }
