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

// Constructor builds instances of a type from an ordered parameter list.
type Constructor struct {
	Params []Descriptor

	construct func(mem any, args []any)
	alloc     func(args []any) any
}

// IsDefault reports whether c takes no parameters.
func (c *Constructor) IsDefault() bool { return len(c.Params) == 0 }

// Construct initializes the caller-owned instance mem (a *T) from args.
func (c *Constructor) Construct(mem any, args []any) {
	if c.construct != nil {
		c.construct(mem, args)
	}
}

// New allocates and constructs an instance, returning a *T or nil.
func (c *Constructor) New(args []any) any {
	if c.alloc == nil {
		return nil
	}
	return c.alloc(args)
}

// BindConstruct sets the placement-construct callback.
func (c *Constructor) BindConstruct(fn func(mem any, args []any)) { c.construct = fn }

// BindNew sets the allocate-and-construct callback.
func (c *Constructor) BindNew(fn func(args []any) any) { c.alloc = fn }
