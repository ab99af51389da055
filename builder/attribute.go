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

package builder

import "dirpx.dev/rtti/meta"

// AttributeBuilder populates one attribute.
type AttributeBuilder struct {
	a *meta.Attribute
}

// Value sets the attribute payload.
func (ab *AttributeBuilder) Value(v any) *AttributeBuilder {
	if ab.a != nil {
		ab.a.Value = v
	}
	return ab
}

// Meta returns the attribute record, or nil for an inert handle.
func (ab *AttributeBuilder) Meta() *meta.Attribute { return ab.a }
