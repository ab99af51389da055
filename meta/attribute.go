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

// Attribute is an arbitrary typed payload attached to a Type or a Field.
// Props describe the payload's own type; lookups use Props.ID.
type Attribute struct {
	Props Props
	Value any
}

// Attributes is an ordered attribute list.
type Attributes []*Attribute

// Find returns the first attribute whose payload identity is id, or nil.
func (as Attributes) Find(id uint64) *Attribute {
	for _, a := range as {
		if a.Props.ID == id {
			return a
		}
	}
	return nil
}

// NotPersisted marks a field that serialization must skip.
type NotPersisted struct{}

// Description is a human-readable summary attached to a type.
type Description string
