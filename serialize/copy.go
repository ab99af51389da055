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

package serialize

import (
	"fmt"

	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/registry"
)

// DeepCopy copies src into dst, both instances of the type registered
// under id.
func DeepCopy(reg *registry.Registry, id uint64, src, dst any) error {
	typ := reg.FindTypeByID(id)
	if typ == nil {
		return fmt.Errorf("%w: %#x", ErrUnknownType, id)
	}
	DeepCopyType(typ, src, dst)
	return nil
}

// DeepCopyType copies src into dst field by field, or with the whole-object
// copy callback when typ has no fields. Pointer and reference fields share
// their referent with src.
func DeepCopyType(typ *meta.Type, src, dst any) {
	if len(typ.Fields) == 0 {
		typ.Copy(dst, src)
		return
	}
	for _, f := range typ.Fields {
		f.Copy(dst, src)
	}
}

// Migrate copies every field of src (an instance of from) into dst (an
// instance of to) when both versions declare a field with the same name and
// the same Go type. It returns the names of the fields it copied.
func Migrate(from, to *meta.Type, src, dst any) []string {
	var copied []string
	for _, tf := range to.Fields {
		ff := from.Field(tf.Name)
		if ff == nil || !sameType(ff.Desc, tf.Desc) {
			continue
		}
		p := ff.Object(src)
		if p == nil {
			continue
		}
		tf.Set(dst, p)
		copied = append(copied, tf.Name)
	}
	return copied
}

func sameType(a, b meta.Descriptor) bool {
	return a.ID == b.ID && a.Spelling == b.Spelling &&
		a.Pointer == b.Pointer && a.Reference == b.Reference
}
