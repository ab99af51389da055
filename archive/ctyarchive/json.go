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

package ctyarchive

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"dirpx.dev/rtti/apis"
)

// Marshal encodes a node tree as JSON.
func Marshal(n apis.Node) ([]byte, error) {
	v := Value(n)
	data, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return nil, fmt.Errorf("rtti(ctyarchive): marshal: %w", err)
	}
	return data, nil
}

// Unmarshal decodes JSON into a cty value readable by Reader. Objects decode
// as object values and arrays as tuples.
func Unmarshal(data []byte) (cty.Value, error) {
	ty, err := ctyjson.ImpliedType(data)
	if err != nil {
		return cty.NilVal, fmt.Errorf("rtti(ctyarchive): unmarshal: %w", err)
	}
	v, err := ctyjson.Unmarshal(data, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("rtti(ctyarchive): unmarshal: %w", err)
	}
	return v, nil
}
