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

// Package serialize drives archive encoding, decoding and copying of
// registered types through their metadata.
//
// Types with fields are encoded as archive objects keyed by field name, each
// member produced by the field's serialize callback. Fieldless types are
// either enums, encoded as the description of the matching value, or
// primitives, encoded through a codec keyed by identity.
//
// Encode and Decode handle arbitrary Go values reached through fields:
// pointers, slices, arrays and string-keyed maps recurse into their
// elements; everything else is dispatched through the registry.
package serialize
