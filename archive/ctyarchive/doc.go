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

// Package ctyarchive is an in-memory archive codec built on go-cty values.
//
// Writer builds object and array nodes incrementally and converts them to a
// cty.Value with Value. Reader reads cty values (and Writer nodes) back.
// Marshal and Unmarshal move values to and from JSON through cty/json.
package ctyarchive
