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

// Describer augments Namer with a human-readable summary of the type.
//
// builder.Reflect attaches the description to the registered type as a
// meta.Description attribute, and exports carry it.
type Describer interface {
	Namer

	// TypeDescription returns a short, single-sentence description of the
	// type. It must not depend on instance state.
	TypeDescription() string
}
