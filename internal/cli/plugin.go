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

package cli

import (
	"dirpx.dev/rtti/builder"
	"dirpx.dev/rtti/export"
	"dirpx.dev/rtti/plugin"
	"dirpx.dev/rtti/registry"
)

// Plugin registers the export document model, so the command always has a
// non-trivial universe to show besides the builtins.
func Plugin() plugin.Plugin {
	return plugin.Func("export", func(reg *registry.Registry) error {
		builder.Reflect[export.ValueDoc](reg)
		builder.Reflect[export.ParamDoc](reg)
		builder.Reflect[export.FunctionDoc](reg)
		builder.Reflect[export.FieldDoc](reg)
		builder.Reflect[export.TypeDoc](reg)
		builder.Reflect[export.Document](reg)
		return nil
	})
}
