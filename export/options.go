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

package export

import "dirpx.dev/rtti/registry"

// Option customizes an export.
type Option func(*options)

type options struct {
	format    Format
	fields    bool
	functions bool
}

func newOptions(reg *registry.Registry, opts []Option) options {
	cfg := reg.Config()
	o := options{fields: cfg.ExportFields, functions: cfg.ExportFunctions}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFormat forces the output format instead of deriving it from the path.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithFields includes or omits field listings.
func WithFields(v bool) Option {
	return func(o *options) { o.fields = v }
}

// WithFunctions includes or omits function listings.
func WithFunctions(v bool) Option {
	return func(o *options) { o.functions = v }
}
