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

import (
	"fmt"
	"log/slog"
	"reflect"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/meta"
)

// FunctionBuilder populates one function.
type FunctionBuilder struct {
	fn  *meta.Function
	cfg apis.Config
	log *slog.Logger
}

// Meta returns the function record, or nil for an inert handle.
func (fb *FunctionBuilder) Meta() *meta.Function { return fb.fn }

// Return sets the return descriptor.
func (fb *FunctionBuilder) Return(desc meta.Descriptor) *FunctionBuilder {
	if fb.fn != nil {
		fb.fn.Return = desc
	}
	return fb
}

// Param appends a parameter.
func (fb *FunctionBuilder) Param(name string, desc meta.Descriptor) *FunctionBuilder {
	if fb.fn != nil {
		fb.fn.Params = append(fb.fn.Params, meta.Param{Name: name, Desc: desc})
	}
	return fb
}

// Invoke binds the invoke callback.
func (fb *FunctionBuilder) Invoke(fn func(inst, ret any, params []any)) *FunctionBuilder {
	if fb.fn != nil {
		fb.fn.BindInvoke(fn)
	}
	return fb
}

// Bind derives the signature and invoke callback from the free function fn.
// Parameters are named p0, p1, ... unless Param was called before. A fn
// that is not a function is logged and ignored.
func (fb *FunctionBuilder) Bind(fn any) *FunctionBuilder {
	return fb.bind(fn, false)
}

// Method is Bind for a method expression such as (*Point).Scale: the first
// parameter of fn receives the instance passed to Invoke.
func (fb *FunctionBuilder) Method(fn any) *FunctionBuilder {
	return fb.bind(fn, true)
}

func (fb *FunctionBuilder) bind(fn any, method bool) *FunctionBuilder {
	if fb.fn == nil {
		return fb
	}
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		fb.log.Error("rtti: bind rejected, not a function", "function", fb.fn.Name, "type", fmt.Sprintf("%T", fn))
		return fb
	}
	ft := fv.Type()
	first := 0
	if method {
		if ft.NumIn() == 0 {
			fb.log.Error("rtti: bind rejected, no receiver parameter", "function", fb.fn.Name, "type", ft.String())
			return fb
		}
		first = 1
	}

	fb.fn.Raw = fn
	if len(fb.fn.Params) == 0 {
		for i := first; i < ft.NumIn(); i++ {
			fb.fn.Params = append(fb.fn.Params, meta.Param{
				Name: fmt.Sprintf("p%d", i-first),
				Desc: meta.DescriptorFor(ft.In(i), fb.cfg),
			})
		}
	}
	if ft.NumOut() > 0 {
		fb.fn.Return = meta.DescriptorFor(ft.Out(0), fb.cfg)
	}

	fb.fn.BindInvoke(func(inst, ret any, params []any) {
		if len(params) != ft.NumIn()-first {
			return
		}
		args := make([]reflect.Value, 0, ft.NumIn())
		if method {
			recv, ok := argument(inst, ft.In(0))
			if !ok {
				return
			}
			args = append(args, recv)
		}
		for i, p := range params {
			a, ok := pointerArgument(p, ft.In(first+i))
			if !ok {
				return
			}
			args = append(args, a)
		}
		var out []reflect.Value
		if ft.IsVariadic() {
			out = fv.CallSlice(args)
		} else {
			out = fv.Call(args)
		}
		storeResult(out, ret)
	})
	return fb
}

// argument adapts a receiver instance to t: *T is passed as is when t is a
// pointer type and dereferenced otherwise.
func argument(inst any, t reflect.Type) (reflect.Value, bool) {
	v := reflect.ValueOf(inst)
	if !v.IsValid() {
		return reflect.Value{}, false
	}
	if v.Type().AssignableTo(t) {
		return v, true
	}
	if v.Kind() == reflect.Pointer && !v.IsNil() && v.Elem().Type().AssignableTo(t) {
		return v.Elem(), true
	}
	return reflect.Value{}, false
}

// pointerArgument unwraps a parameter pointer into an argument of type t.
func pointerArgument(p any, t reflect.Type) (reflect.Value, bool) {
	v := reflect.ValueOf(p)
	if !v.IsValid() || v.Kind() != reflect.Pointer || v.IsNil() {
		return reflect.Value{}, false
	}
	if !v.Elem().Type().AssignableTo(t) {
		return reflect.Value{}, false
	}
	return v.Elem(), true
}

// storeResult writes the first result into ret when ret points at a
// compatible value.
func storeResult(out []reflect.Value, ret any) {
	if len(out) == 0 || ret == nil {
		return
	}
	rv := reflect.ValueOf(ret)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	if out[0].Type().AssignableTo(rv.Elem().Type()) {
		rv.Elem().Set(out[0])
	}
}
