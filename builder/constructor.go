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
	"reflect"

	"dirpx.dev/rtti/meta"
)

// ConstructorBuilder populates one constructor.
type ConstructorBuilder struct {
	c *meta.Constructor
}

// Meta returns the constructor record, or nil for an inert handle.
func (cb *ConstructorBuilder) Meta() *meta.Constructor { return cb.c }

// Construct binds the placement-construct callback.
func (cb *ConstructorBuilder) Construct(fn func(mem any, args []any)) *ConstructorBuilder {
	if cb.c != nil {
		cb.c.BindConstruct(fn)
	}
	return cb
}

// New binds the allocate-and-construct callback.
func (cb *ConstructorBuilder) New(fn func(args []any) any) *ConstructorBuilder {
	if cb.c != nil {
		cb.c.BindNew(fn)
	}
	return cb
}

// Default adds the zero-parameter constructor of T, producing zero values.
func Default[T any](b *Type) *ConstructorBuilder {
	return b.AddConstructor().
		Construct(func(mem any, _ []any) {
			if p, ok := mem.(*T); ok && p != nil {
				var zero T
				*p = zero
			}
		}).
		New(func([]any) any { return new(T) })
}

// ConstructorOf adds a constructor of T backed by fn, a function returning
// T or *T. Its parameters become the constructor's parameter list and
// arguments are passed to Construct and New as pointers. Any other fn is
// logged and yields an inert handle.
func ConstructorOf[T any](b *Type, fn any) *ConstructorBuilder {
	if !b.Valid() {
		return &ConstructorBuilder{}
	}
	fv := reflect.ValueOf(fn)
	target := reflect.TypeFor[T]()
	if fv.Kind() != reflect.Func || fv.IsNil() {
		b.reg.Logger().Error("rtti: constructor rejected, not a function",
			"type", b.typ.Name, "fn", fmt.Sprintf("%T", fn))
		return &ConstructorBuilder{}
	}
	ft := fv.Type()
	if ft.NumOut() == 0 || (ft.Out(0) != target && ft.Out(0) != reflect.PointerTo(target)) {
		b.reg.Logger().Error("rtti: constructor rejected, wrong result type",
			"type", b.typ.Name, "fn", ft.String())
		return &ConstructorBuilder{}
	}

	params := make([]meta.Descriptor, ft.NumIn())
	for i := range params {
		params[i] = meta.DescriptorFor(ft.In(i), b.reg.Config())
	}

	call := func(args []any) (*T, bool) {
		if len(args) != ft.NumIn() {
			return nil, false
		}
		in := make([]reflect.Value, len(args))
		for i, a := range args {
			v, ok := pointerArgument(a, ft.In(i))
			if !ok {
				return nil, false
			}
			in[i] = v
		}
		var out []reflect.Value
		if ft.IsVariadic() {
			out = fv.CallSlice(in)
		} else {
			out = fv.Call(in)
		}
		switch r := out[0].Interface().(type) {
		case T:
			return &r, true
		case *T:
			return r, r != nil
		}
		return nil, false
	}

	return b.AddConstructor(params...).
		Construct(func(mem any, args []any) {
			p, ok := mem.(*T)
			if !ok || p == nil {
				return
			}
			if v, ok := call(args); ok {
				*p = *v
			}
		}).
		New(func(args []any) any {
			if v, ok := call(args); ok {
				return v
			}
			return nil
		})
}
