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

package reflect_test

import (
	"errors"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/rtti/apis"
	uref "dirpx.dev/rtti/utils/reflect"
)

// Local test types.
type A struct{}
type G[T any] struct{}

// cfg returns a convenient baseline Config for tests.
func cfg(opts ...func(*apis.Config)) apis.Config {
	c := apis.Config{
		MaxUnwrap:     8,
		MapPreferElem: true,
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func TestUnwrap_Containers(t *testing.T) {
	conf := cfg()
	named := reflect.TypeOf(A{})

	cases := []struct {
		name      string
		typ       reflect.Type
		depth     int
		pointer   bool
		reference bool
	}{
		{"plain", reflect.TypeOf(A{}), 0, false, false},
		{"ptr", reflect.TypeOf(&A{}), 1, true, false},
		{"slice", reflect.TypeOf([]A{}), 1, false, true},
		{"array", reflect.TypeOf([2]A{}), 1, false, false},
		{"chan", reflect.TypeOf((chan A)(nil)), 1, false, true},
		{"slice of ptr", reflect.TypeOf([]*A{}), 2, false, true},
		{"map prefer elem", reflect.TypeOf(map[int]A{}), 1, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Unwrap(tc.typ, conf)
			if err != nil {
				t.Fatalf("Unwrap(%v) returned error: %v", tc.typ, err)
			}
			if got.Elem != named {
				t.Fatalf("Unwrap(%v).Elem = %v, want %v", tc.typ, got.Elem, named)
			}
			if got.Depth != tc.depth || got.Pointer != tc.pointer || got.Reference != tc.reference {
				t.Fatalf("Unwrap(%v) = depth %d ptr %v ref %v, want %d %v %v",
					tc.typ, got.Depth, got.Pointer, got.Reference, tc.depth, tc.pointer, tc.reference)
			}
		})
	}
}

func TestUnwrap_MapPreference(t *testing.T) {
	tMap := reflect.TypeOf(map[string]A{})

	got, err := uref.Unwrap(tMap, cfg())
	if err != nil || got.Elem != reflect.TypeOf(A{}) {
		t.Fatalf("prefer elem: got (%v,%v), want A", got.Elem, err)
	}

	got, err = uref.Unwrap(tMap, cfg(func(c *apis.Config) { c.MapPreferElem = false }))
	if err != nil || got.Elem != reflect.TypeOf("") {
		t.Fatalf("prefer key: got (%v,%v), want string", got.Elem, err)
	}
}

func TestUnwrap_NotNamed(t *testing.T) {
	got, err := uref.Unwrap(reflect.TypeOf([]struct{ X int }{}), cfg())
	if !errors.Is(err, uref.ErrReflectTypeNotNamed) {
		t.Fatalf("anonymous struct: want ErrReflectTypeNotNamed, got %v", err)
	}
	if !got.Reference {
		t.Fatalf("qualifiers must be filled even on error: %+v", got)
	}

	if _, err := uref.Unwrap(nil, cfg()); !errors.Is(err, uref.ErrReflectNilType) {
		t.Fatalf("nil: want ErrReflectNilType, got %v", err)
	}
}

func TestUnwrap_MaxUnwrap(t *testing.T) {
	tt := reflect.TypeOf((***A)(nil))

	if _, err := uref.Unwrap(tt, cfg(func(c *apis.Config) { c.MaxUnwrap = 1 })); err == nil {
		t.Fatal("MaxUnwrap=1: expected failure to reach A")
	}
	got, err := uref.Unwrap(tt, cfg())
	if err != nil || got.Elem != reflect.TypeOf(A{}) || got.Depth != 3 {
		t.Fatalf("MaxUnwrap=8: got (%+v,%v), want A at depth 3", got, err)
	}
}

func TestUnwrap_GenericInstantiation(t *testing.T) {
	got, err := uref.Unwrap(reflect.TypeOf([]G[int]{}), cfg())
	if err != nil {
		t.Fatalf("Unwrap([]G[int]): %v", err)
	}
	if got.Elem != reflect.TypeOf(G[int]{}) {
		t.Fatalf("Unwrap([]G[int]).Elem = %v, want G[int]", got.Elem)
	}
}

func TestQualify(t *testing.T) {
	if p, r := uref.Qualify(reflect.TypeOf(0)); p || r {
		t.Fatalf("int: got (%v,%v), want (false,false)", p, r)
	}
	if p, _ := uref.Qualify(reflect.TypeOf(new(int))); !p {
		t.Fatal("*int: want pointer")
	}
	if _, r := uref.Qualify(reflect.TypeOf(func() {})); !r {
		t.Fatal("func: want reference")
	}
}

func TestUnwrap_Concurrent(t *testing.T) {
	types := []reflect.Type{
		reflect.TypeOf(A{}),
		reflect.TypeOf(&A{}),
		reflect.TypeOf([]A{}),
		reflect.TypeOf(map[string]A{}),
	}

	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				got, err := uref.Unwrap(types[i%len(types)], cfg())
				if err != nil || got.Elem != reflect.TypeOf(A{}) {
					t.Errorf("Unwrap mismatch: %+v %v", got, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
