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

package rtti

import (
	"context"
	"errors"
	"reflect"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"

	"dirpx.dev/rtti/archive/ctyarchive"
	"dirpx.dev/rtti/builder"
	"dirpx.dev/rtti/builtin"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/export"
	"dirpx.dev/rtti/identity"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/plugin"
	"dirpx.dev/rtti/registry"
)

type point struct {
	X, Y int
}

type suit int

const (
	hearts suit = iota + 1
	spades
)

type named struct{}

func (named) TypeName() string { return "dirpx.dev/rtti.point" }

// isolate installs a fresh default context for the duration of the test.
func isolate(tb testing.TB) *registry.Registry {
	tb.Helper()
	prev := st.Load()
	reg := registry.New(config.DefaultConfig(), nil)
	if err := plugin.Load(context.Background(), reg, builtin.Plugin()); err != nil {
		tb.Fatalf("load builtins: %v", err)
	}
	SetRegistry(reg)
	tb.Cleanup(func() { st.Store(prev) })
	return reg
}

func registerPoint() *builder.Type {
	p := Register[point]()
	builder.Field(p, "X", func(p *point) *int { return &p.X })
	builder.Field(p, "Y", func(p *point) *int { return &p.Y })
	builder.Default[point](p)
	return p
}

func TestDefaultContextHasBuiltins(t *testing.T) {
	if Registry() == nil || Resolver() == nil {
		t.Fatal("default context not initialized")
	}
	for _, name := range []string{"int", "string", "float64", "bool"} {
		if FindTypeByName(name) == nil {
			t.Errorf("builtin %q not registered", name)
		}
	}
	if got := TypeOf(42); got == nil || got.Name != "int" {
		t.Errorf("TypeOf(42) = %v, want int", got)
	}
}

func TestRegisterAndLookup(t *testing.T) {
	isolate(t)
	p := registerPoint()

	typ := FindTypeByName("dirpx.dev/rtti.point")
	if typ == nil || typ != p.Meta() {
		t.Fatalf("FindTypeByName = %v, want %v", typ, p.Meta())
	}
	if FindTypeByID(identity.Of[point]()) != typ {
		t.Fatal("FindTypeByID disagrees with FindTypeByName")
	}
	if TypeOf(point{}) != typ || TypeOf(&point{}) != typ {
		t.Error("TypeOf does not resolve point")
	}
	if TypeFor(reflect.TypeFor[[]*point]()) != typ {
		t.Error("TypeFor does not unwrap containers")
	}
	if Name(named{}) != typ.Name {
		t.Errorf("Name(named{}) = %q, want %q", Name(named{}), typ.Name)
	}
	if TypeOf(struct{ A int }{}) != nil {
		t.Error("anonymous struct resolved")
	}
}

func TestVersionsLastWins(t *testing.T) {
	isolate(t)
	v1 := RegisterType("game.Card", meta.Props{})
	v2 := RegisterType("game.Card", meta.Props{})
	if v1 == nil || v2 == nil {
		t.Fatal("registration rejected")
	}
	if v1.Version != 1 || v2.Version != 2 {
		t.Errorf("versions = %d, %d; want 1, 2", v1.Version, v2.Version)
	}
	if FindTypeByName("game.Card") != v2 || FindTypeByID(v1.ID()) != v2 {
		t.Error("lookup did not return latest version")
	}
}

func TestReadOnlyGate(t *testing.T) {
	isolate(t)
	SetReadOnly(true)
	if !ReadOnly() {
		t.Fatal("ReadOnly() = false after SetReadOnly(true)")
	}
	if RegisterType("x.Y", meta.Props{}) != nil {
		t.Error("registration accepted while read-only")
	}

	err := LoadPlugins(context.Background(), plugin.Func("late", func(reg *registry.Registry) error {
		if reg.RegisterType("x.Y", meta.Props{}) == nil {
			return errors.New("rejected")
		}
		return nil
	}))
	if err != nil {
		t.Fatalf("LoadPlugins: %v", err)
	}
	if !ReadOnly() {
		t.Error("LoadPlugins did not restore the gate")
	}
	typ := FindTypeByName("x.Y")
	if typ == nil || typ.Scope != "late" {
		t.Errorf("plugin type = %v, want scope late", typ)
	}
}

func TestScopesAndIndices(t *testing.T) {
	isolate(t)
	PushGroup("cards")
	base := Register[point]()
	d := Register[suit]()
	builder.Base[point](d)
	builder.Attr[named](d, named{})
	if CurrentScope() != "cards" {
		t.Errorf("CurrentScope() = %q", CurrentScope())
	}
	PopGroup()

	if base.Meta().Scope != "cards" {
		t.Errorf("scope = %q, want cards", base.Meta().Scope)
	}
	if got := GetDerivedTypes(identity.Of[point]()); len(got) != 1 || got[0] != identity.Of[suit]() {
		t.Errorf("GetDerivedTypes = %v", got)
	}
	if got := GetTypesAnnotatedWith(identity.Of[named]()); len(got) != 1 || got[0] != identity.Of[suit]() {
		t.Errorf("GetTypesAnnotatedWith = %v", got)
	}

	ResetRegistry()
	if FindTypeByName("dirpx.dev/rtti.point") != nil {
		t.Error("type survived ResetRegistry")
	}
	if len(GetDerivedTypes(identity.Of[point]())) != 0 || len(GetTypesAnnotatedWith(identity.Of[named]())) != 0 {
		t.Error("indices survived ResetRegistry")
	}
	if FindTypeByName("int") == nil {
		t.Error("builtins not restored by ResetRegistry")
	}
}

func TestDispatch(t *testing.T) {
	isolate(t)
	registerPoint()
	s := Register[suit]()
	builder.Value(s, "hearts", hearts)
	builder.Value(s, "spades", spades)

	id := identity.Of[point]()
	src, dst := point{X: 1, Y: 2}, point{}
	n, err := Serialize(id, ctyarchive.NewWriter(), &src)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if err := Deserialize(id, ctyarchive.NewReader(), n, &dst); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if dst != src {
		t.Errorf("round trip = %+v, want %+v", dst, src)
	}

	var cp point
	if err := DeepCopy(id, &src, &cp); err != nil || cp != src {
		t.Errorf("DeepCopy = %+v, %v", cp, err)
	}

	sid := identity.Of[suit]()
	node, ok := EnumToValue(sid, ctyarchive.NewWriter(), int64(spades))
	if !ok {
		t.Fatal("EnumToValue failed")
	}
	v, ok := ValueToEnum(sid, ctyarchive.NewReader(), node)
	if !ok || v.Name != "spades" {
		t.Errorf("ValueToEnum = %v, %v", v, ok)
	}
}

func TestExport(t *testing.T) {
	isolate(t)
	registerPoint()
	fs := afero.NewMemMapFs()
	if err := Export(fs, "types.json"); err != nil {
		t.Fatalf("Export: %v", err)
	}
	doc, err := export.Read(fs, "types.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	last := doc.Types[len(doc.Types)-1]
	if last.Name != "dirpx.dev/rtti.point" || len(last.Fields) != 2 {
		t.Errorf("last exported type = %+v", last)
	}
}

func TestSetConfigRebuilds(t *testing.T) {
	isolate(t)
	registerPoint()
	SetConfig(config.NewConfig(config.WithReadOnly(true)))
	if !Config().ReadOnly || !ReadOnly() {
		t.Error("config not applied")
	}
	if FindTypeByName("dirpx.dev/rtti.point") != nil {
		t.Error("SetConfig kept registrations")
	}
	if FindTypeByName("int") == nil {
		t.Error("SetConfig lost builtins")
	}
}

func TestSetRegistryNilIgnored(t *testing.T) {
	reg := isolate(t)
	SetRegistry(nil)
	if Registry() != reg {
		t.Error("SetRegistry(nil) replaced the registry")
	}
}

// Readers only touch read-only registries while a writer swaps contexts.
func TestConcurrentSwap(t *testing.T) {
	isolate(t)
	regs := make([]*registry.Registry, 4)
	for i := range regs {
		reg := registry.New(config.DefaultConfig(), nil)
		_ = plugin.Load(context.Background(), reg, builtin.Plugin())
		p := builder.Register[point](reg)
		builder.Field(p, "X", func(p *point) *int { return &p.X })
		reg.SetReadOnly(true)
		regs[i] = reg
	}
	SetRegistry(regs[0])

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for range runtime.GOMAXPROCS(0) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if TypeOf(point{}) == nil || FindTypeByName("int") == nil {
					t.Error("lookup failed during swap")
					return
				}
			}
		}()
	}
	deadline := time.Now().Add(50 * time.Millisecond)
	for i := 0; time.Now().Before(deadline); i++ {
		SetRegistry(regs[i%len(regs)])
	}
	close(stop)
	wg.Wait()
}
