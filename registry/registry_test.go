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

package registry_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rtti/builder"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/identity"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/registry"
)

func newRegistry(t *testing.T) (*registry.Registry, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return registry.New(config.DefaultConfig(), logger), &buf
}

func TestRegisterType_Versions(t *testing.T) {
	reg, _ := newRegistry(t)
	props := meta.Props{ID: identity.Hash("Foo"), Size: 8, Align: 8}

	v1 := reg.RegisterType("Foo", props)
	v2 := reg.RegisterType("Foo", props)
	require.NotNil(t, v1, "RegisterType returned nil on a writable registry")
	require.NotNil(t, v2)
	assert.Equal(t, 1, v1.Version)
	assert.Equal(t, 2, v2.Version)
	assert.Same(t, v2, reg.FindTypeByName("Foo"))
	assert.Same(t, v2, reg.FindTypeByID(props.ID))

	vs := reg.Versions("Foo")
	require.Len(t, vs, 2)
	assert.Same(t, v1, vs[0])
	assert.Equal(t, 1, reg.Len())
}

func TestRegisterType_IndexSymmetry(t *testing.T) {
	reg, _ := newRegistry(t)
	for _, name := range []string{"A", "B", "C", "B"} {
		reg.RegisterType(name, meta.Props{ID: identity.Hash(name)})
	}
	for _, name := range reg.Names() {
		byName := reg.FindTypeByName(name)
		assert.Same(t, byName, reg.FindTypeByID(byName.ID()), name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, reg.Names())

	types := reg.Types()
	require.Len(t, types, 3)
	assert.Equal(t, 2, types[1].Version)
}

func TestRegisterType_DefaultsIDFromName(t *testing.T) {
	reg, _ := newRegistry(t)
	typ := reg.RegisterType("struct Foo", meta.Props{})
	assert.Equal(t, identity.Hash("Foo"), typ.ID(), "identity of the decorated name")
}

func TestFind_Absent(t *testing.T) {
	reg, _ := newRegistry(t)
	assert.Nil(t, reg.FindTypeByName("nope"))
	assert.Nil(t, reg.FindTypeByID(1))
}

func TestReadOnlyGate(t *testing.T) {
	reg, logs := newRegistry(t)
	reg.SetReadOnly(true)
	require.True(t, reg.ReadOnly())

	assert.Nil(t, reg.RegisterType("Foo", meta.Props{}), "registration succeeded on a read-only registry")
	assert.Nil(t, reg.FindTypeByName("Foo"))
	assert.Zero(t, reg.Len())
	assert.Contains(t, logs.String(), "read-only")

	reg.SetReadOnly(false)
	assert.NotNil(t, reg.RegisterType("Foo", meta.Props{}), "registration failed after reopening the gate")
}

func TestNew_InitialGateFromConfig(t *testing.T) {
	reg := registry.New(config.NewConfig(config.WithReadOnly(true)), nil)
	assert.True(t, reg.ReadOnly(), "config ReadOnly not applied")
}

func TestDerivedTypes_DirectOnly(t *testing.T) {
	reg, _ := newRegistry(t)
	a, b, c := identity.Hash("A"), identity.Hash("B"), identity.Hash("C")

	// C is registered before its base B.
	builder.New(reg, "C", meta.Props{ID: c}).AddBaseType(b)
	builder.New(reg, "A", meta.Props{ID: a})
	bb := builder.New(reg, "B", meta.Props{ID: b}).AddBaseType(a)

	// Declaring a base twice indexes it once.
	bb.AddBaseType(a)

	assert.Equal(t, []uint64{b}, reg.GetDerivedTypes(a), "derived(A) lists direct subtypes only")
	assert.Equal(t, []uint64{c}, reg.GetDerivedTypes(b))
	assert.Empty(t, reg.GetDerivedTypes(c))
	assert.Equal(t, []uint64{a}, reg.FindTypeByID(b).Bases)
}

func TestAnnotatedTypes_SurviveReregistrationUntilReset(t *testing.T) {
	reg, _ := newRegistry(t)
	attr := identity.Of[meta.NotPersisted]()
	foo := identity.Hash("Foo")

	builder.New(reg, "Foo", meta.Props{ID: foo}).AddAttribute(meta.PropsOf[meta.NotPersisted]())

	// Version 2 drops the attribute; the index still lists Foo.
	builder.New(reg, "Foo", meta.Props{ID: foo})
	assert.Contains(t, reg.GetTypesAnnotatedWith(attr), foo)

	reg.Reset()
	assert.Empty(t, reg.GetTypesAnnotatedWith(attr))
	assert.Nil(t, reg.FindTypeByName("Foo"), "Reset left types behind")
	assert.Zero(t, reg.Len())

	v := reg.RegisterType("Foo", meta.Props{ID: foo})
	assert.Equal(t, 1, v.Version, "versions restart after Reset")
}

func TestScopeStack(t *testing.T) {
	reg, _ := newRegistry(t)
	require.Empty(t, reg.CurrentScope())

	reg.PushGroup("game")
	reg.PushGroup("physics")
	typ := reg.RegisterType("Body", meta.Props{})
	assert.Equal(t, "game.physics", typ.Scope)

	reg.PopGroup()
	assert.Equal(t, "game", reg.CurrentScope())
	reg.PopGroup()
	reg.PopGroup() // empty stack
	assert.Empty(t, reg.CurrentScope())

	// The record keeps its snapshot.
	assert.Equal(t, "game.physics", typ.Scope)
}

func TestDetectCollisions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	reg := registry.New(config.NewConfig(config.WithDetectCollisions(true)), logger)

	id := identity.Hash("Foo")
	reg.RegisterType("Foo", meta.Props{ID: id})
	reg.RegisterType("Foo", meta.Props{ID: id})
	assert.NotContains(t, buf.String(), "collision", "re-registering the same name is not a collision")

	bar := reg.RegisterType("Bar", meta.Props{ID: id})
	assert.Contains(t, buf.String(), "collision")
	// Behavior is unchanged: Bar wins the id lookup.
	assert.Same(t, bar, reg.FindTypeByID(id))
}
