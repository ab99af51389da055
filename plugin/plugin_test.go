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

package plugin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rtti/builder"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/plugin"
	"dirpx.dev/rtti/registry"
)

type Body struct{ Mass float64 }

func physics() plugin.Plugin {
	return plugin.Func("physics", func(reg *registry.Registry) error {
		b := builder.Register[Body](reg)
		builder.Field(b, "Mass", func(b *Body) *float64 { return &b.Mass })
		return nil
	})
}

func TestLoad_OpensAndRestoresGate(t *testing.T) {
	reg := registry.New(config.NewConfig(config.WithReadOnly(true)), nil)

	require.NoError(t, plugin.Load(context.Background(), reg, physics()))
	assert.True(t, reg.ReadOnly(), "gate must be restored")

	typ := reg.FindTypeByName("dirpx.dev/rtti/plugin_test.Body")
	require.NotNil(t, typ)
	assert.Equal(t, "physics", typ.Scope)
	assert.Equal(t, "", reg.CurrentScope())
}

func TestLoad_JoinsErrorsAndContinues(t *testing.T) {
	reg := registry.New(config.DefaultConfig(), nil)
	errBoom := errors.New("boom")

	err := plugin.Load(context.Background(), reg,
		plugin.Func("bad", func(*registry.Registry) error { return errBoom }),
		plugin.Func("panics", func(*registry.Registry) error { panic("oops") }),
		nil,
		physics(),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "plugin panics: panic: oops")
	assert.Equal(t, 1, reg.Len(), "the healthy plugin still registers")
	assert.False(t, reg.ReadOnly())
	assert.Equal(t, "", reg.CurrentScope(), "scope must unwind after a panic")
}

func TestLoad_CanceledContext(t *testing.T) {
	reg := registry.New(config.DefaultConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := plugin.Load(ctx, reg, physics())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, reg.Len())
}

func TestReload(t *testing.T) {
	reg := registry.New(config.DefaultConfig(), nil)
	reg.RegisterType("stale", meta.Props{})
	reg.IndexAttribute(1, 2)
	reg.SetReadOnly(true)

	require.NoError(t, plugin.Reload(context.Background(), reg, physics()))
	assert.Nil(t, reg.FindTypeByName("stale"))
	assert.Empty(t, reg.GetTypesAnnotatedWith(1))
	assert.Equal(t, 1, reg.Len())
	assert.True(t, reg.ReadOnly())
}
