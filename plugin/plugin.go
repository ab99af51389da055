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

// Package plugin runs type registration inside the registry's writable
// window.
//
// The registry normally stays read-only; Load opens the gate, runs each
// plugin's registration under a scope named after the plugin and restores
// the previous gate state. Reload tears the whole type universe down first.
package plugin

import (
	"context"
	"errors"
	"fmt"

	"dirpx.dev/rtti/internal/ctxlog"
	"dirpx.dev/rtti/registry"
)

// Plugin contributes types to a registry.
type Plugin interface {
	Name() string
	Register(reg *registry.Registry) error
}

// funcPlugin adapts a function to Plugin.
type funcPlugin struct {
	name string
	fn   func(reg *registry.Registry) error
}

func (p funcPlugin) Name() string                          { return p.name }
func (p funcPlugin) Register(reg *registry.Registry) error { return p.fn(reg) }

// Func returns a Plugin named name that runs fn.
func Func(name string, fn func(reg *registry.Registry) error) Plugin {
	return funcPlugin{name: name, fn: fn}
}

// Load registers every plugin in order while the registry is writable and
// restores the previous read-only state afterwards. A failing plugin does
// not stop the others; all failures are joined. Load stops early when ctx
// is done.
func Load(ctx context.Context, reg *registry.Registry, plugins ...Plugin) error {
	log := ctxlog.FromContext(ctx)

	prev := reg.ReadOnly()
	reg.SetReadOnly(false)
	defer reg.SetReadOnly(prev)

	var errs []error
	for _, p := range plugins {
		if p == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		before := reg.Len()
		if err := register(reg, p); err != nil {
			log.Error("rtti: plugin failed", "plugin", p.Name(), "error", err)
			errs = append(errs, fmt.Errorf("plugin %s: %w", p.Name(), err))
			continue
		}
		log.Debug("rtti: plugin loaded", "plugin", p.Name(), "new_types", reg.Len()-before)
	}
	return errors.Join(errs...)
}

// register runs p under its own scope and turns panics into errors.
func register(reg *registry.Registry, p Plugin) (err error) {
	reg.PushGroup(p.Name())
	defer reg.PopGroup()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return p.Register(reg)
}

// Reload clears the registry and loads plugins from scratch. Every record
// obtained before the call is stale afterwards.
func Reload(ctx context.Context, reg *registry.Registry, plugins ...Plugin) error {
	prev := reg.ReadOnly()
	reg.SetReadOnly(false)
	reg.Reset()
	ctxlog.FromContext(ctx).Info("rtti: registry reset for reload", "plugins", len(plugins))
	err := Load(ctx, reg, plugins...)
	reg.SetReadOnly(prev)
	return err
}
