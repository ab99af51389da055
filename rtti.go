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
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/spf13/afero"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/builder"
	"dirpx.dev/rtti/builtin"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/export"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/plugin"
	"dirpx.dev/rtti/registry"
	"dirpx.dev/rtti/resolver"
	"dirpx.dev/rtti/serialize"
)

// init publishes the default context: a registry holding the builtin
// primitives under the default configuration.
func init() {
	st.Store(newState(config.DefaultConfig(), nil))
}

// newState builds a registry for cfg, loads the builtin primitives and
// wraps it with the default resolver chain.
func newState(cfg apis.Config, logger *slog.Logger) *state {
	reg := registry.New(cfg, logger)
	// builtin registration cannot fail
	_ = plugin.Load(context.Background(), reg, builtin.Plugin())
	return &state{cfg: cfg, reg: reg, res: resolver.Default(reg)}
}

// Config returns the configuration of the default context.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the default context with a fresh registry built for
// cfg. Types registered in the previous registry are not carried over.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(newState(cfg, st.Load().reg.Logger()))
}

// SetLogger replaces the default context with a fresh registry that logs to
// logger.
func SetLogger(logger *slog.Logger) {
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(newState(st.Load().cfg, logger))
}

// Registry returns the registry of the default context.
func Registry() *registry.Registry {
	return st.Load().reg
}

// SetRegistry makes reg the registry of the default context and rebuilds
// the resolver over it. A nil reg is ignored.
func SetRegistry(reg *registry.Registry) {
	if reg == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(&state{cfg: reg.Config(), reg: reg, res: resolver.Default(reg)})
}

// Resolver returns the resolver of the default context.
func Resolver() *resolver.Resolver {
	return st.Load().res
}

// RegisterType registers a new version of name in the default registry.
// It returns nil while the registry is read-only.
func RegisterType(name string, props meta.Props) *meta.Type {
	return st.Load().reg.RegisterType(name, props)
}

// Register registers T in the default registry under its Go name and
// returns a builder for it.
func Register[T any]() *builder.Type {
	return builder.Register[T](st.Load().reg)
}

// Reflect registers T and its exported struct fields in the default
// registry.
func Reflect[T any]() *builder.Type {
	return builder.Reflect[T](st.Load().reg)
}

// FindTypeByName returns the active version of name, or nil.
func FindTypeByName(name string) *meta.Type {
	return st.Load().reg.FindTypeByName(name)
}

// FindTypeByID returns the active version of the type with identity id, or nil.
func FindTypeByID(id uint64) *meta.Type {
	return st.Load().reg.FindTypeByID(id)
}

// GetDerivedTypes returns the identities that directly declare base.
func GetDerivedTypes(base uint64) []uint64 {
	return st.Load().reg.GetDerivedTypes(base)
}

// GetTypesAnnotatedWith returns the identities that carry attribute attr.
func GetTypesAnnotatedWith(attr uint64) []uint64 {
	return st.Load().reg.GetTypesAnnotatedWith(attr)
}

// TypeOf returns the active registered type of v, or nil.
func TypeOf(v any) *meta.Type {
	return st.Load().res.Resolve(v)
}

// TypeFor returns the active registered type of t, or nil.
func TypeFor(t reflect.Type) *meta.Type {
	return st.Load().res.ResolveType(t)
}

// Name returns the registered name of v's type, or "".
func Name(v any) string {
	return st.Load().res.Name(v)
}

// SetReadOnly opens or closes the default registry for registration.
func SetReadOnly(v bool) {
	st.Load().reg.SetReadOnly(v)
}

// ReadOnly reports whether the default registry rejects registration.
func ReadOnly() bool {
	return st.Load().reg.ReadOnly()
}

// ResetRegistry clears the default registry and registers the builtin
// primitives again. Every record obtained before the call is stale.
func ResetRegistry() {
	_ = plugin.Reload(context.Background(), st.Load().reg, builtin.Plugin())
}

// PushGroup enters a registration scope in the default registry.
func PushGroup(name string) {
	st.Load().reg.PushGroup(name)
}

// PopGroup leaves the innermost registration scope.
func PopGroup() {
	st.Load().reg.PopGroup()
}

// CurrentScope returns the dotted scope new registrations receive.
func CurrentScope() string {
	return st.Load().reg.CurrentScope()
}

// LoadPlugins runs plugins against the default registry inside a writable
// window.
func LoadPlugins(ctx context.Context, plugins ...plugin.Plugin) error {
	return plugin.Load(ctx, st.Load().reg, plugins...)
}

// Serialize writes the instance of type id through w.
func Serialize(id uint64, w apis.ArchiveWriter, inst any) (apis.Node, error) {
	return serialize.Serialize(st.Load().reg, id, w, inst)
}

// Deserialize reads n into the instance of type id.
func Deserialize(id uint64, r apis.ArchiveReader, n apis.Node, inst any) error {
	return serialize.Deserialize(st.Load().reg, id, r, n, inst)
}

// DeepCopy copies src into dst field by field using type id's metadata.
func DeepCopy(id uint64, src, dst any) error {
	return serialize.DeepCopy(st.Load().reg, id, src, dst)
}

// EnumToValue writes the enum value of type id with the given code.
func EnumToValue(id uint64, w apis.ArchiveWriter, code int64) (apis.Node, bool) {
	return serialize.EnumToValue(st.Load().reg, id, w, code)
}

// ValueToEnum returns the enum value of type id that n names.
func ValueToEnum(id uint64, r apis.ArchiveReader, n apis.Node) (*meta.EnumValue, bool) {
	return serialize.ValueToEnum(st.Load().reg, id, r, n)
}

// Export writes the default type universe to path on fs.
func Export(fs afero.Fs, path string, opts ...export.Option) error {
	return export.Export(fs, path, st.Load().reg, opts...)
}

// buildMu serializes writers so a half-built snapshot is never published.
var buildMu sync.Mutex

// st is the published default context.
var st atomic.Pointer[state]

// state is an immutable snapshot of the default context. Writers build a
// new state and swap it in; the registry inside is shared, not copied.
type state struct {
	cfg apis.Config
	reg *registry.Registry
	res *resolver.Resolver
}
