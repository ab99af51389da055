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

package registry

import (
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/identity"
	"dirpx.dev/rtti/meta"
)

// Registry holds every registered version of every type together with the
// derived-type and attribute indices.
//
// The indices are not locked. Registration must happen while the registry
// is writable and no readers are running; once SetReadOnly(true) has been
// called, any number of goroutines may read concurrently.
type Registry struct {
	cfg apis.Config
	log *slog.Logger

	readOnly atomic.Bool

	byName map[string][]*meta.Type
	byID   map[uint64][]*meta.Type
	// order keeps names in first-registration order.
	order []string
	// derived maps a base identity to the identities that declared it.
	derived map[uint64]map[uint64]struct{}
	// annotated maps an attribute identity to the types carrying it.
	// Entries are never pruned, see GetTypesAnnotatedWith.
	annotated map[uint64][]uint64
	// owners maps an identity to the first name that produced it.
	owners map[uint64]string

	scope []string
}

// New returns an empty registry. A nil logger uses slog.Default().
func New(cfg apis.Config, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{cfg: cfg, log: logger}
	r.clear()
	r.readOnly.Store(cfg.ReadOnly)
	return r
}

func (r *Registry) clear() {
	r.byName = make(map[string][]*meta.Type)
	r.byID = make(map[uint64][]*meta.Type)
	r.order = nil
	r.derived = make(map[uint64]map[uint64]struct{})
	r.annotated = make(map[uint64][]uint64)
	r.owners = make(map[uint64]string)
}

// Config returns the configuration the registry was created with.
func (r *Registry) Config() apis.Config { return r.cfg }

// Logger returns the registry's logger.
func (r *Registry) Logger() *slog.Logger { return r.log }

// RegisterType appends a new version of name to the registry and returns
// its record. The version is one more than the number of earlier
// registrations of name; the scope is the current scope stack.
//
// A zero props.ID is replaced by the identity of name. While the registry is
// read-only the call is rejected: it logs and returns nil.
func (r *Registry) RegisterType(name string, props meta.Props) *meta.Type {
	if r.readOnly.Load() {
		r.log.Warn("rtti: registration rejected, registry is read-only", "name", name)
		return nil
	}
	if props.ID == 0 {
		props.ID = identity.Hash(identity.DecoratedName(name))
	}

	if r.cfg.DetectCollisions {
		r.checkCollision(name, props.ID)
	}

	prev := r.byName[name]
	t := meta.NewType(name, r.CurrentScope(), len(prev)+1, props)
	if len(prev) == 0 {
		r.order = append(r.order, name)
	}
	r.byName[name] = append(prev, t)
	r.byID[props.ID] = append(r.byID[props.ID], t)

	r.log.Debug("rtti: type registered",
		"name", name, "id", props.ID, "scope", t.Scope, "version", t.Version)
	return t
}

func (r *Registry) checkCollision(name string, id uint64) {
	owner, ok := r.owners[id]
	switch {
	case !ok:
		r.owners[id] = name
	case owner != name:
		r.log.Error("rtti: identity collision",
			"name", name, "owner", owner, "id", id)
	}
}

// FindTypeByName returns the latest version registered under name, or nil.
func (r *Registry) FindTypeByName(name string) *meta.Type {
	return last(r.byName[name])
}

// FindTypeByID returns the latest version registered under id, or nil.
func (r *Registry) FindTypeByID(id uint64) *meta.Type {
	return last(r.byID[id])
}

func last(ts []*meta.Type) *meta.Type {
	if len(ts) == 0 {
		return nil
	}
	return ts[len(ts)-1]
}

// Versions returns every version registered under name, oldest first.
func (r *Registry) Versions(name string) []*meta.Type {
	return slices.Clone(r.byName[name])
}

// VersionsByID returns every version registered under id, oldest first.
func (r *Registry) VersionsByID(id uint64) []*meta.Type {
	return slices.Clone(r.byID[id])
}

// Names returns the registered names in first-registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Types returns the latest version of every registered name, in
// first-registration order.
func (r *Registry) Types() []*meta.Type {
	out := make([]*meta.Type, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, last(r.byName[name]))
	}
	return out
}

// Len returns the number of distinct registered names.
func (r *Registry) Len() int { return len(r.order) }

// IndexBase records that derived declared base as a direct base.
func (r *Registry) IndexBase(base, derived uint64) {
	set, ok := r.derived[base]
	if !ok {
		set = make(map[uint64]struct{})
		r.derived[base] = set
	}
	set[derived] = struct{}{}
}

// GetDerivedTypes returns the identities of every type that ever declared
// base as a direct base, sorted. Derivation is not transitive.
func (r *Registry) GetDerivedTypes(base uint64) []uint64 {
	set := r.derived[base]
	out := make([]uint64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// IndexAttribute records that the type owner carries an attribute of kind attr.
func (r *Registry) IndexAttribute(attr, owner uint64) {
	r.annotated[attr] = append(r.annotated[attr], owner)
}

// GetTypesAnnotatedWith returns the identities of every type that carried an
// attribute of kind attr, in indexing order. The list covers every version
// ever registered: re-registering a type without the attribute does not
// remove it. Only Reset clears it.
func (r *Registry) GetTypesAnnotatedWith(attr uint64) []uint64 {
	return slices.Clone(r.annotated[attr])
}

// Reset clears all indices. It is meant for tearing down the whole type
// universe before re-registering it. The read-only gate and the scope stack
// are left untouched.
func (r *Registry) Reset() {
	r.clear()
	r.log.Debug("rtti: registry reset")
}

// SetReadOnly toggles the registration gate.
func (r *Registry) SetReadOnly(v bool) { r.readOnly.Store(v) }

// ReadOnly reports whether registration is currently rejected.
func (r *Registry) ReadOnly() bool { return r.readOnly.Load() }

// PushGroup pushes a scope segment.
func (r *Registry) PushGroup(name string) { r.scope = append(r.scope, name) }

// PopGroup pops the innermost scope segment. Popping an empty stack is a no-op.
func (r *Registry) PopGroup() {
	if n := len(r.scope); n > 0 {
		r.scope = r.scope[:n-1]
	}
}

// CurrentScope returns the scope stack joined with ".".
func (r *Registry) CurrentScope() string { return strings.Join(r.scope, ".") }
