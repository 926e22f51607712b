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
	"errors"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/builder"
	"dirpx.dev/rtti/config"
)

// init initializes the global state.
func init() {
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New[*Descriptor]()
	s.reg = b.BuildRegistry(s.cfg, nil)
	s.res = b.BuildResolver(s.cfg)
	s.bld = b
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("rtti: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("rtti: builder returned nil resolver")
)

// DescriptorOf returns the descriptor of T, building it on first use.
//
// Every call for the same T returns the same pointer, including concurrent
// first calls. A freshly built descriptor has a derived name, the lifecycle
// functions of T, and empty field and method tables; see Describe.
func DescriptorOf[T any]() *Descriptor {
	t := reflect.TypeFor[T]()

	// Fast path: lock-free lookup in the published registry.
	if d, ok := st.Load().reg.Lookup(t); ok {
		return d
	}

	// Slow path: serialize with writers so a registry rebuild cannot drop a
	// descriptor created concurrently.
	buildMu.Lock()
	defer buildMu.Unlock()

	s := st.Load()
	d, created, err := s.reg.LoadOrCreate(t, func() *Descriptor {
		return newDescriptor(t, s.res.ResolveType(t, s.cfg), newLifecycle[T]())
	})
	if err != nil {
		panic(err)
	}
	if created {
		s.logger().Debug("Created type descriptor.", "type", d.Name(), "id", d.id)
	}
	return d
}

// Lookup returns the descriptor built for t, if any. Unlike DescriptorOf it
// never builds one: descriptors are created from static types only.
func Lookup(t reflect.Type) (*Descriptor, bool) {
	return st.Load().reg.Lookup(t)
}

// DescriptorByName returns a descriptor whose name is name. Names are not
// unique; when several types share a name any of them may be returned.
func DescriptorByName(name string) (*Descriptor, bool) {
	for _, e := range st.Load().reg.Entries() {
		if e.Value.Name() == name {
			return e.Value, true
		}
	}
	return nil, false
}

// Descriptors returns a snapshot of every descriptor built so far
// (order is unspecified).
func Descriptors() []*Descriptor {
	entries := st.Load().reg.Entries()
	out := make([]*Descriptor, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Value)
	}
	return out
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration and rebuilds the registry and the
// resolver. Existing descriptors are migrated, so their identity is kept;
// names already derived are not recomputed.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(rebuild(old, cfg, old.bld))
}

// Builder returns the global builder.
func Builder() apis.Builder[*Descriptor] {
	return st.Load().bld
}

// SetBuilder replaces the builder and rebuilds the registry and the resolver
// with it. Existing descriptors are migrated.
func SetBuilder(b apis.Builder[*Descriptor]) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(rebuild(old, old.cfg, b))
}

// Logger returns the logger used for registration events.
func Logger() *slog.Logger {
	return st.Load().logger()
}

// SetLogger sets the logger used for registration events.
// A nil logger selects slog.Default() at the time of each event.
func SetLogger(l *slog.Logger) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.log = l
	st.Store(&next)
}

// rebuild derives a new state from old with the given config and builder.
func rebuild(old *state, cfg apis.Config, b apis.Builder[*Descriptor]) *state {
	nreg := b.BuildRegistry(cfg, old.reg)
	nres := b.BuildResolver(cfg)

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	return &state{
		cfg: cfg,
		reg: nreg,
		res: nres,
		bld: b,
		log: old.log,
	}
}

// buildMu serializes writers (descriptor creation, reconfiguration) so we
// never publish partially-built snapshots or lose a descriptor in a rebuild.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// reg maps Go types to their descriptors.
	reg apis.Registry[*Descriptor]
	// res derives default descriptor names.
	res apis.Resolver
	// bld builds reg and res.
	bld apis.Builder[*Descriptor]
	// log receives registration events; nil means slog.Default().
	log *slog.Logger
}

func (s *state) logger() *slog.Logger {
	if s.log != nil {
		return s.log
	}
	return slog.Default()
}
