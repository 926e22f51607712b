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
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/rtti/apis"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("rtti(registry): nil reflect.Type provided")
	// ErrNilCreator is returned when LoadOrCreate is called without a constructor.
	ErrNilCreator = errors.New("rtti(registry): nil constructor provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different value.
	ErrConflictingRegistration = errors.New("rtti(registry): conflicting type registration")
)

// New constructs an empty Registry. Values are compared by identity, so V
// should be a pointer or another comparable handle.
func New[V comparable]() apis.Registry[V] {
	return &registry[V]{}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry[V comparable] struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps reflect.Type to the stored value.
	m sync.Map // map[reflect.Type]V
	// count tracks the number of registered entries.
	count int
}

// LoadOrCreate returns the value for t, calling create at most once per type.
func (r *registry[V]) LoadOrCreate(t reflect.Type, create func() V) (V, bool, error) {
	var zero V
	if t == nil {
		return zero, false, ErrNilType
	}
	if create == nil {
		return zero, false, ErrNilCreator
	}

	// Fast read path: already built.
	if v, ok := r.m.Load(t); ok {
		return v.(V), false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if v, ok := r.m.Load(t); ok {
		return v.(V), false, nil
	}

	v := create()
	r.m.Store(t, v)
	r.count++
	return v, true, nil
}

// Register associates t with v.
// It is idempotent for the same (type,value) pair.
func (r *registry[V]) Register(t reflect.Type, v V) error {
	if t == nil {
		return ErrNilType
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(t); ok {
		if old.(V) == v {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.m.Load(t); ok {
		if old.(V) == v {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.m.Store(t, v)
	r.count++
	return nil
}

// Lookup returns the value stored for t if present.
func (r *registry[V]) Lookup(t reflect.Type) (V, bool) {
	var zero V
	if t == nil {
		return zero, false
	}
	if v, ok := r.m.Load(t); ok {
		return v.(V), true
	}
	return zero, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry[V]) Entries() []apis.Entry[V] {
	entries := make([]apis.Entry[V], 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry[V]{
			Type:  key.(reflect.Type),
			Value: value.(V),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry[V]) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries. For tests and diagnostics only;
// see apis.Registry.
func (r *registry[V]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
