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

package apis

import "reflect"

// Registry is a process-wide mapping from concrete Go types to per-type values
// (descriptors in practice). Implementations must be safe for concurrent use
// and must create at most one value per type.
type Registry[V any] interface {
	// LoadOrCreate returns the value stored for t. If none is stored yet,
	// create is called exactly once, its result stored and returned with
	// created=true. Concurrent callers for the same t observe the same value.
	LoadOrCreate(t reflect.Type, create func() V) (v V, created bool, err error)
	// Register associates t with v. Registering the identical value again is
	// a no-op; a different value for the same type is a conflict.
	Register(t reflect.Type, v V) error
	// Lookup returns the value stored for t if present.
	Lookup(t reflect.Type) (v V, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry[V]
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries. It is meant for tests and
	// diagnostics on private registries: resetting the registry behind
	// rtti.DescriptorOf would let a type get a second descriptor.
	Reset()
}

// Entry is a single (type, value) association in a Registry snapshot.
type Entry[V any] struct {
	// Type is the registered reflect.Type.
	Type reflect.Type
	// Value is the associated value.
	Value V
}
