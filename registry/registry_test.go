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
	"reflect"
	"testing"

	"dirpx.dev/rtti/registry"
)

type handle struct{ name string }

func TestLoadOrCreate_CreatesOnce(t *testing.T) {
	reg := registry.New[*handle]()
	calls := 0
	create := func() *handle {
		calls++
		return &handle{name: "T1"}
	}

	first, created, err := reg.LoadOrCreate(reflect.TypeOf(T1{}), create)
	if err != nil || !created {
		t.Fatalf("LoadOrCreate: got (created=%v, err=%v), want (true, nil)", created, err)
	}
	second, created, err := reg.LoadOrCreate(reflect.TypeOf(T1{}), create)
	if err != nil || created {
		t.Fatalf("LoadOrCreate again: got (created=%v, err=%v), want (false, nil)", created, err)
	}
	if first != second {
		t.Fatalf("LoadOrCreate returned distinct values %p and %p", first, second)
	}
	if calls != 1 {
		t.Fatalf("create called %d times, want 1", calls)
	}
	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
}

func TestLoadOrCreate_DistinctTypes(t *testing.T) {
	reg := registry.New[*handle]()

	a, _, _ := reg.LoadOrCreate(reflect.TypeOf(T1{}), func() *handle { return &handle{name: "T1"} })
	b, _, _ := reg.LoadOrCreate(reflect.TypeOf(&T1{}), func() *handle { return &handle{name: "*T1"} })
	if a == b {
		t.Fatalf("T1 and *T1 share a value")
	}
}

func TestLoadOrCreate_Errors(t *testing.T) {
	reg := registry.New[*handle]()

	if _, _, err := reg.LoadOrCreate(nil, func() *handle { return nil }); err != registry.ErrNilType {
		t.Fatalf("nil type: want ErrNilType, got %v", err)
	}
	if _, _, err := reg.LoadOrCreate(reflect.TypeOf(T1{}), nil); err != registry.ErrNilCreator {
		t.Fatalf("nil creator: want ErrNilCreator, got %v", err)
	}
}

func TestRegister_IdempotentAndLookup(t *testing.T) {
	reg := registry.New[*handle]()
	h := &handle{name: "T1"}

	if err := reg.Register(reflect.TypeOf(T1{}), h); err != nil {
		t.Fatalf("Register(T1{}): unexpected error: %v", err)
	}
	// idempotent re-register with same value
	if err := reg.Register(reflect.TypeOf(T1{}), h); err != nil {
		t.Fatalf("Register(T1{}) idempotent: unexpected error: %v", err)
	}

	if got, ok := reg.Lookup(reflect.TypeOf(T1{})); !ok || got != h {
		t.Fatalf("Lookup(T1{}): got (%v,%v), want (%v,true)", got, ok, h)
	}
	// no unwrapping: containers of T1 are different types
	if got, ok := reg.Lookup(reflect.TypeOf([]T1{})); ok || got != nil {
		t.Fatalf("Lookup([]T1{}): got (%v,%v), want (nil,false)", got, ok)
	}
}

func TestRegister_Conflict(t *testing.T) {
	reg := registry.New[*handle]()

	if err := reg.Register(reflect.TypeOf(T1{}), &handle{name: "a"}); err != nil {
		t.Fatalf("Register: unexpected error: %v", err)
	}
	err := reg.Register(reflect.TypeOf(T1{}), &handle{name: "a"})
	if err != registry.ErrConflictingRegistration {
		t.Fatalf("expected ErrConflictingRegistration, got: %v", err)
	}
}

func TestRegister_NilType(t *testing.T) {
	reg := registry.New[*handle]()
	if err := reg.Register(nil, &handle{}); err != registry.ErrNilType {
		t.Fatalf("nil type: want ErrNilType, got %v", err)
	}
}

func TestEntriesAndReset(t *testing.T) {
	reg := registry.New[*handle]()

	_ = reg.Register(reflect.TypeOf(T1{}), &handle{name: "T1"})
	_ = reg.Register(reflect.TypeOf(T2{}), &handle{name: "T2"})

	entries := reg.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries len = %d, want 2", len(entries))
	}
	if reg.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", reg.Count())
	}

	reg.Reset()

	if reg.Count() != 0 {
		t.Fatalf("after Reset, Count() = %d, want 0", reg.Count())
	}
	if got, ok := reg.Lookup(reflect.TypeOf(T1{})); ok || got != nil {
		t.Fatalf("Lookup after Reset: got (%v,%v), want (nil,false)", got, ok)
	}
}

func TestLookupNilAndUnknown(t *testing.T) {
	reg := registry.New[*handle]()

	if got, ok := reg.Lookup(nil); ok || got != nil {
		t.Fatalf("Lookup(nil): got (%v,%v), want (nil,false)", got, ok)
	}
	if got, ok := reg.Lookup(reflect.TypeOf(T1{})); ok || got != nil {
		t.Fatalf("Lookup(unknown): got (%v,%v), want (nil,false)", got, ok)
	}
}
