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

// Package rtti provides runtime type erasure with explicit, registered
// reflection metadata.
//
// rtti lets a program hold a value of any Go type in a single container
// (Any), later recover it type-safely, copy, move, or release it, enumerate
// its registered fields, and call its registered methods by name with
// dynamically supplied arguments. The metadata that makes this possible is
// written by the owner of each type; nothing is derived from struct tags or
// from the reflect package's method sets.
//
// # Design
//
// Every concrete type T has exactly one Descriptor, returned by
// DescriptorOf[T]. A descriptor holds:
//
//   - Name: a diagnostic label. It is derived on first use (apis.Namer if
//     the type implements it, otherwise a rendering like "model.Person")
//     and may be overridden at registration time. Names are labels only:
//     type identity is descriptor pointer identity.
//
//   - Lifecycle: erased copy/move/destroy functions. Copy is Go assignment
//     unless the type implements Cloner; destroy calls Destroyer if
//     implemented, then zeroes the storage.
//
//   - Fields: name -> (descriptor of the field type, accessor). The
//     accessor plays the role of a byte offset: given the owner's storage it
//     returns the field's storage.
//
//   - Methods: name -> dispatcher. A dispatcher is a uniform
//     (receiver, []Any) -> (Any, error) function built by the Action*/Func*
//     adapters from a strongly typed function. It checks the argument count
//     and the runtime type of every argument before calling through.
//
// Descriptors live in a process-wide registry published through an atomic
// snapshot, the same way configuration and the naming resolver are. Reads
// are lock-free; the first DescriptorOf call for a type takes a short build
// lock, re-checks, and publishes.
//
// # Any
//
// An Any is either empty, owning, or borrowed:
//
//	person := rtti.Box(Person{Name: "Tom", Age: 18}) // owning
//	p, err := rtti.Cast[Person](person)             // *Person, or ErrTypeMismatch
//	clone := person.Copy()                          // independent owning copy
//	moved := person.Move()                          // person is now empty
//	moved.Release()                                 // destroys and empties
//
// Borrowed views are produced by Foreach and Field. They point into the
// owner's storage and must not outlive it.
//
// # Registration
//
// Metadata is registered once, usually from an init function:
//
//	func init() {
//		rtti.MustDescribe(func(b *rtti.TypeBuilder[Person]) {
//			b.Name("Person")
//			rtti.AddField(b, "name", func(p *Person) *string { return &p.Name })
//			rtti.AddField(b, "age", func(p *Person) *uint64 { return &p.Age })
//			rtti.Action1(b, "say", (*Person).Say)
//		})
//	}
//
// A Describe call stages all changes and publishes them atomically, so a
// concurrent reader sees either the old or the new member table. Registering
// a member name twice overwrites the prior entry unless
// apis.Config.RejectDuplicateMembers is set.
//
// # Dynamic calls
//
//	out, err := person.Invoke("say", rtti.Box("Hello"))
//
// Invoke fails with ErrMethodNotFound for unknown names, ErrArityMismatch for
// a wrong argument count, and ErrTypeMismatch when an argument's descriptor
// differs from the declared parameter type. No conversion is attempted.
// Methods without a result return an empty Any.
//
// # Concurrency model
//
// DescriptorOf, Lookup, Describe, and the descriptor accessors are safe for
// concurrent use. A single Any is not: concurrent access to the same Any, or
// to storage shared through borrowed views, must be serialized by the caller.
// Invoke takes no locks around the called function.
//
// # Scope
//
// rtti does not serialize values, does not support overloaded methods (one
// name, one dispatcher), and does not derive metadata automatically.
package rtti
