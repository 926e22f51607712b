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
	"fmt"
	"log/slog"

	"dirpx.dev/rtti/apis"
)

// TypeBuilder stages the explicit registration of T's name, fields, and
// methods. It is only valid inside the callback passed to Describe.
type TypeBuilder[T any] struct {
	d    *Descriptor
	cfg  apis.Config
	log  *slog.Logger
	tab  *table
	errs []error
}

// Describe registers metadata for T. fn receives a builder whose changes are
// published atomically when fn returns; if any registration failed nothing is
// published and the joined errors are returned.
//
// Describe is usually called from an init function so that the metadata is in
// place before the first value of T is boxed. fn must not call Describe for T.
func Describe[T any](fn func(b *TypeBuilder[T])) (*Descriptor, error) {
	d := DescriptorOf[T]()
	s := st.Load()

	d.mu.Lock()
	defer d.mu.Unlock()

	b := &TypeBuilder[T]{
		d:   d,
		cfg: s.cfg,
		log: s.logger(),
		tab: d.tab.Load().clone(),
	}
	fn(b)

	if err := errors.Join(b.errs...); err != nil {
		return d, fmt.Errorf("rtti: describe %s: %w", d, err)
	}
	d.tab.Store(b.tab)
	b.log.Debug("Described type.", "type", b.tab.name, "id", d.id,
		"fields", len(b.tab.fields), "methods", len(b.tab.methods))
	return d, nil
}

// MustDescribe is like Describe but panics on error.
func MustDescribe[T any](fn func(b *TypeBuilder[T])) *Descriptor {
	d, err := Describe(fn)
	if err != nil {
		panic(err)
	}
	return d
}

// Name overrides the descriptor's derived name.
func (b *TypeBuilder[T]) Name(name string) *TypeBuilder[T] {
	if name == "" {
		b.errs = append(b.errs, fmt.Errorf("%w: empty type name", ErrInvalidMember))
		return b
	}
	b.tab.name = name
	return b
}

// Descriptor returns the descriptor being described.
func (b *TypeBuilder[T]) Descriptor() *Descriptor { return b.d }

func (b *TypeBuilder[T]) logger() *slog.Logger { return b.log }

func (b *TypeBuilder[T]) fail(name, kind string, err error) {
	b.errs = append(b.errs, fmt.Errorf("%w: %s %q", err, kind, name))
}

// checkDuplicate reports whether a member named name may be staged.
// Replacing an existing member is allowed unless the config rejects it.
func (b *TypeBuilder[T]) checkDuplicate(name, kind string, exists bool) bool {
	if !exists {
		return true
	}
	if b.cfg.RejectDuplicateMembers {
		b.fail(name, kind, ErrDuplicateMember)
		return false
	}
	b.log.Warn("Overwriting registered member.", "type", b.tab.name, kind, name)
	return true
}
