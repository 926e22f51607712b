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
	"fmt"
)

// Ownership tells whether an Any is responsible for its storage.
type Ownership uint8

const (
	// Owning values release their storage through the descriptor.
	Owning Ownership = iota
	// Borrowed values are views into storage owned by another Any.
	// They must not be used after the owner is released or moved.
	Borrowed
)

// String implements fmt.Stringer.
func (o Ownership) String() string {
	switch o {
	case Owning:
		return "owning"
	case Borrowed:
		return "borrowed"
	default:
		return fmt.Sprintf("Ownership(%d)", uint8(o))
	}
}

// Any holds a value of any type together with its Descriptor.
//
// The zero Any is empty. Plain Go assignment of an Any aliases its storage;
// use Copy for an independent value and Move to transfer it.
// An Any is not safe for concurrent use.
type Any struct {
	desc *Descriptor
	ptr  any // *T
	own  Ownership
}

// Box stores a copy of v in fresh storage and returns an owning Any.
func Box[T any](v T) Any {
	d := DescriptorOf[T]()
	p := new(T)
	*p = v
	return Any{desc: d, ptr: p, own: Owning}
}

// Cast returns a pointer to the value held by a. It fails with ErrEmptyValue
// on an empty Any and with ErrTypeMismatch when a does not hold a T.
// Writes through the pointer are visible to every view of the storage.
func Cast[T any](a Any) (*T, error) {
	if a.desc == nil {
		return nil, ErrEmptyValue
	}
	want := DescriptorOf[T]()
	if a.desc != want {
		return nil, mismatch(want, a.desc)
	}
	return a.ptr.(*T), nil
}

// Unbox returns a copy of the value held by a. See Cast for failures.
func Unbox[T any](a Any) (T, error) {
	p, err := Cast[T](a)
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

func mismatch(want, got *Descriptor) error {
	return fmt.Errorf("%w: want %s, got %s", ErrTypeMismatch, want, got)
}

// Type returns the descriptor of the held value, or nil for an empty Any.
func (a Any) Type() *Descriptor { return a.desc }

// IsEmpty reports whether a holds no value.
func (a Any) IsEmpty() bool { return a.desc == nil }

// Ownership reports whether a owns its storage.
func (a Any) Ownership() Ownership { return a.own }

// IsBorrowed reports whether a is a view into another Any's storage.
func (a Any) IsBorrowed() bool { return a.desc != nil && a.own == Borrowed }

// Interface returns a copy of the held value, or nil for an empty Any.
func (a Any) Interface() any {
	if a.desc == nil {
		return nil
	}
	return a.desc.life.load(a.ptr)
}

// Pointer returns the address of the held value as a *T in an interface,
// or nil for an empty Any.
func (a Any) Pointer() any {
	if a.desc == nil {
		return nil
	}
	return a.ptr
}

// Copy returns an owning Any holding a copy of a's value. Copying an empty
// Any yields an empty Any; copying a borrowed view yields an owning value.
func (a Any) Copy() Any {
	if a.desc == nil {
		return Any{}
	}
	return Any{desc: a.desc, ptr: a.desc.life.copy(a.ptr), own: Owning}
}

// Assign stores a copy of src's value into a's storage. Writes through a
// borrowed view land in the owner. a keeps its ownership.
func (a Any) Assign(src Any) error {
	if a.desc == nil || src.desc == nil {
		return ErrEmptyValue
	}
	if a.desc != src.desc {
		return mismatch(a.desc, src.desc)
	}
	tmp := src.Copy()
	a.desc.life.assign(a.ptr, tmp.ptr)
	return nil
}

// Move returns an owning Any holding a's value in fresh storage and leaves a
// empty. The old storage is zeroed, not released: moving a borrowed view
// zeroes the field it points at.
func (a *Any) Move() Any {
	if a.desc == nil {
		return Any{}
	}
	n := Any{desc: a.desc, ptr: a.desc.life.move(a.ptr), own: Owning}
	*a = Any{}
	return n
}

// Release destroys the value of an owning Any and leaves a empty.
// Releasing a borrowed view only empties the view. Releasing an empty Any
// is a no-op.
func (a *Any) Release() {
	if a.desc != nil && a.own == Owning {
		a.desc.life.destroy(a.ptr)
	}
	*a = Any{}
}

// Field returns a borrowed view of the named field.
func (a Any) Field(name string) (Any, error) {
	if a.desc == nil {
		return Any{}, ErrEmptyValue
	}
	f, ok := a.desc.Field(name)
	if !ok {
		return Any{}, fmt.Errorf("%w: %s.%s", ErrFieldNotFound, a.desc, name)
	}
	return f.view(a.ptr), nil
}

// Foreach calls visit once for every registered field with a borrowed view
// of that field. Views are valid only during the call; a must not be moved
// or released while iterating. Visit order is unspecified.
func (a Any) Foreach(visit func(name string, field Any)) error {
	if a.desc == nil {
		return ErrEmptyValue
	}
	for _, f := range a.desc.tab.Load().fields {
		visit(f.name, f.view(a.ptr))
	}
	return nil
}

// Invoke calls the method registered under name with args and returns its
// boxed result, or an empty Any for methods without a result.
func (a Any) Invoke(name string, args ...Any) (Any, error) {
	if a.desc == nil {
		return Any{}, ErrEmptyValue
	}
	m, ok := a.desc.Method(name)
	if !ok {
		return Any{}, fmt.Errorf("%w: %s.%s", ErrMethodNotFound, a.desc, name)
	}
	return m.Call(a, args...)
}

// String implements fmt.Stringer.
func (a Any) String() string {
	if a.desc == nil {
		return "rtti.Any(empty)"
	}
	return fmt.Sprintf("%s(%v)", a.desc, a.Interface())
}
