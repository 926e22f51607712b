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

// Cloner is implemented by types whose copies must not share state with the
// original (slices, maps, pointers). When a type implements it, Any.Copy uses
// Clone instead of plain assignment.
type Cloner[T any] interface {
	Clone() T
}

// Destroyer is implemented by types that hold resources. Release on an owning
// Any calls Destroy before the storage is zeroed.
type Destroyer interface {
	Destroy()
}

// lifecycle is the erased copy/move/destroy table of a descriptor.
// Every function receives the storage as a *T boxed in an interface.
type lifecycle struct {
	// alloc returns fresh zero-valued storage.
	alloc func() any
	// load returns the stored value.
	load func(p any) any
	// copy allocates fresh storage holding a copy of *p.
	copy func(p any) any
	// move allocates fresh storage holding *p and leaves *p zeroed.
	move func(p any) any
	// assign stores *src into *dst.
	assign func(dst, src any)
	// destroy releases the resources held by *p and zeroes it.
	destroy func(p any)
}

func newLifecycle[T any]() lifecycle {
	return lifecycle{
		alloc: func() any {
			return new(T)
		},
		load: func(p any) any {
			return *p.(*T)
		},
		copy: func(p any) any {
			src := p.(*T)
			dst := new(T)
			if c, ok := any(src).(Cloner[T]); ok {
				*dst = c.Clone()
			} else {
				*dst = *src
			}
			return dst
		},
		move: func(p any) any {
			src := p.(*T)
			dst := new(T)
			*dst = *src
			var zero T
			*src = zero
			return dst
		},
		assign: func(dst, src any) {
			*dst.(*T) = *src.(*T)
		},
		destroy: func(p any) {
			ptr := p.(*T)
			if d, ok := any(ptr).(Destroyer); ok {
				d.Destroy()
			}
			var zero T
			*ptr = zero
		},
	}
}
