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
	"slices"
)

// Dispatcher is the uniform signature every registered method is adapted to.
// self is the receiver storage (*T); args are checked against the declared
// parameter types before the underlying function runs.
type Dispatcher func(self any, args []Any) (Any, error)

// Method describes one registered method of a type.
type Method struct {
	name   string
	owner  *Descriptor
	params []*Descriptor
	result *Descriptor
	call   Dispatcher
}

// Name returns the method name.
func (m *Method) Name() string { return m.name }

// Owner returns the descriptor of the receiver type.
func (m *Method) Owner() *Descriptor { return m.owner }

// Arity returns the number of declared parameters.
func (m *Method) Arity() int { return len(m.params) }

// Params returns the descriptors of the declared parameters.
func (m *Method) Params() []*Descriptor { return slices.Clone(m.params) }

// Result returns the descriptor of the result, or nil if the method has none.
func (m *Method) Result() *Descriptor { return m.result }

// Call invokes m on self. self must hold a value of the owner type.
func (m *Method) Call(self Any, args ...Any) (Any, error) {
	if self.desc == nil {
		return Any{}, ErrEmptyValue
	}
	if self.desc != m.owner {
		return Any{}, fmt.Errorf("%s.%s receiver: %w", m.owner, m.name, mismatch(m.owner, self.desc))
	}
	out, err := m.call(self.ptr, args)
	if err != nil {
		return Any{}, fmt.Errorf("%s.%s: %w", m.owner, m.name, err)
	}
	return out, nil
}

// dispatch wraps call with the arity check shared by every adapter.
func dispatch(arity int, call Dispatcher) Dispatcher {
	return func(self any, args []Any) (Any, error) {
		if len(args) != arity {
			return Any{}, fmt.Errorf("%w: want %d arguments, got %d", ErrArityMismatch, arity, len(args))
		}
		return call(self, args)
	}
}

// arg unboxes args[i] as an A.
func arg[A any](args []Any, i int) (A, error) {
	v, err := Unbox[A](args[i])
	if err != nil {
		return v, fmt.Errorf("argument %d: %w", i, err)
	}
	return v, nil
}

// addMethod stages a method built by one of the adapters.
func addMethod[T any](b *TypeBuilder[T], name string, fnIsNil bool, result *Descriptor, params []*Descriptor, call Dispatcher) {
	if name == "" || fnIsNil {
		b.fail(name, "method", ErrInvalidMember)
		return
	}
	if !b.checkDuplicate(name, "method", b.tab.methodByName[name] != nil) {
		return
	}
	b.tab.putMethod(&Method{
		name:   name,
		owner:  b.d,
		params: params,
		result: result,
		call:   dispatch(len(params), call),
	})
	b.logger().Debug("Registering method.", "type", b.tab.name, "method", name, "arity", len(params), "result", result)
}

// Action0 registers a method without parameters or result.
// Method expressions bind directly: Action0(b, "reset", (*Counter).Reset).
func Action0[T any](b *TypeBuilder[T], name string, fn func(*T)) {
	addMethod(b, name, fn == nil, nil, nil, func(self any, _ []Any) (Any, error) {
		fn(self.(*T))
		return Any{}, nil
	})
}

// Action1 registers a method with one parameter and no result.
func Action1[T, A any](b *TypeBuilder[T], name string, fn func(*T, A)) {
	params := []*Descriptor{DescriptorOf[A]()}
	addMethod(b, name, fn == nil, nil, params, func(self any, args []Any) (Any, error) {
		a, err := arg[A](args, 0)
		if err != nil {
			return Any{}, err
		}
		fn(self.(*T), a)
		return Any{}, nil
	})
}

// Action2 registers a method with two parameters and no result.
func Action2[T, A, B any](b *TypeBuilder[T], name string, fn func(*T, A, B)) {
	params := []*Descriptor{DescriptorOf[A](), DescriptorOf[B]()}
	addMethod(b, name, fn == nil, nil, params, func(self any, args []Any) (Any, error) {
		a, err := arg[A](args, 0)
		if err != nil {
			return Any{}, err
		}
		bb, err := arg[B](args, 1)
		if err != nil {
			return Any{}, err
		}
		fn(self.(*T), a, bb)
		return Any{}, nil
	})
}

// Action3 registers a method with three parameters and no result.
func Action3[T, A, B, C any](b *TypeBuilder[T], name string, fn func(*T, A, B, C)) {
	params := []*Descriptor{DescriptorOf[A](), DescriptorOf[B](), DescriptorOf[C]()}
	addMethod(b, name, fn == nil, nil, params, func(self any, args []Any) (Any, error) {
		a, err := arg[A](args, 0)
		if err != nil {
			return Any{}, err
		}
		bb, err := arg[B](args, 1)
		if err != nil {
			return Any{}, err
		}
		c, err := arg[C](args, 2)
		if err != nil {
			return Any{}, err
		}
		fn(self.(*T), a, bb, c)
		return Any{}, nil
	})
}

// Func0 registers a method without parameters returning one value.
func Func0[T, R any](b *TypeBuilder[T], name string, fn func(*T) R) {
	addMethod(b, name, fn == nil, DescriptorOf[R](), nil, func(self any, _ []Any) (Any, error) {
		return Box(fn(self.(*T))), nil
	})
}

// Func1 registers a method with one parameter returning one value.
func Func1[T, A, R any](b *TypeBuilder[T], name string, fn func(*T, A) R) {
	params := []*Descriptor{DescriptorOf[A]()}
	addMethod(b, name, fn == nil, DescriptorOf[R](), params, func(self any, args []Any) (Any, error) {
		a, err := arg[A](args, 0)
		if err != nil {
			return Any{}, err
		}
		return Box(fn(self.(*T), a)), nil
	})
}

// Func2 registers a method with two parameters returning one value.
func Func2[T, A, B, R any](b *TypeBuilder[T], name string, fn func(*T, A, B) R) {
	params := []*Descriptor{DescriptorOf[A](), DescriptorOf[B]()}
	addMethod(b, name, fn == nil, DescriptorOf[R](), params, func(self any, args []Any) (Any, error) {
		a, err := arg[A](args, 0)
		if err != nil {
			return Any{}, err
		}
		bb, err := arg[B](args, 1)
		if err != nil {
			return Any{}, err
		}
		return Box(fn(self.(*T), a, bb)), nil
	})
}

// Func3 registers a method with three parameters returning one value.
func Func3[T, A, B, C, R any](b *TypeBuilder[T], name string, fn func(*T, A, B, C) R) {
	params := []*Descriptor{DescriptorOf[A](), DescriptorOf[B](), DescriptorOf[C]()}
	addMethod(b, name, fn == nil, DescriptorOf[R](), params, func(self any, args []Any) (Any, error) {
		a, err := arg[A](args, 0)
		if err != nil {
			return Any{}, err
		}
		bb, err := arg[B](args, 1)
		if err != nil {
			return Any{}, err
		}
		c, err := arg[C](args, 2)
		if err != nil {
			return Any{}, err
		}
		return Box(fn(self.(*T), a, bb, c)), nil
	})
}
