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

import "errors"

var (
	// ErrTypeMismatch is returned when a value is accessed as a type other
	// than the one its descriptor records. No implicit conversion is made.
	ErrTypeMismatch = errors.New("rtti: type mismatch")
	// ErrMethodNotFound is returned by Invoke for a name absent from the
	// descriptor's method table.
	ErrMethodNotFound = errors.New("rtti: method not found")
	// ErrFieldNotFound is returned by Any.Field for a name absent from the
	// descriptor's field table.
	ErrFieldNotFound = errors.New("rtti: field not found")
	// ErrArityMismatch is returned when a method is called with a number of
	// arguments different from its declared parameter count.
	ErrArityMismatch = errors.New("rtti: arity mismatch")
	// ErrEmptyValue is returned by every operation other than construction
	// and Release on an empty Any.
	ErrEmptyValue = errors.New("rtti: empty value")
	// ErrDuplicateMember is returned by Describe when a field or method name
	// is registered twice and the config rejects duplicates.
	ErrDuplicateMember = errors.New("rtti: duplicate member")
	// ErrInvalidMember is returned by Describe for an empty member name or a
	// nil accessor/function.
	ErrInvalidMember = errors.New("rtti: invalid member")
)
