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

// Field describes one registered field of a type.
type Field struct {
	name  string
	owner *Descriptor
	typ   *Descriptor
	// addr maps the owner's storage (*Owner) to the field's storage (*F).
	addr func(obj any) any
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Owner returns the descriptor of the type that declares the field.
func (f *Field) Owner() *Descriptor { return f.owner }

// Type returns the descriptor of the field's type.
func (f *Field) Type() *Descriptor { return f.typ }

// view returns a borrowed Any over the field inside obj.
func (f *Field) view(obj any) Any {
	return Any{desc: f.typ, ptr: f.addr(obj), own: Borrowed}
}

// Get returns a borrowed view of the field inside owner.
func (f *Field) Get(owner Any) (Any, error) {
	if owner.desc == nil {
		return Any{}, ErrEmptyValue
	}
	if owner.desc != f.owner {
		return Any{}, mismatch(f.owner, owner.desc)
	}
	return f.view(owner.ptr), nil
}

// Set copies value into the field inside owner.
func (f *Field) Set(owner, value Any) error {
	dst, err := f.Get(owner)
	if err != nil {
		return err
	}
	return dst.Assign(value)
}

// AddField registers a field of T named name whose storage is returned by
// addr. The accessor is the safe counterpart of a byte offset: it must
// return the address of a field inside its argument, never nil.
func AddField[T, F any](b *TypeBuilder[T], name string, addr func(*T) *F) {
	if name == "" || addr == nil {
		b.fail(name, "field", ErrInvalidMember)
		return
	}
	f := &Field{
		name:  name,
		owner: b.d,
		typ:   DescriptorOf[F](),
		addr: func(obj any) any {
			return addr(obj.(*T))
		},
	}
	if !b.checkDuplicate(name, "field", b.tab.fieldByName[name] != nil) {
		return
	}
	b.tab.putField(f)
	b.logger().Debug("Registering field.", "type", b.tab.name, "field", name, "field_type", f.typ.Name())
}
