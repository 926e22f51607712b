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
	"maps"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Descriptor is the runtime metadata of one concrete Go type: a diagnostic
// name, the erased lifecycle functions, and the field and method tables.
//
// There is exactly one Descriptor per type (see DescriptorOf), so two values
// have the same runtime type iff their descriptors are the same pointer.
// Names are labels only: distinct types may share a name.
type Descriptor struct {
	// id is a random diagnostic identifier.
	id uuid.UUID
	// rtype is the Go type the descriptor stands for.
	rtype reflect.Type
	// life is the erased copy/move/destroy table.
	life lifecycle
	// mu serializes Describe commits.
	mu sync.Mutex
	// tab is the published member table. Writers publish a modified clone.
	tab atomic.Pointer[table]
}

// table is an immutable snapshot of a descriptor's name and members.
// Never mutate a published table; clone it first.
type table struct {
	name         string
	fields       []*Field
	methods      []*Method
	fieldByName  map[string]*Field
	methodByName map[string]*Method
}

func newDescriptor(t reflect.Type, name string, life lifecycle) *Descriptor {
	d := &Descriptor{
		id:    uuid.New(),
		rtype: t,
		life:  life,
	}
	d.tab.Store(&table{
		name:         name,
		fieldByName:  map[string]*Field{},
		methodByName: map[string]*Method{},
	})
	return d
}

// clone returns a deep-enough copy of t for staging changes.
func (t *table) clone() *table {
	return &table{
		name:         t.name,
		fields:       slices.Clone(t.fields),
		methods:      slices.Clone(t.methods),
		fieldByName:  maps.Clone(t.fieldByName),
		methodByName: maps.Clone(t.methodByName),
	}
}

// putField inserts f, replacing an existing field of the same name in place.
func (t *table) putField(f *Field) {
	if _, ok := t.fieldByName[f.name]; ok {
		for i, old := range t.fields {
			if old.name == f.name {
				t.fields[i] = f
			}
		}
	} else {
		t.fields = append(t.fields, f)
	}
	t.fieldByName[f.name] = f
}

// putMethod inserts m, replacing an existing method of the same name in place.
func (t *table) putMethod(m *Method) {
	if _, ok := t.methodByName[m.name]; ok {
		for i, old := range t.methods {
			if old.name == m.name {
				t.methods[i] = m
			}
		}
	} else {
		t.methods = append(t.methods, m)
	}
	t.methodByName[m.name] = m
}

// ID returns the descriptor's diagnostic identifier.
func (d *Descriptor) ID() uuid.UUID { return d.id }

// Name returns the descriptor's diagnostic name.
func (d *Descriptor) Name() string { return d.tab.Load().name }

// String implements fmt.Stringer.
func (d *Descriptor) String() string {
	if d == nil {
		return "<nil>"
	}
	return d.Name()
}

// GoType returns the Go type the descriptor stands for.
func (d *Descriptor) GoType() reflect.Type { return d.rtype }

// New returns an owning Any holding the zero value of the type.
func (d *Descriptor) New() Any {
	return Any{desc: d, ptr: d.life.alloc(), own: Owning}
}

// Fields returns the registered fields in registration order.
func (d *Descriptor) Fields() []*Field {
	return slices.Clone(d.tab.Load().fields)
}

// Field returns the field registered under name.
func (d *Descriptor) Field(name string) (*Field, bool) {
	f, ok := d.tab.Load().fieldByName[name]
	return f, ok
}

// NumFields returns the number of registered fields.
func (d *Descriptor) NumFields() int { return len(d.tab.Load().fields) }

// Methods returns the registered methods in registration order.
func (d *Descriptor) Methods() []*Method {
	return slices.Clone(d.tab.Load().methods)
}

// Method returns the method registered under name.
func (d *Descriptor) Method(name string) (*Method, bool) {
	m, ok := d.tab.Load().methodByName[name]
	return m, ok
}

// NumMethods returns the number of registered methods.
func (d *Descriptor) NumMethods() int { return len(d.tab.Load().methods) }
