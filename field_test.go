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

package rtti_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/rtti"
)

type Address struct {
	City string
	Zip  int
}

type Employee struct {
	Who  Person
	Home Address
	Tags []string
}

func init() {
	rtti.MustDescribe(func(b *rtti.TypeBuilder[Address]) {
		rtti.AddField(b, "city", func(a *Address) *string { return &a.City })
		rtti.AddField(b, "zip", func(a *Address) *int { return &a.Zip })
	})
	rtti.MustDescribe(func(b *rtti.TypeBuilder[Employee]) {
		rtti.AddField(b, "who", func(e *Employee) *Person { return &e.Who })
		rtti.AddField(b, "home", func(e *Employee) *Address { return &e.Home })
		rtti.AddField(b, "tags", func(e *Employee) *[]string { return &e.Tags })
	})
}

func TestForeach_VisitsEveryFieldOnce(t *testing.T) {
	src := Person{Name: "Tom", Age: 18}
	a := rtti.Box(src)

	seen := map[string]int{}
	err := a.Foreach(func(name string, field rtti.Any) {
		seen[name]++
		require.True(t, field.IsBorrowed())
		switch name {
		case "name":
			v, err := rtti.Unbox[string](field)
			require.NoError(t, err)
			require.Equal(t, src.Name, v)
		case "age":
			v, err := rtti.Unbox[uint64](field)
			require.NoError(t, err)
			require.Equal(t, src.Age, v)
		default:
			t.Fatalf("unexpected field %q", name)
		}
	})
	require.NoError(t, err)
	require.Equal(t, map[string]int{"name": 1, "age": 1}, seen)
}

func TestForeach_NoFields(t *testing.T) {
	calls := 0
	err := rtti.Box(42).Foreach(func(string, rtti.Any) { calls++ })
	require.NoError(t, err)
	require.Zero(t, calls)
}

func TestForeach_ViewsWriteThrough(t *testing.T) {
	a := rtti.Box(Person{Name: "Tom", Age: 18})

	err := a.Foreach(func(name string, field rtti.Any) {
		if name == "age" {
			p, err := rtti.Cast[uint64](field)
			require.NoError(t, err)
			*p = 30
		}
	})
	require.NoError(t, err)

	p, err := rtti.Cast[Person](a)
	require.NoError(t, err)
	require.EqualValues(t, 30, p.Age)
}

func TestForeach_Recursive(t *testing.T) {
	e := rtti.Box(Employee{
		Who:  Person{Name: "Ann", Age: 40},
		Home: Address{City: "Oslo", Zip: 150},
		Tags: []string{"lead"},
	})

	leaves := map[string]any{}
	var walk func(prefix string, a rtti.Any)
	walk = func(prefix string, a rtti.Any) {
		if a.Type().NumFields() == 0 {
			leaves[prefix] = a.Interface()
			return
		}
		require.NoError(t, a.Foreach(func(name string, field rtti.Any) {
			walk(prefix+"."+name, field)
		}))
	}
	walk("", e)

	require.Equal(t, map[string]any{
		".who.name":  "Ann",
		".who.age":   uint64(40),
		".home.city": "Oslo",
		".home.zip":  150,
		".tags":      []string{"lead"},
	}, leaves)
}

func TestField_ByName(t *testing.T) {
	a := rtti.Box(Person{Name: "Tom", Age: 18})

	name, err := a.Field("name")
	require.NoError(t, err)
	require.Same(t, rtti.DescriptorOf[string](), name.Type())
	require.Equal(t, "Tom", name.Interface())

	_, err = a.Field("height")
	require.ErrorIs(t, err, rtti.ErrFieldNotFound)
}

func TestField_ViewCopyIsOwning(t *testing.T) {
	a := rtti.Box(Person{Name: "Tom", Age: 18})
	view, err := a.Field("name")
	require.NoError(t, err)

	c := view.Copy()
	require.Equal(t, rtti.Owning, c.Ownership())

	p, err := rtti.Cast[string](c)
	require.NoError(t, err)
	*p = "changed"
	require.Equal(t, "Tom", view.Interface())
}

func TestFieldMetadata_GetSet(t *testing.T) {
	d := rtti.DescriptorOf[Person]()
	f, ok := d.Field("age")
	require.True(t, ok)
	require.Equal(t, "age", f.Name())
	require.Same(t, d, f.Owner())
	require.Same(t, rtti.DescriptorOf[uint64](), f.Type())

	a := rtti.Box(Person{Name: "Tom", Age: 18})
	require.NoError(t, f.Set(a, rtti.Box(uint64(21))))

	v, err := f.Get(a)
	require.NoError(t, err)
	require.Equal(t, uint64(21), v.Interface())

	err = f.Set(a, rtti.Box(21))
	require.ErrorIs(t, err, rtti.ErrTypeMismatch)

	_, err = f.Get(rtti.Box(Address{}))
	require.ErrorIs(t, err, rtti.ErrTypeMismatch)

	err = f.Set(a, rtti.Any{})
	require.ErrorIs(t, err, rtti.ErrEmptyValue)
}

func TestDescriptor_FieldsInRegistrationOrder(t *testing.T) {
	var names []string
	for _, f := range rtti.DescriptorOf[Employee]().Fields() {
		names = append(names, f.Name())
	}
	require.Equal(t, []string{"who", "home", "tags"}, names)
}
