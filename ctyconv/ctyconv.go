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

// Package ctyconv bridges rtti values and go-cty values.
//
// Values whose descriptor has registered fields map to cty objects keyed by
// field name, walked recursively through borrowed field views. Every other
// value is converted by gocty from its Go representation, so a struct
// without registered fields needs `cty` tags; an untagged one fails with
// ErrUntaggedStruct rather than converting to an empty object.
package ctyconv

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"dirpx.dev/rtti"
)

var (
	// ErrNotObject is returned when a value for a type with registered fields
	// is neither a cty object nor a cty map.
	ErrNotObject = errors.New("ctyconv: value is not an object")
	// ErrUnknownAttribute is returned when an object carries an attribute
	// with no matching registered field.
	ErrUnknownAttribute = errors.New("ctyconv: unknown attribute")
	// ErrUnknownValue is returned for cty values that are not yet known.
	ErrUnknownValue = errors.New("ctyconv: value is unknown")
	// ErrUntaggedStruct is returned for a struct type with fields but neither
	// registered fields nor `cty` tags.
	ErrUntaggedStruct = errors.New("ctyconv: struct has no registered fields and no cty tags")
)

// ToValue converts the value held by a into a cty.Value.
func ToValue(a rtti.Any) (cty.Value, error) {
	if a.IsEmpty() {
		return cty.NilVal, rtti.ErrEmptyValue
	}

	d := a.Type()
	if d.NumFields() == 0 {
		v := a.Interface()
		ty, err := impliedType(d, v)
		if err != nil {
			return cty.NilVal, err
		}
		out, err := gocty.ToCtyValue(v, ty)
		if err != nil {
			return cty.NilVal, fmt.Errorf("ctyconv: %s: %w", d, err)
		}
		return out, nil
	}

	attrs := make(map[string]cty.Value, d.NumFields())
	var ferr error
	err := a.Foreach(func(name string, field rtti.Any) {
		if ferr != nil {
			return
		}
		v, err := ToValue(field)
		if err != nil {
			ferr = fmt.Errorf("%s: %w", name, err)
			return
		}
		attrs[name] = v
	})
	if err != nil {
		return cty.NilVal, err
	}
	if ferr != nil {
		return cty.NilVal, fmt.Errorf("ctyconv: %s.%w", d, ferr)
	}
	return cty.ObjectVal(attrs), nil
}

// FromValue returns an owning Any of type d populated from v.
func FromValue(v cty.Value, d *rtti.Descriptor) (rtti.Any, error) {
	a := d.New()
	if err := assign(a, v); err != nil {
		a.Release()
		return rtti.Any{}, err
	}
	return a, nil
}

// Assign stores v into the storage of dst. For types with registered fields
// each object attribute is assigned to the field of the same name; missing
// attributes leave the field untouched. Null values leave dst untouched.
//
// The value is decoded into a copy of dst and committed only on success, so
// dst is unchanged when Assign returns an error.
func Assign(dst rtti.Any, v cty.Value) error {
	if dst.IsEmpty() {
		return rtti.ErrEmptyValue
	}
	scratch := dst.Copy()
	if err := assign(scratch, v); err != nil {
		return err
	}
	return dst.Assign(scratch)
}

// assign decodes v into dst in place.
func assign(dst rtti.Any, v cty.Value) error {
	if !v.IsKnown() {
		return ErrUnknownValue
	}
	if v.IsNull() {
		return nil
	}

	d := dst.Type()
	if d.NumFields() == 0 {
		return assignLeaf(dst, v)
	}

	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return fmt.Errorf("%w: %s wants an object, got %s", ErrNotObject, d, ty.FriendlyName())
	}

	for name := range v.AsValueMap() {
		if _, ok := d.Field(name); !ok {
			return fmt.Errorf("%w: %s has no field %q", ErrUnknownAttribute, d, name)
		}
	}
	for _, f := range d.Fields() {
		attr, ok := lookup(v, f.Name())
		if !ok {
			continue
		}
		view, err := dst.Field(f.Name())
		if err != nil {
			return err
		}
		if err := assign(view, attr); err != nil {
			return fmt.Errorf("%s: %w", f.Name(), err)
		}
	}
	return nil
}

// lookup returns the attribute or map element named name.
func lookup(v cty.Value, name string) (cty.Value, bool) {
	if v.Type().IsObjectType() {
		if !v.Type().HasAttribute(name) {
			return cty.NilVal, false
		}
		return v.GetAttr(name), true
	}
	key := cty.StringVal(name)
	if !v.HasIndex(key).True() {
		return cty.NilVal, false
	}
	return v.Index(key), true
}

// assignLeaf converts v to the cty type implied by dst's Go type, then
// decodes it into dst's storage.
func assignLeaf(dst rtti.Any, v cty.Value) error {
	ty, err := impliedType(dst.Type(), dst.Interface())
	if errors.Is(err, ErrUntaggedStruct) {
		return err
	}
	if err == nil {
		conv, err := convert.Convert(v, ty)
		if err != nil {
			return fmt.Errorf("ctyconv: %s: %w", dst.Type(), err)
		}
		v = conv
	}
	if err := gocty.FromCtyValue(v, dst.Pointer()); err != nil {
		return fmt.Errorf("ctyconv: %s: %w", dst.Type(), err)
	}
	return nil
}

// impliedType returns the cty type gocty derives for v, a value of type d.
func impliedType(d *rtti.Descriptor, v any) (cty.Type, error) {
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilType, fmt.Errorf("ctyconv: %s: %w", d, err)
	}
	if rt := d.GoType(); rt.Kind() == reflect.Struct && rt.NumField() > 0 && ty.Equals(cty.EmptyObject) {
		return cty.NilType, fmt.Errorf("%w: %s", ErrUntaggedStruct, d)
	}
	return ty, nil
}

// Format renders v for humans: strings unquoted, numbers in plain decimal,
// everything else as JSON.
func Format(v cty.Value) (string, error) {
	switch {
	case !v.IsKnown():
		return "", ErrUnknownValue
	case v.IsNull():
		return "null", nil
	case v.Type() == cty.String:
		return v.AsString(), nil
	case v.Type() == cty.Number:
		return v.AsBigFloat().Text('f', -1), nil
	case v.Type() == cty.Bool:
		if v.True() {
			return "true", nil
		}
		return "false", nil
	}
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return "", fmt.Errorf("ctyconv: format: %w", err)
	}
	return string(b), nil
}

// AttributeNames returns the attribute names of an object or map value in
// sorted order.
func AttributeNames(v cty.Value) []string {
	if v.IsNull() || !v.IsKnown() || !(v.Type().IsObjectType() || v.Type().IsMapType()) {
		return nil
	}
	attrs := v.AsValueMap()
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
