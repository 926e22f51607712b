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

package strategy_test

import (
	"reflect"
	"testing"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/strategy"
)

type namedType struct{}

func (namedType) TypeName() string { return "custom.Name" } // implements apis.Namer

type ptrNamedType struct{ n int }

func (*ptrNamedType) TypeName() string { return "custom.PtrName" }

type emptyNamedType struct{}

func (emptyNamedType) TypeName() string { return "" }

func TestNamerStrategy_TryResolveType(t *testing.T) {
	s := strategy.NewNamerStrategy()
	conf := apis.Config{} // config is irrelevant for NamerStrategy

	got, ok := s.TryResolveType(reflect.TypeOf(namedType{}), conf)
	if !ok || got != "custom.Name" {
		t.Fatalf("TryResolveType: got (%q,%v), want (custom.Name,true)", got, ok)
	}

	// Pointer-receiver implementations are called on a pointer to the zero value.
	got, ok = s.TryResolveType(reflect.TypeOf(ptrNamedType{}), conf)
	if !ok || got != "custom.PtrName" {
		t.Fatalf("TryResolveType(ptr receiver): got (%q,%v), want (custom.PtrName,true)", got, ok)
	}

	// Pointer types themselves fall through.
	got, ok = s.TryResolveType(reflect.TypeOf(&namedType{}), conf)
	if ok || got != "" {
		t.Fatalf("TryResolveType(*namedType): got (%q,%v), want ('',false)", got, ok)
	}

	got, ok = s.TryResolveType(reflect.TypeOf(struct{}{}), conf)
	if ok || got != "" {
		t.Fatalf("TryResolveType(non-namer): got (%q,%v), want ('',false)", got, ok)
	}

	got, ok = s.TryResolveType(reflect.TypeOf(emptyNamedType{}), conf)
	if ok || got != "" {
		t.Fatalf("TryResolveType(empty name): got (%q,%v), want ('',false)", got, ok)
	}

	got, ok = s.TryResolveType(nil, conf)
	if ok || got != "" {
		t.Fatalf("TryResolveType(nil): got (%q,%v), want ('',false)", got, ok)
	}
}
