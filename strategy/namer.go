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

package strategy

import (
	"reflect"

	"dirpx.dev/rtti/apis"
)

// NewNamerStrategy creates an apis.Strategy that uses apis.Namer.
func NewNamerStrategy() apis.Strategy {
	return &namerStrategy{}
}

// namerStrategy is the fast path: if the zero value of t (or a pointer to it)
// implements apis.Namer, return its TypeName() and stop the chain.
type namerStrategy struct{}

// Ensure namerStrategy implements apis.Strategy.
var _ apis.Strategy = (*namerStrategy)(nil)

var namerType = reflect.TypeFor[apis.Namer]()

// TryResolveType asks the zero value of t for its name.
// Pointer and interface types are skipped: their zero value is nil.
func (*namerStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface:
		return "", false
	}

	var n apis.Namer
	switch {
	case t.Implements(namerType):
		n = reflect.New(t).Elem().Interface().(apis.Namer)
	case reflect.PointerTo(t).Implements(namerType):
		n = reflect.New(t).Interface().(apis.Namer)
	default:
		return "", false
	}

	name := n.TypeName()
	if name == "" {
		return "", false
	}
	return name, true
}
