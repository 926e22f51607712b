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
	"path"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"dirpx.dev/rtti/apis"
)

// NewReflectStrategy creates an apis.Strategy that renders names via
// reflection with memoization.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback. It renders a Go-like type
// expression ("*model.Person", "map[string][]model.Tag") where named types
// are qualified by their package, generic instantiation parameters are
// stripped, and builtins keep their plain name.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects all config knobs that affect naming.
type cacheKey struct {
	t         reflect.Type
	qualified bool
}

// typeNameCache caches rendered type names by (type, config knobs).
var typeNameCache sync.Map // key: cacheKey, val: string

// TryResolveType renders the name for t.
func (reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return byType(t, cfg), true
}

// byType renders the name for t with memoization.
func byType(t reflect.Type, cfg apis.Config) string {
	key := cacheKey{t: t, qualified: cfg.QualifiedNames}
	if v, ok := typeNameCache.Load(key); ok {
		return v.(string)
	}

	var b strings.Builder
	render(&b, t, cfg.QualifiedNames)
	name := b.String()

	typeNameCache.Store(key, name)
	return name
}

// render writes the type expression for t into b.
func render(b *strings.Builder, t reflect.Type, qualified bool) {
	if t.Name() != "" {
		if p := t.PkgPath(); p != "" {
			if !qualified {
				p = path.Base(p)
			}
			b.WriteString(p)
			b.WriteByte('.')
		}
		b.WriteString(stripTypeParams(t.Name()))
		return
	}

	switch t.Kind() {
	case reflect.Pointer:
		b.WriteByte('*')
		render(b, t.Elem(), qualified)
	case reflect.Slice:
		b.WriteString("[]")
		render(b, t.Elem(), qualified)
	case reflect.Array:
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(t.Len()))
		b.WriteByte(']')
		render(b, t.Elem(), qualified)
	case reflect.Map:
		b.WriteString("map[")
		render(b, t.Key(), qualified)
		b.WriteByte(']')
		render(b, t.Elem(), qualified)
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			b.WriteString("<-chan ")
		case reflect.SendDir:
			b.WriteString("chan<- ")
		default:
			b.WriteString("chan ")
		}
		render(b, t.Elem(), qualified)
	default:
		// Anonymous structs, funcs and interfaces.
		b.WriteString(t.String())
	}
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
