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

package builder

import (
	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/registry"
	"dirpx.dev/rtti/resolver"
	"dirpx.dev/rtti/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New[V comparable]() apis.Builder[V] {
	return &builder[V]{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder[V comparable] struct{}

// BuildRegistry builds and returns a new apis.Registry. If a pre-existing
// registry is provided, its entries are copied into the new registry so the
// stored values keep their identity across rebuilds. A migration that the
// new registry rejects panics: dropping an entry would lose its identity.
func (b *builder[V]) BuildRegistry(_ apis.Config, prev apis.Registry[V]) apis.Registry[V] {
	nreg := registry.New[V]()
	if prev != nil {
		for _, e := range prev.Entries() {
			if err := nreg.Register(e.Type, e.Value); err != nil {
				panic(err)
			}
		}
	}
	return nreg
}

// BuildResolver builds and returns a new apis.Resolver that derives default
// names: apis.Namer first, reflection rendering as the fallback.
func (b *builder[V]) BuildResolver(_ apis.Config) apis.Resolver {
	return resolver.New(
		strategy.NewNamerStrategy(),
		strategy.NewReflectStrategy(),
	)
}
