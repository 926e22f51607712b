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

package apis

// Namer lets a type choose its own descriptor name.
//
// TypeName is a type-level contract: it is called on the zero value (or on a
// pointer to the zero value for pointer-receiver implementations) and must not
// depend on instance state. It runs while the descriptor is being built and
// must not call back into the descriptor registry.
type Namer interface {
	// TypeName returns the diagnostic name used for the type's descriptor.
	TypeName() string
}
