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

// Config carries read-only knobs for descriptor construction and registration.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// QualifiedNames controls how default descriptor names are derived.
	// If true, named types are rendered with their full import path
	// ("example.com/app/model.Person"); otherwise only the last path
	// element is kept ("model.Person").
	QualifiedNames bool

	// RejectDuplicateMembers controls re-registration of an existing field
	// or method name on a descriptor. If false, the last writer wins.
	// If true, the registration fails with a duplicate member error.
	RejectDuplicateMembers bool
}
