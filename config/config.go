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

package config

import (
	"dirpx.dev/rtti/apis"
)

const (
	// DefaultQualifiedNames represents the default for QualifiedNames.
	// When false, derived names keep only the last import path element.
	DefaultQualifiedNames = false
	// DefaultRejectDuplicateMembers represents the default for RejectDuplicateMembers.
	// When false, re-registering a member name overwrites the prior entry.
	DefaultRejectDuplicateMembers = false
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		QualifiedNames:         DefaultQualifiedNames,
		RejectDuplicateMembers: DefaultRejectDuplicateMembers,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithQualifiedNames sets the QualifiedNames option.
func WithQualifiedNames(qualified bool) Option {
	return func(c *apis.Config) {
		c.QualifiedNames = qualified
	}
}

// WithRejectDuplicateMembers sets the RejectDuplicateMembers option.
func WithRejectDuplicateMembers(reject bool) Option {
	return func(c *apis.Config) {
		c.RejectDuplicateMembers = reject
	}
}
