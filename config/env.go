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
	"errors"
	"fmt"
	"log/slog"

	"github.com/joeshaw/envdecode"

	"dirpx.dev/rtti/apis"
)

// Env is the process environment view of the configuration.
// Defaults are provided via struct tags.
type Env struct {
	// QualifiedNames mirrors apis.Config.QualifiedNames. ENV: RTTI_QUALIFIED_NAMES
	QualifiedNames bool `env:"RTTI_QUALIFIED_NAMES,default=false"`
	// RejectDuplicates mirrors apis.Config.RejectDuplicateMembers. ENV: RTTI_REJECT_DUPLICATES
	RejectDuplicates bool `env:"RTTI_REJECT_DUPLICATES,default=false"`
	// LogLevel is the minimum slog level ("debug", "info", "warn", "error"). ENV: RTTI_LOG_LEVEL
	LogLevel string `env:"RTTI_LOG_LEVEL,default=info"`
}

// FromEnv decodes Env from the process environment and converts it into an
// apis.Config plus the requested log level. Extra options are applied last.
func FromEnv(opts ...Option) (apis.Config, slog.Level, error) {
	var env Env
	if err := envdecode.Decode(&env); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return apis.Config{}, slog.LevelInfo, fmt.Errorf("config: decode environment: %w", err)
	}
	return env.Config(opts...)
}

// Config converts e into an apis.Config and a slog.Level.
func (e Env) Config(opts ...Option) (apis.Config, slog.Level, error) {
	var level slog.Level
	if e.LogLevel != "" {
		if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
			return apis.Config{}, slog.LevelInfo, fmt.Errorf("config: invalid log level %q: %w", e.LogLevel, err)
		}
	}
	all := append([]Option{
		WithQualifiedNames(e.QualifiedNames),
		WithRejectDuplicateMembers(e.RejectDuplicates),
	}, opts...)
	return NewConfig(all...), level, nil
}
