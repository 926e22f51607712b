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

package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/rtti/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.QualifiedNames != config.DefaultQualifiedNames {
		t.Fatalf("QualifiedNames = %v, want %v", got.QualifiedNames, config.DefaultQualifiedNames)
	}
	if got.RejectDuplicateMembers != config.DefaultRejectDuplicateMembers {
		t.Fatalf("RejectDuplicateMembers = %v, want %v", got.RejectDuplicateMembers, config.DefaultRejectDuplicateMembers)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithQualifiedNames(t *testing.T) {
	c := config.NewConfig(config.WithQualifiedNames(true))
	if !c.QualifiedNames {
		t.Fatalf("QualifiedNames = %v, want true", c.QualifiedNames)
	}

	c2 := config.NewConfig(config.WithQualifiedNames(false))
	if c2.QualifiedNames {
		t.Fatalf("QualifiedNames = %v, want false", c2.QualifiedNames)
	}
}

func TestWithRejectDuplicateMembers(t *testing.T) {
	c := config.NewConfig(config.WithRejectDuplicateMembers(true))
	if !c.RejectDuplicateMembers {
		t.Fatalf("RejectDuplicateMembers = %v, want true", c.RejectDuplicateMembers)
	}
}

func TestOptionsApplyInOrder(t *testing.T) {
	c := config.NewConfig(
		config.WithQualifiedNames(true),
		config.WithQualifiedNames(false),
	)
	if c.QualifiedNames {
		t.Fatalf("last option should win, got QualifiedNames=%v", c.QualifiedNames)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RTTI_QUALIFIED_NAMES", "true")
	t.Setenv("RTTI_REJECT_DUPLICATES", "true")
	t.Setenv("RTTI_LOG_LEVEL", "debug")

	cfg, level, err := config.FromEnv()
	require.NoError(t, err)
	require.True(t, cfg.QualifiedNames)
	require.True(t, cfg.RejectDuplicateMembers)
	require.Equal(t, slog.LevelDebug, level)
}

func TestFromEnv_OptionsOverrideEnvironment(t *testing.T) {
	t.Setenv("RTTI_QUALIFIED_NAMES", "true")

	cfg, _, err := config.FromEnv(config.WithQualifiedNames(false))
	require.NoError(t, err)
	require.False(t, cfg.QualifiedNames)
}

func TestEnvConfig_InvalidLevel(t *testing.T) {
	_, _, err := config.Env{LogLevel: "chatty"}.Config()
	require.Error(t, err)
}

func TestEnvConfig_Defaults(t *testing.T) {
	cfg, level, err := config.Env{}.Config()
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig(), cfg)
	require.Equal(t, slog.LevelInfo, level)
}
