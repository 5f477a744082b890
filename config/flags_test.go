// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/alyokaz/besu/utils/logging"
	"github.com/alyokaz/besu/worldstate"
)

func buildConfig(t *testing.T, args ...string) (Config, error) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(fs)

	v, err := BuildViper(fs, args)
	require.NoError(t, err)
	return New(v)
}

func TestDefaults(t *testing.T) {
	require := require.New(t)

	cfg, err := buildConfig(t)
	require.NoError(err)

	require.Equal(worldstate.Bonsai, cfg.StorageFormat)
	require.Equal(uint64(512), cfg.RetentionThreshold)
	require.Equal(filepath.Join(cfg.DataDir, "db"), cfg.DBDir)
	require.Equal(filepath.Join(cfg.DataDir, "logs"), cfg.LogConfig.Directory)
	require.Equal(logging.Info, cfg.LogConfig.LogLevel)
	require.Equal(logging.Info, cfg.LogConfig.DisplayLevel)
}

func TestOverrides(t *testing.T) {
	require := require.New(t)

	cfg, err := buildConfig(t,
		"--data-dir", "/tmp/besu-test",
		"--data-storage-format", "forest",
		"--trie-log-retention-threshold", "64",
		"--log-level", "debug",
		"--log-display-level", "warn",
	)
	require.NoError(err)

	require.Equal("/tmp/besu-test", cfg.DataDir)
	require.Equal(worldstate.Forest, cfg.StorageFormat)
	require.Equal(uint64(64), cfg.RetentionThreshold)
	require.Equal(logging.Debug, cfg.LogConfig.LogLevel)
	require.Equal(logging.Warn, cfg.LogConfig.DisplayLevel)
}

func TestInvalidFormat(t *testing.T) {
	_, err := buildConfig(t, "--data-storage-format", "flat")
	require.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := buildConfig(t, "--log-level", "loud")
	require.Error(t, err)
}
