// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alyokaz/besu/trielog"
	"github.com/alyokaz/besu/utils/logging"
	"github.com/alyokaz/besu/worldstate"
)

const (
	DataDirKey                   = "data-dir"
	DBDirKey                     = "db-dir"
	DataStorageFormatKey         = "data-storage-format"
	TrieLogRetentionThresholdKey = "trie-log-retention-threshold"
	LogLevelKey                  = "log-level"
	LogDisplayLevelKey           = "log-display-level"
	LogDirKey                    = "log-dir"

	envVarPrefix = "BESU"
)

var defaultDataDir = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".besu"
	}
	return filepath.Join(home, ".besu")
}()

// AddFlags registers the node-level flags shared by every subcommand.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(DataDirKey, defaultDataDir, "directory the node writes its state into")
	fs.String(DBDirKey, "", "database directory, defaults to [data-dir]/db")
	fs.String(DataStorageFormatKey, worldstate.Bonsai.String(), "world state layout, bonsai or forest")
	fs.Uint64(TrieLogRetentionThresholdKey, trielog.DefaultRetentionThreshold, "number of blocks behind the head to keep trie logs for")
	fs.String(LogLevelKey, logging.Info.LowerString(), "log level written to the log file")
	fs.String(LogDisplayLevelKey, "", "log level written to stderr, defaults to the file level")
	fs.String(LogDirKey, "", "log directory, defaults to [data-dir]/logs")
}

// BuildViper parses [args] against [fs] and layers the matching BESU_*
// environment variables underneath.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	return v, nil
}

// Config is the node configuration assembled from flags and environment.
type Config struct {
	DataDir            string
	DBDir              string
	StorageFormat      worldstate.Format
	RetentionThreshold uint64
	LogConfig          logging.Config
}

// New validates the settings in [v] and resolves the directory defaults.
func New(v *viper.Viper) (Config, error) {
	dataDir, err := filepath.Abs(os.ExpandEnv(v.GetString(DataDirKey)))
	if err != nil {
		return Config{}, fmt.Errorf("resolving %s: %w", DataDirKey, err)
	}

	dbDir := v.GetString(DBDirKey)
	if dbDir == "" {
		dbDir = filepath.Join(dataDir, "db")
	}
	logDir := v.GetString(LogDirKey)
	if logDir == "" {
		logDir = filepath.Join(dataDir, "logs")
	}

	format, err := worldstate.FormatFromString(v.GetString(DataStorageFormatKey))
	if err != nil {
		return Config{}, err
	}

	logLevel, err := logging.ToLevel(v.GetString(LogLevelKey))
	if err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", LogLevelKey, err)
	}
	displayLevel := logLevel
	if display := v.GetString(LogDisplayLevelKey); display != "" {
		displayLevel, err = logging.ToLevel(display)
		if err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", LogDisplayLevelKey, err)
		}
	}

	logConfig := logging.DefaultConfig()
	logConfig.LogLevel = logLevel
	logConfig.DisplayLevel = displayLevel
	logConfig.Directory = logDir
	logConfig.LoggerName = "trielogctl"

	return Config{
		DataDir:            dataDir,
		DBDir:              dbDir,
		StorageFormat:      format,
		RetentionThreshold: v.GetUint64(TrieLogRetentionThresholdKey),
		LogConfig:          logConfig,
	}, nil
}
