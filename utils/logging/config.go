// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

// Config defines the configuration of a logger
type Config struct {
	// LogLevel is the minimum level written to the log file.
	LogLevel Level `json:"logLevel"`
	// DisplayLevel is the minimum level written to the terminal.
	DisplayLevel Level `json:"displayLevel"`
	// Directory to write rotated log files to. If empty, no file logging is
	// performed.
	Directory string `json:"directory"`
	// MaxSize is the maximum size of a log file before rotation, in MiB.
	MaxSize int `json:"maxSize"`
	// MaxFiles is the number of rotated files to retain.
	MaxFiles int `json:"maxFiles"`
	// MaxAge is the maximum number of days to retain a rotated file.
	MaxAge int `json:"maxAge"`
	// LoggerName names the log file and the zap logger.
	LoggerName string `json:"-"`
}

// DefaultConfig returns a config that logs Info to the terminal and Debug to
// a rotated file when a directory is set.
func DefaultConfig() Config {
	return Config{
		LogLevel:     Debug,
		DisplayLevel: Info,
		MaxSize:      8,
		MaxFiles:     7,
		MaxAge:       0,
	}
}
