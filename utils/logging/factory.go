// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger that writes [config.DisplayLevel] and above to stderr
// and, when [config.Directory] is set, [config.LogLevel] and above to a
// rotated log file.
func New(config Config) (Logger, error) {
	cores := []WrappedCore{
		NewWrappedCore(
			config.DisplayLevel,
			nopCloserWriter{os.Stderr},
			zapcore.NewConsoleEncoder(newTermEncoderConfig()),
		),
	}

	if config.Directory != "" {
		if err := os.MkdirAll(config.Directory, 0o750); err != nil {
			return nil, err
		}
		fileWriter := &lumberjack.Logger{
			Filename:   filepath.Join(config.Directory, config.LoggerName+".log"),
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxFiles,
			MaxAge:     config.MaxAge,
			Compress:   false,
		}
		cores = append(cores, NewWrappedCore(
			config.LogLevel,
			fileWriter,
			zapcore.NewJSONEncoder(newFileEncoderConfig()),
		))
	}

	return NewLogger(config.LoggerName, cores...), nil
}

func newTermEncoderConfig() zapcore.EncoderConfig {
	config := newFileEncoderConfig()
	config.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("[01-02|15:04:05.000]"))
	}
	return config
}

func newFileEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    levelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// levelEncoder prints this package's level names rather than zapcore's.
func levelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(Level(l).String())
}

// nopCloserWriter shields os.Stderr from being closed when the logger stops.
type nopCloserWriter struct {
	io.Writer
}

func (nopCloserWriter) Close() error {
	return nil
}
