// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package compression

import (
	"errors"
	"fmt"
	"strings"
)

// Type of compression applied to each payload.
type Type byte

const (
	TypeNone Type = iota
	TypeGzip
	TypeZstd
)

var errUnknownCompressionType = errors.New("unknown compression type")

func TypeFromString(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "none":
		return TypeNone, nil
	case "gzip":
		return TypeGzip, nil
	case "zstd":
		return TypeZstd, nil
	default:
		return TypeNone, fmt.Errorf("%w: %q", errUnknownCompressionType, s)
	}
}

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeGzip:
		return "gzip"
	case TypeZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// NewCompressor returns a compressor for [t] that refuses to decompress
// payloads larger than [maxSize].
func NewCompressor(t Type, maxSize int64) (Compressor, error) {
	switch t {
	case TypeNone:
		return NewNoCompressor(), nil
	case TypeGzip:
		return NewGzipCompressor(maxSize)
	case TypeZstd:
		return NewZstdCompressor(maxSize), nil
	default:
		return nil, errUnknownCompressionType
	}
}
