// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package worldstate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alyokaz/besu/database"
)

// Format describes how the world state is laid out on disk. Only the Bonsai
// format keeps a trie log per block; the legacy Forest format keeps one
// flattened state and has nothing for the trie log tooling to operate on.
type Format byte

const (
	Bonsai Format = iota
	Forest
)

var (
	// ErrUnsupportedFormat is returned before any storage access when an
	// operation requires per-block trie logs and the store is not in Bonsai
	// format.
	ErrUnsupportedFormat = errors.New("storage format unsupported")

	errUnknownFormat = errors.New("unknown data storage format")

	// formatKey indexes the persisted format marker in the store's metadata
	// keyspace.
	formatKey = []byte("data_storage_format")
)

func FormatFromString(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "bonsai":
		return Bonsai, nil
	case "forest":
		return Forest, nil
	default:
		return Bonsai, fmt.Errorf("%w: %q", errUnknownFormat, s)
	}
}

func (f Format) String() string {
	switch f {
	case Bonsai:
		return "bonsai"
	case Forest:
		return "forest"
	default:
		return "unknown"
	}
}

// ReadFormat returns the format marker persisted in [db], or false if the
// store has never been marked.
func ReadFormat(db database.KeyValueReader) (Format, bool, error) {
	b, err := db.Get(formatKey)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return Bonsai, false, nil
	case err != nil:
		return Bonsai, false, err
	case len(b) != 1:
		return Bonsai, false, fmt.Errorf("%w: marker has length %d", errUnknownFormat, len(b))
	}

	format := Format(b[0])
	if format != Bonsai && format != Forest {
		return Bonsai, false, fmt.Errorf("%w: marker %#x", errUnknownFormat, b[0])
	}
	return format, true, nil
}

// WriteFormat persists the format marker into [db].
func WriteFormat(db database.KeyValueWriter, f Format) error {
	return db.Put(formatKey, []byte{byte(f)})
}
