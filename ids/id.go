// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	// IDLen is the number of bytes in an ID. Block hashes are 32 byte
	// digests, so an ID wraps exactly one of them.
	IDLen = 32

	hexPrefix = "0x"
)

var (
	// Empty is a useful all zero value
	Empty = ID{}

	ErrWrongIDLen = errors.New("insufficient ID length")

	errMissingQuotes = errors.New("first and last characters should be quotes")
)

// ID wraps a 32 byte block hash used as the key of a trie log record.
type ID [IDLen]byte

// ToID attempts to convert a byte slice into an id
func ToID(b []byte) (ID, error) {
	if len(b) != IDLen {
		return Empty, fmt.Errorf("%w: expected %d bytes but got %d", ErrWrongIDLen, IDLen, len(b))
	}
	var id ID
	copy(id[:], b)
	return id, nil
}

// FromHex is the inverse of ID.Hex(). It accepts an optional 0x prefix.
func FromHex(s string) (ID, error) {
	s = strings.TrimPrefix(s, hexPrefix)
	b, err := hex.DecodeString(s)
	if err != nil {
		return Empty, err
	}
	return ToID(b)
}

// Any modification to Bytes will be lost since id is passed-by-value.
// Directly access id[:] if you need to modify the ID.
func (id ID) Bytes() []byte {
	return id[:]
}

// Hex returns the 0x prefixed hex representation of this id
func (id ID) Hex() string {
	return hexPrefix + hex.EncodeToString(id[:])
}

func (id ID) String() string {
	return id.Hex()
}

func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.Hex() + `"`), nil
}

func (id *ID) UnmarshalJSON(b []byte) error {
	str := string(b)
	if str == "null" { // If "null", do nothing
		return nil
	}
	lastIndex := len(str) - 1
	if len(str) < 2 || str[0] != '"' || str[lastIndex] != '"' {
		return errMissingQuotes
	}

	parsed, err := FromHex(str[1:lastIndex])
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := FromHex(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id ID) Compare(other ID) int {
	return bytes.Compare(id[:], other[:])
}
