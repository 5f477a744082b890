// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToID(t *testing.T) {
	require := require.New(t)

	b := make([]byte, IDLen)
	b[0] = 0xab
	b[IDLen-1] = 0xcd

	id, err := ToID(b)
	require.NoError(err)
	require.Equal(b, id.Bytes())

	_, err = ToID(b[:IDLen-1])
	require.ErrorIs(err, ErrWrongIDLen)

	_, err = ToID(append(b, 0x00))
	require.ErrorIs(err, ErrWrongIDLen)
}

func TestFromHex(t *testing.T) {
	require := require.New(t)

	id := ID{0xde, 0xad, 0xbe, 0xef}

	parsed, err := FromHex(id.Hex())
	require.NoError(err)
	require.Equal(id, parsed)

	// The prefix is optional.
	parsed, err = FromHex(id.Hex()[2:])
	require.NoError(err)
	require.Equal(id, parsed)

	_, err = FromHex("0xzz")
	require.Error(err)

	_, err = FromHex("0xab")
	require.ErrorIs(err, ErrWrongIDLen)
}

func TestIDJSON(t *testing.T) {
	require := require.New(t)

	id := ID{0x01, 0x02, 0x03}

	b, err := json.Marshal(id)
	require.NoError(err)
	require.Equal(`"`+id.Hex()+`"`, string(b))

	var parsed ID
	require.NoError(json.Unmarshal(b, &parsed))
	require.Equal(id, parsed)

	require.Error(json.Unmarshal([]byte(`"0xab`), &parsed))
}

func TestIDCompare(t *testing.T) {
	require := require.New(t)

	low := ID{0x01}
	high := ID{0x02}

	require.Equal(-1, low.Compare(high))
	require.Equal(1, high.Compare(low))
	require.Zero(low.Compare(low))
}
