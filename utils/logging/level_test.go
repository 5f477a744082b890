// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, level := range []Level{Off, Fatal, Error, Warn, Info, Trace, Debug, Verbo} {
		parsed, err := ToLevel(level.String())
		require.NoError(err)
		require.Equal(level, parsed)
	}
}

func TestToLevel(t *testing.T) {
	require := require.New(t)

	// Parsing is case insensitive.
	level, err := ToLevel("info")
	require.NoError(err)
	require.Equal(Info, level)

	_, err = ToLevel("unknown")
	require.Error(err)
}

func TestLevelOrdering(t *testing.T) {
	require := require.New(t)

	require.Less(Verbo, Debug)
	require.Less(Debug, Info)
	require.Less(Info, Warn)
	require.Less(Warn, Error)
	require.Less(Error, Fatal)
}
