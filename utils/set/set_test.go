// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package set

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	require := require.New(t)

	s := Set[int]{}
	require.Zero(s.Len())
	require.False(s.Contains(1))

	s.Add(1, 2, 2)
	require.Equal(2, s.Len())
	require.True(s.Contains(1))
	require.True(s.Contains(2))

	s.Remove(1, 3)
	require.Equal(1, s.Len())
	require.False(s.Contains(1))

	s.Clear()
	require.Zero(s.Len())
}

func TestSetOf(t *testing.T) {
	require := require.New(t)

	s := Of("a", "b")
	require.Equal(2, s.Len())
	require.ElementsMatch([]string{"a", "b"}, s.List())
}
