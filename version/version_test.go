// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	require := require.New(t)

	s := Semantic{Major: 1, Minor: 2, Patch: 3}
	require.Equal("v1.2.3", s.String())

	GitCommit = ""
	require.Equal(Current.String(), String())

	GitCommit = "abc1234"
	require.Contains(String(), "abc1234")
	GitCommit = ""
}
