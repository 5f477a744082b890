// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alyokaz/besu/chain"
	"github.com/alyokaz/besu/config"
	"github.com/alyokaz/besu/ids"
	"github.com/alyokaz/besu/utils/logging"
	"github.com/alyokaz/besu/worldstate"
)

func testConfig(t *testing.T) config.Config {
	dataDir := t.TempDir()
	return config.Config{
		DataDir:       dataDir,
		DBDir:         filepath.Join(dataDir, "db"),
		StorageFormat: worldstate.Bonsai,
	}
}

func TestNewPersistsFormatMarker(t *testing.T) {
	require := require.New(t)

	cfg := testConfig(t)

	n, err := New(cfg, logging.NoLog{})
	require.NoError(err)
	require.NoError(n.Close())

	// Reopening with the same format succeeds.
	n, err = New(cfg, logging.NoLog{})
	require.NoError(err)
	require.NoError(n.Close())

	// Reopening with a conflicting format fails.
	cfg.StorageFormat = worldstate.Forest
	_, err = New(cfg, logging.NoLog{})
	require.ErrorIs(err, errFormatMismatch)
}

func TestStateSurvivesReopen(t *testing.T) {
	require := require.New(t)

	cfg := testConfig(t)
	ref := chain.BlockRef{Number: 1, Hash: ids.ID{0x01}}

	n, err := New(cfg, logging.NoLog{})
	require.NoError(err)
	require.NoError(n.Chain.SetHead(ref))
	require.NoError(n.Close())

	n, err = New(cfg, logging.NoLog{})
	require.NoError(err)
	defer func() {
		require.NoError(n.Close())
	}()

	head, err := n.Chain.Head()
	require.NoError(err)
	require.Equal(ref, head)

	count, err := n.TrieLogs.Count(0)
	require.NoError(err)
	require.Zero(count)
}
