// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package trielog

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/alyokaz/besu/chain"
	"github.com/alyokaz/besu/database"
	"github.com/alyokaz/besu/database/memdb"
	"github.com/alyokaz/besu/ids"
	"github.com/alyokaz/besu/utils/compression"
	"github.com/alyokaz/besu/utils/logging"
	"github.com/alyokaz/besu/worldstate"
)

func blockHash(number uint64) ids.ID {
	var hash ids.ID
	copy(hash[:], fmt.Sprintf("block-%d", number))
	return hash
}

// newTestMaintainer builds a canonical chain of [blocks] blocks with one
// trie log each, on top of an empty genesis.
func newTestMaintainer(t *testing.T, blocks uint64) (*Maintainer, *Storage, *chain.Blockchain) {
	require := require.New(t)

	storage := NewStorage(memdb.New(), worldstate.Bonsai)
	chainIndex := chain.New(memdb.New())

	for number := uint64(1); number <= blocks; number++ {
		ref := chain.BlockRef{Number: number, Hash: blockHash(number)}
		require.NoError(chainIndex.SetHead(ref))
		require.NoError(storage.Put(ref.Hash, []byte(fmt.Sprintf("trie-log-%d", number))))
	}

	m, err := NewMaintainer(storage, chainIndex, logging.NoLog{}, prometheus.NewRegistry())
	require.NoError(err)
	return m, storage, chainIndex
}

func TestCount(t *testing.T) {
	require := require.New(t)

	m, _, _ := newTestMaintainer(t, 5)

	count, err := m.Count(0)
	require.NoError(err)
	require.Equal(5, count)

	count, err = m.Count(3)
	require.NoError(err)
	require.Equal(3, count)
}

func TestFormatGate(t *testing.T) {
	require := require.New(t)

	db := memdb.New()
	storage := NewStorage(db, worldstate.Forest)
	chainIndex := chain.New(memdb.New())
	require.NoError(chainIndex.SetHead(chain.BlockRef{Number: 1, Hash: blockHash(1)}))
	m, err := NewMaintainer(storage, chainIndex, logging.NoLog{}, prometheus.NewRegistry())
	require.NoError(err)

	_, err = m.Count(0)
	require.ErrorIs(err, worldstate.ErrUnsupportedFormat)

	_, err = m.Prune(context.Background(), PruneConfig{RetentionThreshold: 1}, t.TempDir())
	require.ErrorIs(err, worldstate.ErrUnsupportedFormat)

	err = m.Export([]ids.ID{blockHash(1)}, t.TempDir()+"/out.bin", compression.TypeNone)
	require.ErrorIs(err, worldstate.ErrUnsupportedFormat)

	_, err = m.Import(t.TempDir() + "/in.bin")
	require.ErrorIs(err, worldstate.ErrUnsupportedFormat)

	// The gate fires before any storage access.
	count, err := database.Count(db)
	require.NoError(err)
	require.Zero(count)
}

func TestPruneRetentionWindow(t *testing.T) {
	require := require.New(t)

	m, storage, _ := newTestMaintainer(t, 5)

	report, err := m.Prune(context.Background(), PruneConfig{RetentionThreshold: 2}, t.TempDir())
	require.NoError(err)
	require.Equal(2, report.Pruned)
	require.Equal(3, report.Retained)
	require.Equal(2, report.Aged)
	require.Zero(report.Orphaned)

	// Blocks 1 and 2 are outside the window, 3 through 5 inside.
	for number := uint64(1); number <= 2; number++ {
		has, err := storage.Has(blockHash(number))
		require.NoError(err)
		require.False(has)
	}
	for number := uint64(3); number <= 5; number++ {
		has, err := storage.Has(blockHash(number))
		require.NoError(err)
		require.True(has)
	}
}

func TestPruneOrphans(t *testing.T) {
	require := require.New(t)

	m, storage, chainIndex := newTestMaintainer(t, 5)

	// A fork block at height 5, near the head but not canonical, and a
	// trie log for an entirely unknown hash.
	fork := chain.BlockRef{Number: 5, Hash: ids.ID{0xf0}}
	require.NoError(chainIndex.WriteBlock(fork))
	require.NoError(storage.Put(fork.Hash, []byte("fork")))

	unknown := ids.ID{0xf1}
	require.NoError(storage.Put(unknown, []byte("unknown")))

	report, err := m.Prune(context.Background(), PruneConfig{RetentionThreshold: 10}, t.TempDir())
	require.NoError(err)
	require.Equal(2, report.Pruned)
	require.Equal(2, report.Orphaned)
	require.Zero(report.Aged)
	require.Equal(5, report.Retained)

	has, err := storage.Has(fork.Hash)
	require.NoError(err)
	require.False(has)

	has, err = storage.Has(unknown)
	require.NoError(err)
	require.False(has)
}

func TestPruneIdempotent(t *testing.T) {
	require := require.New(t)

	m, _, _ := newTestMaintainer(t, 5)
	cfg := PruneConfig{RetentionThreshold: 2}
	dataDir := t.TempDir()

	report, err := m.Prune(context.Background(), cfg, dataDir)
	require.NoError(err)
	require.Equal(2, report.Pruned)

	report, err = m.Prune(context.Background(), cfg, dataDir)
	require.NoError(err)
	require.Zero(report.Pruned)
	require.Equal(3, report.Retained)
}

func TestPruneThresholdLargerThanChain(t *testing.T) {
	require := require.New(t)

	m, _, _ := newTestMaintainer(t, 3)

	report, err := m.Prune(context.Background(), PruneConfig{RetentionThreshold: 100}, t.TempDir())
	require.NoError(err)
	require.Zero(report.Pruned)
	require.Equal(3, report.Retained)
}

func TestPruneConfigValidate(t *testing.T) {
	require := require.New(t)

	m, _, _ := newTestMaintainer(t, 3)

	_, err := m.Prune(context.Background(), PruneConfig{RetentionThreshold: 0}, t.TempDir())
	require.ErrorIs(err, errInvalidRetentionThreshold)
}

func TestPruneLockHeld(t *testing.T) {
	require := require.New(t)

	m, _, _ := newTestMaintainer(t, 3)
	dataDir := t.TempDir()

	lock, err := acquirePruneLock(dataDir)
	require.NoError(err)

	_, err = m.Prune(context.Background(), PruneConfig{RetentionThreshold: 1}, dataDir)
	require.ErrorIs(err, ErrPruneInProgress)

	require.NoError(lock.Release())

	_, err = m.Prune(context.Background(), PruneConfig{RetentionThreshold: 1}, dataDir)
	require.NoError(err)
}

func TestPruneNoHead(t *testing.T) {
	require := require.New(t)

	storage := NewStorage(memdb.New(), worldstate.Bonsai)
	m, err := NewMaintainer(storage, chain.New(memdb.New()), logging.NoLog{}, prometheus.NewRegistry())
	require.NoError(err)

	_, err = m.Prune(context.Background(), PruneConfig{RetentionThreshold: 1}, t.TempDir())
	require.ErrorIs(err, chain.ErrNoHead)
}
