// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package trielog

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/alyokaz/besu/chain"
	"github.com/alyokaz/besu/database/memdb"
	"github.com/alyokaz/besu/ids"
	"github.com/alyokaz/besu/utils/compression"
	"github.com/alyokaz/besu/utils/logging"
	"github.com/alyokaz/besu/worldstate"
)

func newImporter(t *testing.T, target *Storage) *Maintainer {
	m, err := NewMaintainer(target, chain.New(memdb.New()), logging.NoLog{}, prometheus.NewRegistry())
	require.NoError(t, err)
	return m
}

func TestExportImportRoundTrip(t *testing.T) {
	hashes := []ids.ID{blockHash(1), blockHash(2), blockHash(3)}

	for _, compressionType := range []compression.Type{
		compression.TypeNone,
		compression.TypeGzip,
		compression.TypeZstd,
	} {
		t.Run(compressionType.String(), func(t *testing.T) {
			require := require.New(t)

			m, storage, _ := newTestMaintainer(t, 3)
			path := filepath.Join(t.TempDir(), "trie-logs.bin")

			require.NoError(m.Export(hashes, path, compressionType))

			// Import into a fresh store.
			target := NewStorage(memdb.New(), worldstate.Bonsai)
			importer := newImporter(t, target)

			imported, err := importer.Import(path)
			require.NoError(err)
			require.Equal(3, imported)

			for _, hash := range hashes {
				want, err := storage.Get(hash)
				require.NoError(err)
				got, err := target.Get(hash)
				require.NoError(err)
				require.Equal(want, got)
			}
		})
	}
}

func TestExportSkipsMissing(t *testing.T) {
	require := require.New(t)

	m, _, _ := newTestMaintainer(t, 2)
	path := filepath.Join(t.TempDir(), "trie-logs.bin")

	hashes := []ids.ID{blockHash(1), blockHash(99), blockHash(2)}
	require.NoError(m.Export(hashes, path, compression.TypeNone))

	target := NewStorage(memdb.New(), worldstate.Bonsai)
	importer := newImporter(t, target)

	imported, err := importer.Import(path)
	require.NoError(err)
	require.Equal(2, imported)
}

func TestExportNoHashes(t *testing.T) {
	m, _, _ := newTestMaintainer(t, 1)

	err := m.Export(nil, filepath.Join(t.TempDir(), "out.bin"), compression.TypeNone)
	require.ErrorIs(t, err, errNoHashes)
}

func TestExportDeterministic(t *testing.T) {
	for _, compressionType := range []compression.Type{
		compression.TypeNone,
		compression.TypeGzip,
		compression.TypeZstd,
	} {
		t.Run(compressionType.String(), func(t *testing.T) {
			require := require.New(t)

			m, _, _ := newTestMaintainer(t, 3)
			hashes := []ids.ID{blockHash(1), blockHash(2), blockHash(3)}
			dir := t.TempDir()

			first := filepath.Join(dir, "first.bin")
			second := filepath.Join(dir, "second.bin")
			require.NoError(m.Export(hashes, first, compressionType))
			require.NoError(m.Export(hashes, second, compressionType))

			firstBytes, err := os.ReadFile(first)
			require.NoError(err)
			secondBytes, err := os.ReadFile(second)
			require.NoError(err)
			require.Equal(firstBytes, secondBytes)
		})
	}
}

func TestExportLeavesNoPartialFile(t *testing.T) {
	require := require.New(t)

	m, _, _ := newTestMaintainer(t, 1)
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	// Nothing to export fails before the rename.
	err := m.Export(nil, path, compression.TypeNone)
	require.Error(err)

	_, err = os.Stat(path)
	require.ErrorIs(err, os.ErrNotExist)

	entries, err := os.ReadDir(dir)
	require.NoError(err)
	require.Empty(entries)
}

func TestImportBadMagic(t *testing.T) {
	require := require.New(t)

	m, _, _ := newTestMaintainer(t, 1)
	path := filepath.Join(t.TempDir(), "bogus.bin")
	require.NoError(os.WriteFile(path, []byte("NOPE\x01\x00"), 0o600))

	_, err := m.Import(path)
	require.ErrorIs(err, ErrInvalidFileFormat)
}

func TestImportUnsupportedVersion(t *testing.T) {
	require := require.New(t)

	m, _, _ := newTestMaintainer(t, 1)
	path := filepath.Join(t.TempDir(), "future.bin")
	require.NoError(os.WriteFile(path, []byte("BTLG\x02\x00"), 0o600))

	_, err := m.Import(path)
	require.ErrorIs(err, ErrInvalidFileFormat)
}

func TestImportTruncatedKeepsEarlierFrames(t *testing.T) {
	require := require.New(t)

	m, _, _ := newTestMaintainer(t, 3)
	path := filepath.Join(t.TempDir(), "trie-logs.bin")
	hashes := []ids.ID{blockHash(1), blockHash(2), blockHash(3)}
	require.NoError(m.Export(hashes, path, compression.TypeNone))

	// Chop into the last frame.
	content, err := os.ReadFile(path)
	require.NoError(err)
	require.NoError(os.WriteFile(path, content[:len(content)-4], 0o600))

	target := NewStorage(memdb.New(), worldstate.Bonsai)
	importer := newImporter(t, target)

	imported, err := importer.Import(path)
	require.ErrorIs(err, ErrInvalidFileFormat)
	require.Equal(2, imported)

	// The frames before the truncation survived.
	for _, hash := range hashes[:2] {
		has, err := target.Has(hash)
		require.NoError(err)
		require.True(has)
	}
	has, err := target.Has(hashes[2])
	require.NoError(err)
	require.False(has)
}

func TestImportOverwritesExisting(t *testing.T) {
	require := require.New(t)

	m, storage, _ := newTestMaintainer(t, 2)
	path := filepath.Join(t.TempDir(), "trie-logs.bin")
	require.NoError(m.Export([]ids.ID{blockHash(1)}, path, compression.TypeNone))

	require.NoError(storage.Put(blockHash(1), []byte("stale")))

	imported, err := m.Import(path)
	require.NoError(err)
	require.Equal(1, imported)

	payload, err := storage.Get(blockHash(1))
	require.NoError(err)
	require.Equal([]byte(fmt.Sprintf("trie-log-%d", 1)), payload)
}
