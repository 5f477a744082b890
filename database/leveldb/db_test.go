// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package leveldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alyokaz/besu/database"
	"github.com/alyokaz/besu/utils/logging"
)

func TestInterface(t *testing.T) {
	for name, test := range database.Tests {
		t.Run(name, func(t *testing.T) {
			folder := filepath.Join(t.TempDir(), "db")

			db, err := New(folder, logging.NoLog{}, 0, 0, 0)
			require.NoError(t, err)

			// The database may have been closed by the test, so we don't care
			// if it errors here.
			defer db.Close()

			test(t, db)
		})
	}
}

func TestPersistence(t *testing.T) {
	require := require.New(t)

	folder := filepath.Join(t.TempDir(), "db")

	db, err := New(folder, logging.NoLog{}, 0, 0, 0)
	require.NoError(err)

	require.NoError(db.Put([]byte("hello"), []byte("world")))
	require.NoError(db.Close())

	db, err = New(folder, logging.NoLog{}, 0, 0, 0)
	require.NoError(err)
	defer db.Close()

	value, err := db.Get([]byte("hello"))
	require.NoError(err)
	require.Equal([]byte("world"), value)
}
