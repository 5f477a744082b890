// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package prefixdb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alyokaz/besu/database"
	"github.com/alyokaz/besu/database/memdb"
)

func TestInterface(t *testing.T) {
	for name, test := range database.Tests {
		t.Run(name, func(t *testing.T) {
			test(t, New([]byte("hello"), memdb.New()))
		})
	}
}

// Two keyspaces over one physical store must not observe each other's keys.
func TestPrefixIsolation(t *testing.T) {
	require := require.New(t)

	base := memdb.New()
	first := New([]byte{0x01}, base)
	second := New([]byte{0x02}, base)

	key := []byte("hello")

	require.NoError(first.Put(key, []byte("world")))

	has, err := second.Has(key)
	require.NoError(err)
	require.False(has)

	count, err := database.Count(second)
	require.NoError(err)
	require.Zero(count)

	count, err = database.Count(first)
	require.NoError(err)
	require.Equal(1, count)
}

func TestNestedPrefixesCompress(t *testing.T) {
	require := require.New(t)

	base := memdb.New()
	outer := New([]byte{0x01}, base)
	inner := New([]byte{0x02}, outer)

	require.NoError(inner.Put([]byte("key"), []byte("value")))

	// The nested keyspace writes through to the base store with the joined
	// prefix.
	got, err := base.Get([]byte{0x01, 0x02, 'k', 'e', 'y'})
	require.NoError(err)
	require.Equal([]byte("value"), got)
}
