// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package meterdb

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/alyokaz/besu/database"
	"github.com/alyokaz/besu/database/memdb"
)

func TestInterface(t *testing.T) {
	for name, test := range database.Tests {
		t.Run(name, func(t *testing.T) {
			db, err := New("test", prometheus.NewRegistry(), memdb.New())
			require.NoError(t, err)

			test(t, db)
		})
	}
}
