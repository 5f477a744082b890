// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package trielog

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/alyokaz/besu/chain"
	"github.com/alyokaz/besu/ids"
	"github.com/alyokaz/besu/utils/logging"
)

// ChainReader is the view of the chain index the maintenance operations
// need.
type ChainReader interface {
	Head() (chain.BlockRef, error)
	CanonicalHash(number uint64) (ids.ID, error)
	BlockNumber(hash ids.ID) (uint64, error)
}

// Maintainer implements the trie log maintenance operations: counting,
// pruning, exporting and importing records.
type Maintainer struct {
	storage *Storage
	chain   ChainReader
	log     logging.Logger
	metrics metrics
}

func NewMaintainer(
	storage *Storage,
	chain ChainReader,
	log logging.Logger,
	registerer prometheus.Registerer,
) (*Maintainer, error) {
	m, err := newMetrics("trielog", registerer)
	if err != nil {
		return nil, err
	}
	return &Maintainer{
		storage: storage,
		chain:   chain,
		log:     log,
		metrics: m,
	}, nil
}

// Count returns the number of stored trie logs, counting at most [limit]
// records. A non-positive [limit] counts everything.
func (m *Maintainer) Count(limit int) (int, error) {
	if err := m.storage.checkFormat(); err != nil {
		return 0, err
	}
	if limit <= 0 {
		limit = math.MaxInt
	}

	it := m.storage.NewIterator()
	defer it.Release()

	count := 0
	for count < limit && it.Next() {
		count++
	}
	if err := it.Error(); err != nil {
		return 0, err
	}

	m.log.Info("counted trie logs",
		zap.Int("count", count),
	)
	return count, nil
}
