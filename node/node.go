// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import (
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alyokaz/besu/chain"
	"github.com/alyokaz/besu/config"
	"github.com/alyokaz/besu/database"
	"github.com/alyokaz/besu/database/leveldb"
	"github.com/alyokaz/besu/database/meterdb"
	"github.com/alyokaz/besu/database/prefixdb"
	"github.com/alyokaz/besu/trielog"
	"github.com/alyokaz/besu/utils/logging"
	"github.com/alyokaz/besu/utils/perms"
	"github.com/alyokaz/besu/worldstate"
)

// Keyspace prefixes inside the shared store.
var (
	metadataPrefix = []byte("metadata")
	chainPrefix    = []byte("chain")
	trieLogPrefix  = []byte("trielog")
)

var errFormatMismatch = errors.New("data storage format mismatch")

// Node owns the opened world state store and the components layered on top
// of it.
type Node struct {
	DB       database.Database
	Chain    *chain.Blockchain
	TrieLogs *trielog.Maintainer

	// Metrics collects the store's operation timings.
	Metrics *prometheus.Registry

	log logging.Logger
}

// New opens the store under [cfg.DBDir] and wires the chain index and trie
// log maintenance on top of it. The persisted storage format marker must
// match [cfg.StorageFormat]; a fresh store is marked with it.
func New(cfg config.Config, log logging.Logger) (*Node, error) {
	if err := os.MkdirAll(cfg.DBDir, perms.ReadWriteExecute); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	ldb, err := leveldb.New(cfg.DBDir, log, 0, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	registry := prometheus.NewRegistry()
	db, err := meterdb.New("db", registry, ldb)
	if err != nil {
		_ = ldb.Close()
		return nil, err
	}

	metadataDB := prefixdb.New(metadataPrefix, db)
	format, marked, err := worldstate.ReadFormat(metadataDB)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	switch {
	case !marked:
		format = cfg.StorageFormat
		if err := worldstate.WriteFormat(metadataDB, format); err != nil {
			_ = db.Close()
			return nil, err
		}
	case format != cfg.StorageFormat:
		_ = db.Close()
		return nil, fmt.Errorf("%w: store is %s, configured %s",
			errFormatMismatch, format, cfg.StorageFormat,
		)
	}

	blockchain := chain.New(prefixdb.New(chainPrefix, db))
	storage := trielog.NewStorage(prefixdb.New(trieLogPrefix, db), format)
	maintainer, err := trielog.NewMaintainer(storage, blockchain, log, registry)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Node{
		DB:       db,
		Chain:    blockchain,
		TrieLogs: maintainer,
		Metrics:  registry,
		log:      log,
	}, nil
}

func (n *Node) Close() error {
	n.log.Info("closing database")
	return n.DB.Close()
}
