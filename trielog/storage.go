// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package trielog

import (
	"github.com/alyokaz/besu/database"
	"github.com/alyokaz/besu/ids"
	"github.com/alyokaz/besu/worldstate"
)

// Storage is the trie log keyspace of the world state store. One record per
// block, keyed by block hash.
//
// Trie logs only exist in the Bonsai format. Every accessor verifies the
// store's format before touching the underlying database.
type Storage struct {
	db     database.Database
	format worldstate.Format
}

func NewStorage(db database.Database, format worldstate.Format) *Storage {
	return &Storage{
		db:     db,
		format: format,
	}
}

func (s *Storage) checkFormat() error {
	if s.format != worldstate.Bonsai {
		return worldstate.ErrUnsupportedFormat
	}
	return nil
}

func (s *Storage) Get(hash ids.ID) ([]byte, error) {
	if err := s.checkFormat(); err != nil {
		return nil, err
	}
	return s.db.Get(hash[:])
}

func (s *Storage) Put(hash ids.ID, payload []byte) error {
	if err := s.checkFormat(); err != nil {
		return err
	}
	return s.db.Put(hash[:], payload)
}

func (s *Storage) Has(hash ids.ID) (bool, error) {
	if err := s.checkFormat(); err != nil {
		return false, err
	}
	return s.db.Has(hash[:])
}

func (s *Storage) Delete(hash ids.ID) error {
	if err := s.checkFormat(); err != nil {
		return err
	}
	return s.db.Delete(hash[:])
}

// NewIterator iterates every stored trie log. The caller must have passed
// the format gate through one of the other accessors, or call it themselves.
func (s *Storage) NewIterator() database.Iterator {
	return s.db.NewIterator()
}

func (s *Storage) NewBatch() database.Batch {
	return s.db.NewBatch()
}
