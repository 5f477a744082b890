// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"errors"
	"fmt"

	"github.com/alyokaz/besu/database"
	"github.com/alyokaz/besu/ids"
)

var (
	// ErrNoHead is returned when the store has no head marker, which means
	// the chain has never been initialized.
	ErrNoHead = errors.New("chain head not set")

	headKey             = []byte("head")
	canonicalHashPrefix = []byte{'c'}
	blockNumberPrefix   = []byte{'n'}
)

// BlockRef identifies a block by its number and hash.
type BlockRef struct {
	Number uint64
	Hash   ids.ID
}

func (b BlockRef) String() string {
	return fmt.Sprintf("%d (%s)", b.Number, b.Hash)
}

// Blockchain is the chain index kept alongside the world state. It maps
// block numbers on the canonical chain to hashes, and every known block
// hash back to its number.
type Blockchain struct {
	db database.Database
}

func New(db database.Database) *Blockchain {
	return &Blockchain{db: db}
}

// Head returns the current chain head.
func (c *Blockchain) Head() (BlockRef, error) {
	hash, err := database.GetID(c.db, headKey)
	if errors.Is(err, database.ErrNotFound) {
		return BlockRef{}, ErrNoHead
	}
	if err != nil {
		return BlockRef{}, err
	}

	number, err := c.BlockNumber(hash)
	if err != nil {
		return BlockRef{}, fmt.Errorf("looking up head number: %w", err)
	}
	return BlockRef{Number: number, Hash: hash}, nil
}

// SetHead marks [ref] as the chain head and its hash as canonical at its
// number.
func (c *Blockchain) SetHead(ref BlockRef) error {
	if err := c.WriteBlock(ref); err != nil {
		return err
	}
	if err := c.WriteCanonicalHash(ref); err != nil {
		return err
	}
	return database.PutID(c.db, headKey, ref.Hash)
}

// CanonicalHash returns the hash of the canonical block at [number].
func (c *Blockchain) CanonicalHash(number uint64) (ids.ID, error) {
	return database.GetID(c.db, canonicalHashKey(number))
}

// BlockNumber returns the number of the block with [hash], canonical or
// not. Returns [database.ErrNotFound] for unknown hashes.
func (c *Blockchain) BlockNumber(hash ids.ID) (uint64, error) {
	return database.GetUInt64(c.db, blockNumberKey(hash))
}

// WriteBlock records the hash to number mapping for [ref] without touching
// the canonical index. Orphaned forks are written this way.
func (c *Blockchain) WriteBlock(ref BlockRef) error {
	return database.PutUInt64(c.db, blockNumberKey(ref.Hash), ref.Number)
}

// WriteCanonicalHash records [ref]'s hash as the canonical block at its
// number.
func (c *Blockchain) WriteCanonicalHash(ref BlockRef) error {
	return database.PutID(c.db, canonicalHashKey(ref.Number), ref.Hash)
}

func canonicalHashKey(number uint64) []byte {
	return append(canonicalHashPrefix, database.PackUInt64(number)...)
}

func blockNumberKey(hash ids.ID) []byte {
	return append(blockNumberPrefix, hash[:]...)
}
