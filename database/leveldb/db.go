// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package leveldb

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"

	"github.com/alyokaz/besu/database"
	"github.com/alyokaz/besu/utils/logging"
	"github.com/alyokaz/besu/utils/units"
)

const (
	// Name is the name of this database for database switches
	Name = "leveldb"

	// DefaultBlockCacheSize is the number of bytes to use for block caching
	// in leveldb.
	DefaultBlockCacheSize = 12 * units.MiB

	// DefaultWriteBufferSize is the number of bytes to use for buffers in
	// leveldb.
	DefaultWriteBufferSize = 12 * units.MiB

	// DefaultHandleCap is the number of files descriptors to cap leveldb to
	// use.
	DefaultHandleCap = 1024

	// DefaultBitsPerKey is the number of bits to add to the bloom filter per
	// key.
	DefaultBitsPerKey = 10
)

var (
	_ database.Database = (*Database)(nil)
	_ database.Batch    = (*batch)(nil)
	_ database.Iterator = (*iter)(nil)
)

// Database is a persistent key-value store. Apart from basic data storage
// functionality it also supports batch writes and iterating over the keyspace
// in binary-alphabetical order.
type Database struct {
	ldb    *leveldb.DB
	closed atomic.Bool
}

// New returns a wrapped LevelDB object.
func New(file string, log logging.Logger, blockCacheSize, writeBufferSize, handleCap int) (*Database, error) {
	if blockCacheSize <= 0 {
		blockCacheSize = DefaultBlockCacheSize
	}
	if writeBufferSize <= 0 {
		writeBufferSize = DefaultWriteBufferSize
	}
	if handleCap <= 0 {
		handleCap = DefaultHandleCap
	}

	log.Info("opening leveldb",
		zap.String("path", file),
		zap.Int("blockCacheSize", blockCacheSize),
		zap.Int("writeBufferSize", writeBufferSize),
	)

	// Open the db and recover any potential corruptions
	ldb, err := leveldb.OpenFile(file, &opt.Options{
		BlockCacheCapacity: blockCacheSize,
		// There are two buffers of size WriteBuffer used.
		WriteBuffer:            writeBufferSize / 2,
		OpenFilesCacheCapacity: handleCap,
		Filter:                 filter.NewBloomFilter(DefaultBitsPerKey),
	})
	if err != nil {
		return nil, err
	}
	return &Database{ldb: ldb}, nil
}

// Has returns if the key is set in the database
func (db *Database) Has(key []byte) (bool, error) {
	has, err := db.ldb.Has(key, nil)
	return has, updateError(err)
}

// Get returns the value the key maps to in the database
func (db *Database) Get(key []byte) ([]byte, error) {
	value, err := db.ldb.Get(key, nil)
	return value, updateError(err)
}

// Put sets the value of the provided key to the provided value
func (db *Database) Put(key []byte, value []byte) error {
	return updateError(db.ldb.Put(key, value, nil))
}

// Delete removes the key from the database
func (db *Database) Delete(key []byte) error {
	return updateError(db.ldb.Delete(key, nil))
}

// NewBatch creates a write/delete-only buffer that is atomically committed to
// the database when write is called
func (db *Database) NewBatch() database.Batch {
	return &batch{db: db}
}

func (db *Database) NewIterator() database.Iterator {
	return db.NewIteratorWithStartAndPrefix(nil, nil)
}

func (db *Database) NewIteratorWithStart(start []byte) database.Iterator {
	return db.NewIteratorWithStartAndPrefix(start, nil)
}

func (db *Database) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	return db.NewIteratorWithStartAndPrefix(nil, prefix)
}

func (db *Database) NewIteratorWithStartAndPrefix(start, prefix []byte) database.Iterator {
	if db.closed.Load() {
		return &database.IteratorError{
			Err: database.ErrClosed,
		}
	}

	dbRange := util.BytesPrefix(prefix)
	if len(start) > 0 && string(start) > string(dbRange.Start) {
		dbRange.Start = start
	}
	return &iter{
		db:       db,
		Iterator: db.ldb.NewIterator(dbRange, nil),
	}
}

func (db *Database) Compact(start []byte, limit []byte) error {
	return updateError(db.ldb.CompactRange(util.Range{Start: start, Limit: limit}))
}

func (db *Database) HealthCheck(context.Context) (interface{}, error) {
	if db.closed.Load() {
		return nil, database.ErrClosed
	}
	return nil, nil
}

func (db *Database) Close() error {
	db.closed.Store(true)
	return updateError(db.ldb.Close())
}

// batch is a wrapper around a leveldb batch to contain sizes.
type batch struct {
	database.BatchOps

	db *Database
}

// Write flushes any accumulated data to disk.
func (b *batch) Write() error {
	if b.db.closed.Load() {
		return database.ErrClosed
	}

	ldbBatch := new(leveldb.Batch)
	for _, op := range b.Ops {
		if op.Delete {
			ldbBatch.Delete(op.Key)
		} else {
			ldbBatch.Put(op.Key, op.Value)
		}
	}
	return updateError(b.db.ldb.Write(ldbBatch, nil))
}

// Inner returns itself
func (b *batch) Inner() database.Batch {
	return b
}

type iter struct {
	iterator.Iterator

	db *Database

	key, val []byte
	err      error
}

func (it *iter) Next() bool {
	// Short-circuit and set an error if the underlying database has been
	// closed.
	if it.db.closed.Load() {
		it.key = nil
		it.val = nil
		it.err = database.ErrClosed
		return false
	}

	hasNext := it.Iterator.Next()
	if hasNext {
		// The slices returned by the inner iterator are only valid until the
		// next call into it, so they must be copied out.
		it.key = slices.Clone(it.Iterator.Key())
		it.val = slices.Clone(it.Iterator.Value())
	} else {
		it.key = nil
		it.val = nil
	}
	return hasNext
}

func (it *iter) Error() error {
	if it.err != nil {
		return it.err
	}
	return updateError(it.Iterator.Error())
}

func (it *iter) Key() []byte {
	return it.key
}

func (it *iter) Value() []byte {
	return it.val
}

// updateError casts leveldb-specific errors to their database counterparts.
func updateError(err error) error {
	switch err {
	case leveldb.ErrClosed:
		return database.ErrClosed
	case leveldb.ErrNotFound:
		return database.ErrNotFound
	default:
		return err
	}
}
