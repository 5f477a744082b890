// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package meterdb

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alyokaz/besu/database"
)

var (
	_ database.Database = (*Database)(nil)
	_ database.Batch    = (*batch)(nil)
	_ database.Iterator = (*iterator)(nil)
)

// Database tracks the latency of database operations so long-running scans
// can be profiled after the fact.
type Database struct {
	metrics
	db database.Database
}

// New returns a new database with added metrics
func New(
	namespace string,
	registerer prometheus.Registerer,
	db database.Database,
) (*Database, error) {
	meterDB := &Database{db: db}
	return meterDB, meterDB.metrics.Initialize(namespace, registerer)
}

func (db *Database) Has(key []byte) (bool, error) {
	start := time.Now()
	has, err := db.db.Has(key)
	db.has.Observe(float64(time.Since(start)))
	return has, err
}

func (db *Database) Get(key []byte) ([]byte, error) {
	start := time.Now()
	value, err := db.db.Get(key)
	db.get.Observe(float64(time.Since(start)))
	return value, err
}

func (db *Database) Put(key, value []byte) error {
	start := time.Now()
	err := db.db.Put(key, value)
	db.put.Observe(float64(time.Since(start)))
	return err
}

func (db *Database) Delete(key []byte) error {
	start := time.Now()
	err := db.db.Delete(key)
	db.delete.Observe(float64(time.Since(start)))
	return err
}

func (db *Database) NewBatch() database.Batch {
	start := time.Now()
	b := &batch{
		batch: db.db.NewBatch(),
		db:    db,
	}
	db.newBatch.Observe(float64(time.Since(start)))
	return b
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
	startTime := time.Now()
	it := &iterator{
		iterator: db.db.NewIteratorWithStartAndPrefix(start, prefix),
		db:       db,
	}
	db.newIterator.Observe(float64(time.Since(startTime)))
	return it
}

func (db *Database) Compact(start, limit []byte) error {
	startTime := time.Now()
	err := db.db.Compact(start, limit)
	db.compact.Observe(float64(time.Since(startTime)))
	return err
}

func (db *Database) Close() error {
	start := time.Now()
	err := db.db.Close()
	db.close.Observe(float64(time.Since(start)))
	return err
}

func (db *Database) HealthCheck(ctx context.Context) (interface{}, error) {
	return db.db.HealthCheck(ctx)
}

type batch struct {
	batch database.Batch
	db    *Database
}

func (b *batch) Put(key, value []byte) error {
	return b.batch.Put(key, value)
}

func (b *batch) Delete(key []byte) error {
	return b.batch.Delete(key)
}

func (b *batch) Size() int {
	return b.batch.Size()
}

func (b *batch) Write() error {
	start := time.Now()
	err := b.batch.Write()
	b.db.bWrite.Observe(float64(time.Since(start)))
	return err
}

func (b *batch) Reset() {
	b.batch.Reset()
}

func (b *batch) Replay(w database.KeyValueWriterDeleter) error {
	return b.batch.Replay(w)
}

func (b *batch) Inner() database.Batch {
	return b.batch.Inner()
}

type iterator struct {
	iterator database.Iterator
	db       *Database
}

func (it *iterator) Next() bool {
	start := time.Now()
	next := it.iterator.Next()
	it.db.iNext.Observe(float64(time.Since(start)))
	return next
}

func (it *iterator) Error() error {
	return it.iterator.Error()
}

func (it *iterator) Key() []byte {
	return it.iterator.Key()
}

func (it *iterator) Value() []byte {
	return it.iterator.Value()
}

func (it *iterator) Release() {
	it.iterator.Release()
}
