// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package trielog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alyokaz/besu/database"
	"github.com/alyokaz/besu/ids"
	"github.com/alyokaz/besu/utils/set"
	"github.com/alyokaz/besu/utils/units"
)

const (
	// DefaultRetentionThreshold is the number of blocks behind the head for
	// which trie logs are kept by default.
	DefaultRetentionThreshold = 512

	defaultBatchWriteSize = units.MiB

	// candidateBufferSize bounds how far the scan can run ahead of the
	// deletes.
	candidateBufferSize = 1024
)

var errInvalidRetentionThreshold = errors.New("retention threshold must be at least 1")

// PruneConfig parameterizes a prune run.
type PruneConfig struct {
	// RetentionThreshold is how many blocks behind the head remain covered
	// by a trie log. The canonical blocks in [head-threshold, head] are
	// retained, everything else is deleted.
	RetentionThreshold uint64

	// BatchWriteSize is the delete batch size in bytes at which the batch
	// is flushed. Defaults to one MiB.
	BatchWriteSize int
}

func (c PruneConfig) Validate() error {
	if c.RetentionThreshold < 1 {
		return errInvalidRetentionThreshold
	}
	return nil
}

// PruneReport summarizes a prune run.
type PruneReport struct {
	// Pruned is the number of trie logs deleted.
	Pruned int
	// Retained is the number of trie logs inside the retention window.
	Retained int
	// Orphaned of the pruned trie logs belonged to blocks off the canonical
	// chain.
	Orphaned int
	// Aged of the pruned trie logs belonged to canonical blocks older than
	// the retention window.
	Aged int
}

// Prune deletes every trie log outside the retention window. The window is
// the set of canonical block hashes within [cfg.RetentionThreshold] blocks
// of the chain head; any stored trie log whose hash is not in that set is
// deleted, whether it belongs to an aged canonical block or to an orphaned
// fork.
//
// A lock file in [dataDir] guards against concurrent prune runs. Pruning is
// idempotent: rerunning with an unchanged head deletes nothing further.
func (m *Maintainer) Prune(ctx context.Context, cfg PruneConfig, dataDir string) (PruneReport, error) {
	if err := m.storage.checkFormat(); err != nil {
		return PruneReport{}, err
	}
	if err := cfg.Validate(); err != nil {
		return PruneReport{}, err
	}

	lock, err := acquirePruneLock(dataDir)
	if err != nil {
		return PruneReport{}, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			m.log.Warn("failed to release prune lock",
				zap.Error(err),
			)
		}
	}()

	head, err := m.chain.Head()
	if err != nil {
		return PruneReport{}, fmt.Errorf("reading chain head: %w", err)
	}

	retained, err := m.retainedHashes(head.Number, cfg.RetentionThreshold)
	if err != nil {
		return PruneReport{}, err
	}

	m.log.Info("pruning trie logs",
		zap.Uint64("headBlock", head.Number),
		zap.Uint64("retentionThreshold", cfg.RetentionThreshold),
		zap.Int("retainedWindow", retained.Len()),
	)

	writeSize := cfg.BatchWriteSize
	if writeSize <= 0 {
		writeSize = defaultBatchWriteSize
	}

	var (
		report     PruneReport
		candidates = make(chan ids.ID, candidateBufferSize)
	)
	eg, ctx := errgroup.WithContext(ctx)

	// Scan the full keyspace, forwarding everything outside the retention
	// window.
	eg.Go(func() error {
		defer close(candidates)

		it := m.storage.NewIterator()
		defer it.Release()

		for it.Next() {
			hash, err := ids.ToID(it.Key())
			if err != nil {
				return fmt.Errorf("malformed trie log key: %w", err)
			}
			if retained.Contains(hash) {
				report.Retained++
				continue
			}
			select {
			case candidates <- hash:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return it.Error()
	})

	// Classify and delete the candidates in batches.
	eg.Go(func() error {
		batch := m.storage.NewBatch()
		for hash := range candidates {
			orphaned, err := m.isOrphaned(hash)
			if err != nil {
				return err
			}
			if orphaned {
				report.Orphaned++
				m.log.Debug("pruning orphaned trie log",
					zap.Stringer("blockHash", hash),
				)
			} else {
				report.Aged++
				m.log.Debug("pruning aged trie log",
					zap.Stringer("blockHash", hash),
				)
			}

			if err := batch.Delete(hash[:]); err != nil {
				return err
			}
			report.Pruned++

			if batch.Size() < writeSize {
				continue
			}
			if err := batch.Write(); err != nil {
				return err
			}
			batch.Reset()
		}
		return batch.Write()
	})

	if err := eg.Wait(); err != nil {
		return PruneReport{}, err
	}

	m.metrics.pruned.Add(float64(report.Pruned))
	m.metrics.orphaned.Add(float64(report.Orphaned))
	m.metrics.aged.Add(float64(report.Aged))

	m.log.Info("pruned trie logs",
		zap.Int("pruned", report.Pruned),
		zap.Int("retained", report.Retained),
		zap.Int("orphaned", report.Orphaned),
		zap.Int("aged", report.Aged),
	)
	return report, nil
}

// retainedHashes returns the canonical block hashes within [threshold]
// blocks of [headNumber]. Numbers with no canonical entry are skipped.
func (m *Maintainer) retainedHashes(headNumber, threshold uint64) (set.Set[ids.ID], error) {
	lower := uint64(0)
	if headNumber > threshold {
		lower = headNumber - threshold
	}

	retained := set.NewSet[ids.ID](int(headNumber - lower + 1))
	for number := lower; number <= headNumber; number++ {
		hash, err := m.chain.CanonicalHash(number)
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading canonical hash at %d: %w", number, err)
		}
		retained.Add(hash)
	}
	return retained, nil
}

// isOrphaned reports whether [hash] is off the canonical chain. A hash with
// no recorded block number is treated as orphaned.
func (m *Maintainer) isOrphaned(hash ids.ID) (bool, error) {
	number, err := m.chain.BlockNumber(hash)
	if errors.Is(err, database.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	canonical, err := m.chain.CanonicalHash(number)
	if errors.Is(err, database.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return canonical != hash, nil
}
