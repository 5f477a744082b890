// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package trielog

import (
	"errors"
	"io"
	"os"

	"go.uber.org/zap"
)

// Import reads the trie log file at [path] and stores every record it
// contains, keyed by block hash. Records already present are overwritten.
//
// Frames are applied in file order. If the file turns out to be truncated
// or corrupt partway through, the records read before the bad frame are
// still persisted and the count of them is returned alongside the error.
func (m *Maintainer) Import(path string) (int, error) {
	if err := m.storage.checkFormat(); err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r, err := newFileReader(f)
	if err != nil {
		return 0, err
	}

	var (
		imported = 0
		batch    = m.storage.NewBatch()
	)
	for {
		hash, payload, err := r.ReadFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Keep the frames read so far.
			if writeErr := batch.Write(); writeErr != nil {
				return imported, writeErr
			}
			return imported, err
		}

		if err := batch.Put(hash[:], payload); err != nil {
			return imported, err
		}
		imported++

		if batch.Size() < defaultBatchWriteSize {
			continue
		}
		if err := batch.Write(); err != nil {
			return imported, err
		}
		batch.Reset()
	}
	if err := batch.Write(); err != nil {
		return imported, err
	}

	m.metrics.imported.Add(float64(imported))

	m.log.Info("imported trie logs",
		zap.Int("imported", imported),
		zap.String("path", path),
	)
	return imported, nil
}
