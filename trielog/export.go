// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package trielog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/alyokaz/besu/database"
	"github.com/alyokaz/besu/ids"
	"github.com/alyokaz/besu/utils/compression"
	"github.com/alyokaz/besu/utils/perms"
)

var errNoHashes = errors.New("no block hashes to export")

// Export writes the trie logs for [hashes] to a file at [path]. Hashes
// with no stored trie log are skipped with a warning. The file is written
// to a temporary sibling first and renamed into place, so a failed export
// never leaves a partial file at [path].
func (m *Maintainer) Export(hashes []ids.ID, path string, compressionType compression.Type) error {
	if err := m.storage.checkFormat(); err != nil {
		return err
	}
	if len(hashes) == 0 {
		return errNoHashes
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := f.Name()
	defer func() {
		// Removing the renamed temp file fails harmlessly on success.
		_ = os.Remove(tmpPath)
	}()

	exported, err := m.exportTo(f, hashes, compressionType)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	if err := os.Chmod(tmpPath, perms.ReadWrite); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	m.metrics.exported.Add(float64(exported))

	m.log.Info("exported trie logs",
		zap.Int("exported", exported),
		zap.Int("requested", len(hashes)),
		zap.String("path", path),
		zap.Stringer("compression", compressionType),
	)
	return nil
}

func (m *Maintainer) exportTo(f *os.File, hashes []ids.ID, compressionType compression.Type) (int, error) {
	w, err := newFileWriter(f, compressionType)
	if err != nil {
		return 0, err
	}

	exported := 0
	for _, hash := range hashes {
		payload, err := m.storage.Get(hash)
		if errors.Is(err, database.ErrNotFound) {
			m.log.Warn("skipping block with no trie log",
				zap.Stringer("blockHash", hash),
			)
			continue
		}
		if err != nil {
			return exported, fmt.Errorf("reading trie log %s: %w", hash, err)
		}

		if err := w.WriteFrame(hash, payload); err != nil {
			return exported, fmt.Errorf("writing trie log %s: %w", hash, err)
		}
		exported++
	}
	return exported, f.Sync()
}
