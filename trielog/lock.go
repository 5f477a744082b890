// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package trielog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alyokaz/besu/utils/perms"
)

const lockFileName = "trie-log-prune.lock"

// ErrPruneInProgress is returned when a prune is started while the data
// directory's lock file is held by another run.
var ErrPruneInProgress = errors.New("trie log prune already in progress")

// pruneLock guards the data directory against concurrent prunes. The lock
// is a file created with O_EXCL, so a second process fails to acquire it.
type pruneLock struct {
	path string
}

func acquirePruneLock(dataDir string) (*pruneLock, error) {
	path := filepath.Join(dataDir, lockFileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perms.ReadWrite)
	if errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("%w: lock file %s exists", ErrPruneInProgress, path)
	}
	if err != nil {
		return nil, err
	}

	_, err = f.WriteString(strconv.Itoa(os.Getpid()))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	return &pruneLock{path: path}, nil
}

func (l *pruneLock) Release() error {
	return os.Remove(l.path)
}
