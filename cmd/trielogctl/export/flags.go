// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package export

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/alyokaz/besu/config"
	"github.com/alyokaz/besu/ids"
	"github.com/alyokaz/besu/utils/compression"
)

const (
	BlockHashKey   = "trie-log-block-hash"
	FilePathKey    = "trie-log-file-path"
	CompressionKey = "trie-log-compression"

	defaultFileName = "trie-logs.bin"
)

var errNoBlockHashes = errors.New("at least one block hash is required")

func AddFlags(flags *pflag.FlagSet) {
	config.AddFlags(flags)
	flags.StringSlice(BlockHashKey, nil, "Hashes of the blocks whose trie logs to export")
	flags.String(FilePathKey, "", "File to export to, defaults to [data-dir]/"+defaultFileName)
	flags.String(CompressionKey, compression.TypeNone.String(), "Compression applied to each record, none, gzip or zstd")
}

type Config struct {
	Node        config.Config
	BlockHashes []ids.ID
	FilePath    string
	Compression compression.Type
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	v, err := config.BuildViper(flags, args)
	if err != nil {
		return nil, err
	}

	nodeConfig, err := config.New(v)
	if err != nil {
		return nil, err
	}

	hashStrs := v.GetStringSlice(BlockHashKey)
	if len(hashStrs) == 0 {
		return nil, errNoBlockHashes
	}
	hashes := make([]ids.ID, len(hashStrs))
	for i, s := range hashStrs {
		hashes[i], err = ids.FromHex(s)
		if err != nil {
			return nil, fmt.Errorf("parsing block hash %q: %w", s, err)
		}
	}

	path := v.GetString(FilePathKey)
	if path == "" {
		path = filepath.Join(nodeConfig.DataDir, defaultFileName)
	}

	compressionType, err := compression.TypeFromString(v.GetString(CompressionKey))
	if err != nil {
		return nil, err
	}

	return &Config{
		Node:        nodeConfig,
		BlockHashes: hashes,
		FilePath:    path,
		Compression: compressionType,
	}, nil
}
