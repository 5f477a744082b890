// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package count

import (
	"github.com/spf13/pflag"

	"github.com/alyokaz/besu/config"
)

const LimitKey = "limit"

func AddFlags(flags *pflag.FlagSet) {
	config.AddFlags(flags)
	flags.Int(LimitKey, 0, "Stop counting after this many trie logs, 0 counts everything")
}

type Config struct {
	Node  config.Config
	Limit int
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

	return &Config{
		Node:  nodeConfig,
		Limit: v.GetInt(LimitKey),
	}, nil
}
