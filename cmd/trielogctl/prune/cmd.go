// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package prune

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alyokaz/besu/config"
	"github.com/alyokaz/besu/node"
	"github.com/alyokaz/besu/trielog"
	"github.com/alyokaz/besu/utils/logging"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "prune",
		Short: "Deletes trie logs outside the retention window",
		RunE:  pruneFunc,
	}
	AddFlags(c.Flags())
	return c
}

func AddFlags(flags *pflag.FlagSet) {
	config.AddFlags(flags)
}

func pruneFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	v, err := config.BuildViper(flags, args)
	if err != nil {
		return err
	}
	nodeConfig, err := config.New(v)
	if err != nil {
		return err
	}

	log, err := logging.New(nodeConfig.LogConfig)
	if err != nil {
		return err
	}
	defer log.Stop()

	n, err := node.New(nodeConfig, log)
	if err != nil {
		return err
	}
	defer func() {
		_ = n.Close()
	}()

	report, err := n.TrieLogs.Prune(
		c.Context(),
		trielog.PruneConfig{RetentionThreshold: nodeConfig.RetentionThreshold},
		nodeConfig.DataDir,
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.OutOrStdout(),
		"pruned %d trie logs (%d orphaned, %d aged), %d retained\n",
		report.Pruned, report.Orphaned, report.Aged, report.Retained,
	)
	return nil
}
