// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package count

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alyokaz/besu/node"
	"github.com/alyokaz/besu/utils/logging"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "count",
		Short: "Counts the trie logs in the world state store",
		RunE:  countFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func countFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}

	log, err := logging.New(config.Node.LogConfig)
	if err != nil {
		return err
	}
	defer log.Stop()

	n, err := node.New(config.Node, log)
	if err != nil {
		return err
	}
	defer func() {
		_ = n.Close()
	}()

	count, err := n.TrieLogs.Count(config.Limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.OutOrStdout(), "trie logs: %d\n", count)
	return nil
}
