// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alyokaz/besu/node"
	"github.com/alyokaz/besu/utils/logging"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "export",
		Short: "Exports trie logs to a file",
		RunE:  exportFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func exportFunc(c *cobra.Command, args []string) error {
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

	if err := n.TrieLogs.Export(config.BlockHashes, config.FilePath, config.Compression); err != nil {
		return err
	}

	fmt.Fprintf(c.OutOrStdout(), "exported trie logs to %s\n", config.FilePath)
	return nil
}
