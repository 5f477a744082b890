// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package importcmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alyokaz/besu/config"
	"github.com/alyokaz/besu/node"
	"github.com/alyokaz/besu/utils/logging"
)

const (
	FilePathKey = "trie-log-file-path"

	defaultFileName = "trie-logs.bin"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "import",
		Short: "Imports trie logs from a file",
		RunE:  importFunc,
	}
	AddFlags(c.Flags())
	return c
}

func AddFlags(flags *pflag.FlagSet) {
	config.AddFlags(flags)
	flags.String(FilePathKey, "", "File to import from, defaults to [data-dir]/"+defaultFileName)
}

func importFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	v, err := config.BuildViper(flags, args)
	if err != nil {
		return err
	}
	nodeConfig, err := config.New(v)
	if err != nil {
		return err
	}

	path := v.GetString(FilePathKey)
	if path == "" {
		path = filepath.Join(nodeConfig.DataDir, defaultFileName)
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

	imported, err := n.TrieLogs.Import(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.OutOrStdout(), "imported %d trie logs from %s\n", imported, path)
	return nil
}
