// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alyokaz/besu/cmd/trielogctl/count"
	"github.com/alyokaz/besu/cmd/trielogctl/export"
	"github.com/alyokaz/besu/cmd/trielogctl/importcmd"
	"github.com/alyokaz/besu/cmd/trielogctl/prune"
	"github.com/alyokaz/besu/version"
)

func main() {
	cmd := &cobra.Command{
		Use:     "trielogctl",
		Short:   "Maintains the trie logs of a Bonsai world state store",
		Version: version.String(),
	}
	cmd.AddCommand(
		count.Command(),
		prune.Command(),
		export.Command(),
		importcmd.Command(),
	)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
