// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "riptide",
	Short:        "riptide retained-mode UI runtime",
	Long:         `riptide re-renders a declarative component tree into primitive render nodes, incrementally, driven by a single-threaded work loop`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
