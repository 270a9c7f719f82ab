// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/cedarfront/cedarfront/internal/obslog"
)

// Global flags available to all subcommands.
var (
	logFormat string
	noColor   bool
)

// NewRootCmd creates the root command for the cedarlint CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cedarlint",
		Short:   "cedarlint - a Cedar policy and schema front-end",
		Version: version,
		Long: `cedarlint parses and lowers Cedar policy and schema files,
reporting every diagnostic produced along the way without treating any
of them as fatal to the run.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			obslog.SetDefault("cedarlint", version, logFormat)
			setupTracing()
		},
	}

	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log format for operational errors (json or text)")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color in rendered diagnostics")

	cmd.AddCommand(NewLintCmd())

	return cmd
}
