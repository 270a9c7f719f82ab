// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/cedarfront/cedarfront"
	"github.com/cedarfront/cedarfront/internal/obslog"
	"github.com/cedarfront/cedarfront/pkg/diagnostic"
)

// outputFormat and atOffset are shared by both lint subcommands.
var (
	outputFormat string
	atOffset     int
)

// NewLintCmd creates the "lint" command group.
func NewLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Parse and lower a Cedar policy or schema file",
	}

	cmd.PersistentFlags().StringVar(&outputFormat, "format", "human", "output format (human or json)")
	cmd.PersistentFlags().IntVar(&atOffset, "at", -1, "print the innermost syntax node covering this byte offset, instead of linting")

	cmd.AddCommand(newLintPolicyCmd())
	cmd.AddCommand(newLintSchemaCmd())

	return cmd
}

func newLintPolicyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policy <file>",
		Short: "Lint a Cedar policy-set file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd.Context(), args[0], func(source string) (*cedarfront.Tree, *cedarfront.Diagnostics) {
				tree, _, diags := cedarfront.CompilePolicies(source)
				return tree, diags
			})
		},
	}
}

func newLintSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <file>",
		Short: "Lint a Cedar schema file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd.Context(), args[0], func(source string) (*cedarfront.Tree, *cedarfront.Diagnostics) {
				tree, _, diags := cedarfront.CompileSchema(source)
				return tree, diags
			})
		},
	}
}

// runLint reads path, compiles it with compileFn (parse followed by
// lowering, both diagnostic-accumulating stages of a single pipeline),
// optionally answers an --at covering query, and reports every
// diagnostic produced. A diagnostic, however severe, never stops the
// pipeline — the exit code alone reflects whether an error-severity
// diagnostic was produced.
func runLint(ctx context.Context, path string, compileFn func(string) (*cedarfront.Tree, *cedarfront.Diagnostics)) error {
	ctx, span := tracer.Start(ctx, "cedarlint.lint")
	defer span.End()
	logger := slog.Default()

	source, err := readSource(path)
	if err != nil {
		obslog.LogError(logger, "failed to read file", err)
		return err
	}

	tree, diags := compileFn(source)

	if atOffset >= 0 {
		printCovering(tree, atOffset)
		return nil
	}

	logger.InfoContext(ctx, "lint complete", "file", path, "diagnostics", diags.Len())

	return report(path, source, diags)
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", oops.Code("FILE_READ_FAILED").
			With("path", path).
			Wrapf(err, "failed to read %s", path)
	}
	return string(data), nil
}

func printCovering(tree *cedarfront.Tree, offset int) {
	idx, ok := tree.Covering(offset, offset)
	if !ok {
		fmt.Printf("no node covers offset %d\n", offset)
		return
	}
	start, end := tree.Range(idx)
	fmt.Printf("%s [%d,%d): %q\n", tree.Kind(idx), start, end, tree.Text(idx))
}

func report(path, source string, diags *diagnostic.Diagnostics) error {
	items := diags.Iter()

	if outputFormat == "json" {
		if err := json.NewEncoder(os.Stdout).Encode(lintResult{File: path, Valid: !diags.HasError(), Diagnostics: items}); err != nil {
			return oops.Code("JSON_ENCODE_FAILED").Wrapf(err, "failed to encode diagnostics")
		}
	} else if len(items) > 0 {
		fmt.Print(diagnostic.RenderAll(path, source, items, !noColor))
		fmt.Println()
	}

	if diags.HasError() {
		return fmt.Errorf("%s: %d diagnostic(s), at least one error", path, len(items))
	}
	return nil
}

type lintResult struct {
	File        string                  `json:"file"`
	Valid       bool                    `json:"valid"`
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics"`
}
