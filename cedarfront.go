// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package cedarfront is the public entry point for parsing and
// lowering Cedar policy and schema text. It is a thin facade over the
// internal lexer, parser, and lowerer packages: CompilePolicies and
// CompileSchema run the full source-to-AST pipeline and return every
// diagnostic produced along the way, never treating a diagnostic as
// fatal to the run.
package cedarfront

import (
	"github.com/cedarfront/cedarfront/internal/lower"
	"github.com/cedarfront/cedarfront/internal/parser"
	"github.com/cedarfront/cedarfront/pkg/ast"
	"github.com/cedarfront/cedarfront/pkg/diagnostic"
	"github.com/cedarfront/cedarfront/pkg/syntax"
)

// Re-exported so callers need only import this package for the common
// path, the way original_source/src/lib.rs re-exports its crates.
type (
	Tree        = syntax.Tree
	Diagnostic  = diagnostic.Diagnostic
	Diagnostics = diagnostic.Diagnostics
	PolicySet   = ast.PolicySet
	Schema      = ast.Schema
)

// CompilePolicies parses and lowers a Cedar policy-set source string,
// returning both the lossless syntax tree and the lowered policy set
// alongside every diagnostic produced by either stage.
func CompilePolicies(source string) (*Tree, *PolicySet, *Diagnostics) {
	tree, diags := parser.ParsePolicies(source)
	policies := lower.LowerPolicies(tree, diags)
	return tree, policies, diags
}

// CompileSchema parses and lowers a Cedar schema source string,
// returning both the lossless syntax tree and the lowered schema
// alongside every diagnostic produced by either stage.
func CompileSchema(source string) (*Tree, *Schema, *Diagnostics) {
	tree, diags := parser.ParseSchema(source)
	schema := lower.LowerSchema(tree, diags)
	return tree, schema, diags
}
