// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLintPolicyCommand_Help(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"lint", "policy", "--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Lint a Cedar policy-set file")
}

func TestLintPolicyCommand_ValidPolicy(t *testing.T) {
	path := writeTempFile(t, "policy.cedar", `permit(principal, action, resource);`)

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"lint", "policy", path})

	require.NoError(t, cmd.Execute())
}

func TestLintPolicyCommand_InvalidEquals(t *testing.T) {
	path := writeTempFile(t, "policy.cedar", `permit(principal, action, resource) when { 1 = 1 };`)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"lint", "policy", path})

	err := cmd.Execute()
	assert.Error(t, err, "a bare = in a condition should surface as an error diagnostic")
}

func TestLintPolicyCommand_JSONFormat(t *testing.T) {
	path := writeTempFile(t, "policy.cedar", `permit(principal, action, resource);`)

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"lint", "policy", "--format", "json", path})

	require.NoError(t, cmd.Execute())
}

func TestLintPolicyCommand_MissingFile(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"lint", "policy", filepath.Join(t.TempDir(), "missing.cedar")})

	err := cmd.Execute()
	assert.Error(t, err)
}

func TestLintSchemaCommand_ValidSchema(t *testing.T) {
	path := writeTempFile(t, "schema.cedarschema", `entity User;`)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"lint", "schema", path})

	require.NoError(t, cmd.Execute())
}

func TestLintPolicyCommand_AtOffset(t *testing.T) {
	path := writeTempFile(t, "policy.cedar", `permit(principal, action, resource);`)

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"lint", "policy", "--at", "0", path})

	require.NoError(t, cmd.Execute())
}
