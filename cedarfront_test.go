package cedarfront_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarfront/cedarfront"
)

func TestCompilePolicies_Skeleton(t *testing.T) {
	tree, set, diags := cedarfront.CompilePolicies(`permit(principal, action, resource);`)
	require.False(t, diags.HasError())
	require.Len(t, set.Policies, 1)
	assert.False(t, tree.HasErrors(tree.Root()))
}

func TestCompilePolicies_ReportsDiagnostic(t *testing.T) {
	_, _, diags := cedarfront.CompilePolicies(`permit(principal, action, resource) when { 1 = 1 };`)
	assert.True(t, diags.HasError())
}

func TestCompileSchema_Skeleton(t *testing.T) {
	tree, schema, diags := cedarfront.CompileSchema(`entity User;`)
	require.False(t, diags.HasError())
	require.Len(t, schema.Namespaces, 1)
	assert.False(t, tree.HasErrors(tree.Root()))
}

func TestCompileSchema_ReportsDiagnostic(t *testing.T) {
	_, _, diags := cedarfront.CompileSchema(`namespace App { namespace Inner { entity User; } }`)
	assert.True(t, diags.HasError())
}
