package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarfront/cedarfront/internal/parser"
	"github.com/cedarfront/cedarfront/pkg/syntax"
)

func TestParsePolicies_Skeleton(t *testing.T) {
	tree, diags := parser.ParsePolicies(`permit(principal, action, resource);`)
	require.False(t, diags.HasError())
	assert.False(t, tree.HasErrors(tree.Root()))
	assert.Equal(t, syntax.KindPolicySet, tree.Kind(tree.Root()))
}

func TestParsePolicies_MultiplePolicies(t *testing.T) {
	_, diags := parser.ParsePolicies(`
permit(principal, action, resource);
forbid(principal, action, resource) when { false };
`)
	assert.False(t, diags.HasError())
}

func TestParsePolicies_MissingEffectRecovers(t *testing.T) {
	tree, diags := parser.ParsePolicies(`garbage permit(principal, action, resource);`)
	assert.True(t, diags.HasError())
	// parsing always succeeds structurally even when recovering from garbage.
	assert.True(t, tree.HasErrors(tree.Root()))
}

func TestParsePolicies_InvalidEqualsInScope(t *testing.T) {
	_, diags := parser.ParsePolicies(`permit(principal = User::"alice", action, resource);`)
	assert.True(t, diags.HasError())
	found := false
	for _, d := range diags.Iter() {
		if d.Code == "InvalidEquals" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParsePolicies_AnnotationBeforePermit(t *testing.T) {
	_, diags := parser.ParsePolicies(`@id("rule") permit(principal, action, resource);`)
	assert.False(t, diags.HasError())
}

func TestParsePolicies_UnclosedConditionRecovers(t *testing.T) {
	tree, diags := parser.ParsePolicies(`permit(principal, action, resource) when { true ;`)
	assert.True(t, diags.HasError())
	assert.True(t, tree.HasErrors(tree.Root()))
}

func TestParsePolicies_SourceLengthPreserved(t *testing.T) {
	source := `permit(principal, action, resource) when { 1 + 2 == 3 };`
	tree, _ := parser.ParsePolicies(source)
	assert.Equal(t, source, tree.Source)
}
