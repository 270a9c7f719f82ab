package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarfront/cedarfront/internal/parser"
	"github.com/cedarfront/cedarfront/pkg/syntax"
)

func TestParseSchema_Skeleton(t *testing.T) {
	tree, diags := parser.ParseSchema(`entity User;`)
	require.False(t, diags.HasError())
	assert.False(t, tree.HasErrors(tree.Root()))
	assert.Equal(t, syntax.KindSchemaFile, tree.Kind(tree.Root()))
}

func TestParseSchema_NamespaceWithEntitiesAndActions(t *testing.T) {
	_, diags := parser.ParseSchema(`
namespace App {
  entity User;
  entity Photo;
  action "view" appliesTo { principal: [User], resource: [Photo] };
}
`)
	assert.False(t, diags.HasError())
}

func TestParseSchema_MissingDeclarationRecovers(t *testing.T) {
	tree, diags := parser.ParseSchema(`123 entity User;`)
	assert.True(t, diags.HasError())
	assert.True(t, tree.HasErrors(tree.Root()))
}

func TestParseSchema_TypeDecl(t *testing.T) {
	_, diags := parser.ParseSchema(`type Name = String;`)
	assert.False(t, diags.HasError())
}

func TestParseSchema_EnumDecl(t *testing.T) {
	_, diags := parser.ParseSchema(`entity Color enum ["red", "green"];`)
	assert.False(t, diags.HasError())
}

func TestParseSchema_NestedNamespaceParsesStructurally(t *testing.T) {
	tree, diags := parser.ParseSchema(`namespace App { namespace Inner { entity User; } }`)
	assert.False(t, diags.HasError())
	assert.False(t, tree.HasErrors(tree.Root()))
}

func TestParseSchema_SourceLengthPreserved(t *testing.T) {
	source := `entity User in [Group] = { name: String };`
	tree, _ := parser.ParseSchema(source)
	assert.Equal(t, source, tree.Source)
}
