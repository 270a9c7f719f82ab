package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarfront/cedarfront/pkg/syntax"
)

// buildFlat builds "a+b" as three leaf tokens directly under a root
// group, with no grouping of the left-hand side.
func buildFlatAddition(b *syntax.Builder) syntax.NodeIndex {
	root := b.Open(syntax.KindAddExpr)
	b.Token(syntax.KindIdentifier, 1) // a
	b.Token(syntax.KindPlus, 1)       // +
	b.Token(syntax.KindIdentifier, 1) // b
	b.Close(root)
	return root
}

func TestBuilderRoundTripsSourceExactly(t *testing.T) {
	b := syntax.NewBuilder("a+b")
	root := buildFlatAddition(b)
	tree := b.Build(root)
	assert.Equal(t, "a+b", tree.String())
	assert.Equal(t, "a+b", tree.Text(root))
}

func TestBuilderCommitGroupsLeftAssociatively(t *testing.T) {
	// Simulate a Pratt loop building "a+b+c" as ((a+b)+c): the
	// checkpoint is taken ONCE, before the left-most operand, and
	// reused for every fold in the chain — each Commit call rewrites
	// the arena so cp's "first" resolves to whatever the previous
	// Commit last installed at that position.
	b := syntax.NewBuilder("a+b+c")
	stmt := b.Open(syntax.KindPolicy)

	cp := b.Checkpoint()
	b.Token(syntax.KindIdentifier, 1) // a

	b.Token(syntax.KindPlus, 1)
	b.Token(syntax.KindIdentifier, 1) // b
	inner := b.Commit(cp, syntax.KindAddExpr)

	b.Token(syntax.KindPlus, 1)
	b.Token(syntax.KindIdentifier, 1) // c
	outer := b.Commit(cp, syntax.KindAddExpr)

	b.Close(stmt)
	tree := b.Build(stmt)

	require.Equal(t, "a+b+c", tree.String())
	assert.Equal(t, "a+b+c", tree.Text(outer))
	assert.Equal(t, "a+b", tree.Text(inner))

	// outer's children are [inner, '+', 'c']
	kids := tree.Children(outer)
	require.Len(t, kids, 3)
	assert.Equal(t, inner, kids[0])
	assert.Equal(t, syntax.KindPlus, tree.Kind(kids[1]))
	assert.Equal(t, "c", tree.Text(kids[2]))

	// inner's children are ['a', '+', 'b'], and inner is now reparented
	// under outer rather than under stmt.
	innerKids := tree.Children(inner)
	require.Len(t, innerKids, 3)
	assert.Equal(t, "a", tree.Text(innerKids[0]))
	assert.Equal(t, "b", tree.Text(innerKids[2]))

	parent, ok := tree.Parent(inner)
	require.True(t, ok)
	assert.Equal(t, outer, parent)
}

func TestBuilderCommitWithNothingSinceCheckpointInsertsEmptyGroup(t *testing.T) {
	b := syntax.NewBuilder("a")
	root := b.Open(syntax.KindPolicy)
	b.Token(syntax.KindIdentifier, 1)
	cp := b.Checkpoint()
	empty := b.Commit(cp, syntax.KindErrorGroup)
	b.Close(root)
	tree := b.Build(root)

	assert.Equal(t, "", tree.Text(empty))
	start, end := tree.Range(empty)
	assert.Equal(t, 1, start)
	assert.Equal(t, 1, end)
}

func TestBuilderCoveringFindsInnermostNode(t *testing.T) {
	b := syntax.NewBuilder("a+b")
	root := buildFlatAddition(b)
	tree := b.Build(root)

	node, ok := tree.Covering(2, 3)
	require.True(t, ok)
	assert.Equal(t, "b", tree.Text(node))
}

func TestTreeHasErrorsDetectsErrorGroupDescendant(t *testing.T) {
	b := syntax.NewBuilder("a#")
	root := b.Open(syntax.KindPolicy)
	b.Token(syntax.KindIdentifier, 1)
	errGroup := b.Open(syntax.KindErrorGroup)
	b.Token(syntax.KindUnknown, 1)
	b.Close(errGroup)
	b.Close(root)
	tree := b.Build(root)

	assert.True(t, tree.HasErrors(root))
	assert.False(t, tree.HasErrors(tree.Children(root)[0]))
}

func TestKindClassification(t *testing.T) {
	assert.True(t, syntax.KindIdentifier.IsToken())
	assert.False(t, syntax.KindIdentifier.IsGroup())
	assert.True(t, syntax.KindAddExpr.IsGroup())
	assert.False(t, syntax.KindAddExpr.IsToken())
	assert.True(t, syntax.KindWhitespace.IsTrivia())
	assert.False(t, syntax.KindIdentifier.IsTrivia())
}
