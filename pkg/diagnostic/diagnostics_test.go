package diagnostic_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarfront/cedarfront/pkg/diagnostic"
)

func TestDiagnosticsPushOrderAndHasError(t *testing.T) {
	diags := diagnostic.New()
	require.Equal(t, 0, diags.Len())
	require.False(t, diags.HasError())

	diags.Push(diagnostic.NewWarning("W1", "first"))
	diags.Push(diagnostic.NewError("E1", "second"))

	require.Equal(t, 2, diags.Len())
	assert.True(t, diags.HasError())

	items := diags.Iter()
	assert.Equal(t, "first", items[0].Message)
	assert.Equal(t, "second", items[1].Message)
	assert.NotEqual(t, items[0].ID, items[1].ID)
}

func TestDiagnosticsTruncate(t *testing.T) {
	diags := diagnostic.New()
	diags.Push(diagnostic.NewError("E1", "a"))
	mark := diags.Len()
	diags.Push(diagnostic.NewError("E2", "b"))
	diags.Push(diagnostic.NewError("E3", "c"))
	require.Equal(t, 3, diags.Len())

	diags.Truncate(mark)
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, "a", diags.Iter()[0].Message)
}

func TestRenderIncludesPrimaryLabelAndFix(t *testing.T) {
	source := `permit(principal, action, resource) when { principal.foo = "bar" };`
	d := diagnostic.NewError("InvalidEquals", "'=' is not a valid operator").
		WithPrimary(diagnostic.Span{Start: 57, End: 58}, "did you mean '=='?").
		WithFix(diagnostic.Span{Start: 57, End: 58}, "==", "replace with '=='")

	out := diagnostic.Render("policy.cedar", source, *d, false)
	assert.Contains(t, out, "error: '=' is not a valid operator")
	assert.Contains(t, out, "policy.cedar:1:58")
	assert.Contains(t, out, "^")
	assert.Contains(t, out, "fix: replace with '=='")
	assert.True(t, strings.Contains(out, "=="))
}
