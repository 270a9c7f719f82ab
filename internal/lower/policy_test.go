package lower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarfront/cedarfront/internal/lower"
	"github.com/cedarfront/cedarfront/internal/parser"
	"github.com/cedarfront/cedarfront/pkg/ast"
	"github.com/cedarfront/cedarfront/pkg/diagnostic"
)

func lowerPolicies(t *testing.T, source string) (*ast.PolicySet, *diagnostic.Diagnostics) {
	t.Helper()
	tree, diags := parser.ParsePolicies(source)
	return lower.LowerPolicies(tree, diags), diags
}

func codes(diags *diagnostic.Diagnostics) []string {
	var out []string
	for _, d := range diags.Iter() {
		out = append(out, d.Code)
	}
	return out
}

func TestLowerPolicies_Skeleton(t *testing.T) {
	set, diags := lowerPolicies(t, `permit(principal, action, resource);`)
	require.False(t, diags.HasError())
	require.Len(t, set.Policies, 1)

	p := set.Policies[0]
	assert.Equal(t, ast.EffectPermit, p.Effect)
	assert.Equal(t, ast.ScopeAny, p.Principal.Kind)
	assert.Equal(t, ast.ActionAny, p.Action.Kind)
	assert.Equal(t, ast.ScopeAny, p.Resource.Kind)
	assert.Empty(t, p.Conditions)
}

func TestLowerPolicies_Forbid(t *testing.T) {
	set, diags := lowerPolicies(t, `forbid(principal, action, resource);`)
	require.False(t, diags.HasError())
	require.Len(t, set.Policies, 1)
	assert.Equal(t, ast.EffectForbid, set.Policies[0].Effect)
}

func TestLowerPolicies_ScopeEquality(t *testing.T) {
	set, diags := lowerPolicies(t, `permit(principal == User::"alice", action, resource);`)
	require.False(t, diags.HasError())
	require.Len(t, set.Policies, 1)

	p := set.Policies[0]
	require.Equal(t, ast.ScopeEqual, p.Principal.Kind)
	require.NotNil(t, p.Principal.Ref)
	assert.Equal(t, "User", p.Principal.Ref.Entity.Type)
	assert.Equal(t, "alice", p.Principal.Ref.Entity.ID)
}

func TestLowerPolicies_ScopeIsIn(t *testing.T) {
	set, diags := lowerPolicies(t, `permit(principal is User in Group::"admins", action, resource);`)
	require.False(t, diags.HasError())
	require.Len(t, set.Policies, 1)

	p := set.Policies[0]
	require.Equal(t, ast.ScopeIsIn, p.Principal.Kind)
	assert.Equal(t, "User", p.Principal.EntityType)
	require.NotNil(t, p.Principal.Ref)
	assert.Equal(t, "Group", p.Principal.Ref.Entity.Type)
}

func TestLowerPolicies_ActionInList(t *testing.T) {
	set, diags := lowerPolicies(t, `permit(principal, action in [Action::"view", Action::"edit"], resource);`)
	require.False(t, diags.HasError())
	require.Len(t, set.Policies, 1)

	p := set.Policies[0]
	require.Equal(t, ast.ActionIn, p.Action.Kind)
	require.Len(t, p.Action.List, 2)
	assert.Equal(t, "view", p.Action.List[0].ID)
	assert.Equal(t, "edit", p.Action.List[1].ID)
}

func TestLowerPolicies_TemplateSlots(t *testing.T) {
	set, diags := lowerPolicies(t, `permit(principal == ?principal, action, resource in ?resource);`)
	require.False(t, diags.HasError())
	require.Len(t, set.Policies, 1)

	p := set.Policies[0]
	require.True(t, p.Principal.Ref.IsSlot)
	assert.Equal(t, "principal", p.Principal.Ref.Slot)
	require.True(t, p.Resource.Ref.IsSlot)
	assert.Equal(t, "resource", p.Resource.Ref.Slot)
}

func TestLowerPolicies_ContextInScopeIsDiagnosed(t *testing.T) {
	_, diags := lowerPolicies(t, `permit(context, action, resource);`)
	assert.Contains(t, codes(diags), "ContextInScope")
}

func TestLowerPolicies_InvalidEquals(t *testing.T) {
	_, diags := lowerPolicies(t, `permit(principal, action, resource) when { 1 = 1 };`)
	assert.Contains(t, codes(diags), "InvalidEquals")
	assert.True(t, diags.HasError())
}

func TestLowerPolicies_WhenUnless(t *testing.T) {
	set, diags := lowerPolicies(t, `permit(principal, action, resource) when { true } unless { false };`)
	require.False(t, diags.HasError())
	require.Len(t, set.Policies, 1)

	conds := set.Policies[0].Conditions
	require.Len(t, conds, 2)
	assert.Equal(t, ast.ConditionWhen, conds[0].Kind)
	assert.Equal(t, ast.ConditionUnless, conds[1].Kind)
}

func TestLowerPolicies_NegativeIntLiteralCollapses(t *testing.T) {
	set, diags := lowerPolicies(t, `permit(principal, action, resource) when { -9223372036854775808 == -9223372036854775808 };`)
	require.False(t, diags.HasError())
	require.Len(t, set.Policies, 1)

	rel := set.Policies[0].Conditions[0].Expr.Rel
	require.NotNil(t, rel)
	assert.Equal(t, ast.ExprLiteral, rel.Left.Kind)
	assert.Equal(t, int64(-9223372036854775808), rel.Left.Literal.Int)
}

func TestLowerPolicies_ExtensionCallNoReceiver(t *testing.T) {
	set, diags := lowerPolicies(t, `permit(principal, action, resource) when { ip("1.2.3.4") == ip("1.2.3.4") };`)
	require.False(t, diags.HasError())
	call := set.Policies[0].Conditions[0].Expr.Rel.Left.ExtensionCall
	require.NotNil(t, call)
	assert.Equal(t, "ip", call.Name)
	assert.Nil(t, call.Receiver)
}

func TestLowerPolicies_ExtensionMethodHasReceiver(t *testing.T) {
	set, diags := lowerPolicies(t, `permit(principal, action, resource) when { ip("1.2.3.4").isInRange(ip("1.2.3.0/24")) };`)
	require.False(t, diags.HasError())
	call := set.Policies[0].Conditions[0].Expr.ExtensionCall
	require.NotNil(t, call)
	assert.Equal(t, "isInRange", call.Name)
	assert.NotNil(t, call.Receiver)
}

func TestLowerPolicies_BuiltinMethodArity(t *testing.T) {
	_, diags := lowerPolicies(t, `permit(principal, action, resource) when { [1,2].contains(1, 2) };`)
	assert.Contains(t, codes(diags), "WrongArgumentCount")
}

func TestLowerPolicies_UnknownFunction(t *testing.T) {
	_, diags := lowerPolicies(t, `permit(principal, action, resource) when { bogus(1) };`)
	assert.Contains(t, codes(diags), "UnknownFunction")
}

func TestLowerPolicies_UnknownMethod(t *testing.T) {
	_, diags := lowerPolicies(t, `permit(principal, action, resource) when { resource.bogus(1) };`)
	assert.Contains(t, codes(diags), "UnknownMethod")
}

func TestLowerPolicies_UnknownVariable(t *testing.T) {
	_, diags := lowerPolicies(t, `permit(principal, action, resource) when { bogus == 1 };`)
	assert.Contains(t, codes(diags), "UnknownVariable")
}

func TestLowerPolicies_DuplicateRecordKey(t *testing.T) {
	_, diags := lowerPolicies(t, `permit(principal, action, resource) when { {a: 1, a: 2} == {a: 1} };`)
	assert.Contains(t, codes(diags), "DuplicateRecordKey")
}

func TestLowerPolicies_HasWithStringAttr(t *testing.T) {
	set, diags := lowerPolicies(t, `permit(principal, action, resource) when { resource has "weird-attr" };`)
	require.False(t, diags.HasError())
	has := set.Policies[0].Conditions[0].Expr.Has
	require.NotNil(t, has)
	assert.Equal(t, "weird-attr", has.Attr)
}

func TestLowerPolicies_LikePattern(t *testing.T) {
	set, diags := lowerPolicies(t, `permit(principal, action, resource) when { resource.name like "foo*" };`)
	require.False(t, diags.HasError())
	like := set.Policies[0].Conditions[0].Expr.Like
	require.NotNil(t, like)
	assert.NotEmpty(t, like.Pattern)
}

func TestLowerPolicies_AnnotationsCarried(t *testing.T) {
	set, diags := lowerPolicies(t, `@id("rule-1") permit(principal, action, resource);`)
	require.False(t, diags.HasError())
	require.Len(t, set.Policies, 1)
	value, ok := set.Policies[0].Annotations.Get("id")
	require.True(t, ok)
	assert.Equal(t, "rule-1", value)
}

func TestLowerPolicies_ActionInListDuplicateIsDiagnosed(t *testing.T) {
	_, diags := lowerPolicies(t, `permit(principal, action in [Action::"view", Action::"view"], resource);`)
	assert.Contains(t, codes(diags), "DuplicateActionRef")
	assert.True(t, diags.HasError())
}

func TestLowerPolicies_MalformedPolicyDropped(t *testing.T) {
	set, _ := lowerPolicies(t, `permit(principal, action, resource); garbage`)
	assert.Len(t, set.Policies, 1, "a trailing malformed policy should be dropped without affecting earlier ones")
}
