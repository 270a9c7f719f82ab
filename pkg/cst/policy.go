package cst

import "github.com/cedarfront/cedarfront/pkg/syntax"

// Policies wraps the KindPolicySet root of a parsed policy file.
type Policies struct{ node }

// NewPolicies wraps tree's root as a Policies view.
func NewPolicies(t *syntax.Tree) Policies {
	return Policies{node{t, t.Root()}}
}

// Items returns every Policy that is a direct child of the root, in
// source order; error groups are not searched.
func (p Policies) Items() []Policy {
	var out []Policy
	for _, c := range childrenOfKind(p.Tree, p.Idx, syntax.KindPolicy) {
		out = append(out, Policy{node{p.Tree, c}})
	}
	return out
}

// Policy wraps one `[annotations] effect ( scope ) conditions* ;` node.
type Policy struct{ node }

// Annotations returns the policy's `@key("value")` annotations in
// source order.
func (p Policy) Annotations() []Annotation {
	list, ok := child(p.Tree, p.Idx, syntax.KindAnnotationList)
	if !ok {
		return nil
	}
	var out []Annotation
	for _, c := range childrenOfKind(p.Tree, list, syntax.KindAnnotation) {
		out = append(out, Annotation{node{p.Tree, c}})
	}
	return out
}

// Effect returns the policy's permit/forbid keyword kind, or
// (KindUnknown, false) when a MissingEffect recovery left it absent.
func (p Policy) Effect() (syntax.Kind, bool) {
	if _, ok := child(p.Tree, p.Idx, syntax.KindPermitKw); ok {
		return syntax.KindPermitKw, true
	}
	if _, ok := child(p.Tree, p.Idx, syntax.KindForbidKw); ok {
		return syntax.KindForbidKw, true
	}
	return syntax.KindUnknown, false
}

// Scope returns the policy's `( … )` scope node.
func (p Policy) Scope() (Scope, bool) {
	i, ok := child(p.Tree, p.Idx, syntax.KindScope)
	return Scope{node{p.Tree, i}}, ok
}

// Conditions returns the policy's `when`/`unless` clauses in order.
func (p Policy) Conditions() []Condition {
	var out []Condition
	for _, c := range childrenOfKind(p.Tree, p.Idx, syntax.KindCondition) {
		out = append(out, Condition{node{p.Tree, c}})
	}
	return out
}

// Annotation wraps one `@key("value")` node.
type Annotation struct{ node }

// Key returns the annotation's identifier.
func (a Annotation) Key() string {
	if txt, ok := tokenText(a.Tree, a.Idx, syntax.KindIdentifier); ok {
		return txt
	}
	return ""
}

// ValueToken returns the annotation's raw (still-quoted) string literal
// token text, for escape.UnescapeStr.
func (a Annotation) ValueToken() (string, bool) {
	return tokenText(a.Tree, a.Idx, syntax.KindStringLiteral)
}

// Scope wraps the `( … )` node holding up to three variable definitions.
type Scope struct{ node }

// VariableDefs returns the scope's variable definitions in source
// order; lowering assigns each to principal/action/resource by its
// leading keyword, and by its position when it has none.
func (s Scope) VariableDefs() []VariableDef {
	var out []VariableDef
	for _, c := range childrenOfKind(s.Tree, s.Idx, syntax.KindVariableDef) {
		out = append(out, VariableDef{node{s.Tree, c}})
	}
	return out
}

// VariableDef wraps one scope position: either a slot or
// `ident ("is" Name ("in" expr)? | ("=="|"in") expr)?`.
type VariableDef struct{ node }

// Slot returns the `?ident` slot name when this definition is a slot.
func (v VariableDef) Slot() (string, bool) {
	i, ok := child(v.Tree, v.Idx, syntax.KindSlotNode)
	if !ok {
		return "", false
	}
	return Slot{node{v.Tree, i}}.Name(), true
}

// IsClause returns the `is Name [in expr]` constraint, if present.
func (v VariableDef) IsClause() (Name, Expr, bool) {
	if _, ok := child(v.Tree, v.Idx, syntax.KindIsKw); !ok {
		return Name{}, Expr{}, false
	}
	n, ok := child(v.Tree, v.Idx, syntax.KindName)
	if !ok {
		return Name{}, Expr{}, false
	}
	exprs := exprChildren(v.Tree, v.Idx)
	var in Expr
	if _, hasIn := child(v.Tree, v.Idx, syntax.KindInKw); hasIn && len(exprs) > 0 {
		in = Expr{node{v.Tree, exprs[0]}}
	}
	return Name{node{v.Tree, n}}, in, true
}

// OpClause returns the `(==|in) expr` constraint, if present. An
// InvalidEquals-recovered `=` reports KindEqEq-equivalent via
// syntax.KindEquals.
func (v VariableDef) OpClause() (syntax.Kind, Expr, bool) {
	for _, op := range []syntax.Kind{syntax.KindEqEq, syntax.KindEquals, syntax.KindInKw} {
		if _, ok := child(v.Tree, v.Idx, op); ok {
			exprs := exprChildren(v.Tree, v.Idx)
			if len(exprs) == 0 {
				return op, Expr{}, false
			}
			return op, Expr{node{v.Tree, exprs[0]}}, true
		}
	}
	return syntax.KindUnknown, Expr{}, false
}

// Slot wraps a `?ident` node.
type Slot struct{ node }

// Name returns the slot's identifier text, without the leading `?`.
func (s Slot) Name() string {
	txt, _ := tokenText(s.Tree, s.Idx, syntax.KindIdentifier)
	return txt
}

// Condition wraps one `when { expr }` / `unless { expr }` clause.
type Condition struct{ node }

// IsUnless reports whether this is an `unless` clause rather than `when`.
func (c Condition) IsUnless() bool {
	_, ok := child(c.Tree, c.Idx, syntax.KindUnlessKw)
	return ok
}

// Body returns the condition's bracketed expression.
func (c Condition) Body() (Expr, bool) {
	exprs := exprChildren(c.Tree, c.Idx)
	if len(exprs) == 0 {
		return Expr{}, false
	}
	return Expr{node{c.Tree, exprs[0]}}, true
}

// Name wraps a `::`-qualified name (`Foo::Bar`).
type Name struct{ node }

// Segments returns the name's identifier components in order.
func (n Name) Segments() []string {
	var out []string
	for _, c := range childrenOfKind(n.Tree, n.Idx, syntax.KindIdentifier) {
		out = append(out, n.Tree.Text(c))
	}
	return out
}
