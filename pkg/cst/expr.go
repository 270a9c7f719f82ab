package cst

import "github.com/cedarfront/cedarfront/pkg/syntax"

// Expr wraps any expression-shaped CST node. Callers dispatch on Kind()
// and then use the matching As* accessor.
type Expr struct{ node }

func isExprKind(k syntax.Kind) bool {
	switch k {
	case syntax.KindOrExpr, syntax.KindAndExpr, syntax.KindRelExpr, syntax.KindAddExpr,
		syntax.KindMulExpr, syntax.KindUnaryExpr, syntax.KindIsExpr, syntax.KindLikeExpr,
		syntax.KindHasExpr, syntax.KindIfExpr, syntax.KindLiteralExpr, syntax.KindSlotExpr,
		syntax.KindNameExpr, syntax.KindParenExpr, syntax.KindListExpr, syntax.KindRecordExpr,
		syntax.KindEntityRefExpr, syntax.KindFieldAccess, syntax.KindCallExpr, syntax.KindIndexExpr:
		return true
	default:
		return false
	}
}

func exprChildren(t *syntax.Tree, i syntax.NodeIndex) []syntax.NodeIndex {
	var out []syntax.NodeIndex
	for _, c := range t.Children(i) {
		if isExprKind(t.Kind(c)) {
			out = append(out, c)
		}
	}
	return out
}

// Operands returns every direct expression-shaped child, in order.
func (e Expr) Operands() []Expr {
	var out []Expr
	for _, c := range exprChildren(e.Tree, e.Idx) {
		out = append(out, Expr{node{e.Tree, c}})
	}
	return out
}

// BinaryOperands returns the two operands of an Or/And/Mul node.
func (e Expr) BinaryOperands() (left, right Expr, ok bool) {
	ops := e.Operands()
	if len(ops) != 2 {
		return Expr{}, Expr{}, false
	}
	return ops[0], ops[1], true
}

var relOperators = []syntax.Kind{
	syntax.KindLt, syntax.KindLtEq, syntax.KindGt, syntax.KindGtEq,
	syntax.KindEqEq, syntax.KindNotEq, syntax.KindInKw, syntax.KindEquals,
}

// RelOperator returns the comparison operator token kind of a RelExpr.
// KindEquals is reported for an InvalidEquals-recovered `=`; lowering
// reports it as InvalidEquals and does not lower the expression.
func (e Expr) RelOperator() (syntax.Kind, bool) {
	for _, c := range e.Tree.Children(e.Idx) {
		k := e.Tree.Kind(c)
		for _, op := range relOperators {
			if k == op {
				return k, true
			}
		}
	}
	return syntax.KindUnknown, false
}

// AddOperator returns the `+`/`-` token kind of an AddExpr.
func (e Expr) AddOperator() (syntax.Kind, bool) {
	for _, c := range e.Tree.Children(e.Idx) {
		switch e.Tree.Kind(c) {
		case syntax.KindPlus, syntax.KindMinus:
			return e.Tree.Kind(c), true
		}
	}
	return syntax.KindUnknown, false
}

// UnaryOperator returns the `!`/`-` token kind and sole operand of a
// UnaryExpr.
func (e Expr) UnaryOperator() (op syntax.Kind, operand Expr, ok bool) {
	for _, c := range e.Tree.Children(e.Idx) {
		switch e.Tree.Kind(c) {
		case syntax.KindBang, syntax.KindMinus:
			op = e.Tree.Kind(c)
		}
	}
	ops := e.Operands()
	if len(ops) != 1 {
		return syntax.KindUnknown, Expr{}, false
	}
	return op, ops[0], true
}

// IsClause returns the subject, entity-type name, and optional `in`
// expression of an `x is T [in y]` node.
func (e Expr) IsClause() (subject Expr, entityType Name, in Expr, hasIn bool) {
	ops := e.Operands()
	if len(ops) > 0 {
		subject = ops[0]
	}
	if n, ok := child(e.Tree, e.Idx, syntax.KindName); ok {
		entityType = Name{node{e.Tree, n}}
	}
	if _, ok := child(e.Tree, e.Idx, syntax.KindInKw); ok && len(ops) > 1 {
		in = ops[1]
		hasIn = true
	}
	return subject, entityType, in, hasIn
}

// LikeClause returns the subject and the still-quoted pattern literal
// of an `x like "pattern"` node.
func (e Expr) LikeClause() (subject Expr, patternToken string, ok bool) {
	ops := e.Operands()
	if len(ops) == 0 {
		return Expr{}, "", false
	}
	tok, ok := tokenText(e.Tree, e.Idx, syntax.KindStringLiteral)
	return ops[0], tok, ok
}

// HasClause returns the subject and attribute name of an `x has attr`
// node; isString reports whether attr came from a string literal.
func (e Expr) HasClause() (subject Expr, attrToken string, isString bool, ok bool) {
	ops := e.Operands()
	if len(ops) == 0 {
		return Expr{}, "", false, false
	}
	if tok, found := tokenText(e.Tree, e.Idx, syntax.KindStringLiteral); found {
		return ops[0], tok, true, true
	}
	if tok, found := tokenText(e.Tree, e.Idx, syntax.KindIdentifier); found {
		return ops[0], tok, false, true
	}
	return ops[0], "", false, false
}

// IfClause returns the three operands of `if c then t else e`.
func (e Expr) IfClause() (cond, then, els Expr, ok bool) {
	ops := e.Operands()
	if len(ops) != 3 {
		return Expr{}, Expr{}, Expr{}, false
	}
	return ops[0], ops[1], ops[2], true
}

// LiteralToken returns the literal token kind and text of a
// LiteralExpr (`true`, `false`, an int, or a still-quoted string).
func (e Expr) LiteralToken() (syntax.Kind, string) {
	for _, c := range e.Tree.Children(e.Idx) {
		switch e.Tree.Kind(c) {
		case syntax.KindTrueKw, syntax.KindFalseKw, syntax.KindIntLiteral, syntax.KindStringLiteral:
			return e.Tree.Kind(c), e.Tree.Text(c)
		}
	}
	return syntax.KindUnknown, ""
}

// SlotName returns the `?ident` name of a SlotExpr.
func (e Expr) SlotName() string {
	txt, _ := tokenText(e.Tree, e.Idx, syntax.KindIdentifier)
	return txt
}

// AsName returns the NameExpr's wrapped qualified name.
func (e Expr) AsName() Name {
	return Name{node{e.Tree, e.Idx}}
}

// ParenInner returns a ParenExpr's sole inner expression.
func (e Expr) ParenInner() (Expr, bool) {
	ops := e.Operands()
	if len(ops) == 0 {
		return Expr{}, false
	}
	return ops[0], true
}

// ListElements returns a ListExpr's elements in order.
func (e Expr) ListElements() []Expr {
	return e.Operands()
}

// RecordEntries returns a RecordExpr's `key: value` entries.
func (e Expr) RecordEntries() []RecordEntry {
	var out []RecordEntry
	for _, c := range childrenOfKind(e.Tree, e.Idx, syntax.KindRecordEntry) {
		out = append(out, RecordEntry{node{e.Tree, c}})
	}
	return out
}

// RecordEntry wraps one `key: value` pair of a record literal.
type RecordEntry struct{ node }

// Key returns the entry's key text and whether it came from a string
// literal rather than an identifier.
func (r RecordEntry) Key() (text string, isString bool) {
	if tok, ok := tokenText(r.Tree, r.Idx, syntax.KindStringLiteral); ok {
		return tok, true
	}
	tok, _ := tokenText(r.Tree, r.Idx, syntax.KindIdentifier)
	return tok, false
}

// Value returns the entry's value expression.
func (r RecordEntry) Value() (Expr, bool) {
	ops := exprChildren(r.Tree, r.Idx)
	if len(ops) == 0 {
		return Expr{}, false
	}
	return Expr{node{r.Tree, ops[0]}}, true
}

// EntityRefName returns an EntityRefExpr's entity type name.
func (e Expr) EntityRefName() Name {
	n, _ := child(e.Tree, e.Idx, syntax.KindName)
	return Name{node{e.Tree, n}}
}

// EntityRefID returns the still-quoted string literal identifying an
// EntityRefExpr's entity, when the `Name::"id"` form was used.
func (e Expr) EntityRefID() (string, bool) {
	return tokenText(e.Tree, e.Idx, syntax.KindStringLiteral)
}

// FieldAccessClause returns the subject and attribute name of a
// `subject.attr` node; isString reports a string-literal attribute.
func (e Expr) FieldAccessClause() (subject Expr, attrToken string, isString bool) {
	ops := e.Operands()
	if len(ops) > 0 {
		subject = ops[0]
	}
	if tok, ok := tokenText(e.Tree, e.Idx, syntax.KindStringLiteral); ok {
		return subject, tok, true
	}
	tok, _ := tokenText(e.Tree, e.Idx, syntax.KindIdentifier)
	return subject, tok, false
}

// CallClause returns a CallExpr's receiver (nil for a bare
// function-style call), callee name, and argument list.
func (e Expr) CallClause() (receiver Expr, hasReceiver bool, callee string, args []Expr) {
	ops := e.Operands()
	if _, hasDot := child(e.Tree, e.Idx, syntax.KindDot); hasDot && len(ops) > 0 {
		receiver = ops[0]
		hasReceiver = true
	}
	callee, _ = tokenText(e.Tree, e.Idx, syntax.KindIdentifier)
	if list, ok := child(e.Tree, e.Idx, syntax.KindArgList); ok {
		for _, c := range exprChildren(e.Tree, list) {
			args = append(args, Expr{node{e.Tree, c}})
		}
	}
	return receiver, hasReceiver, callee, args
}

// IndexClause returns the subject and index expression of `subject[idx]`.
func (e Expr) IndexClause() (subject, index Expr, ok bool) {
	ops := e.Operands()
	if len(ops) != 2 {
		return Expr{}, Expr{}, false
	}
	return ops[0], ops[1], true
}
