package lower

import (
	"strconv"

	"github.com/cedarfront/cedarfront/pkg/ast"
	"github.com/cedarfront/cedarfront/pkg/cst"
	"github.com/cedarfront/cedarfront/pkg/diagnostic"
	"github.com/cedarfront/cedarfront/pkg/escape"
	"github.com/cedarfront/cedarfront/pkg/syntax"
)

// LowerPolicies lowers a parsed policy-set tree to a PolicySet. A
// policy that fails to lower — a missing effect, an invalid scope
// operator, a condition whose body doesn't lower — is dropped from the
// set entirely rather than producing a degraded entry; a malformed
// list or record element inside an otherwise-valid expression is
// skipped instead, leaving its siblings intact.
func LowerPolicies(tree *syntax.Tree, diags *diagnostic.Diagnostics) *ast.PolicySet {
	l := &lowerer{diags: diags}
	policies := cst.NewPolicies(tree)

	var out []*ast.Policy
	for _, p := range policies.Items() {
		if pol, ok := l.lowerPolicy(p); ok {
			out = append(out, pol)
		}
	}
	return &ast.PolicySet{Policies: out}
}

func (l *lowerer) lowerPolicy(p cst.Policy) (*ast.Policy, bool) {
	annotations := l.lowerAnnotations(p.Annotations())

	effectKind, ok := p.Effect()
	if !ok {
		start, end := p.Range()
		l.diags.Push(diagnostic.NewError("MissingEffect", "expected 'permit' or 'forbid'").
			WithPrimary(sp(start, end), "policy must start with an effect"))
		return nil, false
	}
	effect := ast.EffectPermit
	if effectKind == syntax.KindForbidKw {
		effect = ast.EffectForbid
	}

	principal := ast.ScopeConstraint{Kind: ast.ScopeAny}
	action := ast.ActionConstraint{Kind: ast.ActionAny}
	resource := ast.ScopeConstraint{Kind: ast.ScopeAny}
	failed := false

	if scope, hasScope := p.Scope(); hasScope {
		for i, def := range scope.VariableDefs() {
			name, hasName := variableKeyword(def)
			if !hasName {
				switch i {
				case 0:
					name = "principal"
				case 1:
					name = "action"
				case 2:
					name = "resource"
				}
			}
			switch name {
			case "principal":
				if c, ok := l.lowerScopeConstraint(def, "principal"); ok {
					principal = c
				} else {
					failed = true
				}
			case "action":
				if c, ok := l.lowerActionConstraint(def); ok {
					action = c
				} else {
					failed = true
				}
			case "resource":
				if c, ok := l.lowerScopeConstraint(def, "resource"); ok {
					resource = c
				} else {
					failed = true
				}
			case "context":
				start, end := def.Range()
				l.diags.Push(diagnostic.NewError("ContextInScope", "`context` is not a scope variable").
					WithPrimary(sp(start, end), "not valid in policy scope").
					WithNote("`context` can only be used in policy conditions, not in scope"))
			}
		}
	}

	if failed {
		return nil, false
	}

	var conditions []ast.Condition
	for _, c := range p.Conditions() {
		cond, ok := l.lowerCondition(c)
		if !ok {
			return nil, false
		}
		conditions = append(conditions, cond)
	}

	return &ast.Policy{
		Annotations: annotations,
		Effect:      effect,
		Principal:   principal,
		Action:      action,
		Resource:    resource,
		Conditions:  conditions,
	}, true
}

func variableKeyword(def cst.VariableDef) (string, bool) {
	i, ok := def.Tree.Child(def.Idx, syntax.KindIdentifier)
	if !ok {
		return "", false
	}
	return def.Tree.Text(i), true
}

func (l *lowerer) lowerScopeConstraint(def cst.VariableDef, varName string) (ast.ScopeConstraint, bool) {
	if name, in, hasIs := def.IsClause(); hasIs {
		kind, ok := l.lowerQualifiedName(name)
		if !ok {
			return ast.ScopeConstraint{}, false
		}
		if in.Tree != nil {
			ref, ok := l.lowerEntityOrSlot(in)
			if !ok {
				return ast.ScopeConstraint{}, false
			}
			return ast.ScopeConstraint{Kind: ast.ScopeIsIn, EntityType: kind, Ref: ref}, true
		}
		return ast.ScopeConstraint{Kind: ast.ScopeIs, EntityType: kind}, true
	}

	op, expr, hasOp := def.OpClause()
	if !hasOp {
		return ast.ScopeConstraint{Kind: ast.ScopeAny}, true
	}

	switch op {
	case syntax.KindEqEq, syntax.KindEquals:
		ref, ok := l.lowerEntityOrSlot(expr)
		if !ok {
			return ast.ScopeConstraint{}, false
		}
		return ast.ScopeConstraint{Kind: ast.ScopeEqual, Ref: ref}, true
	case syntax.KindInKw:
		ref, ok := l.lowerEntityOrSlot(expr)
		if !ok {
			return ast.ScopeConstraint{}, false
		}
		return ast.ScopeConstraint{Kind: ast.ScopeIn, Ref: ref}, true
	default:
		start, end := def.Range()
		l.diags.Push(diagnostic.NewError("InvalidScopeOperator", "invalid scope operator for `"+varName+"`").
			WithPrimary(sp(start, end), "expected '==', 'in', 'is', or 'is ... in'"))
		return ast.ScopeConstraint{}, false
	}
}

func (l *lowerer) lowerEntityOrSlot(e cst.Expr) (*ast.EntityRefOrSlot, bool) {
	switch e.Kind() {
	case syntax.KindSlotExpr:
		name := e.SlotName()
		if !validSlotNames[name] {
			start, end := e.Range()
			l.diags.Push(diagnostic.NewError("InvalidSlot", "invalid template slot `?"+name+"`").
				WithPrimary(sp(start, end), "expected '?principal' or '?resource'"))
			return nil, false
		}
		return &ast.EntityRefOrSlot{IsSlot: true, Slot: name}, true
	case syntax.KindEntityRefExpr:
		uid, ok := l.lowerEntityRef(e)
		if !ok {
			return nil, false
		}
		return &ast.EntityRefOrSlot{Entity: uid}, true
	default:
		start, end := e.Range()
		l.diags.Push(diagnostic.NewError("ExpectedEntityReference", "expected an entity reference or slot").
			WithPrimary(sp(start, end), "not an entity reference or slot"))
		return nil, false
	}
}

func (l *lowerer) lowerEntityRef(e cst.Expr) (ast.EntityUID, bool) {
	kind, ok := l.lowerQualifiedName(e.EntityRefName())
	if !ok {
		return ast.EntityUID{}, false
	}
	tok, ok := e.EntityRefID()
	if !ok {
		return ast.EntityUID{}, false
	}
	start, _, ok := childSpan(e.Tree, e.Idx, syntax.KindStringLiteral)
	if !ok {
		return ast.EntityUID{}, false
	}
	id, ok := l.lowerStringToken(tok, start)
	if !ok {
		return ast.EntityUID{}, false
	}
	return ast.EntityUID{Type: kind, ID: id}, true
}

func (l *lowerer) lowerActionConstraint(def cst.VariableDef) (ast.ActionConstraint, bool) {
	op, expr, hasOp := def.OpClause()
	if !hasOp {
		return ast.ActionConstraint{Kind: ast.ActionAny}, true
	}
	switch op {
	case syntax.KindEqEq, syntax.KindEquals:
		ref, ok := l.lowerActionEntityRef(expr)
		if !ok {
			return ast.ActionConstraint{}, false
		}
		return ast.ActionConstraint{Kind: ast.ActionEqual, Ref: &ast.EntityRefOrSlot{Entity: ref}}, true
	case syntax.KindInKw:
		return l.lowerActionInConstraint(expr)
	default:
		start, end := def.Range()
		l.diags.Push(diagnostic.NewError("InvalidScopeOperator", "invalid scope operator for `action`").
			WithPrimary(sp(start, end), "expected '==' or 'in'"))
		return ast.ActionConstraint{}, false
	}
}

func (l *lowerer) lowerActionEntityRef(e cst.Expr) (ast.EntityUID, bool) {
	if e.Kind() != syntax.KindEntityRefExpr {
		start, end := e.Range()
		l.diags.Push(diagnostic.NewError("ExpectedEntityReference", "expected an entity reference").
			WithPrimary(sp(start, end), "not an entity reference"))
		return ast.EntityUID{}, false
	}
	return l.lowerEntityRef(e)
}

func (l *lowerer) lowerActionInConstraint(expr cst.Expr) (ast.ActionConstraint, bool) {
	if expr.Kind() == syntax.KindListExpr {
		seen := map[ast.EntityUID]bool{}
		var list []ast.EntityUID
		for _, el := range expr.ListElements() {
			uid, ok := l.lowerActionEntityRef(el)
			if !ok {
				continue
			}
			if seen[uid] {
				start, end := el.Range()
				l.diags.Push(diagnostic.NewError("DuplicateActionRef", "duplicate action `"+uid.Type+"::\""+uid.ID+"\"`").
					WithPrimary(sp(start, end), "duplicate action"))
				return ast.ActionConstraint{}, false
			}
			seen[uid] = true
			list = append(list, uid)
		}
		if len(list) == 0 {
			start, end := expr.Range()
			l.diags.Push(diagnostic.NewError("EmptyActionList", "action `in` list must not be empty").
				WithPrimary(sp(start, end), "no valid actions"))
			return ast.ActionConstraint{}, false
		}
		return ast.ActionConstraint{Kind: ast.ActionIn, List: list}, true
	}
	uid, ok := l.lowerActionEntityRef(expr)
	if !ok {
		return ast.ActionConstraint{}, false
	}
	return ast.ActionConstraint{Kind: ast.ActionIn, List: []ast.EntityUID{uid}}, true
}

func (l *lowerer) lowerCondition(c cst.Condition) (ast.Condition, bool) {
	kind := ast.ConditionWhen
	if c.IsUnless() {
		kind = ast.ConditionUnless
	}
	body, ok := c.Body()
	if !ok {
		return ast.Condition{}, false
	}
	expr, ok := l.lowerExpr(body)
	if !ok {
		return ast.Condition{}, false
	}
	return ast.Condition{Kind: kind, Expr: expr}, true
}

// lowerExpr is the dispatch table for every expression-shaped CST
// node (§4.8 "Expression lowering").
func (l *lowerer) lowerExpr(e cst.Expr) (*ast.Expr, bool) {
	switch e.Kind() {
	case syntax.KindOrExpr:
		return l.lowerSimpleBinary(e, ast.ExprOr, func(b *ast.BinaryExpr) *ast.Expr { return &ast.Expr{Kind: ast.ExprOr, Or: b} })
	case syntax.KindAndExpr:
		return l.lowerSimpleBinary(e, ast.ExprAnd, func(b *ast.BinaryExpr) *ast.Expr { return &ast.Expr{Kind: ast.ExprAnd, And: b} })
	case syntax.KindMulExpr:
		return l.lowerSimpleBinary(e, ast.ExprMul, func(b *ast.BinaryExpr) *ast.Expr { return &ast.Expr{Kind: ast.ExprMul, Mul: b} })
	case syntax.KindRelExpr:
		return l.lowerRel(e)
	case syntax.KindAddExpr:
		return l.lowerAdd(e)
	case syntax.KindUnaryExpr:
		return l.lowerUnary(e)
	case syntax.KindIsExpr:
		return l.lowerIs(e)
	case syntax.KindLikeExpr:
		return l.lowerLike(e)
	case syntax.KindHasExpr:
		return l.lowerHas(e)
	case syntax.KindIfExpr:
		cond, then, els, ok := e.IfClause()
		if !ok {
			return nil, false
		}
		cv, ok := l.lowerExpr(cond)
		if !ok {
			return nil, false
		}
		tv, ok := l.lowerExpr(then)
		if !ok {
			return nil, false
		}
		ev, ok := l.lowerExpr(els)
		if !ok {
			return nil, false
		}
		return &ast.Expr{Kind: ast.ExprIf, If: &ast.IfExpr{Cond: cv, Then: tv, Else: ev}}, true
	case syntax.KindLiteralExpr:
		return l.lowerLiteral(e)
	case syntax.KindSlotExpr:
		name := e.SlotName()
		if !validSlotNames[name] {
			start, end := e.Range()
			l.diags.Push(diagnostic.NewError("InvalidSlot", "invalid template slot `?"+name+"`").
				WithPrimary(sp(start, end), "expected '?principal' or '?resource'"))
			return nil, false
		}
		return &ast.Expr{Kind: ast.ExprSlot, Slot: name}, true
	case syntax.KindNameExpr:
		return l.lowerNameExpr(e)
	case syntax.KindParenExpr:
		inner, ok := e.ParenInner()
		if !ok {
			return nil, false
		}
		return l.lowerExpr(inner)
	case syntax.KindListExpr:
		var elems []*ast.Expr
		for _, el := range e.ListElements() {
			if v, ok := l.lowerExpr(el); ok {
				elems = append(elems, v)
			}
		}
		return &ast.Expr{Kind: ast.ExprList, List: elems}, true
	case syntax.KindRecordExpr:
		return l.lowerRecord(e)
	case syntax.KindEntityRefExpr:
		uid, ok := l.lowerEntityRef(e)
		if !ok {
			return nil, false
		}
		return &ast.Expr{Kind: ast.ExprEntityRef, EntityRef: &uid}, true
	case syntax.KindFieldAccess:
		return l.lowerFieldAccess(e)
	case syntax.KindCallExpr:
		return l.lowerCall(e)
	case syntax.KindIndexExpr:
		start, end := e.Range()
		l.diags.Push(diagnostic.NewError("UnsupportedIndex", "indexing is not supported").
			WithPrimary(sp(start, end), "not supported").
			WithNote("use `has` and `.` instead"))
		return nil, false
	default:
		return nil, false
	}
}

func (l *lowerer) lowerSimpleBinary(e cst.Expr, kind ast.ExprKind, wrap func(*ast.BinaryExpr) *ast.Expr) (*ast.Expr, bool) {
	left, right, ok := e.BinaryOperands()
	if !ok {
		return nil, false
	}
	lv, ok := l.lowerExpr(left)
	if !ok {
		return nil, false
	}
	rv, ok := l.lowerExpr(right)
	if !ok {
		return nil, false
	}
	return wrap(&ast.BinaryExpr{Left: lv, Right: rv}), true
}

func (l *lowerer) lowerRel(e cst.Expr) (*ast.Expr, bool) {
	op, ok := e.RelOperator()
	if !ok {
		return nil, false
	}
	if op == syntax.KindEquals {
		start, end, hasSpan := childSpan(e.Tree, e.Idx, syntax.KindEquals)
		if !hasSpan {
			start, end = e.Range()
		}
		l.diags.Push(diagnostic.NewError("InvalidEquals", "use '==' to compare, not '='").
			WithPrimary(sp(start, end), "not a valid operator").
			WithFix(sp(start, end), "==", "use `==` for equality"))
		return nil, false
	}

	left, right, ok := e.BinaryOperands()
	if !ok {
		return nil, false
	}
	lv, ok := l.lowerExpr(left)
	if !ok {
		return nil, false
	}
	rv, ok := l.lowerExpr(right)
	if !ok {
		return nil, false
	}

	var relOp ast.RelOp
	switch op {
	case syntax.KindLt:
		relOp = ast.RelLt
	case syntax.KindLtEq:
		relOp = ast.RelLe
	case syntax.KindGt:
		relOp = ast.RelGt
	case syntax.KindGtEq:
		relOp = ast.RelGe
	case syntax.KindEqEq:
		relOp = ast.RelEq
	case syntax.KindNotEq:
		relOp = ast.RelNe
	case syntax.KindInKw:
		relOp = ast.RelIn
	}
	return &ast.Expr{Kind: ast.ExprRel, Rel: &ast.RelExpr{Op: relOp, Left: lv, Right: rv}}, true
}

func (l *lowerer) lowerAdd(e cst.Expr) (*ast.Expr, bool) {
	op, ok := e.AddOperator()
	if !ok {
		return nil, false
	}
	left, right, ok := e.BinaryOperands()
	if !ok {
		return nil, false
	}
	lv, ok := l.lowerExpr(left)
	if !ok {
		return nil, false
	}
	rv, ok := l.lowerExpr(right)
	if !ok {
		return nil, false
	}
	addOp := ast.AddPlus
	if op == syntax.KindMinus {
		addOp = ast.AddMinus
	}
	return &ast.Expr{Kind: ast.ExprAdd, Add: &ast.AddExpr{Op: addOp, Left: lv, Right: rv}}, true
}

// lowerUnary collapses a single `-` immediately wrapping an integer
// literal into a negative Literal directly, reparsing the combined
// text rather than negating an already-lowered value, so MinInt64
// round-trips (§4.8 "Negative literal collapse").
func (l *lowerer) lowerUnary(e cst.Expr) (*ast.Expr, bool) {
	op, operand, ok := e.UnaryOperator()
	if !ok {
		return nil, false
	}

	if op == syntax.KindMinus && operand.Kind() == syntax.KindLiteralExpr {
		if litKind, text := operand.LiteralToken(); litKind == syntax.KindIntLiteral {
			start, end := operand.Range()
			v, ok := l.parseIntLiteral("-"+text, start, end)
			if !ok {
				return nil, false
			}
			return &ast.Expr{Kind: ast.ExprLiteral, Literal: &ast.Literal{Kind: ast.LiteralInt, Int: v}}, true
		}
	}

	operandExpr, ok := l.lowerExpr(operand)
	if !ok {
		return nil, false
	}
	unaryOp := ast.UnaryNot
	if op == syntax.KindMinus {
		unaryOp = ast.UnaryNeg
	}
	return &ast.Expr{Kind: ast.ExprUnary, Unary: &ast.UnaryExpr{Op: unaryOp, Operand: operandExpr}}, true
}

func (l *lowerer) lowerIs(e cst.Expr) (*ast.Expr, bool) {
	subject, entityType, in, hasIn := e.IsClause()
	sv, ok := l.lowerExpr(subject)
	if !ok {
		return nil, false
	}
	kind, ok := l.lowerQualifiedName(entityType)
	if !ok {
		return nil, false
	}
	is := &ast.IsExpr{Subject: sv, EntityType: kind}
	if hasIn {
		iv, ok := l.lowerExpr(in)
		if !ok {
			return nil, false
		}
		is.In = iv
	}
	return &ast.Expr{Kind: ast.ExprIs, Is: is}, true
}

func (l *lowerer) lowerLike(e cst.Expr) (*ast.Expr, bool) {
	subject, patternTok, ok := e.LikeClause()
	if !ok {
		return nil, false
	}
	sv, ok := l.lowerExpr(subject)
	if !ok {
		return nil, false
	}
	start, _, ok := childSpan(e.Tree, e.Idx, syntax.KindStringLiteral)
	if !ok {
		return nil, false
	}
	elements, errs := escape.UnescapePattern(patternTok, start)
	if len(errs) > 0 {
		l.pushEscapeErrors(errs)
		return nil, false
	}
	return &ast.Expr{Kind: ast.ExprLike, Like: &ast.LikeExpr{Subject: sv, Pattern: elements}}, true
}

func (l *lowerer) lowerHas(e cst.Expr) (*ast.Expr, bool) {
	subject, attrTok, isString, ok := e.HasClause()
	if !ok {
		return nil, false
	}
	sv, ok := l.lowerExpr(subject)
	if !ok {
		return nil, false
	}
	attr := attrTok
	if isString {
		start, _, ok := childSpan(e.Tree, e.Idx, syntax.KindStringLiteral)
		if !ok {
			return nil, false
		}
		unescaped, ok := l.lowerStringToken(attrTok, start)
		if !ok {
			return nil, false
		}
		attr = unescaped
	}
	return &ast.Expr{Kind: ast.ExprHas, Has: &ast.HasExpr{Subject: sv, Attr: attr}}, true
}

func (l *lowerer) lowerLiteral(e cst.Expr) (*ast.Expr, bool) {
	kind, text := e.LiteralToken()
	switch kind {
	case syntax.KindTrueKw, syntax.KindFalseKw:
		return &ast.Expr{Kind: ast.ExprLiteral, Literal: &ast.Literal{Kind: ast.LiteralBool, Bool: kind == syntax.KindTrueKw}}, true
	case syntax.KindIntLiteral:
		start, end := e.Range()
		v, ok := l.parseIntLiteral(text, start, end)
		if !ok {
			return nil, false
		}
		return &ast.Expr{Kind: ast.ExprLiteral, Literal: &ast.Literal{Kind: ast.LiteralInt, Int: v}}, true
	case syntax.KindStringLiteral:
		start, _, _ := childSpan(e.Tree, e.Idx, syntax.KindStringLiteral)
		value, ok := l.lowerStringToken(text, start)
		if !ok {
			return nil, false
		}
		return &ast.Expr{Kind: ast.ExprLiteral, Literal: &ast.Literal{Kind: ast.LiteralString, Str: value}}, true
	default:
		return nil, false
	}
}

func (l *lowerer) lowerRecord(e cst.Expr) (*ast.Expr, bool) {
	seen := map[string]bool{}
	var out []ast.RecordEntry
	for _, entry := range e.RecordEntries() {
		keyTok, isString := entry.Key()
		key := keyTok
		if isString {
			start, _, ok := childSpan(entry.Tree, entry.Idx, syntax.KindStringLiteral)
			if !ok {
				continue
			}
			unescaped, ok := l.lowerStringToken(keyTok, start)
			if !ok {
				continue
			}
			key = unescaped
		}
		value, ok := entry.Value()
		if !ok {
			continue
		}
		v, ok := l.lowerExpr(value)
		if !ok {
			continue
		}
		if seen[key] {
			start, end := entry.Range()
			l.diags.Push(diagnostic.NewError("DuplicateRecordKey", "duplicate record key `"+key+"`").
				WithPrimary(sp(start, end), "duplicate key"))
			return nil, false
		}
		seen[key] = true
		out = append(out, ast.RecordEntry{Key: key, Value: v})
	}
	return &ast.Expr{Kind: ast.ExprRecord, Record: out}, true
}

func (l *lowerer) lowerFieldAccess(e cst.Expr) (*ast.Expr, bool) {
	subject, attrTok, isString := e.FieldAccessClause()
	sv, ok := l.lowerExpr(subject)
	if !ok {
		return nil, false
	}
	attr := attrTok
	if isString {
		start, _, ok := childSpan(e.Tree, e.Idx, syntax.KindStringLiteral)
		if !ok {
			return nil, false
		}
		unescaped, ok := l.lowerStringToken(attrTok, start)
		if !ok {
			return nil, false
		}
		attr = unescaped
	}
	return &ast.Expr{Kind: ast.ExprField, Field: &ast.FieldExpr{Subject: sv, Attr: attr}}, true
}

// lowerCall dispatches a CallExpr: a bare call is either a known
// extension function or UnknownFunction; a receiver call is one of the
// six fixed-arity built-in methods, an extension method, or
// UnknownMethod (§4.8 "Method and function dispatch").
func (l *lowerer) lowerCall(e cst.Expr) (*ast.Expr, bool) {
	receiver, hasReceiver, callee, args := e.CallClause()

	if !hasReceiver {
		if !extensionFunctions[callee] {
			start, end, ok := childSpan(e.Tree, e.Idx, syntax.KindIdentifier)
			if !ok {
				start, end = e.Range()
			}
			l.diags.Push(diagnostic.NewError("UnknownFunction", "`"+callee+"` is not a known function").
				WithPrimary(sp(start, end), "unknown function"))
			return nil, false
		}
		loweredArgs, ok := l.lowerArgs(args)
		if !ok {
			return nil, false
		}
		return &ast.Expr{Kind: ast.ExprExtensionCall, ExtensionCall: &ast.ExtensionCallExpr{Name: callee, Args: loweredArgs}}, true
	}

	rv, ok := l.lowerExpr(receiver)
	if !ok {
		return nil, false
	}

	if arity, isBuiltin := builtinMethodArity[callee]; isBuiltin {
		if len(args) != arity {
			start, end := e.Range()
			l.diags.Push(diagnostic.NewError("WrongArgumentCount",
				"`"+callee+"` expects "+strconv.Itoa(arity)+" argument(s), found "+strconv.Itoa(len(args))).
				WithPrimary(sp(start, end), "expected "+strconv.Itoa(arity)+" argument(s)"))
			return nil, false
		}
		loweredArgs, ok := l.lowerArgs(args)
		if !ok {
			return nil, false
		}
		return &ast.Expr{Kind: ast.ExprMethodCall, MethodCall: &ast.MethodCallExpr{Method: callee, Receiver: rv, Args: loweredArgs}}, true
	}

	if extensionFunctions[callee] {
		loweredArgs, ok := l.lowerArgs(args)
		if !ok {
			return nil, false
		}
		return &ast.Expr{Kind: ast.ExprExtensionCall, ExtensionCall: &ast.ExtensionCallExpr{Name: callee, Receiver: rv, Args: loweredArgs}}, true
	}

	start, end, ok := childSpan(e.Tree, e.Idx, syntax.KindIdentifier)
	if !ok {
		start, end = e.Range()
	}
	l.diags.Push(diagnostic.NewError("UnknownMethod", "unknown method `"+callee+"`").
		WithPrimary(sp(start, end), "unknown method"))
	return nil, false
}

func (l *lowerer) lowerArgs(args []cst.Expr) ([]*ast.Expr, bool) {
	out := make([]*ast.Expr, 0, len(args))
	for _, a := range args {
		v, ok := l.lowerExpr(a)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

func (l *lowerer) lowerNameExpr(e cst.Expr) (*ast.Expr, bool) {
	name := e.AsName()
	segs := name.Segments()
	if len(segs) == 1 {
		switch segs[0] {
		case "principal":
			return &ast.Expr{Kind: ast.ExprVariable, Variable: ast.VarPrincipal}, true
		case "action":
			return &ast.Expr{Kind: ast.ExprVariable, Variable: ast.VarAction}, true
		case "resource":
			return &ast.Expr{Kind: ast.ExprVariable, Variable: ast.VarResource}, true
		case "context":
			return &ast.Expr{Kind: ast.ExprVariable, Variable: ast.VarContext}, true
		}
	}
	start, end := name.Range()
	l.diags.Push(diagnostic.NewError("UnknownVariable", "unknown variable `"+name.Text()+"`").
		WithPrimary(sp(start, end), "not a valid variable").
		WithNote("`principal`, `action`, `resource`, and `context` are the only variables"))
	return nil, false
}
