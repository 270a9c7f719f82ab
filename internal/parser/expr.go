package parser

import (
	"github.com/cedarfront/cedarfront/pkg/diagnostic"
	"github.com/cedarfront/cedarfront/pkg/syntax"
)

// bindingPower is one row of the Pratt precedence table (§4.6): the
// left/right binding powers of an infix operator and the CST group
// kind its application produces.
type bindingPower struct {
	left, right int
	kind        syntax.Kind
}

// infixTable encodes the binding-power lattice from §4.6. `is`, `has`,
// and `like` share the comparison tier with the relational/`in`/`=`
// operators but each parses a different right-hand production, so they
// get their own case in the operator loop below rather than a uniform
// "parse another expr" step.
var infixTable = map[syntax.Kind]bindingPower{
	syntax.KindOrOr:    {1, 2, syntax.KindOrExpr},
	syntax.KindAndAnd:  {3, 4, syntax.KindAndExpr},
	syntax.KindLt:      {5, 6, syntax.KindRelExpr},
	syntax.KindLtEq:    {5, 6, syntax.KindRelExpr},
	syntax.KindGt:      {5, 6, syntax.KindRelExpr},
	syntax.KindGtEq:    {5, 6, syntax.KindRelExpr},
	syntax.KindEqEq:    {5, 6, syntax.KindRelExpr},
	syntax.KindNotEq:   {5, 6, syntax.KindRelExpr},
	syntax.KindInKw:    {5, 6, syntax.KindRelExpr},
	syntax.KindEquals:  {5, 6, syntax.KindRelExpr},
	syntax.KindHasKw:   {5, 6, syntax.KindHasExpr},
	syntax.KindLikeKw:  {5, 6, syntax.KindLikeExpr},
	syntax.KindIsKw:    {5, 6, syntax.KindIsExpr},
	syntax.KindPlus:    {7, 8, syntax.KindAddExpr},
	syntax.KindMinus:   {7, 8, syntax.KindAddExpr},
	syntax.KindStar:    {9, 10, syntax.KindMulExpr},
}

// parseExpr parses an expression whose outermost operator binds at
// least minBp, using Builder.Checkpoint/Commit to build left-associative
// trees without knowing an operator chain's shape in advance (§4.5,
// §9 "Left-recursive grouping"). Recursion is bounded by exprDepth so a
// pathologically nested input reports a diagnostic instead of
// overflowing the Go stack (§4.6 "Depth limit").
func (p *parser) parseExpr(minBp int) {
	p.exprDepth++
	defer func() { p.exprDepth-- }()

	if p.exprDepth > maxExprDepth {
		p.diags.Push(diagnostic.NewError("ExpressionTooDeep", "expression is nested too deeply").
			WithPrimary(p.hereSpan(), "exceeds the maximum expression depth"))
		p.parseMissingExpr()
		return
	}

	cp := p.b.Checkpoint()
	p.parseUnary(0)

	for {
		bp, ok := infixTable[p.peek()]
		if !ok || bp.left < minBp {
			return
		}

		switch p.peek() {
		case syntax.KindHasKw:
			p.bump()
			if p.at(syntax.KindIdentifier) || p.at(syntax.KindStringLiteral) {
				p.bump()
			} else {
				p.diags.Push(diagnostic.NewError("ExpectedAttributeName", "expected an attribute name").
					WithPrimary(p.hereSpan(), "expected an identifier or string here"))
			}
			p.b.Commit(cp, bp.kind)

		case syntax.KindLikeKw:
			p.bump()
			p.expect(syntax.KindStringLiteral)
			p.b.Commit(cp, bp.kind)

		case syntax.KindIsKw:
			p.bump()
			p.parseQualifiedNameGroup()
			if p.at(syntax.KindInKw) {
				p.bump()
				p.parseExpr(bp.right)
			}
			p.b.Commit(cp, bp.kind)

		case syntax.KindEquals:
			start := p.hereSpan().Start
			p.bump()
			span := diagnostic.Span{Start: start, End: p.b.Len()}
			p.diags.Push(diagnostic.NewError("InvalidEquals", "use '==' to compare, not '='").
				WithPrimary(span, "single '=' is not a comparison operator").
				WithFix(span, "==", "replace '=' with '=='"))
			p.parseExpr(bp.right)
			p.b.Commit(cp, bp.kind)

		default:
			p.bump()
			p.parseExpr(bp.right)
			p.b.Commit(cp, bp.kind)
		}
	}
}

// parseUnary parses a (possibly empty) chain of prefix `!`/`-`
// operators around a primary/postfix chain. depth tracks how many
// unary operators have already been consumed in this chain so a
// pathological `!!!!!x` reports UnaryOpLimit once instead of recursing
// without bound (§4.6).
func (p *parser) parseUnary(depth int) {
	switch p.peek() {
	case syntax.KindBang, syntax.KindMinus:
		if depth >= maxUnaryChain {
			p.diags.Push(diagnostic.NewError("UnaryOpLimit", "too many chained unary operators").
				WithPrimary(p.hereSpan(), "unary operator chain exceeds the limit"))
			p.parsePrimaryChain()
			return
		}
		cp := p.b.Checkpoint()
		p.bump()
		p.parseUnary(depth + 1)
		p.b.Commit(cp, syntax.KindUnaryExpr)
	default:
		p.parsePrimaryChain()
	}
}

// parsePrimaryChain parses a primary expression followed by zero or
// more postfix member-chain operations: `.ident`, `.ident(args)`,
// bare `(args)` on a Name, and `[expr]` (§4.6 "Member chain").
func (p *parser) parsePrimaryChain() {
	cp := p.b.Checkpoint()
	p.parsePrimary()

	for {
		switch {
		case p.at(syntax.KindDot):
			p.bump()
			if p.at(syntax.KindIdentifier) || p.at(syntax.KindStringLiteral) {
				p.bump()
			} else {
				p.diags.Push(diagnostic.NewError("ExpectedAttributeName", "expected an attribute or method name").
					WithPrimary(p.hereSpan(), "expected an identifier or string here"))
			}
			if p.at(syntax.KindLParen) {
				p.parseArgList()
				p.b.Commit(cp, syntax.KindCallExpr)
			} else {
				p.b.Commit(cp, syntax.KindFieldAccess)
			}

		case p.at(syntax.KindLBracket):
			p.bump()
			p.parseExpr(0)
			p.expect(syntax.KindRBracket)
			p.b.Commit(cp, syntax.KindIndexExpr)

		default:
			return
		}
	}
}

// parsePrimary parses one atomic expression: a literal, slot,
// parenthesized expression, list, record, `if`, or a Name that may
// turn out to be a bare NameExpr, a function-style call, or an entity
// reference (§4.6 "Primary").
func (p *parser) parsePrimary() {
	switch {
	case p.at(syntax.KindIntLiteral), p.at(syntax.KindStringLiteral),
		p.at(syntax.KindTrueKw), p.at(syntax.KindFalseKw):
		lit := p.b.Open(syntax.KindLiteralExpr)
		p.bump()
		p.b.Close(lit)

	case p.at(syntax.KindQuestion):
		slot := p.b.Open(syntax.KindSlotExpr)
		p.bump()
		p.expect(syntax.KindIdentifier)
		p.b.Close(slot)

	case p.at(syntax.KindLParen):
		paren := p.b.Open(syntax.KindParenExpr)
		p.bump()
		p.parseExpr(0)
		p.expect(syntax.KindRParen)
		p.b.Close(paren)

	case p.at(syntax.KindLBracket):
		list := p.b.Open(syntax.KindListExpr)
		p.bump()
		for !p.at(syntax.KindRBracket) && p.peek() != syntax.KindEOF {
			p.parseExpr(0)
			if p.at(syntax.KindComma) {
				p.bump()
				continue
			}
			break
		}
		p.expect(syntax.KindRBracket)
		p.b.Close(list)

	case p.at(syntax.KindLBrace):
		p.parseRecordExpr()

	case p.at(syntax.KindIfKw):
		p.parseIfExpr()

	case p.at(syntax.KindIdentifier):
		p.parseNameOrCall()

	default:
		p.parseMissingExpr()
	}
}

// parseMissingExpr records an ExpectedExpression diagnostic and
// appends a zero-width error node in place of the expression, without
// consuming the offending token — callers further up (record/list/
// argument-list loops, recoverUntil) decide what to do with it.
func (p *parser) parseMissingExpr() {
	g := p.b.Open(syntax.KindErrorGroup)
	p.b.Close(g)
	p.diags.Push(diagnostic.NewError("MissingExpression", "expected an expression").
		WithPrimary(p.hereSpan(), "expected an expression here"))
}

// parseIfExpr parses `if cond then then_ else else_`. If `then` or
// `else` is missing, parsing of the corresponding branch (and
// anything past it) is abandoned rather than speculatively continued,
// so a truncated `if` produces exactly one diagnostic instead of a
// cascade.
func (p *parser) parseIfExpr() {
	ifn := p.b.Open(syntax.KindIfExpr)
	p.bump() // 'if'
	p.parseExpr(0)
	if !p.expectKeyword(syntax.KindThenKw, "ExpectedThen", "expected 'then'") {
		p.b.Close(ifn)
		return
	}
	p.parseExpr(0)
	if !p.expectKeyword(syntax.KindElseKw, "ExpectedElse", "expected 'else'") {
		p.b.Close(ifn)
		return
	}
	p.parseExpr(0)
	p.b.Close(ifn)
}

// parseRecordExpr parses `{ key: expr, ... }`.
func (p *parser) parseRecordExpr() {
	rec := p.b.Open(syntax.KindRecordExpr)
	p.bump() // '{'
	for !p.at(syntax.KindRBrace) && p.peek() != syntax.KindEOF {
		entry := p.b.Open(syntax.KindRecordEntry)
		if p.at(syntax.KindIdentifier) || p.at(syntax.KindStringLiteral) {
			p.bump()
		} else {
			p.expect(syntax.KindIdentifier)
		}
		p.expect(syntax.KindColon)
		p.parseExpr(0)
		p.b.Close(entry)
		if p.at(syntax.KindComma) {
			p.bump()
			continue
		}
		break
	}
	if !p.at(syntax.KindRBrace) {
		p.recoverUntil(append(recordAnchors, topAnchors...)...)
	}
	p.expect(syntax.KindRBrace)
	p.b.Close(rec)
}

// parseArgList parses `( expr, ... )`.
func (p *parser) parseArgList() {
	args := p.b.Open(syntax.KindArgList)
	p.bump() // '('
	for !p.at(syntax.KindRParen) && p.peek() != syntax.KindEOF {
		p.parseExpr(0)
		if p.at(syntax.KindComma) {
			p.bump()
			continue
		}
		break
	}
	p.expect(syntax.KindRParen)
	p.b.Close(args)
}

// parseNameOrCall parses a qualified name and, depending on what
// follows, commits it as a bare NameExpr, a function-style CallExpr
// (no receiver — the CST distinguishes this from a member-chain call
// by the absence of a Dot child, §4.8), or an EntityRefExpr
// (`Type::"id"`). A NameExpr's identifier/`::` tokens are its own
// direct children (no nested Name wrapper, matching cst.Expr.AsName);
// an EntityRefExpr wraps its type name in a nested Name node (matching
// cst.Expr.EntityRefName), built retroactively with a second
// checkpoint taken at the same position.
func (p *parser) parseNameOrCall() {
	cp := p.b.Checkpoint()
	cpName := p.b.Checkpoint()

	p.bump() // first identifier
	for p.at(syntax.KindColonColon) && p.peekAt(1) == syntax.KindIdentifier {
		p.bump()
		p.bump()
	}

	switch {
	case p.at(syntax.KindColonColon) && p.peekAt(1) == syntax.KindStringLiteral:
		p.b.Commit(cpName, syntax.KindName)
		p.bump() // '::'
		p.bump() // string literal
		p.b.Commit(cp, syntax.KindEntityRefExpr)

	case p.at(syntax.KindLParen):
		p.parseArgList()
		p.b.Commit(cp, syntax.KindCallExpr)

	default:
		p.b.Commit(cp, syntax.KindNameExpr)
	}
}
