package parser

import (
	"github.com/cedarfront/cedarfront/pkg/diagnostic"
	"github.com/cedarfront/cedarfront/pkg/syntax"
)

// topAnchors is the recovery anchor set at policy-list scope (§4.6):
// an unparsable run is skipped up to the next thing that could start a
// new policy, or annotation list, or EOF.
var topAnchors = []syntax.Kind{syntax.KindAt, syntax.KindPermitKw, syntax.KindForbidKw, syntax.KindEOF}

// scopeAnchors is the recovery anchor set inside a policy's `( … )`.
var scopeAnchors = []syntax.Kind{syntax.KindRParen, syntax.KindComma}

// recordAnchors is the recovery anchor set inside a `{ … }` record literal.
var recordAnchors = []syntax.Kind{syntax.KindRBrace, syntax.KindComma}

// conditionAnchors is the recovery anchor set inside a `when`/`unless` body.
var conditionAnchors = []syntax.Kind{syntax.KindRBrace}

// ParsePolicies parses a Cedar policy set (§4.6). Parsing always
// succeeds structurally; malformed input is wrapped in error nodes and
// reported through the returned Diagnostics.
func ParsePolicies(source string) (*syntax.Tree, *diagnostic.Diagnostics) {
	p := newParser(source)
	root := p.b.Open(syntax.KindPolicySet)
	p.primeLeadingTrivia()

	for p.peek() != syntax.KindEOF {
		p.parsePolicy()
	}
	p.drainTrailingTrivia()
	p.b.Close(root)
	return p.b.Build(root), p.diags
}

func (p *parser) parsePolicy() {
	if !p.atAnchor([]syntax.Kind{syntax.KindAt, syntax.KindPermitKw, syntax.KindForbidKw}) {
		p.recoverUntil(topAnchors...)
		return
	}
	pol := p.b.Open(syntax.KindPolicy)
	p.parseAnnotationList()
	p.parseEffect()
	p.parseScope()
	for p.atSoftKeyword("when") || p.at(syntax.KindWhenKw) || p.at(syntax.KindUnlessKw) {
		p.parseCondition()
	}
	p.expectSemicolon()
	p.b.Close(pol)
}

func (p *parser) parseAnnotationList() {
	if !p.at(syntax.KindAt) {
		return
	}
	list := p.b.Open(syntax.KindAnnotationList)
	for p.at(syntax.KindAt) {
		ann := p.b.Open(syntax.KindAnnotation)
		p.bump() // '@'
		p.expect(syntax.KindIdentifier)
		if p.at(syntax.KindLParen) {
			p.bump()
			p.expect(syntax.KindStringLiteral)
			p.expect(syntax.KindRParen)
		} else {
			p.diags.Push(diagnostic.NewError("MalformedAnnotation", "annotation is missing its ('value') clause").
				WithPrimary(p.hereSpan(), "expected '(' here"))
		}
		p.b.Close(ann)
	}
	p.b.Close(list)
}

func (p *parser) parseEffect() {
	switch p.peek() {
	case syntax.KindPermitKw, syntax.KindForbidKw:
		p.bump()
	default:
		p.diags.Push(diagnostic.NewError("MissingEffect", "expected 'permit' or 'forbid'").
			WithPrimary(p.hereSpan(), "policy must start with an effect"))
	}
}

func (p *parser) parseScope() {
	scope := p.b.Open(syntax.KindScope)
	if !p.expect(syntax.KindLParen) {
		p.recoverUntil(append(scopeAnchors, topAnchors...)...)
		p.b.Close(scope)
		return
	}
	for i := 0; i < 3 && !p.at(syntax.KindRParen) && p.peek() != syntax.KindEOF; i++ {
		p.parseVariableDef()
		if p.at(syntax.KindComma) {
			p.bump()
		} else {
			break
		}
	}
	if !p.at(syntax.KindRParen) {
		p.recoverUntil(append([]syntax.Kind{syntax.KindRParen}, topAnchors...)...)
	}
	p.expect(syntax.KindRParen)
	p.b.Close(scope)
}

func (p *parser) parseVariableDef() {
	def := p.b.Open(syntax.KindVariableDef)
	if p.at(syntax.KindQuestion) {
		p.parseSlot()
		p.b.Close(def)
		return
	}
	if !p.expect(syntax.KindIdentifier) {
		p.recoverUntil(append(scopeAnchors, topAnchors...)...)
		p.b.Close(def)
		return
	}
	switch {
	case p.at(syntax.KindIsKw):
		p.bump()
		p.parseQualifiedNameGroup()
		if p.at(syntax.KindInKw) {
			p.bump()
			p.parseExpr(0)
		}
	case p.at(syntax.KindEqEq), p.at(syntax.KindInKw):
		p.bump()
		p.parseExpr(0)
	case p.at(syntax.KindEquals):
		start := p.hereSpan().Start
		p.bump()
		span := diagnostic.Span{Start: start, End: p.b.Len()}
		p.diags.Push(diagnostic.NewError("InvalidEquals", "use '==' to compare, not '='").
			WithPrimary(span, "single '=' is not a comparison operator").
			WithFix(span, "==", "replace '=' with '=='"))
		p.parseExpr(0)
	default:
		// bare `principal`/`action`/`resource` with no constraint — valid.
	}
	p.b.Close(def)
}

func (p *parser) parseSlot() {
	slot := p.b.Open(syntax.KindSlotNode)
	p.bump() // '?'
	p.expect(syntax.KindIdentifier)
	p.b.Close(slot)
}

func (p *parser) parseCondition() {
	cond := p.b.Open(syntax.KindCondition)
	p.bump() // when/unless
	if p.expect(syntax.KindLBrace) {
		p.parseExpr(0)
		if !p.at(syntax.KindRBrace) {
			p.recoverUntil(conditionAnchors...)
		}
		p.expect(syntax.KindRBrace)
	}
	p.b.Close(cond)
}

// parseQualifiedNameGroup parses `ident ("::" ident)*` as a standalone
// KindName node — used wherever the grammar expects a bounded Name
// production rather than an expression-position name that might turn
// out to be an entity reference or a call.
func (p *parser) parseQualifiedNameGroup() {
	n := p.b.Open(syntax.KindName)
	p.expect(syntax.KindIdentifier)
	for p.at(syntax.KindColonColon) && p.peekAt(1) == syntax.KindIdentifier {
		p.bump()
		p.bump()
	}
	p.b.Close(n)
}
