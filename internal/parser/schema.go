package parser

import (
	"github.com/cedarfront/cedarfront/pkg/diagnostic"
	"github.com/cedarfront/cedarfront/pkg/syntax"
)

// schemaTopAnchors is the recovery anchor set at schema top level and
// inside a namespace body (§4.7): an unparsable run is skipped up to
// the next thing that could start a declaration, or EOF. The soft
// declaration keywords lex as identifiers, so parseSchemaDecl also
// stops at any position where atSchemaDeclStart holds.
var schemaTopAnchors = []syntax.Kind{syntax.KindAt, syntax.KindEOF}

var schemaDeclWords = []string{
	syntax.SoftEntity, syntax.SoftAction, syntax.SoftType, syntax.SoftNamespace,
}

// atSchemaDeclStart reports whether the parser is sitting on '@' or one
// of the soft declaration keywords.
func (p *parser) atSchemaDeclStart() bool {
	if p.at(syntax.KindAt) {
		return true
	}
	if !p.at(syntax.KindIdentifier) {
		return false
	}
	text := p.peekText()
	for _, w := range schemaDeclWords {
		if text == w {
			return true
		}
	}
	return false
}

// ParseSchema parses a Cedar schema source file (§4.7). Like
// ParsePolicies, parsing always succeeds structurally.
func ParseSchema(source string) (*syntax.Tree, *diagnostic.Diagnostics) {
	p := newParser(source)
	root := p.b.Open(syntax.KindSchemaFile)
	p.primeLeadingTrivia()

	for p.peek() != syntax.KindEOF {
		p.parseSchemaDecl()
	}
	p.drainTrailingTrivia()
	p.b.Close(root)
	return p.b.Build(root), p.diags
}

// parseSchemaDecl parses one top-level or namespace-body declaration:
// an entity, action, type, or nested namespace, each optionally
// preceded by an annotation list. extraAnchors lets a namespace body
// add its closing '}' to the recovery anchor set without the top
// level (which has no enclosing brace) treating a stray '}' as a
// no-op anchor and looping forever.
func (p *parser) parseSchemaDecl(extraAnchors ...syntax.Kind) {
	if !p.atSchemaDeclStart() {
		anchors := append(append([]syntax.Kind{}, schemaTopAnchors...), extraAnchors...)
		start := p.hereSpan().Start
		g := p.b.Open(syntax.KindErrorGroup)
		for !p.atSchemaDeclStart() && !p.atAnchor(anchors) && p.peek() != syntax.KindEOF {
			p.bump()
		}
		end := p.b.Len()
		p.b.Close(g)
		p.diags.Push(diagnostic.NewError("UnexpectedToken", "unexpected input was skipped while recovering").
			WithPrimary(diagnostic.Span{Start: start, End: end}, "could not be parsed here"))
		return
	}

	cp := p.b.Checkpoint()
	p.parseAnnotationList()

	switch {
	case p.atSoftKeyword(syntax.SoftEntity):
		p.parseEntityDeclBody()
		p.b.Commit(cp, syntax.KindEntityDecl)

	case p.atSoftKeyword(syntax.SoftAction):
		p.parseActionDeclBody()
		p.b.Commit(cp, syntax.KindActionDecl)

	case p.atSoftKeyword(syntax.SoftType):
		p.parseTypeDeclBody()
		p.b.Commit(cp, syntax.KindTypeDecl)

	case p.atSoftKeyword(syntax.SoftNamespace):
		p.parseNamespaceBody()
		p.b.Commit(cp, syntax.KindNamespace)

	default:
		p.diags.Push(diagnostic.NewError("MissingDeclaration", "expected 'entity', 'action', 'type', or 'namespace'").
			WithPrimary(p.hereSpan(), "expected a declaration here"))
		p.b.Commit(cp, syntax.KindErrorGroup)
	}
}

func (p *parser) parseNamespaceBody() {
	p.bump() // 'namespace'
	p.parseQualifiedNameGroup()
	if !p.expect(syntax.KindLBrace) {
		return
	}
	for !p.at(syntax.KindRBrace) && p.peek() != syntax.KindEOF {
		p.parseSchemaDecl(syntax.KindRBrace)
	}
	p.expect(syntax.KindRBrace)
}

// parseEntityDeclBody parses `entity NameList [in TypeList] ([= {attrs}]
// [tags TypeExpr] | enum [strings])? ;`.
func (p *parser) parseEntityDeclBody() {
	p.bump() // 'entity'
	p.parseEntityNameList()
	if p.at(syntax.KindInKw) {
		p.bump()
		p.parseTypeRefList()
	}
	switch {
	case p.at(syntax.KindEquals):
		p.bump()
		p.parseAttributeBody(syntax.KindRecordType)
		if p.atSoftKeyword(syntax.SoftTags) {
			p.bump()
			p.parseTypeExpr()
		}
	case p.atSoftKeyword(syntax.SoftTags):
		p.bump()
		p.parseTypeExpr()
	case p.atSoftKeyword(syntax.SoftEnum):
		p.parseEnumBody()
	}
	p.expectSemicolon()
}

// parseActionDeclBody parses `action ActionNameList [in (Name |
// [Name,…])] [appliesTo {…}] [attributes {…}] ;`.
func (p *parser) parseActionDeclBody() {
	p.bump() // 'action'
	p.parseActionNameList()
	if p.at(syntax.KindInKw) {
		p.bump()
		p.parseActionParents()
	}
	if p.atSoftKeyword(syntax.SoftAppliesTo) {
		p.parseAppliesTo()
	}
	if p.atSoftKeyword(syntax.SoftAttributes) {
		p.bump()
		p.parseAttributeBody(syntax.KindAttributeList)
	}
	p.expectSemicolon()
}

// parseTypeDeclBody parses `type Name = TypeExpr ;`.
func (p *parser) parseTypeDeclBody() {
	p.bump() // 'type'
	p.expect(syntax.KindIdentifier)
	p.expect(syntax.KindEquals)
	p.parseTypeExpr()
	p.expectSemicolon()
}

// parseEntityNameList parses a comma-separated list of (possibly
// qualified, rejected later at lowering — §4.9 QualifiedEntityName)
// entity type names.
func (p *parser) parseEntityNameList() {
	list := p.b.Open(syntax.KindNameList)
	for p.at(syntax.KindIdentifier) && !p.atSoftKeyword(syntax.SoftTags) && !p.atSoftKeyword(syntax.SoftEnum) {
		p.parseQualifiedNameGroup()
		if p.at(syntax.KindComma) {
			p.bump()
			continue
		}
		break
	}
	p.b.Close(list)
}

// parseActionNameList parses a comma-separated list of action names,
// each an identifier or (more commonly) a string literal.
func (p *parser) parseActionNameList() {
	list := p.b.Open(syntax.KindNameList)
	for p.at(syntax.KindIdentifier) || p.at(syntax.KindStringLiteral) {
		p.bump()
		if p.at(syntax.KindComma) {
			p.bump()
			continue
		}
		break
	}
	p.b.Close(list)
}

// parseActionParents parses the `in (Name | [Name,…])` parent clause.
func (p *parser) parseActionParents() {
	list := p.b.Open(syntax.KindActionParents)
	if p.at(syntax.KindLBracket) {
		p.bump()
		for !p.at(syntax.KindRBracket) && p.peek() != syntax.KindEOF {
			if p.at(syntax.KindIdentifier) || p.at(syntax.KindStringLiteral) {
				p.bump()
			} else {
				break
			}
			if p.at(syntax.KindComma) {
				p.bump()
				continue
			}
			break
		}
		p.expect(syntax.KindRBracket)
	} else if p.at(syntax.KindIdentifier) || p.at(syntax.KindStringLiteral) {
		p.bump()
	} else {
		p.diags.Push(diagnostic.NewError("ExpectedActionName", "expected an action name").
			WithPrimary(p.hereSpan(), "expected a name or '[' here"))
	}
	p.b.Close(list)
}

// parseTypeRefList parses the `in TypeList` clause, which accepts
// either a single entity type name or a bracketed, comma-separated
// list of them.
func (p *parser) parseTypeRefList() {
	list := p.b.Open(syntax.KindTypeList)
	switch {
	case p.at(syntax.KindLBracket):
		p.bump()
		for !p.at(syntax.KindRBracket) && p.peek() != syntax.KindEOF {
			p.parseQualifiedNameGroup()
			if p.at(syntax.KindComma) {
				p.bump()
				continue
			}
			break
		}
		p.expect(syntax.KindRBracket)
	case p.at(syntax.KindIdentifier):
		p.parseQualifiedNameGroup()
	default:
		p.diags.Push(diagnostic.NewError("ExpectedTypeName", "expected an entity type name").
			WithPrimary(p.hereSpan(), "expected a name or '[' here"))
	}
	p.b.Close(list)
}

// parseAppliesTo parses `appliesTo { principal: TypeList, resource:
// TypeList, context: TypeExpr }`; the three labelled clauses may
// appear in any order, matching how cst.AppliesTo looks each one up
// by label rather than by position.
func (p *parser) parseAppliesTo() {
	ap := p.b.Open(syntax.KindAppliesTo)
	p.bump() // 'appliesTo'
	if !p.expect(syntax.KindLBrace) {
		p.b.Close(ap)
		return
	}
	for !p.at(syntax.KindRBrace) && p.peek() != syntax.KindEOF {
		switch {
		case p.atSoftKeyword(syntax.SoftPrincipal):
			p.bump()
			p.expect(syntax.KindColon)
			p.parseTypeRefList()
		case p.atSoftKeyword(syntax.SoftResource):
			p.bump()
			p.expect(syntax.KindColon)
			p.parseTypeRefList()
		case p.atSoftKeyword(syntax.SoftContext):
			p.bump()
			p.expect(syntax.KindColon)
			p.parseTypeExpr()
		default:
			p.recoverUntil(syntax.KindComma, syntax.KindRBrace)
		}
		if p.at(syntax.KindComma) {
			p.bump()
			continue
		}
		break
	}
	p.expect(syntax.KindRBrace)
	p.b.Close(ap)
}

// parseAttributeBody parses `{ [annotations] name[?]: TypeExpr, ... }`
// under the given wrapper kind — KindRecordType for an entity's `=
// {...}` shape or an inline record TypeExpr, KindAttributeList for an
// action's `attributes {...}` clause (§4.7, §4.9).
func (p *parser) parseAttributeBody(kind syntax.Kind) {
	rec := p.b.Open(kind)
	if !p.expect(syntax.KindLBrace) {
		p.b.Close(rec)
		return
	}
	for !p.at(syntax.KindRBrace) && p.peek() != syntax.KindEOF {
		p.parseAttribute()
		if p.at(syntax.KindComma) {
			p.bump()
			continue
		}
		break
	}
	p.expect(syntax.KindRBrace)
	p.b.Close(rec)
}

// parseAttribute parses `[annotations] name[?]: TypeExpr`.
func (p *parser) parseAttribute() {
	attr := p.b.Open(syntax.KindAttribute)
	p.parseAnnotationList()
	if p.at(syntax.KindIdentifier) || p.at(syntax.KindStringLiteral) {
		p.bump()
	} else {
		p.expect(syntax.KindIdentifier)
	}
	if p.at(syntax.KindQuestion) {
		p.bump()
	}
	p.expect(syntax.KindColon)
	p.parseTypeExpr()
	p.b.Close(attr)
}

// parseTypeExpr parses `Set<TypeExpr>`, `enum [...]`, `{ attrs }`, or a
// plain Name reference (§4.7 TypeExpr).
func (p *parser) parseTypeExpr() {
	switch {
	case p.atSoftKeyword(syntax.SoftSet):
		p.parseSetType()
	case p.atSoftKeyword(syntax.SoftEnum):
		p.parseEnumBody()
	case p.at(syntax.KindLBrace):
		p.parseAttributeBody(syntax.KindRecordType)
	case p.at(syntax.KindIdentifier):
		nt := p.b.Open(syntax.KindNameType)
		p.parseQualifiedNameGroup()
		p.b.Close(nt)
	default:
		p.diags.Push(diagnostic.NewError("ExpectedType", "expected a type").
			WithPrimary(p.hereSpan(), "expected a type expression here"))
	}
}

func (p *parser) parseSetType() {
	st := p.b.Open(syntax.KindSetType)
	p.bump() // 'Set'
	if p.expect(syntax.KindLt) {
		p.parseTypeExpr()
		p.expect(syntax.KindGt)
	}
	p.b.Close(st)
}

func (p *parser) parseEnumBody() {
	en := p.b.Open(syntax.KindEnumType)
	p.bump() // 'enum'
	if !p.expect(syntax.KindLBracket) {
		p.b.Close(en)
		return
	}
	for !p.at(syntax.KindRBracket) && p.peek() != syntax.KindEOF {
		p.expect(syntax.KindStringLiteral)
		if p.at(syntax.KindComma) {
			p.bump()
			continue
		}
		break
	}
	p.expect(syntax.KindRBracket)
	p.b.Close(en)
}
