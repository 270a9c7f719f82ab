// Package syntax defines the closed syntax-kind enumeration and the
// lossless concrete-syntax-tree arena shared by the lexer, parser, and
// CST layer.
package syntax

// Kind is the closed enumeration of every node kind that can appear in
// a syntax tree: leaf (Token) kinds and branch (Group) kinds share one
// flat numbering so a single switch can dispatch on either.
type Kind uint16

// Token kinds. A Token node is always a leaf: it owns no children and
// its span is exactly len(text) bytes.
const (
	KindEOF Kind = iota

	// Trivia. Preserved in the tree but never consumed by a grammar
	// production.
	KindWhitespace
	KindNewline
	KindLineComment

	// Names and literals.
	KindIdentifier
	KindIntLiteral
	KindStringLiteral

	// Keywords (closed set recognised post-identifier by exact match).
	// "entity", "action", "namespace", "type", "enum", "appliesTo",
	// "attributes", "tags", "context", "principal", "resource" are
	// deliberately NOT in this set: they are soft keywords, lexed as
	// plain identifiers and recognised by text comparison where the
	// grammar needs them (§4.7, §4.8). Only words that change Pratt
	// binding power or are otherwise unambiguous in every grammar
	// position are hard keywords.
	KindPermitKw
	KindForbidKw
	KindWhenKw
	KindUnlessKw
	KindIfKw
	KindThenKw
	KindElseKw
	KindTrueKw
	KindFalseKw
	KindInKw
	KindHasKw
	KindLikeKw
	KindIsKw

	// Punctuation.
	KindLParen
	KindRParen
	KindLBrace
	KindRBrace
	KindLBracket
	KindRBracket
	KindComma
	KindSemicolon
	KindColon
	KindColonColon
	KindDot
	KindQuestion
	KindAt
	KindEquals   // '='
	KindEqEq     // '=='
	KindNotEq    // '!='
	KindLt       // '<'
	KindLtEq     // '<='
	KindGt       // '>'
	KindGtEq     // '>='
	KindAndAnd   // '&&'
	KindOrOr     // '||'
	KindBang     // '!'
	KindPlus     // '+'
	KindMinus    // '-'
	KindStar     // '*'
	KindSingleAmp
	KindSinglePipe

	// Error leaves.
	KindUnknown

	firstGroupKind
)

// Group kinds. A Group node is always a branch: its span covers its
// first descendant token's start through its last descendant token's
// end, and `commit` can retroactively insert one as the parent of a
// run of already-appended siblings.
const (
	KindErrorGroup Kind = firstGroupKind + iota

	// Shared.
	KindName
	KindAnnotation
	KindAnnotationList

	// Policy declarations.
	KindPolicy
	KindPolicySet
	KindScope
	KindVariableDef
	KindSlotNode
	KindCondition

	// Expressions.
	KindOrExpr
	KindAndExpr
	KindRelExpr
	KindAddExpr
	KindMulExpr
	KindUnaryExpr
	KindIsExpr
	KindLikeExpr
	KindHasExpr
	KindIfExpr
	KindLiteralExpr
	KindSlotExpr
	KindNameExpr
	KindParenExpr
	KindListExpr
	KindRecordExpr
	KindRecordEntry
	KindEntityRefExpr
	KindFieldAccess
	KindCallExpr
	KindIndexExpr
	KindArgList

	// Schema declarations.
	KindSchemaFile
	KindNamespace
	KindEntityDecl
	KindActionDecl
	KindTypeDecl
	KindNameList
	KindTypeList
	KindAppliesTo
	KindAttributeList
	KindAttribute
	KindSetType
	KindRecordType
	KindEnumType
	KindNameType
	KindActionParents
)

var kindNames = map[Kind]string{
	KindEOF:           "EOF",
	KindWhitespace:    "whitespace",
	KindNewline:       "newline",
	KindLineComment:   "comment",
	KindIdentifier:    "identifier",
	KindIntLiteral:    "int literal",
	KindStringLiteral: "string literal",
	KindPermitKw:      "'permit'",
	KindForbidKw:      "'forbid'",
	KindWhenKw:        "'when'",
	KindUnlessKw:      "'unless'",
	KindIfKw:          "'if'",
	KindThenKw:        "'then'",
	KindElseKw:        "'else'",
	KindTrueKw:        "'true'",
	KindFalseKw:       "'false'",
	KindInKw:          "'in'",
	KindHasKw:         "'has'",
	KindLikeKw:        "'like'",
	KindIsKw:          "'is'",
	KindLParen:        "'('",
	KindRParen:        "')'",
	KindLBrace:        "'{'",
	KindRBrace:        "'}'",
	KindLBracket:      "'['",
	KindRBracket:      "']'",
	KindComma:         "','",
	KindSemicolon:     "';'",
	KindColon:         "':'",
	KindColonColon:    "'::'",
	KindDot:           "'.'",
	KindQuestion:      "'?'",
	KindAt:            "'@'",
	KindEquals:        "'='",
	KindEqEq:          "'=='",
	KindNotEq:         "'!='",
	KindLt:            "'<'",
	KindLtEq:          "'<='",
	KindGt:            "'>'",
	KindGtEq:          "'>='",
	KindAndAnd:        "'&&'",
	KindOrOr:          "'||'",
	KindBang:          "'!'",
	KindPlus:          "'+'",
	KindMinus:         "'-'",
	KindStar:          "'*'",
	KindSingleAmp:     "'&'",
	KindSinglePipe:    "'|'",
	KindUnknown:       "unknown token",
	KindErrorGroup:    "error",
}

// String renders the textual form used by diagnostics (§3 "every token
// kind carries a textual rendering").
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "node"
}

// IsToken reports whether k is a leaf kind.
func (k Kind) IsToken() bool { return k < firstGroupKind }

// IsGroup reports whether k is a branch kind.
func (k Kind) IsGroup() bool { return k >= firstGroupKind }

// IsTrivia reports whether k is whitespace, a newline, or a comment.
func (k Kind) IsTrivia() bool {
	switch k {
	case KindWhitespace, KindNewline, KindLineComment:
		return true
	default:
		return false
	}
}

// Keywords is the closed set of reserved words recognised post-identifier.
var Keywords = map[string]Kind{
	"permit":    KindPermitKw,
	"forbid":    KindForbidKw,
	"when":      KindWhenKw,
	"unless":    KindUnlessKw,
	"if":        KindIfKw,
	"then":      KindThenKw,
	"else":      KindElseKw,
	"true":      KindTrueKw,
	"false":     KindFalseKw,
	"in":        KindInKw,
	"has":       KindHasKw,
	"like":      KindLikeKw,
	"is":        KindIsKw,
}

// Soft keywords: identifier text the schema/policy grammars recognise
// contextually. Never produced as a distinct Kind by the lexer.
const (
	SoftEntity     = "entity"
	SoftAction     = "action"
	SoftNamespace  = "namespace"
	SoftType       = "type"
	SoftEnum       = "enum"
	SoftAppliesTo  = "appliesTo"
	SoftAttributes = "attributes"
	SoftTags       = "tags"
	SoftContext    = "context"
	SoftPrincipal  = "principal"
	SoftResource   = "resource"
	SoftSet        = "Set"
)
