package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarfront/cedarfront/pkg/diagnostic"
	"github.com/cedarfront/cedarfront/pkg/lexer"
	"github.com/cedarfront/cedarfront/pkg/syntax"
)

func lex(t *testing.T, source string) ([]lexer.Token, *diagnostic.Diagnostics) {
	t.Helper()
	diags := diagnostic.New()
	toks := lexer.Lex(source, diags)
	total := 0
	for _, tok := range toks {
		total += tok.Len
	}
	require.Equal(t, len(source), total, "token lengths must sum to source length")
	return toks, diags
}

func kinds(toks []lexer.Token) []syntax.Kind {
	out := make([]syntax.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexEmptySourceIsJustEOF(t *testing.T) {
	toks, diags := lex(t, "")
	assert.Equal(t, []syntax.Kind{syntax.KindEOF}, kinds(toks))
	assert.False(t, diags.HasError())
}

func TestLexPermitSkeleton(t *testing.T) {
	toks, diags := lex(t, `permit(principal, action, resource);`)
	assert.False(t, diags.HasError())
	assert.Equal(t, []syntax.Kind{
		syntax.KindPermitKw,
		syntax.KindLParen,
		syntax.KindIdentifier,
		syntax.KindComma,
		syntax.KindWhitespace,
		syntax.KindIdentifier,
		syntax.KindComma,
		syntax.KindWhitespace,
		syntax.KindIdentifier,
		syntax.KindRParen,
		syntax.KindSemicolon,
		syntax.KindEOF,
	}, kinds(toks))
}

func TestLexKeywordsAreExact(t *testing.T) {
	toks, _ := lex(t, "forbid when unless if then else true false in has like is")
	var nonTrivia []syntax.Kind
	for _, tok := range toks {
		if tok.Kind.IsTrivia() || tok.Kind == syntax.KindEOF {
			continue
		}
		nonTrivia = append(nonTrivia, tok.Kind)
	}
	assert.Equal(t, []syntax.Kind{
		syntax.KindForbidKw, syntax.KindWhenKw, syntax.KindUnlessKw,
		syntax.KindIfKw, syntax.KindThenKw, syntax.KindElseKw,
		syntax.KindTrueKw, syntax.KindFalseKw, syntax.KindInKw,
		syntax.KindHasKw, syntax.KindLikeKw, syntax.KindIsKw,
	}, nonTrivia)
}

func TestLexSoftKeywordsAreIdentifiers(t *testing.T) {
	toks, _ := lex(t, "entity action namespace type enum appliesTo attributes tags context principal resource Set")
	for _, tok := range toks {
		if tok.Kind.IsTrivia() || tok.Kind == syntax.KindEOF {
			continue
		}
		assert.Equal(t, syntax.KindIdentifier, tok.Kind)
	}
}

func TestLexTwoCharOperators(t *testing.T) {
	toks, diags := lex(t, ":: == != <= >= && ||")
	assert.False(t, diags.HasError())
	var ops []syntax.Kind
	for _, tok := range toks {
		if tok.Kind.IsTrivia() || tok.Kind == syntax.KindEOF {
			continue
		}
		ops = append(ops, tok.Kind)
	}
	assert.Equal(t, []syntax.Kind{
		syntax.KindColonColon, syntax.KindEqEq, syntax.KindNotEq,
		syntax.KindLtEq, syntax.KindGtEq, syntax.KindAndAnd, syntax.KindOrOr,
	}, ops)
}

func TestLexSingleEqualsIsNotEqEq(t *testing.T) {
	toks, _ := lex(t, "=")
	assert.Equal(t, syntax.KindEquals, toks[0].Kind)
	assert.Equal(t, 1, toks[0].Len)
}

func TestLexIntLiteral(t *testing.T) {
	toks, _ := lex(t, "123456")
	assert.Equal(t, syntax.KindIntLiteral, toks[0].Kind)
	assert.Equal(t, 6, toks[0].Len)
}

func TestLexStringLiteral(t *testing.T) {
	toks, diags := lex(t, `"hello \"world\""`)
	assert.False(t, diags.HasError())
	require.Equal(t, syntax.KindStringLiteral, toks[0].Kind)
	assert.Equal(t, len(`"hello \"world\""`), toks[0].Len)
}

func TestLexUnterminatedStringReportsDiagnostic(t *testing.T) {
	toks, diags := lex(t, `"hello`)
	require.Equal(t, syntax.KindStringLiteral, toks[0].Kind)
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, "StringUnterminated", diags.Iter()[0].Code)
}

func TestLexStringWithTrailingBackslashIsUnterminated(t *testing.T) {
	_, diags := lex(t, `"abc\`)
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, "StringUnterminated", diags.Iter()[0].Code)
}

func TestLexLineComment(t *testing.T) {
	toks, diags := lex(t, "// a comment\nx")
	assert.False(t, diags.HasError())
	require.Len(t, toks, 4)
	assert.Equal(t, syntax.KindLineComment, toks[0].Kind)
	assert.Equal(t, len("// a comment"), toks[0].Len)
	assert.Equal(t, syntax.KindNewline, toks[1].Kind)
	assert.Equal(t, syntax.KindIdentifier, toks[2].Kind)
}

func TestLexCarriageReturnNewlineIsOneToken(t *testing.T) {
	toks, _ := lex(t, "a\r\nb")
	require.Len(t, toks, 4)
	assert.Equal(t, syntax.KindNewline, toks[1].Kind)
	assert.Equal(t, 2, toks[1].Len)
}

func TestLexUnknownByteReportsDiagnosticAndKeepsGoing(t *testing.T) {
	toks, diags := lex(t, "a#b")
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, "UnknownCharacter", diags.Iter()[0].Code)
	assert.Equal(t, []syntax.Kind{
		syntax.KindIdentifier, syntax.KindUnknown, syntax.KindIdentifier, syntax.KindEOF,
	}, kinds(toks))
}

func TestLexUnicodeIdentifier(t *testing.T) {
	toks, diags := lex(t, "café")
	assert.False(t, diags.HasError())
	require.Equal(t, syntax.KindIdentifier, toks[0].Kind)
	assert.Equal(t, len("café"), toks[0].Len)
}
