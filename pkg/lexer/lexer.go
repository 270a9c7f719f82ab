// Package lexer implements the hand-written, table-driven byte-level
// scanner described in §4.4: a single pass over the source buffer
// producing a flat token stream that includes whitespace, newlines,
// comments, and error tokens, with the guarantee that the sum of
// emitted token lengths equals the source length and no token straddles
// a UTF-8 boundary.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cedarfront/cedarfront/pkg/diagnostic"
	"github.com/cedarfront/cedarfront/pkg/syntax"
)

var twoCharKinds = map[string]syntax.Kind{
	"::": syntax.KindColonColon,
	"==": syntax.KindEqEq,
	"!=": syntax.KindNotEq,
	"<=": syntax.KindLtEq,
	">=": syntax.KindGtEq,
	"&&": syntax.KindAndAnd,
	"||": syntax.KindOrOr,
}

var oneCharKinds = map[byte]syntax.Kind{
	'(': syntax.KindLParen,
	')': syntax.KindRParen,
	'{': syntax.KindLBrace,
	'}': syntax.KindRBrace,
	'[': syntax.KindLBracket,
	']': syntax.KindRBracket,
	',': syntax.KindComma,
	';': syntax.KindSemicolon,
	':': syntax.KindColon,
	'.': syntax.KindDot,
	'?': syntax.KindQuestion,
	'@': syntax.KindAt,
	'=': syntax.KindEquals,
	'<': syntax.KindLt,
	'>': syntax.KindGt,
	'!': syntax.KindBang,
	'&': syntax.KindSingleAmp,
	'|': syntax.KindSinglePipe,
	'+': syntax.KindPlus,
	'-': syntax.KindMinus,
	'*': syntax.KindStar,
}

// Lex scans source into a flat token stream, pushing StringUnterminated
// and UnknownCharacter diagnostics into diags as it encounters them.
// The sum of the returned tokens' Len fields always equals len(source).
func Lex(source string, diags *diagnostic.Diagnostics) []Token {
	c := newCursor(source)
	var toks []Token

	for !c.eof() {
		start := c.pos
		b := c.peekByte()

		switch {
		case b == '\n':
			c.bumpByte()
			toks = append(toks, Token{syntax.KindNewline, 1})

		case b == '\r':
			if c.peekByteAt(1) == '\n' {
				c.bumpBytes(2)
				toks = append(toks, Token{syntax.KindNewline, 2})
			} else {
				c.bumpByte()
				toks = append(toks, Token{syntax.KindNewline, 1})
			}

		case isASCIIWhitespace[b]:
			n := scanWhitespace(c)
			toks = append(toks, Token{syntax.KindWhitespace, n})

		case b == '/' && c.peekByteAt(1) == '/':
			n := scanLineComment(c)
			toks = append(toks, Token{syntax.KindLineComment, n})

		case isDigitASCII[b]:
			n := scanDigits(c)
			toks = append(toks, Token{syntax.KindIntLiteral, n})

		case isIdentStartASCII[b]:
			n := scanIdentifier(c)
			text := source[start : start+n]
			kind := syntax.KindIdentifier
			if kw, ok := syntax.Keywords[text]; ok {
				kind = kw
			}
			toks = append(toks, Token{kind, n})

		case b == '"':
			n, unterminated := scanString(c)
			toks = append(toks, Token{syntax.KindStringLiteral, n})
			if unterminated {
				diags.Push(diagnostic.NewError("StringUnterminated", "unterminated string literal").
					WithPrimary(diagnostic.Span{Start: start, End: start + n}, "string is missing a closing '\"'"))
			}

		default:
			if tok, ok := scanPunct(c); ok {
				toks = append(toks, tok)
				continue
			}

			r, size := c.peekRune()
			if size == 0 {
				size = 1
			}
			if unicode.IsSpace(r) {
				c.bumpBytes(size)
				toks = append(toks, Token{syntax.KindWhitespace, size})
				continue
			}
			if unicode.IsLetter(r) {
				n := scanIdentifier(c)
				toks = append(toks, Token{syntax.KindIdentifier, n})
				continue
			}

			c.bumpBytes(size)
			toks = append(toks, Token{syntax.KindUnknown, size})
			diags.Push(diagnostic.NewError("UnknownCharacter", "unrecognised character").
				WithPrimary(diagnostic.Span{Start: start, End: start + size}, "not valid here"))
		}
	}

	toks = append(toks, Token{syntax.KindEOF, 0})
	return toks
}

func scanWhitespace(c *cursor) int {
	n := 0
	for !c.eof() {
		b := c.peekByte()
		if b < utf8.RuneSelf {
			if b == '\n' || b == '\r' {
				break
			}
			if isASCIIWhitespace[b] {
				c.bumpByte()
				n++
				continue
			}
			break
		}
		r, size := c.peekRune()
		if unicode.IsSpace(r) {
			c.bumpBytes(size)
			n += size
			continue
		}
		break
	}
	return n
}

func scanLineComment(c *cursor) int {
	c.bumpBytes(2)
	n := 2
	for !c.eof() {
		b := c.peekByte()
		if b == '\n' || b == '\r' {
			break
		}
		r, size := c.peekRune()
		if size == 0 {
			size = 1
		}
		_ = r
		c.bumpBytes(size)
		n += size
	}
	return n
}

func scanDigits(c *cursor) int {
	n := 0
	for !c.eof() && isDigitASCII[c.peekByte()] {
		c.bumpByte()
		n++
	}
	return n
}

func scanIdentifier(c *cursor) int {
	n := 0
	for !c.eof() {
		b := c.peekByte()
		if b < utf8.RuneSelf {
			if isIdentContinueASCII[b] {
				c.bumpByte()
				n++
				continue
			}
			break
		}
		r, size := c.peekRune()
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			c.bumpBytes(size)
			n += size
			continue
		}
		break
	}
	return n
}

// scanString scans a double-quoted string literal starting at the
// cursor's current '"'. It uses strings.IndexAny to jump directly to
// the next quote-or-backslash the way a memchr-based scanner would
// (§4.4), consuming one escaped codepoint per backslash encountered
// without validating the escape itself — that is pkg/escape's job.
func scanString(c *cursor) (n int, unterminated bool) {
	start := c.pos
	i := start + 1
	for {
		rel := strings.IndexAny(c.src[i:], "\"\\")
		if rel == -1 {
			c.pos = len(c.src)
			return len(c.src) - start, true
		}
		i += rel
		if c.src[i] == '"' {
			c.pos = i + 1
			return c.pos - start, false
		}
		// backslash: consume it plus the following codepoint.
		i++
		if i >= len(c.src) {
			c.pos = len(c.src)
			return len(c.src) - start, true
		}
		_, size := utf8.DecodeRuneInString(c.src[i:])
		if size == 0 {
			size = 1
		}
		i += size
	}
}

func scanPunct(c *cursor) (Token, bool) {
	b0 := c.peekByte()
	b1 := c.peekByteAt(1)
	if kind, ok := twoCharKinds[string([]byte{b0, b1})]; ok {
		c.bumpBytes(2)
		return Token{kind, 2}, true
	}
	if kind, ok := oneCharKinds[b0]; ok {
		c.bumpByte()
		return Token{kind, 1}, true
	}
	return Token{}, false
}
