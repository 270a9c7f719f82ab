// Package parser implements the hand-written recursive-descent parser
// with a Pratt inner loop for expressions, shared between the policy
// and schema grammars (§4.6, §4.7). Both entry points return a fully
// built, lossless syntax.Tree plus whatever diagnostics recovery
// produced — parsing itself never fails outright.
package parser

import (
	"github.com/cedarfront/cedarfront/pkg/diagnostic"
	"github.com/cedarfront/cedarfront/pkg/lexer"
	"github.com/cedarfront/cedarfront/pkg/syntax"
)

// maxExprDepth bounds expression recursion so a maliciously deep
// source (thousands of nested parens) hits a diagnostic instead of a
// stack overflow (§4.6 "Depth limit").
const maxExprDepth = 128

// maxUnaryChain is the number of prefix `!`/`-` operators tolerated
// before UnaryOpLimit (§4.6).
const maxUnaryChain = 4

type parser struct {
	source string
	toks   []lexer.Token
	sig    []int // indices into toks of non-trivia tokens (EOF included)
	sigPos int
	rawPos int

	b     *syntax.Builder
	diags *diagnostic.Diagnostics

	exprDepth int
}

func newParser(source string) *parser {
	diags := diagnostic.New()
	toks := lexer.Lex(source, diags)
	sig := make([]int, 0, len(toks))
	for i, t := range toks {
		if !t.Kind.IsTrivia() {
			sig = append(sig, i)
		}
	}
	return &parser{source: source, toks: toks, sig: sig, b: syntax.NewBuilder(source), diags: diags}
}

// peek returns the kind of the next significant (non-trivia) token.
func (p *parser) peek() syntax.Kind { return p.peekAt(0) }

// peekAt returns the kind of the offset-th significant token ahead
// (0 is the immediate next). Never consumes anything.
func (p *parser) peekAt(offset int) syntax.Kind {
	idx := p.sigPos + offset
	if idx >= len(p.sig) {
		return syntax.KindEOF
	}
	return p.toks[p.sig[idx]].Kind
}

// peekText returns the exact source text of the next significant token.
func (p *parser) peekText() string {
	if p.sigPos >= len(p.sig) {
		return ""
	}
	target := p.sig[p.sigPos]
	start := p.b.Len()
	for i := p.rawPos; i < target; i++ {
		start += p.toks[i].Len
	}
	return p.source[start : start+p.toks[target].Len]
}

// at reports whether the next significant token has the given kind.
func (p *parser) at(kind syntax.Kind) bool { return p.peek() == kind }

// atSoftKeyword reports whether the next significant token is an
// identifier whose text exactly matches word (§4.7 soft keywords).
func (p *parser) atSoftKeyword(word string) bool {
	return p.peek() == syntax.KindIdentifier && p.peekText() == word
}

// bump consumes the next significant token, emitting every raw token
// between the parser's write cursor and it — including trivia — as
// leaves of the currently open branch, then returns the consumed
// token's kind and text.
func (p *parser) bump() (kind syntax.Kind, text string) {
	if p.sigPos >= len(p.sig) {
		return syntax.KindEOF, ""
	}
	kind = p.peek()
	text = p.peekText()
	target := p.sig[p.sigPos]
	for p.rawPos <= target {
		t := p.toks[p.rawPos]
		p.b.Token(t.Kind, t.Len)
		p.rawPos++
	}
	p.sigPos++
	return kind, text
}

// expect bumps and returns true if the next token has the given kind;
// otherwise it pushes a generic "expected X, found Y" diagnostic and
// returns false without consuming anything.
func (p *parser) expect(kind syntax.Kind) bool {
	if p.at(kind) {
		p.bump()
		return true
	}
	p.diags.Push(diagnostic.NewError("UnexpectedToken", "expected "+kind.String()+", found "+p.peek().String()).
		WithPrimary(p.hereSpan(), "unexpected here"))
	return false
}

// hereSpan returns a zero-width span at the parser's current write
// cursor, used to anchor diagnostics about missing tokens.
func (p *parser) hereSpan() diagnostic.Span {
	return diagnostic.Span{Start: p.b.Len(), End: p.b.Len()}
}

// expectKeyword is like expect but with a caller-chosen diagnostic code
// and message, for productions where "expected X" isn't generic enough
// (§4.6 "Expected then").
func (p *parser) expectKeyword(kind syntax.Kind, code, message string) bool {
	if p.at(kind) {
		p.bump()
		return true
	}
	p.diags.Push(diagnostic.NewError(code, message).
		WithPrimary(p.hereSpan(), "expected "+kind.String()+" here"))
	return false
}

// expectSemicolon consumes a terminating ';', pushing MissingSemicolon
// if absent, shared by the policy and declaration productions.
func (p *parser) expectSemicolon() {
	if p.at(syntax.KindSemicolon) {
		p.bump()
		return
	}
	p.diags.Push(diagnostic.NewError("MissingSemicolon", "missing a terminating ';'").
		WithPrimary(p.hereSpan(), "expected ';' here"))
}

// primeLeadingTrivia attaches any trivia preceding the first
// significant token to the currently open branch.
func (p *parser) primeLeadingTrivia() {
	var target int
	if len(p.sig) > 0 {
		target = p.sig[0]
	} else {
		target = len(p.toks)
	}
	p.drainTo(target)
}

// drainTrailingTrivia attaches any trivia between the last consumed
// token and EOF (or the remainder of the buffer) to the currently open
// branch. Call once after the top-level parse loop exits.
func (p *parser) drainTrailingTrivia() {
	var target int
	if p.sigPos < len(p.sig) {
		target = p.sig[p.sigPos]
	} else {
		target = len(p.toks)
	}
	p.drainTo(target)
}

func (p *parser) drainTo(target int) {
	for p.rawPos < target {
		t := p.toks[p.rawPos]
		if t.Kind == syntax.KindEOF {
			break
		}
		p.b.Token(t.Kind, t.Len)
		p.rawPos++
	}
}

// recoverUntil wraps tokens from the current position up to (but not
// including) the first token whose kind is in anchors — or EOF — in a
// single Error group, with one UnexpectedToken diagnostic. A no-op if
// already sitting on an anchor.
func (p *parser) recoverUntil(anchors ...syntax.Kind) {
	if p.atAnchor(anchors) {
		return
	}
	start := p.hereSpan().Start
	g := p.b.Open(syntax.KindErrorGroup)
	for !p.atAnchor(anchors) && p.peek() != syntax.KindEOF {
		p.bump()
	}
	end := p.b.Len()
	p.b.Close(g)
	p.diags.Push(diagnostic.NewError("UnexpectedToken", "unexpected input was skipped while recovering").
		WithPrimary(diagnostic.Span{Start: start, End: end}, "could not be parsed here"))
}

func (p *parser) atAnchor(anchors []syntax.Kind) bool {
	cur := p.peek()
	for _, a := range anchors {
		if cur == a {
			return true
		}
	}
	return false
}
