package lexer

import "github.com/cedarfront/cedarfront/pkg/syntax"

// Token is one lexed unit: a kind and a byte length. The lexer never
// materializes the token's text — the parser/builder slices it out of
// the source buffer as tokens are consumed, and Len is all a Builder
// needs to advance its cursor (§3 Builder, §4.4).
type Token struct {
	Kind syntax.Kind
	Len  int
}
