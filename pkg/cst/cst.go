// Package cst wraps pkg/syntax.Tree in typed, read-only accessor views
// — one Go type per CST node shape — so internal/lower walks named
// fields (`Policy.Scope()`, `Expr.BinaryOperands()`) instead of raw
// Children()/Child(kind) calls scattered through the lowering code
// (§3 "CST views").
package cst

import "github.com/cedarfront/cedarfront/pkg/syntax"

// node is the common representation every view embeds: a tree plus the
// index of the node that view wraps.
type node struct {
	Tree *syntax.Tree
	Idx  syntax.NodeIndex
}

// Kind returns the wrapped node's syntax kind.
func (n node) Kind() syntax.Kind { return n.Tree.Kind(n.Idx) }

// Text returns the wrapped node's exact source text.
func (n node) Text() string { return n.Tree.Text(n.Idx) }

// Range returns the wrapped node's byte span.
func (n node) Range() (start, end int) { return n.Tree.Range(n.Idx) }

func child(t *syntax.Tree, i syntax.NodeIndex, kind syntax.Kind) (syntax.NodeIndex, bool) {
	return t.Child(i, kind)
}

func childrenOfKind(t *syntax.Tree, i syntax.NodeIndex, kind syntax.Kind) []syntax.NodeIndex {
	return t.ChildrenOfKind(i, kind)
}

// tokenText returns the text of the first direct child of the given
// token kind, if present.
func tokenText(t *syntax.Tree, i syntax.NodeIndex, kind syntax.Kind) (string, bool) {
	c, ok := child(t, i, kind)
	if !ok {
		return "", false
	}
	return t.Text(c), true
}
