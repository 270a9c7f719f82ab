package syntax

// Tree is a built, read-only arena of Nodes over a source buffer. It
// is the lossless CST (§3): concatenating every leaf token's text in
// document order reproduces Source byte-for-byte.
type Tree struct {
	Source string
	nodes  []Node
	root   NodeIndex
}

// Root returns the index of the tree's single root node.
func (t *Tree) Root() NodeIndex { return t.root }

// Kind returns the kind of node i.
func (t *Tree) Kind(i NodeIndex) Kind { return t.nodes[i].Kind }

// Range returns the byte span [start, end) of node i.
func (t *Tree) Range(i NodeIndex) (start, end int) {
	n := t.nodes[i]
	return n.Start, n.End
}

// Text returns the exact source slice covered by node i. For a group
// node this is every byte of every descendant token concatenated (by
// construction, since a group's span always exactly covers its
// children and has no gaps — see losslessness invariant).
func (t *Tree) Text(i NodeIndex) string {
	n := t.nodes[i]
	return t.Source[n.Start:n.End]
}

// Parent returns the parent of i, or an invalid index at the root.
func (t *Tree) Parent(i NodeIndex) (NodeIndex, bool) {
	p := t.nodes[i].parent
	return p, p.Valid()
}

// NextSibling returns the sibling following i, if any.
func (t *Tree) NextSibling(i NodeIndex) (NodeIndex, bool) {
	n := t.nodes[i].nextSibling
	return n, n.Valid()
}

// PreviousSibling returns the sibling preceding i, if any.
func (t *Tree) PreviousSibling(i NodeIndex) (NodeIndex, bool) {
	p := t.nodes[i].prevSibling
	return p, p.Valid()
}

// Children returns the direct children of i in document order.
func (t *Tree) Children(i NodeIndex) []NodeIndex {
	var out []NodeIndex
	for c := t.nodes[i].firstChild; c.Valid(); c = t.nodes[c].nextSibling {
		out = append(out, c)
	}
	return out
}

// Child returns the first direct child of i with the given kind.
func (t *Tree) Child(i NodeIndex, kind Kind) (NodeIndex, bool) {
	for c := t.nodes[i].firstChild; c.Valid(); c = t.nodes[c].nextSibling {
		if t.nodes[c].Kind == kind {
			return c, true
		}
	}
	return nilIndex, false
}

// ChildrenOfKind returns every direct child of i with the given kind,
// in document order.
func (t *Tree) ChildrenOfKind(i NodeIndex, kind Kind) []NodeIndex {
	var out []NodeIndex
	for c := t.nodes[i].firstChild; c.Valid(); c = t.nodes[c].nextSibling {
		if t.nodes[c].Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// After returns the first child of i with the given kind that comes
// strictly after `after` in document order — "skip up to and past the
// named child" (§4.5), used to find e.g. the expression following an
// operator token when a node has several children of varied kinds.
func (t *Tree) After(i NodeIndex, after NodeIndex, kind Kind) (NodeIndex, bool) {
	seen := false
	for c := t.nodes[i].firstChild; c.Valid(); c = t.nodes[c].nextSibling {
		if seen && t.nodes[c].Kind == kind {
			return c, true
		}
		if c == after {
			seen = true
		}
	}
	return nilIndex, false
}

// Ancestors returns i and every strict ancestor, innermost first.
func (t *Tree) Ancestors(i NodeIndex) []NodeIndex {
	out := []NodeIndex{i}
	for p, ok := t.Parent(i); ok; p, ok = t.Parent(p) {
		out = append(out, p)
	}
	return out
}

// Descendants returns i and every descendant, in preorder (a node
// before its children, children before following siblings).
func (t *Tree) Descendants(i NodeIndex) []NodeIndex {
	var out []NodeIndex
	var walk func(NodeIndex)
	walk = func(n NodeIndex) {
		out = append(out, n)
		for c := t.nodes[n].firstChild; c.Valid(); c = t.nodes[c].nextSibling {
			walk(c)
		}
	}
	walk(i)
	return out
}

// WalkEvent is one step of a Preorder walk.
type WalkEvent struct {
	Node  NodeIndex
	Enter bool // true on entering a node, false on leaving it
}

// Preorder returns the enter/leave event sequence for the subtree
// rooted at i, the structure an editor-tooling indenter or
// bracket-matcher walks.
func (t *Tree) Preorder(i NodeIndex) []WalkEvent {
	var out []WalkEvent
	var walk func(NodeIndex)
	walk = func(n NodeIndex) {
		out = append(out, WalkEvent{Node: n, Enter: true})
		for c := t.nodes[n].firstChild; c.Valid(); c = t.nodes[c].nextSibling {
			walk(c)
		}
		out = append(out, WalkEvent{Node: n, Enter: false})
	}
	walk(i)
	return out
}

// Covering returns the innermost node whose span contains [start, end).
// A degenerate range (start == end) matches a node whose span touches
// that offset on either side; ties favour the later (rightmost) node,
// matching cursor-affinity conventions in editor tooling.
func (t *Tree) Covering(start, end int) (NodeIndex, bool) {
	best := nilIndex
	var walk func(NodeIndex) bool
	walk = func(n NodeIndex) bool {
		node := t.nodes[n]
		if start < node.Start || end > node.End {
			return false
		}
		best = n
		for c := node.firstChild; c.Valid(); c = t.nodes[c].nextSibling {
			walk(c)
		}
		return true
	}
	walk(t.root)
	return best, best.Valid()
}

// HasErrors reports whether i or any descendant is an error group.
func (t *Tree) HasErrors(i NodeIndex) bool {
	for _, d := range t.Descendants(i) {
		if t.nodes[d].Kind == KindErrorGroup {
			return true
		}
	}
	return false
}

// String renders the tree back to source text. By the losslessness
// invariant this always equals the original input exactly (§8.1).
func (t *Tree) String() string {
	return t.Source
}
