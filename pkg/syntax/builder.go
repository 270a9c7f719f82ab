package syntax

// Checkpoint marks a position in the current open branch's child list,
// captured by Builder.Checkpoint and later consumed by Builder.Commit
// to retroactively group every sibling appended since — the mechanism
// that lets the Pratt expression parser build left-associative trees
// without knowing the final shape of the left operand up front (§4.5,
// §9 "Left-recursive grouping").
type Checkpoint struct {
	parent NodeIndex
	after  NodeIndex // invalid if the checkpoint precedes all children
}

// Builder is a stateful arena builder. It tracks a write cursor into
// the source buffer; token spans are derived from that cursor, so
// Token calls must be made in document order with lengths that sum to
// exactly the bytes being consumed.
type Builder struct {
	source string
	nodes  []Node
	stack  []NodeIndex
	cursor int
}

// NewBuilder creates a builder over source. Builders are not
// reentrant; construct one per parse.
func NewBuilder(source string) *Builder {
	return &Builder{source: source}
}

func (b *Builder) push(n Node) NodeIndex {
	idx := NodeIndex(len(b.nodes))
	n.parent = nilIndex
	n.firstChild = nilIndex
	n.lastChild = nilIndex
	n.nextSibling = nilIndex
	n.prevSibling = nilIndex
	b.nodes = append(b.nodes, n)
	if len(b.stack) > 0 {
		b.appendChild(b.stack[len(b.stack)-1], idx)
	}
	return idx
}

func (b *Builder) appendChild(parent, child NodeIndex) {
	b.nodes[child].parent = parent
	if !b.nodes[parent].firstChild.Valid() {
		b.nodes[parent].firstChild = child
	} else {
		last := b.nodes[parent].lastChild
		b.nodes[last].nextSibling = child
		b.nodes[child].prevSibling = last
	}
	b.nodes[parent].lastChild = child
}

// Open starts a new branch node of the given kind and pushes it as the
// current insertion point. Its span starts at the current cursor.
func (b *Builder) Open(kind Kind) NodeIndex {
	idx := b.push(Node{Kind: kind, Start: b.cursor, End: b.cursor})
	b.stack = append(b.stack, idx)
	return idx
}

// Close finalizes the innermost open branch, setting its end to the
// current cursor (which, by construction, is the end of its last
// descendant token).
func (b *Builder) Close(branch NodeIndex) {
	top := b.stack[len(b.stack)-1]
	if top != branch {
		panic("syntax: Close called out of order")
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.nodes[branch].End = b.cursor
}

// Token appends a leaf of the given kind covering the next `length`
// bytes of source starting at the cursor, and advances the cursor.
func (b *Builder) Token(kind Kind, length int) NodeIndex {
	start := b.cursor
	idx := b.push(Node{Kind: kind, Start: start, End: start + length})
	b.cursor = start + length
	return idx
}

// Checkpoint captures the position just after the most recently
// appended sibling in the currently open branch.
func (b *Builder) Checkpoint() Checkpoint {
	if len(b.stack) == 0 {
		return Checkpoint{parent: nilIndex, after: nilIndex}
	}
	top := b.stack[len(b.stack)-1]
	return Checkpoint{parent: top, after: b.nodes[top].lastChild}
}

// Commit wraps every sibling appended since cp (within the same open
// branch cp was taken in) under a freshly inserted parent of the given
// kind, and returns that parent's index. If nothing was appended since
// cp, Commit inserts an empty group at that position spanning zero
// bytes at the current cursor.
func (b *Builder) Commit(cp Checkpoint, kind Kind) NodeIndex {
	parent := cp.parent
	if !parent.Valid() {
		panic("syntax: Commit called with no open branch")
	}

	var first NodeIndex
	if cp.after.Valid() {
		first = b.nodes[cp.after].nextSibling
	} else {
		first = b.nodes[parent].firstChild
	}
	last := b.nodes[parent].lastChild

	start, end := b.cursor, b.cursor
	if first.Valid() {
		start = b.nodes[first].Start
		end = b.nodes[last].End
	}

	newIdx := NodeIndex(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		Kind:        kind,
		Start:       start,
		End:         end,
		parent:      parent,
		firstChild:  first,
		lastChild:   last,
		nextSibling: nilIndex,
		prevSibling: cp.after,
	})

	if cp.after.Valid() {
		b.nodes[cp.after].nextSibling = newIdx
	} else {
		b.nodes[parent].firstChild = newIdx
	}
	b.nodes[parent].lastChild = newIdx

	if first.Valid() {
		b.nodes[first].prevSibling = nilIndex
		for n := first; ; {
			b.nodes[n].parent = newIdx
			if n == last {
				break
			}
			n = b.nodes[n].nextSibling
		}
	}

	return newIdx
}

// Build finalizes the arena into a Tree rooted at root. The builder
// must have no open branches remaining.
func (b *Builder) Build(root NodeIndex) *Tree {
	if len(b.stack) != 0 {
		panic("syntax: Build called with open branches remaining")
	}
	return &Tree{Source: b.source, nodes: b.nodes, root: root}
}

// Len returns the current write cursor, the number of source bytes
// consumed so far.
func (b *Builder) Len() int { return b.cursor }
