package syntax

// NodeIndex is an arena-relative reference to a Node. nilIndex (-1)
// never denotes a real node; the zero value is the first node pushed.
type NodeIndex int

const nilIndex NodeIndex = -1

// Valid reports whether i refers to a real node.
func (i NodeIndex) Valid() bool { return i != nilIndex }

// Node is one arena entry: either a leaf token or a branch group.
// parent/firstChild/nextSibling are indices, never pointers, so the
// arena can grow without invalidating earlier references. A group made
// by Builder.Commit has a higher index than the children it wraps.
type Node struct {
	Kind        Kind
	Start       int
	End         int
	parent      NodeIndex
	firstChild  NodeIndex
	lastChild   NodeIndex
	nextSibling NodeIndex
	prevSibling NodeIndex
}

// Len returns the byte length of the node's span.
func (n Node) Len() int { return n.End - n.Start }
