package diagnostic

import "github.com/oklog/ulid/v2"

// Diagnostics is an ordered, append-only buffer of Diagnostic values,
// carried by reference through the lexer, parser, escape decoder, and
// lowerer (§2). Diagnostics are pushed in source order within a single
// parse+lower call (§5 "Ordering guarantee"); Diagnostics itself does
// not re-sort.
type Diagnostics struct {
	items []Diagnostic
}

// New returns an empty Diagnostics buffer.
func New() *Diagnostics {
	return &Diagnostics{}
}

// Push appends d, minting a ULID identity for it first.
func (b *Diagnostics) Push(d *Diagnostic) {
	d.ID = ulid.Make()
	b.items = append(b.items, *d)
}

// Len returns the number of diagnostics currently buffered.
func (b *Diagnostics) Len() int { return len(b.items) }

// HasError reports whether any buffered diagnostic is error-severity.
func (b *Diagnostics) HasError() bool {
	for _, d := range b.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Iter returns the buffered diagnostics in push order. The returned
// slice is owned by the caller; mutating it does not affect b.
func (b *Diagnostics) Iter() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)
	return out
}

// Truncate discards every diagnostic at index n or later, restoring
// the buffer to length n, the length it had at an earlier checkpoint.
// This supports speculative parsing: a caller records Len() before
// trying a parse path, and calls Truncate with that length if the path
// is abandoned (§4.3, §9 "Speculative parsing" — the current parsers
// in internal/parser commit eagerly and never call Truncate themselves, but the
// affordance is preserved for callers that do, such as an
// auto-formatter probing alternate recoveries).
func (b *Diagnostics) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(b.items) {
		b.items = b.items[:n]
	}
}
