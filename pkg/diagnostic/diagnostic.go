// Package diagnostic accumulates structured compiler diagnostics —
// errors and warnings with primary and secondary labels, notes, help
// text, and machine-applicable fixes — and renders them against a
// source buffer the way a compiler-style CLI does (§4.3).
package diagnostic

import "github.com/oklog/ulid/v2"

// Severity classifies a Diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Span is a half-open byte range into the source buffer a diagnostic
// came from.
type Span struct {
	Start int
	End   int
}

// Label attaches a short message to a span.
type Label struct {
	Span    Span
	Message string
}

// SuggestionKind distinguishes a machine-applicable Fix from an
// advisory Hint (§4.3).
type SuggestionKind int

const (
	SuggestionHint SuggestionKind = iota
	SuggestionFix
)

// Suggestion proposes replacing the text at Span with Replacement. A
// Fix must be machine-applicable: applying it yields syntactically
// valid source. A Hint is advisory only.
type Suggestion struct {
	Kind        SuggestionKind
	Span        Span
	Replacement string
	Message     string
}

// Diagnostic is one structured message in a Diagnostics buffer.
//
// ID is a ULID minted at push time (SPEC_FULL.md DOMAIN STACK): it
// gives tooling a stable handle on a diagnostic that survives a
// Diagnostics.Truncate rollback of everything pushed after it, unlike
// an index into the buffer.
type Diagnostic struct {
	ID          ulid.ULID
	Severity    Severity
	Code        string // short machine-readable kind, e.g. "InvalidEquals"
	Message     string
	Primary     *Label
	Context     []Label
	Notes       []string
	Help        []string
	Suggestions []Suggestion
}

// NewError starts a builder for an error-severity diagnostic.
func NewError(code, message string) *Diagnostic {
	return &Diagnostic{Severity: SeverityError, Code: code, Message: message}
}

// NewWarning starts a builder for a warning-severity diagnostic.
func NewWarning(code, message string) *Diagnostic {
	return &Diagnostic{Severity: SeverityWarning, Code: code, Message: message}
}

// WithPrimary sets the diagnostic's primary label.
func (d *Diagnostic) WithPrimary(span Span, label string) *Diagnostic {
	d.Primary = &Label{Span: span, Message: label}
	return d
}

// WithContext appends a secondary, contextual label.
func (d *Diagnostic) WithContext(span Span, label string) *Diagnostic {
	d.Context = append(d.Context, Label{Span: span, Message: label})
	return d
}

// WithNote appends a free-form note.
func (d *Diagnostic) WithNote(note string) *Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp appends free-form help text.
func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = append(d.Help, help)
	return d
}

// WithFix attaches a machine-applicable fix.
func (d *Diagnostic) WithFix(span Span, replacement, message string) *Diagnostic {
	d.Suggestions = append(d.Suggestions, Suggestion{
		Kind: SuggestionFix, Span: span, Replacement: replacement, Message: message,
	})
	return d
}

// WithHint attaches an advisory (non-machine-applicable) suggestion.
func (d *Diagnostic) WithHint(span Span, replacement, message string) *Diagnostic {
	d.Suggestions = append(d.Suggestions, Suggestion{
		Kind: SuggestionHint, Span: span, Replacement: replacement, Message: message,
	})
	return d
}

// PrimarySpan returns the diagnostic's primary span, or a zero span if
// it doesn't have one (used only to order diagnostics; every pipeline
// diagnostic in practice sets a primary label).
func (d *Diagnostic) PrimarySpan() Span {
	if d.Primary == nil {
		return Span{}
	}
	return d.Primary.Span
}
