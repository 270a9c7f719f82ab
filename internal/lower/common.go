// Package lower transforms a parsed syntax.Tree into the typed ast
// package (§4.8, §4.9). Both entry points, LowerPolicies and
// LowerSchema, always return a usable (if possibly empty) AST: a
// malformed declaration is dropped from its enclosing list rather than
// aborting the whole pass, while a malformed element of a list or
// record literal is skipped and its siblings still lower normally.
package lower

import (
	"strconv"
	"strings"

	"github.com/cedarfront/cedarfront/pkg/ast"
	"github.com/cedarfront/cedarfront/pkg/cst"
	"github.com/cedarfront/cedarfront/pkg/diagnostic"
	"github.com/cedarfront/cedarfront/pkg/escape"
	"github.com/cedarfront/cedarfront/pkg/syntax"
)

// extensionFunctions is the closed set of extension functions, used
// both for bare calls (`ip("1.2.3.4")`) and for receiver-style calls
// whose method name isn't one of the six built-in methods.
var extensionFunctions = map[string]bool{
	"ip": true, "decimal": true, "datetime": true, "duration": true,
	"date": true, "time": true, "offset": true,
	"toDate": true, "toTime": true, "toDuration": true,
	"toMilliseconds": true, "toSeconds": true, "toMinutes": true, "toHours": true, "toDays": true,
	"isIpv4": true, "isIpv6": true, "isLoopback": true, "isMulticast": true, "isInRange": true,
	"lessThan": true, "lessThanOrEqual": true, "greaterThan": true, "greaterThanOrEqual": true,
}

// builtinMethodArity is the closed set of receiver methods with a
// fixed argument count.
var builtinMethodArity = map[string]int{
	"contains": 1, "containsAll": 1, "containsAny": 1,
	"isEmpty": 0, "getTag": 1, "hasTag": 1,
}

// validSlotNames is the closed set of template slot identifiers.
var validSlotNames = map[string]bool{"principal": true, "resource": true}

// lowerer carries the diagnostics buffer threaded through one
// policy-set or schema lowering pass.
type lowerer struct {
	diags *diagnostic.Diagnostics
}

func sp(start, end int) diagnostic.Span { return diagnostic.Span{Start: start, End: end} }

func (l *lowerer) pushEscapeErrors(errs []escape.Error) {
	for _, e := range errs {
		l.diags.Push(diagnostic.NewError(escapeCode(e.Kind), e.Error()).
			WithPrimary(sp(e.Start, e.End), e.Kind.String()))
	}
}

func escapeCode(k escape.ErrorKind) string {
	switch k {
	case escape.LoneSlash:
		return "LoneSlash"
	case escape.InvalidEscape:
		return "InvalidEscape"
	case escape.BareCarriageReturn:
		return "BareCarriageReturn"
	case escape.InvalidHexEscape:
		return "InvalidHexEscape"
	case escape.OutOfRangeHexEscape:
		return "OutOfRangeHexEscape"
	case escape.InvalidUnicodeEscape:
		return "InvalidUnicodeEscape"
	case escape.OutOfRangeUnicodeEscape:
		return "OutOfRangeUnicodeEscape"
	default:
		return "EscapeError"
	}
}

// lowerStringToken unescapes a still-quoted string literal token at
// absolute offset start, pushing decode diagnostics on failure.
func (l *lowerer) lowerStringToken(tok string, start int) (string, bool) {
	value, _, errs := escape.UnescapeStr(tok, start)
	if len(errs) > 0 {
		l.pushEscapeErrors(errs)
		return "", false
	}
	return value, true
}

// lowerQualifiedName joins a (possibly `::`-qualified) cst.Name into
// its "::"-joined string form.
func (l *lowerer) lowerQualifiedName(n cst.Name) (string, bool) {
	segs := n.Segments()
	if len(segs) == 0 {
		return "", false
	}
	return strings.Join(segs, "::"), true
}

// lowerUnqualifiedName lowers a cst.Name that must be a single,
// unqualified segment (§4.9 QualifiedEntityName / QualifiedTypeName).
func (l *lowerer) lowerUnqualifiedName(n cst.Name) (string, bool) {
	segs := n.Segments()
	if len(segs) != 1 {
		return "", false
	}
	return segs[0], true
}

// lowerAnnotations lowers `@key("value")` annotations, reporting a
// repeated key as a diagnostic rather than silently overwriting it.
func (l *lowerer) lowerAnnotations(anns []cst.Annotation) *ast.Annotations {
	out := ast.NewAnnotations()
	for _, a := range anns {
		key := a.Key()
		if key == "" {
			continue
		}
		tok, ok := a.ValueToken()
		if !ok {
			continue
		}
		start, _, _ := childSpan(a.Tree, a.Idx, syntax.KindStringLiteral)
		value, ok := l.lowerStringToken(tok, start)
		if !ok {
			continue
		}
		if !out.Add(key, value) {
			astart, aend := a.Range()
			l.diags.Push(diagnostic.NewError("DuplicateAnnotation", "duplicate annotation `"+key+"`").
				WithPrimary(sp(astart, aend), "duplicate key"))
		}
	}
	return out
}

// parseIntLiteral parses an unsigned or already-negated Cedar integer
// literal into an int64, pushing IntegerLiteralOutOfRange on overflow.
func (l *lowerer) parseIntLiteral(text string, start, end int) (int64, bool) {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		l.diags.Push(diagnostic.NewError("IntegerLiteralOutOfRange", "integer literal out of range").
			WithPrimary(sp(start, end), "must fit in a signed 64-bit integer"))
		return 0, false
	}
	return v, true
}

// childSpan locates the absolute byte span of i's first direct child
// of the given kind.
func childSpan(t *syntax.Tree, i syntax.NodeIndex, kind syntax.Kind) (start, end int, ok bool) {
	c, found := t.Child(i, kind)
	if !found {
		return 0, 0, false
	}
	start, end = t.Range(c)
	return start, end, true
}
