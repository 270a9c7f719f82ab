package diagnostic

import (
	"fmt"
	"strconv"
	"strings"
)

// ANSI escapes used by Render when color is enabled. Kept as package
// vars (not constants) purely so tests can zero them out instead of
// scraping escape codes out of expected strings.
var (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiGreen  = "\x1b[32m"
)

type position struct {
	line, col int // 1-based
	lineStart int
	lineEnd   int
}

func locate(source string, offset int) position {
	if offset > len(source) {
		offset = len(source)
	}
	line := 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	lineEnd := len(source)
	if idx := strings.IndexByte(source[lineStart:], '\n'); idx >= 0 {
		lineEnd = lineStart + idx
	}
	col := offset - lineStart + 1
	return position{line: line, col: col, lineStart: lineStart, lineEnd: lineEnd}
}

// Render renders a single diagnostic with source context in a
// compiler-style layout: a header naming the severity and message, the
// primary label's source line with a caret underline, each context
// label similarly, then notes, help, and suggestions (with patches
// shown applied inline) in that order (§7).
func Render(path, source string, d Diagnostic, color bool) string {
	var b strings.Builder

	sev := d.Severity.String()
	if color {
		c := ansiRed
		if d.Severity == SeverityWarning {
			c = ansiYellow
		}
		fmt.Fprintf(&b, "%s%s%s%s: %s\n", ansiBold, c, sev, ansiReset, d.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", sev, d.Message)
	}
	if d.Code != "" {
		fmt.Fprintf(&b, "  [%s]\n", d.Code)
	}

	if d.Primary != nil {
		pos := locate(source, d.Primary.Span.Start)
		fmt.Fprintf(&b, "  --> %s:%d:%d\n", path, pos.line, pos.col)
		renderSnippet(&b, source, d.Primary.Span, d.Primary.Message, color)
	}

	for _, ctx := range d.Context {
		pos := locate(source, ctx.Span.Start)
		fmt.Fprintf(&b, "  note: %s\n", ctx.Message)
		fmt.Fprintf(&b, "  --> %s:%d:%d\n", path, pos.line, pos.col)
		renderSnippet(&b, source, ctx.Span, ctx.Message, color)
	}

	for _, note := range d.Notes {
		fmt.Fprintf(&b, "  = note: %s\n", note)
	}
	for _, help := range d.Help {
		fmt.Fprintf(&b, "  = help: %s\n", help)
	}
	for _, s := range d.Suggestions {
		renderSuggestion(&b, source, s, color)
	}

	return b.String()
}

func renderSnippet(b *strings.Builder, source string, span Span, label string, color bool) {
	pos := locate(source, span.Start)
	lineText := source[pos.lineStart:pos.lineEnd]
	gutter := strconv.Itoa(pos.line)
	pad := strings.Repeat(" ", len(gutter))

	fmt.Fprintf(b, "%s |\n", pad)
	fmt.Fprintf(b, "%s | %s\n", gutter, lineText)

	caretLen := span.End - span.Start
	if caretLen < 1 {
		caretLen = 1
	}
	if pos.col-1+caretLen > len(lineText)+1 {
		caretLen = len(lineText) + 1 - (pos.col - 1)
		if caretLen < 1 {
			caretLen = 1
		}
	}
	underline := strings.Repeat(" ", pos.col-1) + strings.Repeat("^", caretLen)
	if label != "" {
		underline += " " + label
	}
	if color {
		fmt.Fprintf(b, "%s | %s%s%s\n", pad, ansiRed, underline, ansiReset)
	} else {
		fmt.Fprintf(b, "%s | %s\n", pad, underline)
	}
}

func renderSuggestion(b *strings.Builder, source string, s Suggestion, color bool) {
	kind := "hint"
	if s.Kind == SuggestionFix {
		kind = "fix"
	}
	patched := source[:s.Span.Start] + s.Replacement + source[s.Span.End:]
	pos := locate(patched, s.Span.Start)
	lineText := patched[pos.lineStart:pos.lineEnd]

	if color {
		fmt.Fprintf(b, "  = %s%s%s: %s\n", ansiBlue, kind, ansiReset, s.Message)
		fmt.Fprintf(b, "    %s%s%s\n", ansiGreen, lineText, ansiReset)
	} else {
		fmt.Fprintf(b, "  = %s: %s\n", kind, s.Message)
		fmt.Fprintf(b, "    %s\n", lineText)
	}
}

// RenderAll renders every diagnostic in d in order, separated by blank
// lines.
func RenderAll(path, source string, diags []Diagnostic, color bool) string {
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = Render(path, source, d, color)
	}
	return strings.Join(parts, "\n")
}
