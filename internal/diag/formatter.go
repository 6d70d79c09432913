package diag

import (
	"fmt"
	"io"
	"strings"
)

// Formatter renders diagnostics with source snippets when the originating
// catalog file is available.
type Formatter struct {
	out     io.Writer
	sources map[string]string
}

// NewFormatter creates a formatter writing to out.
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{
		out:     out,
		sources: make(map[string]string),
	}
}

// AddSource registers source text for a filename so diagnostics pointing into
// it can show the offending line.
func (f *Formatter) AddSource(filename, src string) {
	f.sources[filename] = src
}

// Format renders a single diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}

	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", severity, d.Message)
	}

	if d.Span.IsValid() {
		fmt.Fprintf(f.out, "  --> %s\n", d.Span.String())
		f.printSnippet(d.Span)
	}

	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.out, "help: %s\n", d.Help)
	}
}

// FormatAll renders every diagnostic in order.
func (f *Formatter) FormatAll(diags []Diagnostic) {
	for _, d := range diags {
		f.Format(d)
	}
}

// printSnippet prints the source line the span points at with a caret
// underline, when the source file was registered.
func (f *Formatter) printSnippet(span Span) {
	src, ok := f.sources[span.Filename]
	if !ok {
		return
	}

	lines := strings.Split(src, "\n")
	if span.Line < 1 || span.Line > len(lines) {
		return
	}
	line := lines[span.Line-1]

	width := len(fmt.Sprintf("%d", span.Line))
	fmt.Fprintf(f.out, "   %s |\n", strings.Repeat(" ", width))
	fmt.Fprintf(f.out, " %d | %s\n", span.Line, line)

	underline := span.End - span.Start
	if underline < 1 {
		underline = 1
	}
	pad := span.Column - 1
	if pad < 0 {
		pad = 0
	}
	if pad > len(line) {
		pad = len(line)
	}
	fmt.Fprintf(f.out, "   %s | %s%s\n",
		strings.Repeat(" ", width),
		strings.Repeat(" ", pad),
		strings.Repeat("^", underline))
}
