package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	categoryColor = map[Category]*color.Color{
		CategoryLex:    color.New(color.FgRed, color.Bold),
		CategoryParse:  color.New(color.FgYellow, color.Bold),
		CategorySchema: color.New(color.FgMagenta, color.Bold),
		CategoryQuery:  color.New(color.FgCyan, color.Bold),
	}
	locColor = color.New(color.Faint)
)

// FormatDiagnostic renders a single diagnostic the way the CLI prints
// lexer/parser/schema/query errors to the terminal.
func FormatDiagnostic(d Diagnostic) string {
	var b strings.Builder

	label := categoryColor[d.Category]
	if label == nil {
		label = color.New(color.FgRed)
	}
	b.WriteString(label.Sprintf("[%s]", strings.ToUpper(string(d.Category))))
	b.WriteByte(' ')
	b.WriteString(d.Message)

	if d.Line > 0 || d.Column > 0 {
		b.WriteByte(' ')
		b.WriteString(locColor.Sprintf("(%d:%d)", d.Line, d.Column))
	}
	if d.Lexeme != "" {
		fmt.Fprintf(&b, " near %q", d.Lexeme)
	}
	return b.String()
}

// FormatDiagnostics renders a batch of diagnostics, one per line, prefixed
// with a summary count.
func FormatDiagnostics(diags []Diagnostic) string {
	if len(diags) == 0 {
		return color.New(color.FgGreen).Sprint("no errors")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d error(s):\n", len(diags))
	for _, d := range diags {
		b.WriteString("  ")
		b.WriteString(FormatDiagnostic(d))
		b.WriteByte('\n')
	}
	return b.String()
}
