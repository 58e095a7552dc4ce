// Package kwicprint renders KWIC records to the terminal, the colorized
// Go counterpart of original_source/concordancer/kwic_print.py's tabulated
// concordance view.
package kwicprint

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/czcorpus/kwic/internal/corpus"
	"github.com/czcorpus/kwic/internal/match"
)

// DefaultAttrs selects which token attributes are pasted together (joined with
// "/") when rendering a context span, mirroring kwic_print.py's default
// `attrs=['word', 'pos']`.
var DefaultAttrs = []string{"word", "pos"}

// Print writes a concordance page to w as an aligned table: position,
// left context, keyword (highlighted), right context, and one column per
// capture-group label encountered across the page — the same shape as
// kwic_print.py's `print_keys` plus its dynamically discovered
// `LABEL: <name>` columns.
func Print(w io.Writer, records []match.KWIC, attrs []string) error {
	if len(attrs) == 0 {
		attrs = DefaultAttrs
	}

	labels := collectLabels(records)

	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	header := []string{"position", "left", "keyword", "right"}
	header = append(header, labels...)
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	keyword := color.New(color.FgYellow, color.Bold)
	for _, r := range records {
		row := []string{
			r.Position.String(),
			joinTokens(r.Left, attrs),
			keyword.Sprint(joinTokens(r.Keyword, attrs)),
			joinTokens(r.Right, attrs),
		}
		for _, label := range labels {
			row = append(row, joinTokens(r.CaptureGroups[label], attrs))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// collectLabels gathers every capture-group label across the whole page,
// so every row prints a consistent set of columns — kwic_print.py builds
// this set incrementally across its `print` calls. Labels appear in the
// order of the record that first carries them; labels first seen in the
// same record come out in map iteration order, which is not fixed.
func collectLabels(records []match.KWIC) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, r := range records {
		for label := range r.CaptureGroups {
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
	}
	return labels
}

// joinTokens pastes the requested attributes of each token together with
// "/", then joins the tokens with spaces — kwic_print.py's
// `_separate_attrs`.
func joinTokens(tokens []corpus.Token, attrs []string) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		var vals []string
		for _, a := range attrs {
			if v, ok := tok[a]; ok {
				vals = append(vals, v)
			}
		}
		parts = append(parts, strings.Join(vals, "/"))
	}
	return strings.Join(parts, " ")
}
