// Package expand implements the CQL quantifier expander (spec.md §4.E):
// it rewrites a parametric pattern into the finite set of concrete,
// fixed-length patterns its quantifiers admit, via a Cartesian product
// across every quantifier site.
package expand

import (
	"fmt"
	"strings"

	"github.com/czcorpus/kwic/internal/cql/ast"
	"github.com/czcorpus/kwic/internal/cql/lexer"
)

// Expand materializes every concrete pattern implied by pattern's
// quantifiers. maxQuant substitutes for unbounded quantifiers (`+`, `*`);
// it is assumed already validated (>=1) by the caller. Structurally
// identical results are suppressed; a quantifier fixed at 1 collapses to
// its child with no effect, and a zero-count instance removes its
// subject from the sequence entirely.
func Expand(pattern *ast.Pattern, maxQuant int) []*ast.Pattern {
	alts := expandItems(pattern.Items, maxQuant)

	seen := make(map[string]bool, len(alts))
	out := make([]*ast.Pattern, 0, len(alts))
	for _, alt := range alts {
		key := sequenceKey(alt)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, &ast.Pattern{Items: alt, Loc: pattern.Loc})
	}
	return out
}

// expandItems expands an ordered sequence of sibling nodes (a Pattern's
// or Group's Items) into every concrete sequence the Cartesian product of
// their individual expansions admits.
func expandItems(items []ast.Node, maxQuant int) [][]ast.Node {
	alts := [][]ast.Node{{}}
	for _, item := range items {
		itemAlts := expandNode(item, maxQuant)
		next := make([][]ast.Node, 0, len(alts)*len(itemAlts))
		for _, prefix := range alts {
			for _, itemAlt := range itemAlts {
				combined := make([]ast.Node, 0, len(prefix)+len(itemAlt))
				combined = append(combined, prefix...)
				combined = append(combined, itemAlt...)
				next = append(next, combined)
			}
		}
		alts = next
	}
	return alts
}

// expandNode returns every concrete sequence a single node can expand
// into. Leaf nodes (anything without a quantifier or group structure of
// its own) always expand to exactly one single-element sequence.
func expandNode(n ast.Node, maxQuant int) [][]ast.Node {
	switch node := n.(type) {
	case *ast.Group:
		return expandItems(node.Items, maxQuant)

	case *ast.Label:
		childAlts := expandNode(node.Child, maxQuant)
		result := make([][]ast.Node, 0, len(childAlts))
		for _, alt := range childAlts {
			result = append(result, []ast.Node{wrapLabel(node, alt)})
		}
		return result

	case *ast.Quantify:
		max := node.Max
		if node.Unbounded {
			max = maxQuant
		}
		childAlts := expandNode(node.Child, maxQuant)
		var result [][]ast.Node
		for count := node.Min; count <= max; count++ {
			if count == 0 {
				result = append(result, []ast.Node{})
				continue
			}
			for _, alt := range childAlts {
				seq := make([]ast.Node, 0, len(alt)*count)
				for i := 0; i < count; i++ {
					seq = append(seq, alt...)
				}
				result = append(result, seq)
			}
		}
		return result

	default:
		// AttrName, AttrValue, AssignAttr, ConjoinAttr, DefaultToken,
		// EmptyToken: no quantifier site of their own.
		return [][]ast.Node{{n}}
	}
}

// wrapLabel attaches label's name to a single expanded alternative. A
// multi-node alternative (the label's child was itself a group or an
// expanded quantifier) is wrapped in a Group so the interpreter can
// still apply the label to every term the child produces.
func wrapLabel(label *ast.Label, alt []ast.Node) ast.Node {
	if len(alt) == 1 {
		return &ast.Label{Name: label.Name, Child: alt[0], Loc: label.Loc}
	}
	return &ast.Label{Name: label.Name, Child: &ast.Group{Items: alt, Loc: label.Loc}, Loc: label.Loc}
}

// sequenceKey builds a deterministic structural fingerprint of a
// concrete sequence, used to suppress duplicate patterns produced by
// distinct quantifier-count choices that happen to coincide (spec.md
// §4.E).
func sequenceKey(seq []ast.Node) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, n := range seq {
		if i > 0 {
			b.WriteByte(',')
		}
		writeNodeKey(&b, n)
	}
	b.WriteByte(']')
	return b.String()
}

func writeNodeKey(b *strings.Builder, n ast.Node) {
	switch node := n.(type) {
	case *ast.AttrName:
		fmt.Fprintf(b, "AttrName(%s)", node.Name)
	case *ast.AttrValue:
		fmt.Fprintf(b, "AttrValue(%q)", node.Value)
	case *ast.AssignAttr:
		fmt.Fprintf(b, "Assign(%s%s%q)", node.Name, relSym(node.Relation), node.Value)
	case *ast.ConjoinAttr:
		b.WriteString("Conjoin(")
		writeNodeKey(b, node.Left)
		b.WriteByte('&')
		writeNodeKey(b, node.Right)
		b.WriteByte(')')
	case *ast.DefaultToken:
		fmt.Fprintf(b, "Default(%q)", node.Value)
	case *ast.EmptyToken:
		b.WriteString("Empty")
	case *ast.Group:
		b.WriteString("Group")
		b.WriteString(sequenceKey(node.Items))
	case *ast.Label:
		fmt.Fprintf(b, "Label(%s,", node.Name)
		writeNodeKey(b, node.Child)
		b.WriteByte(')')
	case *ast.Quantify:
		fmt.Fprintf(b, "Quantify(%d,%d,%v,", node.Min, node.Max, node.Unbounded)
		writeNodeKey(b, node.Child)
		b.WriteByte(')')
	default:
		b.WriteString("?")
	}
}

func relSym(r lexer.Relation) string {
	if r == lexer.IsNot {
		return "!="
	}
	return "="
}
