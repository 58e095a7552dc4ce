package interpreter

import (
	"github.com/czcorpus/kwic/internal/cql/ast"
	"github.com/czcorpus/kwic/internal/cql/lexer"
)

// Interpret lowers a single concrete pattern (one of the Patterns
// returned by internal/cql/expand.Expand) into a flat sequence of query
// terms, following the rules in spec.md §4.F. defaultAttr names the
// attribute a bare DefaultToken is matched against.
func Interpret(pattern *ast.Pattern, defaultAttr string) []QueryTerm {
	var out []QueryTerm
	for _, item := range pattern.Items {
		out = append(out, lower(item, defaultAttr)...)
	}
	return out
}

func lower(n ast.Node, defaultAttr string) []QueryTerm {
	switch node := n.(type) {
	case *ast.DefaultToken:
		return []QueryTerm{{Match: map[string][]string{defaultAttr: {node.Value}}}}

	case *ast.EmptyToken:
		return []QueryTerm{{}}

	case *ast.AssignAttr:
		term := QueryTerm{}
		if node.Relation == lexer.IsNot {
			term.NotMatch = mergeAttrMap(nil, node.Name, node.Value)
		} else {
			term.Match = mergeAttrMap(nil, node.Name, node.Value)
		}
		return []QueryTerm{term}

	case *ast.ConjoinAttr:
		left := lowerSingle(node.Left, defaultAttr)
		right := lowerSingle(node.Right, defaultAttr)
		merged := QueryTerm{}
		for attr, values := range left.Match {
			for _, v := range values {
				merged.Match = mergeAttrMap(merged.Match, attr, v)
			}
		}
		for attr, values := range right.Match {
			for _, v := range values {
				merged.Match = mergeAttrMap(merged.Match, attr, v)
			}
		}
		for attr, values := range left.NotMatch {
			for _, v := range values {
				merged.NotMatch = mergeAttrMap(merged.NotMatch, attr, v)
			}
		}
		for attr, values := range right.NotMatch {
			for _, v := range values {
				merged.NotMatch = mergeAttrMap(merged.NotMatch, attr, v)
			}
		}
		return []QueryTerm{merged}

	case *ast.Group:
		var out []QueryTerm
		for _, item := range node.Items {
			out = append(out, lower(item, defaultAttr)...)
		}
		return out

	case *ast.Label:
		terms := lower(node.Child, defaultAttr)
		for i := range terms {
			terms[i].Labels = withLabel(terms[i].Labels, node.Name)
		}
		return terms

	case *ast.Quantify:
		// Defensive: expand.Expand should already have resolved every
		// Quantify into repeated raw nodes before interpretation, but a
		// fixed {n} site is lowered correctly even if handed here
		// directly.
		count := node.Max
		if node.Unbounded {
			count = node.Min
		}
		var out []QueryTerm
		for i := 0; i < count; i++ {
			out = append(out, lower(node.Child, defaultAttr)...)
		}
		return out

	default:
		return nil
	}
}

// lowerSingle lowers a node that the grammar guarantees produces exactly
// one query term (an AssignAttr or ConjoinAttr operand inside an
// AttrExpr).
func lowerSingle(n ast.Node, defaultAttr string) QueryTerm {
	terms := lower(n, defaultAttr)
	if len(terms) == 0 {
		return QueryTerm{}
	}
	return terms[0]
}
