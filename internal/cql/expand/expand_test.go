package expand

import (
	"testing"

	"github.com/czcorpus/kwic/internal/cql/ast"
)

func word(s string) ast.Node { return &ast.DefaultToken{Value: s} }

func TestExpand_NoQuantifierIsIdentity(t *testing.T) {
	pattern := &ast.Pattern{Items: []ast.Node{word("a"), word("b")}}
	out := Expand(pattern, 6)
	if len(out) != 1 {
		t.Fatalf("expected exactly 1 concrete pattern, got %d", len(out))
	}
	if len(out[0].Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out[0].Items))
	}
}

func TestExpand_FixedOneQuantifierCollapses(t *testing.T) {
	pattern := &ast.Pattern{Items: []ast.Node{
		&ast.Quantify{Child: word("a"), Min: 1, Max: 1},
	}}
	out := Expand(pattern, 6)
	if len(out) != 1 || len(out[0].Items) != 1 {
		t.Fatalf("expected a single 1-token pattern, got %v", out)
	}
}

func TestExpand_RangeQuantifierProducesOneConcretePerCount(t *testing.T) {
	// "b"{1,2} produces counts 1 and 2 => two concrete patterns
	pattern := &ast.Pattern{Items: []ast.Node{
		word("a"),
		&ast.Quantify{Child: word("b"), Min: 1, Max: 2},
		word("c"),
	}}
	out := Expand(pattern, 6)
	if len(out) != 2 {
		t.Fatalf("expected 2 concrete patterns, got %d", len(out))
	}
	lengths := map[int]bool{}
	for _, p := range out {
		lengths[len(p.Items)] = true
	}
	if !lengths[3] || !lengths[4] {
		t.Errorf("expected lengths 3 and 4 among concrete patterns, got %v", out)
	}
}

func TestExpand_ZeroCountEliminatesSubject(t *testing.T) {
	pattern := &ast.Pattern{Items: []ast.Node{
		&ast.Quantify{Child: &ast.EmptyToken{}, Min: 0, Max: 0},
	}}
	out := Expand(pattern, 6)
	if len(out) != 1 || len(out[0].Items) != 0 {
		t.Fatalf("expected one empty concrete pattern, got %v", out)
	}
}

func TestExpand_UnboundedUsesMaxQuant(t *testing.T) {
	pattern := &ast.Pattern{Items: []ast.Node{
		&ast.Quantify{Child: word("a"), Min: 1, Unbounded: true},
	}}
	out := Expand(pattern, 3)
	if len(out) != 3 {
		t.Fatalf("expected 3 concrete patterns (counts 1..3), got %d", len(out))
	}
}

func TestExpand_DuplicatesSuppressed(t *testing.T) {
	// Two independent {0,1} quantified empty tokens in sequence expand to
	// four count combinations; (1,0) and (0,1) both produce the same
	// single-[] pattern, so only three distinct patterns remain.
	pattern := &ast.Pattern{Items: []ast.Node{
		&ast.Quantify{Child: &ast.EmptyToken{}, Min: 0, Max: 1},
		&ast.Quantify{Child: &ast.EmptyToken{}, Min: 0, Max: 1},
	}}
	out := Expand(pattern, 6)
	if len(out) != 3 {
		t.Fatalf("expected 3 duplicate-suppressed patterns (lengths 0, 1, 2), got %d", len(out))
	}
}

func TestExpand_CartesianProductAcrossSites(t *testing.T) {
	pattern := &ast.Pattern{Items: []ast.Node{
		&ast.Quantify{Child: word("a"), Min: 1, Max: 2},
		&ast.Quantify{Child: word("b"), Min: 1, Max: 2},
	}}
	out := Expand(pattern, 6)
	if len(out) != 4 {
		t.Fatalf("expected 2*2=4 concrete patterns, got %d", len(out))
	}
}

func TestExpand_LabelWrapsMultiNodeExpansion(t *testing.T) {
	pattern := &ast.Pattern{Items: []ast.Node{
		&ast.Label{
			Name:  "n",
			Child: &ast.Quantify{Child: word("a"), Min: 2, Max: 2},
		},
	}}
	out := Expand(pattern, 6)
	if len(out) != 1 {
		t.Fatalf("expected 1 concrete pattern, got %d", len(out))
	}
	if len(out[0].Items) != 1 {
		t.Fatalf("expected the repeated pair to be wrapped under one label node, got %d items", len(out[0].Items))
	}
	label, ok := out[0].Items[0].(*ast.Label)
	if !ok {
		t.Fatalf("expected a Label node, got %T", out[0].Items[0])
	}
	group, ok := label.Child.(*ast.Group)
	if !ok || len(group.Items) != 2 {
		t.Fatalf("expected the label to wrap a 2-item group, got %#v", label.Child)
	}
}
