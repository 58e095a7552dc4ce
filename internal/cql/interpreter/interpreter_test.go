package interpreter

import (
	"testing"

	"github.com/czcorpus/kwic/internal/cql/ast"
	"github.com/czcorpus/kwic/internal/cql/lexer"
)

func TestInterpret_DefaultToken(t *testing.T) {
	pattern := &ast.Pattern{Items: []ast.Node{&ast.DefaultToken{Value: "run"}}}
	terms := Interpret(pattern, "word")
	if len(terms) != 1 {
		t.Fatalf("expected 1 term, got %d", len(terms))
	}
	if terms[0].Match["word"][0] != "run" {
		t.Errorf("expected word=run, got %v", terms[0].Match)
	}
}

func TestInterpret_EmptyTokenMatchesAnything(t *testing.T) {
	pattern := &ast.Pattern{Items: []ast.Node{&ast.EmptyToken{}}}
	terms := Interpret(pattern, "word")
	if len(terms) != 1 || !terms[0].IsEmpty() {
		t.Fatalf("expected a single empty term, got %v", terms)
	}
}

func TestInterpret_AssignAttrPositiveAndNegative(t *testing.T) {
	pattern := &ast.Pattern{Items: []ast.Node{
		&ast.AssignAttr{Name: "pos", Relation: lexer.Is, Value: "N"},
		&ast.AssignAttr{Name: "pos", Relation: lexer.IsNot, Value: "V"},
	}}
	terms := Interpret(pattern, "word")
	if terms[0].Match["pos"][0] != "N" {
		t.Errorf("expected match pos=N, got %v", terms[0])
	}
	if terms[1].NotMatch["pos"][0] != "V" {
		t.Errorf("expected not_match pos=V, got %v", terms[1])
	}
}

func TestInterpret_ConjoinAttrMergesConstraints(t *testing.T) {
	pattern := &ast.Pattern{Items: []ast.Node{
		&ast.ConjoinAttr{
			Left:  &ast.AssignAttr{Name: "word", Relation: lexer.Is, Value: "run"},
			Right: &ast.AssignAttr{Name: "pos", Relation: lexer.IsNot, Value: "N"},
		},
	}}
	terms := Interpret(pattern, "word")
	if len(terms) != 1 {
		t.Fatalf("expected 1 term, got %d", len(terms))
	}
	if terms[0].Match["word"][0] != "run" {
		t.Errorf("expected match word=run, got %v", terms[0].Match)
	}
	if terms[0].NotMatch["pos"][0] != "N" {
		t.Errorf("expected not_match pos=N, got %v", terms[0].NotMatch)
	}
}

func TestInterpret_GroupConcatenates(t *testing.T) {
	pattern := &ast.Pattern{Items: []ast.Node{
		&ast.Group{Items: []ast.Node{
			&ast.DefaultToken{Value: "a"},
			&ast.DefaultToken{Value: "b"},
		}},
	}}
	terms := Interpret(pattern, "word")
	if len(terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(terms))
	}
}

func TestInterpret_LabelAttachesToEveryTermItProduces(t *testing.T) {
	pattern := &ast.Pattern{Items: []ast.Node{
		&ast.Label{
			Name: "n",
			Child: &ast.Group{Items: []ast.Node{
				&ast.DefaultToken{Value: "a"},
				&ast.DefaultToken{Value: "b"},
			}},
		},
	}}
	terms := Interpret(pattern, "word")
	if len(terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(terms))
	}
	for _, term := range terms {
		if len(term.Labels) != 1 || term.Labels[0] != "n" {
			t.Errorf("expected label n on every term, got %v", term.Labels)
		}
	}
}

func TestInterpret_LabelDoesNotDuplicate(t *testing.T) {
	pattern := &ast.Pattern{Items: []ast.Node{
		&ast.Label{Name: "n", Child: &ast.Label{Name: "n", Child: &ast.DefaultToken{Value: "a"}}},
	}}
	terms := Interpret(pattern, "word")
	if len(terms[0].Labels) != 1 {
		t.Errorf("expected a single deduplicated label, got %v", terms[0].Labels)
	}
}
