package search

import (
	"testing"

	"github.com/czcorpus/kwic/internal/corpus"
	"github.com/czcorpus/kwic/internal/match"
)

func collect(t *testing.T, idx *Index, cql string, left, right int) []match.KWIC {
	t.Helper()
	seq, errs := idx.Search(cql, left, right)
	if len(errs) != 0 {
		t.Fatalf("unexpected compile errors for %q: %v", cql, errs)
	}
	var out []match.KWIC
	seq(func(k match.KWIC) bool {
		out = append(out, k)
		return true
	})
	return out
}

func buildIndex(t *testing.T, sentences ...[]interface{}) *Index {
	t.Helper()
	doc := make(corpus.RawDocument, len(sentences))
	for i, s := range sentences {
		doc[i] = s
	}
	idx, err := NewIndex([]corpus.RawDocument{doc}, corpus.Config{})
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	return idx
}

// Scenario 1: literal single token.
func TestSearch_LiteralSingleToken(t *testing.T) {
	idx := buildIndex(t, []interface{}{"a", "b", "c"})
	results := collect(t, idx, `"b"`, 2, 2)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Position != (corpus.Position{Doc: 0, Sent: 0, Tok: 1}) {
		t.Errorf("expected position (0,0,1), got %v", results[0].Position)
	}
}

// Scenario 2: conjunction and negation.
func TestSearch_ConjunctionAndNegation(t *testing.T) {
	idx := buildIndex(t, []interface{}{
		map[string]interface{}{"word": "run", "pos": "V"},
		map[string]interface{}{"word": "run", "pos": "N"},
	})
	results := collect(t, idx, `[word="run" & pos!="N"]`, 2, 2)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Position != (corpus.Position{Doc: 0, Sent: 0, Tok: 0}) {
		t.Errorf("expected position (0,0,0), got %v", results[0].Position)
	}
}

// Scenario 3: regex value.
func TestSearch_RegexValue(t *testing.T) {
	idx := buildIndex(t, []interface{}{"a", "b", "bb", "c"})
	results := collect(t, idx, `"b.*"`, 2, 2)
	positions := map[corpus.Position]bool{}
	for _, r := range results {
		positions[r.Position] = true
	}
	if len(results) != 2 || !positions[corpus.Position{Doc: 0, Sent: 0, Tok: 1}] || !positions[corpus.Position{Doc: 0, Sent: 0, Tok: 2}] {
		t.Fatalf("expected matches at (0,0,1) and (0,0,2), got %v", results)
	}
}

// Scenario 4: quantifier expansion.
func TestSearch_QuantifierExpansion(t *testing.T) {
	idx := buildIndex(t, []interface{}{"a", "b", "b", "c"})
	results := collect(t, idx, `"a" "b"{1,2} "c"`, 2, 2)
	if len(results) != 1 {
		t.Fatalf("expected 1 result (only the length-4 concrete pattern matches this corpus), got %d", len(results))
	}
	if len(results[0].Keyword) != 4 {
		t.Errorf("expected a 4-token keyword, got %d", len(results[0].Keyword))
	}
}

// Scenario 5: labels.
func TestSearch_Labels(t *testing.T) {
	idx := buildIndex(t, []interface{}{
		map[string]interface{}{"word": "the"},
		map[string]interface{}{"word": "dog", "pos": "N"},
		map[string]interface{}{"word": "runs", "pos": "V"},
	})
	results := collect(t, idx, `[] n:[pos="N"] v:[pos="V"]`, 2, 2)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	cg := results[0].CaptureGroups
	if len(cg["n"]) != 1 || cg["n"][0]["word"] != "dog" {
		t.Errorf("expected capture group n=[dog], got %v", cg["n"])
	}
	if len(cg["v"]) != 1 || cg["v"][0]["word"] != "runs" {
		t.Errorf("expected capture group v=[runs], got %v", cg["v"])
	}
}

// Scenario 6: empty token wildcard.
func TestSearch_EmptyTokenWildcard(t *testing.T) {
	idx := buildIndex(t, []interface{}{"x", "y"})
	results := collect(t, idx, `[]{2}`, 2, 2)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if len(results[0].Keyword) != 2 {
		t.Errorf("expected keyword length 2, got %d", len(results[0].Keyword))
	}
}

func TestSearch_LexErrorAbortsBeforeMatching(t *testing.T) {
	idx := buildIndex(t, []interface{}{"a"})
	_, errs := idx.Search(`"unterminated`, 2, 2)
	if len(errs) == 0 {
		t.Fatal("expected a lex error for an unterminated string")
	}
}

func TestSearch_ParseErrorAbortsBeforeMatching(t *testing.T) {
	idx := buildIndex(t, []interface{}{"a"})
	_, errs := idx.Search(`(`, 2, 2)
	if len(errs) == 0 {
		t.Fatal("expected a parse error for an unclosed group")
	}
}

func TestSearch_IdempotentAcrossRuns(t *testing.T) {
	idx := buildIndex(t, []interface{}{"a", "b", "c", "b"})
	first := collect(t, idx, `"b"`, 2, 2)
	second := collect(t, idx, `"b"`, 2, 2)
	if len(first) != len(second) {
		t.Fatalf("expected identical result counts, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Position != second[i].Position {
			t.Errorf("result %d position differs between runs: %v vs %v", i, first[i].Position, second[i].Position)
		}
	}
}

func TestToRecord_PositionFieldNames(t *testing.T) {
	k := match.KWIC{Position: corpus.Position{Doc: 1, Sent: 2, Tok: 3}}
	rec := ToRecord(k)
	if rec.Position.DocIdx != 1 || rec.Position.SentIdx != 2 || rec.Position.TkIdx != 3 {
		t.Errorf("unexpected position record: %+v", rec.Position)
	}
	if rec.CaptureGroups == nil {
		t.Error("expected CaptureGroups to default to an empty, non-nil map")
	}
}
