package lexer

import "testing"

func scan(source string) ([]Token, []LexError) {
	return New(source).ScanTokens()
}

func types(tokens []Token) []TokenType {
	out := make([]TokenType, 0, len(tokens))
	for _, t := range tokens {
		if t.Type == EOF {
			continue
		}
		out = append(out, t.Type)
	}
	return out
}

func assertTypes(t *testing.T, tokens []Token, want ...TokenType) {
	t.Helper()
	got := types(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens %v, got %d: %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestLexer_EmptyToken(t *testing.T) {
	tokens, errs := scan("[]")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertTypes(t, tokens, EMPTY_TOKEN)
}

func TestLexer_DefaultToken(t *testing.T) {
	tokens, errs := scan(`"hello"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertTypes(t, tokens, DEFAULT_TOKEN)
	if tokens[0].Literal != "hello" {
		t.Errorf("expected literal 'hello', got %v", tokens[0].Literal)
	}
}

func TestLexer_AttrEquality(t *testing.T) {
	tokens, errs := scan(`[word="run"]`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertTypes(t, tokens, ATTR_NAME, ATTR_RELATION, ATTR_VALUE)
	if tokens[0].Literal != "word" {
		t.Errorf("expected attr name 'word', got %v", tokens[0].Literal)
	}
	if tokens[1].Literal != Is {
		t.Errorf("expected relation Is, got %v", tokens[1].Literal)
	}
	if tokens[2].Literal != "run" {
		t.Errorf("expected value 'run', got %v", tokens[2].Literal)
	}
}

func TestLexer_AttrInequality(t *testing.T) {
	tokens, _ := scan(`[pos!="N"]`)
	if tokens[1].Literal != IsNot {
		t.Errorf("expected relation IsNot, got %v", tokens[1].Literal)
	}
}

func TestLexer_Conjunction(t *testing.T) {
	tokens, errs := scan(`[word="x" & pos="N"]`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertTypes(t, tokens, ATTR_NAME, ATTR_RELATION, ATTR_VALUE, ATTR_AND, ATTR_NAME, ATTR_RELATION, ATTR_VALUE)
}

func TestLexer_Group(t *testing.T) {
	tokens, _ := scan(`( "a" "b" )`)
	assertTypes(t, tokens, LPAREN, DEFAULT_TOKEN, DEFAULT_TOKEN, RPAREN)
}

func TestLexer_Label(t *testing.T) {
	tokens, errs := scan(`n:[pos="N"]`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertTypes(t, tokens, TOKEN_LABEL, ATTR_NAME, ATTR_RELATION, ATTR_VALUE)
	if tokens[0].Literal != "n" {
		t.Errorf("expected label 'n', got %v", tokens[0].Literal)
	}
}

func TestLexer_Quantifiers(t *testing.T) {
	cases := []struct {
		src  string
		want Quantifier
	}{
		{`"a"?`, Quantifier{Min: 0, Max: 1}},
		{`"a"+`, Quantifier{Min: 1, Unbounded: true}},
		{`"a"*`, Quantifier{Min: 0, Unbounded: true}},
		{`"a"{3}`, Quantifier{Min: 3, Max: 3}},
		{`"a"{1,2}`, Quantifier{Min: 1, Max: 2}},
		{`"a"{ 1 , 2 }`, Quantifier{Min: 1, Max: 2}},
	}
	for _, c := range cases {
		tokens, errs := scan(c.src)
		if len(errs) != 0 {
			t.Fatalf("%s: unexpected errors: %v", c.src, errs)
		}
		assertTypes(t, tokens, DEFAULT_TOKEN, TOKEN_QUANTIFIER)
		got := tokens[1].Literal.(Quantifier)
		if got != c.want {
			t.Errorf("%s: expected %v, got %v", c.src, c.want, got)
		}
	}
}

func TestLexer_EscapedQuoteIsLiteral(t *testing.T) {
	tokens, errs := scan(`"a\"b"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[0].Literal != `a"b` {
		t.Errorf(`expected literal a"b, got %v`, tokens[0].Literal)
	}
}

func TestLexer_OtherEscapesPreserved(t *testing.T) {
	tokens, errs := scan(`"a\.b"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[0].Literal != `a\.b` {
		t.Errorf(`expected literal a\.b preserved, got %v`, tokens[0].Literal)
	}
}

func TestLexer_UnicodeInQuotedValue(t *testing.T) {
	tokens, errs := scan(`"café"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[0].Literal != "café" {
		t.Errorf("expected café, got %v", tokens[0].Literal)
	}
}

func TestLexer_UnterminatedStringIsError(t *testing.T) {
	_, errs := scan(`"abc`)
	if len(errs) == 0 {
		t.Fatal("expected an error for an unterminated string")
	}
}

func TestLexer_UnterminatedBracketIsError(t *testing.T) {
	_, errs := scan(`[word="a"`)
	if len(errs) == 0 {
		t.Fatal("expected an error for an unterminated bracket")
	}
}

func TestLexer_UnterminatedBraceIsError(t *testing.T) {
	_, errs := scan(`"a"{1,2`)
	if len(errs) == 0 {
		t.Fatal("expected an error for an unterminated quantifier brace")
	}
}

func TestLexer_UnexpectedCharacterIsError(t *testing.T) {
	_, errs := scan(`%`)
	if len(errs) == 0 {
		t.Fatal("expected an error for an unexpected character")
	}
}

func TestLexer_LabelWithoutColonIsError(t *testing.T) {
	_, errs := scan(`abc "x"`)
	if len(errs) == 0 {
		t.Fatal("expected an error for a bare identifier with no trailing colon")
	}
}
