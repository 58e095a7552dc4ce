// Package lexer implements the CQL lexer (spec.md §4.C): a state machine
// over the query source that streams it into typed tokens for the parser.
package lexer

import "fmt"

// TokenType identifies the kind of a CQL token (spec.md §3, "CQL token").
type TokenType int

const (
	// EOF marks the end of the token stream.
	EOF TokenType = iota
	// ATTR_NAME is an attribute name inside a bracketed token, e.g. `pos`.
	ATTR_NAME
	// ATTR_VALUE is a quoted attribute value inside a bracketed token.
	ATTR_VALUE
	// ATTR_RELATION is `=` (Is) or `!=` (IsNot).
	ATTR_RELATION
	// ATTR_AND is the `&` attribute conjunction operator.
	ATTR_AND
	// TOKEN_QUANTIFIER is `?`, `+`, `*`, `{n}` or `{n,m}`.
	TOKEN_QUANTIFIER
	// TOKEN_LABEL is a capture-group label, e.g. `n:` (without the colon).
	TOKEN_LABEL
	// EMPTY_TOKEN is `[]`.
	EMPTY_TOKEN
	// DEFAULT_TOKEN is a bare quoted string outside brackets.
	DEFAULT_TOKEN
	// LPAREN is `(`.
	LPAREN
	// RPAREN is `)`.
	RPAREN
)

var tokenTypeNames = map[TokenType]string{
	EOF:              "EOF",
	ATTR_NAME:        "ATTR_NAME",
	ATTR_VALUE:       "ATTR_VALUE",
	ATTR_RELATION:    "ATTR_RELATION",
	ATTR_AND:         "ATTR_AND",
	TOKEN_QUANTIFIER: "TOKEN_QUANTIFIER",
	TOKEN_LABEL:      "TOKEN_LABEL",
	EMPTY_TOKEN:      "EMPTY_TOKEN",
	DEFAULT_TOKEN:    "DEFAULT_TOKEN",
	LPAREN:           "LPAREN",
	RPAREN:           "RPAREN",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// Relation is the attribute-equality relation carried by an ATTR_RELATION
// token's Literal.
type Relation int

const (
	// Is is CQL's `=`.
	Is Relation = iota
	// IsNot is CQL's `!=`.
	IsNot
)

func (r Relation) String() string {
	if r == IsNot {
		return "!="
	}
	return "="
}

// Quantifier is the (min, max) pair carried by a TOKEN_QUANTIFIER token's
// Literal. Unbounded is true for `+`/`*`, where Max has no finite value
// until the quantifier expander substitutes max_quant (spec.md §4.E).
type Quantifier struct {
	Min       int
	Max       int
	Unbounded bool
}

func (q Quantifier) String() string {
	if q.Unbounded {
		return fmt.Sprintf("{%d,}", q.Min)
	}
	if q.Min == q.Max {
		return fmt.Sprintf("{%d}", q.Min)
	}
	return fmt.Sprintf("{%d,%d}", q.Min, q.Max)
}

// Token is a single lexical token produced by the lexer.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // string for ATTR_NAME/ATTR_VALUE/TOKEN_LABEL/DEFAULT_TOKEN, Relation or Quantifier otherwise
	Line    int
	Column  int
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %q (%v) at %d:%d", t.Type, t.Lexeme, t.Literal, t.Line, t.Column)
	}
	return fmt.Sprintf("%s %q at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

// LexError represents a fatal failure to tokenize the source: an illegal
// character, or an unterminated string, bracket, or quantifier brace
// (spec.md §4.C, §7).
type LexError struct {
	Message string
	Line    int
	Column  int
	Lexeme  string
}

func (e LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s (near %q)", e.Line, e.Column, e.Message, e.Lexeme)
}
