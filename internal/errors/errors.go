// Package errors provides the structured error taxonomy shared across the
// concordancer: schema and query configuration errors, plus terminal and
// JSON formatting shared by the lexer- and parser-local error types.
//
// Lexical and syntax errors are owned by the packages that raise them
// (cql/lexer.LexError, cql/parser.ParseError) so that each stage can attach
// stage-specific context without importing this package. This package holds
// the two error kinds that cut across stages (schema validation at index
// build time, query configuration) and the shared formatting logic.
package errors

import (
	"encoding/json"
	"fmt"
)

// Category groups errors the way spec.md §7 names them.
type Category string

const (
	CategoryLex    Category = "lex"
	CategoryParse  Category = "parse"
	CategorySchema Category = "schema"
	CategoryQuery  Category = "query"
)

// Located is implemented by any error that can report a source position.
// Not every error kind has one (SchemaError and QueryError often don't),
// in which case Line/Column are zero.
type Located interface {
	error
	Position() (line, column int)
}

// SchemaError reports a token whose shape doesn't match §4.A (not a
// string, a list of strings, or a string map), discovered while building
// the indexed corpus. A token whose attributes differ from the schema
// established by the first token is not reported.
type SchemaError struct {
	Message string
	Doc     int
	Sent    int
	Tok     int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error at (%d,%d,%d): %s", e.Doc, e.Sent, e.Tok, e.Message)
}

// Position implements Located. Schema errors are positioned in the corpus,
// not in source text, so Line reports the sentence index and Column the
// token index within it.
func (e *SchemaError) Position() (int, int) {
	return e.Sent, e.Tok
}

// QueryError reports a configuration error in corpus-level query settings,
// namely a negative max_quant (zero selects the default; spec.md §7).
type QueryError struct {
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query configuration error: %s", e.Message)
}

// Diagnostic is the category-tagged, JSON-serializable shape every error in
// the taxonomy is rendered to for the HTTP API and the terminal formatter.
type Diagnostic struct {
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Lexeme   string   `json:"lexeme,omitempty"`
}

// ToJSON renders a slice of diagnostics as a JSON array, for the search
// API's error responses.
func ToJSON(diags []Diagnostic) ([]byte, error) {
	return json.Marshal(diags)
}
