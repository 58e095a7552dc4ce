// Package parser implements the CQL recursive-descent parser (spec.md
// §4.D), transforming the lexer's token stream into a tree of pattern
// nodes under internal/cql/ast.
package parser

import (
	"fmt"

	"github.com/czcorpus/kwic/internal/cql/ast"
	"github.com/czcorpus/kwic/internal/cql/lexer"
)

// ParseError represents a grammar violation: an unbalanced group, a
// missing attribute relation or value, or any other deviation from the
// EBNF in spec.md §4.D.
type ParseError struct {
	Message  string
	Location ast.SourceLocation
	Token    lexer.Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s (near %q)",
		e.Location.Line, e.Location.Column, e.Message, e.Token.Lexeme)
}

func newParseError(message string, token lexer.Token) ParseError {
	return ParseError{
		Message:  message,
		Location: ast.SourceLocation{Line: token.Line, Column: token.Column},
		Token:    token,
	}
}
