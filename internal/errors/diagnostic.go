package errors

import (
	"github.com/czcorpus/kwic/internal/cql/lexer"
	"github.com/czcorpus/kwic/internal/cql/parser"
)

// ToDiagnostic converts any error in the taxonomy to its wire Diagnostic
// shape. Errors outside the taxonomy (corpus loading I/O, etc.) are
// rendered as an uncategorized message so the web and CLI layers never
// need a type switch of their own.
func ToDiagnostic(err error) Diagnostic {
	switch e := err.(type) {
	case lexer.LexError:
		return Diagnostic{Category: CategoryLex, Message: e.Message, Line: e.Line, Column: e.Column, Lexeme: e.Lexeme}
	case *parser.ParseError:
		return Diagnostic{
			Category: CategoryParse,
			Message:  e.Message,
			Line:     e.Location.Line,
			Column:   e.Location.Column,
			Lexeme:   e.Token.Lexeme,
		}
	case *SchemaError:
		return Diagnostic{Category: CategorySchema, Message: e.Error()}
	case *QueryError:
		return Diagnostic{Category: CategoryQuery, Message: e.Message}
	default:
		return Diagnostic{Category: "internal", Message: e.Error()}
	}
}

// ToDiagnostics converts a batch of errors, e.g. the []error returned by
// search.Index.Search on a compile failure.
func ToDiagnostics(errs []error) []Diagnostic {
	diags := make([]Diagnostic, len(errs))
	for i, err := range errs {
		diags[i] = ToDiagnostic(err)
	}
	return diags
}
