package corpus

import (
	"fmt"
	"sort"

	cerrors "github.com/czcorpus/kwic/internal/errors"
)

// Token is a normalized corpus token: a mapping from attribute name to
// attribute value (spec.md §3, "Token (corpus)").
type Token map[string]string

// Clone returns a shallow copy, used when a caller (e.g. the match engine's
// KWIC assembly) must hand out a token without aliasing the corpus's own
// backing map.
func (t Token) Clone() Token {
	c := make(Token, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// SortedAttrs returns the token's attribute names in sorted order, used
// anywhere output must be deterministic (JSON encoding of a Token uses
// Go's own sorted-map-key marshaling, but diagnostics want it too).
func (t Token) SortedAttrs() []string {
	attrs := make([]string, 0, len(t))
	for k := range t {
		attrs = append(attrs, k)
	}
	sort.Strings(attrs)
	return attrs
}

// Normalize converts a raw corpus token (as decoded from JSON: a string, an
// ordered list of strings, or a string-keyed map) into a Token, per
// spec.md §4.A. defaultAttr names the attribute a bare string normalizes
// into (usually "word"); positional list entries normalize into
// "0", "1", "2", ... as the spec's ordered-list case describes.
func Normalize(raw interface{}, defaultAttr string) (Token, error) {
	switch v := raw.(type) {
	case string:
		return Token{defaultAttr: v}, nil
	case map[string]string:
		return Token(v).Clone(), nil
	case map[string]interface{}:
		tok := make(Token, len(v))
		for k, val := range v {
			s, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("attribute %q: expected string value, got %T", k, val)
			}
			tok[k] = s
		}
		return tok, nil
	case []string:
		tok := make(Token, len(v))
		for i, s := range v {
			tok[fmt.Sprintf("%d", i)] = s
		}
		return tok, nil
	case []interface{}:
		tok := make(Token, len(v))
		for i, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf("element %d: expected string, got %T", i, elem)
			}
			tok[fmt.Sprintf("%d", i)] = s
		}
		return tok, nil
	default:
		return nil, fmt.Errorf("token must be a string, an ordered list of strings, or a string map; got %T", raw)
	}
}

// Schema is the set of attribute names a corpus indexes, fixed by the
// first token normalized at build time (spec.md §4.A). Tokens observed
// afterwards may carry additional attributes, but only schema attributes
// are indexed.
type Schema map[string]struct{}

// NewSchema builds a Schema from a token's attribute names.
func NewSchema(first Token) Schema {
	s := make(Schema, len(first))
	for k := range first {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether attr is part of the schema.
func (s Schema) Has(attr string) bool {
	_, ok := s[attr]
	return ok
}

// Attrs returns the schema's attribute names, sorted.
func (s Schema) Attrs() []string {
	attrs := make([]string, 0, len(s))
	for k := range s {
		attrs = append(attrs, k)
	}
	sort.Strings(attrs)
	return attrs
}

// validateShape wraps a Normalize failure into the §7 SchemaError, tagging
// it with the token's position for diagnostics.
func validateShape(raw interface{}, defaultAttr string, pos Position) (Token, error) {
	tok, err := Normalize(raw, defaultAttr)
	if err != nil {
		return nil, &cerrors.SchemaError{
			Message: err.Error(),
			Doc:     pos.Doc,
			Sent:    pos.Sent,
			Tok:     pos.Tok,
		}
	}
	return tok, nil
}
