// Package ast defines the AST node types produced by the CQL parser
// (spec.md §3, "AST node"): a sum type over the pattern constructs a query
// can contain, dispatched by variant rather than by name-based lookup.
package ast

import "github.com/czcorpus/kwic/internal/cql/lexer"

// SourceLocation tracks the position of an AST node in the CQL source.
type SourceLocation struct {
	Line   int
	Column int
}

// Node is the base interface implemented by every AST variant.
type Node interface {
	Location() SourceLocation
	node()
}

// FromToken builds a SourceLocation from a lexer token.
func FromToken(t lexer.Token) SourceLocation {
	return SourceLocation{Line: t.Line, Column: t.Column}
}

// Pattern is the root node: an ordered top-level list of word groups.
type Pattern struct {
	Items []Node
	Loc   SourceLocation
}

func (p *Pattern) node() {}

// Location returns the source location of the pattern's first item, or the
// zero location for an empty pattern.
func (p *Pattern) Location() SourceLocation { return p.Loc }

// AttrName is a bare attribute name inside an attribute expression, e.g.
// `pos` in `[pos="N"]`.
type AttrName struct {
	Name string
	Loc  SourceLocation
}

func (a *AttrName) node()                   {}
func (a *AttrName) Location() SourceLocation { return a.Loc }

// AttrValue is a quoted value inside an attribute expression.
type AttrValue struct {
	Value string
	Loc   SourceLocation
}

func (a *AttrValue) node()                   {}
func (a *AttrValue) Location() SourceLocation { return a.Loc }

// AssignAttr is a single `name=value` / `name!=value` pair.
type AssignAttr struct {
	Name     string
	Relation lexer.Relation
	Value    string
	Loc      SourceLocation
}

func (a *AssignAttr) node()                   {}
func (a *AssignAttr) Location() SourceLocation { return a.Loc }

// ConjoinAttr is the `&`-joined conjunction of two attribute constraints.
type ConjoinAttr struct {
	Left  Node
	Right Node
	Loc   SourceLocation
}

func (c *ConjoinAttr) node()                   {}
func (c *ConjoinAttr) Location() SourceLocation { return c.Loc }

// DefaultToken is a bare quoted string outside brackets, matched against
// the corpus's configured default attribute.
type DefaultToken struct {
	Value string
	Loc   SourceLocation
}

func (d *DefaultToken) node()                   {}
func (d *DefaultToken) Location() SourceLocation { return d.Loc }

// EmptyToken is `[]`, matching any corpus token.
type EmptyToken struct {
	Loc SourceLocation
}

func (e *EmptyToken) node()                   {}
func (e *EmptyToken) Location() SourceLocation { return e.Loc }

// Group is an ordered sequence of word-group nodes produced by `( ... )`.
// It only ever appears as the Child of a Quantify or Label node, or as a
// top-level Pattern item; it carries no quantifier or label of its own.
type Group struct {
	Items []Node
	Loc   SourceLocation
}

func (g *Group) node()                   {}
func (g *Group) Location() SourceLocation { return g.Loc }

// Quantify wraps a child node (a single word or a Group) with a
// `{min,max}` repetition count. Unbounded is true for `+`/`*`, resolved to
// a concrete Max by the quantifier expander.
type Quantify struct {
	Child     Node
	Min       int
	Max       int
	Unbounded bool
	Loc       SourceLocation
}

func (q *Quantify) node()                   {}
func (q *Quantify) Location() SourceLocation { return q.Loc }

// Label attaches a user-chosen capture-group name to a child node (a
// single word or a Group).
type Label struct {
	Name  string
	Child Node
	Loc   SourceLocation
}

func (l *Label) node()                   {}
func (l *Label) Location() SourceLocation { return l.Loc }
