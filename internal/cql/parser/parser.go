package parser

import (
	"github.com/czcorpus/kwic/internal/cql/ast"
	"github.com/czcorpus/kwic/internal/cql/lexer"
)

// Parser transforms a stream of CQL tokens into a Pattern AST (spec.md
// §4.D). It recovers from errors by skipping to the next token so a
// single malformed word group does not stop the rest of the query from
// being reported.
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []ParseError
}

// New creates a Parser over the given token stream, typically the output
// of lexer.Lexer.ScanTokens.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the full token stream into a Pattern and returns any
// parse errors encountered along the way. Parsing always completes
// (errors are collected, not panicked), so the caller can choose whether
// a non-empty error slice should abort the query.
func (p *Parser) Parse() (*ast.Pattern, []ParseError) {
	loc := ast.SourceLocation{Line: 1, Column: 1}
	if len(p.tokens) > 0 {
		loc = ast.FromToken(p.tokens[0])
	}
	pattern := &ast.Pattern{Loc: loc}
	for !p.isAtEnd() {
		if wg := p.parseWordGroup(); wg != nil {
			pattern.Items = append(pattern.Items, wg)
		}
	}
	return pattern, p.errors
}

// parseWordGroup implements `WordGroup = [ TOKEN_LABEL ] ( Group | Word )`.
func (p *Parser) parseWordGroup() ast.Node {
	if p.check(lexer.TOKEN_LABEL) {
		labelToken := p.advance()
		child := p.parseGroupOrWord()
		if child == nil {
			return nil
		}
		return &ast.Label{
			Name:  stringLiteral(labelToken),
			Child: child,
			Loc:   ast.FromToken(labelToken),
		}
	}
	return p.parseGroupOrWord()
}

func (p *Parser) parseGroupOrWord() ast.Node {
	if p.check(lexer.LPAREN) {
		return p.parseGroup()
	}
	return p.parseWord()
}

// parseGroup implements `Group = LPAREN { WordGroup } RPAREN [ TOKEN_QUANTIFIER ]`.
func (p *Parser) parseGroup() ast.Node {
	lparen := p.advance()
	group := &ast.Group{Loc: ast.FromToken(lparen)}
	for !p.check(lexer.RPAREN) && !p.isAtEnd() {
		if wg := p.parseWordGroup(); wg != nil {
			group.Items = append(group.Items, wg)
		}
	}
	if !p.match(lexer.RPAREN) {
		p.error(p.peek(), "expected ')' to close group")
		return group
	}
	return p.applyQuantifier(group)
}

// parseWord implements
// `Word = ( DEFAULT_TOKEN | EMPTY_TOKEN | AttrExpr ) [ TOKEN_QUANTIFIER ]`.
func (p *Parser) parseWord() ast.Node {
	var node ast.Node
	switch {
	case p.check(lexer.DEFAULT_TOKEN):
		tok := p.advance()
		node = &ast.DefaultToken{Value: stringLiteral(tok), Loc: ast.FromToken(tok)}
	case p.check(lexer.EMPTY_TOKEN):
		tok := p.advance()
		node = &ast.EmptyToken{Loc: ast.FromToken(tok)}
	case p.check(lexer.ATTR_NAME):
		node = p.parseAttrExpr()
	default:
		p.error(p.peek(), "expected a token, group, or attribute expression")
		p.advance()
		return nil
	}
	return p.applyQuantifier(node)
}

func (p *Parser) applyQuantifier(node ast.Node) ast.Node {
	if !p.check(lexer.TOKEN_QUANTIFIER) {
		return node
	}
	tok := p.advance()
	q, _ := tok.Literal.(lexer.Quantifier)
	return &ast.Quantify{
		Child:     node,
		Min:       q.Min,
		Max:       q.Max,
		Unbounded: q.Unbounded,
		Loc:       node.Location(),
	}
}

// parseAttrExpr implements `AttrExpr = AttrPair { ATTR_AND AttrPair }`.
func (p *Parser) parseAttrExpr() ast.Node {
	left := p.parseAttrPair()
	for p.match(lexer.ATTR_AND) {
		right := p.parseAttrPair()
		left = &ast.ConjoinAttr{Left: left, Right: right, Loc: left.Location()}
	}
	return left
}

// parseAttrPair implements `AttrPair = ATTR_NAME ATTR_RELATION ATTR_VALUE`.
func (p *Parser) parseAttrPair() ast.Node {
	nameTok := p.consume(lexer.ATTR_NAME, "expected an attribute name")
	relTok := p.consume(lexer.ATTR_RELATION, "expected '=' or '!=' after attribute name")
	valTok := p.consume(lexer.ATTR_VALUE, "expected a quoted value after the relation")
	relation, _ := relTok.Literal.(lexer.Relation)
	return &ast.AssignAttr{
		Name:     stringLiteral(nameTok),
		Relation: relation,
		Value:    stringLiteral(valTok),
		Loc:      ast.FromToken(nameTok),
	}
}

func stringLiteral(t lexer.Token) string {
	s, _ := t.Literal.(string)
	return s
}

// --- low-level token-stream helpers ---

func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.current]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) match(t lexer.TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(t lexer.TokenType, message string) lexer.Token {
	if p.check(t) {
		return p.advance()
	}
	p.error(p.peek(), message)
	return lexer.Token{Type: t}
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.EOF
}

func (p *Parser) error(token lexer.Token, message string) {
	p.errors = append(p.errors, newParseError(message, token))
}
