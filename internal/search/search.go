// Package search wires the CQL front-end (lexer, parser, quantifier
// expander, interpreter) to the match engine behind the single public
// contract the rest of the system depends on (spec.md §6): a CQL string
// in, a lazy sequence of KWIC records out.
package search

import (
	"iter"

	"github.com/czcorpus/kwic/internal/corpus"
	"github.com/czcorpus/kwic/internal/cql/expand"
	"github.com/czcorpus/kwic/internal/cql/interpreter"
	"github.com/czcorpus/kwic/internal/cql/lexer"
	"github.com/czcorpus/kwic/internal/cql/parser"
	"github.com/czcorpus/kwic/internal/match"
)

// Default left/right context sizes (spec.md §6).
const (
	DefaultLeftContext  = 5
	DefaultRightContext = 5
)

// Index is the queryable, immutable view over a loaded corpus: the
// indexed corpus (component B) plus the per-corpus default_attr/max_quant
// configuration the expander and interpreter need (spec.md §9, "Global
// state" — these are bound here, never read from a process global).
type Index struct {
	ix *corpus.Index
}

// NewIndex builds the three-level inverted index over docs once, per
// spec.md §4.B. The returned Index is safe for concurrent Search calls.
func NewIndex(docs []corpus.RawDocument, cfg corpus.Config) (*Index, error) {
	ix, err := corpus.Build(docs, cfg)
	if err != nil {
		return nil, err
	}
	return &Index{ix: ix}, nil
}

// Underlying exposes the built corpus index for callers (loaders,
// printers) that need direct positional access alongside Search.
func (s *Index) Underlying() *corpus.Index { return s.ix }

// Search compiles cql and returns a lazy sequence of KWIC records, each
// with up to left/right tokens of document context (spec.md §6's
// `search(cql, left=5, right=5) -> iterator<KWIC>`). A compile failure
// (lex or parse error) aborts before any match engine work and is
// returned as errs; a syntactically valid query that matches nothing
// returns a non-nil, empty sequence with no error (spec.md §7,
// EmptyResult).
//
// Concrete patterns (after quantifier expansion) are searched in the
// order they were enumerated, and each one's results are yielded in
// document/sentence/token-major order. Results are grouped by concrete
// pattern: the results of different concrete patterns are not merged
// into one position order. Duplicates across distinct concrete patterns are not
// suppressed — each concrete pattern is a distinct interpretation of the
// query.
func (s *Index) Search(cql string, left, right int) (iter.Seq[match.KWIC], []error) {
	tokens, lexErrs := lexer.New(cql).ScanTokens()
	if len(lexErrs) > 0 {
		return emptySeq(), toErrors(lexErrs)
	}

	pattern, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) > 0 {
		return emptySeq(), toParseErrors(parseErrs)
	}

	concretePatterns := expand.Expand(pattern, s.ix.MaxQuant())
	engine := match.NewEngine(s.ix)

	return func(yield func(match.KWIC) bool) {
		for _, concrete := range concretePatterns {
			terms := interpreter.Interpret(concrete, s.ix.DefaultAttr())
			for kwic := range engine.Search(terms, left, right) {
				if !yield(kwic) {
					return
				}
			}
		}
	}, nil
}

func emptySeq() iter.Seq[match.KWIC] {
	return func(func(match.KWIC) bool) {}
}

func toErrors(lexErrs []lexer.LexError) []error {
	errs := make([]error, len(lexErrs))
	for i, e := range lexErrs {
		errs[i] = e
	}
	return errs
}

func toParseErrors(parseErrs []parser.ParseError) []error {
	errs := make([]error, len(parseErrs))
	for i := range parseErrs {
		errs[i] = &parseErrs[i]
	}
	return errs
}
