package corpus

import (
	"fmt"
	"regexp"
	"sort"

	cerrors "github.com/czcorpus/kwic/internal/errors"
)

// DefaultMaxQuant is the bound substituted for an unbounded quantifier
// (`+`, `*`) when the corpus doesn't configure one explicitly (spec.md §4.E).
const DefaultMaxQuant = 6

// Sentence is an ordered sequence of normalized tokens.
type Sentence []Token

// Document is an ordered sequence of sentences.
type Document []Sentence

// RawSentence is a sentence as decoded from the load format, before
// normalization: an ordered list of raw tokens (spec.md §6).
type RawSentence = []interface{}

// RawDocument is a document as decoded from the load format: an ordered
// list of raw sentences.
type RawDocument = []RawSentence

// Config binds the per-corpus settings spec.md §9 says must never be
// global: the attribute a bare quoted CQL token implies, and the upper
// bound substituted for unbounded quantifiers.
type Config struct {
	// DefaultAttr names the attribute a bare `"value"` CQL token matches
	// against. Empty means "word".
	DefaultAttr string
	// MaxQuant bounds `+`/`*` expansion. Zero means DefaultMaxQuant;
	// negative is a QueryError (spec.md §7).
	MaxQuant int
}

func (c Config) resolve() (Config, error) {
	if c.DefaultAttr == "" {
		c.DefaultAttr = "word"
	}
	if c.MaxQuant == 0 {
		c.MaxQuant = DefaultMaxQuant
	} else if c.MaxQuant < 0 {
		return c, &cerrors.QueryError{Message: fmt.Sprintf("max_quant must be >= 1, got %d", c.MaxQuant)}
	}
	return c, nil
}

// Index is the built, immutable indexed corpus (spec.md §3 "Inverted
// index", §4.B). It is safe for concurrent reads once Build returns —
// nothing here is mutated afterwards.
type Index struct {
	cfg          Config
	docs         []Document
	schema       Schema
	byAttr       map[string]map[string][]Position
	allPositions []Position
}

// Build normalizes every token in docs and constructs the inverted index,
// exactly once, per spec.md §4.B ("iterate every position in the corpus,
// normalize its token, and for each (attribute, value) append the
// position"). The returned Index is never mutated again.
func Build(docs []RawDocument, cfg Config) (*Index, error) {
	cfg, err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	ix := &Index{
		cfg:    cfg,
		docs:   make([]Document, len(docs)),
		byAttr: make(map[string]map[string][]Position),
	}

	for di, rawDoc := range docs {
		doc := make(Document, len(rawDoc))
		for si, rawSent := range rawDoc {
			sent := make(Sentence, len(rawSent))
			for ti, rawTok := range rawSent {
				pos := Position{Doc: di, Sent: si, Tok: ti}
				tok, err := validateShape(rawTok, cfg.DefaultAttr, pos)
				if err != nil {
					return nil, err
				}

				if ix.schema == nil {
					ix.schema = NewSchema(tok)
				}

				sent[ti] = tok
				ix.allPositions = append(ix.allPositions, pos)
				for attr := range ix.schema {
					val, ok := tok[attr]
					if !ok {
						continue
					}
					vals, ok := ix.byAttr[attr]
					if !ok {
						vals = make(map[string][]Position)
						ix.byAttr[attr] = vals
					}
					vals[val] = append(vals[val], pos)
				}
			}
			doc[si] = sent
		}
		ix.docs[di] = doc
	}

	if ix.schema == nil {
		ix.schema = Schema{}
	}
	return ix, nil
}

// Config returns the resolved per-corpus configuration.
func (ix *Index) Config() Config { return ix.cfg }

// DefaultAttr is the attribute a bare CQL string literal matches against.
func (ix *Index) DefaultAttr() string { return ix.cfg.DefaultAttr }

// MaxQuant bounds unbounded (`+`/`*`) quantifier expansion.
func (ix *Index) MaxQuant() int { return ix.cfg.MaxQuant }

// Schema is the set of indexable attributes, fixed at build time.
func (ix *Index) Schema() Schema { return ix.schema }

// NumDocs returns the number of documents in the corpus.
func (ix *Index) NumDocs() int { return len(ix.docs) }

// Doc returns the full document at doc, or an out-of-range error.
func (ix *Index) Doc(doc int) (Document, error) {
	if doc < 0 || doc >= len(ix.docs) {
		return nil, fmt.Errorf("document index %d out of range [0,%d)", doc, len(ix.docs))
	}
	return ix.docs[doc], nil
}

// Sentence returns the sentence at (doc, sent).
func (ix *Index) Sentence(doc, sent int) (Sentence, error) {
	d, err := ix.Doc(doc)
	if err != nil {
		return nil, err
	}
	if sent < 0 || sent >= len(d) {
		return nil, fmt.Errorf("sentence index %d out of range [0,%d) in document %d", sent, len(d), doc)
	}
	return d[sent], nil
}

// Token returns the single token at the given position.
func (ix *Index) Token(p Position) (Token, error) {
	s, err := ix.Sentence(p.Doc, p.Sent)
	if err != nil {
		return nil, err
	}
	if p.Tok < 0 || p.Tok >= len(s) {
		return nil, fmt.Errorf("token index %d out of range [0,%d) in sentence (%d,%d)", p.Tok, len(s), p.Doc, p.Sent)
	}
	return s[p.Tok], nil
}

// AllPositions returns every position in the corpus, document-major,
// sentence-major, token-major — the order they were appended during Build.
func (ix *Index) AllPositions() []Position {
	return ix.allPositions
}

// LiteralPostings returns the ordered postings list for an exact
// (attribute, value) pair, or nil if the pair has no occurrences
// (spec.md §4.B — a miss is not an error).
func (ix *Index) LiteralPostings(attr, value string) []Position {
	vals, ok := ix.byAttr[attr]
	if !ok {
		return nil
	}
	return vals[value]
}

// RegexPostings returns the deduplicated union of postings for every
// stored value of attr whose unanchored regex search against pattern
// succeeds (spec.md §4.B). The harvest is intentionally unanchored: it is
// a superset of what internal/match's anchored verification ultimately
// accepts (spec.md §9, "regex anchoring asymmetry").
func (ix *Index) RegexPostings(attr, pattern string) ([]Position, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	vals, ok := ix.byAttr[attr]
	if !ok {
		return nil, nil
	}

	seen := make(map[Position]struct{})
	var out []Position
	for val, postings := range vals {
		if !re.MatchString(val) {
			continue
		}
		for _, p := range postings {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out, nil
}
