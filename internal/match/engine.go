package match

import (
	"iter"

	"github.com/czcorpus/kwic/internal/corpus"
	"github.com/czcorpus/kwic/internal/cql/interpreter"
)

// KWIC is a single keyword-in-context concordance record (spec.md §3).
type KWIC struct {
	Left          []corpus.Token
	Keyword       []corpus.Token
	Right         []corpus.Token
	Position      corpus.Position
	CaptureGroups map[string][]corpus.Token
}

// Engine is the selectivity-driven match engine (spec.md §4.G): it
// searches an indexed corpus for a single concrete query-term sequence
// and emits KWIC records.
type Engine struct {
	Index *corpus.Index
}

// NewEngine creates a match Engine over an already-built corpus index.
func NewEngine(ix *corpus.Index) *Engine {
	return &Engine{Index: ix}
}

// Search returns a pull-based iterator over every KWIC record matching
// terms, with up to left/right tokens of surrounding document context
// (spec.md §4.G, §9's "coroutine-style iterator" design note). The core
// itself does no suspension: Go's range-over-func iterators give the
// matcher a genuinely lazy, cancellable sequence without a callback
// chain — the caller simply stops ranging to abandon the search.
func (e *Engine) Search(terms []interpreter.QueryTerm, left, right int) iter.Seq[KWIC] {
	return func(yield func(KWIC) bool) {
		n := len(terms)
		if n == 0 {
			return
		}

		seeds := make([][]corpus.Position, n)
		for i, term := range terms {
			seeds[i] = SeedPositions(e.Index, term)
			if !term.IsEmpty() && len(seeds[i]) == 0 {
				return
			}
		}

		bestIdx := 0
		for i := 1; i < n; i++ {
			if len(seeds[i]) < len(seeds[bestIdx]) {
				bestIdx = i
			}
		}

		matcher := NewMatcher()
		for _, seedPos := range seeds[bestIdx] {
			candStart := seedPos.Tok - bestIdx
			if candStart < 0 {
				continue
			}
			sentence, err := e.Index.Sentence(seedPos.Doc, seedPos.Sent)
			if err != nil {
				continue
			}
			if candStart+n > len(sentence) {
				continue
			}

			matched := true
			for j := 0; j < n; j++ {
				if !matcher.MatchesTerm(terms[j], sentence[candStart+j]) {
					matched = false
					break
				}
			}
			if !matched {
				continue
			}

			kwic := e.buildKWIC(terms, seedPos.Doc, seedPos.Sent, candStart, n, left, right, sentence)
			if !yield(kwic) {
				return
			}
		}
	}
}

func (e *Engine) buildKWIC(terms []interpreter.QueryTerm, doc, sent, candStart, n, left, right int, sentence corpus.Sentence) KWIC {
	keyword := make([]corpus.Token, n)
	captureGroups := make(map[string][]corpus.Token)
	for j := 0; j < n; j++ {
		tok := sentence[candStart+j]
		keyword[j] = tok
		for _, label := range terms[j].Labels {
			captureGroups[label] = append(captureGroups[label], tok)
		}
	}

	return KWIC{
		Left:          e.precedingTokens(doc, sent, candStart, left),
		Keyword:       keyword,
		Right:         e.followingTokens(doc, sent, candStart+n-1, right),
		Position:      corpus.Position{Doc: doc, Sent: sent, Tok: candStart},
		CaptureGroups: captureGroups,
	}
}

// precedingTokens collects up to count tokens immediately before
// (sent, tok) within the same document, flattening sentence boundaries,
// in left-to-right reading order.
func (e *Engine) precedingTokens(doc, sent, tok, count int) []corpus.Token {
	var reversed []corpus.Token
	s, t := sent, tok-1
	for len(reversed) < count {
		if t < 0 {
			s--
			if s < 0 {
				break
			}
			sentence, err := e.Index.Sentence(doc, s)
			if err != nil {
				break
			}
			t = len(sentence) - 1
			continue
		}
		sentence, err := e.Index.Sentence(doc, s)
		if err != nil {
			break
		}
		reversed = append(reversed, sentence[t])
		t--
	}
	out := make([]corpus.Token, len(reversed))
	for i, tok := range reversed {
		out[len(reversed)-1-i] = tok
	}
	return out
}

// followingTokens collects up to count tokens immediately after
// (sent, tok) within the same document, flattening sentence boundaries.
func (e *Engine) followingTokens(doc, sent, tok, count int) []corpus.Token {
	var out []corpus.Token
	s, t := sent, tok+1
	for len(out) < count {
		sentence, err := e.Index.Sentence(doc, s)
		if err != nil {
			break
		}
		if t >= len(sentence) {
			s++
			t = 0
			continue
		}
		out = append(out, sentence[t])
		t++
	}
	return out
}
