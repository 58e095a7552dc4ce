package match

import (
	"sort"

	"github.com/czcorpus/kwic/internal/corpus"
	"github.com/czcorpus/kwic/internal/cql/interpreter"
)

// postingsFor looks up the index postings for a single (attribute,
// value) pair, using the same regex/literal auto-detection as the
// matcher so that seed harvesting and verification agree (spec.md §9).
// A regex compile failure at the index falls back to a literal lookup of
// the stripped value, mirroring the matcher's own downgrade behavior.
func postingsFor(ix *corpus.Index, attr, value string) []corpus.Position {
	if IsRegexValue(value) {
		postings, err := ix.RegexPostings(attr, value)
		if err == nil {
			return postings
		}
	}
	return ix.LiteralPostings(attr, StripEscapes(value))
}

func unionPostings(lists [][]corpus.Position) []corpus.Position {
	seen := make(map[corpus.Position]bool)
	for _, list := range lists {
		for _, p := range list {
			seen[p] = true
		}
	}
	return sortedPositions(seen)
}

func intersectPostings(a, b []corpus.Position) []corpus.Position {
	bSet := make(map[corpus.Position]bool, len(b))
	for _, p := range b {
		bSet[p] = true
	}
	out := make([]corpus.Position, 0, len(a))
	for _, p := range a {
		if bSet[p] {
			out = append(out, p)
		}
	}
	return out
}

func subtractPostings(a, b []corpus.Position) []corpus.Position {
	bSet := make(map[corpus.Position]bool, len(b))
	for _, p := range b {
		bSet[p] = true
	}
	out := make([]corpus.Position, 0, len(a))
	for _, p := range a {
		if !bSet[p] {
			out = append(out, p)
		}
	}
	return out
}

func sortedPositions(set map[corpus.Position]bool) []corpus.Position {
	out := make([]corpus.Position, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// SeedPositions computes the candidate position set for a single query
// term (spec.md §4.G's seed-expansion rule): the intersection, across
// attributes in term.Match, of the union of postings for each attribute's
// listed values, minus the union of postings for every (attribute,
// value) pair in term.NotMatch. An empty term (spec.md §4.F) maps to
// every position in the corpus. Attributes outside the corpus schema are
// not indexed, so they add no constraint here; the matcher checks them
// during verification.
func SeedPositions(ix *corpus.Index, term interpreter.QueryTerm) []corpus.Position {
	if term.IsEmpty() {
		return ix.AllPositions()
	}

	var positives []corpus.Position
	constrained := false
	for attr, values := range term.Match {
		if !ix.Schema().Has(attr) {
			continue
		}
		lists := make([][]corpus.Position, 0, len(values))
		for _, v := range values {
			lists = append(lists, postingsFor(ix, attr, v))
		}
		attrUnion := unionPostings(lists)
		if !constrained {
			positives = attrUnion
			constrained = true
		} else {
			positives = intersectPostings(positives, attrUnion)
		}
	}
	if !constrained {
		// Intersection over zero indexed attributes is the universal set.
		positives = ix.AllPositions()
	}

	if len(term.NotMatch) > 0 {
		var negLists [][]corpus.Position
		for attr, values := range term.NotMatch {
			if !ix.Schema().Has(attr) {
				continue
			}
			for _, v := range values {
				negLists = append(negLists, postingsFor(ix, attr, v))
			}
		}
		negatives := unionPostings(negLists)
		positives = subtractPostings(positives, negatives)
	}

	return positives
}
