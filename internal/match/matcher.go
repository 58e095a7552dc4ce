// Package match implements the CQL pattern matcher (spec.md §4.H) and the
// selectivity-driven match engine (spec.md §4.G) that consults it.
package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/czcorpus/kwic/internal/corpus"
	"github.com/czcorpus/kwic/internal/cql/interpreter"
)

const regexMetaChars = `[].^$*+{}|()`

// Matcher tests query terms against corpus tokens. It owns a per-query
// regex compile cache (spec.md §9, "Regex compilation"): callers should
// create one Matcher per query and discard it once the query completes,
// never share it across concurrent queries.
type Matcher struct {
	cache       map[string]*regexp.Regexp
	Diagnostics []string
}

// NewMatcher creates an empty Matcher for a single query's lifetime.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// IsRegexValue auto-detects whether a CQL value string should be
// interpreted as a regex: an unescaped character from regexMetaChars, or
// one of the two-char escape classes \d \D \s \S \w \W, per spec.md §4.H.
// Backslash-escaped characters other than those classes are treated as
// literal and do not themselves trigger regex mode.
func IsRegexValue(value string) bool {
	runes := []rune(value)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == '\\' && i+1 < len(runes) {
			switch runes[i+1] {
			case 'd', 'D', 's', 'S', 'w', 'W':
				return true
			}
			i++
			continue
		}
		if strings.ContainsRune(regexMetaChars, c) {
			return true
		}
	}
	return false
}

// StripEscapes removes the literal-mode backslashes the lexer preserved
// (spec.md §4.C), recovering the intended literal value.
func StripEscapes(value string) string {
	var b strings.Builder
	runes := []rune(value)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) {
			b.WriteRune(runes[i+1])
			i++
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

// compile returns the full-match anchored regexp for value, from cache if
// already compiled this query.
func (m *Matcher) compile(value string) (*regexp.Regexp, error) {
	if re, ok := m.cache[value]; ok {
		return re, nil
	}
	re, err := regexp.Compile("^(?:" + value + ")$")
	if err != nil {
		return nil, err
	}
	if m.cache == nil {
		m.cache = make(map[string]*regexp.Regexp)
	}
	m.cache[value] = re
	return re, nil
}

// MatchValue tests a single corpus attribute value against a single CQL
// value-pattern. Regex mode anchors the pattern as `^(?:…)$` (full-match
// semantics), even though the index itself harvests candidates with an
// unanchored search (spec.md §9, the regex-anchoring-asymmetry open
// question) — verification here is always the authority. A regex compile
// failure downgrades the value to literal mode and is recorded in
// m.Diagnostics rather than aborting the query (spec.md §7).
func (m *Matcher) MatchValue(corpusValue, queryValue string) bool {
	if IsRegexValue(queryValue) {
		re, err := m.compile(queryValue)
		if err == nil {
			return re.MatchString(corpusValue)
		}
		m.Diagnostics = append(m.Diagnostics, fmt.Sprintf(
			"value %q: regex compile failed (%v), falling back to literal match", queryValue, err))
	}
	return corpusValue == StripEscapes(queryValue)
}

// MatchesTerm tests one query term against one corpus token (spec.md
// §4.H). An empty term (no Match, no NotMatch) matches any token.
func (m *Matcher) MatchesTerm(term interpreter.QueryTerm, token corpus.Token) bool {
	for attr, values := range term.Match {
		tokVal, ok := token[attr]
		if !ok {
			return false
		}
		for _, v := range values {
			if !m.MatchValue(tokVal, v) {
				return false
			}
		}
	}
	for attr, values := range term.NotMatch {
		tokVal, ok := token[attr]
		if !ok {
			continue
		}
		for _, v := range values {
			if m.MatchValue(tokVal, v) {
				return false
			}
		}
	}
	return true
}
