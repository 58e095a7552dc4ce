// Package interpreter lowers a concrete (post-expansion) CQL pattern into
// a flat sequence of query terms (spec.md §4.F), the unit the match
// engine and pattern matcher operate on.
package interpreter

// QueryTerm is a single positional constraint: the corpus token at this
// position must satisfy every attribute/value pair in Match, and none of
// the attribute/value pairs in NotMatch. A term with both maps empty
// matches any token. Labels carries the capture-group names, if any,
// attached to this position by an enclosing CQL label.
type QueryTerm struct {
	Match    map[string][]string
	NotMatch map[string][]string
	Labels   []string
}

// IsEmpty reports whether the term carries no constraints at all, i.e.
// matches any corpus token.
func (q QueryTerm) IsEmpty() bool {
	return len(q.Match) == 0 && len(q.NotMatch) == 0
}

func mergeAttrMap(into map[string][]string, attr, value string) map[string][]string {
	if into == nil {
		into = make(map[string][]string)
	}
	for _, v := range into[attr] {
		if v == value {
			return into
		}
	}
	into[attr] = append(into[attr], value)
	return into
}

func withLabel(labels []string, name string) []string {
	for _, l := range labels {
		if l == name {
			return labels
		}
	}
	return append(labels, name)
}
