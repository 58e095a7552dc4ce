package search

import (
	"github.com/czcorpus/kwic/internal/corpus"
	"github.com/czcorpus/kwic/internal/match"
)

// PositionRecord is the wire form of a corpus position (spec.md §6,
// "KWIC record JSON").
type PositionRecord struct {
	DocIdx  int `json:"doc_idx"`
	SentIdx int `json:"sent_idx"`
	TkIdx   int `json:"tk_idx"`
}

// KWICRecord is the JSON-serializable form of a match.KWIC, matching the
// wire shape specified in spec.md §6 exactly (including the
// camelCase "captureGroups" field, which intentionally does not follow
// the rest of the record's snake_case).
type KWICRecord struct {
	Left          []corpus.Token            `json:"left"`
	Keyword       []corpus.Token            `json:"keyword"`
	Right         []corpus.Token            `json:"right"`
	Position      PositionRecord            `json:"position"`
	CaptureGroups map[string][]corpus.Token `json:"captureGroups"`
}

// ToRecord converts an engine-internal KWIC into its wire representation.
func ToRecord(k match.KWIC) KWICRecord {
	captureGroups := k.CaptureGroups
	if captureGroups == nil {
		captureGroups = map[string][]corpus.Token{}
	}
	return KWICRecord{
		Left:    k.Left,
		Keyword: k.Keyword,
		Right:   k.Right,
		Position: PositionRecord{
			DocIdx:  k.Position.Doc,
			SentIdx: k.Position.Sent,
			TkIdx:   k.Position.Tok,
		},
		CaptureGroups: captureGroups,
	}
}
