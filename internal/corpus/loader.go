package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// rawDocEnvelope matches the mapping shape of spec.md §6's load format: a
// document record whose named text field holds `[[token, ...], ...]`. The
// rest of the object is decoded generically so an unknown text-field name
// can still be looked up by textField.
type rawDocEnvelope map[string]json.RawMessage

// LoadJSONLines reads the §6 corpus load format — one JSON document record
// per line — from r. textField names the mapping key holding the sentence
// list; an empty textField means every line is already a bare
// `[[token, ...], ...]` array rather than wrapped in a mapping (spec.md §3,
// "Corpus", case (b)).
//
// Neither the teacher nor any other repo in the retrieval pack reaches for
// a third-party JSON library for line-delimited decoding of this kind —
// every JSON-handling example uses encoding/json directly — so this loader
// stays on the standard library (see DESIGN.md).
func LoadJSONLines(r io.Reader, textField string) ([]RawDocument, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)

	var docs []RawDocument
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(bytesTrimSpace(line)) == 0 {
			continue
		}

		doc, err := decodeDocLine(line, textField)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	return docs, nil
}

func decodeDocLine(line []byte, textField string) (RawDocument, error) {
	if textField == "" {
		var doc RawDocument
		if err := json.Unmarshal(line, &doc); err != nil {
			return nil, fmt.Errorf("decoding bare sentence list: %w", err)
		}
		return doc, nil
	}

	var env rawDocEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return nil, fmt.Errorf("decoding document record: %w", err)
	}
	raw, ok := env[textField]
	if !ok {
		return nil, fmt.Errorf("document missing text field %q", textField)
	}
	var doc RawDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding text field %q: %w", textField, err)
	}
	return doc, nil
}

func bytesTrimSpace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isSpaceByte(b[start]) {
		start++
	}
	for end > start && isSpaceByte(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
