package claudecli

import (
	"bufio"
	"bytes"
	"encoding/json"
)

// The agent's json output mode emits one-or-more newline-delimited records
// sharing an envelope shape: a "type" tag plus an optional nested result.
// Only the record tagged "result" carries the final answer; earlier records
// are progress or diagnostics and may use unrelated shapes entirely.
type envelope struct {
	Type   string          `json:"type"`
	Result *envelopeResult `json:"result"`
}

type envelopeResult struct {
	StructuredOutput json.RawMessage `json:"structured_output"`
}

// The agent can produce long lines (large structured answers), so the line
// scanner gets a generous buffer.
const maxLineSize = 1 << 20

// Extract recovers the single structured answer from captured agent output.
// Three recognized shapes are tried in order, first match wins:
//
//  1. Line scan: each non-blank line is decoded as an envelope record;
//     lines that fail to decode are skipped. The first "result" record
//     with a present structured_output wins.
//  2. Whole-text fallback: the entire output decoded as one JSON object
//     with a structured_output key.
//  3. Direct-shape fallback: that same object returned as-is when it
//     contains any of the caller's marker keys.
//
// Anything else is an extraction failure carrying the full captured text
// so operators can inspect what the agent actually emitted. Extraction is
// deterministic and never retried.
func Extract(output []byte, markers []string) (json.RawMessage, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var record envelope
		if err := json.Unmarshal(line, &record); err != nil {
			// Not an envelope record. Progress and diagnostic lines come
			// in unrelated shapes; skipping them is not an error.
			continue
		}
		if record.Type != "result" || record.Result == nil {
			continue
		}
		if structured := record.Result.StructuredOutput; jsonPresent(structured) {
			return cloneRaw(structured), nil
		}
	}
	// A scanner error (for example a line beyond maxLineSize) aborts the
	// scan early; the whole-text fallback below still sees every byte.

	trimmed := bytes.TrimSpace(output)
	var object map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &object); err == nil {
		if structured, ok := object["structured_output"]; ok {
			return cloneRaw(structured), nil
		}
		for _, marker := range markers {
			if _, ok := object[marker]; ok {
				return cloneRaw(trimmed), nil
			}
		}
	}

	return nil, &InvokeError{
		Kind:    FailureExtract,
		Message: "no structured output found in agent output",
		Detail:  string(output),
	}
}

// jsonPresent reports whether raw holds an actual value. An absent field
// and an explicit null both count as missing.
func jsonPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	return append(json.RawMessage(nil), raw...)
}
