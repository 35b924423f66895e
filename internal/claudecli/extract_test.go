package claudecli

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestExtractResultLine verifies the primary line-scan path.
func TestExtractResultLine(t *testing.T) {
	output := []byte(`{"type":"system","subtype":"init"}
{"type":"result","subtype":"success","result":{"structured_output":{"x":1}}}`)
	got, err := Extract(output, nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if diff := cmp.Diff(`{"x":1}`, string(got)); diff != "" {
		t.Fatalf("structured output mismatch (-want +got):\n%s", diff)
	}
}

// TestExtractFirstResultWins verifies that a second result record is ignored.
func TestExtractFirstResultWins(t *testing.T) {
	output := []byte(`{"type":"result","result":{"structured_output":{"first":true}}}
{"type":"result","result":{"structured_output":{"second":true}}}`)
	got, err := Extract(output, nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got) != `{"first":true}` {
		t.Fatalf("expected first result to win, got %s", got)
	}
}

// TestExtractSkipsNoise verifies that blank and undecodable lines are skipped.
func TestExtractSkipsNoise(t *testing.T) {
	output := []byte(`
plain progress text
{"type":"assistant","message":["not","an","envelope"]}

{"type":"result","result":{"structured_output":{"ok":true}}}`)
	got, err := Extract(output, nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got) != `{"ok":true}` {
		t.Fatalf("unexpected output %s", got)
	}
}

// TestExtractNullStructuredOutput verifies that an explicit null never
// satisfies the line scan. With no other shape to fall back on, the call is
// an extraction failure.
func TestExtractNullStructuredOutput(t *testing.T) {
	lines := []byte(`{"type":"result","result":{"structured_output":null}}`)
	_, err := Extract(lines, nil)
	invokeErr, ok := AsInvokeError(err)
	if !ok {
		t.Fatalf("expected InvokeError, got %v", err)
	}
	if invokeErr.Kind != FailureExtract {
		t.Fatalf("expected extract failure, got %s", invokeErr.Kind)
	}
}

// TestExtractWholeTextFallback verifies the single-object fallback.
func TestExtractWholeTextFallback(t *testing.T) {
	output := []byte(`{"structured_output":{"y":2},"other":"ignored"}`)
	got, err := Extract(output, nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got) != `{"y":2}` {
		t.Fatalf("unexpected output %s", got)
	}
}

// TestExtractWholeTextNullIsPresent verifies the fallback is presence-based:
// an explicit null structured_output is still returned.
func TestExtractWholeTextNullIsPresent(t *testing.T) {
	output := []byte(`{"structured_output":null}`)
	got, err := Extract(output, nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got) != "null" {
		t.Fatalf("expected null, got %s", got)
	}
}

// TestExtractDirectShape verifies the marker-key fallback returns the whole
// object.
func TestExtractDirectShape(t *testing.T) {
	output := []byte(`  {"final_response":"ok","used_canned_id":"c1"}  `)
	got, err := Extract(output, []string{"final_response"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got) != `{"final_response":"ok","used_canned_id":"c1"}` {
		t.Fatalf("unexpected output %s", got)
	}
}

// TestExtractDirectShapeNeedsMarker verifies an object without any marker
// key is not accepted as a direct answer.
func TestExtractDirectShapeNeedsMarker(t *testing.T) {
	output := []byte(`{"unrelated":"object"}`)
	_, err := Extract(output, []string{"final_response"})
	invokeErr, ok := AsInvokeError(err)
	if !ok {
		t.Fatalf("expected InvokeError, got %v", err)
	}
	if invokeErr.Kind != FailureExtract {
		t.Fatalf("expected extract failure, got %s", invokeErr.Kind)
	}
}

// TestExtractFailureCarriesOutput verifies the failure detail holds the full
// captured text.
func TestExtractFailureCarriesOutput(t *testing.T) {
	output := []byte("I could not produce JSON today.")
	_, err := Extract(output, []string{"ai_detected_str"})
	invokeErr, ok := AsInvokeError(err)
	if !ok {
		t.Fatalf("expected InvokeError, got %v", err)
	}
	if invokeErr.Kind != FailureExtract {
		t.Fatalf("expected extract failure, got %s", invokeErr.Kind)
	}
	if invokeErr.Detail != string(output) {
		t.Fatalf("detail should carry the raw output, got %q", invokeErr.Detail)
	}
}

// TestExtractScalarStructuredOutput verifies non-object answers pass through
// untouched.
func TestExtractScalarStructuredOutput(t *testing.T) {
	output := []byte(`{"type":"result","result":{"structured_output":[1,2,3]}}`)
	got, err := Extract(output, nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got) != "[1,2,3]" {
		t.Fatalf("unexpected output %s", got)
	}
}

// TestExtractLongResultLine verifies lines near the buffer limit still scan.
func TestExtractLongResultLine(t *testing.T) {
	filler := strings.Repeat("a", 512*1024)
	output := []byte(`{"type":"result","result":{"structured_output":{"blob":"` + filler + `"}}}`)
	got, err := Extract(output, nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(got) < len(filler) {
		t.Fatalf("structured output truncated: %d bytes", len(got))
	}
}
