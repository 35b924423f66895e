package triage

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

// TestBuildClassifyPrompt verifies the bug fields land in the prompt.
func TestBuildClassifyPrompt(t *testing.T) {
	bug := json.RawMessage(`{
		"id": 1234567,
		"summary": "Crash when printing",
		"description": "Reproduces every time.",
		"comments": [{"text": "first comment"}, {"text": "second comment"}]
	}`)
	prompt := BuildClassifyPrompt(bug)
	for _, fragment := range []string{
		"Bug ID: 1234567",
		"Summary: Crash when printing",
		"Reproduces every time.",
		"first comment\n---\nsecond comment",
		"ai_detected_str",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, prompt)
		}
	}
}

// TestBuildClassifyPromptDefaults verifies degraded bugs still produce a
// usable prompt.
func TestBuildClassifyPromptDefaults(t *testing.T) {
	prompt := BuildClassifyPrompt(json.RawMessage(`{"id":"not-a-number"}`))
	if !strings.Contains(prompt, "Bug ID: 0") {
		t.Fatalf("expected zero bug id:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Summary: No summary") {
		t.Fatalf("expected summary placeholder:\n%s", prompt)
	}
}

// TestBugCommentsCap verifies only the first few comments are included.
func TestBugCommentsCap(t *testing.T) {
	comments := make([]map[string]any, 0, 8)
	for i := 0; i < 8; i++ {
		comments = append(comments, map[string]any{"text": fmt.Sprintf("comment %d", i)})
	}
	bug, err := json.Marshal(map[string]any{"id": 1, "comments": comments})
	if err != nil {
		t.Fatalf("marshal bug: %v", err)
	}
	prompt := BuildClassifyPrompt(bug)
	if !strings.Contains(prompt, "comment 4") {
		t.Fatalf("fifth comment should be included:\n%s", prompt)
	}
	if strings.Contains(prompt, "comment 5") {
		t.Fatalf("sixth comment should be dropped:\n%s", prompt)
	}
}

// TestBuildSuggestPromptPreview verifies canned bodies are truncated and
// id-less entries skipped.
func TestBuildSuggestPromptPreview(t *testing.T) {
	longBody := strings.Repeat("x", 300)
	canned := []json.RawMessage{
		json.RawMessage(`{"id":"dup","title":"Duplicate","description":"For dupes","bodyTemplate":"` + longBody + `"}`),
		json.RawMessage(`{"title":"No id, skipped"}`),
	}
	prompt := BuildSuggestPrompt(json.RawMessage(`{"id":9}`), canned)
	if !strings.Contains(prompt, "ID: dup") {
		t.Fatalf("canned id missing:\n%s", prompt)
	}
	if strings.Contains(prompt, longBody) {
		t.Fatal("body preview should be truncated")
	}
	if !strings.Contains(prompt, strings.Repeat("x", 200)) {
		t.Fatal("truncated preview missing")
	}
	if strings.Contains(prompt, "No id, skipped") {
		t.Fatal("id-less canned response should be skipped")
	}
}

// TestBuildCustomizePrompt verifies the template body and id are included.
func TestBuildCustomizePrompt(t *testing.T) {
	prompt := BuildCustomizePrompt(
		json.RawMessage(`{"id":5,"summary":"Flicker"}`),
		json.RawMessage(`{"id":"needinfo","title":"Need info","bodyTemplate":"Please attach a testcase."}`),
	)
	for _, fragment := range []string{"Bug ID: 5", "ID: needinfo", "Please attach a testcase."} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, prompt)
		}
	}
}

// TestBuildRefinePrompt verifies draft, instruction and context land in the
// prompt.
func TestBuildRefinePrompt(t *testing.T) {
	prompt := BuildRefinePrompt(
		json.RawMessage(`{"id":2}`),
		"Original draft.",
		"Make it shorter.",
		json.RawMessage(`{"tone":"terse"}`),
	)
	for _, fragment := range []string{"Original draft.", "Make it shorter.", `{"tone":"terse"}`} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, prompt)
		}
	}

	noContext := BuildRefinePrompt(json.RawMessage(`{"id":2}`), "d", "i", nil)
	if !strings.Contains(noContext, "{}") {
		t.Fatalf("empty context should render as {}:\n%s", noContext)
	}
}

// TestCannedID verifies the used_canned_id fallback source.
func TestCannedID(t *testing.T) {
	if got := CannedID(json.RawMessage(`{"id":"dup"}`)); got != "dup" {
		t.Fatalf("unexpected id %q", got)
	}
	if got := CannedID(json.RawMessage(`{"title":"no id"}`)); got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
	if got := CannedID(nil); got != "unknown" {
		t.Fatalf("expected unknown for nil, got %q", got)
	}
}
