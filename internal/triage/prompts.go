package triage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Prompt builders assemble the default natural-language prompt for each
// operation from the caller-supplied bug JSON. The bug is arbitrary
// Bugzilla-shaped JSON and is read with the same defensive field access as
// the answers: missing pieces degrade to placeholders, never to errors.
// A caller-supplied prompt override bypasses these entirely.

const maxPromptComments = 5

const cannedBodyPreviewLen = 200

// BuildClassifyPrompt assembles the classification prompt for one bug.
func BuildClassifyPrompt(bug json.RawMessage) string {
	obj := objectOf(bug)
	return fmt.Sprintf(`You are a Mozilla Firefox bug triager assistant. Analyze this bug and classify it.

Bug ID: %d
Summary: %s

Description:
%s

Comments:
%s

Analyze this bug and determine:
1. ai_detected_str: Are there clear steps to reproduce (STR) in the text?
2. ai_detected_test_attached: Is there a testcase file, reproduction HTML/JS, or test code referenced?
3. crashstack_present: Is there a crash stack trace, AddressSanitizer/ASan output, or similar?
4. fuzzing_testcase: Does this appear to be from fuzzing (mentions fuzzilli, oss-fuzz, grizzly, etc.)?
5. summary: Write a brief 1-3 sentence summary of what this bug is about for triagers.

Be conservative - only mark true if you have clear evidence.`,
		bugID(obj), bugSummary(obj), stringField(obj, "description"), bugComments(obj))
}

// BuildSuggestPrompt assembles the suggestion prompt for a bug and the
// available canned responses.
func BuildSuggestPrompt(bug json.RawMessage, cannedResponses []json.RawMessage) string {
	obj := objectOf(bug)
	var responses strings.Builder
	for _, canned := range cannedResponses {
		element := objectOf(canned)
		id := stringField(element, "id")
		if id == "" {
			continue
		}
		body := stringField(element, "bodyTemplate")
		if len(body) > cannedBodyPreviewLen {
			body = body[:cannedBodyPreviewLen]
		}
		fmt.Fprintf(&responses, "---\nID: %s\nTitle: %s\nDescription: %s\nBody Preview: %s\n",
			id, stringField(element, "title"), stringField(element, "description"), body)
	}
	return fmt.Sprintf(`You are a Mozilla Firefox bug triager. Suggest the best canned response for this bug and draft a customized version.

Bug ID: %d
Bug Summary: %s
Description:
%s

Available Canned Responses:
%s

Analyze the bug and:
1. Choose the most appropriate canned response ID
2. Draft a customized response for this specific bug
3. Briefly explain why you chose this response

Be helpful and professional. If no response fits well, choose the closest match and explain.`,
		bugID(obj), bugSummary(obj), stringField(obj, "description"), responses.String())
}

// BuildCustomizePrompt assembles the customization prompt for a bug and one
// chosen canned response.
func BuildCustomizePrompt(bug, cannedResponse json.RawMessage) string {
	obj := objectOf(bug)
	canned := objectOf(cannedResponse)
	return fmt.Sprintf(`You are a Mozilla Firefox bug triager. Customize this canned response for the specific bug.

Bug ID: %d
Bug Summary: %s

Canned Response Template:
ID: %s
Title: %s
Body:
%s

Customize this response for the specific bug. Replace any placeholders (like {BUG_ID}, {VERSION}, etc.) with appropriate content based on the bug details. Keep the tone professional and helpful.

Return the customized response text.`,
		bugID(obj), bugSummary(obj),
		CannedID(cannedResponse), stringField(canned, "title"), stringField(canned, "bodyTemplate"))
}

// BuildGeneratePrompt assembles the triage-comment prompt for a bug and the
// caller's generation options.
func BuildGeneratePrompt(bug, options json.RawMessage) string {
	obj := objectOf(bug)
	optionsText := strings.TrimSpace(string(options))
	if optionsText == "" || optionsText == "null" {
		optionsText = "{}"
	}
	return fmt.Sprintf(`You are a Mozilla Firefox bug triager. Write a triage comment for this bug and recommend follow-up actions.

Bug ID: %d
Bug Summary: %s

Description:
%s

Comments:
%s

Generation options (JSON):
%s

Write a helpful triage comment ready to post, list the recommended triage actions with a short reason each, and briefly explain your overall reasoning. Keep the tone professional.`,
		bugID(obj), bugSummary(obj), stringField(obj, "description"), bugComments(obj), optionsText)
}

// BuildRefinePrompt assembles the refinement prompt for an existing draft.
func BuildRefinePrompt(bug json.RawMessage, currentResponse, userInstruction string, context json.RawMessage) string {
	obj := objectOf(bug)
	contextText := strings.TrimSpace(string(context))
	if contextText == "" || contextText == "null" {
		contextText = "{}"
	}
	return fmt.Sprintf(`You are a Mozilla Firefox bug triager. Rework the draft response below according to the instruction.

Bug ID: %d
Bug Summary: %s

Current draft:
%s

Instruction:
%s

Additional context (JSON):
%s

Apply the instruction to the draft, keep everything else intact, and list each change you made. Keep the tone professional and helpful.`,
		bugID(obj), bugSummary(obj), currentResponse, userInstruction, contextText)
}

// BuildTestPagePrompt assembles the reproduction-page prompt for a bug.
func BuildTestPagePrompt(bug json.RawMessage) string {
	obj := objectOf(bug)
	return fmt.Sprintf(`You are a Mozilla Firefox bug triager. Decide whether a standalone HTML test page can reproduce this bug, and build one if possible.

Bug ID: %d
Bug Summary: %s

Description:
%s

Comments:
%s

If the bug contains enough detail (markup, script, steps) to reproduce in a single self-contained HTML file, set can_generate to true and produce the complete page in html_content. Otherwise set can_generate to false, leave html_content empty, and explain what is missing in reason.`,
		bugID(obj), bugSummary(obj), stringField(obj, "description"), bugComments(obj))
}

// CannedID reads the id of a canned response, for the used_canned_id
// fallback when the agent omits it.
func CannedID(cannedResponse json.RawMessage) string {
	id := stringField(objectOf(cannedResponse), "id")
	if id == "" {
		return "unknown"
	}
	return id
}

func bugID(obj map[string]any) uint64 {
	id, _ := obj["id"].(float64)
	if id < 0 {
		return 0
	}
	return uint64(id)
}

func bugSummary(obj map[string]any) string {
	if summary := stringField(obj, "summary"); summary != "" {
		return summary
	}
	return "No summary"
}

// bugComments joins the text of the first few comments, matching what a
// triager would skim before classifying.
func bugComments(obj map[string]any) string {
	comments, _ := obj["comments"].([]any)
	texts := make([]string, 0, maxPromptComments)
	for _, comment := range comments {
		if len(texts) == maxPromptComments {
			break
		}
		element, ok := comment.(map[string]any)
		if !ok {
			continue
		}
		if text, ok := element["text"].(string); ok {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, "\n---\n")
}
