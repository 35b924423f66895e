package triage

import "encoding/json"

// The agent's answer is schema-constrained but not trusted: every field
// read below supplies its own default when the field is absent or of the
// wrong type, and array elements are filtered element-wise so one
// malformed element never aborts the whole decode. A structurally-odd but
// present answer degrades to a best-effort typed result.

// DecodeClassify decodes a classification answer defensively.
func DecodeClassify(raw json.RawMessage) ClassifyResponse {
	obj := objectOf(raw)
	return ClassifyResponse{
		AIDetectedSTR:          boolField(obj, "ai_detected_str"),
		AIDetectedTestAttached: boolField(obj, "ai_detected_test_attached"),
		CrashstackPresent:      boolField(obj, "crashstack_present"),
		FuzzingTestcase:        boolField(obj, "fuzzing_testcase"),
		Summary:                stringField(obj, "summary"),
		SuggestedSeverity:      stringField(obj, "suggested_severity"),
		SuggestedPriority:      stringField(obj, "suggested_priority"),
		SuggestedActions:       actionsField(obj, "suggested_actions"),
		TriageReasoning:        stringField(obj, "triage_reasoning"),
		SuggestedCannedID:      stringField(obj, "suggested_canned_id"),
		DraftResponse:          stringField(obj, "draft_response"),
	}
}

// DecodeSuggest decodes a canned-response suggestion defensively.
func DecodeSuggest(raw json.RawMessage) SuggestResponse {
	obj := objectOf(raw)
	return SuggestResponse{
		SuggestedResponseID: stringField(obj, "suggested_response_id"),
		DraftResponse:       stringField(obj, "draft_response"),
		Reasoning:           stringField(obj, "reasoning"),
	}
}

// DecodeCustomize decodes a customized canned response defensively.
// fallbackCannedID fills used_canned_id when the agent omits it, so the
// caller still learns which template was customized.
func DecodeCustomize(raw json.RawMessage, fallbackCannedID string) CustomizeResponse {
	obj := objectOf(raw)
	usedID := stringField(obj, "used_canned_id")
	if usedID == "" {
		usedID = fallbackCannedID
	}
	return CustomizeResponse{
		FinalResponse: stringField(obj, "final_response"),
		UsedCannedID:  usedID,
	}
}

// DecodeGenerate decodes a triage comment answer defensively.
func DecodeGenerate(raw json.RawMessage) GenerateResponse {
	obj := objectOf(raw)
	return GenerateResponse{
		ResponseText:     stringField(obj, "response_text"),
		SuggestedActions: actionsField(obj, "suggested_actions"),
		UsedCannedIDs:    stringsField(obj, "used_canned_ids"),
		Reasoning:        stringField(obj, "reasoning"),
	}
}

// DecodeRefine decodes a reworked draft answer defensively.
func DecodeRefine(raw json.RawMessage) RefineResponse {
	obj := objectOf(raw)
	return RefineResponse{
		RefinedResponse: stringField(obj, "refined_response"),
		ChangesMade:     stringsField(obj, "changes_made"),
	}
}

// DecodeTestPage decodes a reproduction-page answer defensively.
func DecodeTestPage(raw json.RawMessage) TestPageResponse {
	obj := objectOf(raw)
	return TestPageResponse{
		CanGenerate: boolField(obj, "can_generate"),
		HTMLContent: stringField(obj, "html_content"),
		Reason:      stringField(obj, "reason"),
	}
}

// objectOf unmarshals raw into a generic object. Anything that is not a
// JSON object yields nil, which every field reader treats as empty.
func objectOf(raw json.RawMessage) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

func boolField(obj map[string]any, key string) bool {
	value, _ := obj[key].(bool)
	return value
}

func stringField(obj map[string]any, key string) string {
	value, _ := obj[key].(string)
	return value
}

// stringsField collects the string elements of an array field, dropping
// anything that is not a string.
func stringsField(obj map[string]any, key string) []string {
	items, _ := obj[key].([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// actionsField collects well-formed action elements, dropping malformed
// ones. An element needs at least a string "action"; "reason" defaults to
// empty.
func actionsField(obj map[string]any, key string) []TriageAction {
	items, _ := obj[key].([]any)
	out := make([]TriageAction, 0, len(items))
	for _, item := range items {
		element, ok := item.(map[string]any)
		if !ok {
			continue
		}
		action, ok := element["action"].(string)
		if !ok || action == "" {
			continue
		}
		reason, _ := element["reason"].(string)
		out = append(out, TriageAction{Action: action, Reason: reason})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
