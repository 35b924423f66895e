// Package triage defines the request/response contract of the proxy's AI
// endpoints: the wire shapes, the JSON Schemas handed to the agent, the
// prompt builders and the defensive response decoders.
package triage

import "encoding/json"

// Requests arrive from the frontend with camelCase keys. Every request
// names a provider, optionally pins a model, and may carry a pre-built
// prompt and schema; when absent, the built-in prompt builder and schema
// for the operation apply.

// ClassifyRequest asks for a triage classification of one bug.
type ClassifyRequest struct {
	Provider string          `json:"provider"`
	Model    string          `json:"model"`
	Bug      json.RawMessage `json:"bug"`
	Prompt   string          `json:"prompt"`
	Schema   string          `json:"schema"`
}

// SuggestRequest asks which canned response fits a bug best.
type SuggestRequest struct {
	Provider        string            `json:"provider"`
	Model           string            `json:"model"`
	Bug             json.RawMessage   `json:"bug"`
	CannedResponses []json.RawMessage `json:"cannedResponses"`
	Prompt          string            `json:"prompt"`
	Schema          string            `json:"schema"`
}

// CustomizeRequest asks for one canned response tailored to a bug.
type CustomizeRequest struct {
	Provider       string          `json:"provider"`
	Model          string          `json:"model"`
	Bug            json.RawMessage `json:"bug"`
	CannedResponse json.RawMessage `json:"cannedResponse"`
	Prompt         string          `json:"prompt"`
	Schema         string          `json:"schema"`
}

// GenerateRequest asks for a triage comment plus suggested actions.
type GenerateRequest struct {
	Provider string          `json:"provider"`
	Model    string          `json:"model"`
	Bug      json.RawMessage `json:"bug"`
	Options  json.RawMessage `json:"options"`
	Prompt   string          `json:"prompt"`
	Schema   string          `json:"schema"`
}

// RefineRequest asks for an existing draft reworked per an instruction.
type RefineRequest struct {
	Provider        string          `json:"provider"`
	Model           string          `json:"model"`
	Bug             json.RawMessage `json:"bug"`
	CurrentResponse string          `json:"currentResponse"`
	UserInstruction string          `json:"userInstruction"`
	Context         json.RawMessage `json:"context"`
	Prompt          string          `json:"prompt"`
	Schema          string          `json:"schema"`
}

// TestPageRequest asks for a standalone reproduction page for a bug.
type TestPageRequest struct {
	Provider string          `json:"provider"`
	Model    string          `json:"model"`
	Bug      json.RawMessage `json:"bug"`
	Prompt   string          `json:"prompt"`
	Schema   string          `json:"schema"`
}

// Responses are serialized with snake_case keys, matching the schemas the
// agent is asked to enforce.

// TriageAction is one recommended triage step.
type TriageAction struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

// ClassifyResponse is the decoded classification answer.
type ClassifyResponse struct {
	AIDetectedSTR          bool           `json:"ai_detected_str"`
	AIDetectedTestAttached bool           `json:"ai_detected_test_attached"`
	CrashstackPresent      bool           `json:"crashstack_present"`
	FuzzingTestcase        bool           `json:"fuzzing_testcase"`
	Summary                string         `json:"summary"`
	SuggestedSeverity      string         `json:"suggested_severity,omitempty"`
	SuggestedPriority      string         `json:"suggested_priority,omitempty"`
	SuggestedActions       []TriageAction `json:"suggested_actions,omitempty"`
	TriageReasoning        string         `json:"triage_reasoning,omitempty"`
	SuggestedCannedID      string         `json:"suggested_canned_id,omitempty"`
	DraftResponse          string         `json:"draft_response,omitempty"`
}

// SuggestResponse is the decoded canned-response suggestion.
type SuggestResponse struct {
	SuggestedResponseID string `json:"suggested_response_id"`
	DraftResponse       string `json:"draft_response"`
	Reasoning           string `json:"reasoning,omitempty"`
}

// CustomizeResponse is the decoded customized canned response.
type CustomizeResponse struct {
	FinalResponse string `json:"final_response"`
	UsedCannedID  string `json:"used_canned_id"`
}

// GenerateResponse is the decoded triage comment.
type GenerateResponse struct {
	ResponseText     string         `json:"response_text"`
	SuggestedActions []TriageAction `json:"suggested_actions"`
	UsedCannedIDs    []string       `json:"used_canned_ids,omitempty"`
	Reasoning        string         `json:"reasoning"`
}

// RefineResponse is the decoded reworked draft.
type RefineResponse struct {
	RefinedResponse string   `json:"refined_response"`
	ChangesMade     []string `json:"changes_made"`
}

// TestPageResponse is the decoded reproduction-page answer.
type TestPageResponse struct {
	CanGenerate bool   `json:"can_generate"`
	HTMLContent string `json:"html_content"`
	Reason      string `json:"reason"`
}

// Marker keys identify a bare JSON object as a direct (unwrapped) answer
// for an operation when the agent skips the usual result envelope. Each
// operation declares the keys of its own answer shape.
var (
	ClassifyMarkers  = []string{"ai_detected_str"}
	SuggestMarkers   = []string{"suggested_response_id"}
	CustomizeMarkers = []string{"final_response"}
	GenerateMarkers  = []string{"response_text"}
	RefineMarkers    = []string{"refined_response"}
	TestPageMarkers  = []string{"can_generate", "html_content"}
)
