package triage

// Built-in JSON Schemas handed to the agent per operation. Callers may
// override them per request; these are the defaults the frontend relies on.

// ClassifySchema constrains the classification answer.
const ClassifySchema = `{
  "type": "object",
  "properties": {
    "ai_detected_str": {
      "type": "boolean",
      "description": "True if clear steps to reproduce are found in the bug text"
    },
    "ai_detected_test_attached": {
      "type": "boolean",
      "description": "True if a testcase file or reproduction code is referenced"
    },
    "crashstack_present": {
      "type": "boolean",
      "description": "True if crash stack traces or sanitizer output is present"
    },
    "fuzzing_testcase": {
      "type": "boolean",
      "description": "True if this appears to be from fuzzing (fuzzilli, oss-fuzz, etc.)"
    },
    "summary": {
      "type": "string",
      "description": "Brief 1-3 sentence summary of the bug for triagers"
    }
  },
  "required": ["ai_detected_str", "ai_detected_test_attached", "crashstack_present", "fuzzing_testcase", "summary"]
}`

// CustomizeSchema constrains the customized canned response.
const CustomizeSchema = `{
  "type": "object",
  "properties": {
    "final_response": {
      "type": "string",
      "description": "The customized response text ready to post"
    },
    "used_canned_id": {
      "type": "string",
      "description": "The ID of the canned response that was customized"
    }
  },
  "required": ["final_response", "used_canned_id"]
}`

// SuggestSchema constrains the canned-response suggestion.
const SuggestSchema = `{
  "type": "object",
  "properties": {
    "suggested_response_id": {
      "type": "string",
      "description": "The ID of the most appropriate canned response"
    },
    "draft_response": {
      "type": "string",
      "description": "A draft response customized for this bug"
    },
    "reasoning": {
      "type": "string",
      "description": "Brief explanation of why this response was chosen"
    }
  },
  "required": ["suggested_response_id", "draft_response"]
}`

// GenerateSchema constrains the triage comment answer.
const GenerateSchema = `{
  "type": "object",
  "properties": {
    "response_text": {
      "type": "string",
      "description": "The triage comment text ready to post"
    },
    "suggested_actions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "action": {"type": "string"},
          "reason": {"type": "string"}
        },
        "required": ["action"]
      },
      "description": "Recommended triage actions for this bug"
    },
    "used_canned_ids": {
      "type": "array",
      "items": {"type": "string"},
      "description": "IDs of canned responses drawn on, if any"
    },
    "reasoning": {
      "type": "string",
      "description": "Brief explanation of the recommendation"
    }
  },
  "required": ["response_text", "suggested_actions", "reasoning"]
}`

// RefineSchema constrains the reworked draft answer.
const RefineSchema = `{
  "type": "object",
  "properties": {
    "refined_response": {
      "type": "string",
      "description": "The reworked response text"
    },
    "changes_made": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Short descriptions of each change applied"
    }
  },
  "required": ["refined_response", "changes_made"]
}`

// TestPageSchema constrains the reproduction-page answer.
const TestPageSchema = `{
  "type": "object",
  "properties": {
    "can_generate": {
      "type": "boolean",
      "description": "True if a standalone reproduction page can be built from the bug"
    },
    "html_content": {
      "type": "string",
      "description": "Complete standalone HTML reproducing the bug, empty when can_generate is false"
    },
    "reason": {
      "type": "string",
      "description": "Why the page could or could not be generated"
    }
  },
  "required": ["can_generate", "html_content", "reason"]
}`
