package upstream

import (
	"encoding/json"
	"strings"
)

// Provider API request/response types

// Message roles used in the request payload.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// contentTypeOutputText is the discriminator for assistant text pieces
// in the response's nested content structure.
const contentTypeOutputText = "output_text"

// generateRequest represents a response-generation request.
type generateRequest struct {
	Model string         `json:"model"`
	Input []inputMessage `json:"input"`
}

// inputMessage represents a single entry in the request's input list.
type inputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// generateResponse represents a response-generation response.
//
// The provider's response document is loosely shaped; only the fields
// consumed by the extractor are declared, and both are held raw so a
// document carrying them with unexpected types still decodes.
type generateResponse struct {
	// Output is expected to be a list of output items.
	Output json.RawMessage `json:"output"`

	// OutputText is the top-level fallback, expected to be a string.
	OutputText json.RawMessage `json:"output_text"`
}

// outputItem represents one entry of the response's output list.
type outputItem struct {
	// Content is expected to be a list of content parts.
	Content json.RawMessage `json:"content"`
}

// contentPart represents one entry of an output item's content list.
type contentPart struct {
	// Type discriminates the part; only "output_text" parts are consumed.
	Type string `json:"type"`

	// Text is expected to be a string for "output_text" parts.
	Text json.RawMessage `json:"text"`
}

// buildRequest constructs the request payload: the fixed model and an
// ordered two-entry input list with the system instruction first and
// the user message second.
func buildRequest(model, instruction, message string) *generateRequest {
	return &generateRequest{
		Model: model,
		Input: []inputMessage{
			{Role: RoleSystem, Content: instruction},
			{Role: RoleUser, Content: message},
		},
	}
}

// extractText pulls the assistant's reply text out of a response body.
//
// Extraction is best-effort over the loosely-typed document:
//
//  1. If the document's "output" field is a list, every entry whose
//     "content" field is a list contributes its parts; a part is
//     appended when its "type" is "output_text" and its "text" is a
//     string. Concatenation preserves document order.
//  2. If that pass accumulates nothing and the top-level "output_text"
//     field is a string, it is used as a fallback.
//  3. The result is returned with surrounding whitespace trimmed and
//     may legitimately be empty.
//
// Any field with an unexpected type is skipped, never an error. The
// only failure is a body that does not decode as a JSON document at
// all, which is a *ParseError.
func extractText(body []byte) (string, error) {
	var doc generateResponse
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", &ParseError{
			RawResponse: string(body),
			Cause:       err,
		}
	}

	var accumulated strings.Builder

	var items []json.RawMessage
	if json.Unmarshal(doc.Output, &items) == nil {
		for _, rawItem := range items {
			var item outputItem
			if json.Unmarshal(rawItem, &item) != nil {
				continue
			}

			var parts []json.RawMessage
			if json.Unmarshal(item.Content, &parts) != nil {
				continue
			}

			for _, rawPart := range parts {
				var part contentPart
				if json.Unmarshal(rawPart, &part) != nil {
					continue
				}
				if part.Type != contentTypeOutputText {
					continue
				}

				var text string
				if json.Unmarshal(part.Text, &text) != nil {
					continue
				}
				accumulated.WriteString(text)
			}
		}
	}

	result := accumulated.String()

	// Fallback to the top-level output_text string when the output
	// list contributed nothing.
	if result == "" {
		var fallback string
		if json.Unmarshal(doc.OutputText, &fallback) == nil {
			result = fallback
		}
	}

	return strings.TrimSpace(result), nil
}
