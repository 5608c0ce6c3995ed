package relay

import (
	"encoding/json"
	"strings"
)

// parseChatRequest decodes an inbound request body.
//
// An absent or blank body is treated as an empty request rather than an
// error: the widget may send a bare POST, and that case should get the
// standard missing-message response, not a parse failure. Unknown fields
// are ignored. A message of the wrong JSON type is a parse error.
func parseChatRequest(body string) (*chatRequest, error) {
	if strings.TrimSpace(body) == "" {
		return &chatRequest{}, nil
	}

	var req chatRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return nil, err
	}

	return &req, nil
}
