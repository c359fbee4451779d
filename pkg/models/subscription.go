package models

import "encoding/json"

// Subscription is the body posted to the newsletter endpoint.
type Subscription struct {
	Email string `json:"email"`
}

// SubscribeResult is the decoded success response of the newsletter endpoint.
// Fields other than success/message are kept verbatim in Extra.
type SubscribeResult struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message,omitempty"`
	Extra   map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (r *SubscribeResult) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["success"]; ok {
		if err := json.Unmarshal(v, &r.Success); err != nil {
			return err
		}
		delete(raw, "success")
	}
	if v, ok := raw["message"]; ok {
		// Non-string messages are left in Extra.
		if json.Unmarshal(v, &r.Message) == nil {
			delete(raw, "message")
		}
	}

	if len(raw) > 0 {
		r.Extra = raw
	}
	return nil
}
