package domain

// WebhookEvent is an accepted webhook payload.
type WebhookEvent struct {
	ID      string         `json:"id,omitempty"`
	Type    string         `json:"type,omitempty"`
	Signed  bool           `json:"signed"`
	Payload map[string]any `json:"payload"`
}

// String returns the string value of a top-level payload field.
func (e WebhookEvent) String(key string) string {
	s, _ := e.Payload[key].(string)
	return s
}
