package agesdk

import (
	"bytes"
	"context"
	"net/http"
)

// SendWebhook posts a raw provider event. signature is the hex HMAC-SHA256
// of body and may be empty when the service runs without a shared secret.
func (c *Client) SendWebhook(ctx context.Context, body []byte, signature string) (*WebhookResponse, error) {
	headers := map[string]string{"Content-Type": "application/json"}
	if signature != "" {
		headers["X-Ageverif-Signature"] = signature
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/webhooks/ageverif", bytes.NewReader(body), headers)
	if err != nil {
		return nil, err
	}

	var out WebhookResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}
