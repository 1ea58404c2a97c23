package agesdk

import (
	"context"
	"net/http"
)

// CreateSession starts a verification session.
func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (*CreateSessionResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/sessions", req, nil)
	if err != nil {
		return nil, err
	}

	var out CreateSessionResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}

	return &out, nil
}

// Verify checks an assurance token. A rejected token is not an error; the
// result has Verified set to false.
func (c *Client) Verify(ctx context.Context, token string) (*VerifyResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/verify", VerifyRequest{Token: token}, nil)
	if err != nil {
		return nil, err
	}

	var out VerifyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// PersistEvidence verifies req.Token and records the result on the resolved
// customer. Failures to resolve or write are reported in the result.
func (c *Client) PersistEvidence(ctx context.Context, req PersistEvidenceRequest) (*PersistResult, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/evidence", req, nil)
	if err != nil {
		return nil, err
	}

	var out PersistResult
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}
