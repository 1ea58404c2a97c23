package agesdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// GetSession returns a stored verification session.
func (a *AdminClient) GetSession(ctx context.Context, sessionID string) (*SessionResponse, error) {
	resp, err := a.client.doRequest(ctx, http.MethodGet, "/v1/sessions/"+url.PathEscape(sessionID), nil, a.authHeaders())
	if err != nil {
		return nil, err
	}

	var out SessionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// FindOrderByName looks up an order by name. confirmationCode may be empty.
func (a *AdminClient) FindOrderByName(ctx context.Context, name, confirmationCode string) (*Order, error) {
	path := "/v1/orders/" + url.PathEscape(name)
	if confirmationCode != "" {
		path += "?" + url.Values{"confirmation_code": {confirmationCode}}.Encode()
	}

	resp, err := a.client.doRequest(ctx, http.MethodGet, path, nil, a.authHeaders())
	if err != nil {
		return nil, err
	}

	var out Order
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// FindOrderByEmailAndPostcode returns the newest order for email whose
// shipping or billing postcode matches.
func (a *AdminClient) FindOrderByEmailAndPostcode(ctx context.Context, email, postcode string) (*Order, error) {
	q := url.Values{"email": {email}, "postcode": {postcode}}

	resp, err := a.client.doRequest(ctx, http.MethodGet, "/v1/orders?"+q.Encode(), nil, a.authHeaders())
	if err != nil {
		return nil, err
	}

	var out Order
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetCustomerEvidence returns the evidence stored on a customer. customer is
// a numeric id or a Customer gid.
func (a *AdminClient) GetCustomerEvidence(ctx context.Context, customer string) (*Evidence, error) {
	resp, err := a.client.doRequest(ctx, http.MethodGet, "/v1/customers/"+url.PathEscape(customer)+"/evidence", nil, a.authHeaders())
	if err != nil {
		return nil, err
	}

	var out Evidence
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// RecordManualEvidence stores the outcome of a manual review on a customer.
func (a *AdminClient) RecordManualEvidence(ctx context.Context, customer string, req ManualEvidenceRequest) (*PersistResult, error) {
	resp, err := a.client.doJSON(ctx, http.MethodPost, "/v1/customers/"+url.PathEscape(customer)+"/evidence", req, a.authHeaders())
	if err != nil {
		return nil, err
	}

	var out PersistResult
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListAttempts returns the local ledger for a customer, newest first. A limit
// of zero uses the server default.
func (a *AdminClient) ListAttempts(ctx context.Context, customer string, limit int) ([]Attempt, error) {
	path := "/v1/customers/" + url.PathEscape(customer) + "/attempts"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	resp, err := a.client.doRequest(ctx, http.MethodGet, path, nil, a.authHeaders())
	if err != nil {
		return nil, err
	}

	var out AttemptsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return out.Attempts, nil
}

// RevealAttemptToken returns the raw token retained on one ledger row.
func (a *AdminClient) RevealAttemptToken(ctx context.Context, customer, attemptID string) (string, error) {
	path := "/v1/customers/" + url.PathEscape(customer) + "/attempts/" + url.PathEscape(attemptID) + "/token"

	resp, err := a.client.doRequest(ctx, http.MethodGet, path, nil, a.authHeaders())
	if err != nil {
		return "", err
	}

	var out AttemptTokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}

	return out.Token, nil
}
