package agesdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/ageverif/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeInvalidToken         = "invalid_token"
	ErrorCodeNotFound             = "not_found"
	ErrorCodeNotConfigured        = "not_configured"
	ErrorCodeInvalidCustomer      = "invalid_customer"
	ErrorCodeInvalidJSON          = "invalid_json"
	ErrorCodeMissingSignature     = "missing_signature"
	ErrorCodeInvalidSignature     = "invalid_signature"
	ErrorCodeWebhookNotConfigured = "webhook_not_configured"
	ErrorCodeUpstreamError        = "upstream_error"
	ErrorCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrorCodeServerError          = "server_error"
	ErrorCodeTokenRejected        = "token_rejected"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is an error response from the service. It is used both by the
// server to write responses and by the client to report them.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine readable error code
	Code string `json:"error"`

	// Description is a human readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches another *APIError with the same status and code, so responses
// parsed by the client compare equal to the predefined errors.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Code == t.Code
}

// WriteError writes this error to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Description)
}

// WithDescription returns a copy of e with a different description.
func (e *APIError) WithDescription(desc string) *APIError {
	c := *e
	c.Description = desc
	return &c
}

// NewAPIError creates an APIError.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the body or parameters are malformed.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrUnauthorized is returned when the admin bearer token is missing or wrong.
	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "missing or invalid bearer token",
	}

	// ErrTokenRejected is returned when an assurance token fails to decode or verify.
	ErrTokenRejected = &APIError{
		StatusCode:  http.StatusUnprocessableEntity,
		Code:        ErrorCodeTokenRejected,
		Description: "assurance token could not be verified",
	}

	// ErrNotFound is returned for unknown sessions, orders and evidence.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "not found",
	}

	// ErrInvalidCustomer is returned when a customer reference is neither a
	// numeric id nor a Customer gid.
	ErrInvalidCustomer = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidCustomer,
		Description: "customer must be a numeric id or gid://shopify/Customer/<id>",
	}

	// ErrNotConfigured is returned when Admin API credentials are missing.
	ErrNotConfigured = &APIError{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeNotConfigured,
		Description: "admin api not configured",
	}

	// ErrUpstream is returned when the Admin API failed.
	ErrUpstream = &APIError{
		StatusCode:  http.StatusBadGateway,
		Code:        ErrorCodeUpstreamError,
		Description: "upstream request failed",
	}

	// ErrWebhookInvalidJSON is returned when a webhook body is not a JSON object.
	ErrWebhookInvalidJSON = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidJSON,
		Description: "body must be a json object",
	}

	// ErrWebhookMissingSignature is returned when a signature is required but absent.
	ErrWebhookMissingSignature = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeMissingSignature,
		Description: "signature header missing",
	}

	// ErrWebhookInvalidSignature is returned when the signature does not match.
	ErrWebhookInvalidSignature = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidSignature,
		Description: "signature does not match body",
	}

	// ErrWebhookNotConfigured is returned in production when no secret is set.
	ErrWebhookNotConfigured = &APIError{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeWebhookNotConfigured,
		Description: "webhook secret not configured",
	}

	// ErrServerError is returned on unexpected failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse turns a non-2xx response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
