package service

import "errors"

// Token verification.
var (
	ErrTokenMalformed       = errors.New("token malformed")
	ErrSignatureInvalid     = errors.New("token signature invalid")
	ErrUnsupportedAlgorithm = errors.New("token algorithm unsupported")
	ErrKeyInvalid           = errors.New("verification key invalid")
)

// Order and customer resolution.
var (
	ErrNotConfigured        = errors.New("admin api not configured")
	ErrOrderNotFound        = errors.New("order not found")
	ErrConfirmationMismatch = errors.New("confirmation code mismatch")
	ErrUpstream             = errors.New("upstream request failed")
	ErrInvalidCustomer      = errors.New("invalid customer reference")
	ErrEvidenceNotFound     = errors.New("verification evidence not found")
	ErrInvalidAttemptID     = errors.New("invalid attempt id")
	ErrAttemptNotFound      = errors.New("verification attempt not found")
	ErrTokenNotRetained     = errors.New("attempt has no retained token")
)

// Sessions.
var (
	ErrSessionNotFound = errors.New("session not found")
)

// Webhooks.
var (
	ErrWebhookInvalidJSON      = errors.New("webhook body is not a json object")
	ErrWebhookSignatureMissing = errors.New("webhook signature missing")
	ErrWebhookSignatureInvalid = errors.New("webhook signature invalid")
	ErrWebhookNotConfigured    = errors.New("webhook secret not configured")
)
