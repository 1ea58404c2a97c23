package agesdk

import "time"

// ============================================================================
// Errors
// ============================================================================

// ErrorResponse is the JSON error body returned by every endpoint.
type ErrorResponse struct {
	// Error is a short machine readable code (e.g. "invalid_request")
	Error string `json:"error" example:"invalid_request"`

	// ErrorDescription is a human readable description of the error
	ErrorDescription string `json:"error_description,omitempty" example:"body must be a json object"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	// Status is "ok" or "unavailable"
	Status string `json:"status" example:"ok"`

	// Uptime is the service uptime (e.g. "1h23m45s")
	Uptime string `json:"uptime,omitempty" example:"1h23m45s"`

	// Version is the service build version
	Version string `json:"version,omitempty" example:"v1.0.0"`

	// Checks is only set by /readyz
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency.
type HealthChecks struct {
	// Store is the session and ledger store status
	Store string `json:"store" example:"ok"`

	// AdminAPI is "ok" when Shopify Admin API credentials are configured
	AdminAPI string `json:"admin_api" example:"not_configured"`

	// SignatureVerification is "enabled" when assurance token signatures are checked
	SignatureVerification string `json:"signature_verification" example:"enabled"`
}

// ============================================================================
// Sessions
// ============================================================================

// CreateSessionRequest carries the optional details a shopper gives before
// starting an age check.
type CreateSessionRequest struct {
	Surname     string `json:"surname,omitempty" example:"Smith"`
	OrderNumber string `json:"orderNumber,omitempty" example:"#1001"`
	Postcode    string `json:"postcode,omitempty" example:"AB12 3CD"`
}

// CreateSessionResponse is returned from POST /v1/sessions.
type CreateSessionResponse struct {
	SessionID string    `json:"sessionId" example:"3f9a0c2d4b5e6f708192a3b4c5d6e7f8"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionResponse is a stored verification session.
type SessionResponse struct {
	SessionID   string    `json:"sessionId" example:"3f9a0c2d4b5e6f708192a3b4c5d6e7f8"`
	Surname     string    `json:"surname,omitempty" example:"Smith"`
	OrderNumber string    `json:"orderNumber,omitempty" example:"#1001"`
	Postcode    string    `json:"postcode,omitempty" example:"AB12 3CD"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// ============================================================================
// Verification
// ============================================================================

// VerifyRequest is the body of POST /v1/verify.
type VerifyRequest struct {
	Token string `json:"token" example:"eyJhbGciOiJSUzI1NiJ9.eyJ1aWQiOiJ1LTEifQ.c2ln"`
}

// VerifyResponse is the decoded assurance token. Verified is false and every
// other field empty when the token was rejected.
type VerifyResponse struct {
	Verified           bool   `json:"verified" example:"true"`
	UID                string `json:"uid,omitempty" example:"u-1"`
	AssuranceLevel     string `json:"assuranceLevel,omitempty" example:"high"`
	Country            string `json:"country,omitempty" example:"GB"`
	CountrySubdivision string `json:"countrySubdivision,omitempty" example:"GB-ENG"`
	AgeThreshold       int    `json:"ageThreshold,omitempty" example:"18"`
	ExpiresAt          int64  `json:"expiresAt,omitempty"`
	ExpiresIn          int64  `json:"expiresIn,omitempty"`

	// SignatureChecked is false when the token was accepted decode-only
	SignatureChecked bool `json:"signatureChecked"`
}

// ============================================================================
// Webhooks
// ============================================================================

// WebhookResponse acknowledges an accepted webhook.
type WebhookResponse struct {
	OK      bool   `json:"ok" example:"true"`
	EventID string `json:"eventId,omitempty" example:"evt_123"`
	Type    string `json:"type,omitempty" example:"verification.completed"`
	Signed  bool   `json:"signed" example:"true"`
}

// ============================================================================
// Evidence
// ============================================================================

// PersistEvidenceRequest is the body of POST /v1/evidence. The customer is
// resolved from, in order: CustomerGID, CustomerID, OrderNumber (with an
// optional ConfirmationCode), Email and Postcode. SessionID fills
// OrderNumber, Postcode and LastName from a stored session.
type PersistEvidenceRequest struct {
	CustomerGID      string `json:"customerGid,omitempty" example:"gid://shopify/Customer/7"`
	CustomerID       string `json:"customerId,omitempty" example:"7"`
	OrderNumber      string `json:"orderNumber,omitempty" example:"#1001"`
	ConfirmationCode string `json:"confirmationCode,omitempty" example:"ULETWJUNV"`
	Email            string `json:"email,omitempty" example:"shopper@example.com"`
	Postcode         string `json:"postcode,omitempty" example:"AB12 3CD"`
	FirstName        string `json:"firstName,omitempty" example:"Sam"`
	LastName         string `json:"lastName,omitempty" example:"Smith"`
	SessionID        string `json:"sessionId,omitempty"`

	// Token is the assurance token; it is verified before anything is written
	Token string `json:"token"`

	VerificationLogs []string `json:"verificationLogs,omitempty"`
	Source           string   `json:"source,omitempty" example:"checkout"`
}

// ManualEvidenceRequest records a manual review against a customer.
type ManualEvidenceRequest struct {
	Verified         bool     `json:"verified" example:"true"`
	OrderNumber      string   `json:"orderNumber,omitempty" example:"#1001"`
	VerificationLogs []string `json:"verificationLogs,omitempty"`
	Outcome          string   `json:"outcome,omitempty" example:"verified"`
	Source           string   `json:"source,omitempty" example:"support"`
}

// PersistResult reports what a persist call did. Error is set on failure and
// on partial success (evidence saved, tagging failed).
type PersistResult struct {
	Created     bool   `json:"created" example:"true"`
	Existed     bool   `json:"existed" example:"false"`
	Updated     bool   `json:"updated" example:"false"`
	Target      string `json:"target" example:"customer"`
	Error       string `json:"error,omitempty" example:"tagging_failed"`
	Outcome     string `json:"outcome" example:"created"`
	CustomerGID string `json:"customerGid,omitempty" example:"gid://shopify/Customer/7"`
}

// Evidence is the stored proof of an age check.
type Evidence struct {
	Verified           bool      `json:"verified" example:"true"`
	UID                string    `json:"uid,omitempty" example:"u-1"`
	Token              string    `json:"token,omitempty"`
	AssuranceLevel     string    `json:"assuranceLevel,omitempty" example:"high"`
	AgeThreshold       int       `json:"ageThreshold,omitempty" example:"18"`
	Country            string    `json:"country,omitempty" example:"GB"`
	CountrySubdivision string    `json:"countrySubdivision,omitempty"`
	ExpiresIn          int64     `json:"expiresIn,omitempty"`
	VerificationMethod string    `json:"verificationMethod" example:"ageverif"`
	VerificationLogs   []string  `json:"verificationLogs"`
	Outcome            string    `json:"outcome" example:"verified"`
	Timestamp          time.Time `json:"timestamp"`
	Source             string    `json:"source,omitempty" example:"api"`
	OrderNumber        string    `json:"orderNumber,omitempty" example:"#1001"`
	CustomerGID        string    `json:"customerGid,omitempty" example:"gid://shopify/Customer/7"`
	RetentionExpiry    time.Time `json:"retentionExpiry"`
}

// Attempt is one row of the local audit ledger.
type Attempt struct {
	ID               string    `json:"id" example:"01HZX3J8K9M2N4P6Q8R0S2T4V6"`
	CustomerGID      string    `json:"customerGid,omitempty"`
	OrderNumber      string    `json:"orderNumber,omitempty"`
	UID              string    `json:"uid,omitempty"`
	Outcome          string    `json:"outcome" example:"created"`
	Source           string    `json:"source" example:"persist"`
	TokenFingerprint string    `json:"tokenFingerprint,omitempty"`
	HasSealedToken   bool      `json:"hasSealedToken"`
	CreatedAt        time.Time `json:"createdAt"`
}

// AttemptsResponse lists ledger rows, newest first.
type AttemptsResponse struct {
	Attempts []Attempt `json:"attempts"`
}

// AttemptTokenResponse carries the opened token of one ledger row.
type AttemptTokenResponse struct {
	AttemptID string `json:"attemptId" example:"01HZX3J8K9M2N4P6Q8R0S2T4V6"`
	Token     string `json:"token"`
}

// ============================================================================
// Orders
// ============================================================================

// Address is the subset of a Shopify address used for matching.
type Address struct {
	Zip string `json:"zip,omitempty" example:"AB12 3CD"`
}

// Customer is the subset of a Shopify customer returned with an order.
type Customer struct {
	ID        string `json:"id" example:"gid://shopify/Customer/7"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Order is a Shopify order as returned by the lookup endpoints.
type Order struct {
	ID               string    `json:"id" example:"gid://shopify/Order/1"`
	Name             string    `json:"name" example:"#1001"`
	Email            string    `json:"email,omitempty"`
	ConfirmationCode string    `json:"confirmationCode,omitempty"`
	Customer         *Customer `json:"customer,omitempty"`
	ShippingAddress  *Address  `json:"shippingAddress,omitempty"`
	BillingAddress   *Address  `json:"billingAddress,omitempty"`
}
