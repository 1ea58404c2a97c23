package domain

// Outcome tags the result of a persist call.
type Outcome string

const (
	OutcomeCreated        Outcome = "created"
	OutcomeExisted        Outcome = "existed"
	OutcomeNotConfigured  Outcome = "not_configured"
	OutcomeNoCustomer     Outcome = "no_customer"
	OutcomeWriteFailed    Outcome = "write_failed"
	OutcomePartialFailure Outcome = "partial_failure"
)

// Persist targets.
const (
	TargetNone     = "none"
	TargetCustomer = "customer"
)

// Persist error codes.
const (
	PersistErrNotConfigured = "not_configured"
	PersistErrSetFailed     = "metafield_set_failed"
	PersistErrTagFailed     = "tagging_failed"
)

// PersistResult reports what a persist call did.
type PersistResult struct {
	Created     bool    `json:"created"`
	Existed     bool    `json:"existed"`
	Updated     bool    `json:"updated"`
	Target      string  `json:"target"`
	Error       string  `json:"error,omitempty"`
	Outcome     Outcome `json:"outcome"`
	CustomerGID string  `json:"customerGid,omitempty"`
}

// Saved reports whether evidence is on the customer after the call.
func (r PersistResult) Saved() bool {
	return r.Created || r.Existed
}
