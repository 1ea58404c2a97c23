package domain

import "time"

// Attempt sources.
const (
	SourcePersist = "persist"
	SourceWebhook = "webhook"
)

// OutcomeAccepted marks a webhook that passed validation.
const OutcomeAccepted Outcome = "accepted"

// Attempt is one row of the local audit ledger: every persist call and
// every accepted webhook. Raw tokens are only ever stored sealed.
type Attempt struct {
	ID               string
	CustomerGID      string
	OrderNumber      string
	UID              string
	Outcome          Outcome
	Source           string
	TokenFingerprint string
	SealedToken      []byte
	CreatedAt        time.Time
}
