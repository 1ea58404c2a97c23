package domain

import "time"

// VerificationSession records what a shopper told us before starting an
// age check, so the result can later be linked to their order.
type VerificationSession struct {
	ID          string
	Surname     string
	OrderNumber string
	Postcode    string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Expired reports whether the session is past its expiry at now.
// A zero ExpiresAt never expires.
func (s VerificationSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
