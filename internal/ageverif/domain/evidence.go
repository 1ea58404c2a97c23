package domain

import "time"

// RetentionYears is how long evidence must be kept after it is recorded.
const RetentionYears = 7

// VerificationMethod values.
const (
	MethodAgeVerif = "ageverif"
	MethodManual   = "manual"
)

// VerificationEvidence is the durable proof of an age check, stored as JSON
// on the customer record.
type VerificationEvidence struct {
	Verified           bool      `json:"verified"`
	UID                string    `json:"uid,omitempty"`
	Token              string    `json:"token,omitempty"`
	AssuranceLevel     string    `json:"assuranceLevel,omitempty"`
	AgeThreshold       int       `json:"ageThreshold,omitempty"`
	Country            string    `json:"country,omitempty"`
	CountrySubdivision string    `json:"countrySubdivision,omitempty"`
	ExpiresIn          int64     `json:"expiresIn,omitempty"`
	VerificationMethod string    `json:"verificationMethod"`
	VerificationLogs   []string  `json:"verificationLogs"`
	Outcome            string    `json:"outcome"`
	Timestamp          time.Time `json:"timestamp"`
	Source             string    `json:"source,omitempty"`
	OrderNumber        string    `json:"orderNumber,omitempty"`
	CustomerGID        string    `json:"customerGid,omitempty"`
	RetentionExpiry    time.Time `json:"retentionExpiry"`
}

// RetentionExpiry returns the earliest time evidence recorded at t may be
// destroyed.
func RetentionExpiry(t time.Time) time.Time {
	return t.AddDate(RetentionYears, 0, 0)
}
