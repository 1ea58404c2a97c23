package domain

// VerificationToken is the decoded claim set of an assurance token. It is
// request scoped and never stored as-is.
type VerificationToken struct {
	UID                string `json:"uid"`
	AssuranceLevel     string `json:"assuranceLevel,omitempty"`
	Country            string `json:"country,omitempty"`
	CountrySubdivision string `json:"countrySubdivision,omitempty"`
	AgeThreshold       int    `json:"ageThreshold,omitempty"`
	ExpiresAt          int64  `json:"expiresAt,omitempty"`
	ExpiresIn          int64  `json:"expiresIn,omitempty"`
	Verified           bool   `json:"verified"`

	// SignatureChecked is false when the token was accepted decode-only.
	SignatureChecked bool `json:"-"`
}
