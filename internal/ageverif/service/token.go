package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/domain"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/metrics"
	"github.com/aussiebroadwan/ageverif/pkg/jwtx"
	"github.com/aussiebroadwan/ageverif/pkg/slogx"
)

// Verification results reported to metrics.
const (
	verifyResultVerified   = "verified"
	verifyResultDecodeOnly = "decode_only"
	verifyResultRejected   = "rejected"
)

// TokenService turns assurance tokens into VerificationTokens.
//
// Signatures are only checked when a Verifier is configured and Production
// is set. Otherwise the payload is trusted as decoded; that mode exists for
// development and staging and is logged on every call.
type TokenService struct {
	Verifier   *jwtx.Verifier
	Production bool
	Metrics    *metrics.Metrics
}

// VerificationEnabled reports whether signatures will be checked.
func (s *TokenService) VerificationEnabled() bool {
	return s.Verifier != nil && s.Production
}

// Verify decodes token, checks its signature when enabled and maps the
// claims. Every failure is one of the Err* token sentinels.
func (s *TokenService) Verify(ctx context.Context, token string) (domain.VerificationToken, error) {
	l := slogx.FromContext(ctx)

	decoded, err := jwtx.Decode(token)
	if err != nil {
		l.Info("assurance token rejected", "reason", "malformed", "error", err)
		s.Metrics.IncVerification(verifyResultRejected)
		return domain.VerificationToken{}, errors.Join(ErrTokenMalformed, err)
	}

	checked := false
	if s.VerificationEnabled() {
		if err := s.Verifier.VerifyDecoded(decoded); err != nil {
			l.Warn("assurance token signature verification failed", "alg", decoded.Alg(), "error", err)
			s.Metrics.IncVerification(verifyResultRejected)
			return domain.VerificationToken{}, mapVerifyError(err)
		}
		checked = true
		s.Metrics.IncVerification(verifyResultVerified)
	} else {
		l.Debug("assurance token accepted without signature check",
			"key_configured", s.Verifier != nil,
			"production", s.Production,
		)
		s.Metrics.IncVerification(verifyResultDecodeOnly)
	}

	vt := claimsToToken(decoded.Payload)
	vt.SignatureChecked = checked
	return vt, nil
}

func mapVerifyError(err error) error {
	switch {
	case errors.Is(err, jwtx.ErrAlgUnsupported):
		return errors.Join(ErrUnsupportedAlgorithm, err)
	case errors.Is(err, jwtx.ErrInvalidKey):
		return errors.Join(ErrKeyInvalid, err)
	case errors.Is(err, jwtx.ErrMalformed):
		return errors.Join(ErrTokenMalformed, err)
	default:
		return errors.Join(ErrSignatureInvalid, err)
	}
}

// claimsToToken maps payload claims. Short claim names win over long ones.
func claimsToToken(claims map[string]any) domain.VerificationToken {
	return domain.VerificationToken{
		UID:                claimString(claims, "jti", "uid"),
		AssuranceLevel:     claimString(claims, "ass", "assuranceLevel"),
		Country:            claimString(claims, "cco", "country"),
		CountrySubdivision: claimString(claims, "csu", "countrySubdivision"),
		AgeThreshold:       int(claimInt(claims, "age", "ageThreshold")),
		ExpiresAt:          claimInt(claims, "exp", "expiresAt"),
		ExpiresIn:          claimInt(claims, "vxp", "expiresIn"),
		Verified:           true,
	}
}

func claimValue(claims map[string]any, short, long string) (any, bool) {
	if v, ok := claims[short]; ok && v != nil {
		return v, true
	}
	v, ok := claims[long]
	return v, ok && v != nil
}

func claimString(claims map[string]any, short, long string) string {
	v, ok := claimValue(claims, short, long)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func claimInt(claims map[string]any, short, long string) int64 {
	v, ok := claimValue(claims, short, long)
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return int64(t)
	case json.Number:
		n, _ := t.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(t, 10, 64)
		return n
	default:
		return 0
	}
}
