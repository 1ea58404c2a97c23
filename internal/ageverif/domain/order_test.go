package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/domain"
	"github.com/stretchr/testify/require"
)

func TestPostcodesMatch(t *testing.T) {
	require.True(t, domain.PostcodesMatch("AB12 3CD", "ab123cd"))
	require.True(t, domain.PostcodesMatch("ab12\t3cd ", " AB12 3CD"))
	require.False(t, domain.PostcodesMatch("AB12 3CD", "AB12 3CE"))
	require.False(t, domain.PostcodesMatch("", ""))
	require.False(t, domain.PostcodesMatch("  ", ""))
}

func TestNormalizeOrderName(t *testing.T) {
	require.Equal(t, "#1001", domain.NormalizeOrderName("1001"))
	require.Equal(t, "#1001", domain.NormalizeOrderName(" #1001 "))
	require.Equal(t, "", domain.NormalizeOrderName(""))
}

func TestRetentionExpiry(t *testing.T) {
	ts := time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2031, 3, 1, 12, 0, 0, 0, time.UTC), domain.RetentionExpiry(ts))
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	require.False(t, domain.VerificationSession{}.Expired(now))
	require.True(t, domain.VerificationSession{ExpiresAt: now}.Expired(now))
	require.False(t, domain.VerificationSession{ExpiresAt: now.Add(time.Second)}.Expired(now))
}
