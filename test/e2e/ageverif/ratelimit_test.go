package ageverif_test

import (
	"testing"

	"github.com/aussiebroadwan/ageverif/pkg/agesdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitSessionEndpoint runs with the default profiles. Session
// creation allows a burst of 20 before returning 429.
func TestRateLimitSessionEndpoint(t *testing.T) {
	baseURL, cleanup := setupContainer(t, nil)
	defer cleanup()

	client := agesdk.NewClient(baseURL)

	var lastErr error
	for i := range 25 {
		_, err := client.CreateSession(t.Context(), agesdk.CreateSessionRequest{OrderNumber: "#1001"})
		if err != nil {
			lastErr = err
			require.GreaterOrEqual(t, i, 20, "should not be rate limited within the burst")
			break
		}
	}

	require.Error(t, lastErr)

	var apiErr *agesdk.APIError
	require.ErrorAs(t, lastErr, &apiErr)
	require.Equal(t, 429, apiErr.StatusCode)
	require.Equal(t, agesdk.ErrorCodeRateLimitExceeded, apiErr.Code)
}

// TestRateLimitOverride checks the RATELIMIT_* environment is honoured.
func TestRateLimitOverride(t *testing.T) {
	baseURL, cleanup := setupContainer(t, map[string]string{
		"RATELIMIT_VERIFY_REQUESTS":   "2",
		"RATELIMIT_VERIFY_WINDOW_SEC": "60",
		"RATELIMIT_VERIFY_BURST":      "2",
	})
	defer cleanup()

	client := agesdk.NewClient(baseURL)
	token := providerToken(t, "uid-limit")

	for range 2 {
		_, err := client.Verify(t.Context(), token)
		require.NoError(t, err)
	}

	_, err := client.Verify(t.Context(), token)

	var apiErr *agesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 429, apiErr.StatusCode)
}
