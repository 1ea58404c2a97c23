package ageverif_test

import (
	"testing"

	"github.com/aussiebroadwan/ageverif/pkg/agesdk"
	"github.com/stretchr/testify/require"
)

func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupContainer(t, relaxedLimits())
	defer cleanup()

	health, err := agesdk.NewClient(baseURL).GetLiveness(t.Context())
	assertHealthy(t, health, err)
}

// TestReadyzWithoutAdminAPI checks the service starts and reports ready
// when no store credentials are configured.
func TestReadyzWithoutAdminAPI(t *testing.T) {
	baseURL, cleanup := setupContainer(t, relaxedLimits())
	defer cleanup()

	health, err := agesdk.NewClient(baseURL).GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Store)
	require.Equal(t, "not_configured", health.Checks.AdminAPI)
	require.Equal(t, "disabled", health.Checks.SignatureVerification)
}
