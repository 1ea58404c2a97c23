package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/ageverif/pkg/envx"
	"github.com/aussiebroadwan/ageverif/pkg/httpx"
)

func resolved(kv map[string]string) envx.Resolved {
	return envx.Resolve(kv, envx.Options{
		SkipPlatform: true,
		Environ:      func() []string { return nil },
	})
}

func TestConfigDefaults(t *testing.T) {
	cfg := ConfigFrom(resolved(nil))

	require.Equal(t, "2024-10", cfg.AdminAPIVersion)
	require.Equal(t, "ageverif", cfg.MetafieldNamespace)
	require.Equal(t, "verification", cfg.MetafieldKey)
	require.Equal(t, "age_verified", cfg.VerifiedTag)
	require.False(t, cfg.CreateCustomers)
	require.False(t, cfg.AllowInsecureRNG)
	require.Equal(t, SessionStoreMemory, cfg.SessionStore)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 10000, cfg.SessionCapacity)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 15*time.Minute, cfg.HousekeepingInterval)
	require.Equal(t, httpx.DefaultRateLimits(), cfg.RateLimits)
	require.False(t, cfg.Production())
}

// TestConfigRateLimitsFromResolvedSources checks overrides that never reach
// the process environment, such as dotenv values, still apply.
func TestConfigRateLimitsFromResolvedSources(t *testing.T) {
	cfg := ConfigFrom(resolved(map[string]string{
		"RATELIMIT_LOOKUP_BURST":       "1",
		"RATELIMIT_WEBHOOK_REQUESTS":   "5",
		"RATELIMIT_WEBHOOK_WINDOW_SEC": "10",
	}))

	require.Equal(t, 1, cfg.RateLimits.Lookup.Burst)
	require.Equal(t, httpx.DefaultLookupLimit.RequestsPerWindow, cfg.RateLimits.Lookup.RequestsPerWindow)
	require.Equal(t, 5, cfg.RateLimits.Webhook.RequestsPerWindow)
	require.Equal(t, 10*time.Second, cfg.RateLimits.Webhook.Window)
	require.Equal(t, httpx.DefaultSessionLimit, cfg.RateLimits.Session)
}

func TestConfigAliasesAndParsing(t *testing.T) {
	cfg := ConfigFrom(resolved(map[string]string{
		"PUBLIC_STORE_DOMAIN":        "shop.myshopify.com",
		"SHOPIFY_ADMIN_ACCESS_TOKEN": "shpat_x",
		"AGEVERIF_CREATE_CUSTOMERS":  "true",
		"SESSION_STORE":              "Redis",
		"SESSION_TTL":                "90",
		"PORT":                       "not-a-number",
		"ENV":                        "Production",
	}))

	require.Equal(t, "shop.myshopify.com", cfg.StoreDomain)
	require.Equal(t, "shpat_x", cfg.AdminAPIToken)
	require.True(t, cfg.CreateCustomers)
	require.Equal(t, SessionStoreRedis, cfg.SessionStore)
	require.Equal(t, 90*time.Minute, cfg.SessionTTL)
	require.Equal(t, 8080, cfg.Port)
	require.True(t, cfg.Production())
	require.True(t, cfg.Sources.Provided)
}

func TestConfigPrimaryKeyWinsOverAlias(t *testing.T) {
	cfg := ConfigFrom(resolved(map[string]string{
		"SHOPIFY_STORE_DOMAIN": "primary.myshopify.com",
		"PUBLIC_STORE_DOMAIN":  "alias.myshopify.com",
	}))
	require.Equal(t, "primary.myshopify.com", cfg.StoreDomain)
}

func TestResolveKeyMaterial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key.pem")
	pem := "-----BEGIN PUBLIC KEY-----\nMIIB\n-----END PUBLIC KEY-----"
	require.NoError(t, os.WriteFile(path, []byte(pem+"\n"), 0o600))

	got, err := resolveKeyMaterial(path)
	require.NoError(t, err)
	require.Equal(t, pem, got)

	got, err = resolveKeyMaterial(pem)
	require.NoError(t, err)
	require.Equal(t, pem, got)

	got, err = resolveKeyMaterial("hmac-secret")
	require.NoError(t, err)
	require.Equal(t, "hmac-secret", got)
}
