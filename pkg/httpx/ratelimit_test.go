package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/ageverif/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("uses X-Real-IP if X-Forwarded-For absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Real-IP", "203.0.113.2")
		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})

	t.Run("RemoteAddr without port", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.9"
		require.Equal(t, "192.168.1.9", httpx.IPKeyExtractor(req))
	})
}

func TestPathAndQueryKeyExtractors(t *testing.T) {
	mux := http.NewServeMux()
	var pathKey, queryKey string
	mux.HandleFunc("GET /v1/orders/{name}", func(w http.ResponseWriter, r *http.Request) {
		pathKey = httpx.PathValueKeyExtractor("name")(r)
		queryKey = httpx.QueryKeyExtractor("email")(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/orders/ABC1001?email=%20Jo@Example.com%20", nil)
	mux.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, "abc1001", pathKey)
	require.Equal(t, "jo@example.com", queryKey)
}

func TestCompositeKeyExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?email=a@b.c", nil)
	req.RemoteAddr = "192.168.1.1:12345"

	t.Run("combines extractors", func(t *testing.T) {
		extractor := httpx.CompositeKeyExtractor(":", httpx.IPKeyExtractor, httpx.QueryKeyExtractor("email"))
		require.Equal(t, "192.168.1.1:a@b.c", extractor(req))
	})

	t.Run("skips empty keys", func(t *testing.T) {
		extractor := httpx.CompositeKeyExtractor(":", httpx.QueryKeyExtractor("missing"), httpx.IPKeyExtractor)
		require.Equal(t, "192.168.1.1", extractor(req))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	config := httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
	h := httpx.RateLimitByIP(config)(okHandler())

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/verify", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusNoContent, send("10.0.0.1").Code)
	require.Equal(t, http.StatusNoContent, send("10.0.0.1").Code)

	rec := send("10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	require.Contains(t, rec.Body.String(), "rate_limit_exceeded")

	// Buckets are per key.
	require.Equal(t, http.StatusNoContent, send("10.0.0.2").Code)
}

func TestRateLimitMiddlewareAllowsEmptyKey(t *testing.T) {
	config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
	h := httpx.RateLimitMiddleware(config, func(*http.Request) string { return "" })(okHandler())

	for range 5 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestParseRateLimit(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 5}

	t.Run("defaults when unset", func(t *testing.T) {
		get := func(string) string { return "" }
		require.Equal(t, def, httpx.ParseRateLimit(get, "UNSET_PROFILE", def))
	})

	t.Run("overrides", func(t *testing.T) {
		env := map[string]string{
			"RATELIMIT_TESTP_REQUESTS":   "99",
			"RATELIMIT_TESTP_WINDOW_SEC": "30",
			"RATELIMIT_TESTP_BURST":      "7",
		}
		got := httpx.ParseRateLimit(func(k string) string { return env[k] }, "TESTP", def)
		require.Equal(t, httpx.RateLimitConfig{RequestsPerWindow: 99, Window: 30 * time.Second, Burst: 7}, got)
	})

	t.Run("ignores invalid values", func(t *testing.T) {
		env := map[string]string{
			"RATELIMIT_BADP_REQUESTS":   "lots",
			"RATELIMIT_BADP_WINDOW_SEC": "-1",
			"RATELIMIT_BADP_BURST":      "0",
		}
		require.Equal(t, def, httpx.ParseRateLimit(func(k string) string { return env[k] }, "BADP", def))
	})
}

func TestParseRateLimitsProfiles(t *testing.T) {
	env := map[string]string{"RATELIMIT_VERIFY_BURST": "2"}
	got := httpx.ParseRateLimits(func(k string) string { return env[k] })

	require.Equal(t, 2, got.Verify.Burst)
	require.Equal(t, httpx.DefaultVerifyLimit.RequestsPerWindow, got.Verify.RequestsPerWindow)
	require.Equal(t, httpx.DefaultLookupLimit, got.Lookup)
	require.Equal(t, httpx.DefaultRateLimits().Webhook, got.Webhook)
}
