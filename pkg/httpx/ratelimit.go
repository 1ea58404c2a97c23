package httpx

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/ageverif/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines a token bucket: RequestsPerWindow refill over
// Window, with up to Burst requests available at once.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// Default profiles for the age verification routes.
var (
	// DefaultLookupLimit guards order lookups, which take a confirmation code
	// or a postcode and are the obvious enumeration target.
	DefaultLookupLimit = RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 5}

	// DefaultSessionLimit guards session creation and reads.
	DefaultSessionLimit = RateLimitConfig{RequestsPerWindow: 60, Window: time.Minute, Burst: 20}

	// DefaultVerifyLimit guards token verification and evidence persistence.
	DefaultVerifyLimit = RateLimitConfig{RequestsPerWindow: 30, Window: time.Minute, Burst: 10}

	// DefaultWebhookLimit is generous; the provider retries in bursts.
	DefaultWebhookLimit = RateLimitConfig{RequestsPerWindow: 600, Window: time.Minute, Burst: 100}
)

// RateLimits is the set of profiles a router applies.
type RateLimits struct {
	Lookup  RateLimitConfig
	Session RateLimitConfig
	Verify  RateLimitConfig
	Webhook RateLimitConfig
}

// DefaultRateLimits returns the default profiles.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Lookup:  DefaultLookupLimit,
		Session: DefaultSessionLimit,
		Verify:  DefaultVerifyLimit,
		Webhook: DefaultWebhookLimit,
	}
}

// ParseRateLimits applies RATELIMIT_{LOOKUP,SESSION,VERIFY,WEBHOOK}_* overrides
// read through get to the default profiles.
func ParseRateLimits(get func(string) string) RateLimits {
	return RateLimits{
		Lookup:  ParseRateLimit(get, "LOOKUP", DefaultLookupLimit),
		Session: ParseRateLimit(get, "SESSION", DefaultSessionLimit),
		Verify:  ParseRateLimit(get, "VERIFY", DefaultVerifyLimit),
		Webhook: ParseRateLimit(get, "WEBHOOK", DefaultWebhookLimit),
	}
}

// ParseRateLimit reads RATELIMIT_{prefix}_{REQUESTS,WINDOW_SEC,BURST} through
// get. Missing, malformed or non-positive values keep the default.
func ParseRateLimit(get func(string) string, prefix string, defaultConfig RateLimitConfig) RateLimitConfig {
	config := defaultConfig

	if n, ok := positiveInt(get("RATELIMIT_" + prefix + "_REQUESTS")); ok {
		config.RequestsPerWindow = n
	}
	if n, ok := positiveInt(get("RATELIMIT_" + prefix + "_WINDOW_SEC")); ok {
		config.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveInt(get("RATELIMIT_" + prefix + "_BURST")); ok {
		config.Burst = n
	}

	return config
}

func positiveInt(val string) (int, bool) {
	if val == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// KeyExtractor groups requests into buckets.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor returns the client IP, preferring the first X-Forwarded-For
// hop, then X-Real-IP, then RemoteAddr.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// PathValueKeyExtractor keys on a route wildcard, e.g. the order name.
func PathValueKeyExtractor(name string) KeyExtractor {
	return func(r *http.Request) string {
		return strings.ToLower(r.PathValue(name))
	}
}

// QueryKeyExtractor keys on a query parameter, e.g. the customer email.
func QueryKeyExtractor(name string) KeyExtractor {
	return func(r *http.Request) string {
		return strings.ToLower(strings.TrimSpace(r.URL.Query().Get(name)))
	}
}

// CompositeKeyExtractor joins the non-empty keys of each extractor with sep.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(extractors))
		for _, extractor := range extractors {
			if key := extractor(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

const limiterSweepInterval = 5 * time.Minute

type rateLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	mu        sync.Mutex
	lastSweep time.Time
}

func (rl *rateLimiter) get(key string) *rate.Limiter {
	if limiter, ok := rl.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}

	actual, _ := rl.limiters.LoadOrStore(key, rate.NewLimiter(rl.rate, rl.burst))
	rl.maybeSweep()
	return actual.(*rate.Limiter)
}

// maybeSweep drops limiters whose bucket has refilled, so one-off keys
// (every distinct postcode someone tries) do not accumulate forever.
func (rl *rateLimiter) maybeSweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if time.Since(rl.lastSweep) < limiterSweepInterval {
		return
	}
	rl.lastSweep = time.Now()

	rl.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(rl.burst) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// RateLimitMiddleware rejects requests with 429 once the bucket for their key
// is empty. Requests with no key pass through.
func RateLimitMiddleware(config RateLimitConfig, keyExtractor KeyExtractor) Middleware {
	rl := &rateLimiter{
		rate:      rate.Limit(float64(config.RequestsPerWindow) / config.Window.Seconds()),
		burst:     config.Burst,
		lastSweep: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			key := keyExtractor(r)
			if key == "" {
				log.Warn("rate limit: no key for request, allowing")
				next.ServeHTTP(w, r)
				return
			}

			limiter := rl.get(key)
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			reservation := limiter.Reserve()
			retryAfter := max(int(reservation.Delay().Seconds()), 1)
			reservation.Cancel()

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerWindow))
			w.Header().Set("X-RateLimit-Window", config.Window.String())

			log.Warn("rate limit exceeded",
				"endpoint", r.URL.Path,
				"retry_after", retryAfter,
			)

			WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
		})
	}
}

// RateLimitByIP limits by client IP.
func RateLimitByIP(config RateLimitConfig) Middleware {
	return RateLimitMiddleware(config, IPKeyExtractor)
}

// RateLimitByIPAndPath limits by client IP plus a route wildcard.
func RateLimitByIPAndPath(config RateLimitConfig, name string) Middleware {
	return RateLimitMiddleware(config, CompositeKeyExtractor(":",
		IPKeyExtractor,
		PathValueKeyExtractor(name),
	))
}

// RateLimitByIPAndQuery limits by client IP plus a query parameter.
func RateLimitByIPAndQuery(config RateLimitConfig, name string) Middleware {
	return RateLimitMiddleware(config, CompositeKeyExtractor(":",
		IPKeyExtractor,
		QueryKeyExtractor(name),
	))
}
