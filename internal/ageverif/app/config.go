package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/ageverif/pkg/envx"
	"github.com/aussiebroadwan/ageverif/pkg/httpx"
	"github.com/aussiebroadwan/ageverif/pkg/shopify"
)

// Session store drivers.
const (
	SessionStoreMemory = "memory"
	SessionStoreSQLite = "sqlite"
	SessionStoreRedis  = "redis"
)

type Config struct {
	StoreDomain     string // Optional: Shopify store domain; without it persistence and lookups are disabled
	AdminAPIToken   string // Optional: Admin API access token
	AdminAPIVersion string // Optional: Admin API version (default: 2024-10)

	PublicKey     string // Optional: PEM public key (RS256), HMAC secret (HS256), or a path to either
	WebhookSecret string // Optional: shared secret for webhook signatures

	MetafieldNamespace string // Optional: evidence metafield namespace (default: ageverif)
	MetafieldKey       string // Optional: evidence metafield key (default: verification)
	VerifiedTag        string // Optional: tag added to verified customers (default: age_verified)
	CreateCustomers    bool   // Optional: create a customer when none resolves (default: false)

	AdminToken       string // Optional: bearer token for lookup endpoints; unset disables them
	AllowInsecureRNG bool   // Optional: allow a math/rand fallback for session ids (default: false)

	SessionStore    string        // Optional: memory, sqlite or redis (default: memory)
	SessionTTL      time.Duration // Optional: session lifetime (default: 24h)
	SessionCapacity int           // Optional: max sessions kept by memory and sqlite (default: 10000)
	RedisURL        string        // Required for the redis session store
	RedisNamespace  string        // Optional: redis key prefix (default: ageverif)

	DatabaseFile  string // Optional: SQLite file for the attempts ledger; unset keeps it in memory
	MasterKeyPath string // Optional: file holding the ledger master key
	MasterKey     string // Optional: ledger master key material

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 15m)

	// RateLimits are the route profiles, from RATELIMIT_{LOOKUP,SESSION,VERIFY,WEBHOOK}_*.
	RateLimits httpx.RateLimits

	// Sources records where configuration came from.
	Sources envx.Sources
}

// Production reports whether signatures are enforced and unsigned webhooks
// rejected.
func (c Config) Production() bool {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "prod", "production":
		return true
	}
	return false
}

// LoadConfig resolves configuration from the dotenv file named by
// AGEVERIF_ENV_FILE (default .env), build-time values and the process
// environment.
func LoadConfig() Config {
	return ConfigFrom(envx.Resolve(nil, envx.Options{
		PlatformFile: os.Getenv("AGEVERIF_ENV_FILE"),
	}))
}

// ConfigFrom builds a Config from already resolved values.
func ConfigFrom(r envx.Resolved) Config {
	cfg := Config{
		StoreDomain:     r.First("SHOPIFY_STORE_DOMAIN", "PUBLIC_STORE_DOMAIN"),
		AdminAPIToken:   r.First("SHOPIFY_ADMIN_API_TOKEN", "SHOPIFY_ADMIN_ACCESS_TOKEN"),
		AdminAPIVersion: getOrDefault(r, "SHOPIFY_ADMIN_API_VERSION", shopify.DefaultAPIVersion),

		PublicKey:     r.Get("AGEVERIF_PUBLIC_KEY"),
		WebhookSecret: r.Get("AGEVERIF_WEBHOOK_SECRET"),

		MetafieldNamespace: getOrDefault(r, "AGEVERIF_METAFIELD_NAMESPACE", "ageverif"),
		MetafieldKey:       getOrDefault(r, "AGEVERIF_METAFIELD_KEY", "verification"),
		VerifiedTag:        getOrDefault(r, "AGEVERIF_VERIFIED_TAG", "age_verified"),
		CreateCustomers:    getBoolOrDefault(r, "AGEVERIF_CREATE_CUSTOMERS", false),

		AdminToken:       r.Get("AGEVERIF_ADMIN_TOKEN"),
		AllowInsecureRNG: getBoolOrDefault(r, "ALLOW_INSECURE_RNG", false),

		SessionStore:    strings.ToLower(getOrDefault(r, "SESSION_STORE", SessionStoreMemory)),
		SessionTTL:      getDurationOrDefault(r, "SESSION_TTL", 24*time.Hour),
		SessionCapacity: getIntOrDefault(r, "SESSION_CAPACITY", 10000),
		RedisURL:        r.Get("REDIS_URL"),
		RedisNamespace:  getOrDefault(r, "REDIS_NAMESPACE", "ageverif"),

		DatabaseFile:  r.Get("DATABASE_FILE"),
		MasterKeyPath: r.Get("MASTER_KEY_PATH"),
		MasterKey:     r.Get("AGEVERIF_MASTER_KEY"),

		Env:                  getOrDefault(r, "ENV", "dev"),
		LogLevel:             getOrDefault(r, "LOG_LEVEL", "info"),
		LogFormat:            getOrDefault(r, "LOG_FORMAT", "json"),
		Port:                 getIntOrDefault(r, "PORT", 8080),
		ShutdownGracePeriod:  getDurationOrDefault(r, "SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getDurationOrDefault(r, "HOUSEKEEPING_INTERVAL", 15*time.Minute),

		RateLimits: httpx.ParseRateLimits(r.Get),

		Sources: r.Sources,
	}

	return cfg
}

func getOrDefault(r envx.Resolved, key, defaultValue string) string {
	if value := strings.TrimSpace(r.Get(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(r envx.Resolved, key string, defaultValue int) int {
	value := strings.TrimSpace(r.Get(key))
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getBoolOrDefault(r envx.Resolved, key string, defaultValue bool) bool {
	value := strings.TrimSpace(r.Get(key))
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getDurationOrDefault(r envx.Resolved, key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(r.Get(key))
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
