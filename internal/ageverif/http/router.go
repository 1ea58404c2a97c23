package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/service"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/store"
	"github.com/aussiebroadwan/ageverif/pkg/httpx"
	"github.com/aussiebroadwan/ageverif/pkg/slogx"

	_ "github.com/aussiebroadwan/ageverif/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:generate swag init -g router.go -d ./,../../../pkg/agesdk -o ../../../api --outputTypes go

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	adminToken   string
	gatherer     prometheus.Gatherer

	// Limits are the rate-limit profiles ApplyRoutes attaches.
	Limits httpx.RateLimits

	store           store.Store
	SessionService  *service.SessionService
	TokenService    *service.TokenService
	OrderService    *service.OrderService
	EvidenceService *service.EvidenceService
	WebhookService  *service.WebhookService
}

// NewRouter creates a router. An empty adminToken leaves the admin lookup
// routes unregistered. A nil gatherer leaves /metrics unregistered.
func NewRouter(
	buildVersion, adminToken string,
	st store.Store,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		adminToken:   adminToken,
		gatherer:     gatherer,
		store:        st,
		Limits:       httpx.DefaultRateLimits(),
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSessions()
	r.registerVerification()
	r.registerWebhooks()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Age Verification Service API
//	@version		0.1.0
//	@description	Age verification for the storefront: verification sessions, assurance token checks,
//	@description	provider webhooks and durable evidence on Shopify customer records.
//	@description
//	@description				Evidence is written at most once per customer and is never overwritten.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/ageverif
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	AdminAuth
//	@in							header
//	@name						Authorization
//	@description				Admin token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSessions() {
	h := &SessionCreateHandler{SessionService: r.SessionService}

	// Called once per checkout visit
	r.Mux.Handle("POST /v1/sessions",
		httpx.Chain(h,
			httpx.RateLimitByIP(r.Limits.Session),
		),
	)
}

func (r *Router) registerVerification() {
	verifyHandler := &VerifyHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /v1/verify",
		httpx.Chain(verifyHandler,
			httpx.RateLimitByIP(r.Limits.Verify),
		),
	)

	persistHandler := &EvidencePersistHandler{
		TokenService:    r.TokenService,
		EvidenceService: r.EvidenceService,
	}
	r.Mux.Handle("POST /v1/evidence",
		httpx.Chain(persistHandler,
			httpx.RateLimitByIP(r.Limits.Verify),
		),
	)
}

func (r *Router) registerWebhooks() {
	h := &WebhookHandler{WebhookService: r.WebhookService}

	// Provider egress shares a handful of IPs
	r.Mux.Handle("POST /v1/webhooks/ageverif",
		httpx.Chain(h,
			httpx.RateLimitByIP(r.Limits.Webhook),
		),
	)
}

func (r *Router) registerAdmin() {
	if r.adminToken == "" {
		r.logger.Warn("admin token not configured, lookup endpoints disabled")
		return
	}

	// The limiter runs before the token check so failed guesses are throttled too.
	admin := func(h http.Handler, limit httpx.Middleware) http.Handler {
		return httpx.Chain(h, limit, httpx.RequireBearerToken(r.adminToken))
	}

	r.Mux.Handle("GET /v1/sessions/{id}",
		admin(&SessionGetHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(r.Limits.Lookup)),
	)

	r.Mux.Handle("GET /v1/orders/{name}",
		admin(&OrderByNameHandler{OrderService: r.OrderService},
			httpx.RateLimitByIPAndPath(r.Limits.Lookup, "name")),
	)
	r.Mux.Handle("GET /v1/orders",
		admin(&OrderSearchHandler{OrderService: r.OrderService},
			httpx.RateLimitByIPAndQuery(r.Limits.Lookup, "email")),
	)

	r.Mux.Handle("GET /v1/customers/{id}/evidence",
		admin(&CustomerEvidenceHandler{EvidenceService: r.EvidenceService},
			httpx.RateLimitByIPAndPath(r.Limits.Lookup, "id")),
	)
	r.Mux.Handle("POST /v1/customers/{id}/evidence",
		admin(&ManualEvidenceHandler{EvidenceService: r.EvidenceService},
			httpx.RateLimitByIPAndPath(r.Limits.Lookup, "id")),
	)
	r.Mux.Handle("GET /v1/customers/{id}/attempts",
		admin(&AttemptsHandler{EvidenceService: r.EvidenceService},
			httpx.RateLimitByIPAndPath(r.Limits.Lookup, "id")),
	)
	r.Mux.Handle("GET /v1/customers/{id}/attempts/{attemptId}/token",
		admin(&AttemptTokenHandler{EvidenceService: r.EvidenceService},
			httpx.RateLimitByIPAndPath(r.Limits.Lookup, "id")),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(
		r.startTime,
		r.buildVersion,
		r.store,
		r.EvidenceService.Commerce,
		r.TokenService,
	))

	if r.gatherer != nil {
		r.Mux.Handle("GET /metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))
	}
}
