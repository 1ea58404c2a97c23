package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/service"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/store"
	"github.com/aussiebroadwan/ageverif/pkg/agesdk"
	"github.com/aussiebroadwan/ageverif/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Only an unreachable store makes the service unready; missing Admin API credentials are reported but tolerated
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	agesdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	agesdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	commerce service.Commerce,
	tokens *service.TokenService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &agesdk.HealthChecks{
			Store:                 "ok",
			AdminAPI:              "ok",
			SignatureVerification: "enabled",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Store = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if commerce == nil || !commerce.Configured() {
			checks.AdminAPI = "not_configured"
		}

		if tokens == nil || !tokens.VerificationEnabled() {
			checks.SignatureVerification = "disabled"
		}

		response := agesdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
