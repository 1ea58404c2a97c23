package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/ageverif/pkg/agesdk"
	"github.com/aussiebroadwan/ageverif/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 while the process is serving. It checks no dependencies; see /readyz for that.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	agesdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.NoCache(w)
		httpx.WriteJSON(w, http.StatusOK, agesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).Truncate(time.Second).String(),
			Version: version,
		})
	}
}
