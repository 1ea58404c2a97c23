package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/service"
	"github.com/aussiebroadwan/ageverif/pkg/agesdk"
	"github.com/aussiebroadwan/ageverif/pkg/httpx"
)

type VerifyHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Verify Assurance Token
//	@Description	Decode an assurance token and, in production with a verification key configured, check its RS256 or HS256 signature.
//	@Description	A token that fails any check is answered with verified=false rather than an error.
//	@Tags			Verification
//	@Accept			json
//	@Produce		json
//	@Param			request	body		agesdk.VerifyRequest	true	"Assurance token"
//	@Success		200		{object}	agesdk.VerifyResponse	"decoded claims"
//	@Failure		400		{object}	agesdk.ErrorResponse	"error, error_description"
//	@Failure		429		{object}	agesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/verify [post].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req agesdk.VerifyRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		agesdk.ErrInvalidRequest.WithDescription("invalid json body").WriteError(w)
		return
	}

	token := strings.TrimSpace(req.Token)
	if token == "" {
		httpx.WriteJSON(w, http.StatusOK, agesdk.VerifyResponse{})
		return
	}

	vt, err := h.TokenService.Verify(r.Context(), token)
	if err != nil {
		httpx.WriteJSON(w, http.StatusOK, agesdk.VerifyResponse{})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toVerifyResponse(vt))
}
