package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/service"
	"github.com/aussiebroadwan/ageverif/pkg/agesdk"
	"github.com/aussiebroadwan/ageverif/pkg/httpx"
)

type SessionCreateHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Create Verification Session
//	@Description	Start an age verification session. The body is optional; order number, postcode and surname given here are used later to find the customer.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		agesdk.CreateSessionRequest		false	"Session details"
//	@Success		201		{object}	agesdk.CreateSessionResponse	"sessionId, expiresAt"
//	@Failure		400		{object}	agesdk.ErrorResponse			"error, error_description"
//	@Failure		429		{object}	agesdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	agesdk.ErrorResponse			"error, error_description"
//	@Router			/v1/sessions [post].
func (h *SessionCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := httpx.ReadBody(w, r)
	if err != nil {
		agesdk.ErrInvalidRequest.WithDescription("request body too large").WriteError(w)
		return
	}

	var req agesdk.CreateSessionRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			agesdk.ErrInvalidRequest.WithDescription("invalid json body").WriteError(w)
			return
		}
	}

	sess, err := h.SessionService.Create(r.Context(), service.CreateSessionRequest{
		Surname:     req.Surname,
		OrderNumber: req.OrderNumber,
		Postcode:    req.Postcode,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, agesdk.CreateSessionResponse{
		SessionID: sess.ID,
		ExpiresAt: sess.ExpiresAt,
	})
}

type SessionGetHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Get Verification Session
//	@Description	Return a stored session. Unknown, expired and malformed ids are all reported as not found.
//	@Tags			Sessions
//	@Produce		json
//	@Param			id	path		string					true	"Session id (32 lowercase hex characters)"
//	@Success		200	{object}	agesdk.SessionResponse	"session"
//	@Failure		401	{object}	agesdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	agesdk.ErrorResponse	"error, error_description"
//	@Security		AdminAuth
//	@Router			/v1/sessions/{id} [get].
func (h *SessionGetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, err := h.SessionService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSessionResponse(sess))
}
