package http

import (
	"net/http"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/service"
	"github.com/aussiebroadwan/ageverif/pkg/agesdk"
	"github.com/aussiebroadwan/ageverif/pkg/httpx"
)

type WebhookHandler struct {
	WebhookService *service.WebhookService
}

// ServeHTTP godoc
//
//	@Summary		Assurance Provider Webhook
//	@Description	Accept a provider event. When a shared secret is configured the X-Ageverif-Signature header must carry the lowercase hex HMAC-SHA256 of the raw body.
//	@Tags			Webhooks
//	@Accept			json
//	@Produce		json
//	@Param			X-Ageverif-Signature	header		string					false	"hex HMAC-SHA256 of the body"
//	@Success		200						{object}	agesdk.WebhookResponse	"ok, eventId, type, signed"
//	@Failure		400						{object}	agesdk.ErrorResponse	"error, error_description"
//	@Failure		401						{object}	agesdk.ErrorResponse	"error, error_description"
//	@Failure		503						{object}	agesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/webhooks/ageverif [post].
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := httpx.ReadBody(w, r)
	if err != nil {
		agesdk.ErrInvalidRequest.WithDescription("request body too large").WriteError(w)
		return
	}

	event, err := h.WebhookService.Validate(r.Context(), body, r.Header)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, agesdk.WebhookResponse{
		OK:      true,
		EventID: event.ID,
		Type:    event.Type,
		Signed:  event.Signed,
	})
}
