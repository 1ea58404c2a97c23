package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/domain"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/metrics"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/store"
	"github.com/aussiebroadwan/ageverif/pkg/cryptox"
	"github.com/aussiebroadwan/ageverif/pkg/idx"
	"github.com/aussiebroadwan/ageverif/pkg/shopify"
	"github.com/aussiebroadwan/ageverif/pkg/slogx"
)

// SignatureHeader carries the lowercase hex HMAC-SHA256 of the raw body.
const SignatureHeader = "X-Ageverif-Signature"

// Header spellings tried when headers were not canonicalised.
var signatureHeaderAliases = []string{"X-AgeVerif-Signature", "x-ageverif-signature"}

// WebhookService validates inbound provider webhooks.
//
// With a Secret every payload must be signed. Without one, unsigned payloads
// are accepted unless Production is set, in which case all are rejected.
type WebhookService struct {
	Secret     []byte
	Production bool
	Store      store.Store
	Metrics    *metrics.Metrics
	Clock      Clock
}

// Validate parses body as a JSON object and checks its signature.
func (s *WebhookService) Validate(ctx context.Context, body []byte, headers http.Header) (domain.WebhookEvent, error) {
	l := slogx.FromContext(ctx)

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		l.Info("webhook rejected", "reason", "invalid_json")
		s.Metrics.IncWebhook("invalid_json")
		return domain.WebhookEvent{}, ErrWebhookInvalidJSON
	}

	signed := false
	switch {
	case len(s.Secret) > 0:
		sig := signatureFrom(headers)
		if sig == "" {
			l.Warn("webhook rejected", "reason", "missing_signature")
			s.Metrics.IncWebhook("missing_signature")
			return domain.WebhookEvent{}, ErrWebhookSignatureMissing
		}
		if !cryptox.VerifyHMACSHA256Hex(s.Secret, body, sig) {
			l.Warn("webhook rejected", "reason", "bad_signature")
			s.Metrics.IncWebhook("bad_signature")
			return domain.WebhookEvent{}, ErrWebhookSignatureInvalid
		}
		signed = true
	case s.Production:
		l.Error("webhook rejected: no secret configured in production")
		s.Metrics.IncWebhook("unsigned_rejected")
		return domain.WebhookEvent{}, ErrWebhookNotConfigured
	default:
		l.Warn("webhook accepted without signature: no secret configured")
	}

	event := domain.WebhookEvent{Signed: signed, Payload: payload}
	event.ID = firstString(event, "id", "event_id")
	event.Type = firstString(event, "type", "event")

	s.Metrics.IncWebhook("accepted")
	s.record(ctx, event)
	l.Info("webhook accepted", "event_id", event.ID, "event_type", event.Type, "signed", signed)
	return event, nil
}

func signatureFrom(headers http.Header) string {
	if sig := headers.Get(SignatureHeader); sig != "" {
		return sig
	}
	for _, k := range signatureHeaderAliases {
		if v := headers[k]; len(v) > 0 && v[0] != "" {
			return v[0]
		}
	}
	return ""
}

func firstString(e domain.WebhookEvent, keys ...string) string {
	for _, k := range keys {
		if v := e.String(k); v != "" {
			return v
		}
	}
	return ""
}

func (s *WebhookService) record(ctx context.Context, e domain.WebhookEvent) {
	if s.Store == nil {
		return
	}

	attempt := domain.Attempt{
		ID:          idx.New().String(),
		CustomerGID: shopify.CustomerGID(firstString(e, "customerGid", "customer_gid", "customerId")),
		OrderNumber: firstString(e, "orderNumber", "order_number"),
		UID:         firstString(e, "uid", "jti"),
		Outcome:     domain.OutcomeAccepted,
		Source:      domain.SourceWebhook,
		CreatedAt:   s.Clock.now(),
	}
	if err := s.Store.Attempts().RecordAttempt(ctx, attempt); err != nil {
		slogx.FromContext(ctx).Error("failed to record webhook attempt", "error", err)
	}
}
