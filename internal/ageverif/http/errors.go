package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/service"
	"github.com/aussiebroadwan/ageverif/pkg/agesdk"
)

// writeServiceError maps service sentinels onto API errors. Order lookup
// misses, including upstream failures, are all reported as not found.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotConfigured):
		agesdk.ErrNotConfigured.WriteError(w)
	case service.IsLookupMiss(err) && !errors.Is(err, service.ErrUpstream):
		agesdk.ErrNotFound.WithDescription("order not found").WriteError(w)
	case errors.Is(err, service.ErrSessionNotFound):
		agesdk.ErrNotFound.WithDescription("session not found").WriteError(w)
	case errors.Is(err, service.ErrEvidenceNotFound):
		agesdk.ErrNotFound.WithDescription("verification evidence not found").WriteError(w)
	case errors.Is(err, service.ErrAttemptNotFound):
		agesdk.ErrNotFound.WithDescription("verification attempt not found").WriteError(w)
	case errors.Is(err, service.ErrTokenNotRetained):
		agesdk.ErrNotFound.WithDescription("attempt has no retained token").WriteError(w)
	case errors.Is(err, service.ErrInvalidAttemptID):
		agesdk.ErrInvalidRequest.WithDescription("attempt id must be a ulid").WriteError(w)
	case errors.Is(err, service.ErrInvalidCustomer):
		agesdk.ErrInvalidCustomer.WriteError(w)
	case errors.Is(err, service.ErrUpstream):
		agesdk.ErrUpstream.WriteError(w)
	case errors.Is(err, service.ErrWebhookInvalidJSON):
		agesdk.ErrWebhookInvalidJSON.WriteError(w)
	case errors.Is(err, service.ErrWebhookSignatureMissing):
		agesdk.ErrWebhookMissingSignature.WriteError(w)
	case errors.Is(err, service.ErrWebhookSignatureInvalid):
		agesdk.ErrWebhookInvalidSignature.WriteError(w)
	case errors.Is(err, service.ErrWebhookNotConfigured):
		agesdk.ErrWebhookNotConfigured.WriteError(w)
	default:
		agesdk.ErrServerError.WriteError(w)
	}
}

// writeLookupError is writeServiceError for order lookups, where upstream
// failures must look like a miss.
func writeLookupError(w http.ResponseWriter, err error) {
	if !errors.Is(err, service.ErrNotConfigured) && service.IsLookupMiss(err) {
		agesdk.ErrNotFound.WithDescription("order not found").WriteError(w)
		return
	}
	writeServiceError(w, err)
}
