package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/domain"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/service"
	"github.com/aussiebroadwan/ageverif/pkg/agesdk"
	"github.com/aussiebroadwan/ageverif/pkg/httpx"
	"github.com/aussiebroadwan/ageverif/pkg/shopify"
	"github.com/aussiebroadwan/ageverif/pkg/slogx"
)

// Ledger page sizes.
const (
	defaultAttemptsLimit = 50
	maxAttemptsLimit     = 500
)

// Source recorded on manual evidence when the caller gives none.
const manualEvidenceSource = "admin"

type EvidencePersistHandler struct {
	TokenService    *service.TokenService
	EvidenceService *service.EvidenceService
}

// ServeHTTP godoc
//
//	@Summary		Persist Verification Evidence
//	@Description	Verify the assurance token, resolve the customer and store the evidence on the customer record.
//	@Description	Evidence is written at most once per customer; later calls report existed=true. Resolution and write failures are reported in the result body.
//	@Tags			Evidence
//	@Accept			json
//	@Produce		json
//	@Param			request	body		agesdk.PersistEvidenceRequest	true	"Customer reference and token"
//	@Success		200		{object}	agesdk.PersistResult			"created, existed, target, outcome"
//	@Failure		400		{object}	agesdk.ErrorResponse			"error, error_description"
//	@Failure		422		{object}	agesdk.ErrorResponse			"error, error_description"
//	@Failure		429		{object}	agesdk.ErrorResponse			"error, error_description"
//	@Router			/v1/evidence [post].
func (h *EvidencePersistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req agesdk.PersistEvidenceRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		agesdk.ErrInvalidRequest.WithDescription("invalid json body").WriteError(w)
		return
	}

	token := strings.TrimSpace(req.Token)
	if token == "" {
		agesdk.ErrInvalidRequest.WithDescription("token is required").WriteError(w)
		return
	}

	vt, err := h.TokenService.Verify(ctx, token)
	if err != nil {
		slogx.FromContext(ctx).Info("evidence rejected: token did not verify")
		agesdk.ErrTokenRejected.WriteError(w)
		return
	}

	result := h.EvidenceService.Persist(ctx, service.PersistRequest{
		CustomerGID:        req.CustomerGID,
		CustomerID:         req.CustomerID,
		OrderNumber:        req.OrderNumber,
		ConfirmationCode:   req.ConfirmationCode,
		Email:              req.Email,
		Postcode:           req.Postcode,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		SessionID:          req.SessionID,
		Token:              token,
		Verification:       vt,
		VerificationMethod: domain.MethodAgeVerif,
		VerificationLogs:   req.VerificationLogs,
		Source:             req.Source,
	})

	httpx.WriteJSON(w, http.StatusOK, toPersistResult(result))
}

type ManualEvidenceHandler struct {
	EvidenceService *service.EvidenceService
}

// ServeHTTP godoc
//
//	@Summary		Record Manual Evidence
//	@Description	Store the outcome of a manual age review on a customer. Existing evidence is never overwritten.
//	@Tags			Evidence
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Customer numeric id or gid"
//	@Param			request	body		agesdk.ManualEvidenceRequest	true	"Review outcome"
//	@Success		200		{object}	agesdk.PersistResult			"created, existed, target, outcome"
//	@Failure		400		{object}	agesdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	agesdk.ErrorResponse			"error, error_description"
//	@Security		AdminAuth
//	@Router			/v1/customers/{id}/evidence [post].
func (h *ManualEvidenceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gid := shopify.CustomerGID(r.PathValue("id"))
	if gid == "" {
		agesdk.ErrInvalidCustomer.WriteError(w)
		return
	}

	var req agesdk.ManualEvidenceRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		agesdk.ErrInvalidRequest.WithDescription("invalid json body").WriteError(w)
		return
	}

	source := req.Source
	if source == "" {
		source = manualEvidenceSource
	}

	result := h.EvidenceService.Persist(r.Context(), service.PersistRequest{
		CustomerGID:        gid,
		OrderNumber:        req.OrderNumber,
		Verification:       domain.VerificationToken{Verified: req.Verified},
		VerificationMethod: domain.MethodManual,
		VerificationLogs:   req.VerificationLogs,
		Outcome:            req.Outcome,
		Source:             source,
	})

	httpx.WriteJSON(w, http.StatusOK, toPersistResult(result))
}

type CustomerEvidenceHandler struct {
	EvidenceService *service.EvidenceService
}

// ServeHTTP godoc
//
//	@Summary		Get Customer Evidence
//	@Description	Return the verification evidence stored on a customer.
//	@Tags			Evidence
//	@Produce		json
//	@Param			id	path		string					true	"Customer numeric id or gid"
//	@Success		200	{object}	agesdk.Evidence			"evidence"
//	@Failure		400	{object}	agesdk.ErrorResponse	"error, error_description"
//	@Failure		401	{object}	agesdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	agesdk.ErrorResponse	"error, error_description"
//	@Failure		502	{object}	agesdk.ErrorResponse	"error, error_description"
//	@Failure		503	{object}	agesdk.ErrorResponse	"error, error_description"
//	@Security		AdminAuth
//	@Router			/v1/customers/{id}/evidence [get].
func (h *CustomerEvidenceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ev, err := h.EvidenceService.GetCustomerEvidence(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toEvidence(ev))
}

type AttemptsHandler struct {
	EvidenceService *service.EvidenceService
}

// ServeHTTP godoc
//
//	@Summary		List Verification Attempts
//	@Description	Return the local audit ledger for a customer, newest first. Raw tokens are never returned.
//	@Tags			Evidence
//	@Produce		json
//	@Param			id		path		string					true	"Customer numeric id or gid"
//	@Param			limit	query		int						false	"Maximum rows (default 50, max 500)"
//	@Success		200		{object}	agesdk.AttemptsResponse	"attempts"
//	@Failure		400		{object}	agesdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	agesdk.ErrorResponse	"error, error_description"
//	@Security		AdminAuth
//	@Router			/v1/customers/{id}/attempts [get].
func (h *AttemptsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit := defaultAttemptsLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			agesdk.ErrInvalidRequest.WithDescription("limit must be a positive integer").WriteError(w)
			return
		}
		limit = min(n, maxAttemptsLimit)
	}

	attempts, err := h.EvidenceService.ListAttempts(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := agesdk.AttemptsResponse{Attempts: make([]agesdk.Attempt, 0, len(attempts))}
	for _, a := range attempts {
		out.Attempts = append(out.Attempts, toAttempt(a))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

type AttemptTokenHandler struct {
	EvidenceService *service.EvidenceService
}

// ServeHTTP godoc
//
//	@Summary		Reveal Attempt Token
//	@Description	Open the sealed assurance token retained on one ledger row of a customer.
//	@Tags			Evidence
//	@Produce		json
//	@Param			id			path		string						true	"Customer numeric id or gid"
//	@Param			attemptId	path		string						true	"Ledger row id (ULID)"
//	@Success		200			{object}	agesdk.AttemptTokenResponse	"attemptId, token"
//	@Failure		400			{object}	agesdk.ErrorResponse		"error, error_description"
//	@Failure		401			{object}	agesdk.ErrorResponse		"error, error_description"
//	@Failure		404			{object}	agesdk.ErrorResponse		"error, error_description"
//	@Security		AdminAuth
//	@Router			/v1/customers/{id}/attempts/{attemptId}/token [get].
func (h *AttemptTokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	attemptID := r.PathValue("attemptId")

	token, err := h.EvidenceService.RevealAttemptToken(r.Context(), r.PathValue("id"), attemptID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, agesdk.AttemptTokenResponse{AttemptID: attemptID, Token: token})
}
