package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/domain"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/metrics"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/store"
	"github.com/aussiebroadwan/ageverif/pkg/cryptox"
	"github.com/aussiebroadwan/ageverif/pkg/idx"
	"github.com/aussiebroadwan/ageverif/pkg/shopify"
	"github.com/aussiebroadwan/ageverif/pkg/slogx"
)

// Defaults for EvidenceService fields left empty.
const (
	DefaultMetafieldNamespace = "ageverif"
	DefaultMetafieldKey       = "verification"
	DefaultVerifiedTag        = "age_verified"
	DefaultEvidenceSource     = "api"
)

// PersistErrReadFailed is reported when the existing-evidence check itself
// fails; nothing is written in that case.
const PersistErrReadFailed = "metafield_read_failed"

// PersistRequest identifies a customer (any of the ways below, tried in
// order) and carries the verification to record.
type PersistRequest struct {
	CustomerGID      string
	CustomerID       string
	OrderNumber      string
	ConfirmationCode string
	Email            string
	Postcode         string
	FirstName        string
	LastName         string

	// SessionID fills OrderNumber, Postcode and LastName from a stored
	// session when they are empty.
	SessionID string

	Token              string
	Verification       domain.VerificationToken
	VerificationMethod string
	VerificationLogs   []string
	Outcome            string
	Source             string
}

// EvidenceService writes verification evidence onto customer records at most
// once per customer and reads it back.
type EvidenceService struct {
	Commerce Commerce
	Orders   *OrderService
	Sessions *SessionService
	Store    store.Store
	Sealer   *cryptox.Sealer
	Metrics  *metrics.Metrics
	Clock    Clock

	Namespace       string
	Key             string
	VerifiedTag     string
	CreateCustomers bool

	locks keyedMutex
	reads singleflight.Group
}

// evidenceReadTimeout bounds a shared evidence read once it no longer
// follows the cancellation of the caller that started it.
const evidenceReadTimeout = 15 * time.Second

func (s *EvidenceService) namespace() string {
	return orDefault(s.Namespace, DefaultMetafieldNamespace)
}
func (s *EvidenceService) key() string { return orDefault(s.Key, DefaultMetafieldKey) }
func (s *EvidenceService) tag() string { return orDefault(s.VerifiedTag, DefaultVerifiedTag) }

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Persist resolves the customer, then writes evidence unless some already
// exists. Calls for the same customer are serialised within this process.
// Failures are reported in the result, never as an error.
func (s *EvidenceService) Persist(ctx context.Context, req PersistRequest) domain.PersistResult {
	l := slogx.FromContext(ctx)

	s.applySession(ctx, &req)

	result, orderName := s.persist(ctx, req)

	l.Info("verification evidence persist finished",
		"outcome", result.Outcome,
		"target", result.Target,
		"customer_gid", result.CustomerGID,
		"error_code", result.Error,
		"saved", result.Saved(),
	)
	s.Metrics.IncPersistOutcome(string(result.Outcome))
	s.recordAttempt(ctx, req, result, orderName)
	return result
}

func (s *EvidenceService) persist(ctx context.Context, req PersistRequest) (domain.PersistResult, string) {
	l := slogx.FromContext(ctx)

	if !s.Commerce.Configured() {
		l.Warn("evidence not persisted: admin api not configured")
		return domain.PersistResult{
			Target:  domain.TargetNone,
			Error:   domain.PersistErrNotConfigured,
			Outcome: domain.OutcomeNotConfigured,
		}, req.OrderNumber
	}

	gid, orderName := s.resolveCustomer(ctx, req)
	if gid == "" {
		return domain.PersistResult{Target: domain.TargetNone, Outcome: domain.OutcomeNoCustomer}, orderName
	}

	unlock := s.locks.Lock(gid)
	defer unlock()

	ctx = slogx.With(ctx, "customer_gid", gid)
	l = slogx.FromContext(ctx)

	existing, err := s.Commerce.GetCustomerMetafield(ctx, gid, s.namespace(), s.key())
	switch {
	case errors.Is(err, shopify.ErrCustomerNotFound):
		l.Info("resolved customer does not exist")
		return domain.PersistResult{Target: domain.TargetNone, Outcome: domain.OutcomeNoCustomer}, orderName
	case err != nil:
		l.Error("failed to read existing evidence", "error", err)
		return domain.PersistResult{
			Target:      domain.TargetCustomer,
			Error:       PersistErrReadFailed,
			Outcome:     domain.OutcomeWriteFailed,
			CustomerGID: gid,
		}, orderName
	case existing != nil && existing.Value != "":
		return domain.PersistResult{
			Existed:     true,
			Target:      domain.TargetCustomer,
			Outcome:     domain.OutcomeExisted,
			CustomerGID: gid,
		}, orderName
	}

	evidence := s.buildEvidence(req, gid, orderName)
	value, err := json.Marshal(evidence)
	if err != nil {
		l.Error("failed to encode evidence", "error", err)
		return domain.PersistResult{
			Target:      domain.TargetCustomer,
			Error:       domain.PersistErrSetFailed,
			Outcome:     domain.OutcomeWriteFailed,
			CustomerGID: gid,
		}, orderName
	}

	if _, err := s.Commerce.SetMetafield(ctx, shopify.MetafieldInput{
		OwnerID:   gid,
		Namespace: s.namespace(),
		Key:       s.key(),
		Type:      shopify.MetafieldTypeJSON,
		Value:     string(value),
	}); err != nil {
		l.Error("failed to write evidence metafield", "error", err)
		return domain.PersistResult{
			Target:      domain.TargetCustomer,
			Error:       domain.PersistErrSetFailed,
			Outcome:     domain.OutcomeWriteFailed,
			CustomerGID: gid,
		}, orderName
	}

	if evidence.Verified {
		if err := s.Commerce.AddTags(ctx, gid, []string{s.tag()}); err != nil {
			l.Error("evidence saved but tagging failed", "error", err)
			return domain.PersistResult{
				Created:     true,
				Target:      domain.TargetCustomer,
				Error:       domain.PersistErrTagFailed,
				Outcome:     domain.OutcomePartialFailure,
				CustomerGID: gid,
			}, orderName
		}
	}

	return domain.PersistResult{
		Created:     true,
		Target:      domain.TargetCustomer,
		Outcome:     domain.OutcomeCreated,
		CustomerGID: gid,
	}, orderName
}

// resolveCustomer tries, in order: explicit gid, numeric id, order name,
// email and postcode, then (when enabled) an existing or new customer by
// email. It returns "" when nothing resolves.
func (s *EvidenceService) resolveCustomer(ctx context.Context, req PersistRequest) (gid, orderName string) {
	l := slogx.FromContext(ctx)
	orderName = req.OrderNumber

	if gid := shopify.CustomerGID(req.CustomerGID); gid != "" {
		return gid, orderName
	}
	if gid := shopify.CustomerGID(req.CustomerID); gid != "" {
		return gid, orderName
	}

	if s.Orders != nil {
		var (
			order shopify.Order
			err   error = ErrOrderNotFound
		)
		switch {
		case req.OrderNumber != "":
			order, err = s.Orders.FindOrderByName(ctx, req.OrderNumber, req.ConfirmationCode)
		case req.Email != "" && req.Postcode != "":
			order, err = s.Orders.FindOrderByEmailAndPostcode(ctx, req.Email, req.Postcode)
		}
		if err == nil {
			orderName = order.Name
			if gid := order.CustomerGID(); gid != "" {
				return gid, orderName
			}
			l.Info("order has no customer attached", "order", order.Name)
		}
	}

	if !s.CreateCustomers || strings.TrimSpace(req.Email) == "" {
		return "", orderName
	}

	existing, err := s.Commerce.FindCustomersByEmail(ctx, strings.TrimSpace(req.Email), 1)
	if err != nil {
		l.Error("customer lookup by email failed", "error", err)
		return "", orderName
	}
	if len(existing) > 0 && existing[0].ID != "" {
		return existing[0].ID, orderName
	}

	created, err := s.Commerce.CreateCustomer(ctx, shopify.CustomerInput{
		Email:     strings.TrimSpace(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		l.Error("failed to create customer for evidence", "error", err)
		return "", orderName
	}
	l.Info("customer created for verification evidence", "customer_gid", created.ID)
	return created.ID, orderName
}

func (s *EvidenceService) buildEvidence(req PersistRequest, gid, orderName string) domain.VerificationEvidence {
	now := s.Clock.now()
	vt := req.Verification

	logs := req.VerificationLogs
	if logs == nil {
		logs = []string{}
	}

	outcome := req.Outcome
	if outcome == "" {
		outcome = "failed"
		if vt.Verified {
			outcome = "verified"
		}
	}

	return domain.VerificationEvidence{
		Verified:           vt.Verified,
		UID:                vt.UID,
		Token:              req.Token,
		AssuranceLevel:     vt.AssuranceLevel,
		AgeThreshold:       vt.AgeThreshold,
		Country:            vt.Country,
		CountrySubdivision: vt.CountrySubdivision,
		ExpiresIn:          vt.ExpiresIn,
		VerificationMethod: orDefault(req.VerificationMethod, domain.MethodAgeVerif),
		VerificationLogs:   logs,
		Outcome:            outcome,
		Timestamp:          now,
		Source:             orDefault(req.Source, DefaultEvidenceSource),
		OrderNumber:        orderName,
		CustomerGID:        gid,
		RetentionExpiry:    domain.RetentionExpiry(now),
	}
}

func (s *EvidenceService) applySession(ctx context.Context, req *PersistRequest) {
	if req.SessionID == "" || s.Sessions == nil {
		return
	}

	sess, err := s.Sessions.Get(ctx, req.SessionID)
	if err != nil {
		slogx.FromContext(ctx).Info("persist session not found", "error", err)
		return
	}

	if req.OrderNumber == "" {
		req.OrderNumber = sess.OrderNumber
	}
	if req.Postcode == "" {
		req.Postcode = sess.Postcode
	}
	if req.LastName == "" {
		req.LastName = sess.Surname
	}
}

func (s *EvidenceService) recordAttempt(ctx context.Context, req PersistRequest, result domain.PersistResult, orderName string) {
	if s.Store == nil {
		return
	}
	l := slogx.FromContext(ctx)

	attempt := domain.Attempt{
		ID:               idx.New().String(),
		CustomerGID:      result.CustomerGID,
		OrderNumber:      orderName,
		UID:              req.Verification.UID,
		Outcome:          result.Outcome,
		Source:           domain.SourcePersist,
		TokenFingerprint: cryptox.FingerprintToken(req.Token),
		CreatedAt:        s.Clock.now(),
	}

	if req.Token != "" && s.Sealer != nil {
		sealed, err := s.Sealer.Seal([]byte(req.Token))
		if err != nil {
			l.Error("failed to seal token for ledger", "error", err)
		} else {
			attempt.SealedToken = sealed
		}
	}

	if err := s.Store.Attempts().RecordAttempt(ctx, attempt); err != nil {
		l.Error("failed to record verification attempt", "error", err)
	}
}

// GetCustomerEvidence reads the stored evidence for a customer gid or
// numeric id. Concurrent reads for the same customer share one upstream call.
func (s *EvidenceService) GetCustomerEvidence(ctx context.Context, customerRef string) (domain.VerificationEvidence, error) {
	gid := shopify.CustomerGID(customerRef)
	if gid == "" {
		return domain.VerificationEvidence{}, ErrInvalidCustomer
	}
	if !s.Commerce.Configured() {
		slogx.FromContext(ctx).Warn("evidence lookup skipped: admin api not configured")
		return domain.VerificationEvidence{}, ErrNotConfigured
	}

	// The shared read outlives any one caller; each caller still stops
	// waiting when its own context ends.
	ch := s.reads.DoChan(gid, func() (any, error) {
		readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), evidenceReadTimeout)
		defer cancel()

		mf, err := s.Commerce.GetCustomerMetafield(readCtx, gid, s.namespace(), s.key())
		if errors.Is(err, shopify.ErrCustomerNotFound) {
			return nil, ErrEvidenceNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		if mf == nil || mf.Value == "" {
			return nil, ErrEvidenceNotFound
		}

		var ev domain.VerificationEvidence
		if err := json.Unmarshal([]byte(mf.Value), &ev); err != nil {
			return nil, fmt.Errorf("%w: decode evidence: %w", ErrUpstream, err)
		}
		return ev, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return domain.VerificationEvidence{}, ctx.Err()
	}

	v, err := res.Val, res.Err
	if err != nil {
		if !errors.Is(err, ErrEvidenceNotFound) {
			slogx.FromContext(ctx).Error("evidence lookup failed", "customer_gid", gid, "error", err)
		}
		return domain.VerificationEvidence{}, err
	}

	ev := v.(domain.VerificationEvidence)
	ev.VerificationLogs = append([]string(nil), ev.VerificationLogs...)
	return ev, nil
}

// ListAttempts returns the local ledger for a customer, newest first.
func (s *EvidenceService) ListAttempts(ctx context.Context, customerRef string, limit int) ([]domain.Attempt, error) {
	gid := shopify.CustomerGID(customerRef)
	if gid == "" {
		return nil, ErrInvalidCustomer
	}
	if s.Store == nil {
		return nil, nil
	}
	return s.Store.Attempts().ListAttemptsByCustomer(ctx, gid, limit)
}

// RevealAttemptToken opens the sealed token of one ledger row. The row must
// belong to customerRef; a row of another customer is reported as missing.
func (s *EvidenceService) RevealAttemptToken(ctx context.Context, customerRef, attemptID string) (string, error) {
	gid := shopify.CustomerGID(customerRef)
	if gid == "" {
		return "", ErrInvalidCustomer
	}
	id, err := idx.Parse(attemptID)
	if err != nil {
		return "", ErrInvalidAttemptID
	}
	if s.Store == nil {
		return "", ErrAttemptNotFound
	}

	a, err := s.Store.Attempts().GetAttempt(ctx, id.String())
	if errors.Is(err, store.ErrNotFound) || (err == nil && a.CustomerGID != gid) {
		return "", ErrAttemptNotFound
	}
	if err != nil {
		return "", err
	}
	if len(a.SealedToken) == 0 {
		return "", ErrTokenNotRetained
	}

	raw, err := s.OpenSealedToken(a)
	if err != nil {
		return "", err
	}

	slogx.FromContext(ctx).Info("sealed token revealed", "customer_gid", gid, "attempt_id", a.ID)
	return raw, nil
}

// OpenSealedToken recovers the raw token of a ledger row.
func (s *EvidenceService) OpenSealedToken(a domain.Attempt) (string, error) {
	if len(a.SealedToken) == 0 {
		return "", nil
	}
	if s.Sealer == nil {
		return "", errors.New("no sealer configured")
	}
	raw, err := s.Sealer.Open(a.SealedToken)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
