package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/domain"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/metrics"
	"github.com/aussiebroadwan/ageverif/pkg/shopify"
	"github.com/aussiebroadwan/ageverif/pkg/slogx"
)

// Candidate orders fetched for an email lookup.
const emailLookupLimit = 10

// Lookup methods reported to metrics.
const (
	lookupByName          = "name"
	lookupByEmailPostcode = "email_postcode"
)

// OrderService finds the order a verification belongs to. Upstream failures
// are returned as ErrUpstream and never retried.
type OrderService struct {
	Commerce Commerce
	Metrics  *metrics.Metrics
}

// FindOrderByName looks up an order by its name ("#1001"; the "#" is added
// when missing). A non-empty confirmationCode must equal the order's
// custom.confirmation_code metafield exactly.
func (s *OrderService) FindOrderByName(ctx context.Context, orderNumber, confirmationCode string) (shopify.Order, error) {
	l := slogx.FromContext(ctx)

	if !s.Commerce.Configured() {
		l.Warn("order lookup skipped: admin api not configured")
		return shopify.Order{}, ErrNotConfigured
	}

	name := domain.NormalizeOrderName(orderNumber)
	if name == "" {
		s.Metrics.IncOrderLookup(lookupByName, "not_found")
		return shopify.Order{}, ErrOrderNotFound
	}

	orders, err := s.Commerce.FindOrders(ctx, shopify.SearchTerm("name", name), 1)
	if err != nil {
		l.Error("order lookup by name failed", "error", err)
		s.Metrics.IncOrderLookup(lookupByName, "error")
		return shopify.Order{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	if len(orders) == 0 || !strings.EqualFold(orders[0].Name, name) {
		s.Metrics.IncOrderLookup(lookupByName, "not_found")
		return shopify.Order{}, ErrOrderNotFound
	}

	order := orders[0]
	if confirmationCode != "" && order.ConfirmationCode != confirmationCode {
		l.Info("order confirmation code mismatch", "order", order.Name)
		s.Metrics.IncOrderLookup(lookupByName, "mismatch")
		return shopify.Order{}, ErrConfirmationMismatch
	}

	s.Metrics.IncOrderLookup(lookupByName, "found")
	return order, nil
}

// FindOrderByEmailAndPostcode returns the newest of the customer's recent
// orders whose shipping or billing postcode matches after normalisation.
func (s *OrderService) FindOrderByEmailAndPostcode(ctx context.Context, email, postcode string) (shopify.Order, error) {
	l := slogx.FromContext(ctx)

	if !s.Commerce.Configured() {
		l.Warn("order lookup skipped: admin api not configured")
		return shopify.Order{}, ErrNotConfigured
	}

	email = strings.TrimSpace(email)
	if email == "" || domain.NormalizePostcode(postcode) == "" {
		s.Metrics.IncOrderLookup(lookupByEmailPostcode, "not_found")
		return shopify.Order{}, ErrOrderNotFound
	}

	orders, err := s.Commerce.FindOrders(ctx, shopify.SearchTerm("email", email), emailLookupLimit)
	if err != nil {
		l.Error("order lookup by email failed", "error", err)
		s.Metrics.IncOrderLookup(lookupByEmailPostcode, "error")
		return shopify.Order{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	for _, o := range orders {
		if addressMatches(o.ShippingAddress, postcode) || addressMatches(o.BillingAddress, postcode) {
			s.Metrics.IncOrderLookup(lookupByEmailPostcode, "found")
			return o, nil
		}
	}

	s.Metrics.IncOrderLookup(lookupByEmailPostcode, "not_found")
	return shopify.Order{}, ErrOrderNotFound
}

func addressMatches(a *shopify.Address, postcode string) bool {
	return a != nil && domain.PostcodesMatch(a.Zip, postcode)
}

// IsLookupMiss reports whether err means "no such order" from the caller's
// point of view, as opposed to a configuration problem.
func IsLookupMiss(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrConfirmationMismatch) ||
		errors.Is(err, ErrUpstream)
}
