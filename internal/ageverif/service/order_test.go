package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/ageverif/pkg/shopify"
)

func orderFixture() *fakeCommerce {
	f := newFakeCommerce()
	f.orders = []shopify.Order{
		{
			ID:               "gid://shopify/Order/1",
			Name:             "#1001",
			Email:            "jo@example.com",
			ConfirmationCode: "ULETWJUNV",
			Customer:         &shopify.Customer{ID: "gid://shopify/Customer/7"},
			ShippingAddress:  &shopify.Address{Zip: "ab123cd"},
		},
		{
			ID:             "gid://shopify/Order/2",
			Name:           "#1002",
			Email:          "sam@example.com",
			BillingAddress: &shopify.Address{Zip: "M1 1AE"},
		},
	}
	return f
}

func TestFindOrderByNameConfirmationCode(t *testing.T) {
	ctx := context.Background()
	f := orderFixture()
	s := &OrderService{Commerce: f}

	order, err := s.FindOrderByName(ctx, "#1001", "ULETWJUNV")
	require.NoError(t, err)
	require.Equal(t, "gid://shopify/Order/1", order.ID)
	require.Equal(t, "name:#1001", f.lastQuery)
	require.Equal(t, 1, f.lastFirst)

	_, err = s.FindOrderByName(ctx, "#1001", "WRONG")
	require.ErrorIs(t, err, ErrConfirmationMismatch)

	// Exact comparison only.
	_, err = s.FindOrderByName(ctx, "#1001", "uletwjunv")
	require.ErrorIs(t, err, ErrConfirmationMismatch)
	_, err = s.FindOrderByName(ctx, "#1001", " ULETWJUNV")
	require.ErrorIs(t, err, ErrConfirmationMismatch)
}

func TestFindOrderByNameAddsHash(t *testing.T) {
	f := orderFixture()
	s := &OrderService{Commerce: f}

	order, err := s.FindOrderByName(context.Background(), "1002", "")
	require.NoError(t, err)
	require.Equal(t, "#1002", order.Name)
	require.Equal(t, "name:#1002", f.lastQuery)
}

func TestFindOrderByNameMissingCodeOnOrder(t *testing.T) {
	s := &OrderService{Commerce: orderFixture()}

	_, err := s.FindOrderByName(context.Background(), "#1002", "ANY")
	require.ErrorIs(t, err, ErrConfirmationMismatch)
}

func TestFindOrderByNameFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		s := &OrderService{Commerce: orderFixture()}
		_, err := s.FindOrderByName(ctx, "#9999", "")
		require.ErrorIs(t, err, ErrOrderNotFound)

		_, err = s.FindOrderByName(ctx, "", "")
		require.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("not configured", func(t *testing.T) {
		f := orderFixture()
		f.unconfigured = true
		s := &OrderService{Commerce: f}
		_, err := s.FindOrderByName(ctx, "#1001", "")
		require.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("upstream", func(t *testing.T) {
		f := orderFixture()
		f.findOrdersErr = errors.New("connection reset")
		s := &OrderService{Commerce: f}
		_, err := s.FindOrderByName(ctx, "#1001", "")
		require.ErrorIs(t, err, ErrUpstream)
		require.True(t, IsLookupMiss(err))
	})
}

func TestFindOrderByEmailAndPostcode(t *testing.T) {
	ctx := context.Background()
	f := orderFixture()
	s := &OrderService{Commerce: f}

	order, err := s.FindOrderByEmailAndPostcode(ctx, "jo@example.com", "AB12 3CD")
	require.NoError(t, err)
	require.Equal(t, "#1001", order.Name)
	require.Equal(t, "email:jo@example.com", f.lastQuery)
	require.Equal(t, emailLookupLimit, f.lastFirst)

	_, err = s.FindOrderByEmailAndPostcode(ctx, "jo@example.com", "AB12 3CE")
	require.ErrorIs(t, err, ErrOrderNotFound)

	// Billing postcode is considered too.
	order, err = s.FindOrderByEmailAndPostcode(ctx, "sam@example.com", "m11ae")
	require.NoError(t, err)
	require.Equal(t, "#1002", order.Name)

	_, err = s.FindOrderByEmailAndPostcode(ctx, "jo@example.com", "   ")
	require.ErrorIs(t, err, ErrOrderNotFound)
}
