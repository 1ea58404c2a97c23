package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/metrics"
	"github.com/aussiebroadwan/ageverif/pkg/shopify"
)

// Commerce is the slice of the Shopify Admin API the services need.
// *shopify.Client satisfies it.
type Commerce interface {
	Configured() bool
	FindOrders(ctx context.Context, query string, first int) ([]shopify.Order, error)
	FindCustomersByEmail(ctx context.Context, email string, first int) ([]shopify.Customer, error)
	GetCustomerMetafield(ctx context.Context, customerGID, namespace, key string) (*shopify.Metafield, error)
	CreateCustomer(ctx context.Context, input shopify.CustomerInput) (shopify.Customer, error)
	SetMetafield(ctx context.Context, input shopify.MetafieldInput) (shopify.Metafield, error)
	AddTags(ctx context.Context, id string, tags []string) error
}

// InstrumentCommerce records the latency of every call in m.
func InstrumentCommerce(c Commerce, m *metrics.Metrics) Commerce {
	if m == nil {
		return c
	}
	return &instrumentedCommerce{next: c, m: m}
}

type instrumentedCommerce struct {
	next Commerce
	m    *metrics.Metrics
}

func (i *instrumentedCommerce) observe(op string, start time.Time) {
	i.m.ObserveUpstream(op, time.Since(start))
}

func (i *instrumentedCommerce) Configured() bool { return i.next.Configured() }

func (i *instrumentedCommerce) FindOrders(ctx context.Context, query string, first int) ([]shopify.Order, error) {
	defer i.observe("FindOrders", time.Now())
	return i.next.FindOrders(ctx, query, first)
}

func (i *instrumentedCommerce) FindCustomersByEmail(ctx context.Context, email string, first int) ([]shopify.Customer, error) {
	defer i.observe("FindCustomers", time.Now())
	return i.next.FindCustomersByEmail(ctx, email, first)
}

func (i *instrumentedCommerce) GetCustomerMetafield(ctx context.Context, customerGID, namespace, key string) (*shopify.Metafield, error) {
	defer i.observe("CustomerMetafield", time.Now())
	return i.next.GetCustomerMetafield(ctx, customerGID, namespace, key)
}

func (i *instrumentedCommerce) CreateCustomer(ctx context.Context, input shopify.CustomerInput) (shopify.Customer, error) {
	defer i.observe("CustomerCreate", time.Now())
	return i.next.CreateCustomer(ctx, input)
}

func (i *instrumentedCommerce) SetMetafield(ctx context.Context, input shopify.MetafieldInput) (shopify.Metafield, error) {
	defer i.observe("MetafieldsSet", time.Now())
	return i.next.SetMetafield(ctx, input)
}

func (i *instrumentedCommerce) AddTags(ctx context.Context, id string, tags []string) error {
	defer i.observe("TagsAdd", time.Now())
	return i.next.AddTags(ctx, id, tags)
}
