package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aussiebroadwan/ageverif/pkg/shopify"
)

// fakeCommerce is an in-memory Admin API. Orders are matched on the exact
// search clause the services send.
type fakeCommerce struct {
	mu sync.Mutex

	unconfigured bool

	orders     []shopify.Order
	customers  map[string]*shopify.Customer
	metafields map[string]shopify.Metafield // gid + "/" + ns + "." + key

	findOrdersErr error
	getErr        error
	setErr        error
	tagErr        error
	createErr     error

	setCalls    int
	tagCalls    int
	getCalls    int
	createCalls int
	lastQuery   string
	lastFirst   int

	// getGate, when set, blocks GetCustomerMetafield until closed.
	getGate chan struct{}
}

func newFakeCommerce() *fakeCommerce {
	return &fakeCommerce{
		customers:  make(map[string]*shopify.Customer),
		metafields: make(map[string]shopify.Metafield),
	}
}

func (f *fakeCommerce) addCustomer(gid, email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customers[gid] = &shopify.Customer{ID: gid, Email: email}
}

func mfKey(gid, ns, key string) string { return gid + "/" + ns + "." + key }

func (f *fakeCommerce) Configured() bool { return !f.unconfigured }

func (f *fakeCommerce) FindOrders(ctx context.Context, query string, first int) ([]shopify.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastQuery, f.lastFirst = query, first
	if f.findOrdersErr != nil {
		return nil, f.findOrdersErr
	}

	field, value, _ := strings.Cut(query, ":")
	value = strings.Trim(value, `"`)

	var out []shopify.Order
	for _, o := range f.orders {
		switch {
		case field == "name" && o.Name == value,
			field == "email" && strings.EqualFold(o.Email, value):
			out = append(out, o)
		}
		if len(out) == first {
			break
		}
	}
	return out, nil
}

func (f *fakeCommerce) FindCustomersByEmail(ctx context.Context, email string, first int) ([]shopify.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []shopify.Customer
	for _, c := range f.customers {
		if strings.EqualFold(c.Email, email) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCommerce) GetCustomerMetafield(ctx context.Context, gid, ns, key string) (*shopify.Metafield, error) {
	if f.getGate != nil {
		<-f.getGate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if _, ok := f.customers[gid]; !ok {
		return nil, shopify.ErrCustomerNotFound
	}
	mf, ok := f.metafields[mfKey(gid, ns, key)]
	if !ok {
		return nil, nil
	}
	return &mf, nil
}

func (f *fakeCommerce) CreateCustomer(ctx context.Context, input shopify.CustomerInput) (shopify.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.createErr != nil {
		return shopify.Customer{}, f.createErr
	}
	gid := fmt.Sprintf("gid://shopify/Customer/%d", 9000+len(f.customers))
	c := &shopify.Customer{ID: gid, Email: input.Email, FirstName: input.FirstName, LastName: input.LastName}
	f.customers[gid] = c
	return *c, nil
}

func (f *fakeCommerce) SetMetafield(ctx context.Context, input shopify.MetafieldInput) (shopify.Metafield, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.setCalls++
	if f.setErr != nil {
		return shopify.Metafield{}, f.setErr
	}
	mf := shopify.Metafield{
		ID:        fmt.Sprintf("gid://shopify/Metafield/%d", f.setCalls),
		Namespace: input.Namespace,
		Key:       input.Key,
		Type:      input.Type,
		Value:     input.Value,
	}
	f.metafields[mfKey(input.OwnerID, input.Namespace, input.Key)] = mf
	return mf, nil
}

func (f *fakeCommerce) AddTags(ctx context.Context, id string, tags []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.tagCalls++
	if f.tagErr != nil {
		return f.tagErr
	}
	if c, ok := f.customers[id]; ok {
		c.Tags = append(c.Tags, tags...)
	}
	return nil
}

func (f *fakeCommerce) metafield(gid string) (shopify.Metafield, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mf, ok := f.metafields[mfKey(gid, DefaultMetafieldNamespace, DefaultMetafieldKey)]
	return mf, ok
}
