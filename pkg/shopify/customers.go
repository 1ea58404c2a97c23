package shopify

import (
	"context"
	"errors"
)

const findCustomersQuery = `query FindCustomers($query: String!, $first: Int!) {
  customers(first: $first, query: $query) {
    edges { node { id email firstName lastName tags } }
  }
}`

const customerMetafieldQuery = `query CustomerMetafield($id: ID!, $namespace: String!, $key: String!) {
  customer(id: $id) {
    id
    metafield(namespace: $namespace, key: $key) { id namespace key type value }
  }
}`

const customerCreateMutation = `mutation CustomerCreate($input: CustomerInput!) {
  customerCreate(input: $input) {
    customer { id email firstName lastName tags }
    userErrors { field message }
  }
}`

// FindCustomersByEmail returns customers whose email matches exactly.
func (c *Client) FindCustomersByEmail(ctx context.Context, email string, first int) ([]Customer, error) {
	var data struct {
		Customers struct {
			Edges []struct {
				Node Customer `json:"node"`
			} `json:"edges"`
		} `json:"customers"`
	}

	vars := map[string]any{"query": SearchTerm("email", email), "first": first}
	if err := c.do(ctx, "FindCustomers", findCustomersQuery, vars, &data); err != nil {
		return nil, err
	}

	customers := make([]Customer, 0, len(data.Customers.Edges))
	for _, e := range data.Customers.Edges {
		customers = append(customers, e.Node)
	}
	return customers, nil
}

// GetCustomerMetafield reads one metafield of a customer. It returns
// (nil, nil) when the customer exists but has no value for the key, and
// ErrCustomerNotFound when the customer does not exist.
func (c *Client) GetCustomerMetafield(ctx context.Context, customerGID, namespace, key string) (*Metafield, error) {
	var data struct {
		Customer *struct {
			ID        string     `json:"id"`
			Metafield *Metafield `json:"metafield"`
		} `json:"customer"`
	}

	vars := map[string]any{"id": customerGID, "namespace": namespace, "key": key}
	if err := c.do(ctx, "CustomerMetafield", customerMetafieldQuery, vars, &data); err != nil {
		return nil, err
	}

	if data.Customer == nil {
		return nil, ErrCustomerNotFound
	}
	return data.Customer.Metafield, nil
}

// CreateCustomer creates a customer record.
func (c *Client) CreateCustomer(ctx context.Context, input CustomerInput) (Customer, error) {
	var data struct {
		CustomerCreate struct {
			Customer   *Customer   `json:"customer"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"customerCreate"`
	}

	vars := map[string]any{"input": input}
	if err := c.do(ctx, "CustomerCreate", customerCreateMutation, vars, &data); err != nil {
		return Customer{}, err
	}

	if err := userErrors("customerCreate", data.CustomerCreate.UserErrors); err != nil {
		return Customer{}, err
	}
	if data.CustomerCreate.Customer == nil {
		return Customer{}, errors.New("shopify: customerCreate returned no customer")
	}
	return *data.CustomerCreate.Customer, nil
}
