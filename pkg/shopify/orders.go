package shopify

import (
	"context"
)

const findOrdersQuery = `query FindOrders($query: String!, $first: Int!) {
  orders(first: $first, query: $query, sortKey: CREATED_AT, reverse: true) {
    edges {
      node {
        id
        name
        email
        customer { id email firstName lastName tags }
        shippingAddress { zip }
        billingAddress { zip }
        confirmationCode: metafield(namespace: "custom", key: "confirmation_code") { value }
      }
    }
  }
}`

type orderNode struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Customer         *Customer `json:"customer"`
	ShippingAddress  *Address  `json:"shippingAddress"`
	BillingAddress   *Address  `json:"billingAddress"`
	ConfirmationCode *struct {
		Value string `json:"value"`
	} `json:"confirmationCode"`
}

func (n orderNode) order() Order {
	o := Order{
		ID:              n.ID,
		Name:            n.Name,
		Email:           n.Email,
		Customer:        n.Customer,
		ShippingAddress: n.ShippingAddress,
		BillingAddress:  n.BillingAddress,
	}
	if n.ConfirmationCode != nil {
		o.ConfirmationCode = n.ConfirmationCode.Value
	}
	return o
}

// FindOrders runs an order search, newest first, returning at most first
// orders. An empty result is not an error.
func (c *Client) FindOrders(ctx context.Context, query string, first int) ([]Order, error) {
	var data struct {
		Orders struct {
			Edges []struct {
				Node orderNode `json:"node"`
			} `json:"edges"`
		} `json:"orders"`
	}

	vars := map[string]any{"query": query, "first": first}
	if err := c.do(ctx, "FindOrders", findOrdersQuery, vars, &data); err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(data.Orders.Edges))
	for _, e := range data.Orders.Edges {
		orders = append(orders, e.Node.order())
	}
	return orders, nil
}
