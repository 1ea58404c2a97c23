package shopify

// Customer is the subset of the Customer object the verification flow uses.
type Customer struct {
	ID        string   `json:"id"`
	Email     string   `json:"email,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Address holds the postcode of a mailing address.
type Address struct {
	Zip string `json:"zip"`
}

// Order is the subset of the Order object the verification flow uses.
// ConfirmationCode is read from the custom.confirmation_code metafield.
type Order struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email,omitempty"`
	ConfirmationCode string    `json:"confirmationCode,omitempty"`
	Customer         *Customer `json:"customer,omitempty"`
	ShippingAddress  *Address  `json:"shippingAddress,omitempty"`
	BillingAddress   *Address  `json:"billingAddress,omitempty"`
}

// CustomerGID returns the owning customer's gid, or "" for guest orders.
func (o Order) CustomerGID() string {
	if o.Customer == nil {
		return ""
	}
	return o.Customer.ID
}

// Metafield is a namespaced key/value attachment on a resource.
type Metafield struct {
	ID        string `json:"id,omitempty"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}

// MetafieldInput is one entry of a metafieldsSet mutation.
type MetafieldInput struct {
	OwnerID   string `json:"ownerId"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}

// CustomerInput is the input of a customerCreate mutation.
type CustomerInput struct {
	Email     string   `json:"email,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// UserError is a validation error returned in a mutation payload.
type UserError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
}
