package shopify

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured is returned when the store domain or admin token is missing.
	ErrNotConfigured = errors.New("shopify: admin api not configured")

	// ErrCustomerNotFound is returned when a customer id resolves to nothing.
	ErrCustomerNotFound = errors.New("shopify: customer not found")
)

// StatusError is returned for non-200 responses from the Admin API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("shopify: unexpected status %d: %s", e.StatusCode, e.Body)
}

// GraphQLError carries the top-level "errors" array of a response.
type GraphQLError struct {
	Operation string
	Messages  []string
	Codes     []string
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("shopify: %s: %s", e.Operation, strings.Join(e.Messages, "; "))
}

// Throttled reports whether Shopify rejected the call for cost reasons.
func (e *GraphQLError) Throttled() bool {
	for _, c := range e.Codes {
		if c == "THROTTLED" {
			return true
		}
	}
	return false
}

// UserErrors is returned when a mutation reports userErrors.
type UserErrors struct {
	Operation string
	Errors    []UserError
}

func (e *UserErrors) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ue := range e.Errors {
		if len(ue.Field) > 0 {
			msgs = append(msgs, strings.Join(ue.Field, ".")+": "+ue.Message)
			continue
		}
		msgs = append(msgs, ue.Message)
	}
	return fmt.Sprintf("shopify: %s rejected: %s", e.Operation, strings.Join(msgs, "; "))
}

func userErrors(op string, errs []UserError) error {
	if len(errs) == 0 {
		return nil
	}
	return &UserErrors{Operation: op, Errors: errs}
}
