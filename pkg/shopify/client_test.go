package shopify_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/ageverif/pkg/shopify"
	"github.com/stretchr/testify/require"
)

type gqlCall struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// newTestClient starts a TLS server that hands every GraphQL call to fn.
func newTestClient(t *testing.T, fn func(t *testing.T, call gqlCall) (int, string)) *shopify.Client {
	t.Helper()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/api/2024-10/graphql.json", r.URL.Path)
		require.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var call gqlCall
		require.NoError(t, json.Unmarshal(body, &call))

		status, resp := fn(t, call)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, resp)
	}))
	t.Cleanup(srv.Close)

	c := shopify.NewClient(srv.URL, "shpat_test", "")
	c.HTTPClient = srv.Client()
	return c
}

func TestClientConfigured(t *testing.T) {
	var nilClient *shopify.Client
	require.False(t, nilClient.Configured())
	require.False(t, shopify.NewClient("", "tok", "").Configured())
	require.False(t, shopify.NewClient("shop.myshopify.com", "", "").Configured())

	c := shopify.NewClient("https://shop.myshopify.com/", "tok", "2025-01")
	require.True(t, c.Configured())
	require.Equal(t, "https://shop.myshopify.com/admin/api/2025-01/graphql.json", c.Endpoint())
}

func TestNotConfiguredShortCircuits(t *testing.T) {
	c := shopify.NewClient("", "", "")
	_, err := c.FindOrders(context.Background(), "name:#1001", 1)
	require.ErrorIs(t, err, shopify.ErrNotConfigured)
}

func TestFindOrders(t *testing.T) {
	c := newTestClient(t, func(t *testing.T, call gqlCall) (int, string) {
		require.Contains(t, call.Query, "orders(first: $first")
		require.Equal(t, "name:#1001", call.Variables["query"])
		require.EqualValues(t, 1, call.Variables["first"])
		return http.StatusOK, `{"data":{"orders":{"edges":[{"node":{
			"id":"gid://shopify/Order/9","name":"#1001","email":"jo@example.com",
			"customer":{"id":"gid://shopify/Customer/7"},
			"shippingAddress":{"zip":"ab12 3cd"},"billingAddress":null,
			"confirmationCode":{"value":"ULETWJUNV"}}}]}}}`
	})

	orders, err := c.FindOrders(context.Background(), "name:#1001", 1)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	o := orders[0]
	require.Equal(t, "#1001", o.Name)
	require.Equal(t, "ULETWJUNV", o.ConfirmationCode)
	require.Equal(t, "gid://shopify/Customer/7", o.CustomerGID())
	require.Equal(t, "ab12 3cd", o.ShippingAddress.Zip)
	require.Nil(t, o.BillingAddress)
}

func TestGetCustomerMetafield(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		c := newTestClient(t, func(t *testing.T, call gqlCall) (int, string) {
			require.Equal(t, "ageverif", call.Variables["namespace"])
			return http.StatusOK, `{"data":{"customer":{"id":"gid://shopify/Customer/7",
				"metafield":{"id":"gid://shopify/Metafield/1","namespace":"ageverif","key":"verification","type":"json","value":"{}"}}}}`
		})

		mf, err := c.GetCustomerMetafield(context.Background(), "gid://shopify/Customer/7", "ageverif", "verification")
		require.NoError(t, err)
		require.NotNil(t, mf)
		require.Equal(t, "json", mf.Type)
	})

	t.Run("absent", func(t *testing.T) {
		c := newTestClient(t, func(t *testing.T, call gqlCall) (int, string) {
			return http.StatusOK, `{"data":{"customer":{"id":"gid://shopify/Customer/7","metafield":null}}}`
		})

		mf, err := c.GetCustomerMetafield(context.Background(), "gid://shopify/Customer/7", "ageverif", "verification")
		require.NoError(t, err)
		require.Nil(t, mf)
	})

	t.Run("unknown customer", func(t *testing.T) {
		c := newTestClient(t, func(t *testing.T, call gqlCall) (int, string) {
			return http.StatusOK, `{"data":{"customer":null}}`
		})

		_, err := c.GetCustomerMetafield(context.Background(), "gid://shopify/Customer/8", "ageverif", "verification")
		require.ErrorIs(t, err, shopify.ErrCustomerNotFound)
	})
}

func TestSetMetafieldUserErrors(t *testing.T) {
	c := newTestClient(t, func(t *testing.T, call gqlCall) (int, string) {
		require.Contains(t, call.Query, "metafieldsSet")
		return http.StatusOK, `{"data":{"metafieldsSet":{"metafields":[],
			"userErrors":[{"field":["metafields","0","value"],"message":"Value is invalid JSON","code":"INVALID_VALUE"}]}}}`
	})

	_, err := c.SetMetafield(context.Background(), shopify.MetafieldInput{
		OwnerID: "gid://shopify/Customer/7", Namespace: "ageverif", Key: "verification",
		Type: shopify.MetafieldTypeJSON, Value: "{",
	})

	var ue *shopify.UserErrors
	require.True(t, errors.As(err, &ue))
	require.Equal(t, "metafieldsSet", ue.Operation)
	require.Contains(t, err.Error(), "metafields.0.value: Value is invalid JSON")
}

func TestAddTags(t *testing.T) {
	c := newTestClient(t, func(t *testing.T, call gqlCall) (int, string) {
		require.Equal(t, []any{"age_verified"}, call.Variables["tags"])
		return http.StatusOK, `{"data":{"tagsAdd":{"node":{"id":"gid://shopify/Customer/7"},"userErrors":[]}}}`
	})

	require.NoError(t, c.AddTags(context.Background(), "gid://shopify/Customer/7", []string{"age_verified"}))
}

func TestCreateCustomer(t *testing.T) {
	c := newTestClient(t, func(t *testing.T, call gqlCall) (int, string) {
		input := call.Variables["input"].(map[string]any)
		require.Equal(t, "jo@example.com", input["email"])
		return http.StatusOK, `{"data":{"customerCreate":{"customer":{"id":"gid://shopify/Customer/77","email":"jo@example.com"},"userErrors":[]}}}`
	})

	cust, err := c.CreateCustomer(context.Background(), shopify.CustomerInput{Email: "jo@example.com"})
	require.NoError(t, err)
	require.Equal(t, "gid://shopify/Customer/77", cust.ID)
}

func TestUpstreamFailures(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		c := newTestClient(t, func(t *testing.T, call gqlCall) (int, string) {
			return http.StatusUnauthorized, `{"errors":"[API] Invalid API key or access token"}`
		})

		_, err := c.FindOrders(context.Background(), "name:#1", 1)
		var se *shopify.StatusError
		require.True(t, errors.As(err, &se))
		require.Equal(t, http.StatusUnauthorized, se.StatusCode)
	})

	t.Run("graphql errors", func(t *testing.T) {
		c := newTestClient(t, func(t *testing.T, call gqlCall) (int, string) {
			return http.StatusOK, `{"errors":[{"message":"Throttled","extensions":{"code":"THROTTLED"}}]}`
		})

		_, err := c.FindCustomersByEmail(context.Background(), "jo@example.com", 1)
		var ge *shopify.GraphQLError
		require.True(t, errors.As(err, &ge))
		require.True(t, ge.Throttled())
	})

	t.Run("garbage body", func(t *testing.T) {
		c := newTestClient(t, func(t *testing.T, call gqlCall) (int, string) {
			return http.StatusOK, `<html>`
		})

		_, err := c.FindOrders(context.Background(), "name:#1", 1)
		require.Error(t, err)
		require.True(t, strings.Contains(err.Error(), "decode"))
	})
}

func TestSearchTerm(t *testing.T) {
	require.Equal(t, "name:#1001", shopify.SearchTerm("name", "#1001"))
	require.Equal(t, "email:jo.bloggs+shop@example.co.uk", shopify.SearchTerm("email", "jo.bloggs+shop@example.co.uk"))
	require.Equal(t, `email:"a b"`, shopify.SearchTerm("email", "a b"))
	require.Equal(t, `email:"x\"y"`, shopify.SearchTerm("email", `x"y`))
	require.Equal(t, `email:""`, shopify.SearchTerm("email", ""))
}
